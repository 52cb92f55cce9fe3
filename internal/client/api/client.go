// Package api is a thin HTTP client for the checkers server that echoes
// every exchange for debugging.
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"checkers/internal/client/display"
	"checkers/internal/core"
)

// Longer than the server's long-poll window
const requestTimeout = 30 * time.Second

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Verbose    bool
	Out        io.Writer
}

func New(baseURL string, out io.Writer) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: requestTimeout},
		Out:        out,
	}
}

func (c *Client) SetVerbose(v bool) {
	c.Verbose = v
}

func (c *Client) SetBaseURL(u string) {
	c.BaseURL = strings.TrimRight(u, "/")
}

func (c *Client) doRequest(method, path string, body any, result any) error {
	var bodyReader io.Reader
	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return err
		}
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, c.BaseURL+path, bodyReader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	display.Request.Fprintf(c.Out, "\n[API] %s %s\n", method, path)
	if len(payload) > 0 {
		if c.Verbose {
			display.Detail.Fprintln(c.Out, "Request Body:")
			fmt.Fprintln(c.Out, display.IndentJSON(payload))
		} else {
			display.Request.Fprintln(c.Out, string(payload))
		}
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		display.Failure.Fprintf(c.Out, "[ERROR] %v\n", err)
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	status := display.Success
	if resp.StatusCode >= 400 {
		status = display.Failure
	}
	status.Fprintf(c.Out, "[%d %s]\n", resp.StatusCode, http.StatusText(resp.StatusCode))

	if c.Verbose && len(respBody) > 0 {
		display.Detail.Fprintln(c.Out, "Response Body:")
		fmt.Fprintln(c.Out, display.IndentJSON(respBody))
	}

	if resp.StatusCode >= 400 {
		apiErr := &Error{Status: resp.StatusCode}
		if err := json.Unmarshal(respBody, &apiErr.Response); err != nil {
			apiErr.Response.Error = strings.TrimSpace(string(respBody))
		}
		return apiErr
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			display.Failure.Fprintf(c.Out, "Response parse error: %v\nRaw response: %s\n", err, respBody)
			return err
		}
	}

	return nil
}

func gamePath(gameID string, suffix ...string) string {
	return "/api/v1/games/" + url.PathEscape(gameID) + strings.Join(suffix, "")
}

func (c *Client) Health() (*HealthResponse, error) {
	var resp HealthResponse
	err := c.doRequest(http.MethodGet, "/health", nil, &resp)
	return &resp, err
}

func (c *Client) CreateGame(req *core.CreateGameRequest) (*core.GameResponse, error) {
	var resp core.GameResponse
	err := c.doRequest(http.MethodPost, "/api/v1/games", req, &resp)
	return &resp, err
}

func (c *Client) ConfigurePlayers(gameID string, req *core.ConfigurePlayersRequest) (*core.GameResponse, error) {
	var resp core.GameResponse
	err := c.doRequest(http.MethodPut, gamePath(gameID, "/players"), req, &resp)
	return &resp, err
}

func (c *Client) GetGame(gameID string) (*core.GameResponse, error) {
	var resp core.GameResponse
	err := c.doRequest(http.MethodGet, gamePath(gameID), nil, &resp)
	return &resp, err
}

// PollGame blocks server-side until the game's move count differs from
// moveCount or the server's wait expires
func (c *Client) PollGame(gameID string, moveCount int) (*core.GameResponse, error) {
	var resp core.GameResponse
	path := gamePath(gameID, fmt.Sprintf("?wait=true&moveCount=%d", moveCount))
	err := c.doRequest(http.MethodGet, path, nil, &resp)
	return &resp, err
}

func (c *Client) DeleteGame(gameID string) error {
	return c.doRequest(http.MethodDelete, gamePath(gameID), nil, nil)
}

// MakeMove submits a move, or core.ComputerMoveToken to ask the server for
// a computer move. A computer move is answered before it is played.
func (c *Client) MakeMove(gameID, move string) (*core.GameResponse, error) {
	var resp core.GameResponse
	err := c.doRequest(http.MethodPost, gamePath(gameID, "/moves"), &core.MoveRequest{Move: move}, &resp)
	return &resp, err
}

// LegalMoves lists the moves of the side to move, or only those starting
// on from when it is set
func (c *Client) LegalMoves(gameID, from string) (*core.LegalMovesResponse, error) {
	path := gamePath(gameID, "/moves")
	if from != "" {
		path += "?from=" + url.QueryEscape(from)
	}
	var resp core.LegalMovesResponse
	err := c.doRequest(http.MethodGet, path, nil, &resp)
	return &resp, err
}

func (c *Client) UndoMoves(gameID string, count int) (*core.GameResponse, error) {
	var resp core.GameResponse
	err := c.doRequest(http.MethodPost, gamePath(gameID, "/undo"), &core.UndoRequest{Count: count}, &resp)
	return &resp, err
}

func (c *Client) GetBoard(gameID string) (*core.BoardResponse, error) {
	var resp core.BoardResponse
	err := c.doRequest(http.MethodGet, gamePath(gameID, "/board"), nil, &resp)
	return &resp, err
}

// RawRequest sends body as JSON when it parses, otherwise as a JSON string
func (c *Client) RawRequest(method, path, body string) error {
	var data any
	if body != "" {
		if err := json.Unmarshal([]byte(body), &data); err != nil {
			data = body
		}
	}
	return c.doRequest(method, path, data, nil)
}
