package commands

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"checkers/internal/client/api"
	"checkers/internal/core"
)

// Session is the client's mutable REPL state
type Session struct {
	Client        *api.Client
	Out           io.Writer
	CurrentGame   string
	LastMoveCount int
	State         *core.GameResponse
	Verbose       bool

	// Ask reads one answer for an interactive prompt
	Ask func(prompt string) (string, error)
}

func NewSession(client *api.Client, out io.Writer, in io.Reader) *Session {
	reader := bufio.NewReader(in)
	return &Session{
		Client: client,
		Out:    out,
		Ask: func(prompt string) (string, error) {
			fmt.Fprint(out, prompt)
			line, err := reader.ReadString('\n')
			if err != nil && line == "" {
				return "", err
			}
			return strings.TrimSpace(line), nil
		},
	}
}

// track records a fresh server view of the current game
func (s *Session) track(resp *core.GameResponse) {
	s.State = resp
	s.LastMoveCount = len(resp.Moves)
}

func (s *Session) requireGame() (string, error) {
	if s.CurrentGame == "" {
		return "", fmt.Errorf("no current game, use 'new' or 'join <gameId>'")
	}
	return s.CurrentGame, nil
}

func (s *Session) clearGame() {
	s.CurrentGame = ""
	s.State = nil
	s.LastMoveCount = 0
}
