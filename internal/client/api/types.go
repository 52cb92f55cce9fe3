package api

import (
	"fmt"

	"checkers/internal/core"
)

// HealthResponse mirrors the server's /health payload
type HealthResponse struct {
	Status  string `json:"status"`
	Time    int64  `json:"time"`
	Storage string `json:"storage"`
	Games   int    `json:"games"`
}

// Error is a non-2xx reply from the server
type Error struct {
	Status   int
	Response core.ErrorResponse
}

func (e *Error) Error() string {
	if e.Response.Code != "" {
		return fmt.Sprintf("%s (%s, status %d)", e.Response.Error, e.Response.Code, e.Status)
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}
