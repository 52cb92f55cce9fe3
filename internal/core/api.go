package core

// ComputerMoveToken in a MoveRequest asks the server to play the computer's turn
const ComputerMoveToken = "cccc"

// Request types

type CreateGameRequest struct {
	Red    PlayerConfig `json:"red" validate:"required"`
	Black  PlayerConfig `json:"black" validate:"required"`
	Layout string       `json:"layout,omitempty" validate:"omitempty,max=100"`
}

type ConfigurePlayersRequest struct {
	Red   PlayerConfig `json:"red" validate:"required"`
	Black PlayerConfig `json:"black" validate:"required"`
}

type MoveRequest struct {
	Move string `json:"move" validate:"required,min=4,max=5"` // "cccc" for computer move, "c3-d4" / "c3xe5" / "c3d4"
}

type UndoRequest struct {
	Count int `json:"count" validate:"required,min=1,max=500"`
}

// Response types

type GameResponse struct {
	GameID   string          `json:"gameId"`
	Layout   string          `json:"layout"`
	Turn     string          `json:"turn"`  // "r" or "b"
	State    string          `json:"state"` // "ongoing", "red wins", etc
	Winner   string          `json:"winner,omitempty"`
	Score    ScoreResponse   `json:"score"`
	Moves    []string        `json:"moves"`
	Players  PlayersResponse `json:"players"`
	LastMove *MoveInfo       `json:"lastMove,omitempty"`
}

type ScoreResponse struct {
	Red   int `json:"red"`
	Black int `json:"black"`
}

type MoveInfo struct {
	Move       string `json:"move"`
	PlayerSide string `json:"playerSide"` // "r" or "b"
	Capture    bool   `json:"capture,omitempty"`
	Promotion  bool   `json:"promotion,omitempty"`
	Candidates int    `json:"candidates,omitempty"`
}

type BoardResponse struct {
	Layout string `json:"layout"`
	Board  string `json:"board"` // ASCII representation
}

type LegalMovesResponse struct {
	From  string   `json:"from,omitempty"`
	Moves []string `json:"moves"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`
}
