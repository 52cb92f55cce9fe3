package core

import (
	"github.com/google/uuid"
)

type PlayerType int

const (
	PlayerHuman PlayerType = iota + 1
	PlayerComputer
)

func (t PlayerType) String() string {
	switch t {
	case PlayerHuman:
		return "human"
	case PlayerComputer:
		return "computer"
	default:
		return "unknown"
	}
}

// Player is the complete game entity with all state
type Player struct {
	ID        string     `json:"id"`
	Side      Side       `json:"side"`
	Type      PlayerType `json:"type"`
	ThinkTime int        `json:"thinkTime,omitempty"` // Only for computer, milliseconds
}

// PlayerConfig for API requests and configuration
type PlayerConfig struct {
	Type      PlayerType `json:"type" validate:"required,oneof=1 2"`
	ThinkTime int        `json:"thinkTime,omitempty" validate:"omitempty,min=0,max=10000"`
}

// PlayersResponse for API responses
type PlayersResponse struct {
	Red   *Player `json:"red"`
	Black *Player `json:"black"`
}

// NewPlayer creates a Player from PlayerConfig
func NewPlayer(config PlayerConfig, side Side) *Player {
	player := &Player{
		ID:   uuid.New().String(),
		Side: side,
		Type: config.Type,
	}

	if config.Type == PlayerComputer {
		player.ThinkTime = config.ThinkTime
	}

	return player
}

// IsComputer reports whether moves for this player come from the engine
func (p *Player) IsComputer() bool {
	return p != nil && p.Type == PlayerComputer
}
