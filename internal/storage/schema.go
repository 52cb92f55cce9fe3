package storage

import "time"

// GameRecord represents a row in the games table
type GameRecord struct {
	GameID         string    `db:"game_id"`
	InitialLayout  string    `db:"initial_layout"`
	RedPlayerID    string    `db:"red_player_id"`
	RedType        int       `db:"red_type"`
	RedThinkTime   int       `db:"red_think_time"`
	BlackPlayerID  string    `db:"black_player_id"`
	BlackType      int       `db:"black_type"`
	BlackThinkTime int       `db:"black_think_time"`
	StartTimeUTC   time.Time `db:"start_time_utc"`
}

// MoveRecord represents a row in the moves table
type MoveRecord struct {
	MoveID          int64     `db:"move_id"`
	GameID          string    `db:"game_id"`
	MoveNumber      int       `db:"move_number"`
	MoveNotation    string    `db:"move_notation"`
	LayoutAfterMove string    `db:"layout_after_move"`
	PlayerSide      string    `db:"player_side"` // "r" or "b"
	Capture         bool      `db:"capture"`
	MoveTimeUTC     time.Time `db:"move_time_utc"`
}

// Schema defines the SQLite database structure
const Schema = `
CREATE TABLE IF NOT EXISTS games (
	game_id TEXT PRIMARY KEY,
	initial_layout TEXT NOT NULL,
	red_player_id TEXT NOT NULL,
	red_type INTEGER NOT NULL,
	red_think_time INTEGER NOT NULL DEFAULT 0,
	black_player_id TEXT NOT NULL,
	black_type INTEGER NOT NULL,
	black_think_time INTEGER NOT NULL DEFAULT 0,
	start_time_utc DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS moves (
	move_id INTEGER PRIMARY KEY AUTOINCREMENT,
	game_id TEXT NOT NULL,
	move_number INTEGER NOT NULL,
	move_notation TEXT NOT NULL,
	layout_after_move TEXT NOT NULL,
	player_side TEXT NOT NULL CHECK(player_side IN ('r', 'b')),
	capture INTEGER NOT NULL DEFAULT 0,
	move_time_utc DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (game_id) REFERENCES games(game_id) ON DELETE CASCADE,
	UNIQUE(game_id, move_number)
);

CREATE INDEX IF NOT EXISTS idx_moves_game_id ON moves(game_id);
CREATE INDEX IF NOT EXISTS idx_games_red_player ON games(red_player_id);
CREATE INDEX IF NOT EXISTS idx_games_black_player ON games(black_player_id);
`
