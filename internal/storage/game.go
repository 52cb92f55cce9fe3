package storage

import (
	"database/sql"
	"fmt"
)

// RecordNewGame queues a games row
func (s *Store) RecordNewGame(record GameRecord) {
	s.enqueue("game record", func(tx *sql.Tx) error {
		_, err := tx.Exec(`INSERT INTO games (
			game_id, initial_layout,
			red_player_id, red_type, red_think_time,
			black_player_id, black_type, black_think_time,
			start_time_utc
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			record.GameID, record.InitialLayout,
			record.RedPlayerID, record.RedType, record.RedThinkTime,
			record.BlackPlayerID, record.BlackType, record.BlackThinkTime,
			record.StartTimeUTC,
		)
		return err
	})
}

// UpdatePlayers queues a player change for an existing game
func (s *Store) UpdatePlayers(record GameRecord) {
	s.enqueue("player update", func(tx *sql.Tx) error {
		_, err := tx.Exec(`UPDATE games SET
			red_player_id = ?, red_type = ?, red_think_time = ?,
			black_player_id = ?, black_type = ?, black_think_time = ?
		WHERE game_id = ?`,
			record.RedPlayerID, record.RedType, record.RedThinkTime,
			record.BlackPlayerID, record.BlackType, record.BlackThinkTime,
			record.GameID,
		)
		return err
	})
}

// RecordMove queues a moves row
func (s *Store) RecordMove(record MoveRecord) {
	s.enqueue("move record", func(tx *sql.Tx) error {
		_, err := tx.Exec(`INSERT INTO moves (
			game_id, move_number, move_notation, layout_after_move,
			player_side, capture, move_time_utc
		) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			record.GameID, record.MoveNumber, record.MoveNotation, record.LayoutAfterMove,
			record.PlayerSide, record.Capture, record.MoveTimeUTC,
		)
		return err
	})
}

// DeleteUndoneMoves queues removal of the moves after afterMoveNumber
func (s *Store) DeleteUndoneMoves(gameID string, afterMoveNumber int) {
	s.enqueue("undo operation", func(tx *sql.Tx) error {
		_, err := tx.Exec(`DELETE FROM moves WHERE game_id = ? AND move_number > ?`, gameID, afterMoveNumber)
		return err
	})
}

// DeleteGame queues removal of a game and, by cascade, its moves
func (s *Store) DeleteGame(gameID string) {
	s.enqueue("game deletion", func(tx *sql.Tx) error {
		_, err := tx.Exec(`DELETE FROM games WHERE game_id = ?`, gameID)
		return err
	})
}

// QueryGames lists games, newest first. Empty or "*" filters match all.
func (s *Store) QueryGames(gameID, playerID string) ([]GameRecord, error) {
	query := `SELECT
		game_id, initial_layout,
		red_player_id, red_type, red_think_time,
		black_player_id, black_type, black_think_time,
		start_time_utc
	FROM games WHERE 1=1`

	var args []any

	if gameID != "" && gameID != "*" {
		query += " AND game_id = ?"
		args = append(args, gameID)
	}

	if playerID != "" && playerID != "*" {
		query += " AND (red_player_id = ? OR black_player_id = ?)"
		args = append(args, playerID, playerID)
	}

	query += " ORDER BY start_time_utc DESC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var games []GameRecord
	for rows.Next() {
		var g GameRecord
		err := rows.Scan(
			&g.GameID, &g.InitialLayout,
			&g.RedPlayerID, &g.RedType, &g.RedThinkTime,
			&g.BlackPlayerID, &g.BlackType, &g.BlackThinkTime,
			&g.StartTimeUTC,
		)
		if err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		games = append(games, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return games, nil
}

// QueryMoves returns a game's moves in play order
func (s *Store) QueryMoves(gameID string) ([]MoveRecord, error) {
	rows, err := s.db.Query(`SELECT
		move_id, game_id, move_number, move_notation, layout_after_move,
		player_side, capture, move_time_utc
	FROM moves WHERE game_id = ? ORDER BY move_number`, gameID)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var moves []MoveRecord
	for rows.Next() {
		var m MoveRecord
		err := rows.Scan(
			&m.MoveID, &m.GameID, &m.MoveNumber, &m.MoveNotation, &m.LayoutAfterMove,
			&m.PlayerSide, &m.Capture, &m.MoveTimeUTC,
		)
		if err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		moves = append(moves, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return moves, nil
}
