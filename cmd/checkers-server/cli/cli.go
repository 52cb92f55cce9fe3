// Package cli implements the server's "db" maintenance subcommands.
package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"checkers/internal/core"
	"checkers/internal/storage"
)

// Run dispatches a db subcommand: init, delete, query or moves
func Run(args []string) error {
	return run(args, os.Stdout)
}

func run(args []string, out io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("subcommand required: init, delete, query, moves")
	}

	switch args[0] {
	case "init":
		return runInit(args[1:], out)
	case "delete":
		return runDelete(args[1:], out)
	case "query":
		return runQuery(args[1:], out)
	case "moves":
		return runMoves(args[1:], out)
	default:
		return fmt.Errorf("unknown subcommand: %s", args[0])
	}
}

// parsePath parses fs and requires its -path flag
func parsePath(fs *flag.FlagSet, args []string) (string, error) {
	path := fs.String("path", "", "Database file path (required)")
	if err := fs.Parse(args); err != nil {
		return "", err
	}
	if *path == "" {
		return "", fmt.Errorf("database path required")
	}
	return *path, nil
}

func runInit(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	wal := fs.Bool("wal", false, "Enable WAL journal mode")
	path, err := parsePath(fs, args)
	if err != nil {
		return err
	}

	store, err := storage.NewStore(path, *wal)
	if err != nil {
		return fmt.Errorf("failed to create store: %w", err)
	}
	defer store.Close()

	if err := store.InitDB(); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	fmt.Fprintf(out, "Database initialized at: %s\n", path)
	return nil
}

func runDelete(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("delete", flag.ContinueOnError)
	path, err := parsePath(fs, args)
	if err != nil {
		return err
	}

	store, err := storage.NewStore(path, false)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}

	if err := store.DeleteDB(); err != nil {
		return fmt.Errorf("failed to delete database: %w", err)
	}

	fmt.Fprintf(out, "Database deleted: %s\n", path)
	return nil
}

func runQuery(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("query", flag.ContinueOnError)
	gameID := fs.String("gameId", "", "Game ID to filter (optional, * for all)")
	playerID := fs.String("playerId", "", "Player ID to filter (optional, * for all)")
	path, err := parsePath(fs, args)
	if err != nil {
		return err
	}

	store, err := storage.NewStore(path, false)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer store.Close()

	games, err := store.QueryGames(*gameID, *playerID)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	if len(games) == 0 {
		fmt.Fprintln(out, "No games found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Game ID\tRed Player\tBlack Player\tStart Time")
	fmt.Fprintln(w, strings.Repeat("-", 80))
	for _, g := range games {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			g.GameID,
			playerInfo(g.RedPlayerID, g.RedType),
			playerInfo(g.BlackPlayerID, g.BlackType),
			g.StartTimeUTC.Format("2006-01-02 15:04:05"),
		)
	}
	w.Flush()

	fmt.Fprintf(out, "\nFound %d game(s)\n", len(games))
	return nil
}

func runMoves(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("moves", flag.ContinueOnError)
	gameID := fs.String("gameId", "", "Game ID (required)")
	path, err := parsePath(fs, args)
	if err != nil {
		return err
	}
	if *gameID == "" {
		return fmt.Errorf("game ID required")
	}

	store, err := storage.NewStore(path, false)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer store.Close()

	moves, err := store.QueryMoves(*gameID)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	if len(moves) == 0 {
		fmt.Fprintln(out, "No moves found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tSide\tMove\tLayout After")
	for _, m := range moves {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", m.MoveNumber, m.PlayerSide, m.MoveNotation, m.LayoutAfterMove)
	}
	w.Flush()
	return nil
}

func playerInfo(id string, t int) string {
	short := id
	if len(short) > 8 {
		short = short[:8]
	}
	return fmt.Sprintf("%s (%s)", short, core.PlayerType(t))
}
