package commands

import (
	"fmt"
	"strconv"
	"strings"

	"checkers/internal/client/display"
	"checkers/internal/core"
)

// Each poll waits up to the server's long-poll window
const maxComputerPolls = 3

func (r *Registry) registerGameCommands() {
	for _, cmd := range []*Command{
		{Name: "new", ShortName: "n", Description: "Create a new game", Usage: "new", Handler: newGameHandler},
		{Name: "join", ShortName: "j", Description: "Join/set current game ID", Usage: "join <gameId>", Handler: joinGameHandler},
		{Name: "players", ShortName: "y", Description: "Reconfigure both players", Usage: "players <h|c[:ms]> <h|c[:ms]>", Handler: playersHandler},
		{Name: "move", ShortName: "m", Description: "Make a move", Usage: "move <c3-d4|c3xe5|c3d4>", Handler: moveHandler},
		{Name: "computer", ShortName: "c", Description: "Trigger computer move", Usage: "computer", Handler: computerMoveHandler},
		{Name: "legal", ShortName: "l", Description: "List legal moves", Usage: "legal [square]", Handler: legalMovesHandler},
		{Name: "undo", ShortName: "u", Description: "Undo moves", Usage: "undo [count]", Handler: undoHandler},
		{Name: "show", ShortName: "h", Description: "Show board and game state", Usage: "show", Handler: showBoardHandler},
		{Name: "state", ShortName: "s", Description: "Show raw game JSON", Usage: "state", Handler: gameStateHandler},
		{Name: "delete", ShortName: "d", Description: "Delete a game", Usage: "delete [gameId]", Handler: deleteGameHandler},
		{Name: "poll", ShortName: "p", Description: "Long-poll for game updates", Usage: "poll", Handler: pollHandler},
	} {
		cmd.Group = "Game"
		r.Register(cmd)
	}
}

// parsePlayer reads "h", "c" or "c:<thinkTimeMs>"
func parsePlayer(spec string) (core.PlayerConfig, error) {
	kind, ms, hasTime := strings.Cut(strings.ToLower(spec), ":")
	switch kind {
	case "", "h":
		if hasTime {
			return core.PlayerConfig{}, fmt.Errorf("think time applies to computer players only")
		}
		return core.PlayerConfig{Type: core.PlayerHuman}, nil
	case "c":
		cfg := core.PlayerConfig{Type: core.PlayerComputer}
		if hasTime {
			t, err := strconv.Atoi(ms)
			if err != nil || t < 0 || t > 10000 {
				return cfg, fmt.Errorf("invalid think time: %s (0-10000ms)", ms)
			}
			cfg.ThinkTime = t
		}
		return cfg, nil
	default:
		return core.PlayerConfig{}, fmt.Errorf("invalid player type: %s (h or c)", kind)
	}
}

func askPlayer(s *Session, side string) (core.PlayerConfig, error) {
	answer, err := s.Ask(display.Notice.Sprintf("%s player type (h/c) [h]: ", side))
	if err != nil {
		return core.PlayerConfig{}, err
	}
	cfg, err := parsePlayer(answer)
	if err != nil || cfg.Type != core.PlayerComputer {
		return cfg, err
	}

	answer, err = s.Ask(display.Notice.Sprint("Think time (0-10000ms) [0]: "))
	if err != nil {
		return cfg, err
	}
	if answer != "" {
		return parsePlayer("c:" + answer)
	}
	return cfg, nil
}

func newGameHandler(s *Session, args []string) error {
	display.Detail.Fprintln(s.Out, "\nCreating new game...")

	red, err := askPlayer(s, "Red")
	if err != nil {
		return err
	}
	black, err := askPlayer(s, "Black")
	if err != nil {
		return err
	}
	layout, err := s.Ask(display.Notice.Sprint("Starting layout [default]: "))
	if err != nil {
		return err
	}

	resp, err := s.Client.CreateGame(&core.CreateGameRequest{Red: red, Black: black, Layout: layout})
	if err != nil {
		return err
	}

	s.CurrentGame = resp.GameID
	s.track(resp)
	display.Success.Fprintf(s.Out, "Game created: %s\n", resp.GameID)

	return maybeComputerTurn(s, resp)
}

func joinGameHandler(s *Session, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: join <gameId>")
	}

	resp, err := s.Client.GetGame(args[0])
	if err != nil {
		return err
	}

	s.CurrentGame = resp.GameID
	s.track(resp)
	display.Success.Fprintf(s.Out, "Joined game: %s\n", resp.GameID)
	fmt.Fprintf(s.Out, "Turn: %s | State: %s | Moves: %d\n", display.SideName(resp.Turn), resp.State, len(resp.Moves))
	return nil
}

func playersHandler(s *Session, args []string) error {
	gameID, err := s.requireGame()
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("usage: players <h|c[:ms]> <h|c[:ms]>")
	}

	red, err := parsePlayer(args[0])
	if err != nil {
		return err
	}
	black, err := parsePlayer(args[1])
	if err != nil {
		return err
	}

	resp, err := s.Client.ConfigurePlayers(gameID, &core.ConfigurePlayersRequest{Red: red, Black: black})
	if err != nil {
		return err
	}

	s.track(resp)
	display.Success.Fprintf(s.Out, "Players updated: red %s, black %s\n",
		resp.Players.Red.Type, resp.Players.Black.Type)
	return nil
}

func moveHandler(s *Session, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: move <c3-d4|c3xe5|c3d4>")
	}
	gameID, err := s.requireGame()
	if err != nil {
		return err
	}

	resp, err := s.Client.MakeMove(gameID, args[0])
	if err != nil {
		return err
	}

	s.track(resp)
	display.Success.Fprintln(s.Out, "Move accepted")
	reportOutcome(s, resp)

	return maybeComputerTurn(s, resp)
}

// maybeComputerTurn asks the server to play when the side to move is a
// computer
func maybeComputerTurn(s *Session, resp *core.GameResponse) error {
	if resp.State != core.StateOngoing.String() || !computerToMove(resp) {
		return nil
	}
	display.Accent.Fprintln(s.Out, "\nComputer's turn, triggering move...")
	return computerMoveHandler(s, nil)
}

func computerToMove(resp *core.GameResponse) bool {
	switch resp.Turn {
	case core.SideRed.Symbol():
		return resp.Players.Red.IsComputer()
	case core.SideBlack.Symbol():
		return resp.Players.Black.IsComputer()
	}
	return false
}

func computerMoveHandler(s *Session, args []string) error {
	gameID, err := s.requireGame()
	if err != nil {
		return err
	}

	before := s.LastMoveCount
	resp, err := s.Client.MakeMove(gameID, core.ComputerMoveToken)
	if err != nil {
		return err
	}

	if resp.State == core.StatePending.String() {
		display.Accent.Fprintln(s.Out, "Computer is thinking...")
		if resp, err = awaitComputer(s, gameID, len(resp.Moves)); err != nil {
			return err
		}
	}
	s.track(resp)

	if len(resp.Moves) > before && resp.LastMove != nil && resp.LastMove.Move != "" {
		display.Accent.Fprintf(s.Out, "Computer played: %s", resp.LastMove.Move)
		if resp.LastMove.Candidates > 0 {
			fmt.Fprintf(s.Out, " (chosen from %d)", resp.LastMove.Candidates)
		}
		fmt.Fprintln(s.Out)
	}
	reportOutcome(s, resp)
	return nil
}

// awaitComputer long-polls until the game leaves the pending state
func awaitComputer(s *Session, gameID string, moveCount int) (*core.GameResponse, error) {
	for i := 0; i < maxComputerPolls; i++ {
		resp, err := s.Client.PollGame(gameID, moveCount)
		if err != nil {
			return nil, err
		}
		if resp.State != core.StatePending.String() {
			return resp, nil
		}
	}
	return nil, fmt.Errorf("timeout waiting for computer move")
}

func reportOutcome(s *Session, resp *core.GameResponse) {
	switch resp.State {
	case core.StateStuck.String():
		display.Notice.Fprintf(s.Out, "%s has no legal move\n", display.SideName(resp.Turn))
	case core.StateRedWins.String(), core.StateBlackWins.String():
		display.Heading.Fprintf(s.Out, "Game over: %s\n", resp.State)
	}
}

func legalMovesHandler(s *Session, args []string) error {
	gameID, err := s.requireGame()
	if err != nil {
		return err
	}

	from := ""
	if len(args) > 0 {
		from = args[0]
	}

	resp, err := s.Client.LegalMoves(gameID, from)
	if err != nil {
		return err
	}

	if len(resp.Moves) == 0 {
		display.Notice.Fprintln(s.Out, "No legal moves")
		return nil
	}
	fmt.Fprintf(s.Out, "Legal moves (%d): %s\n", len(resp.Moves), strings.Join(resp.Moves, " "))
	return nil
}

func undoHandler(s *Session, args []string) error {
	gameID, err := s.requireGame()
	if err != nil {
		return err
	}

	count := 1
	if len(args) > 0 {
		if count, err = strconv.Atoi(args[0]); err != nil {
			return fmt.Errorf("invalid count: %s", args[0])
		}
	}

	resp, err := s.Client.UndoMoves(gameID, count)
	if err != nil {
		return err
	}

	s.track(resp)
	display.Success.Fprintf(s.Out, "Undid %d move(s)\n", count)
	return nil
}

func showBoardHandler(s *Session, args []string) error {
	gameID, err := s.requireGame()
	if err != nil {
		return err
	}

	game, err := s.Client.GetGame(gameID)
	if err != nil {
		return err
	}
	board, err := s.Client.GetBoard(gameID)
	if err != nil {
		return err
	}
	s.track(game)

	fmt.Fprintln(s.Out)
	display.RenderBoard(s.Out, board.Board)

	fmt.Fprintf(s.Out, "\nLayout: %s\n", game.Layout)
	fmt.Fprintf(s.Out, "Turn: %s | State: %s | Moves: %d | Score: red %d, black %d\n",
		display.SideName(game.Turn), game.State, len(game.Moves), game.Score.Red, game.Score.Black)

	if len(game.Moves) > 0 {
		fmt.Fprintf(s.Out, "\nHistory: %s\n", strings.Join(game.Moves, " "))
	}
	if game.LastMove != nil {
		fmt.Fprintf(s.Out, "Last move: %s by %s\n", game.LastMove.Move, display.SideName(game.LastMove.PlayerSide))
	}
	if game.Winner != "" {
		display.Heading.Fprintf(s.Out, "Winner: %s\n", game.Winner)
	}
	return nil
}

func gameStateHandler(s *Session, args []string) error {
	gameID, err := s.requireGame()
	if err != nil {
		return err
	}

	resp, err := s.Client.GetGame(gameID)
	if err != nil {
		return err
	}
	s.track(resp)

	display.Detail.Fprintln(s.Out, "Game State:")
	display.PrettyPrintJSON(s.Out, resp)
	return nil
}

func deleteGameHandler(s *Session, args []string) error {
	gameID := s.CurrentGame
	if len(args) > 0 {
		gameID = args[0]
	}
	if gameID == "" {
		return fmt.Errorf("specify game ID or set current game")
	}

	if err := s.Client.DeleteGame(gameID); err != nil {
		return err
	}

	if gameID == s.CurrentGame {
		s.clearGame()
	}
	display.Success.Fprintf(s.Out, "Game deleted: %s\n", gameID)
	return nil
}

func pollHandler(s *Session, args []string) error {
	gameID, err := s.requireGame()
	if err != nil {
		return err
	}

	moveCount := s.LastMoveCount
	display.Detail.Fprintf(s.Out, "Long-polling for updates (move count: %d)...\n", moveCount)

	resp, err := s.Client.PollGame(gameID, moveCount)
	if err != nil {
		return err
	}
	s.track(resp)

	if len(resp.Moves) != moveCount {
		display.Success.Fprintln(s.Out, "Game updated")
		if resp.LastMove != nil {
			fmt.Fprintf(s.Out, "Last move: %s\n", resp.LastMove.Move)
		}
	} else {
		display.Notice.Fprintf(s.Out, "No new moves (state: %s)\n", resp.State)
	}
	return nil
}
