package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"checkers/internal/board"
	"checkers/internal/cli"
	"checkers/internal/core"
	"checkers/internal/engine"
	"checkers/internal/game"
	"checkers/internal/service"
	"checkers/internal/transport"
)

// CLIHandler runs a local game against the service, playing computer
// moves synchronously with its own Finder
type CLIHandler struct {
	svc    *service.Service
	view   transport.View
	finder *engine.Finder
	gameID string
}

func New(svc *service.Service, view transport.View, finder *engine.Finder) *CLIHandler {
	if finder == nil {
		finder = engine.New(nil)
	}
	return &CLIHandler{
		svc:    svc,
		view:   view,
		finder: finder,
	}
}

// Run is the main loop; it returns on quit or end of input
func (h *CLIHandler) Run() {
	for {
		h.view.ShowPrompt(h.getPrompt())

		cmd, err := h.view.GetCommand()
		if err != nil {
			break
		}

		if !h.ProcessCommand(cmd) {
			break
		}
	}
}

// GameID is the active game, empty when none
func (h *CLIHandler) GameID() string {
	return h.gameID
}

func (h *CLIHandler) getPrompt() string {
	prompt := "> "
	if h.gameID == "" {
		return prompt
	}
	pos, err := h.svc.Position(h.gameID)
	if err != nil || pos.Status != core.StateOngoing {
		return prompt
	}
	prompt = fmt.Sprintf("[%s]> ", pos.State.CurrentPlayer().Symbol())
	if pos.Next.IsComputer() {
		prompt = "ENTER to execute computer move\n" + prompt
	}
	return prompt
}

// ProcessCommand handles one command; false means exit
func (h *CLIHandler) ProcessCommand(cmd *cli.Command) bool {
	switch cmd.Type {
	case cli.CmdQuit:
		return false

	case cli.CmdNone:
		if h.gameID == "" {
			return true
		}
		pos, err := h.svc.Position(h.gameID)
		if err == nil && pos.Status == core.StateOngoing && pos.Next.IsComputer() {
			h.executeComputerMove(pos)
		}

	case cli.CmdNew:
		h.handleNewGame("")

	case cli.CmdResume:
		if len(cmd.Args) < 1 {
			h.view.ShowMessage("Usage: resume <layout>")
			return true
		}
		h.handleNewGame(strings.Join(cmd.Args, " "))

	case cli.CmdMove:
		h.handleMove(cmd.Args[0])

	case cli.CmdMoves:
		h.handleMoves(cmd.Args)

	case cli.CmdUndo:
		h.handleUndo(cmd.Args)

	case cli.CmdColor:
		if len(cmd.Args) < 1 {
			h.view.ShowMessage("Usage: color <off|classic|green|gray>")
			return true
		}
		theme := cli.ColorTheme(strings.ToLower(cmd.Args[0]))
		if err := h.view.SetTheme(theme); err != nil {
			h.view.ShowError(err)
			return true
		}
		h.view.ShowMessage(fmt.Sprintf("Color theme set to: %s", theme))
		h.showBoard()

	case cli.CmdVerbose:
		h.view.ShowMessage(fmt.Sprintf("Verbose mode: %t", h.view.ToggleVerbose()))

	case cli.CmdHistory:
		if h.gameID == "" {
			h.view.ShowMessage("No active game.")
			return true
		}
		h.svc.View(h.gameID, func(g *game.Game) error {
			h.view.ShowGameHistory(g)
			return nil
		})

	case cli.CmdHelp:
		h.view.ShowHelp()
	}

	return true
}

func (h *CLIHandler) handleMove(notation string) {
	if h.gameID == "" {
		h.view.ShowMessage("No active game. Use 'new' or 'resume <layout>'.")
		return
	}

	pos, err := h.svc.Position(h.gameID)
	if err != nil {
		h.view.ShowError(err)
		return
	}
	if pos.Next.IsComputer() {
		h.view.ShowMessage("It's not a human player's turn. Press ENTER to execute computer move.")
		return
	}

	m, err := board.ParseMove(notation)
	if err != nil {
		h.view.ShowError(err)
		return
	}

	result, err := h.svc.ApplyMove(h.gameID, m, pos.MoveCount)
	if err != nil {
		if errors.Is(err, service.ErrIllegalMove) {
			h.view.ShowError(fmt.Errorf("invalid move: %s", notation))
		} else {
			h.view.ShowError(err)
		}
		return
	}

	h.view.ShowHumanMove(result)
	h.afterMove(result)
}

func (h *CLIHandler) executeComputerMove(pos service.Position) {
	side := pos.State.CurrentPlayer()
	search, ok := h.finder.Search(pos.State, side)
	if !ok {
		h.view.ShowMessage(fmt.Sprintf("Computer (%s) has no legal move.", side))
		return
	}

	result, err := h.svc.ApplyMove(h.gameID, search.Move, pos.MoveCount)
	if err != nil {
		h.view.ShowError(fmt.Errorf("engine error: %w", err))
		return
	}
	annotated := *result
	annotated.Candidates = search.Candidates
	h.svc.SetLastMoveResult(h.gameID, &annotated)

	h.view.ShowComputerMove(&annotated)
	h.afterMove(&annotated)
}

// afterMove redraws and reports a verdict or a blocked side
func (h *CLIHandler) afterMove(result *game.MoveResult) {
	h.showBoard()

	switch {
	case result.GameState.IsFinished():
		h.view.ShowGameOver(result.GameState)
		h.gameID = ""
	case result.GameState == core.StateStuck:
		h.view.ShowMessage(fmt.Sprintf("%s has no legal move. Use 'undo' or start a new game.", result.PlayerSide.Opposite()))
	}
}

func (h *CLIHandler) handleMoves(args []string) {
	if h.gameID == "" {
		h.view.ShowMessage("No active game.")
		return
	}

	from := ""
	if len(args) > 0 {
		from = strings.ToLower(args[0])
	}

	var moves []board.Move
	var b board.Board
	err := h.svc.View(h.gameID, func(g *game.Game) error {
		rules := g.Rules()
		b = rules.Board()
		if from == "" {
			moves = rules.LegalMoves(rules.CurrentPlayer())
			return nil
		}
		row, col, err := board.ParseSquare(from)
		if err != nil {
			return err
		}
		moves = rules.Destinations(row, col)
		return nil
	})
	if err != nil {
		h.view.ShowError(err)
		return
	}

	if from != "" {
		h.view.DisplayBoard(b, moves...)
	}
	h.view.ShowMoves(from, moves)
}

func (h *CLIHandler) handleUndo(args []string) {
	if h.gameID == "" {
		h.view.ShowMessage("No active game.")
		return
	}

	count := 1
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			h.view.ShowMessage("Invalid undo count. Usage: undo [count]")
			return
		}
		count = n
	}

	if err := h.svc.UndoMoves(h.gameID, count); err != nil {
		h.view.ShowError(err)
		return
	}

	if count == 1 {
		h.view.ShowMessage("Move undone")
	} else {
		h.view.ShowMessage(fmt.Sprintf("%d moves undone", count))
	}
	h.showBoard()
}

func (h *CLIHandler) showBoard() {
	if h.gameID == "" {
		return
	}
	h.svc.View(h.gameID, func(g *game.Game) error {
		h.view.DisplayBoard(g.Rules().Board())
		return nil
	})
}

func readPlayerType(input string) core.PlayerType {
	switch strings.ToLower(input) {
	case "c", "computer":
		return core.PlayerComputer
	default:
		return core.PlayerHuman
	}
}

// handleNewGame asks for player types and starts a game from layout
func (h *CLIHandler) handleNewGame(layout string) {
	h.view.ShowPrompt("Select Red player (h/c): ")
	redType := readPlayerType(h.view.ReadLine())

	h.view.ShowPrompt("Select Black player (h/c): ")
	blackType := readPlayerType(h.view.ReadLine())

	if h.gameID != "" {
		h.svc.DeleteGame(h.gameID)
		h.gameID = ""
	}

	id := h.svc.GenerateGameID()
	red := core.NewPlayer(core.PlayerConfig{Type: redType}, core.SideRed)
	black := core.NewPlayer(core.PlayerConfig{Type: blackType}, core.SideBlack)

	if err := h.svc.CreateGame(id, red, black, layout); err != nil {
		h.view.ShowError(fmt.Errorf("could not start the game: %w", err))
		return
	}
	h.gameID = id

	h.view.ShowMessage("Game started.")
	h.showBoard()

	h.svc.View(id, func(g *game.Game) error {
		if g.State() == core.StateStuck {
			h.view.ShowMessage(fmt.Sprintf("%s has no legal move in this position.", g.NextTurn()))
		} else if g.State().IsFinished() {
			h.view.ShowGameOver(g.State())
			h.gameID = ""
		}
		return nil
	})
}
