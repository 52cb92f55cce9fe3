package processor

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode"

	"checkers/internal/board"
	"checkers/internal/core"
	"checkers/internal/game"
	"checkers/internal/service"
)

// Processor handles command execution and coordinates between the service
// and the engine workers
type Processor struct {
	svc              *service.Service
	queue            *EngineQueue
	defaultThinkTime int
}

// Options tunes the engine worker pool
type Options struct {
	Workers          int
	Seed             int64 // Zero seeds each worker from the clock
	DefaultThinkTime int   // Milliseconds, used for computer players without their own
}

// New creates a processor with its own engine worker pool
func New(svc *service.Service, opts Options) *Processor {
	return &Processor{
		svc:              svc,
		queue:            NewEngineQueue(opts.Workers, opts.Seed),
		defaultThinkTime: opts.DefaultThinkTime,
	}
}

func (p *Processor) Execute(cmd Command) ProcessorResponse {
	switch cmd.Type {
	case CmdCreateGame:
		return p.handleCreateGame(cmd)
	case CmdConfigurePlayers:
		return p.handleConfigurePlayers(cmd)
	case CmdGetGame:
		return p.handleGetGame(cmd)
	case CmdMakeMove:
		return p.handleMakeMove(cmd)
	case CmdUndoMove:
		return p.handleUndoMove(cmd)
	case CmdDeleteGame:
		return p.handleDeleteGame(cmd)
	case CmdGetBoard:
		return p.handleGetBoard(cmd)
	case CmdLegalMoves:
		return p.handleLegalMoves(cmd)
	default:
		return p.errorResponse("unknown command", core.ErrInvalidRequest)
	}
}

func hasControl(s string) bool {
	for _, r := range s {
		if unicode.IsControl(r) {
			return true
		}
	}
	return false
}

// isMoveSafe admits only square names and the move separators
func (p *Processor) isMoveSafe(move string) bool {
	if hasControl(move) || len(move) < 4 || len(move) > 5 {
		return false
	}
	for _, r := range move {
		switch {
		case r >= 'a' && r <= 'h', r >= '1' && r <= '8', r == '-', r == 'x':
		default:
			return false
		}
	}
	return true
}

func (p *Processor) handleCreateGame(cmd Command) ProcessorResponse {
	args, ok := cmd.Args.(core.CreateGameRequest)
	if !ok {
		return p.errorResponse("invalid arguments", core.ErrInvalidRequest)
	}

	layout := strings.TrimSpace(args.Layout)
	if hasControl(layout) {
		return p.errorResponse("invalid layout characters", core.ErrInvalidLayout)
	}

	gameID := p.svc.GenerateGameID()
	redPlayer := core.NewPlayer(args.Red, core.SideRed)
	blackPlayer := core.NewPlayer(args.Black, core.SideBlack)

	if err := p.svc.CreateGame(gameID, redPlayer, blackPlayer, layout); err != nil {
		if errors.Is(err, board.ErrInvalidLayout) {
			return p.errorResponse(err.Error(), core.ErrInvalidLayout)
		}
		return p.errorResponse(fmt.Sprintf("failed to create game: %v", err), core.ErrInternalError)
	}

	return p.gameResponse(gameID)
}

func (p *Processor) handleConfigurePlayers(cmd Command) ProcessorResponse {
	args, ok := cmd.Args.(core.ConfigurePlayersRequest)
	if !ok {
		return p.errorResponse("invalid arguments", core.ErrInvalidRequest)
	}

	status, err := p.status(cmd.GameID)
	if err != nil {
		return p.serviceError(err)
	}
	if status == core.StatePending {
		return p.errorResponse("cannot change players while computer is moving", core.ErrInvalidRequest)
	}

	redPlayer := core.NewPlayer(args.Red, core.SideRed)
	blackPlayer := core.NewPlayer(args.Black, core.SideBlack)

	if err := p.svc.UpdatePlayers(cmd.GameID, redPlayer, blackPlayer); err != nil {
		return p.serviceError(err)
	}

	return p.gameResponse(cmd.GameID)
}

func (p *Processor) handleGetGame(cmd Command) ProcessorResponse {
	return p.gameResponse(cmd.GameID)
}

// handleMakeMove plays a human move, or queues the computer's move when
// the request carries the computer move token
func (p *Processor) handleMakeMove(cmd Command) ProcessorResponse {
	args, ok := cmd.Args.(core.MoveRequest)
	if !ok {
		return p.errorResponse("invalid arguments", core.ErrInvalidRequest)
	}

	pos, err := p.svc.Position(cmd.GameID)
	if err != nil {
		return p.serviceError(err)
	}

	switch pos.Status {
	case core.StatePending:
		return p.errorResponse("computer move in progress", core.ErrInvalidRequest)
	case core.StateStuck:
		return p.errorResponse(fmt.Sprintf("%s has no legal move", pos.State.CurrentPlayer()), core.ErrGameOver)
	case core.StateRedWins, core.StateBlackWins:
		return p.errorResponse(fmt.Sprintf("game is over: %s", pos.Status), core.ErrGameOver)
	}

	move := strings.ToLower(strings.TrimSpace(args.Move))

	if move == core.ComputerMoveToken {
		if !pos.Next.IsComputer() {
			return p.errorResponse("not computer player's turn", core.ErrNotHumanTurn)
		}
		if err := p.triggerComputerMove(cmd.GameID, pos); err != nil {
			return p.errorResponse(err.Error(), core.ErrResourceLimit)
		}

		// The worker may already have played; keep its move if so
		resp := p.gameResponse(cmd.GameID)
		if data, ok := resp.Data.(core.GameResponse); ok && data.State == core.StatePending.String() {
			data.LastMove = &core.MoveInfo{PlayerSide: pos.State.CurrentPlayer().Symbol()}
			resp.Data = data
		}
		resp.Pending = true
		return resp
	}

	if pos.Next.IsComputer() {
		return p.errorResponse("not human player's turn", core.ErrNotHumanTurn)
	}

	if !p.isMoveSafe(move) {
		return p.errorResponse("invalid move format", core.ErrInvalidMove)
	}
	m, err := board.ParseMove(move)
	if err != nil {
		return p.errorResponse(err.Error(), core.ErrInvalidMove)
	}

	if _, err := p.svc.ApplyMove(cmd.GameID, m, pos.MoveCount); err != nil {
		return p.serviceError(err)
	}

	return p.gameResponse(cmd.GameID)
}

func (p *Processor) handleUndoMove(cmd Command) ProcessorResponse {
	status, err := p.status(cmd.GameID)
	if err != nil {
		return p.serviceError(err)
	}
	if status == core.StatePending {
		return p.errorResponse("cannot undo while computer move is in progress", core.ErrInvalidRequest)
	}

	args := core.UndoRequest{Count: 1}
	if req, ok := cmd.Args.(core.UndoRequest); ok && req.Count > 0 {
		args = req
	}

	if err := p.svc.UndoMoves(cmd.GameID, args.Count); err != nil {
		return p.serviceError(err)
	}

	return p.gameResponse(cmd.GameID)
}

func (p *Processor) handleDeleteGame(cmd Command) ProcessorResponse {
	status, err := p.status(cmd.GameID)
	if err != nil {
		return p.serviceError(err)
	}
	if status == core.StatePending {
		return p.errorResponse("cannot delete game while computer move is in progress", core.ErrInvalidRequest)
	}

	if err := p.svc.DeleteGame(cmd.GameID); err != nil {
		return p.serviceError(err)
	}

	return ProcessorResponse{Success: true}
}

func (p *Processor) handleGetBoard(cmd Command) ProcessorResponse {
	var resp core.BoardResponse
	err := p.svc.View(cmd.GameID, func(g *game.Game) error {
		b := g.Rules().Board()
		resp = core.BoardResponse{
			Layout: g.CurrentLayout(),
			Board:  b.ToASCII(),
		}
		return nil
	})
	if err != nil {
		return p.serviceError(err)
	}

	return ProcessorResponse{Success: true, Data: resp}
}

func (p *Processor) handleLegalMoves(cmd Command) ProcessorResponse {
	square, _ := cmd.Args.(string)
	square = strings.ToLower(strings.TrimSpace(square))

	row, col := -1, -1
	if square != "" {
		var err error
		if row, col, err = board.ParseSquare(square); err != nil {
			return p.errorResponse(err.Error(), core.ErrInvalidRequest)
		}
	}

	resp := core.LegalMovesResponse{From: square, Moves: []string{}}
	err := p.svc.View(cmd.GameID, func(g *game.Game) error {
		rules := g.Rules()
		if rules.IsGameOver() {
			return nil
		}

		var moves []board.Move
		if square == "" {
			moves = rules.LegalMoves(rules.CurrentPlayer())
		} else {
			moves = rules.Destinations(row, col)
		}
		for _, m := range moves {
			resp.Moves = append(resp.Moves, m.String())
		}
		return nil
	})
	if err != nil {
		return p.serviceError(err)
	}

	return ProcessorResponse{Success: true, Data: resp}
}

// triggerComputerMove marks the game pending and queues a search on a copy
// of the position. The result is applied only if nothing moved meanwhile.
func (p *Processor) triggerComputerMove(gameID string, pos service.Position) error {
	side := pos.State.CurrentPlayer()

	if err := p.svc.UpdateGameState(gameID, core.StatePending); err != nil {
		return err
	}

	mover := pos.Next
	if mover != nil && mover.ThinkTime <= 0 && p.defaultThinkTime > 0 {
		adjusted := *mover
		adjusted.ThinkTime = p.defaultThinkTime
		mover = &adjusted
	}

	task := EngineTask{
		GameID:    gameID,
		State:     pos.State,
		Side:      side,
		Player:    mover,
		MoveCount: pos.MoveCount,
	}

	err := p.queue.SubmitAsync(task, func(result EngineResult) {
		p.applyEngineResult(gameID, side, result)
	})
	if err != nil {
		p.svc.UpdateGameState(gameID, core.StateOngoing)
		return fmt.Errorf("cannot queue computer move: %w", err)
	}
	return nil
}

func (p *Processor) applyEngineResult(gameID string, side core.Side, result EngineResult) {
	status, err := p.status(gameID)
	if err != nil || status != core.StatePending {
		return // Game deleted or no longer waiting
	}

	if result.Error != nil {
		log.Printf("Engine error for game %s: %v", gameID, result.Error)
		p.svc.UpdateGameState(gameID, core.StateOngoing)
		return
	}

	if !result.Found {
		log.Printf("Computer (%s) has no legal move in game %s", side, gameID)
		p.svc.UpdateGameState(gameID, core.StateStuck)
		return
	}

	moveResult, err := p.svc.ApplyMove(gameID, result.Move, result.MoveCount)
	if err != nil {
		log.Printf("Failed to apply computer move %s for game %s: %v", result.Move, gameID, err)
		p.svc.UpdateGameState(gameID, core.StateOngoing)
		return
	}

	annotated := *moveResult
	annotated.Candidates = result.Candidates
	p.svc.SetLastMoveResult(gameID, &annotated)
}

func (p *Processor) status(gameID string) (core.State, error) {
	var status core.State
	err := p.svc.View(gameID, func(g *game.Game) error {
		status = g.State()
		return nil
	})
	return status, err
}

func (p *Processor) gameResponse(gameID string) ProcessorResponse {
	var resp core.GameResponse
	err := p.svc.View(gameID, func(g *game.Game) error {
		resp = buildGameResponse(gameID, g)
		return nil
	})
	if err != nil {
		return p.serviceError(err)
	}
	return ProcessorResponse{Success: true, Data: resp}
}

// buildGameResponse constructs the standard game response
func buildGameResponse(gameID string, g *game.Game) core.GameResponse {
	rules := g.Rules()
	score := rules.Score()

	resp := core.GameResponse{
		GameID: gameID,
		Layout: g.CurrentLayout(),
		Turn:   g.NextTurn().Symbol(),
		State:  g.State().String(),
		Score:  core.ScoreResponse{Red: score.Red, Black: score.Black},
		Moves:  g.Moves(),
		Players: core.PlayersResponse{
			Red:   g.GetPlayer(core.SideRed),
			Black: g.GetPlayer(core.SideBlack),
		},
	}

	if rules.IsGameOver() {
		resp.Winner = rules.Winner().String()
	}

	if result := g.LastResult(); result != nil {
		resp.LastMove = &core.MoveInfo{
			Move:       result.Move,
			PlayerSide: result.PlayerSide.Symbol(),
			Capture:    result.Capture,
			Promotion:  result.Promotion,
			Candidates: result.Candidates,
		}
	}

	return resp
}

// serviceError maps service sentinels to API error codes
func (p *Processor) serviceError(err error) ProcessorResponse {
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		return p.errorResponse("game not found", core.ErrGameNotFound)
	case errors.Is(err, service.ErrIllegalMove):
		return p.errorResponse("illegal move", core.ErrInvalidMove)
	case errors.Is(err, service.ErrGameOver):
		return p.errorResponse("game is over", core.ErrGameOver)
	case errors.Is(err, service.ErrStaleState):
		return p.errorResponse("game changed, reload and retry", core.ErrInvalidRequest)
	default:
		return p.errorResponse(err.Error(), core.ErrInvalidRequest)
	}
}

func (p *Processor) errorResponse(message, code string) ProcessorResponse {
	return ProcessorResponse{
		Success: false,
		Error: &core.ErrorResponse{
			Error: message,
			Code:  code,
		},
	}
}

// Close stops the engine workers
func (p *Processor) Close() error {
	return p.queue.Shutdown(5 * time.Second)
}
