package http

import (
	"checkers/internal/core"
	"checkers/internal/processor"

	"github.com/gofiber/fiber/v2"
)

// CreateGame creates a new game with the requested players
func (h *HTTPHandler) CreateGame(c *fiber.Ctx) error {
	req, err := validatedBody[core.CreateGameRequest](c)
	if err != nil {
		return err
	}

	return reply(c, h.proc.Execute(processor.NewCreateGameCommand(req)), fiber.StatusCreated)
}

// ConfigurePlayers replaces both players mid-game
func (h *HTTPHandler) ConfigurePlayers(c *fiber.Ctx) error {
	gameID, ok, err := gameIDParam(c)
	if !ok {
		return err
	}
	req, err := validatedBody[core.ConfigurePlayersRequest](c)
	if err != nil {
		return err
	}

	return reply(c, h.proc.Execute(processor.NewConfigurePlayersCommand(gameID, req)), fiber.StatusOK)
}

// GetGame returns the game. With wait=true it long-polls until the move
// count differs from moveCount, the wait times out or the game goes away.
func (h *HTTPHandler) GetGame(c *fiber.Ctx) error {
	gameID, ok, err := gameIDParam(c)
	if !ok {
		return err
	}

	if c.Query("wait") == "true" {
		moveCount := c.QueryInt("moveCount", -1)

		ctx := c.Context()
		notify, err := h.svc.RegisterWait(ctx, gameID, moveCount)
		if err != nil {
			return reply(c, h.proc.Execute(processor.NewGetGameCommand(gameID)), fiber.StatusOK)
		}

		select {
		case <-notify:
		case <-ctx.Done():
			return nil
		}
	}

	return reply(c, h.proc.Execute(processor.NewGetGameCommand(gameID)), fiber.StatusOK)
}

// MakeMove plays a human move or, with the computer token, queues the
// computer's move
func (h *HTTPHandler) MakeMove(c *fiber.Ctx) error {
	gameID, ok, err := gameIDParam(c)
	if !ok {
		return err
	}
	req, err := validatedBody[core.MoveRequest](c)
	if err != nil {
		return err
	}

	return reply(c, h.proc.Execute(processor.NewMakeMoveCommand(gameID, req)), fiber.StatusOK)
}

// LegalMoves lists the moves of the side to move, optionally only those
// starting on ?from=<square>
func (h *HTTPHandler) LegalMoves(c *fiber.Ctx) error {
	gameID, ok, err := gameIDParam(c)
	if !ok {
		return err
	}

	return reply(c, h.proc.Execute(processor.NewLegalMovesCommand(gameID, c.Query("from"))), fiber.StatusOK)
}

// UndoMove takes back one or more moves
func (h *HTTPHandler) UndoMove(c *fiber.Ctx) error {
	gameID, ok, err := gameIDParam(c)
	if !ok {
		return err
	}
	req, err := validatedBody[core.UndoRequest](c)
	if err != nil {
		return err
	}

	return reply(c, h.proc.Execute(processor.NewUndoMoveCommand(gameID, req)), fiber.StatusOK)
}

// DeleteGame removes a game
func (h *HTTPHandler) DeleteGame(c *fiber.Ctx) error {
	gameID, ok, err := gameIDParam(c)
	if !ok {
		return err
	}

	return reply(c, h.proc.Execute(processor.NewDeleteGameCommand(gameID)), fiber.StatusNoContent)
}

// GetBoard returns the layout and an ASCII rendering
func (h *HTTPHandler) GetBoard(c *fiber.Ctx) error {
	gameID, ok, err := gameIDParam(c)
	if !ok {
		return err
	}

	return reply(c, h.proc.Execute(processor.NewGetBoardCommand(gameID)), fiber.StatusOK)
}
