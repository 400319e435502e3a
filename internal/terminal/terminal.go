package terminal

import (
	"bufio"
	"context"
	"errors"
	"io"
	"log/slog"

	"ctchen222/Tic-Tac-Toe-N/internal/game"
	"ctchen222/Tic-Tac-Toe-N/internal/session"
)

// Run reads commands from in until quit or end of input and applies them to
// sess. Errors are reported through p, except rejected moves which are
// dropped without output. Only read errors are returned.
func Run(ctx context.Context, in io.Reader, sess *session.Session, p *Presenter) error {
	p.Message(`Type "help" for commands.`)

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil
		}
		cmd, err := Parse(scanner.Text())
		if err != nil {
			p.Message(err.Error())
			continue
		}
		if cmd.Kind == CmdQuit {
			return nil
		}
		if cmd.Kind == CmdHelp {
			p.Message(helpText)
			continue
		}

		err = Apply(ctx, sess, cmd)
		switch {
		case err == nil:
		case errors.Is(err, game.ErrInvalidMove):
			slog.DebugContext(ctx, "Move ignored", "session.id", sess.ID, "error", err)
		default:
			p.Message(err.Error())
		}
	}
	return scanner.Err()
}

// Apply dispatches one command to the session.
func Apply(ctx context.Context, sess *session.Session, cmd Command) error {
	switch cmd.Kind {
	case CmdSelect:
		return sess.SelectCell(ctx, cmd.Index)
	case CmdReset:
		return sess.RequestReset(ctx)
	case CmdConfirm:
		return sess.ConfirmReset(ctx)
	case CmdCancel:
		return sess.CancelReset(ctx)
	case CmdSize:
		return sess.ChangeSize(ctx, cmd.Size)
	case CmdResetScores:
		return sess.ResetScores(ctx)
	case CmdNames:
		return sess.UpdateNames(ctx, cmd.Player1, cmd.Player2)
	case CmdSolo:
		return sess.ToggleSoloMode(ctx)
	}
	return ErrUnknownCommand
}
