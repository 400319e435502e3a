package session

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "ctchen222/Tic-Tac-Toe-N/internal/session"

var tracer = otel.Tracer("session")

type instruments struct {
	moves    metric.Int64Counter
	rejected metric.Int64Counter
	finished metric.Int64Counter
}

var counters = newInstruments()

func newInstruments() instruments {
	meter := otel.Meter(instrumentationName)

	moves, err := meter.Int64Counter("tictactoe.moves",
		metric.WithDescription("Accepted moves."))
	if err != nil {
		otel.Handle(err)
	}
	rejected, err := meter.Int64Counter("tictactoe.moves.rejected",
		metric.WithDescription("Moves ignored because they were invalid."))
	if err != nil {
		otel.Handle(err)
	}
	finished, err := meter.Int64Counter("tictactoe.games.finished",
		metric.WithDescription("Games that ended in a win or a tie."))
	if err != nil {
		otel.Handle(err)
	}

	return instruments{moves: moves, rejected: rejected, finished: finished}
}
