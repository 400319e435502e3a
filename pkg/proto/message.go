package proto

import (
	"ctchen222/Tic-Tac-Toe-N/internal/game"
	"ctchen222/Tic-Tac-Toe-N/internal/store"
)

// Client to server message types.
const (
	TypeSelect       = "select"
	TypeReset        = "reset"
	TypeConfirmReset = "confirm_reset"
	TypeCancelReset  = "cancel_reset"
	TypeSize         = "size"
	TypeResetScores  = "reset_scores"
	TypeSetNames     = "names"
	TypeToggleSolo   = "toggle_solo"
)

// Server to client message types.
const (
	TypeStatus      = "status"
	TypeBoard       = "board"
	TypeScores      = "scores"
	TypeNames       = "names"
	TypeResetPrompt = "reset_prompt"
	TypeError       = "error"
)

// Names carries the two display names in both directions.
type Names struct {
	Player1 string `json:"player1" validate:"max=32"`
	Player2 string `json:"player2" validate:"max=32"`
}

// ClientToServerMessage represents a message from the client to the server.
type ClientToServerMessage struct {
	Type  string `json:"type" validate:"required,oneof=select reset confirm_reset cancel_reset size reset_scores names toggle_solo"`
	Index *int   `json:"index,omitempty" validate:"omitempty,min=0"`
	Size  *int   `json:"size,omitempty" validate:"omitempty,min=1"`
	Names *Names `json:"names,omitempty"`
}

// ServerToClientMessage represents a message from the server to the client.
type ServerToClientMessage struct {
	Type   string             `json:"type"`
	Text   string             `json:"text,omitempty"`
	Size   int                `json:"size,omitempty"`
	Board  []game.PlayerMark  `json:"board,omitempty"`
	Scores *store.ScoreRecord `json:"scores,omitempty"`
	Names  *Names             `json:"names,omitempty"`
	Open   bool               `json:"open,omitempty"`
	Reason string             `json:"reason,omitempty"`
}
