package proto

import (
	"encoding/json"
	"strings"
	"testing"

	"ctchen222/Tic-Tac-Toe-N/internal/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientToServerMessage_Validation(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"select", `{"type":"select","index":4}`, false},
		{"select first cell", `{"type":"select","index":0}`, false},
		{"reset", `{"type":"reset"}`, false},
		{"size", `{"type":"size","size":4}`, false},
		{"names", `{"type":"names","names":{"player1":"Ada","player2":""}}`, false},
		{"toggle", `{"type":"toggle_solo"}`, false},
		{"missing type", `{"index":1}`, true},
		{"unknown type", `{"type":"undo"}`, true},
		{"negative index", `{"type":"select","index":-1}`, true},
		{"negative size", `{"type":"size","size":-3}`, true},
		{"long name", `{"type":"names","names":{"player1":"` + strings.Repeat("a", 40) + `"}}`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var msg ClientToServerMessage
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &msg))

			err := validator.Struct(msg)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestServerToClientMessage_OmitsUnsetFields(t *testing.T) {
	data, err := json.Marshal(ServerToClientMessage{Type: TypeStatus, Text: "X Wins!"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"status","text":"X Wins!"}`, string(data))
}
