package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"ctchen222/Tic-Tac-Toe-N/internal/api/controller"
	"ctchen222/Tic-Tac-Toe-N/internal/api/service"
	"ctchen222/Tic-Tac-Toe-N/internal/game"
	"ctchen222/Tic-Tac-Toe-N/internal/session"
	"ctchen222/Tic-Tac-Toe-N/internal/store"
	"ctchen222/Tic-Tac-Toe-N/internal/validator"
	"ctchen222/Tic-Tac-Toe-N/pkg/proto"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var errMissingField = errors.New("missing field")

// Conn is the part of a websocket connection used by a client.
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	ReadMessage() (int, []byte, error)
	Close() error
}

// client renders a session to one websocket connection.
type client struct {
	conn      Conn
	sessionID string
	profileID string

	writeMu sync.Mutex
}

func (s *Server) handleWebSocket(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "server.handleWebSocket", trace.WithAttributes(
		attribute.String("http.url", c.Request.URL.String()),
		attribute.String("http.method", c.Request.Method),
	))
	defer span.End()

	profileID := service.NewGuestProfileID()
	token := c.Query("token")
	if token == "" {
		token = controller.BearerToken(c.GetHeader("Authorization"))
	}
	if token != "" {
		id, err := s.deps.Users.ParseToken(token)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "Invalid token")
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		profileID = id
	}
	span.SetAttributes(attribute.String("profile.id", profileID))

	mover, err := s.deps.NewMover()
	if err != nil {
		slog.ErrorContext(ctx, "Failed to create computer player", "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to create computer player")
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	ws, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.WarnContext(ctx, "Failed to upgrade connection", "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to upgrade connection")
		return
	}

	cl := &client{conn: ws, sessionID: uuid.New().String(), profileID: profileID}
	sess, err := session.New(cl.sessionID, store.Open(s.deps.Profiles, profileID), cl, s.deps.Scheduler, mover, s.deps.Options)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to create session", "profile.id", profileID, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to create session")
		ws.Close()
		return
	}
	span.SetAttributes(attribute.String("session.id", cl.sessionID))
	slog.InfoContext(ctx, "Session started", "session.id", cl.sessionID, "profile.id", profileID)

	// The request context ends with the handler; the session outlives it.
	sessCtx := context.WithoutCancel(ctx)
	sess.Start(sessCtx)
	s.serve(sessCtx, cl, sess)
}

// serve runs the read pump until the connection drops.
func (s *Server) serve(ctx context.Context, cl *client, sess *session.Session) {
	watchCtx, stopWatch := context.WithCancel(ctx)
	defer func() {
		stopWatch()
		sess.Close()
		cl.conn.Close()
		slog.InfoContext(ctx, "Session closed", "session.id", cl.sessionID, "profile.id", cl.profileID)
	}()

	if s.deps.Notifier != nil {
		s.watchProfile(watchCtx, cl, sess)
	}

	for {
		_, msg, err := cl.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.WarnContext(ctx, "Client connection error", "session.id", cl.sessionID, "error", err)
			}
			return
		}
		cl.handleMessage(ctx, sess, msg)
	}
}

// watchProfile reloads the session whenever another session writes the same
// profile.
func (s *Server) watchProfile(ctx context.Context, cl *client, sess *session.Session) {
	updates, unsubscribe, err := s.deps.Notifier.Subscribe(ctx, cl.profileID)
	if err != nil {
		slog.WarnContext(ctx, "Profile sync disabled", "session.id", cl.sessionID, "profile.id", cl.profileID, "error", err)
		return
	}

	go func() {
		defer func() {
			if err := unsubscribe(); err != nil {
				slog.DebugContext(ctx, "Failed to unsubscribe", "profile.id", cl.profileID, "error", err)
			}
		}()
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-updates:
				if !ok {
					return
				}
				sess.Reload(ctx)
			}
		}
	}()
}

// handleMessage decodes one client message and dispatches it to the session.
func (cl *client) handleMessage(ctx context.Context, sess *session.Session, raw []byte) {
	ctx, span := tracer.Start(ctx, "server.handleMessage", trace.WithAttributes(
		attribute.String("session.id", cl.sessionID),
	))
	defer span.End()

	var message proto.ClientToServerMessage
	if err := json.Unmarshal(raw, &message); err != nil {
		slog.WarnContext(ctx, "error unmarshalling message", "session.id", cl.sessionID, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Error unmarshalling message")
		cl.sendError("malformed message")
		return
	}
	if err := validator.Struct(message); err != nil {
		slog.WarnContext(ctx, "invalid message from client", "session.id", cl.sessionID, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid message format")
		cl.sendError("invalid message")
		return
	}
	span.SetAttributes(attribute.String("message.type", message.Type))

	err := dispatch(ctx, sess, &message)
	switch {
	case err == nil:
	case errors.Is(err, game.ErrInvalidMove):
		// Rejected moves leave the game untouched and are not reported.
	default:
		span.RecordError(err)
		cl.sendError(err.Error())
	}
}

func dispatch(ctx context.Context, sess *session.Session, m *proto.ClientToServerMessage) error {
	switch m.Type {
	case proto.TypeSelect:
		if m.Index == nil {
			return fmt.Errorf("%w: index", errMissingField)
		}
		return sess.SelectCell(ctx, *m.Index)
	case proto.TypeReset:
		return sess.RequestReset(ctx)
	case proto.TypeConfirmReset:
		return sess.ConfirmReset(ctx)
	case proto.TypeCancelReset:
		return sess.CancelReset(ctx)
	case proto.TypeSize:
		if m.Size == nil {
			return fmt.Errorf("%w: size", errMissingField)
		}
		return sess.ChangeSize(ctx, *m.Size)
	case proto.TypeResetScores:
		return sess.ResetScores(ctx)
	case proto.TypeSetNames:
		if m.Names == nil {
			return fmt.Errorf("%w: names", errMissingField)
		}
		return sess.UpdateNames(ctx, m.Names.Player1, m.Names.Player2)
	case proto.TypeToggleSolo:
		return sess.ToggleSoloMode(ctx)
	default:
		return fmt.Errorf("unknown message type %q", m.Type)
	}
}

func (cl *client) Status(text string) {
	cl.send(&proto.ServerToClientMessage{Type: proto.TypeStatus, Text: text})
}

func (cl *client) Board(size int, board game.Board) {
	cl.send(&proto.ServerToClientMessage{Type: proto.TypeBoard, Size: size, Board: board})
}

func (cl *client) Scores(score store.ScoreRecord) {
	cl.send(&proto.ServerToClientMessage{Type: proto.TypeScores, Scores: &score})
}

func (cl *client) Names(x, o string) {
	cl.send(&proto.ServerToClientMessage{Type: proto.TypeNames, Names: &proto.Names{Player1: x, Player2: o}})
}

func (cl *client) ResetPrompt(open bool) {
	cl.send(&proto.ServerToClientMessage{Type: proto.TypeResetPrompt, Open: open})
}

func (cl *client) sendError(reason string) {
	cl.send(&proto.ServerToClientMessage{Type: proto.TypeError, Reason: reason})
}

func (cl *client) send(message *proto.ServerToClientMessage) {
	data, err := json.Marshal(message)
	if err != nil {
		slog.Error("error marshalling message", "session.id", cl.sessionID, "error", err)
		return
	}

	cl.writeMu.Lock()
	defer cl.writeMu.Unlock()
	if err := cl.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		slog.Debug("error writing message to client", "session.id", cl.sessionID, "message.type", message.Type, "error", err)
	}
}
