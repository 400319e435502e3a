package server

import (
	"context"
	"net/http"

	"ctchen222/Tic-Tac-Toe-N/internal/api/controller"
	"ctchen222/Tic-Tac-Toe-N/internal/api/response"
	"ctchen222/Tic-Tac-Toe-N/internal/api/service"
	"ctchen222/Tic-Tac-Toe-N/internal/bot"
	"ctchen222/Tic-Tac-Toe-N/internal/events"
	"ctchen222/Tic-Tac-Toe-N/internal/session"
	"ctchen222/Tic-Tac-Toe-N/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("server")

// Notifier reports writes to a profile made by other sessions.
type Notifier interface {
	Subscribe(ctx context.Context, profileID string) (<-chan events.ProfileUpdatedPayload, func() error, error)
}

// Deps are the collaborators of the HTTP server.
type Deps struct {
	Users          service.UserService
	UserController *controller.UserController
	Profiles       store.Backend
	// Notifier is optional; without it sessions never reload.
	Notifier  Notifier
	Scheduler session.Scheduler
	// NewMover creates the computer player of a new session.
	NewMover func() (bot.Mover, error)
	Options  session.Options
	WebDir   string
}

type Server struct {
	deps     Deps
	upgrader websocket.Upgrader
}

func NewServer(deps Deps) *Server {
	if deps.Scheduler == nil {
		deps.Scheduler = session.TimerScheduler{}
	}
	if deps.NewMover == nil {
		deps.NewMover = newRandomMover
	}
	return &Server{
		deps: deps,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// Engine builds the gin router: the JSON API, the game WebSocket and the
// static browser client for every other path.
func (s *Server) Engine() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		response.SuccessResponse(c, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.POST("/register", s.deps.UserController.Register)
	api.POST("/login", s.deps.UserController.Login)
	api.POST("/guest", s.deps.UserController.GuestLogin)
	api.GET("/profile", controller.Authenticate(s.deps.Users), s.deps.UserController.Profile)

	r.GET("/ws", s.handleWebSocket)

	if s.deps.WebDir != "" {
		r.NoRoute(gin.WrapH(http.FileServer(http.Dir(s.deps.WebDir))))
	}
	return r
}

// Handler is the traced HTTP handler served by main.
func (s *Server) Handler() http.Handler {
	return otelhttp.NewHandler(s.Engine(), "tic-tac-toe")
}

func newRandomMover() (bot.Mover, error) {
	seed, err := bot.NewSeed()
	if err != nil {
		return nil, err
	}
	return bot.NewRandomMover(seed), nil
}
