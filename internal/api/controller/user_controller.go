package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"ctchen222/Tic-Tac-Toe-N/internal/api/models"
	"ctchen222/Tic-Tac-Toe-N/internal/api/response"
	"ctchen222/Tic-Tac-Toe-N/internal/api/service"
	"ctchen222/Tic-Tac-Toe-N/internal/store"

	"github.com/gin-gonic/gin"
)

// UserController handles user-related HTTP requests.
type UserController struct {
	userService service.UserService
	profiles    store.Backend
}

// NewUserController creates a new UserController.
func NewUserController(userService service.UserService, profiles store.Backend) *UserController {
	return &UserController{
		userService: userService,
		profiles:    profiles,
	}
}

// Register handles the user registration endpoint.
func (uc *UserController) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	err := uc.userService.Register(c.Request.Context(), &req)
	if errors.Is(err, service.ErrUsernameTaken) {
		response.ErrorResponse(c, http.StatusConflict, err.Error())
		return
	}
	if err != nil {
		slog.ErrorContext(c.Request.Context(), "Failed to register user", "error", err)
		response.ErrorResponse(c, http.StatusInternalServerError, "could not create user")
		return
	}

	response.CreatedResponse(c, gin.H{"message": "User created successfully"})
}

// Login handles the user login endpoint.
func (uc *UserController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	token, profileID, err := uc.userService.Login(c.Request.Context(), &req)
	if errors.Is(err, service.ErrInvalidCredentials) {
		response.ErrorResponse(c, http.StatusUnauthorized, err.Error())
		return
	}
	if err != nil {
		slog.ErrorContext(c.Request.Context(), "Failed to log in user", "error", err)
		response.ErrorResponse(c, http.StatusInternalServerError, "could not log in")
		return
	}

	response.SuccessResponse(c, models.LoginResponse{Token: token, ProfileID: profileID})
}

// GuestLogin creates a guest profile and returns its id with a token.
func (uc *UserController) GuestLogin(c *gin.Context) {
	playerID, token, err := uc.userService.GuestLogin(c.Request.Context())
	if err != nil {
		response.ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	response.SuccessResponse(c, models.GuestResponse{PlayerID: playerID, Token: token})
}

// Profile returns the saved scores, names and mode of the caller's profile.
// Requires the Authenticate middleware.
func (uc *UserController) Profile(c *gin.Context) {
	profileID := ProfileID(c)
	ctx := c.Request.Context()

	profile, err := store.Open(uc.profiles, profileID).Load(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to load profile", "profile.id", profileID, "error", err)
		response.ErrorResponse(c, http.StatusServiceUnavailable, "profile storage unavailable")
		return
	}

	response.SuccessResponse(c, models.NewProfileResponse(profileID, profile))
}
