package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ctchen222/Tic-Tac-Toe-N/internal/api/models"
	"ctchen222/Tic-Tac-Toe-N/internal/api/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	userProfilePrefix  = "user:"
	guestProfilePrefix = "guest:"
	defaultTokenTTL    = 72 * time.Hour
)

var (
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid token")
)

// Claims are carried by every issued token. The subject is the profile id.
type Claims struct {
	Username string `json:"un,omitempty"`
	jwt.RegisteredClaims
}

// UserService defines the interface for user-related business logic.
type UserService interface {
	Register(ctx context.Context, req *models.RegisterRequest) error
	Login(ctx context.Context, req *models.LoginRequest) (token string, profileID string, err error)
	GuestLogin(ctx context.Context) (profileID string, token string, err error)
	ParseToken(token string) (profileID string, err error)
}

type userService struct {
	userRepo repository.UserRepository
	secret   []byte
	ttl      time.Duration
	now      func() time.Time
}

// NewUserService creates a new UserService signing tokens with secret.
func NewUserService(userRepo repository.UserRepository, secret []byte) UserService {
	return &userService{
		userRepo: userRepo,
		secret:   secret,
		ttl:      defaultTokenTTL,
		now:      time.Now,
	}
}

// UserProfileID is the profile id of a registered user.
func UserProfileID(userID int64) string {
	return fmt.Sprintf("%s%d", userProfilePrefix, userID)
}

// IsGuestProfile reports whether profileID belongs to a guest.
func IsGuestProfile(profileID string) bool {
	return strings.HasPrefix(profileID, guestProfilePrefix)
}

// NewGuestProfileID returns a fresh guest profile id.
func NewGuestProfileID() string {
	return guestProfilePrefix + uuid.New().String()
}

// Register handles user registration.
func (s *userService) Register(ctx context.Context, req *models.RegisterRequest) error {
	// Check if user already exists
	existingUser, err := s.userRepo.GetUserByUsername(ctx, req.Username)
	if err != nil {
		return err
	}
	if existingUser != nil {
		return ErrUsernameTaken
	}

	user := &models.User{
		Username: req.Username,
	}

	return s.userRepo.CreateUser(ctx, user, req.Password)
}

// Login checks the credentials and returns a JWT for the user's profile.
func (s *userService) Login(ctx context.Context, req *models.LoginRequest) (string, string, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, req.Username)
	if err != nil {
		return "", "", err
	}
	if user == nil {
		return "", "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return "", "", ErrInvalidCredentials
	}

	profileID := UserProfileID(user.ID)
	token, err := s.sign(profileID, user.Username)
	if err != nil {
		return "", "", err
	}
	return token, profileID, nil
}

// GuestLogin creates a guest profile id and a token for it.
func (s *userService) GuestLogin(ctx context.Context) (string, string, error) {
	profileID := NewGuestProfileID()
	token, err := s.sign(profileID, "")
	if err != nil {
		return "", "", err
	}
	return profileID, token, nil
}

// ParseToken validates a token and returns the profile id it was issued for.
func (s *userService) ParseToken(tokenString string) (string, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	return claims.Subject, nil
}

func (s *userService) sign(profileID, username string) (string, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   profileID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	})

	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}
