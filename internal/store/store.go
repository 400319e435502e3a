package store

import (
	"context"
	"fmt"
	"strconv"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

//go:generate mockgen -destination=mock/store_mock.go -package=mock ctchen222/Tic-Tac-Toe-N/internal/store Store

var tracer = otel.Tracer("store")

// Persistence keys, shared by every backend.
const (
	KeyPlayerXScore = "playerXScore"
	KeyPlayerOScore = "playerOScore"
	KeyPlayer1Name  = "player1Name"
	KeyPlayer2Name  = "player2Name"
	KeySoloMode     = "isSoloMode"
)

const (
	DefaultPlayer1Name = "Player 1"
	DefaultPlayer2Name = "Player 2"
	ComputerName       = "Computer"
)

// ScoreRecord holds the cumulative win counters.
type ScoreRecord struct {
	X int `json:"x"`
	O int `json:"o"`
}

// PlayerNames holds the two display names as entered by the user.
type PlayerNames struct {
	Player1 string `json:"player1"`
	Player2 string `json:"player2"`
}

// DefaultNames returns the names used when none were saved.
func DefaultNames() PlayerNames {
	return PlayerNames{Player1: DefaultPlayer1Name, Player2: DefaultPlayer2Name}
}

// Profile is everything persisted for one player profile.
type Profile struct {
	Score ScoreRecord `json:"score"`
	Names PlayerNames `json:"names"`
	Solo  bool        `json:"solo"`
}

// DefaultProfile is the profile of a first visit.
func DefaultProfile() Profile {
	return Profile{Names: DefaultNames()}
}

// Store is the score and name persistence used by a game session.
type Store interface {
	Load(ctx context.Context) (Profile, error)
	SaveScore(ctx context.Context, score ScoreRecord) error
	SaveNames(ctx context.Context, names PlayerNames) error
	SaveMode(ctx context.Context, solo bool) error
}

// KV is a flat string key-value namespace belonging to a single profile.
type KV interface {
	GetAll(ctx context.Context) (map[string]string, error)
	SetAll(ctx context.Context, values map[string]string) error
}

// Backend hands out the key-value namespace of a profile.
type Backend interface {
	ForProfile(profileID string) KV
}

// Open returns the Store of a profile on the given backend.
func Open(b Backend, profileID string) Store {
	return New(b.ForProfile(profileID), profileID)
}

type kvStore struct {
	kv        KV
	profileID string
}

// New returns a Store encoding the profile as flat string keys in kv.
func New(kv KV, profileID string) Store {
	return &kvStore{kv: kv, profileID: profileID}
}

// Load reads the profile. Missing or malformed values fall back to their
// defaults; when the backend itself fails, the defaults are returned together
// with the error.
func (s *kvStore) Load(ctx context.Context) (Profile, error) {
	ctx, span := tracer.Start(ctx, "Store.Load", trace.WithAttributes(
		attribute.String("profile.id", s.profileID),
	))
	defer span.End()

	values, err := s.kv.GetAll(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to read profile")
		return DefaultProfile(), fmt.Errorf("failed to load profile %s: %w", s.profileID, err)
	}
	return Decode(values), nil
}

// SaveScore persists both counters.
func (s *kvStore) SaveScore(ctx context.Context, score ScoreRecord) error {
	return s.save(ctx, "Store.SaveScore", map[string]string{
		KeyPlayerXScore: strconv.Itoa(score.X),
		KeyPlayerOScore: strconv.Itoa(score.O),
	})
}

// SaveNames persists both display names.
func (s *kvStore) SaveNames(ctx context.Context, names PlayerNames) error {
	return s.save(ctx, "Store.SaveNames", map[string]string{
		KeyPlayer1Name: names.Player1,
		KeyPlayer2Name: names.Player2,
	})
}

// SaveMode persists the solo flag.
func (s *kvStore) SaveMode(ctx context.Context, solo bool) error {
	return s.save(ctx, "Store.SaveMode", map[string]string{
		KeySoloMode: strconv.FormatBool(solo),
	})
}

func (s *kvStore) save(ctx context.Context, op string, values map[string]string) error {
	ctx, span := tracer.Start(ctx, op, trace.WithAttributes(
		attribute.String("profile.id", s.profileID),
	))
	defer span.End()

	if err := s.kv.SetAll(ctx, values); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to write profile")
		return fmt.Errorf("failed to save profile %s: %w", s.profileID, err)
	}
	return nil
}

// Decode converts raw stored values into a Profile, applying defaults.
func Decode(values map[string]string) Profile {
	p := DefaultProfile()
	p.Score.X = parseCount(values[KeyPlayerXScore])
	p.Score.O = parseCount(values[KeyPlayerOScore])
	if name := values[KeyPlayer1Name]; name != "" {
		p.Names.Player1 = name
	}
	if name := values[KeyPlayer2Name]; name != "" {
		p.Names.Player2 = name
	}
	p.Solo = values[KeySoloMode] == "true"
	return p
}

func parseCount(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
