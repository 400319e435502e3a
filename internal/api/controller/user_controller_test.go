package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ctchen222/Tic-Tac-Toe-N/internal/api/repository"
	"ctchen222/Tic-Tac-Toe-N/internal/api/service"
	"ctchen222/Tic-Tac-Toe-N/internal/db"
	"ctchen222/Tic-Tac-Toe-N/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool            `json:"success"`
	Code    int             `json:"code"`
	Extras  json.RawMessage `json:"extras"`
}

type apiFixture struct {
	engine   *gin.Engine
	profiles *store.MemoryBackend
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	conn, err := db.Connect(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, db.InitializeDB(context.Background(), conn))

	users := service.NewUserService(repository.NewUserRepository(conn), []byte("test-secret"))
	profiles := store.NewMemoryBackend()
	uc := NewUserController(users, profiles)

	r := gin.New()
	api := r.Group("/api")
	api.POST("/register", uc.Register)
	api.POST("/login", uc.Login)
	api.POST("/guest", uc.GuestLogin)
	api.GET("/profile", Authenticate(users), uc.Profile)

	return &apiFixture{engine: r, profiles: profiles}
}

func (f *apiFixture) do(t *testing.T, method, path, body, token string) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.NewDecoder(bytes.NewReader(w.Body.Bytes())).Decode(&env), w.Body.String())
	return w.Code, env
}

func TestRegisterAndLogin(t *testing.T) {
	f := newAPIFixture(t)
	creds := `{"username":"ada","password":"secret1"}`

	code, env := f.do(t, http.MethodPost, "/api/register", creds, "")
	assert.Equal(t, http.StatusCreated, code)
	assert.True(t, env.Success)

	code, _ = f.do(t, http.MethodPost, "/api/register", creds, "")
	assert.Equal(t, http.StatusConflict, code)

	code, env = f.do(t, http.MethodPost, "/api/login", creds, "")
	require.Equal(t, http.StatusOK, code)
	var login struct {
		Token     string `json:"token"`
		ProfileID string `json:"profile_id"`
	}
	require.NoError(t, json.Unmarshal(env.Extras, &login))
	assert.NotEmpty(t, login.Token)
	assert.Equal(t, "user:1", login.ProfileID)

	code, _ = f.do(t, http.MethodPost, "/api/login", `{"username":"ada","password":"wrong-one"}`, "")
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestRegister_BadRequest(t *testing.T) {
	f := newAPIFixture(t)

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"username":`},
		{"short username", `{"username":"ab","password":"secret1"}`},
		{"short password", `{"username":"ada","password":"123"}`},
		{"missing fields", `{}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, env := f.do(t, http.MethodPost, "/api/register", tt.body, "")
			assert.Equal(t, http.StatusBadRequest, code)
			assert.False(t, env.Success)
		})
	}
}

func TestGuestAndProfile(t *testing.T) {
	ctx := context.Background()
	f := newAPIFixture(t)

	code, env := f.do(t, http.MethodPost, "/api/guest", "", "")
	require.Equal(t, http.StatusOK, code)
	var guest struct {
		PlayerID string `json:"player_id"`
		Token    string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Extras, &guest))
	assert.True(t, strings.HasPrefix(guest.PlayerID, "guest:"))

	st := store.Open(f.profiles, guest.PlayerID)
	require.NoError(t, st.SaveScore(ctx, store.ScoreRecord{X: 2, O: 1}))
	require.NoError(t, st.SaveMode(ctx, true))

	code, env = f.do(t, http.MethodGet, "/api/profile", "", guest.Token)
	require.Equal(t, http.StatusOK, code)
	var profile struct {
		ProfileID string            `json:"profile_id"`
		Score     store.ScoreRecord `json:"score"`
		Names     store.PlayerNames `json:"names"`
		Solo      bool              `json:"solo"`
	}
	require.NoError(t, json.Unmarshal(env.Extras, &profile))
	assert.Equal(t, guest.PlayerID, profile.ProfileID)
	assert.Equal(t, store.ScoreRecord{X: 2, O: 1}, profile.Score)
	assert.Equal(t, store.DefaultNames(), profile.Names)
	assert.True(t, profile.Solo)
}

func TestProfile_Unauthorized(t *testing.T) {
	f := newAPIFixture(t)

	code, _ := f.do(t, http.MethodGet, "/api/profile", "", "")
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = f.do(t, http.MethodGet, "/api/profile", "", "forged")
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"Bearer abc", "abc"},
		{"bearer abc ", "abc"},
		{"Basic abc", ""},
		{"abc", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			assert.Equal(t, tt.want, BearerToken(tt.header))
		})
	}
}
