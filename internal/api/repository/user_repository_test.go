package repository

import (
	"context"
	"testing"

	"ctchen222/Tic-Tac-Toe-N/internal/api/models"
	"ctchen222/Tic-Tac-Toe-N/internal/db"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newRepo(t *testing.T) UserRepository {
	t.Helper()
	conn, err := db.Connect(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, db.InitializeDB(context.Background(), conn))
	return NewUserRepository(conn)
}

func TestUserRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	user := &models.User{Username: "ada"}
	require.NoError(t, repo.CreateUser(ctx, user, "secret1"))
	assert.NotZero(t, user.ID)

	got, err := repo.GetUserByUsername(ctx, "ada")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, user.ID, got.ID)
	assert.NotEqual(t, "secret1", got.PasswordHash, "passwords are stored hashed")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(got.PasswordHash), []byte("secret1")))
}

func TestUserRepository_Missing(t *testing.T) {
	got, err := newRepo(t).GetUserByUsername(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUserRepository_DuplicateUsername(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	require.NoError(t, repo.CreateUser(ctx, &models.User{Username: "ada"}, "secret1"))

	err := repo.CreateUser(ctx, &models.User{Username: "ada"}, "secret2")
	assert.Error(t, err)
}
