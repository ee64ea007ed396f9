package users

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/omkar-28/authd/internal/common"
	"github.com/omkar-28/authd/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepository_CreateAndLookup(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	now := time.Now()
	exp := now.Add(time.Hour)

	u, err := repo.Create(ctx, &models.User{Email: "a@x.com", VerificationToken: "123456", VerificationExpiredAt: &exp})
	require.NoError(t, err)
	require.NotEmpty(t, u.ID)

	byEmail, err := repo.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)

	byID, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", byID.Email)

	_, err = repo.GetByVerificationToken(ctx, "123456", now)
	require.NoError(t, err)

	_, err = repo.GetByVerificationToken(ctx, "123456", exp)
	require.ErrorIs(t, err, common.ErrorNotFound, "expired token must not match")

	_, err = repo.GetByResetToken(ctx, "", now)
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestMemoryRepository_DuplicateEmail(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	_, err := repo.Create(ctx, &models.User{Email: "a@x.com"})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &models.User{Email: "a@x.com"})
	require.ErrorIs(t, err, common.ErrAlreadyExists)
	assert.Equal(t, 1, repo.Len())
}

func TestMemoryRepository_ReturnsCopies(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	u, err := repo.Create(ctx, &models.User{Email: "a@x.com", Name: "A"})
	require.NoError(t, err)

	u.Name = "mutated"
	got, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "A", got.Name)

	got.Name = "again"
	again, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "A", again.Name)
}

func TestMemoryRepository_Update(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	u, err := repo.Create(ctx, &models.User{Email: "a@x.com"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &models.User{Email: "b@x.com"})
	require.NoError(t, err)

	u.IsVerified = true
	require.NoError(t, repo.Update(ctx, u))

	got, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, got.IsVerified)

	u.Email = "b@x.com"
	require.ErrorIs(t, repo.Update(ctx, u), common.ErrAlreadyExists)

	require.ErrorIs(t, repo.Update(ctx, &models.User{ID: "missing"}), common.ErrorNotFound)
}

func TestMemoryRepository_ConcurrentSignupsSameEmail(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = repo.Create(ctx, &models.User{Email: "race@x.com"})
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, repo.Len())
}
