package users

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/omkar-28/authd/internal/common"
	"github.com/omkar-28/authd/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

func TestMongoDocument_ClearedTokensAreAbsent(t *testing.T) {
	u := &models.User{
		ID:         bson.NewObjectID().Hex(),
		Email:      "a@x.com",
		Password:   "hash",
		Name:       "A",
		IsVerified: true,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	doc, err := toDocument(u)
	require.NoError(t, err)

	b, err := bson.Marshal(doc)
	require.NoError(t, err)
	raw := bson.Raw(b)

	for _, field := range []string{"verificationToken", "verificationExpiredAt", "resetPasswordToken", "resetPasswordExpiredAt", "lastLogin"} {
		_, err := raw.LookupErr(field)
		assert.Error(t, err, "field %s must be absent", field)
	}
	_, err = raw.LookupErr("isVerified")
	assert.NoError(t, err)
}

func TestMongoDocument_RoundTrip(t *testing.T) {
	exp := time.Now().Add(time.Hour).UTC()
	u := &models.User{
		ID:                    bson.NewObjectID().Hex(),
		Email:                 "a@x.com",
		VerificationToken:     "123456",
		VerificationExpiredAt: &exp,
	}

	doc, err := toDocument(u)
	require.NoError(t, err)
	got := fromDocument(doc)

	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, "123456", got.VerificationToken)
	assert.Equal(t, &exp, got.VerificationExpiredAt)
}

func TestMongoDocument_InvalidID(t *testing.T) {
	_, err := toDocument(&models.User{ID: "zzz"})
	require.Error(t, err)
}

func TestMongoTokenFilter(t *testing.T) {
	now := time.Now()
	f := tokenFilter("resetPasswordToken", "resetPasswordExpiredAt", "tok", now)

	assert.Equal(t, "tok", f["resetPasswordToken"])
	assert.Equal(t, bson.M{"$gt": now}, f["resetPasswordExpiredAt"])
}

func TestMongoRepository_LookupsShortCircuit(t *testing.T) {
	repo := NewMongoRepository(nil)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, "not-an-object-id")
	require.ErrorIs(t, err, common.ErrorNotFound)

	_, err = repo.GetByVerificationToken(ctx, "", time.Now())
	require.ErrorIs(t, err, common.ErrorNotFound)

	_, err = repo.GetByResetToken(ctx, "", time.Now())
	require.ErrorIs(t, err, common.ErrorNotFound)
}

// TestMongoRepository_Integration runs against a live server when
// AUTHD_TEST_MONGO_URI is set, e.g. mongodb://localhost:27017.
func TestMongoRepository_Integration(t *testing.T) {
	uri := os.Getenv("AUTHD_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("AUTHD_TEST_MONGO_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	db := client.Database("authd_test_" + bson.NewObjectID().Hex())
	t.Cleanup(func() { _ = db.Drop(context.Background()) })

	repo := NewMongoRepository(db.Collection(CollectionName))
	require.NoError(t, repo.EnsureIndexes(ctx))

	now := time.Now().UTC().Truncate(time.Millisecond)
	exp := now.Add(time.Hour)

	u, err := repo.Create(ctx, &models.User{
		Email: "a@x.com", Password: "hash", Name: "A",
		VerificationToken: "123456", VerificationExpiredAt: &exp,
		CreatedAt: now, UpdatedAt: now,
	})
	require.NoError(t, err)
	require.NotEmpty(t, u.ID)

	_, err = repo.Create(ctx, &models.User{Email: "a@x.com"})
	require.ErrorIs(t, err, common.ErrAlreadyExists)

	got, err := repo.GetByVerificationToken(ctx, "123456", now)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = repo.GetByVerificationToken(ctx, "123456", exp.Add(time.Second))
	require.ErrorIs(t, err, common.ErrorNotFound)

	got.IsVerified = true
	got.ClearVerification()
	require.NoError(t, repo.Update(ctx, got))

	_, err = repo.GetByVerificationToken(ctx, "123456", now)
	require.ErrorIs(t, err, common.ErrorNotFound)

	byID, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, byID.IsVerified)

	require.ErrorIs(t, repo.Update(ctx, &models.User{ID: bson.NewObjectID().Hex()}), common.ErrorNotFound)
}
