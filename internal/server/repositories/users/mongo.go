package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/omkar-28/authd/internal/common"
	"github.com/omkar-28/authd/internal/server/models"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// CollectionName is the Mongo collection holding user documents.
const CollectionName = "users"

// userDocument is the stored shape of a user. Cleared tokens are absent
// from the document rather than stored empty.
type userDocument struct {
	ID                     bson.ObjectID `bson:"_id,omitempty"`
	Email                  string        `bson:"email"`
	Password               string        `bson:"password"`
	Name                   string        `bson:"name"`
	IsVerified             bool          `bson:"isVerified"`
	VerificationToken      string        `bson:"verificationToken,omitempty"`
	VerificationExpiredAt  *time.Time    `bson:"verificationExpiredAt,omitempty"`
	ResetPasswordToken     string        `bson:"resetPasswordToken,omitempty"`
	ResetPasswordExpiredAt *time.Time    `bson:"resetPasswordExpiredAt,omitempty"`
	LastLogin              *time.Time    `bson:"lastLogin,omitempty"`
	CreatedAt              time.Time     `bson:"createdAt"`
	UpdatedAt              time.Time     `bson:"updatedAt"`
}

type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(coll *mongo.Collection) *MongoRepository {
	return &MongoRepository{coll: coll}
}

// EnsureIndexes creates the unique email index and sparse indexes for the
// two token lookups. It is idempotent.
func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("email_unique"),
		},
		{
			Keys:    bson.D{{Key: "verificationToken", Value: 1}},
			Options: options.Index().SetSparse(true).SetName("verification_token"),
		},
		{
			Keys:    bson.D{{Key: "resetPasswordToken", Value: 1}},
			Options: options.Index().SetSparse(true).SetName("reset_password_token"),
		},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *MongoRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	doc, err := toDocument(user)
	if err != nil {
		return nil, err
	}
	if doc.ID.IsZero() {
		doc.ID = bson.NewObjectID()
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, common.ErrAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	user.ID = doc.ID.Hex()
	return user, nil
}

func (r *MongoRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, common.ErrorNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *MongoRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *MongoRepository) GetByVerificationToken(ctx context.Context, code string, now time.Time) (*models.User, error) {
	if code == "" {
		return nil, common.ErrorNotFound
	}
	return r.findOne(ctx, tokenFilter("verificationToken", "verificationExpiredAt", code, now))
}

func (r *MongoRepository) GetByResetToken(ctx context.Context, token string, now time.Time) (*models.User, error) {
	if token == "" {
		return nil, common.ErrorNotFound
	}
	return r.findOne(ctx, tokenFilter("resetPasswordToken", "resetPasswordExpiredAt", token, now))
}

func (r *MongoRepository) Update(ctx context.Context, user *models.User) error {
	doc, err := toDocument(user)
	if err != nil {
		return common.ErrorNotFound
	}

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return common.ErrAlreadyExists
		}
		return fmt.Errorf("db error: %w", err)
	}
	if res.MatchedCount == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *MongoRepository) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var doc userDocument
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return fromDocument(&doc), nil
}

// tokenFilter matches token whose expiry lies after now.
func tokenFilter(tokenField, expiryField, token string, now time.Time) bson.M {
	return bson.M{
		tokenField:  token,
		expiryField: bson.M{"$gt": now},
	}
}

func toDocument(u *models.User) (*userDocument, error) {
	doc := &userDocument{
		Email:                  u.Email,
		Password:               u.Password,
		Name:                   u.Name,
		IsVerified:             u.IsVerified,
		VerificationToken:      u.VerificationToken,
		VerificationExpiredAt:  u.VerificationExpiredAt,
		ResetPasswordToken:     u.ResetPasswordToken,
		ResetPasswordExpiredAt: u.ResetPasswordExpiredAt,
		LastLogin:              u.LastLogin,
		CreatedAt:              u.CreatedAt,
		UpdatedAt:              u.UpdatedAt,
	}

	if u.ID != "" {
		oid, err := bson.ObjectIDFromHex(u.ID)
		if err != nil {
			return nil, fmt.Errorf("invalid user id %q: %w", u.ID, err)
		}
		doc.ID = oid
	}
	return doc, nil
}

func fromDocument(d *userDocument) *models.User {
	return &models.User{
		ID:                     d.ID.Hex(),
		Email:                  d.Email,
		Password:               d.Password,
		Name:                   d.Name,
		IsVerified:             d.IsVerified,
		VerificationToken:      d.VerificationToken,
		VerificationExpiredAt:  d.VerificationExpiredAt,
		ResetPasswordToken:     d.ResetPasswordToken,
		ResetPasswordExpiredAt: d.ResetPasswordExpiredAt,
		LastLogin:              d.LastLogin,
		CreatedAt:              d.CreatedAt,
		UpdatedAt:              d.UpdatedAt,
	}
}
