package users

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/omkar-28/authd/internal/common"
	"github.com/omkar-28/authd/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testUserID = "6f1c2b1e-8d4a-4c1e-9a37-2f0d5c4b7e11"

var userRowColumns = []string{
	"id", "email", "password", "name", "is_verified",
	"verification_token", "verification_expired_at",
	"reset_password_token", "reset_password_expired_at",
	"last_login", "created_at", "updated_at",
}

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	exp := now.Add(24 * time.Hour)

	mock.ExpectExec(`(?s)^INSERT\s+INTO\s+users\s*\(id,\s*email,.*VALUES\s*\(\$1,.*\$12\)`).
		WithArgs(sqlmock.AnyArg(), "a@x.com", "hash", "A", false,
			"123456", sqlmock.AnyArg(), nil, sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	u := &models.User{
		Email: "a@x.com", Password: "hash", Name: "A",
		VerificationToken: "123456", VerificationExpiredAt: &exp,
		CreatedAt: now, UpdatedAt: now,
	}
	got, err := repo.Create(context.Background(), u)
	require.NoError(t, err)
	assert.NotEmpty(t, got.ID, "id must be generated")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_DuplicateEmail(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO users`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	_, err := repo.Create(context.Background(), &models.User{Email: "a@x.com"})
	if !errors.Is(err, common.ErrAlreadyExists) {
		t.Fatalf("want common.ErrAlreadyExists, got %v", err)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO users`).WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), &models.User{Email: "a@x.com"})
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestGetByEmail_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now().UTC()
	exp := now.Add(time.Hour)

	rows := sqlmock.NewRows(userRowColumns).
		AddRow(testUserID, "a@x.com", "hash", "A", false, "123456", exp, nil, nil, nil, now, now)
	mock.ExpectQuery(`(?s)^SELECT\s+id,\s*email,.*FROM\s+users\s+WHERE\s+email\s*=\s*\$1\s*$`).
		WithArgs("a@x.com").
		WillReturnRows(rows)

	got, err := repo.GetByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, testUserID, got.ID)
	assert.Equal(t, "123456", got.VerificationToken)
	require.NotNil(t, got.VerificationExpiredAt)
	assert.True(t, exp.Equal(*got.VerificationExpiredAt))
	assert.Empty(t, got.ResetPasswordToken)
	assert.Nil(t, got.ResetPasswordExpiredAt)
	assert.Nil(t, got.LastLogin)
}

func TestGetByEmail_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`WHERE\s+email`).
		WithArgs("ghost@x.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByEmail(context.Background(), "ghost@x.com")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestGetByID_InvalidUUIDSkipsQuery(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	_, err := repo.GetByID(context.Background(), "not-a-uuid")
	require.ErrorIs(t, err, common.ErrorNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now().UTC()
	rows := sqlmock.NewRows(userRowColumns).
		AddRow(testUserID, "a@x.com", "hash", "A", true, nil, nil, nil, nil, now, now, now)
	mock.ExpectQuery(`WHERE\s+id\s*=\s*\$1`).
		WithArgs(testUserID).
		WillReturnRows(rows)

	got, err := repo.GetByID(context.Background(), testUserID)
	require.NoError(t, err)
	assert.True(t, got.IsVerified)
	require.NotNil(t, got.LastLogin)
}

func TestGetByVerificationToken_FiltersOnExpiry(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`(?s)WHERE\s+verification_token\s*=\s*\$1\s+AND\s+verification_expired_at\s*>\s*\$2`).
		WithArgs("123456", now).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByVerificationToken(context.Background(), "123456", now)
	require.ErrorIs(t, err, common.ErrorNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByResetToken_FiltersOnExpiry(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now().UTC()
	exp := now.Add(time.Hour)
	rows := sqlmock.NewRows(userRowColumns).
		AddRow(testUserID, "a@x.com", "hash", "A", true, nil, nil, "tok", exp, nil, now, now)
	mock.ExpectQuery(`(?s)WHERE\s+reset_password_token\s*=\s*\$1\s+AND\s+reset_password_expired_at\s*>\s*\$2`).
		WithArgs("tok", now).
		WillReturnRows(rows)

	got, err := repo.GetByResetToken(context.Background(), "tok", now)
	require.NoError(t, err)
	assert.Equal(t, "tok", got.ResetPasswordToken)
}

func TestUpdate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)^UPDATE\s+users\s+SET.*WHERE\s+id\s*=\s*\$1`).
		WithArgs(testUserID, "a@x.com", "hash", "A", true,
			nil, sqlmock.AnyArg(), nil, sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Update(context.Background(), &models.User{
		ID: testUserID, Email: "a@x.com", Password: "hash", Name: "A", IsVerified: true, UpdatedAt: time.Now(),
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_NoRows(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE users`).WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &models.User{ID: testUserID})
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestUpdate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE users`).WillReturnError(errors.New("db err"))

	err := repo.Update(context.Background(), &models.User{ID: testUserID})
	if err == nil || !regexp.MustCompile(`db error: .*db err`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}
