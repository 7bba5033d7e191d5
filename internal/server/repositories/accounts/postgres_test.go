package accounts

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	insertQuery     = `(?s)^INSERT\s+INTO\s+accounts\s*\(email,\s*password_hash,\s*first_name,\s*last_name\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4\)\s*RETURNING\s+id,\s*created_at\s*$`
	selectByEmailRe = `(?s)^SELECT\s+id,\s*email,\s*password_hash,\s*first_name,\s*last_name,\s*created_at\s+FROM\s+accounts\s+WHERE\s+email\s*=\s*\$1\s*$`
	selectByIDRe    = `(?s)^SELECT\s+id,\s*email,\s*password_hash,\s*first_name,\s*last_name,\s*created_at\s+FROM\s+accounts\s+WHERE\s+id\s*=\s*\$1\s*$`
)

var accountColumns = []string{"id", "email", "password_hash", "first_name", "last_name", "created_at"}

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

	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(1), created)
	mock.ExpectQuery(insertQuery).
		WithArgs("a@x.com", "$argon2id$hash", nil, nil).
		WillReturnRows(rows)

	a := &models.Account{Email: "a@x.com", PasswordHash: "$argon2id$hash"}
	got, err := repo.Create(context.Background(), a)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != 1 || got.Email != "a@x.com" || !got.CreatedAt.Equal(created) {
		t.Fatalf("unexpected account: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestCreate_UniqueViolation(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(insertQuery).
		WithArgs("a@x.com", "h", nil, nil).
		WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "accounts_email_key"})

	_, err := repo.Create(context.Background(), &models.Account{Email: "a@x.com", PasswordHash: "h"})
	if !errors.Is(err, common.ErrAlreadyExists) {
		t.Fatalf("want common.ErrAlreadyExists, got %v", err)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(insertQuery).
		WithArgs("a@x.com", "h", nil, nil).
		WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), &models.Account{Email: "a@x.com", PasswordHash: "h"})
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
	if errors.Is(err, common.ErrAlreadyExists) {
		t.Fatalf("generic failure must not look like a duplicate")
	}
}

func TestCreate_OtherPgErrorIsNotDuplicate(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(insertQuery).
		WithArgs("a@x.com", "h", nil, nil).
		WillReturnError(&pgconn.PgError{Code: pgerrcode.NotNullViolation})

	_, err := repo.Create(context.Background(), &models.Account{Email: "a@x.com", PasswordHash: "h"})
	if err == nil || errors.Is(err, common.ErrAlreadyExists) {
		t.Fatalf("expected generic db error, got %v", err)
	}
}

func TestGetByEmail_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows(accountColumns).
		AddRow(int64(1), "a@x.com", "$argon2id$hash", "Ada", nil, time.Now())
	mock.ExpectQuery(selectByEmailRe).
		WithArgs("a@x.com").
		WillReturnRows(rows)

	got, err := repo.GetByEmail(context.Background(), "a@x.com")
	if err != nil {
		t.Fatalf("GetByEmail error: %v", err)
	}
	if got.ID != 1 || got.PasswordHash != "$argon2id$hash" {
		t.Fatalf("unexpected account: %+v", got)
	}
	if got.FirstName == nil || *got.FirstName != "Ada" || got.LastName != nil {
		t.Fatalf("unexpected names: first=%v last=%v", got.FirstName, got.LastName)
	}
}

func TestGetByEmail_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(selectByEmailRe).
		WithArgs("ghost@x.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByEmail(context.Background(), "ghost@x.com")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestGetByEmail_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(selectByEmailRe).
		WithArgs("a@x.com").
		WillReturnError(errors.New("db err"))

	_, err := repo.GetByEmail(context.Background(), "a@x.com")
	if err == nil || !regexp.MustCompile(`db error: .*db err`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestGetByID_FoundAndNotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(selectByIDRe).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(accountColumns).
			AddRow(int64(5), "b@x.com", "h", nil, nil, time.Now()))
	mock.ExpectQuery(selectByIDRe).
		WithArgs(int64(6)).
		WillReturnError(sql.ErrNoRows)

	got, err := repo.GetByID(context.Background(), 5)
	if err != nil || got.Email != "b@x.com" {
		t.Fatalf("GetByID found: got (%+v, %v)", got, err)
	}

	if _, err := repo.GetByID(context.Background(), 6); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}
