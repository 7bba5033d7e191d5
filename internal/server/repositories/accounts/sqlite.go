package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/dbx"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// SQLiteRepository stores accounts in SQLite through modernc.org/sqlite.
// created_at is kept as unix milliseconds.
type SQLiteRepository struct {
	db  dbx.DBTX
	now func() time.Time
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db, now: time.Now}
}

func (r *SQLiteRepository) Create(ctx context.Context, account *models.Account) (*models.Account, error) {
	query :=
		`INSERT INTO accounts (email, password_hash, first_name, last_name, created_at)
		 VALUES (?, ?, ?, ?, ?)
		 RETURNING id`

	createdAt := r.now().UTC().Truncate(time.Millisecond)

	err := r.db.QueryRowContext(ctx, query,
		account.Email, account.PasswordHash, account.FirstName, account.LastName, createdAt.UnixMilli()).Scan(&account.ID)
	if err != nil {
		if isSQLiteUniqueViolation(err) {
			return nil, common.ErrAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	account.CreatedAt = createdAt

	return account, nil
}

func (r *SQLiteRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	query :=
		`SELECT id, email, password_hash, first_name, last_name, created_at FROM accounts
		 WHERE email = ?`

	return r.scanOne(r.db.QueryRowContext(ctx, query, email))
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id int64) (*models.Account, error) {
	query :=
		`SELECT id, email, password_hash, first_name, last_name, created_at FROM accounts
		 WHERE id = ?`

	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteRepository) scanOne(row *sql.Row) (*models.Account, error) {
	account := &models.Account{}
	var firstName, lastName sql.NullString
	var createdAt int64

	err := row.Scan(&account.ID, &account.Email, &account.PasswordHash, &firstName, &lastName, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	account.FirstName = nullStringPtr(firstName)
	account.LastName = nullStringPtr(lastName)
	account.CreatedAt = time.UnixMilli(createdAt).UTC()

	return account, nil
}

func isSQLiteUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_UNIQUE, sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY:
			return true
		}
	}
	message := strings.ToLower(err.Error())
	return strings.Contains(message, "unique constraint failed") &&
		strings.Contains(message, "accounts.email")
}
