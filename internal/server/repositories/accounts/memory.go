package accounts

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
)

// MemoryRepository keeps accounts in process memory. The check and insert in
// Create happen under one lock, which is what makes uniqueness atomic here.
type MemoryRepository struct {
	mu      sync.RWMutex
	byID    map[int64]models.Account
	byEmail map[string]int64
	lastID  int64
	now     func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:    make(map[int64]models.Account),
		byEmail: make(map[string]int64),
		now:     time.Now,
	}
}

func (r *MemoryRepository) Create(ctx context.Context, account *models.Account) (*models.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[account.Email]; ok {
		return nil, common.ErrAlreadyExists
	}

	r.lastID++
	account.ID = r.lastID
	account.CreatedAt = r.now().UTC()

	r.byID[account.ID] = *account
	r.byEmail[account.Email] = account.ID

	return account, nil
}

func (r *MemoryRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	a := r.byID[id]
	return &a, nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, id int64) (*models.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &a, nil
}

// Len reports how many accounts are stored.
func (r *MemoryRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}
