package repomanager

import (
	"context"

	"github.com/omkar-28/authd/internal/server/repositories/users"
)

// MemoryRepositoryManager keeps everything in process memory. Data is lost on
// restart.
type MemoryRepositoryManager struct {
	users *users.MemoryRepository
}

func (m *MemoryRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *MemoryRepositoryManager) Ping(context.Context) error {
	return nil
}

func (m *MemoryRepositoryManager) Close(context.Context) error {
	return nil
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{users: users.NewMemoryRepository()}
}
