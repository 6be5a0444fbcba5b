package state

import (
	"context"
	"fmt"
	"sync"
)

type InMemoryStateManager struct {
	lock   sync.RWMutex
	status *Status
}

func NewInMemoryStateManager() *InMemoryStateManager {
	return &InMemoryStateManager{
		status: &Status{},
	}
}

func (m *InMemoryStateManager) Get(ctx context.Context) (*Status, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.status.Clone(), nil
}

func (m *InMemoryStateManager) Set(ctx context.Context, status *Status) error {
	if status == nil {
		return fmt.Errorf("status is nil")
	}

	m.lock.Lock()
	defer m.lock.Unlock()
	m.status = status.Clone()
	return nil
}
