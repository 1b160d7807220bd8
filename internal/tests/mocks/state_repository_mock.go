package mocks

import (
	"context"
	"sync"
)

// StateRepositoryMock keeps the last saved payload in memory. Set the Func
// fields to override behaviour.
type StateRepositoryMock struct {
	NamespaceValue string
	LoadFunc       func(ctx context.Context) ([]byte, error)
	SaveFunc       func(ctx context.Context, payload []byte) error
	DeleteFunc     func(ctx context.Context) error

	mu      sync.Mutex
	payload []byte
	saves   int
}

func (m *StateRepositoryMock) Namespace() string {
	return m.NamespaceValue
}

func (m *StateRepositoryMock) Load(ctx context.Context) ([]byte, error) {
	if m.LoadFunc != nil {
		return m.LoadFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.payload == nil {
		return nil, nil
	}
	return append([]byte(nil), m.payload...), nil
}

func (m *StateRepositoryMock) Save(ctx context.Context, payload []byte) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, payload)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payload = append([]byte(nil), payload...)
	m.saves++
	return nil
}

func (m *StateRepositoryMock) Delete(ctx context.Context) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payload = nil
	return nil
}

// Payload returns the last payload written through Save.
func (m *StateRepositoryMock) Payload() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]byte(nil), m.payload...)
}

func (m *StateRepositoryMock) SaveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}
