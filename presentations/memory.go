/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package presentations

import (
	"context"
	"slices"
	"sync"
)

// MemoryStore keeps presentations in process memory.
type MemoryStore struct {
	mu    sync.RWMutex
	items []Presentation
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Save(_ context.Context, p *Presentation) error {
	if err := prepare(p); err != nil {
		return err
	}

	stored := *p
	stored.Titles = slices.Clone(p.Titles)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.items = append(m.items, stored)

	return nil
}

func (m *MemoryStore) List(_ context.Context) ([]Presentation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Presentation, 0, len(m.items))
	for _, p := range m.items {
		p.Titles = slices.Clone(p.Titles)
		out = append(out, p)
	}

	return out, nil
}

func (m *MemoryStore) FindByName(_ context.Context, name string) (*Presentation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, p := range m.items {
		if p.Name == name {
			p.Titles = slices.Clone(p.Titles)
			return &p, nil
		}
	}

	return nil, ErrNotFound
}
