package interactionrepo

import (
	"context"
	"sync"

	"github.com/yanqian/care-moments/internal/domain/interaction"
)

// MemoryRepository is an in-memory interaction.Repository used for tests/dev.
type MemoryRepository struct {
	mu      sync.RWMutex
	access  map[string]map[string]struct{}
	records map[string][]interaction.Record
}

// NewMemoryRepository constructs a repo backed by memory.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		access:  make(map[string]map[string]struct{}),
		records: make(map[string][]interaction.Record),
	}
}

// Grant lets viewerID see recipientID.
func (r *MemoryRepository) Grant(viewerID, recipientID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.access[viewerID] == nil {
		r.access[viewerID] = make(map[string]struct{})
	}
	r.access[viewerID][recipientID] = struct{}{}
}

// Add stores records under their RecipientID.
func (r *MemoryRepository) Add(records ...interaction.Record) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range records {
		r.records[rec.RecipientID] = append(r.records[rec.RecipientID], rec)
	}
}

// List implements interaction.Repository.
func (r *MemoryRepository) List(_ context.Context, q interaction.Query) ([]interaction.Record, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if _, ok := r.access[q.ViewerID][q.RecipientID]; !ok {
		return nil, false, nil
	}
	out := make([]interaction.Record, 0, len(r.records[q.RecipientID]))
	for _, rec := range r.records[q.RecipientID] {
		at, ok := rec.CreatedAt.Time()
		if !ok || at.Before(q.Since) {
			continue
		}
		out = append(out, rec)
	}
	return interaction.SortNewestFirst(out), true, nil
}

var _ interaction.Repository = (*MemoryRepository)(nil)
