package service

import (
	"sync"

	"github.com/adityamakwana707/globetrotter-sub000/core/errors"
	"github.com/adityamakwana707/globetrotter-sub000/core/utils"
)

// Draft bundles the engine objects of one trip draft being edited.
type Draft struct {
	ID        string
	OwnerID   string
	Store     *DayStore
	Placement *PlacementService

	mu sync.Mutex
}

// Lock serializes engine operations on this draft. Request handlers and
// the enrichment worker both mutate the same Store, so every access path
// must hold the draft lock for its whole read-modify-write.
func (d *Draft) Lock() { d.mu.Lock() }

// Unlock releases the draft lock.
func (d *Draft) Unlock() { d.mu.Unlock() }

// DraftManager keeps the in-memory drafts between requests. The registry
// map is guarded here; state inside a draft is guarded by the draft's
// own lock.
type DraftManager struct {
	mu     sync.RWMutex
	drafts map[string]*Draft
}

// NewDraftManager creates an empty registry.
func NewDraftManager() *DraftManager {
	return &DraftManager{drafts: make(map[string]*Draft)}
}

// Create opens a fresh draft for the owner and returns it.
func (m *DraftManager) Create(ownerID string) *Draft {
	store := NewDayStore(NewTimeGrid())
	draft := &Draft{
		ID:        utils.GenerateID(),
		OwnerID:   ownerID,
		Store:     store,
		Placement: NewPlacementService(store),
	}

	m.mu.Lock()
	m.drafts[draft.ID] = draft
	m.mu.Unlock()
	return draft
}

// Get returns the draft if it exists and belongs to the owner.
func (m *DraftManager) Get(draftID, ownerID string) (*Draft, *errors.AppError) {
	m.mu.RLock()
	draft, ok := m.drafts[draftID]
	m.mu.RUnlock()

	if !ok {
		return nil, errors.NewAppError(errors.ErrNotFound, "Draft not found", nil)
	}
	if draft.OwnerID != ownerID {
		return nil, errors.NewAppError(errors.ErrForbidden, "Draft belongs to another user", nil)
	}
	return draft, nil
}

// Discard drops a draft from the registry. Unknown ids are a no-op so a
// double-discard from a racing UI is harmless.
func (m *DraftManager) Discard(draftID string) {
	m.mu.Lock()
	delete(m.drafts, draftID)
	m.mu.Unlock()
}
