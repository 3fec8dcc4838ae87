package identity

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"
)

type memoryProfileRepository struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]*Profile
	byEmail map[string]uuid.UUID
}

// NewMemoryProfileRepository constructs an in-memory profile repository.
func NewMemoryProfileRepository() ProfileRepository {
	return &memoryProfileRepository{
		byID:    make(map[uuid.UUID]*Profile),
		byEmail: make(map[string]uuid.UUID),
	}
}

func (m *memoryProfileRepository) Create(_ context.Context, profile *Profile) (*Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.byEmail[profile.Email]; exists {
		return nil, ErrEmailTaken
	}
	cloned := cloneProfile(profile)
	m.byID[cloned.ID] = cloned
	m.byEmail[cloned.Email] = cloned.ID
	return cloneProfile(cloned), nil
}

func (m *memoryProfileRepository) GetByID(_ context.Context, id uuid.UUID) (*Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.byID[id]
	if !ok {
		return nil, &NotFoundError{Resource: "profile", Key: id.String()}
	}
	return cloneProfile(record), nil
}

func (m *memoryProfileRepository) GetByEmail(_ context.Context, email string) (*Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.byEmail[email]
	if !ok {
		return nil, &NotFoundError{Resource: "profile", Key: email}
	}
	return cloneProfile(m.byID[id]), nil
}

func (m *memoryProfileRepository) List(_ context.Context) ([]*Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := make([]*Profile, 0, len(m.byID))
	for _, record := range m.byID {
		records = append(records, cloneProfile(record))
	}
	slices.SortStableFunc(records, func(a, b *Profile) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return records, nil
}

func (m *memoryProfileRepository) Update(_ context.Context, profile *Profile) (*Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.byID[profile.ID]
	if !ok {
		return nil, &NotFoundError{Resource: "profile", Key: profile.ID.String()}
	}
	if existing.Email != profile.Email {
		if _, taken := m.byEmail[profile.Email]; taken {
			return nil, ErrEmailTaken
		}
		delete(m.byEmail, existing.Email)
		m.byEmail[profile.Email] = profile.ID
	}
	cloned := cloneProfile(profile)
	m.byID[cloned.ID] = cloned
	return cloneProfile(cloned), nil
}
