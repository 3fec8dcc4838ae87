package roadmap

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"
)

type memoryTopicRepository struct {
	mu     sync.RWMutex
	byID   map[uuid.UUID]*Topic
	bySlug map[string]uuid.UUID
}

// NewMemoryTopicRepository constructs an in-memory topic repository.
func NewMemoryTopicRepository() TopicRepository {
	return &memoryTopicRepository{
		byID:   make(map[uuid.UUID]*Topic),
		bySlug: make(map[string]uuid.UUID),
	}
}

func (m *memoryTopicRepository) Create(_ context.Context, topic *Topic) (*Topic, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cloned := cloneTopic(topic)
	cloned.Items = nil
	m.byID[cloned.ID] = cloned
	m.bySlug[cloned.Slug] = cloned.ID
	return cloneTopic(cloned), nil
}

func (m *memoryTopicRepository) GetByID(_ context.Context, id uuid.UUID) (*Topic, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.byID[id]
	if !ok {
		return nil, &NotFoundError{Resource: "roadmap_topic", Key: id.String()}
	}
	return cloneTopic(record), nil
}

func (m *memoryTopicRepository) GetBySlug(_ context.Context, slug string) (*Topic, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.bySlug[slug]
	if !ok {
		return nil, &NotFoundError{Resource: "roadmap_topic", Key: slug}
	}
	return cloneTopic(m.byID[id]), nil
}

func (m *memoryTopicRepository) List(_ context.Context) ([]*Topic, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := make([]*Topic, 0, len(m.byID))
	for _, record := range m.byID {
		records = append(records, cloneTopic(record))
	}
	slices.SortStableFunc(records, func(a, b *Topic) int {
		if a.SortOrder != b.SortOrder {
			return a.SortOrder - b.SortOrder
		}
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return records, nil
}

func (m *memoryTopicRepository) Update(_ context.Context, topic *Topic) (*Topic, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.byID[topic.ID]
	if !ok {
		return nil, &NotFoundError{Resource: "roadmap_topic", Key: topic.ID.String()}
	}
	if existing.Slug != topic.Slug {
		delete(m.bySlug, existing.Slug)
	}
	cloned := cloneTopic(topic)
	cloned.Items = nil
	m.byID[cloned.ID] = cloned
	m.bySlug[cloned.Slug] = cloned.ID
	return cloneTopic(cloned), nil
}

func (m *memoryTopicRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.byID[id]
	if !ok {
		return &NotFoundError{Resource: "roadmap_topic", Key: id.String()}
	}
	delete(m.bySlug, existing.Slug)
	delete(m.byID, id)
	return nil
}

type memoryItemRepository struct {
	mu   sync.RWMutex
	byID map[uuid.UUID]*Item
}

// NewMemoryItemRepository constructs an in-memory item repository.
func NewMemoryItemRepository() ItemRepository {
	return &memoryItemRepository{byID: make(map[uuid.UUID]*Item)}
}

func (m *memoryItemRepository) Create(_ context.Context, item *Item) (*Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cloned := cloneItem(item)
	m.byID[cloned.ID] = cloned
	return cloneItem(cloned), nil
}

func (m *memoryItemRepository) GetByID(_ context.Context, id uuid.UUID) (*Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.byID[id]
	if !ok {
		return nil, &NotFoundError{Resource: "roadmap_item", Key: id.String()}
	}
	return cloneItem(record), nil
}

func (m *memoryItemRepository) ListByTopic(_ context.Context, topicID uuid.UUID) ([]*Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := make([]*Item, 0)
	for _, record := range m.byID {
		if record.TopicID == topicID {
			records = append(records, cloneItem(record))
		}
	}
	sortItems(records)
	return records, nil
}

func (m *memoryItemRepository) List(_ context.Context) ([]*Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := make([]*Item, 0, len(m.byID))
	for _, record := range m.byID {
		records = append(records, cloneItem(record))
	}
	sortItems(records)
	return records, nil
}

func (m *memoryItemRepository) Update(_ context.Context, item *Item) (*Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byID[item.ID]; !ok {
		return nil, &NotFoundError{Resource: "roadmap_item", Key: item.ID.String()}
	}
	cloned := cloneItem(item)
	m.byID[cloned.ID] = cloned
	return cloneItem(cloned), nil
}

func (m *memoryItemRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byID[id]; !ok {
		return &NotFoundError{Resource: "roadmap_item", Key: id.String()}
	}
	delete(m.byID, id)
	return nil
}

func (m *memoryItemRepository) DeleteByTopic(_ context.Context, topicID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, record := range m.byID {
		if record.TopicID == topicID {
			delete(m.byID, id)
		}
	}
	return nil
}

func sortItems(items []*Item) {
	slices.SortStableFunc(items, func(a, b *Item) int {
		if a.SortOrder != b.SortOrder {
			return a.SortOrder - b.SortOrder
		}
		return a.CreatedAt.Compare(b.CreatedAt)
	})
}
