package content

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
)

type memoryPostRepository struct {
	mu     sync.RWMutex
	byID   map[uuid.UUID]*Post
	bySlug map[string]uuid.UUID
}

// NewMemoryPostRepository constructs an in-memory post repository.
func NewMemoryPostRepository() PostRepository {
	return &memoryPostRepository{
		byID:   make(map[uuid.UUID]*Post),
		bySlug: make(map[string]uuid.UUID),
	}
}

func (m *memoryPostRepository) Create(_ context.Context, post *Post) (*Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.bySlug[post.Slug]; exists {
		return nil, &DuplicateError{Resource: "post", Key: post.Slug}
	}
	cloned := clonePost(post)
	cloned.Category = nil
	m.byID[cloned.ID] = cloned
	m.bySlug[cloned.Slug] = cloned.ID
	return clonePost(cloned), nil
}

func (m *memoryPostRepository) GetByID(_ context.Context, id uuid.UUID) (*Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.byID[id]
	if !ok {
		return nil, &NotFoundError{Resource: "post", Key: id.String()}
	}
	return clonePost(record), nil
}

func (m *memoryPostRepository) GetBySlug(_ context.Context, slug string) (*Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.bySlug[slug]
	if !ok {
		return nil, &NotFoundError{Resource: "post", Key: slug}
	}
	return clonePost(m.byID[id]), nil
}

func (m *memoryPostRepository) List(_ context.Context, filter PostFilter) ([]*Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := make([]*Post, 0, len(m.byID))
	for _, record := range m.byID {
		if record.Draft && !filter.IncludeDrafts {
			continue
		}
		if filter.CategoryID != nil && (record.CategoryID == nil || *record.CategoryID != *filter.CategoryID) {
			continue
		}
		records = append(records, clonePost(record))
	}
	sortNewestFirst(records)
	return records, nil
}

func (m *memoryPostRepository) Update(_ context.Context, post *Post) (*Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.byID[post.ID]
	if !ok {
		return nil, &NotFoundError{Resource: "post", Key: post.ID.String()}
	}
	if owner, taken := m.bySlug[post.Slug]; taken && owner != post.ID {
		return nil, &DuplicateError{Resource: "post", Key: post.Slug}
	}
	delete(m.bySlug, existing.Slug)
	cloned := clonePost(post)
	cloned.Category = nil
	m.byID[cloned.ID] = cloned
	m.bySlug[cloned.Slug] = cloned.ID
	return clonePost(cloned), nil
}

func (m *memoryPostRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.byID[id]
	if !ok {
		return &NotFoundError{Resource: "post", Key: id.String()}
	}
	delete(m.bySlug, existing.Slug)
	delete(m.byID, id)
	return nil
}

type memoryCategoryRepository struct {
	mu     sync.RWMutex
	byID   map[uuid.UUID]*Category
	bySlug map[string]uuid.UUID
}

// NewMemoryCategoryRepository constructs an in-memory category repository.
func NewMemoryCategoryRepository() CategoryRepository {
	return &memoryCategoryRepository{
		byID:   make(map[uuid.UUID]*Category),
		bySlug: make(map[string]uuid.UUID),
	}
}

func (m *memoryCategoryRepository) Create(_ context.Context, category *Category) (*Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.bySlug[category.Slug]; exists {
		return nil, &DuplicateError{Resource: "category", Key: category.Slug}
	}
	cloned := cloneCategory(category)
	m.byID[cloned.ID] = cloned
	m.bySlug[cloned.Slug] = cloned.ID
	return cloneCategory(cloned), nil
}

func (m *memoryCategoryRepository) GetByID(_ context.Context, id uuid.UUID) (*Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.byID[id]
	if !ok {
		return nil, &NotFoundError{Resource: "category", Key: id.String()}
	}
	return cloneCategory(record), nil
}

func (m *memoryCategoryRepository) GetBySlug(_ context.Context, slug string) (*Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.bySlug[slug]
	if !ok {
		return nil, &NotFoundError{Resource: "category", Key: slug}
	}
	return cloneCategory(m.byID[id]), nil
}

func (m *memoryCategoryRepository) List(_ context.Context) ([]*Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := make([]*Category, 0, len(m.byID))
	for _, record := range m.byID {
		records = append(records, cloneCategory(record))
	}
	slices.SortStableFunc(records, func(a, b *Category) int {
		if a.SortOrder != b.SortOrder {
			return a.SortOrder - b.SortOrder
		}
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.Slug, b.Slug)
	})
	return records, nil
}

func (m *memoryCategoryRepository) Update(_ context.Context, category *Category) (*Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.byID[category.ID]
	if !ok {
		return nil, &NotFoundError{Resource: "category", Key: category.ID.String()}
	}
	if owner, taken := m.bySlug[category.Slug]; taken && owner != category.ID {
		return nil, &DuplicateError{Resource: "category", Key: category.Slug}
	}
	delete(m.bySlug, existing.Slug)
	cloned := cloneCategory(category)
	m.byID[cloned.ID] = cloned
	m.bySlug[cloned.Slug] = cloned.ID
	return cloneCategory(cloned), nil
}

func (m *memoryCategoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.byID[id]
	if !ok {
		return &NotFoundError{Resource: "category", Key: id.String()}
	}
	delete(m.bySlug, existing.Slug)
	delete(m.byID, id)
	return nil
}

type memoryTagRepository struct {
	mu     sync.RWMutex
	byID   map[uuid.UUID]*Tag
	byName map[string]uuid.UUID
	bySlug map[string]uuid.UUID
}

// NewMemoryTagRepository constructs an in-memory tag repository.
func NewMemoryTagRepository() TagRepository {
	return &memoryTagRepository{
		byID:   make(map[uuid.UUID]*Tag),
		byName: make(map[string]uuid.UUID),
		bySlug: make(map[string]uuid.UUID),
	}
}

func (m *memoryTagRepository) Create(_ context.Context, tag *Tag) (*Tag, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, nameTaken := m.byName[tag.Name]
	_, slugTaken := m.bySlug[tag.Slug]
	if nameTaken || slugTaken {
		return nil, &DuplicateError{Resource: "tag", Key: tag.Name}
	}
	cloned := cloneTag(tag)
	m.byID[cloned.ID] = cloned
	m.byName[cloned.Name] = cloned.ID
	m.bySlug[cloned.Slug] = cloned.ID
	return cloneTag(cloned), nil
}

func (m *memoryTagRepository) GetByID(_ context.Context, id uuid.UUID) (*Tag, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.byID[id]
	if !ok {
		return nil, &NotFoundError{Resource: "tag", Key: id.String()}
	}
	return cloneTag(record), nil
}

func (m *memoryTagRepository) GetByName(_ context.Context, name string) (*Tag, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.byName[name]
	if !ok {
		return nil, &NotFoundError{Resource: "tag", Key: name}
	}
	return cloneTag(m.byID[id]), nil
}

func (m *memoryTagRepository) List(_ context.Context) ([]*Tag, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := make([]*Tag, 0, len(m.byID))
	for _, record := range m.byID {
		records = append(records, cloneTag(record))
	}
	slices.SortFunc(records, func(a, b *Tag) int {
		return strings.Compare(a.Name, b.Name)
	})
	return records, nil
}

func (m *memoryTagRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.byID[id]
	if !ok {
		return &NotFoundError{Resource: "tag", Key: id.String()}
	}
	delete(m.byName, existing.Name)
	delete(m.bySlug, existing.Slug)
	delete(m.byID, id)
	return nil
}

func sortNewestFirst(posts []*Post) {
	slices.SortStableFunc(posts, func(a, b *Post) int {
		if c := b.PublishedAt.Compare(a.PublishedAt); c != 0 {
			return c
		}
		return b.CreatedAt.Compare(a.CreatedAt)
	})
}
