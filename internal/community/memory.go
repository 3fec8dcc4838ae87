package community

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"
)

type memoryCommentRepository struct {
	mu   sync.RWMutex
	byID map[uuid.UUID]*Comment
}

// NewMemoryCommentRepository constructs an in-memory comment repository.
func NewMemoryCommentRepository() CommentRepository {
	return &memoryCommentRepository{byID: make(map[uuid.UUID]*Comment)}
}

func (m *memoryCommentRepository) Create(_ context.Context, comment *Comment) (*Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cloned := cloneComment(comment)
	cloned.Author = nil
	m.byID[cloned.ID] = cloned
	return cloneComment(cloned), nil
}

func (m *memoryCommentRepository) GetByID(_ context.Context, id uuid.UUID) (*Comment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.byID[id]
	if !ok {
		return nil, &NotFoundError{Resource: "comment", Key: id.String()}
	}
	return cloneComment(record), nil
}

func (m *memoryCommentRepository) ListByPost(_ context.Context, postID uuid.UUID) ([]*Comment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := make([]*Comment, 0)
	for _, record := range m.byID {
		if record.PostID == postID {
			records = append(records, cloneComment(record))
		}
	}
	slices.SortStableFunc(records, func(a, b *Comment) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return records, nil
}

func (m *memoryCommentRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byID[id]; !ok {
		return &NotFoundError{Resource: "comment", Key: id.String()}
	}
	delete(m.byID, id)
	return nil
}

type ratingKey struct {
	post uuid.UUID
	user uuid.UUID
}

type memoryRatingRepository struct {
	mu    sync.RWMutex
	byKey map[ratingKey]*Rating
}

// NewMemoryRatingRepository constructs an in-memory rating repository.
func NewMemoryRatingRepository() RatingRepository {
	return &memoryRatingRepository{byKey: make(map[ratingKey]*Rating)}
}

func (m *memoryRatingRepository) Create(_ context.Context, rating *Rating) (*Rating, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := ratingKey{post: rating.PostID, user: rating.UserID}
	if _, exists := m.byKey[key]; exists {
		return nil, ErrAlreadyRated
	}
	cloned := cloneRating(rating)
	m.byKey[key] = cloned
	return cloneRating(cloned), nil
}

func (m *memoryRatingRepository) GetByPostAndUser(_ context.Context, postID, userID uuid.UUID) (*Rating, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.byKey[ratingKey{post: postID, user: userID}]
	if !ok {
		return nil, &NotFoundError{Resource: "rating", Key: postID.String() + "/" + userID.String()}
	}
	return cloneRating(record), nil
}

func (m *memoryRatingRepository) ListByPost(_ context.Context, postID uuid.UUID) ([]*Rating, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := make([]*Rating, 0)
	for key, record := range m.byKey {
		if key.post == postID {
			records = append(records, cloneRating(record))
		}
	}
	return records, nil
}

func (m *memoryRatingRepository) Update(_ context.Context, rating *Rating) (*Rating, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := ratingKey{post: rating.PostID, user: rating.UserID}
	existing, ok := m.byKey[key]
	if !ok || existing.ID != rating.ID {
		return nil, &NotFoundError{Resource: "rating", Key: rating.ID.String()}
	}
	cloned := cloneRating(rating)
	m.byKey[key] = cloned
	return cloneRating(cloned), nil
}
