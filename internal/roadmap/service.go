package roadmap

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/goliatone/go-blog/internal/localization"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/slugs"
	"github.com/goliatone/go-blog/pkg/interfaces"
	"github.com/google/uuid"
)

var (
	ErrTopicNotFound      = errors.New("roadmap: topic not found")
	ErrItemNotFound       = errors.New("roadmap: item not found")
	ErrTopicTitleRequired = errors.New("roadmap: topic title is required")
	ErrItemTitleRequired  = errors.New("roadmap: item title is required")
	ErrInvalidSlug        = errors.New("roadmap: slug is invalid")
	ErrSlugExists         = errors.New("roadmap: slug already exists")
	ErrInvalidStatus      = errors.New("roadmap: status must be todo, in_progress or done")
)

// Service manages roadmap topics and their items.
type Service interface {
	ListTopics(ctx context.Context) ([]*Topic, error)
	GetTopicBySlug(ctx context.Context, slug string) (*Topic, error)
	CreateTopic(ctx context.Context, req CreateTopicRequest) (*Topic, error)
	UpdateTopic(ctx context.Context, req UpdateTopicRequest) (*Topic, error)
	DeleteTopic(ctx context.Context, id uuid.UUID) error
	AddItem(ctx context.Context, req AddItemRequest) (*Item, error)
	UpdateItemStatus(ctx context.Context, id uuid.UUID, status Status) (*Item, error)
	CycleItemStatus(ctx context.Context, id uuid.UUID) (*Item, error)
	DeleteItem(ctx context.Context, id uuid.UUID) error
	Summaries(ctx context.Context, locale localization.Locale) ([]TopicSummary, error)
}

// CreateTopicRequest captures the fields needed to add a topic. Slug is
// derived from the resolved title when empty.
type CreateTopicRequest struct {
	Slug          string
	Title         localization.Field
	Description   localization.Field
	PrivacyPolicy localization.Field
}

// UpdateTopicRequest replaces a topic's editable fields.
type UpdateTopicRequest struct {
	ID            uuid.UUID
	Slug          string
	Title         localization.Field
	Description   localization.Field
	PrivacyPolicy localization.Field
	SortOrder     *int
}

// AddItemRequest appends an item to a topic.
type AddItemRequest struct {
	TopicID uuid.UUID
	Title   localization.Field
}

// IDGenerator produces identifiers for new records.
type IDGenerator func() uuid.UUID

// ServiceOption configures the roadmap service.
type ServiceOption func(*service)

// WithClock overrides the internal time source.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

// WithIDGenerator overrides the identifier generator.
func WithIDGenerator(generator IDGenerator) ServiceOption {
	return func(s *service) {
		if generator != nil {
			s.id = generator
		}
	}
}

// WithLogger sets the logger used for write operations.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

type service struct {
	topics TopicRepository
	items  ItemRepository
	now    func() time.Time
	id     IDGenerator
	logger interfaces.Logger
}

// NewService constructs a roadmap service.
func NewService(topics TopicRepository, items ItemRepository, opts ...ServiceOption) Service {
	if topics == nil {
		panic("roadmap: topic repository is required")
	}
	if items == nil {
		panic("roadmap: item repository is required")
	}
	s := &service{
		topics: topics,
		items:  items,
		now:    time.Now,
		id:     uuid.New,
		logger: logging.RoadmapLogger(nil),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) ListTopics(ctx context.Context) ([]*Topic, error) {
	topics, err := s.topics.List(ctx)
	if err != nil {
		return nil, err
	}
	items, err := s.items.List(ctx)
	if err != nil {
		return nil, err
	}
	byTopic := make(map[uuid.UUID][]*Item, len(topics))
	for _, item := range items {
		byTopic[item.TopicID] = append(byTopic[item.TopicID], item)
	}
	for _, topic := range topics {
		topic.Items = byTopic[topic.ID]
		sortItems(topic.Items)
	}
	return topics, nil
}

func (s *service) GetTopicBySlug(ctx context.Context, slug string) (*Topic, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, ErrTopicNotFound
	}
	topic, err := s.topics.GetBySlug(ctx, slug)
	if err != nil {
		return nil, translateNotFound(err, ErrTopicNotFound)
	}
	items, err := s.items.ListByTopic(ctx, topic.ID)
	if err != nil {
		return nil, err
	}
	topic.Items = items
	return topic, nil
}

func (s *service) CreateTopic(ctx context.Context, req CreateTopicRequest) (*Topic, error) {
	if req.Title.IsEmpty() {
		return nil, ErrTopicTitleRequired
	}
	slug, err := s.topicSlug(ctx, req.Slug, req.Title, uuid.Nil)
	if err != nil {
		return nil, err
	}
	existing, err := s.topics.List(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	topic := &Topic{
		ID:            s.id(),
		Slug:          slug,
		Title:         req.Title,
		Description:   req.Description,
		PrivacyPolicy: req.PrivacyPolicy,
		SortOrder:     len(existing) + 1,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	created, err := s.topics.Create(ctx, topic)
	if err != nil {
		return nil, err
	}
	logging.ForContext(ctx, s.logger).Info("roadmap.topic.created", "topic_id", created.ID, "slug", created.Slug)
	return created, nil
}

func (s *service) UpdateTopic(ctx context.Context, req UpdateTopicRequest) (*Topic, error) {
	topic, err := s.topics.GetByID(ctx, req.ID)
	if err != nil {
		return nil, translateNotFound(err, ErrTopicNotFound)
	}
	if req.Title.IsEmpty() {
		return nil, ErrTopicTitleRequired
	}
	slug, err := s.topicSlug(ctx, req.Slug, req.Title, topic.ID)
	if err != nil {
		return nil, err
	}
	topic.Slug = slug
	topic.Title = req.Title
	topic.Description = req.Description
	topic.PrivacyPolicy = req.PrivacyPolicy
	if req.SortOrder != nil {
		topic.SortOrder = *req.SortOrder
	}
	topic.UpdatedAt = s.now().UTC()
	topic.Items = nil

	updated, err := s.topics.Update(ctx, topic)
	if err != nil {
		return nil, translateNotFound(err, ErrTopicNotFound)
	}
	logging.ForContext(ctx, s.logger).Info("roadmap.topic.updated", "topic_id", updated.ID, "slug", updated.Slug)
	return updated, nil
}

func (s *service) DeleteTopic(ctx context.Context, id uuid.UUID) error {
	if _, err := s.topics.GetByID(ctx, id); err != nil {
		return translateNotFound(err, ErrTopicNotFound)
	}
	if err := s.items.DeleteByTopic(ctx, id); err != nil {
		return err
	}
	if err := s.topics.Delete(ctx, id); err != nil {
		return translateNotFound(err, ErrTopicNotFound)
	}
	logging.ForContext(ctx, s.logger).Info("roadmap.topic.deleted", "topic_id", id)
	return nil
}

func (s *service) AddItem(ctx context.Context, req AddItemRequest) (*Item, error) {
	if req.Title.IsEmpty() {
		return nil, ErrItemTitleRequired
	}
	if _, err := s.topics.GetByID(ctx, req.TopicID); err != nil {
		return nil, translateNotFound(err, ErrTopicNotFound)
	}
	existing, err := s.items.ListByTopic(ctx, req.TopicID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	item := &Item{
		ID:        s.id(),
		TopicID:   req.TopicID,
		Title:     req.Title,
		Status:    StatusTodo,
		SortOrder: len(existing) + 1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	created, err := s.items.Create(ctx, item)
	if err != nil {
		return nil, err
	}
	logging.ForContext(ctx, s.logger).Info("roadmap.item.created", "item_id", created.ID, "topic_id", created.TopicID)
	return created, nil
}

func (s *service) UpdateItemStatus(ctx context.Context, id uuid.UUID, status Status) (*Item, error) {
	parsed, ok := ParseStatus(string(status))
	if !ok {
		return nil, ErrInvalidStatus
	}
	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		return nil, translateNotFound(err, ErrItemNotFound)
	}
	return s.saveStatus(ctx, item, parsed)
}

func (s *service) CycleItemStatus(ctx context.Context, id uuid.UUID) (*Item, error) {
	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		return nil, translateNotFound(err, ErrItemNotFound)
	}
	return s.saveStatus(ctx, item, item.Status.Next())
}

func (s *service) saveStatus(ctx context.Context, item *Item, status Status) (*Item, error) {
	previous := item.Status
	item.Status = status
	item.UpdatedAt = s.now().UTC()
	updated, err := s.items.Update(ctx, item)
	if err != nil {
		return nil, translateNotFound(err, ErrItemNotFound)
	}
	logging.ForContext(ctx, s.logger).Info("roadmap.item.status", "item_id", updated.ID, "from", previous, "to", updated.Status)
	return updated, nil
}

func (s *service) DeleteItem(ctx context.Context, id uuid.UUID) error {
	if err := s.items.Delete(ctx, id); err != nil {
		return translateNotFound(err, ErrItemNotFound)
	}
	logging.ForContext(ctx, s.logger).Info("roadmap.item.deleted", "item_id", id)
	return nil
}

func (s *service) Summaries(ctx context.Context, locale localization.Locale) ([]TopicSummary, error) {
	topics, err := s.ListTopics(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]TopicSummary, 0, len(topics))
	for _, topic := range topics {
		out = append(out, Summarize(topic, locale))
	}
	return out, nil
}

// Summarize resolves topic for locale and computes its progress.
func Summarize(topic *Topic, locale localization.Locale) TopicSummary {
	percent := Progress(topic.Items)
	summary := TopicSummary{
		ID:          topic.ID,
		Slug:        topic.Slug,
		Title:       localization.Resolve(topic.Title, locale),
		Description: localization.Resolve(topic.Description, locale),
		Percent:     percent,
		Status:      DeriveStatus(percent),
		Items:       make([]ItemSummary, 0, len(topic.Items)),
	}
	for _, item := range topic.Items {
		if item == nil {
			continue
		}
		summary.Items = append(summary.Items, ItemSummary{
			ID:     item.ID,
			Title:  localization.Resolve(item.Title, locale),
			Status: item.Status,
		})
	}
	if current := CurrentItem(topic.Items); current != nil {
		summary.Current = &ItemSummary{
			ID:     current.ID,
			Title:  localization.Resolve(current.Title, locale),
			Status: current.Status,
		}
	}
	return summary
}

func (s *service) topicSlug(ctx context.Context, requested string, title localization.Field, self uuid.UUID) (string, error) {
	slug := strings.TrimSpace(requested)
	if slug == "" {
		slug = slugs.Slugify(localization.Resolve(title, localization.DefaultLocale))
	}
	if !slugs.IsValid(slug) {
		return "", ErrInvalidSlug
	}
	existing, err := s.topics.GetBySlug(ctx, slug)
	if err == nil && existing != nil && existing.ID != self {
		return "", ErrSlugExists
	}
	if err != nil && !isNotFound(err) {
		return "", err
	}
	return slug, nil
}

func isNotFound(err error) bool {
	var notFound *NotFoundError
	return errors.As(err, &notFound)
}

func translateNotFound(err, sentinel error) error {
	if isNotFound(err) {
		return sentinel
	}
	return err
}
