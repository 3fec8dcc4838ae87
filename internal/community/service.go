package community

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-blog/internal/identity"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
	"github.com/google/uuid"
)

// MaxCommentLength is the longest comment accepted, in runes.
const MaxCommentLength = 2000

var (
	ErrCommentNotFound = errors.New("community: comment not found")
	ErrNotCommentOwner = errors.New("community: only the author can delete a comment")
	ErrAuthorBlocked   = errors.New("community: profile is blocked")
	ErrUnknownAuthor   = errors.New("community: profile not found")
	ErrAlreadyRated    = errors.New("community: post already rated by this profile")
)

// Profiles resolves comment authors. identity.ProfileService satisfies it.
type Profiles interface {
	GetProfiles(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*identity.Profile, error)
}

// Service manages comments and ratings on published posts. Callers resolve
// the post before calling in.
type Service interface {
	ListComments(ctx context.Context, postID uuid.UUID) ([]*Comment, error)
	AddComment(ctx context.Context, postID, userID uuid.UUID, text string) (*Comment, error)
	// DeleteComment removes a comment on behalf of its author.
	DeleteComment(ctx context.Context, id, userID uuid.UUID) error
	// RemoveComment removes any comment. Reserved for moderators.
	RemoveComment(ctx context.Context, id uuid.UUID) error
	RatingSummary(ctx context.Context, postID, userID uuid.UUID) (RatingSummary, error)
	// Rate records value for the reader, replacing any earlier rating.
	Rate(ctx context.Context, postID, userID uuid.UUID, value int) (*Rating, error)
}

// IDGenerator produces identifiers for new records.
type IDGenerator func() uuid.UUID

// ServiceOption configures the community service.
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

// WithLogger sets the logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

type service struct {
	comments CommentRepository
	ratings  RatingRepository
	profiles Profiles
	now      func() time.Time
	id       IDGenerator
	logger   interfaces.Logger
}

// NewService constructs the community service.
func NewService(comments CommentRepository, ratings RatingRepository, profiles Profiles, opts ...ServiceOption) Service {
	if comments == nil || ratings == nil || profiles == nil {
		panic("community: service requires comment, rating and profile dependencies")
	}
	s := &service{
		comments: comments,
		ratings:  ratings,
		profiles: profiles,
		now:      time.Now,
		id:       uuid.New,
		logger:   logging.CommunityLogger(nil),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) ListComments(ctx context.Context, postID uuid.UUID) ([]*Comment, error) {
	comments, err := s.comments.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(comments))
	for _, comment := range comments {
		ids = append(ids, comment.UserID)
	}
	profiles, err := s.profiles.GetProfiles(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, comment := range comments {
		comment.Author = authorOf(profiles[comment.UserID])
	}
	return comments, nil
}

func (s *service) AddComment(ctx context.Context, postID, userID uuid.UUID, text string) (*Comment, error) {
	content := strings.TrimSpace(text)
	if err := validation.Validate(content,
		validation.Required.ErrorObject(validation.NewError("community.comment.required", "comment cannot be empty")),
		validation.RuneLength(0, MaxCommentLength),
	); err != nil {
		return nil, validation.Errors{"content": err}
	}
	profile, err := s.author(ctx, userID)
	if err != nil {
		return nil, err
	}

	created, err := s.comments.Create(ctx, &Comment{
		ID:        s.id(),
		PostID:    postID,
		UserID:    userID,
		Content:   content,
		CreatedAt: s.now().UTC(),
	})
	if err != nil {
		return nil, err
	}
	created.Author = authorOf(profile)
	logging.ForContext(ctx, s.logger).Info("community.comment.created", "comment_id", created.ID, "post_id", postID, "user_id", userID)
	return created, nil
}

func (s *service) DeleteComment(ctx context.Context, id, userID uuid.UUID) error {
	comment, err := s.comments.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return ErrCommentNotFound
		}
		return err
	}
	if comment.UserID != userID {
		return ErrNotCommentOwner
	}
	return s.RemoveComment(ctx, id)
}

func (s *service) RemoveComment(ctx context.Context, id uuid.UUID) error {
	if err := s.comments.Delete(ctx, id); err != nil {
		if isNotFound(err) {
			return ErrCommentNotFound
		}
		return err
	}
	logging.ForContext(ctx, s.logger).Info("community.comment.deleted", "comment_id", id)
	return nil
}

func (s *service) RatingSummary(ctx context.Context, postID, userID uuid.UUID) (RatingSummary, error) {
	ratings, err := s.ratings.ListByPost(ctx, postID)
	if err != nil {
		return RatingSummary{}, err
	}
	summary := RatingSummary{Total: len(ratings)}
	sum := 0
	for _, rating := range ratings {
		sum += rating.Value
		if userID != uuid.Nil && rating.UserID == userID {
			summary.UserValue = rating.Value
		}
	}
	if summary.Total > 0 {
		summary.Average = math.Round(float64(sum)/float64(summary.Total)*10) / 10
	}
	return summary, nil
}

func (s *service) Rate(ctx context.Context, postID, userID uuid.UUID, value int) (*Rating, error) {
	if err := validation.Validate(value, validation.Required, validation.Min(1), validation.Max(5)); err != nil {
		return nil, validation.Errors{"value": err}
	}
	if _, err := s.author(ctx, userID); err != nil {
		return nil, err
	}
	now := s.now().UTC()

	existing, err := s.ratings.GetByPostAndUser(ctx, postID, userID)
	switch {
	case err == nil:
		existing.Value = value
		existing.UpdatedAt = now
		updated, err := s.ratings.Update(ctx, existing)
		if err != nil {
			return nil, err
		}
		logging.ForContext(ctx, s.logger).Info("community.rating.updated", "post_id", postID, "user_id", userID, "value", value)
		return updated, nil
	case !isNotFound(err):
		return nil, err
	}

	created, err := s.ratings.Create(ctx, &Rating{
		ID:        s.id(),
		PostID:    postID,
		UserID:    userID,
		Value:     value,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, err
	}
	logging.ForContext(ctx, s.logger).Info("community.rating.created", "post_id", postID, "user_id", userID, "value", value)
	return created, nil
}

func (s *service) author(ctx context.Context, userID uuid.UUID) (*identity.Profile, error) {
	profiles, err := s.profiles.GetProfiles(ctx, []uuid.UUID{userID})
	if err != nil {
		return nil, err
	}
	profile, ok := profiles[userID]
	if !ok {
		return nil, ErrUnknownAuthor
	}
	if profile.IsBlocked {
		return nil, ErrAuthorBlocked
	}
	return profile, nil
}

func authorOf(profile *identity.Profile) *Author {
	if profile == nil {
		return &Author{DisplayName: "anonymous", Initial: "?"}
	}
	name := profile.Name()
	initial := "?"
	if r, _ := utf8.DecodeRuneInString(name); r != utf8.RuneError {
		initial = strings.ToUpper(string(r))
	}
	return &Author{DisplayName: name, AvatarURL: profile.AvatarURL, Initial: initial}
}

// TimeAgo renders the age of t relative to now as now, 5m, 3h or 2d.
func TimeAgo(now, t time.Time) string {
	minutes := int(now.Sub(t) / time.Minute)
	switch {
	case minutes < 1:
		return "now"
	case minutes < 60:
		return strconv.Itoa(minutes) + "m"
	}
	hours := minutes / 60
	if hours < 24 {
		return strconv.Itoa(hours) + "h"
	}
	return strconv.Itoa(hours/24) + "d"
}

func isNotFound(err error) bool {
	var notFound *NotFoundError
	return errors.As(err, &notFound)
}
