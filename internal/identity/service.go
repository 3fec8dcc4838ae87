package identity

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials = errors.New("identity: invalid email or password")
	ErrProfileBlocked     = errors.New("identity: profile is blocked")
	ErrProfileNotFound    = errors.New("identity: profile not found")
	ErrEmailTaken         = errors.New("identity: email already registered")
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// SignUpInput carries a new reader's credentials.
type SignUpInput struct {
	Email       string
	Password    string
	DisplayName string
}

// Validate checks the input with ozzo-validation rules. bcrypt ignores bytes
// past 72 so longer passwords are rejected.
func (in SignUpInput) Validate() error {
	return validation.Errors{
		"email":        validation.Validate(normalizeEmail(in.Email), validation.Required, validation.Match(emailPattern)),
		"password":     validation.Validate(in.Password, validation.Required, validation.Length(8, 72)),
		"display_name": validation.Validate(strings.TrimSpace(in.DisplayName), validation.Length(0, 64)),
	}.Filter()
}

// AuthService registers readers and issues sessions. There is no lockout or
// rate limiting.
type AuthService interface {
	SignUp(ctx context.Context, input SignUpInput) (*Session, error)
	SignIn(ctx context.Context, email, password string) (*Session, error)
	// Authenticate verifies token and returns the current profile.
	Authenticate(ctx context.Context, token string) (*Profile, error)
}

// ProfileService lists and moderates profiles.
type ProfileService interface {
	ListProfiles(ctx context.Context) ([]*Profile, error)
	GetProfile(ctx context.Context, id uuid.UUID) (*Profile, error)
	// GetProfiles returns the profiles that exist among ids.
	GetProfiles(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*Profile, error)
	Block(ctx context.Context, id uuid.UUID) (*Profile, error)
	Unblock(ctx context.Context, id uuid.UUID) (*Profile, error)
	// EnsureAdmin creates or promotes the admin account for email.
	EnsureAdmin(ctx context.Context, email, password string) (*Profile, error)
}

// Service combines authentication and profile moderation.
type Service interface {
	AuthService
	ProfileService
}

// IDGenerator produces identifiers for new records.
type IDGenerator func() uuid.UUID

// ServiceOption configures the identity services.
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

// WithBcryptCost overrides the bcrypt work factor.
func WithBcryptCost(cost int) ServiceOption {
	return func(s *service) {
		s.cost = cost
	}
}

type service struct {
	profiles ProfileRepository
	tokens   *Tokens
	now      func() time.Time
	id       IDGenerator
	cost     int
	logger   interfaces.Logger
}

// NewService constructs the identity service.
func NewService(profiles ProfileRepository, tokens *Tokens, opts ...ServiceOption) Service {
	if profiles == nil || tokens == nil {
		panic("identity: service requires a profile repository and tokens")
	}
	s := &service{
		profiles: profiles,
		tokens:   tokens,
		now:      time.Now,
		id:       uuid.New,
		logger:   logging.IdentityLogger(nil),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) SignUp(ctx context.Context, input SignUpInput) (*Session, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	email := normalizeEmail(input.Email)
	if _, err := s.profiles.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !isNotFound(err) {
		return nil, err
	}

	hash, err := HashPassword(input.Password, s.cost)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	profile, err := s.profiles.Create(ctx, &Profile{
		ID:           s.id(),
		Email:        email,
		DisplayName:  strings.TrimSpace(input.DisplayName),
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}
	logging.ForContext(ctx, s.logger).Info("identity.profile.signed_up", "profile_id", profile.ID)
	return s.tokens.Issue(profile)
}

func (s *service) SignIn(ctx context.Context, email, password string) (*Session, error) {
	profile, err := s.profiles.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if isNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	ok, err := CheckPassword(profile.PasswordHash, password)
	if err != nil {
		return nil, err
	}
	if !ok {
		logging.ForContext(ctx, s.logger).Warn("identity.sign_in.rejected", "profile_id", profile.ID)
		return nil, ErrInvalidCredentials
	}
	if profile.IsBlocked {
		return nil, ErrProfileBlocked
	}
	logging.ForContext(ctx, s.logger).Info("identity.sign_in.accepted", "profile_id", profile.ID)
	return s.tokens.Issue(profile)
}

func (s *service) Authenticate(ctx context.Context, token string) (*Profile, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}
	profile, err := s.GetProfile(ctx, claims.ProfileID)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	if profile.IsBlocked {
		return nil, ErrProfileBlocked
	}
	return profile, nil
}

func (s *service) ListProfiles(ctx context.Context) ([]*Profile, error) {
	return s.profiles.List(ctx)
}

func (s *service) GetProfile(ctx context.Context, id uuid.UUID) (*Profile, error) {
	profile, err := s.profiles.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}

func (s *service) GetProfiles(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*Profile, error) {
	out := make(map[uuid.UUID]*Profile, len(ids))
	for _, id := range ids {
		if _, seen := out[id]; seen {
			continue
		}
		profile, err := s.profiles.GetByID(ctx, id)
		if err != nil {
			if isNotFound(err) {
				continue
			}
			return nil, err
		}
		out[id] = profile
	}
	return out, nil
}

func (s *service) Block(ctx context.Context, id uuid.UUID) (*Profile, error) {
	return s.setBlocked(ctx, id, true)
}

func (s *service) Unblock(ctx context.Context, id uuid.UUID) (*Profile, error) {
	return s.setBlocked(ctx, id, false)
}

func (s *service) setBlocked(ctx context.Context, id uuid.UUID, blocked bool) (*Profile, error) {
	profile, err := s.GetProfile(ctx, id)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	profile.IsBlocked = blocked
	if blocked {
		profile.BlockedAt = &now
	} else {
		profile.BlockedAt = nil
	}
	profile.UpdatedAt = now

	updated, err := s.profiles.Update(ctx, profile)
	if err != nil {
		return nil, err
	}
	logging.ForContext(ctx, s.logger).Info("identity.profile.blocked", "profile_id", id, "blocked", blocked)
	return updated, nil
}

func (s *service) EnsureAdmin(ctx context.Context, email, password string) (*Profile, error) {
	normalized := normalizeEmail(email)
	existing, err := s.profiles.GetByEmail(ctx, normalized)
	switch {
	case err == nil:
		if existing.IsAdmin {
			return existing, nil
		}
		existing.IsAdmin = true
		existing.UpdatedAt = s.now().UTC()
		return s.profiles.Update(ctx, existing)
	case !isNotFound(err):
		return nil, err
	}

	if err := (SignUpInput{Email: normalized, Password: password}).Validate(); err != nil {
		return nil, err
	}
	hash, err := HashPassword(password, s.cost)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	profile, err := s.profiles.Create(ctx, &Profile{
		ID:           ProfileUUID(normalized),
		Email:        normalized,
		PasswordHash: hash,
		IsAdmin:      true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}
	logging.ForContext(ctx, s.logger).Info("identity.admin.created", "profile_id", profile.ID)
	return profile, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func cutEmail(email string) (string, string, bool) {
	return strings.Cut(email, "@")
}

func isNotFound(err error) bool {
	var notFound *NotFoundError
	return errors.As(err, &notFound)
}
