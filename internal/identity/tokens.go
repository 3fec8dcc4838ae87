package identity

import (
	"errors"
	"fmt"
	"time"

	"aidanwoods.dev/go-paseto"
	"github.com/google/uuid"
)

const (
	// DefaultSessionTTL is how long a session token stays valid.
	DefaultSessionTTL = 7 * 24 * time.Hour

	tokenIssuer = "go-blog"
	// implicit assertion bound into every signature; changing it invalidates
	// all issued tokens
	tokenImplicit = "go-blog session"

	roleAdmin  = "admin"
	roleReader = "reader"
)

var ErrInvalidToken = errors.New("identity: invalid session token")

// Claims is the verified content of a session token.
type Claims struct {
	ProfileID uuid.UUID
	Email     string
	IsAdmin   bool
	ExpiresAt time.Time
}

// Session is an issued token with its claims.
type Session struct {
	Token     string    `json:"token"`
	ProfileID uuid.UUID `json:"profile_id"`
	Email     string    `json:"email"`
	IsAdmin   bool      `json:"is_admin"`
	ExpiresAt time.Time `json:"expires_at"`
}

// NewSecretKeyHex generates a fresh v4.public signing key.
func NewSecretKeyHex() string {
	return paseto.NewV4AsymmetricSecretKey().ExportHex()
}

// Tokens signs and verifies v4.public session tokens.
type Tokens struct {
	secret paseto.V4AsymmetricSecretKey
	parser paseto.Parser
	ttl    time.Duration
	now    func() time.Time
}

// TokensOption configures Tokens.
type TokensOption func(*Tokens)

// WithTokenClock overrides the time source used when issuing tokens.
func WithTokenClock(now func() time.Time) TokensOption {
	return func(t *Tokens) {
		if now != nil {
			t.now = now
		}
	}
}

// NewTokens loads the signing key from hex. An empty key generates an
// ephemeral one, so tokens do not survive a restart.
func NewTokens(secretHex string, ttl time.Duration, opts ...TokensOption) (*Tokens, error) {
	var (
		secret paseto.V4AsymmetricSecretKey
		err    error
	)
	if secretHex == "" {
		secret = paseto.NewV4AsymmetricSecretKey()
	} else {
		secret, err = paseto.NewV4AsymmetricSecretKeyFromHex(secretHex)
		if err != nil {
			return nil, fmt.Errorf("identity: load token key: %w", err)
		}
	}
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	tokens := &Tokens{
		secret: secret,
		parser: paseto.MakeParser([]paseto.Rule{
			paseto.NotExpired(),
			paseto.IssuedBy(tokenIssuer),
		}),
		ttl: ttl,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(tokens)
	}
	return tokens, nil
}

// Issue signs a session for profile.
func (t *Tokens) Issue(profile *Profile) (*Session, error) {
	if profile == nil || profile.ID == uuid.Nil {
		return nil, errors.New("identity: cannot issue a session without a profile")
	}
	now := t.now()
	expires := now.Add(t.ttl)

	token := paseto.NewToken()
	token.SetIssuer(tokenIssuer)
	token.SetSubject(profile.ID.String())
	token.SetIssuedAt(now)
	token.SetNotBefore(now)
	token.SetExpiration(expires)
	token.SetString("email", profile.Email)
	role := roleReader
	if profile.IsAdmin {
		role = roleAdmin
	}
	token.SetString("role", role)

	return &Session{
		Token:     token.V4Sign(t.secret, []byte(tokenImplicit)),
		ProfileID: profile.ID,
		Email:     profile.Email,
		IsAdmin:   profile.IsAdmin,
		ExpiresAt: expires,
	}, nil
}

// Verify checks the signature, issuer and expiry of raw.
func (t *Tokens) Verify(raw string) (*Claims, error) {
	if raw == "" {
		return nil, ErrInvalidToken
	}
	token, err := t.parser.ParseV4Public(t.secret.Public(), raw, []byte(tokenImplicit))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	subject, err := token.GetSubject()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	profileID, err := uuid.Parse(subject)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	email, _ := token.GetString("email")
	role, _ := token.GetString("role")
	expires, _ := token.GetExpiration()

	return &Claims{
		ProfileID: profileID,
		Email:     email,
		IsAdmin:   role == roleAdmin,
		ExpiresAt: expires,
	}, nil
}
