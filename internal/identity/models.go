package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Profile is a registered reader. Admins can edit content and block other
// profiles.
type Profile struct {
	bun.BaseModel `bun:"table:profiles,alias:pr"`

	ID           uuid.UUID  `bun:",pk,type:uuid" json:"id"`
	Email        string     `bun:"email,notnull" json:"email"`
	DisplayName  string     `bun:"display_name" json:"display_name"`
	AvatarURL    string     `bun:"avatar_url" json:"avatar_url,omitempty"`
	PasswordHash string     `bun:"password_hash,notnull" json:"-"`
	IsAdmin      bool       `bun:"is_admin,notnull,default:false" json:"is_admin"`
	IsBlocked    bool       `bun:"is_blocked,notnull,default:false" json:"is_blocked"`
	BlockedAt    *time.Time `bun:"blocked_at,nullzero" json:"blocked_at,omitempty"`
	CreatedAt    time.Time  `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt    time.Time  `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// Name returns the display name, falling back to the local part of the email.
func (p *Profile) Name() string {
	if p == nil {
		return ""
	}
	if p.DisplayName != "" {
		return p.DisplayName
	}
	local, _, _ := cutEmail(p.Email)
	return local
}

func cloneProfile(profile *Profile) *Profile {
	if profile == nil {
		return nil
	}
	cloned := *profile
	if profile.BlockedAt != nil {
		blockedAt := *profile.BlockedAt
		cloned.BlockedAt = &blockedAt
	}
	return &cloned
}
