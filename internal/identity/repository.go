package identity

import (
	"context"
	"fmt"

	pkgstorage "github.com/goliatone/go-blog/pkg/storage"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ProfileRepository exposes persistence operations for profiles.
type ProfileRepository interface {
	Create(ctx context.Context, profile *Profile) (*Profile, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Profile, error)
	GetByEmail(ctx context.Context, email string) (*Profile, error)
	// List returns profiles newest first.
	List(ctx context.Context) ([]*Profile, error)
	Update(ctx context.Context, profile *Profile) (*Profile, error)
}

// NotFoundError is returned when a profile cannot be located.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

// Schema describes the identity tables for storage migrations.
func Schema() pkgstorage.Schema {
	return pkgstorage.Schema{
		Name:   "identity",
		Models: []any{(*Profile)(nil)},
		Indexes: []pkgstorage.Index{
			{Name: "profiles_email_key", Model: (*Profile)(nil), Columns: []string{"email"}, Unique: true},
		},
	}
}

func NewProfileRepository(db *bun.DB) repository.Repository[*Profile] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Profile]{
		NewRecord: func() *Profile { return &Profile{} },
		GetID: func(p *Profile) uuid.UUID {
			return p.ID
		},
		SetID: func(p *Profile, id uuid.UUID) {
			p.ID = id
		},
		GetIdentifier: func() string {
			return "email"
		},
		GetIdentifierValue: func(p *Profile) string {
			return p.Email
		},
	})
}
