package storage

import (
	"context"
	"errors"
	"fmt"
	"testing"

	pkgstorage "github.com/goliatone/go-blog/pkg/storage"
	"github.com/uptrace/bun"
)

type widgetModel struct {
	bun.BaseModel `bun:"table:widgets"`

	ID   int64  `bun:",pk,autoincrement"`
	Slug string `bun:"slug,notnull"`
}

func widgetSchema() pkgstorage.Schema {
	return pkgstorage.Schema{
		Name:   "widgets",
		Models: []any{(*widgetModel)(nil)},
		Indexes: []pkgstorage.Index{
			{Name: "widgets_slug_unique", Model: (*widgetModel)(nil), Columns: []string{"slug"}, Unique: true},
		},
	}
}

func TestOpenRejectsBadConfig(t *testing.T) {
	ctx := context.Background()
	cases := []struct {
		cfg  pkgstorage.Config
		want error
	}{
		{cfg: pkgstorage.Config{DSN: "x"}, want: ErrDriverRequired},
		{cfg: pkgstorage.Config{Driver: "sqlite"}, want: ErrDSNRequired},
		{cfg: pkgstorage.Config{Driver: "oracle", DSN: "x"}, want: ErrUnsupportedDriver},
	}
	for _, tc := range cases {
		if _, err := Open(ctx, tc.cfg, nil); !errors.Is(err, tc.want) {
			t.Fatalf("expected %v, got %v", tc.want, err)
		}
	}
}

func TestOpenMigrateAndDetectDuplicates(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, pkgstorage.Config{
		Driver: pkgstorage.DriverSQLite,
		DSN:    fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()),
		Debug:  true,
	}, nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	for range 2 {
		if err := Migrate(ctx, db, widgetSchema()); err != nil {
			t.Fatalf("migrate: %v", err)
		}
	}

	if _, err := db.NewInsert().Model(&widgetModel{Slug: "a"}).Exec(ctx); err != nil {
		t.Fatalf("insert: %v", err)
	}
	_, err = db.NewInsert().Model(&widgetModel{Slug: "a"}).Exec(ctx)
	if err == nil {
		t.Fatalf("expected duplicate insert to fail")
	}
	if !IsUniqueViolation(err) {
		t.Fatalf("expected unique violation, got %v", err)
	}
	if IsUniqueViolation(errors.New("connection refused")) || IsUniqueViolation(nil) {
		t.Fatalf("expected unrelated errors not to match")
	}
}
