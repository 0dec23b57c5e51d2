package repo

import (
	"context"
	"testing"

	"facilities/internal/core/facility"
	perr "facilities/internal/platform/errors"
	"facilities/internal/platform/store"
)

func TestMemoryStore(t *testing.T) {
	runStoreSuite(t, NewMemory())
}

func TestMemoryCopiesOverlay(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	id := facility.MustParseID("nca_1")
	rec := facility.Record{ID: id, Overlay: facility.Overlay{DetailedServices: []string{"a"}}}
	_ = m.SaveActive(ctx, rec)
	rec.Overlay.DetailedServices[0] = "b"
	got, _, _ := m.FindActiveByID(ctx, id)
	if got.Overlay.DetailedServices[0] != "a" {
		t.Fatal("memory store must not alias caller slices")
	}
}

func TestSQLiteStore(t *testing.T) {
	ctx := context.Background()
	db, err := store.OpenSQLite(ctx, ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.(interface{ Close() error }).Close() })

	if err := Migrate(ctx, db, SQLite); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	// idempotent
	if err := Migrate(ctx, db, SQLite); err != nil {
		t.Fatalf("migrate twice: %v", err)
	}
	runStoreSuite(t, NewSQLite().Bind(db))
}

func TestBinderAndMigrateUnknownDialect(t *testing.T) {
	if _, err := Binder("oracle"); !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("err = %v", err)
	}
	if err := Migrate(context.Background(), nil, "oracle"); !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("err = %v", err)
	}
	for _, d := range []Dialect{Postgres, SQLite} {
		if b, err := Binder(d); err != nil || b == nil {
			t.Fatalf("Binder(%s) = %v %v", d, b, err)
		}
	}
}
