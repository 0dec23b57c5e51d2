// Package repo provides the lifecycle store implementations (postgres, sqlite and memory)
package repo

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"facilities/internal/core/facility"
	"facilities/internal/modkit/repokit"
	perr "facilities/internal/platform/errors"
	"facilities/internal/platform/store"
	"facilities/internal/services/facilities/domain"
)

// Repo is the lifecycle store contract shared by every backend
type Repo interface {
	domain.LifecycleStore
}

// Dialect names the sql flavour a Queryer speaks
type Dialect string

// Supported dialects
const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

var (
	//go:embed schema_pg.sql
	schemaPG string
	//go:embed schema_sqlite.sql
	schemaSQLite string
)

// Migrate creates the facilities tables when they do not exist yet
func Migrate(ctx context.Context, q repokit.Queryer, d Dialect) error {
	var ddl string
	switch d {
	case Postgres:
		ddl = schemaPG
	case SQLite:
		ddl = schemaSQLite
	default:
		return perr.InvalidArgf("unknown dialect %q", d)
	}
	if _, err := q.Exec(ctx, ddl); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeDB, "migrate %s", d)
	}
	return nil
}

// Binder returns the binder for d
func Binder(d Dialect) (repokit.Binder[Repo], error) {
	switch d {
	case Postgres:
		return NewPG(), nil
	case SQLite:
		return NewSQLite(), nil
	}
	return nil, perr.InvalidArgf("unknown dialect %q", d)
}

func encode(p facility.Payload, o facility.Overlay) (payload, overlay []byte, err error) {
	if payload, err = json.Marshal(p); err != nil {
		return nil, nil, fmt.Errorf("encode payload: %w", err)
	}
	if overlay, err = json.Marshal(o); err != nil {
		return nil, nil, fmt.Errorf("encode overlay: %w", err)
	}
	return payload, overlay, nil
}

func decode(payload, overlay []byte) (facility.Payload, facility.Overlay, error) {
	var (
		p facility.Payload
		o facility.Overlay
	)
	if err := json.Unmarshal(payload, &p); err != nil {
		return p, o, perr.Wrap(err, perr.ErrorCodeJSON, "decode payload")
	}
	if len(overlay) > 0 {
		if err := json.Unmarshal(overlay, &o); err != nil {
			return p, o, perr.Wrap(err, perr.ErrorCodeJSON, "decode overlay")
		}
	}
	return p, o, nil
}

// listIDs reads the id column of table in id order. Both dialects share the statement
func listIDs(ctx context.Context, q repokit.Queryer, table string) ([]facility.ID, error) {
	ids, err := store.Many(ctx, q, scanID, `SELECT id FROM `+table+` ORDER BY id`)
	if err != nil {
		return nil, perr.FromSQLf(err, "list %s ids", table)
	}
	return ids, nil
}

func scanID(row store.Row) (facility.ID, error) {
	var s string
	if err := row.Scan(&s); err != nil {
		return facility.ID{}, err
	}
	return facility.ParseID(s)
}
