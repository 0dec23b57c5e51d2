package repo

import (
	"context"
	"database/sql"
	"time"

	"facilities/internal/core/facility"
	"facilities/internal/modkit/repokit"
	perr "facilities/internal/platform/errors"
)

type (
	// Lite is an embedded SQLite lifecycle store for local runs and the CLI
	Lite        struct{}
	liteQueries struct{ q repokit.Queryer }
)

// NewSQLite constructs a SQLite lifecycle store binder
func NewSQLite() repokit.Binder[Repo] { return Lite{} }

// Bind binds a Queryer to a SQLite implementation of Repo
func (Lite) Bind(q repokit.Queryer) Repo { return &liteQueries{q: q} }

// sqlite has no timestamp type; instants are stored as RFC3339 text in UTC
func liteTime(t time.Time) string { return t.UTC().Format(time.RFC3339Nano) }

func parseLiteTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, perr.Wrapf(err, perr.ErrorCodeDB, "bad stored time %q", s)
	}
	return t.UTC(), nil
}

func (r *liteQueries) FindAllActiveIDs(ctx context.Context) ([]facility.ID, error) {
	return listIDs(ctx, r.q, "facilities")
}

func (r *liteQueries) FindActiveByID(ctx context.Context, id facility.ID) (facility.Record, bool, error) {
	var (
		payload, overlay string
		missing          sql.NullString
		updated          string
	)
	err := r.q.QueryRow(ctx,
		`SELECT payload, overlay, missing_at, last_updated FROM facilities WHERE id = ?`, id.String(),
	).Scan(&payload, &overlay, &missing, &updated)
	if perr.IsNoRows(err) {
		return facility.Record{}, false, nil
	}
	if err != nil {
		return facility.Record{}, false, perr.FromSQLf(err, "load active %s", id)
	}
	rec := facility.Record{ID: id}
	if rec.Payload, rec.Overlay, err = decode([]byte(payload), []byte(overlay)); err != nil {
		return facility.Record{}, false, err
	}
	if rec.LastUpdated, err = parseLiteTime(updated); err != nil {
		return facility.Record{}, false, err
	}
	if missing.Valid {
		ts, err := parseLiteTime(missing.String)
		if err != nil {
			return facility.Record{}, false, err
		}
		rec.MissingTimestamp = &ts
	}
	return rec, true, nil
}

func (r *liteQueries) SaveActive(ctx context.Context, rec facility.Record) error {
	payload, overlay, err := encode(rec.Payload, rec.Overlay)
	if err != nil {
		return err
	}
	var missing any
	if rec.MissingTimestamp != nil {
		missing = liteTime(*rec.MissingTimestamp)
	}
	const q = `
		INSERT INTO facilities (id, facility_type, station_number, payload, overlay, missing_at, last_updated)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE
		SET payload = excluded.payload,
			overlay = excluded.overlay,
			missing_at = excluded.missing_at,
			last_updated = excluded.last_updated
	`
	_, err = r.q.Exec(ctx, q, rec.ID.String(), string(rec.ID.Type), rec.ID.StationNumber,
		string(payload), string(overlay), missing, liteTime(rec.LastUpdated))
	return perr.FromSQLf(err, "save active %s", rec.ID)
}

func (r *liteQueries) DeleteActive(ctx context.Context, id facility.ID) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM facilities WHERE id = ?`, id.String()); err != nil {
		return perr.FromSQLf(err, "delete active %s", id)
	}
	return nil
}

func (r *liteQueries) FindAllTombstoneIDs(ctx context.Context) ([]facility.ID, error) {
	return listIDs(ctx, r.q, "facility_tombstones")
}

func (r *liteQueries) FindTombstoneByID(ctx context.Context, id facility.ID) (facility.Tombstone, bool, error) {
	var payload, overlay, missing, updated string
	err := r.q.QueryRow(ctx,
		`SELECT payload, overlay, missing_at, last_updated FROM facility_tombstones WHERE id = ?`, id.String(),
	).Scan(&payload, &overlay, &missing, &updated)
	if perr.IsNoRows(err) {
		return facility.Tombstone{}, false, nil
	}
	if err != nil {
		return facility.Tombstone{}, false, perr.FromSQLf(err, "load tombstone %s", id)
	}
	ts := facility.Tombstone{ID: id}
	if ts.Payload, ts.Overlay, err = decode([]byte(payload), []byte(overlay)); err != nil {
		return facility.Tombstone{}, false, err
	}
	if ts.MissingTimestamp, err = parseLiteTime(missing); err != nil {
		return facility.Tombstone{}, false, err
	}
	if ts.LastUpdated, err = parseLiteTime(updated); err != nil {
		return facility.Tombstone{}, false, err
	}
	return ts, true, nil
}

func (r *liteQueries) SaveTombstone(ctx context.Context, ts facility.Tombstone) error {
	payload, overlay, err := encode(ts.Payload, ts.Overlay)
	if err != nil {
		return err
	}
	const q = `
		INSERT INTO facility_tombstones (id, facility_type, station_number, payload, overlay, missing_at, last_updated)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE
		SET payload = excluded.payload,
			overlay = excluded.overlay,
			missing_at = excluded.missing_at,
			last_updated = excluded.last_updated
	`
	_, err = r.q.Exec(ctx, q, ts.ID.String(), string(ts.ID.Type), ts.ID.StationNumber,
		string(payload), string(overlay), liteTime(ts.MissingTimestamp), liteTime(ts.LastUpdated))
	return perr.FromSQLf(err, "save tombstone %s", ts.ID)
}

func (r *liteQueries) DeleteTombstone(ctx context.Context, id facility.ID) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM facility_tombstones WHERE id = ?`, id.String()); err != nil {
		return perr.FromSQLf(err, "delete tombstone %s", id)
	}
	return nil
}
