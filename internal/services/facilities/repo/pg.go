package repo

import (
	"context"

	"facilities/internal/core/facility"
	"facilities/internal/modkit/repokit"
	perr "facilities/internal/platform/errors"
)

type (
	// PG is a Postgres lifecycle store
	PG        struct{}
	pgQueries struct{ q repokit.Queryer }
)

// NewPG constructs a Postgres lifecycle store binder
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind binds a Queryer to a Postgres implementation of Repo
func (PG) Bind(q repokit.Queryer) Repo { return &pgQueries{q: q} }

// FindAllActiveIDs lists every active id
func (r *pgQueries) FindAllActiveIDs(ctx context.Context) ([]facility.ID, error) {
	return listIDs(ctx, r.q, "facilities")
}

// FindActiveByID loads one active record
func (r *pgQueries) FindActiveByID(ctx context.Context, id facility.ID) (facility.Record, bool, error) {
	const sql = `
		SELECT payload, overlay, missing_at, last_updated
		FROM facilities
		WHERE id = $1
	`
	var (
		rec              facility.Record
		payload, overlay []byte
	)
	err := r.q.QueryRow(ctx, sql, id.String()).Scan(&payload, &overlay, &rec.MissingTimestamp, &rec.LastUpdated)
	if perr.IsNoRows(err) {
		return facility.Record{}, false, nil
	}
	if err != nil {
		return facility.Record{}, false, perr.FromSQLf(err, "load active %s", id)
	}
	if rec.Payload, rec.Overlay, err = decode(payload, overlay); err != nil {
		return facility.Record{}, false, err
	}
	rec.ID = id
	rec.LastUpdated = rec.LastUpdated.UTC()
	if rec.MissingTimestamp != nil {
		ts := rec.MissingTimestamp.UTC()
		rec.MissingTimestamp = &ts
	}
	return rec, true, nil
}

// SaveActive upserts an active record
func (r *pgQueries) SaveActive(ctx context.Context, rec facility.Record) error {
	payload, overlay, err := encode(rec.Payload, rec.Overlay)
	if err != nil {
		return err
	}
	const sql = `
		INSERT INTO facilities (id, facility_type, station_number, payload, overlay, missing_at, last_updated)
		VALUES ($1, $2, $3, $4::jsonb, $5::jsonb, $6, $7)
		ON CONFLICT (id) DO UPDATE
		SET payload = excluded.payload,
			overlay = excluded.overlay,
			missing_at = excluded.missing_at,
			last_updated = excluded.last_updated
	`
	_, err = r.q.Exec(ctx, sql, rec.ID.String(), string(rec.ID.Type), rec.ID.StationNumber,
		string(payload), string(overlay), rec.MissingTimestamp, rec.LastUpdated)
	return perr.FromSQLf(err, "save active %s", rec.ID)
}

// DeleteActive removes an active record; unknown ids are ignored
func (r *pgQueries) DeleteActive(ctx context.Context, id facility.ID) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM facilities WHERE id = $1`, id.String()); err != nil {
		return perr.FromSQLf(err, "delete active %s", id)
	}
	return nil
}

// FindAllTombstoneIDs lists every tombstoned id
func (r *pgQueries) FindAllTombstoneIDs(ctx context.Context) ([]facility.ID, error) {
	return listIDs(ctx, r.q, "facility_tombstones")
}

// FindTombstoneByID loads one tombstone
func (r *pgQueries) FindTombstoneByID(ctx context.Context, id facility.ID) (facility.Tombstone, bool, error) {
	const sql = `
		SELECT payload, overlay, missing_at, last_updated
		FROM facility_tombstones
		WHERE id = $1
	`
	var (
		ts               facility.Tombstone
		payload, overlay []byte
	)
	err := r.q.QueryRow(ctx, sql, id.String()).Scan(&payload, &overlay, &ts.MissingTimestamp, &ts.LastUpdated)
	if perr.IsNoRows(err) {
		return facility.Tombstone{}, false, nil
	}
	if err != nil {
		return facility.Tombstone{}, false, perr.FromSQLf(err, "load tombstone %s", id)
	}
	if ts.Payload, ts.Overlay, err = decode(payload, overlay); err != nil {
		return facility.Tombstone{}, false, err
	}
	ts.ID = id
	ts.MissingTimestamp = ts.MissingTimestamp.UTC()
	ts.LastUpdated = ts.LastUpdated.UTC()
	return ts, true, nil
}

// SaveTombstone upserts a tombstone
func (r *pgQueries) SaveTombstone(ctx context.Context, ts facility.Tombstone) error {
	payload, overlay, err := encode(ts.Payload, ts.Overlay)
	if err != nil {
		return err
	}
	const sql = `
		INSERT INTO facility_tombstones (id, facility_type, station_number, payload, overlay, missing_at, last_updated)
		VALUES ($1, $2, $3, $4::jsonb, $5::jsonb, $6, $7)
		ON CONFLICT (id) DO UPDATE
		SET payload = excluded.payload,
			overlay = excluded.overlay,
			missing_at = excluded.missing_at,
			last_updated = excluded.last_updated
	`
	_, err = r.q.Exec(ctx, sql, ts.ID.String(), string(ts.ID.Type), ts.ID.StationNumber,
		string(payload), string(overlay), ts.MissingTimestamp, ts.LastUpdated)
	return perr.FromSQLf(err, "save tombstone %s", ts.ID)
}

// DeleteTombstone removes a tombstone; unknown ids are ignored
func (r *pgQueries) DeleteTombstone(ctx context.Context, id facility.ID) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM facility_tombstones WHERE id = $1`, id.String()); err != nil {
		return perr.FromSQLf(err, "delete tombstone %s", id)
	}
	return nil
}
