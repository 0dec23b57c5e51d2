package repo

import (
	"context"
	"slices"
	"testing"
	"time"

	"facilities/internal/core/facility"
)

func ptr[T any](v T) *T { return &v }

// runStoreSuite exercises the lifecycle store contract against any backend
func runStoreSuite(t *testing.T, r Repo) {
	t.Helper()
	ctx := context.Background()
	now := time.Date(2026, 4, 1, 10, 30, 0, 123000000, time.UTC)
	id := facility.MustParseID("vha_402GA")
	other := facility.MustParseID("vc_0101V_x")

	t.Run("empty", func(t *testing.T) {
		ids, err := r.FindAllActiveIDs(ctx)
		if err != nil || len(ids) != 0 {
			t.Fatalf("ids=%v err=%v", ids, err)
		}
		_, ok, err := r.FindActiveByID(ctx, id)
		if err != nil || ok {
			t.Fatalf("ok=%v err=%v", ok, err)
		}
		_, ok, err = r.FindTombstoneByID(ctx, id)
		if err != nil || ok {
			t.Fatalf("tomb ok=%v err=%v", ok, err)
		}
		if err := r.DeleteActive(ctx, id); err != nil {
			t.Fatalf("delete unknown active: %v", err)
		}
		if err := r.DeleteTombstone(ctx, id); err != nil {
			t.Fatalf("delete unknown tombstone: %v", err)
		}
	})

	rec := facility.Record{
		ID: id,
		Payload: facility.Payload{
			ID:        id,
			Name:      "Augusta VA Clinic",
			Latitude:  ptr(44.3),
			Address:   facility.Addresses{Physical: &facility.Address{City: "Augusta", Zip: "04330"}},
			Phone:     facility.Phone{Main: "207-623-8411"},
			Mobile:    ptr(false),
			Services:  facility.Services{Health: []string{"PrimaryCare"}},
			Hours:     facility.Hours{Monday: "800AM-430PM"},
			TimeZone:  "America/New_York",
			Longitude: ptr(-69.7),
		},
		Overlay:     facility.Overlay{OperatingStatus: &facility.OperatingStatus{Code: facility.StatusLimited, AdditionalInfo: "flooding"}},
		LastUpdated: now,
	}

	t.Run("active roundtrip", func(t *testing.T) {
		if err := r.SaveActive(ctx, rec); err != nil {
			t.Fatalf("save: %v", err)
		}
		got, ok, err := r.FindActiveByID(ctx, id)
		if err != nil || !ok {
			t.Fatalf("find ok=%v err=%v", ok, err)
		}
		if got.ID != id || got.Payload.Name != rec.Payload.Name || got.Payload.Address.Physical.City != "Augusta" {
			t.Fatalf("payload mismatch: %+v", got)
		}
		if got.Overlay.OperatingStatus == nil || got.Overlay.OperatingStatus.AdditionalInfo != "flooding" {
			t.Fatalf("overlay mismatch: %+v", got.Overlay)
		}
		if got.MissingTimestamp != nil || !got.LastUpdated.Equal(now) {
			t.Fatalf("times mismatch: %v %v", got.MissingTimestamp, got.LastUpdated)
		}
	})

	t.Run("overwrite sets missing", func(t *testing.T) {
		missing := now.Add(time.Hour)
		upd := rec
		upd.Payload.Name = "Augusta CBOC"
		upd.MissingTimestamp = &missing
		if err := r.SaveActive(ctx, upd); err != nil {
			t.Fatalf("save: %v", err)
		}
		got, _, err := r.FindActiveByID(ctx, id)
		if err != nil {
			t.Fatal(err)
		}
		if got.Payload.Name != "Augusta CBOC" || got.MissingTimestamp == nil || !got.MissingTimestamp.Equal(missing) {
			t.Fatalf("overwrite mismatch: %+v", got)
		}
		ids, _ := r.FindAllActiveIDs(ctx)
		if len(ids) != 1 || ids[0] != id {
			t.Fatalf("ids = %v", ids)
		}
	})

	t.Run("tombstone roundtrip", func(t *testing.T) {
		ts := facility.Tombstone{
			ID:               other,
			Payload:          facility.Payload{ID: other, Name: "Vet Center"},
			Overlay:          facility.Overlay{DetailedServices: []string{"Counseling"}},
			MissingTimestamp: now.Add(-96 * time.Hour),
			LastUpdated:      now,
		}
		if err := r.SaveTombstone(ctx, ts); err != nil {
			t.Fatalf("save: %v", err)
		}
		got, ok, err := r.FindTombstoneByID(ctx, other)
		if err != nil || !ok {
			t.Fatalf("find ok=%v err=%v", ok, err)
		}
		if !got.MissingTimestamp.Equal(ts.MissingTimestamp) || !got.LastUpdated.Equal(now) {
			t.Fatalf("times: %v %v", got.MissingTimestamp, got.LastUpdated)
		}
		if !slices.Equal(got.Overlay.DetailedServices, []string{"Counseling"}) || got.ID.StationNumber != "0101V_x" {
			t.Fatalf("tombstone mismatch: %+v", got)
		}
		ids, _ := r.FindAllTombstoneIDs(ctx)
		if len(ids) != 1 || ids[0] != other {
			t.Fatalf("tombstone ids = %v", ids)
		}
	})

	t.Run("deletes", func(t *testing.T) {
		if err := r.DeleteActive(ctx, id); err != nil {
			t.Fatal(err)
		}
		if err := r.DeleteTombstone(ctx, other); err != nil {
			t.Fatal(err)
		}
		a, _ := r.FindAllActiveIDs(ctx)
		b, _ := r.FindAllTombstoneIDs(ctx)
		if len(a)+len(b) != 0 {
			t.Fatalf("left over: %v %v", a, b)
		}
	})
}
