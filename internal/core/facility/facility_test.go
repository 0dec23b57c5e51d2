package facility

import (
	"encoding/json"
	"testing"
	"time"

	perr "facilities/internal/platform/errors"
)

func TestParseID(t *testing.T) {
	cases := []struct {
		in      string
		typ     Type
		station string
	}{
		{"vha_402GA", TypeHealth, "402GA"},
		{"VBA_306", TypeBenefits, "306"},
		{"nca_888", TypeCemetery, "888"},
		{"vc_0101V_x", TypeVetCenter, "0101V_x"},
	}
	for _, tc := range cases {
		id, err := ParseID(tc.in)
		if err != nil {
			t.Fatalf("ParseID(%q): %v", tc.in, err)
		}
		if id.Type != tc.typ || id.StationNumber != tc.station {
			t.Fatalf("ParseID(%q) = %+v", tc.in, id)
		}
	}
}

func TestParseIDMalformed(t *testing.T) {
	for _, in := range []string{"", "vha", "vha_", "xyz_1", "_402"} {
		_, err := ParseID(in)
		if !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
			t.Fatalf("ParseID(%q) err = %v, want invalid argument", in, err)
		}
	}
}

func TestIDString(t *testing.T) {
	if got := MustParseID("VHA_402GA").String(); got != "vha_402GA" {
		t.Fatalf("String = %q", got)
	}
	if (ID{}).String() != "" || !(ID{}).IsZero() {
		t.Fatal("zero id should render empty")
	}
	if !MustParseID("nca_1").Less(MustParseID("vha_1")) {
		t.Fatal("Less should order by canonical string")
	}
}

func TestIDJSON(t *testing.T) {
	in := map[ID]int{MustParseID("vha_1"): 1}
	b, err := json.Marshal(in)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `{"vha_1":1}` {
		t.Fatalf("marshal = %s", b)
	}
	var out struct {
		ID ID `json:"id"`
	}
	if err := json.Unmarshal([]byte(`{"id":"vc_0101V"}`), &out); err != nil {
		t.Fatal(err)
	}
	if out.ID != MustParseID("vc_0101V") {
		t.Fatalf("unmarshal = %+v", out.ID)
	}
	if err := json.Unmarshal([]byte(`{"id":"bogus"}`), &out); err == nil {
		t.Fatal("expected error for malformed id")
	}
}

func TestIDSet(t *testing.T) {
	s := NewIDSet(MustParseID("vha_1"))
	s.Add(MustParseID("vba_2"))
	if !s.Has(MustParseID("vba_2")) || s.Has(MustParseID("nca_3")) {
		t.Fatal("IDSet membership mismatch")
	}
}

func TestStorageZip(t *testing.T) {
	cases := map[string]string{
		"12345-6789":   "12345",
		"12345":        "12345",
		"1234":         "1234",
		"12345-67":     "12345-67",
		"":             "",
		" 12345-6789":  "12345",
		"12345-6789\n": "12345",
		" 12345 ":      "12345",
	}
	for in, want := range cases {
		if got := StorageZip(in); got != want {
			t.Fatalf("StorageZip(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNewRecordTruncatesZipWithoutTouchingInput(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	p := Payload{
		ID:      MustParseID("vha_1"),
		Address: Addresses{Physical: &Address{Zip: "12345-6789"}},
	}
	ov := Overlay{DetailedServices: []string{"COVID-19 vaccines"}}
	r := NewRecord(p, ov, now)

	if r.Payload.Address.Physical.Zip != "12345" {
		t.Fatalf("stored zip = %q", r.Payload.Address.Physical.Zip)
	}
	if p.Address.Physical.Zip != "12345-6789" {
		t.Fatal("input payload must stay untouched")
	}
	if r.Payload.Address.Mailing != nil {
		t.Fatal("nil mailing address should stay nil")
	}
	if r.ID != p.ID || !r.LastUpdated.Equal(now) || r.Missing() {
		t.Fatalf("record = %+v", r)
	}
	ov.DetailedServices[0] = "changed"
	if r.Overlay.DetailedServices[0] != "COVID-19 vaccines" {
		t.Fatal("overlay must be copied")
	}
}

// a padded zip passes validation, so storage has to normalize it the same way
func TestNewRecordTrimsPaddedZip(t *testing.T) {
	p := Payload{
		ID:      MustParseID("vha_1"),
		Address: Addresses{Physical: &Address{Zip: " 12345-6789 "}, Mailing: &Address{Zip: "54321 "}},
	}
	r := NewRecord(p, Overlay{}, time.Now())
	if r.Payload.Address.Physical.Zip != "12345" || r.Payload.Address.Mailing.Zip != "54321" {
		t.Fatalf("stored zips = %q %q", r.Payload.Address.Physical.Zip, r.Payload.Address.Mailing.Zip)
	}
}

func TestEntomb(t *testing.T) {
	missing := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	now := missing.Add(96 * time.Hour)
	r := Record{
		ID:               MustParseID("vba_9"),
		Overlay:          Overlay{OperatingStatus: &OperatingStatus{Code: StatusClosed}},
		MissingTimestamp: &missing,
	}
	ts := Entomb(r, now)
	if !ts.MissingTimestamp.Equal(missing) || !ts.LastUpdated.Equal(now) {
		t.Fatalf("tombstone times = %v / %v", ts.MissingTimestamp, ts.LastUpdated)
	}
	if ts.Overlay.OperatingStatus == r.Overlay.OperatingStatus {
		t.Fatal("overlay status must be copied, not shared")
	}
	if ts.Overlay.OperatingStatus.Code != StatusClosed {
		t.Fatal("overlay must carry over")
	}
}

func TestOverlayIsEmpty(t *testing.T) {
	if !(Overlay{}).IsEmpty() {
		t.Fatal("zero overlay should be empty")
	}
	if (Overlay{DetailedServices: []string{"x"}}).IsEmpty() {
		t.Fatal("services make overlay non-empty")
	}
}

func TestHoursDay(t *testing.T) {
	h := Hours{Monday: "800AM-430PM", Sunday: "Closed"}
	if h.Day(time.Monday) != "800AM-430PM" || h.Day(time.Sunday) != "Closed" || h.Day(time.Friday) != "" {
		t.Fatal("Hours.Day mismatch")
	}
}
