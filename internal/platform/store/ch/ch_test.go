package ch

import (
	"context"
	"errors"
	"testing"

	kit "facilities/internal/platform/testkit"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

func TestBuildClientInfo(t *testing.T) {
	info := BuildClientInfo("", "api")
	if len(info.Products) != 4 {
		t.Fatalf("products = %d", len(info.Products))
	}
	if info.Products[0].Name != "facilities" || info.Products[0].Version != "api" {
		t.Fatalf("first product = %+v", info.Products[0])
	}
}

func TestOpenValidatesBeforeDial(t *testing.T) {
	kit.Serial(t)
	dialed := false
	kit.Swap(t, &open, func(*clickhouse.Options) (driver.Conn, error) {
		dialed = true
		return nil, errors.New("no server")
	})

	if _, err := Open(context.Background(), Config{}); err == nil {
		t.Fatal("empty url should fail")
	}
	if _, err := Open(context.Background(), Config{URL: "clickhouse://localhost:9000/facilities"}); err == nil {
		t.Fatal("expected dial error")
	}
	if !dialed {
		t.Fatal("open seam was not used")
	}
}
