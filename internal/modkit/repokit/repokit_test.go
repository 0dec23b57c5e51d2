package repokit

import (
	"context"
	"errors"
	"testing"
	"time"

	kit "facilities/internal/platform/testkit"
)

type recTx struct {
	TxRunner
	log []string
}

func (r *recTx) Tx(ctx context.Context, fn func(q Queryer) error) error {
	r.log = append(r.log, "begin")
	err := fn(nil)
	r.log = append(r.log, "end")
	return err
}

func TestWithBeginHooksOrder(t *testing.T) {
	inner := &recTx{}
	tx := WithBeginHooks(inner,
		func(context.Context, Queryer) error { inner.log = append(inner.log, "hook1"); return nil },
		func(context.Context, Queryer) error { inner.log = append(inner.log, "hook2"); return nil },
	)
	err := tx.Tx(context.Background(), func(Queryer) error {
		inner.log = append(inner.log, "fn")
		return nil
	})
	if err != nil {
		t.Fatalf("tx: %v", err)
	}
	want := []string{"begin", "hook1", "hook2", "fn", "end"}
	if len(inner.log) != len(want) {
		t.Fatalf("log = %v", inner.log)
	}
	for i := range want {
		if inner.log[i] != want[i] {
			t.Fatalf("log = %v, want %v", inner.log, want)
		}
	}
}

func TestHookErrorStopsFn(t *testing.T) {
	boom := errors.New("lock timeout")
	ran := false
	tx := WithBeginHooks(&recTx{}, func(context.Context, Queryer) error { return boom })
	err := tx.Tx(context.Background(), func(Queryer) error { ran = true; return nil })
	if !errors.Is(err, boom) || ran {
		t.Fatalf("err=%v ran=%v", err, ran)
	}
}

type binder struct{}

func (binder) Bind(q Queryer) string { return "bound" }

func TestBindHelpers(t *testing.T) {
	kit.MustPanic(t, func() { MustBind[string](binder{}, nil) })
	if got := MustBind[string](binder{}, &recTx{}); got != "bound" {
		t.Fatalf("MustBind = %q", got)
	}
}

type guard struct{ err error }

func (g guard) Guard(ctx context.Context) error {
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("guard ran without a deadline")
	}
	return g.err
}

func TestMustGuard(t *testing.T) {
	kit.MustNotPanic(t, func() { MustGuard(context.Background(), guard{}, 0) })
	kit.MustPanic(t, func() { MustGuard(context.Background(), guard{err: errors.New("sqlite: disk I/O error")}, time.Second) })
	kit.MustPanic(t, func() { MustGuard(context.Background(), nil, 0) })
}
