package repokit

import "context"

// BeginHook runs at the start of every transaction, before the caller's fn.
// Typical use is SET LOCAL for statement or idle timeouts
type BeginHook func(ctx context.Context, q Queryer) error

// WithBeginHooks decorates tx. Hooks apply to Tx only, Exec and Query outside
// a transaction go straight to the inner runner
func WithBeginHooks(tx TxRunner, hooks ...BeginHook) TxRunner {
	if len(hooks) == 0 {
		return tx
	}
	return hooked{TxRunner: tx, hooks: hooks}
}

type hooked struct {
	TxRunner
	hooks []BeginHook
}

// Tx aborts with the first hook error, fn never runs in that case
func (h hooked) Tx(ctx context.Context, fn func(q Queryer) error) error {
	return h.TxRunner.Tx(ctx, func(q Queryer) error {
		for _, run := range h.hooks {
			if err := run(ctx, q); err != nil {
				return err
			}
		}
		return fn(q)
	})
}
