package repokit

// Binder binds a repo implementation to a Queryer, either the pool or a live tx
type Binder[T any] interface {
	Bind(Queryer) T
}

// MustBind binds q with b. A nil q is a wiring bug and panics at startup
func MustBind[T any](b Binder[T], q Queryer) T {
	if q == nil {
		panic("repokit: nil Queryer")
	}
	return b.Bind(q)
}
