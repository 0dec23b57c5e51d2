// Package repokit provides the sql seam types shared by repo implementations
package repokit

import "facilities/internal/platform/store"

// Queryer is what a bound repo runs against, the pool or a transaction handed out by TxRunner.Tx
type Queryer = store.RowQuerier

// TxRunner is a Queryer that can also open transactions. Leases need it
type TxRunner = store.TxRunner
