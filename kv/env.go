// Package kv abstracts an embedded ordered key-value store — environment,
// transaction, named sub-store, cursor, and per-sub-store key comparator —
// grounded on this core's C++ original (Database/Transaction/KVStore/Cursor
// over LMDB) and backed here by github.com/erigontech/mdbx-go, the one
// library in the example pack whose custom-comparator hook this core's
// index sub-stores depend on.
package kv

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/erigontech/mdbx-go/mdbx"
	"github.com/litedb-go/litedb/lerrors"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

// DefaultMapSize is §6.1's default memory-map size (1 GiB).
const DefaultMapSize = 1 << 30

// DefaultMaxTables is §6.1's default sub-store-count cap.
const DefaultMaxTables = 128

// Environment owns one embedded KV store on disk. At most one write
// transaction may be active at a time; Begin enforces that with a weighted
// semaphore rather than relying on the backing store's own blocking
// behavior being visible to callers.
type Environment struct {
	env     *mdbx.Env
	writeMu *semaphore.Weighted
	log     *zap.SugaredLogger
	metrics *envMetrics
	label   string
}

// Options configures Environment.Open.
type Options struct {
	MapSize   uint64 // bytes; defaults to DefaultMapSize if zero
	MaxTables int    // defaults to DefaultMaxTables if zero
	Log       *zap.SugaredLogger
}

// Open opens or creates the on-disk store at path. Fails with CantOpen if
// the path is unusable.
func Open(path string, opts Options) (*Environment, error) {
	mapSize := opts.MapSize
	if mapSize == 0 {
		mapSize = DefaultMapSize
	}
	maxTables := opts.MaxTables
	if maxTables == 0 {
		maxTables = DefaultMaxTables
	}
	log := opts.Log
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	env, err := mdbx.NewEnv()
	if err != nil {
		return nil, lerrors.Wrap(lerrors.CantOpen, err, "kv: allocate environment")
	}
	if err := env.SetOption(mdbx.OptMaxDB, uint64(maxTables)); err != nil {
		return nil, lerrors.Wrap(lerrors.CantOpen, err, "kv: set max sub-stores")
	}
	if err := env.SetGeometry(-1, -1, int(mapSize), -1, -1, -1); err != nil {
		return nil, lerrors.Wrap(lerrors.CantOpen, err, "kv: set map size")
	}
	if err := env.Open(path, mdbx.NoSubdir|mdbx.Coalesce|mdbx.LifoReclaim, 0o644); err != nil {
		return nil, lerrors.Wrap(lerrors.CantOpen, err, "kv: open %s", path)
	}

	e := &Environment{
		env:     env,
		writeMu: semaphore.NewWeighted(1),
		log:     log.With("path", path),
		metrics: newEnvMetrics(path),
		label:   path,
	}
	e.log.Info("environment opened")
	return e, nil
}

// Close releases the environment. Any in-flight transaction is left to the
// caller to finish first.
func (e *Environment) Close() {
	e.env.Close()
	e.log.Info("environment closed")
}

// Stats returns a snapshot of this environment's counters.
func (e *Environment) Stats() Stats {
	return e.metrics.snapshot()
}

// beginBackoff bounds how long Begin retries acquiring the write
// semaphore before giving up, matching §4.1's "attempts past that block or
// fail per underlying store policy".
func beginBackoff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 5 * time.Millisecond
	b.MaxInterval = 200 * time.Millisecond
	b.MaxElapsedTime = 5 * time.Second
	return b
}

// Begin starts a transaction. writable transactions serialize on the
// environment's write semaphore; at most one is active at a time.
func (e *Environment) Begin(ctx context.Context, writable bool) (*Txn, error) {
	if writable {
		acquired := false
		err := backoff.Retry(func() error {
			if e.writeMu.TryAcquire(1) {
				acquired = true
				return nil
			}
			return lerrors.New(lerrors.IO, "kv: write transaction busy")
		}, backoff.WithContext(beginBackoff(), ctx))
		if err != nil || !acquired {
			return nil, lerrors.Wrap(lerrors.IO, err, "kv: begin write transaction")
		}
	}

	flags := uint(0)
	if !writable {
		flags = mdbx.Readonly
	}
	tx, err := e.env.BeginTxn(nil, flags)
	if err != nil {
		if writable {
			e.writeMu.Release(1)
		}
		return nil, lerrors.Wrap(lerrors.IO, err, "kv: begin transaction")
	}

	e.metrics.opens.Inc()
	return &Txn{
		env:      e,
		tx:       tx,
		writable: writable,
		tables:   make(map[string]*Table),
		log:      e.log,
	}, nil
}
