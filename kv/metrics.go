package kv

import "github.com/VictoriaMetrics/metrics"

// Per-environment counters, in the style of erigon-lib/kv's package-level
// DbSize/TxLimit/TxDirty counters — read back per environment through a
// Stats() snapshot, since this core has no /metrics HTTP endpoint of its
// own. metrics.NewCounter registers each counter in the metrics package's
// global default set, labelled with the environment's path.
type envMetrics struct {
	commits *metrics.Counter
	aborts  *metrics.Counter
	opens   *metrics.Counter
	puts    *metrics.Counter
	bytesWritten *metrics.Counter
}

func newEnvMetrics(label string) *envMetrics {
	return &envMetrics{
		commits:      metrics.NewCounter(`litedb_kv_commits_total{env="` + label + `"}`),
		aborts:       metrics.NewCounter(`litedb_kv_aborts_total{env="` + label + `"}`),
		opens:        metrics.NewCounter(`litedb_kv_txn_opens_total{env="` + label + `"}`),
		puts:         metrics.NewCounter(`litedb_kv_puts_total{env="` + label + `"}`),
		bytesWritten: metrics.NewCounter(`litedb_kv_bytes_written_total{env="` + label + `"}`),
	}
}

// Stats is a point-in-time snapshot of an Environment's counters.
type Stats struct {
	Commits      uint64
	Aborts       uint64
	TxnOpens     uint64
	Puts         uint64
	BytesWritten uint64
}

func (m *envMetrics) snapshot() Stats {
	return Stats{
		Commits:      m.commits.Get(),
		Aborts:       m.aborts.Get(),
		TxnOpens:     m.opens.Get(),
		Puts:         m.puts.Get(),
		BytesWritten: m.bytesWritten.Get(),
	}
}
