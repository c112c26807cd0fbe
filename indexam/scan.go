package indexam

import (
	"bytes"

	"github.com/litedb-go/litedb/kv"
	"github.com/litedb-go/litedb/lerrors"
	"github.com/litedb-go/litedb/relstore"
	"github.com/litedb-go/litedb/scankey"
	"github.com/litedb-go/litedb/tuple"
)

// IndexScan drives one equality-prefix ordered scan (§4.7.1). Scan keys
// are assumed already ordered to match the index's key columns 1..n —
// SysTableBeginScan is what performs that attno-to-index-column remap
// before handing keys to BeginScan.
type IndexScan struct {
	tableRel *relstore.Relation
	indexRel *relstore.Relation
	keys     []scankey.Key
	common   int

	cursor   *kv.Cursor
	started  bool
	finished bool
}

// BeginScan computes the common equality prefix and opens a cursor on
// indexRel; the first GetNext builds the probe tuple from that prefix and
// positions the cursor with SET_RANGE. Only the Equal strategy is
// supported for the common prefix; the rest fail explicitly with
// NotSupported rather than falling back silently.
func BeginScan(tableRel, indexRel *relstore.Relation, keys []scankey.Key) (*IndexScan, error) {
	if len(keys) == 0 {
		return nil, lerrors.New(lerrors.Invalid, "indexam: BeginScan requires at least one scan key")
	}

	common := 1
	for common < len(keys) && keys[common].Strategy == keys[0].Strategy {
		common++
	}

	if keys[0].Strategy != scankey.Equal {
		return nil, lerrors.New(lerrors.NotSupported, "indexam: strategy %v not supported for index scan common prefix", keys[0].Strategy)
	}

	cursor, err := indexRel.Table.Cursor()
	if err != nil {
		return nil, err
	}

	return &IndexScan{
		tableRel: tableRel,
		indexRel: indexRel,
		keys:     keys,
		common:   common,
		cursor:   cursor,
	}, nil
}

// GetNext advances the cursor and returns the next matching base-table
// row, or (nil, nil) once the scan is finished.
func (s *IndexScan) GetNext() (*tuple.Tuple, error) {
	if s.finished {
		return nil, nil
	}

	var gotKey, val []byte
	var ok bool
	var err error

	if !s.started {
		s.started = true
		cols := make([]tuple.Column, s.common)
		for i := 0; i < s.common; i++ {
			cols[i] = tuple.Column{Type: s.keys[i].Type, Data: s.keys[i].Argument}
		}
		probe, err := tuple.Construct(0, cols)
		if err != nil {
			return nil, err
		}
		gotKey, val, ok, err = s.cursor.Get(probe.Data(), kv.SetRange)
		if err != nil {
			return nil, err
		}
	} else {
		gotKey, val, ok, err = s.cursor.Get(nil, kv.Next)
		if err != nil {
			return nil, err
		}
	}

	if !ok {
		s.finished = true
		return nil, nil
	}

	idx := tuple.New(gotKey)

	for i := 0; i < s.common; i++ {
		col, err := idx.GetSlice(i + 1)
		if err != nil {
			return nil, err
		}
		if !bytes.Equal(col, s.keys[i].Argument) {
			s.finished = true
			return nil, nil
		}
	}

	for i := s.common; i < len(s.keys); i++ {
		col, err := idx.GetSlice(i + 1)
		if err != nil {
			return nil, err
		}
		sat, err := s.keys[i].Satisfies(col)
		if err != nil {
			return nil, err
		}
		if !sat {
			return s.GetNext()
		}
	}

	if len(val) != 8 {
		return nil, lerrors.New(lerrors.Corrupt, "indexam: index value size %d != 8", len(val))
	}
	rowVal, found, err := s.tableRel.Table.Get(val)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, lerrors.New(lerrors.Corrupt, "indexam: index entry points at missing rowid")
	}

	row := tuple.New(rowVal)
	row.SetRowID(int64(enc.Uint64(val)))
	return row, nil
}

// EndScan releases the scan's cursor.
func (s *IndexScan) EndScan() {
	if s.cursor != nil {
		s.cursor.Close()
	}
}
