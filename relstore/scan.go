package relstore

import (
	"github.com/litedb-go/litedb/kv"
	"github.com/litedb-go/litedb/lerrors"
	"github.com/litedb-go/litedb/scankey"
	"github.com/litedb-go/litedb/tuple"
)

type scanMode int

const (
	modeSequential scanMode = iota
	modeRowidEqual
	modeRowidRange
)

// TableScan drives one of the three modes selected at TableBeginScan time
// (§4.8): rowid-direct equal, rowid-direct range, or sequential scan with
// per-row predicate filtering.
type TableScan struct {
	rel    *Relation
	keys   []scankey.Key
	mode   scanMode
	cursor *kv.Cursor

	rowidDone bool
	rowidKey  []byte
}

// TableBeginScan selects a scan mode from keys and positions it.
//
// Rowid-direct scans support only Equal, GreaterEqual, and Greater — Less
// and LessEqual are the open question §4.8 leaves to implementers, and are
// rejected here with NotSupported rather than guessed at.
func TableBeginScan(rel *Relation, keys []scankey.Key) (*TableScan, error) {
	if rel.Kind != TableKind {
		return nil, lerrors.New(lerrors.Invalid, "relstore: TableBeginScan on non-table relation %d", rel.RelID)
	}

	s := &TableScan{rel: rel, keys: keys}

	if len(keys) == 1 && keys[0].Attno == 0 {
		switch keys[0].Strategy {
		case scankey.Equal:
			s.mode = modeRowidEqual
			s.rowidKey = keys[0].Argument
			return s, nil
		case scankey.GreaterEqual, scankey.Greater:
			s.mode = modeRowidRange
			cur, err := rel.Table.Cursor()
			if err != nil {
				return nil, err
			}
			s.cursor = cur
			s.rowidKey = keys[0].Argument
			return s, nil
		default:
			return nil, lerrors.New(lerrors.NotSupported, "relstore: rowid-direct scan strategy %v not supported", keys[0].Strategy)
		}
	}

	s.mode = modeSequential
	cur, err := rel.Table.Cursor()
	if err != nil {
		return nil, err
	}
	s.cursor = cur
	return s, nil
}

// GetNext returns the next matching tuple, or (nil, nil) at end of scan.
func (s *TableScan) GetNext() (*tuple.Tuple, error) {
	switch s.mode {
	case modeRowidEqual:
		return s.getNextRowidEqual()
	case modeRowidRange:
		return s.getNextRowidRange()
	default:
		return s.getNextSequential()
	}
}

func (s *TableScan) getNextRowidEqual() (*tuple.Tuple, error) {
	if s.rowidDone {
		return nil, nil
	}
	s.rowidDone = true

	val, ok, err := s.rel.Table.Get(s.rowidKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return decodeRow(s.rowidKey, val)
}

func (s *TableScan) getNextRowidRange() (*tuple.Tuple, error) {
	var gotKey, val []byte
	var ok bool
	var err error

	if !s.rowidDone {
		s.rowidDone = true
		gotKey, val, ok, err = s.cursor.Get(s.rowidKey, kv.SetRange)
	} else {
		gotKey, val, ok, err = s.cursor.Get(nil, kv.Next)
	}
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	strategy := s.keys[0].Strategy
	sat, err := s.keys[0].Satisfies(gotKey)
	if err != nil {
		return nil, err
	}
	if strategy == scankey.GreaterEqual && !sat {
		return nil, nil
	}
	if strategy == scankey.Greater && !sat {
		return s.getNextRowidRange()
	}
	return decodeRow(gotKey, val)
}

func (s *TableScan) getNextSequential() (*tuple.Tuple, error) {
	for {
		gotKey, val, ok, err := s.cursor.Get(nil, kv.Next)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, nil
		}

		row, err := decodeRow(gotKey, val)
		if err != nil {
			return nil, err
		}

		match, err := satisfiesAll(row, s.keys)
		if err != nil {
			return nil, err
		}
		if match {
			return row, nil
		}
	}
}

// EndScan releases the scan's resources.
func (s *TableScan) EndScan() {
	if s.cursor != nil {
		s.cursor.Close()
	}
}

func satisfiesAll(row *tuple.Tuple, keys []scankey.Key) (bool, error) {
	for _, k := range keys {
		col, err := row.GetSlice(int(k.Attno))
		if err != nil {
			return false, err
		}
		sat, err := k.Satisfies(col)
		if err != nil {
			return false, err
		}
		if !sat {
			return false, nil
		}
	}
	return true, nil
}

func decodeRow(rowidKey, val []byte) (*tuple.Tuple, error) {
	if len(rowidKey) != 8 {
		return nil, lerrors.New(lerrors.Corrupt, "relstore: rowid key size %d != 8", len(rowidKey))
	}
	row := tuple.New(val)
	row.SetRowID(int64(enc.Uint64(rowidKey)))
	return row, nil
}
