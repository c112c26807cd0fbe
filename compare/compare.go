// Package compare implements the per-column-type total orders and the
// composite tuple-prefix comparator used to order index sub-stores.
package compare

import (
	"bytes"
	"encoding/binary"

	"github.com/litedb-go/litedb/lerrors"
	"github.com/litedb-go/litedb/oid"
	"github.com/litedb-go/litedb/tuple"
)

var enc = binary.NativeEndian

// Func is a per-type comparator: cmp(a, b) < 0 if a < b, == 0 if equal,
// > 0 if a > b. Arguments must already be the type's natural size —
// mismatch is a programmer error (BasicTypeCmp's original assert).
type Func func(a, b []byte) int

// ForType returns the comparator registered for t, or nil if t has none
// (TEXTOID and INT2VECTOROID are never used as comparator arguments in
// this core).
func ForType(t oid.Type) Func {
	switch t {
	case oid.CHAROID, oid.BOOLOID:
		return Int8Cmp
	case oid.INT2OID:
		return Int16Cmp
	case oid.INT4OID:
		return Int32Cmp
	case oid.INT8OID:
		return Int64Cmp
	case oid.NAMEOID:
		return NameCmp
	default:
		return nil
	}
}

// Int8Cmp compares two single signed bytes (CHAROID/BOOLOID).
func Int8Cmp(a, b []byte) int {
	va, vb := int8(a[0]), int8(b[0])
	switch {
	case va < vb:
		return -1
	case va > vb:
		return 1
	default:
		return 0
	}
}

// Int16Cmp compares two host-endian int16s (INT2OID).
func Int16Cmp(a, b []byte) int {
	va, vb := int16(enc.Uint16(a)), int16(enc.Uint16(b))
	switch {
	case va < vb:
		return -1
	case va > vb:
		return 1
	default:
		return 0
	}
}

// Int32Cmp compares two host-endian int32s (INT4OID).
func Int32Cmp(a, b []byte) int {
	va, vb := int32(enc.Uint32(a)), int32(enc.Uint32(b))
	switch {
	case va < vb:
		return -1
	case va > vb:
		return 1
	default:
		return 0
	}
}

// Int64Cmp compares two host-endian int64s (INT8OID).
func Int64Cmp(a, b []byte) int {
	va, vb := int64(enc.Uint64(a)), int64(enc.Uint64(b))
	switch {
	case va < vb:
		return -1
	case va > vb:
		return 1
	default:
		return 0
	}
}

// Uint64Cmp compares two host-endian uint64s — the rowid comparator
// installed on table sub-stores.
func Uint64Cmp(a, b []byte) int {
	va, vb := enc.Uint64(a), enc.Uint64(b)
	switch {
	case va < vb:
		return -1
	case va > vb:
		return 1
	default:
		return 0
	}
}

// NameCmp compares two fixed NAMEDATALEN-byte names byte-wise (strncmp).
func NameCmp(a, b []byte) int {
	return bytes.Compare(a, b)
}

// Composite decodes both sides as tuples and compares column-by-column
// starting at column 0 (the synthetic rowid, a harmless no-op prefix
// compare since freshly decoded index tuples carry no attached rowid on
// either side) through min(columns1, columns2); on an all-equal prefix the
// shorter tuple sorts first. This is the comparator installed on every
// index sub-store.
func Composite(a, b []byte) int {
	t1 := tuple.New(a)
	t2 := tuple.New(b)

	cols1 := t1.Columns()
	cols2 := t2.Columns()
	minCols := cols1
	if cols2 < minCols {
		minCols = cols2
	}

	for i := 0; i < minCols; i++ {
		m1, err := t1.GetMeta(i)
		if err != nil {
			panic(lerrors.Wrap(lerrors.Corrupt, err, "compare: decoding left tuple column %d", i))
		}
		m2, err := t2.GetMeta(i)
		if err != nil {
			panic(lerrors.Wrap(lerrors.Corrupt, err, "compare: decoding right tuple column %d", i))
		}
		if m1.Type != m2.Type {
			panic(lerrors.New(lerrors.Corrupt, "compare: column %d type mismatch %v != %v", i, m1.Type, m2.Type))
		}

		cmp := ForType(m1.Type)
		if cmp == nil {
			panic(lerrors.New(lerrors.Corrupt, "compare: no comparator for type %v", m1.Type))
		}
		if ret := cmp(m1.Data, m2.Data); ret != 0 {
			return ret
		}
	}

	switch {
	case cols1 == cols2:
		return 0
	case cols1 < cols2:
		return -1
	default:
		return 1
	}
}
