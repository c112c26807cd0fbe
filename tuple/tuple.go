// Package tuple implements the bit-exact row/index-entry codec: a tuple is
// a contiguous byte buffer laid out as a header of fixed-size column
// metadata followed by the concatenated column payloads, with a synthetic
// rowid column synthesized at index 0 rather than stored in the buffer.
package tuple

import (
	"encoding/binary"

	"github.com/litedb-go/litedb/internal/mathutil"
	"github.com/litedb-go/litedb/lerrors"
	"github.com/litedb-go/litedb/oid"
)

// typeMetaSize is sizeof(TypeMeta): three u32 fields, packed.
const typeMetaSize = 12

// headerBaseSize is sizeof(TupleHeaderData) before any TypeMeta entries.
const headerBaseSize = 4

var enc = binary.NativeEndian

// Column is one column value supplied to Construct: its type, and its
// already-encoded payload bytes. A zero-length Data is legal and stores no
// bytes (§4.2's "empty columns are legal").
type Column struct {
	Type oid.Type
	Data []byte
}

// Meta describes one column as read back out of a tuple: its type, and a
// slice into the tuple's own buffer (or, for the synthetic rowid column, a
// freshly encoded 8-byte slice).
type Meta struct {
	Type oid.Type
	Data []byte
}

// Tuple is a decoded view over a byte buffer in the layout above, plus an
// out-of-band rowid.
//
// owned distinguishes a buffer this Tuple allocated itself (from Construct
// or Copy) from one that merely aliases a slice handed back by a KV cursor.
// Go's GC makes the distinction irrelevant for freeing, but it is preserved
// in the API because a borrowed Tuple must not be retained past the
// cursor step that produced it — Copy is how a caller promotes one to
// owned.
type Tuple struct {
	rowid int64
	buf   []byte
	owned bool
}

// New wraps buf (e.g. a KV cursor's value slice) as a borrowed Tuple with no
// rowid attached yet.
func New(buf []byte) *Tuple {
	return &Tuple{buf: buf}
}

// Construct allocates a fresh tuple buffer and returns an owned Tuple
// carrying rowid and the given columns in order. headerSize = 4 + N*12;
// total size = headerSize + sum of column sizes.
func Construct(rowid int64, columns []Column) (*Tuple, error) {
	if len(columns) == 0 {
		return nil, lerrors.New(lerrors.Invalid, "tuple: construct requires at least one column")
	}

	headerSize, overflow := mathutil.SafeAdd(headerBaseSize, uint64(len(columns))*typeMetaSize)
	if overflow {
		return nil, lerrors.New(lerrors.Invalid, "tuple: header size overflow")
	}

	total := headerSize
	for _, c := range columns {
		var overflow bool
		total, overflow = mathutil.SafeAdd(total, uint64(len(c.Data)))
		if overflow {
			return nil, lerrors.New(lerrors.Invalid, "tuple: payload size overflow")
		}
	}

	buf := make([]byte, total)
	enc.PutUint32(buf[0:4], uint32(headerSize))

	metaOff := uint64(headerBaseSize)
	dataOff := uint64(0)
	for _, c := range columns {
		enc.PutUint32(buf[metaOff:metaOff+4], uint32(c.Type))
		enc.PutUint32(buf[metaOff+4:metaOff+8], uint32(dataOff))
		enc.PutUint32(buf[metaOff+8:metaOff+12], uint32(len(c.Data)))
		copy(buf[headerSize+dataOff:headerSize+dataOff+uint64(len(c.Data))], c.Data)
		metaOff += typeMetaSize
		dataOff += uint64(len(c.Data))
	}

	return &Tuple{rowid: rowid, buf: buf, owned: true}, nil
}

// Copy deep-copies the tuple's buffer, returning an owned Tuple safe to
// retain past the lifetime of whatever produced the original (e.g. a KV
// cursor's current position).
func (t *Tuple) Copy() *Tuple {
	buf := make([]byte, len(t.buf))
	copy(buf, t.buf)
	return &Tuple{rowid: t.rowid, buf: buf, owned: true}
}

// ContainsRowID reports whether a rowid has been attached (rowid > 0).
func (t *Tuple) ContainsRowID() bool { return t.rowid > 0 }

// RowID returns the attached rowid, or 0 if none.
func (t *Tuple) RowID() int64 { return t.rowid }

// SetRowID attaches id as this tuple's rowid.
func (t *Tuple) SetRowID(id int64) { t.rowid = id }

// Data returns the tuple's raw encoded buffer (the bytes stored under a
// table or index sub-store key).
func (t *Tuple) Data() []byte { return t.buf }

func (t *Tuple) headerSize() uint32 {
	return enc.Uint32(t.buf[0:4])
}

// Columns returns 1 + (headerSize-4)/12: the stored column count plus one
// for the synthetic rowid at index 0.
func (t *Tuple) Columns() int {
	return 1 + int(t.headerSize()-headerBaseSize)/typeMetaSize
}

// GetMeta returns column k's type and data slice. k == 0 synthesizes the
// rowid column (type INT8OID, 8 bytes); k >= 1 indexes header slot k-1.
func (t *Tuple) GetMeta(k int) (Meta, error) {
	if k == 0 {
		var rowidBuf [8]byte
		enc.PutUint64(rowidBuf[:], uint64(t.rowid))
		return Meta{Type: oid.INT8OID, Data: rowidBuf[:]}, nil
	}

	headerSize := t.headerSize()
	if uint64(headerSize) < uint64(headerBaseSize)+uint64(k)*typeMetaSize {
		return Meta{}, lerrors.New(lerrors.Corrupt, "tuple: column %d out of range", k)
	}

	metaOff := headerBaseSize + uint32(k-1)*typeMetaSize
	typ := oid.Type(enc.Uint32(t.buf[metaOff : metaOff+4]))
	off := enc.Uint32(t.buf[metaOff+4 : metaOff+8])
	size := enc.Uint32(t.buf[metaOff+8 : metaOff+12])

	start := uint64(headerSize) + uint64(off)
	data := t.buf[start : start+uint64(size)]
	return Meta{Type: typ, Data: data}, nil
}

// GetType returns column k's type.
func (t *Tuple) GetType(k int) (oid.Type, error) {
	m, err := t.GetMeta(k)
	if err != nil {
		return 0, err
	}
	return m.Type, nil
}

// GetSlice returns column k's raw data slice.
func (t *Tuple) GetSlice(k int) ([]byte, error) {
	m, err := t.GetMeta(k)
	if err != nil {
		return nil, err
	}
	return m.Data, nil
}

// GetInt8 reads column k as a signed byte (CHAROID/BOOLOID), failing with
// Corrupt if the stored size is not exactly 1.
func GetInt8(t *Tuple, k int) (int8, error) {
	m, err := t.GetMeta(k)
	if err != nil {
		return 0, err
	}
	if len(m.Data) != 1 {
		return 0, lerrors.New(lerrors.Corrupt, "tuple: column %d size %d != 1", k, len(m.Data))
	}
	return int8(m.Data[0]), nil
}

// GetBool reads column k as a BOOLOID byte.
func GetBool(t *Tuple, k int) (bool, error) {
	v, err := GetInt8(t, k)
	if err != nil {
		return false, err
	}
	return v != 0, nil
}

// GetInt16 reads column k as a host-endian int16 (INT2OID).
func GetInt16(t *Tuple, k int) (int16, error) {
	m, err := t.GetMeta(k)
	if err != nil {
		return 0, err
	}
	if len(m.Data) != 2 {
		return 0, lerrors.New(lerrors.Corrupt, "tuple: column %d size %d != 2", k, len(m.Data))
	}
	return int16(enc.Uint16(m.Data)), nil
}

// GetInt32 reads column k as a host-endian int32 (INT4OID).
func GetInt32(t *Tuple, k int) (int32, error) {
	m, err := t.GetMeta(k)
	if err != nil {
		return 0, err
	}
	if len(m.Data) != 4 {
		return 0, lerrors.New(lerrors.Corrupt, "tuple: column %d size %d != 4", k, len(m.Data))
	}
	return int32(enc.Uint32(m.Data)), nil
}

// GetInt64 reads column k as a host-endian int64 (INT8OID).
func GetInt64(t *Tuple, k int) (int64, error) {
	m, err := t.GetMeta(k)
	if err != nil {
		return 0, err
	}
	if len(m.Data) != 8 {
		return 0, lerrors.New(lerrors.Corrupt, "tuple: column %d size %d != 8", k, len(m.Data))
	}
	return int64(enc.Uint64(m.Data)), nil
}

// GetName reads column k as a fixed NAMEOID string.
func GetName(t *Tuple, k int) (string, error) {
	m, err := t.GetMeta(k)
	if err != nil {
		return "", err
	}
	if len(m.Data) != oid.NameDataLen {
		return "", lerrors.New(lerrors.Corrupt, "tuple: column %d size %d != %d", k, len(m.Data), oid.NameDataLen)
	}
	return oid.DecodeName(m.Data), nil
}

// Int8Column, Int16Column, Int32Column, Int64Column, and NameColumn build a
// Column value from a Go value of the matching type, mirroring the
// TupleMeta(u16*) / TupleMeta(u32*) / TupleMeta(u64*) constructors.

func Int8Column(t oid.Type, v int8) Column {
	return Column{Type: t, Data: []byte{byte(v)}}
}

func BoolColumn(v bool) Column {
	var b byte
	if v {
		b = 1
	}
	return Column{Type: oid.BOOLOID, Data: []byte{b}}
}

func Int16Column(v int16) Column {
	buf := make([]byte, 2)
	enc.PutUint16(buf, uint16(v))
	return Column{Type: oid.INT2OID, Data: buf}
}

func Int32Column(v int32) Column {
	buf := make([]byte, 4)
	enc.PutUint32(buf, uint32(v))
	return Column{Type: oid.INT4OID, Data: buf}
}

func Int64Column(v int64) Column {
	buf := make([]byte, 8)
	enc.PutUint64(buf, uint64(v))
	return Column{Type: oid.INT8OID, Data: buf}
}

func NameColumn(s string) Column {
	name := oid.EncodeName(s)
	return Column{Type: oid.NAMEOID, Data: name[:]}
}

func TextColumn(s string) Column {
	return Column{Type: oid.TEXTOID, Data: []byte(s)}
}

// Int2VectorColumn encodes a fixed [oid.IndexMaxKeys]int16 vector (used only
// by sys_index.indkey).
func Int2VectorColumn(v [oid.IndexMaxKeys]int16) Column {
	buf := make([]byte, oid.IndexMaxKeys*2)
	for i, x := range v {
		enc.PutUint16(buf[i*2:i*2+2], uint16(x))
	}
	return Column{Type: oid.INT2VECTOROID, Data: buf}
}

// GetInt2Vector reads column k as a fixed [oid.IndexMaxKeys]int16 vector.
func GetInt2Vector(t *Tuple, k int) ([oid.IndexMaxKeys]int16, error) {
	var out [oid.IndexMaxKeys]int16
	m, err := t.GetMeta(k)
	if err != nil {
		return out, err
	}
	if len(m.Data) != oid.IndexMaxKeys*2 {
		return out, lerrors.New(lerrors.Corrupt, "tuple: column %d size %d != %d", k, len(m.Data), oid.IndexMaxKeys*2)
	}
	for i := range out {
		out[i] = int16(enc.Uint16(m.Data[i*2 : i*2+2]))
	}
	return out, nil
}
