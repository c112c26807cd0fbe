package catalog

import (
	"encoding/binary"

	"github.com/litedb-go/litedb/oid"
)

var enc = binary.NativeEndian

func rowidKeyBytes(id int64) []byte {
	buf := make([]byte, 8)
	enc.PutUint64(buf, uint64(id))
	return buf
}

func nameBytes(s string) []byte {
	name := oid.EncodeName(s)
	return name[:]
}

func int64Bytes(v int64) []byte {
	buf := make([]byte, 8)
	enc.PutUint64(buf, uint64(v))
	return buf
}

func int16Bytes(v int16) []byte {
	buf := make([]byte, 2)
	enc.PutUint16(buf, uint16(v))
	return buf
}
