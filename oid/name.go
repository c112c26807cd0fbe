package oid

// EncodeName NUL-pads s into a fixed NameDataLen-byte NAMEOID buffer,
// truncating if s is too long — the same fixed-width name discipline as
// sys_class.relname / sys_attribute.attname.
func EncodeName(s string) [NameDataLen]byte {
	var buf [NameDataLen]byte
	n := copy(buf[:], s)
	_ = n
	return buf
}

// DecodeName returns the NUL-terminated prefix of a NAMEOID buffer as a
// string.
func DecodeName(buf []byte) string {
	for i, b := range buf {
		if b == 0 {
			return string(buf[:i])
		}
	}
	return string(buf)
}
