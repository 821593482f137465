package badger

import (
	"encoding/binary"

	"github.com/poiesic/labmatch/core"
)

// Key prefixes for different data types
const (
	vectorMetaPrefix  = "vecmeta"
	vectorFieldPrefix = "vecfld"
)

// makeMetaKey generates the key for a cache entry's metadata.
// Format: prefix:fingerprint
func makeMetaKey(fp core.Fingerprint) []byte {
	prefix := []byte(vectorMetaPrefix + ":")
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(fp))
	return buf
}

// makeMetaScanPrefix returns the prefix shared by all metadata keys.
func makeMetaScanPrefix() []byte {
	return []byte(vectorMetaPrefix + ":")
}

// makePartialFieldKey generates the prefix shared by every embedding of one
// cache entry. With a non-zero field it narrows to that field.
// Format: prefix:fingerprint[field]
func makePartialFieldKey(fp core.Fingerprint, field core.Field) []byte {
	prefix := []byte(vectorFieldPrefix + ":")
	size := len(prefix) + 8
	if field != 0 {
		size++
	}
	buf := make([]byte, size)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(fp))
	offset += 8
	if field != 0 {
		buf[offset] = byte(field)
	}
	return buf
}

// makeFieldKey generates the key for one row's embedding of one field.
// Rows are written BigEndian so a prefix scan returns them in row order.
// Format: prefix:fingerprint field row
func makeFieldKey(fp core.Fingerprint, field core.Field, row int) []byte {
	partial := makePartialFieldKey(fp, field)
	buf := make([]byte, len(partial)+4)
	offset := copy(buf, partial)
	binary.BigEndian.PutUint32(buf[offset:], uint32(row))
	return buf
}
