package ui

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"strings"
)

// ID identifies a node across frames. It is a hash of the parent's ID and a
// discriminator local to the parent: the sibling ordinal, or an explicit key.
type ID uint64

const (
	tagOrdinal byte = 'o'
	tagKey     byte = 'k'
)

// NewID returns the ID of a root named name.
func NewID(name string) ID {
	h := fnv.New64a()
	h.Write([]byte(name))
	return ID(h.Sum64())
}

func (id ID) derive(tag byte, data []byte) ID {
	var buf [9]byte
	binary.LittleEndian.PutUint64(buf[:8], uint64(id))
	buf[8] = tag
	h := fnv.New64a()
	h.Write(buf[:])
	h.Write(data)
	return ID(h.Sum64())
}

// WithOrdinal returns the ID of the n-th unkeyed child.
func (id ID) WithOrdinal(n int) ID {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(n))
	return id.derive(tagOrdinal, buf[:])
}

// WithKey returns the ID of the child with the explicit key. Keys and
// ordinals never collide: key "3" differs from the fourth unkeyed child.
func (id ID) WithKey(key string) ID {
	return id.derive(tagKey, []byte(key))
}

func (id ID) String() string {
	return fmt.Sprintf("%016x", uint64(id))
}

// Key joins parts into an explicit key, e.g. Key("cell", row, col).
func Key(parts ...any) string {
	var sb strings.Builder
	for i, p := range parts {
		if i > 0 {
			sb.WriteByte(0x1f)
		}
		fmt.Fprint(&sb, p)
	}
	return sb.String()
}
