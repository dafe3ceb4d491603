package buffer

import (
	"encoding/binary"
	"fmt"
)

// ReadUint8 reads a byte from r into *c.
func ReadUint8(r Reader, c *uint8) (n int, err error) {

	if c == nil {
		return 0, fmt.Errorf("cannot ReadUint8: c is nil")
	}

	var bb = [1]byte{}

	if n, err = r.Read(bb[:]); err != nil {
		return
	}

	*c = bb[0]

	return n, nil
}

// ReadUint8Slice reads len(c) bytes from r into c.
func ReadUint8Slice(r Reader, c []uint8) (n int, err error) {
	return r.Read(c)
}

// ReadUint32 reads a uint32 from r into *c.
func ReadUint32(r Reader, c *uint32) (n int, err error) {

	if c == nil {
		return 0, fmt.Errorf("cannot ReadUint32: c is nil")
	}

	var bb = [4]byte{}

	if n, err = r.Read(bb[:]); err != nil {
		return
	}

	*c = binary.LittleEndian.Uint32(bb[:])

	return n, nil
}
