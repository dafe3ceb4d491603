package buffer

import (
	"encoding/binary"
	"fmt"
)

// Write writes a slice of bytes to w.
func Write(w Writer, c []byte) (n int64, err error) {
	nint, err := w.Write(c)
	return int64(nint), err
}

// WriteUint8 writes a byte c to w.
func WriteUint8(w Writer, c uint8) (n int64, err error) {

	if w.Available() == 0 {
		if err = w.Flush(); err != nil {
			return
		}

		if w.Available() == 0 {
			return 0, fmt.Errorf("cannot WriteUint8: available buffer is zero even after flush")
		}
	}

	nint, err := w.Write([]byte{c})

	return int64(nint), err
}

// WriteUint32 writes a uint32 c to w.
func WriteUint32(w Writer, c uint32) (n int64, err error) {

	if w.Available()>>2 == 0 {
		if err = w.Flush(); err != nil {
			return
		}

		if w.Available()>>2 == 0 {
			return 0, fmt.Errorf("cannot WriteUint32: available buffer/4 is zero even after flush")
		}
	}

	buf := w.AvailableBuffer()[:4]
	binary.LittleEndian.PutUint32(buf, c)
	nint, err := w.Write(buf)
	return int64(nint), err
}

// WriteUint8Slice writes a slice of bytes c to w.
func WriteUint8Slice(w Writer, c []uint8) (n int64, err error) {

	if len(c) == 0 {
		return
	}

	// Remaining available space in the internal buffer
	available := w.Available()

	if available == 0 {

		if err = w.Flush(); err != nil {
			return
		}

		available = w.Available()

		if available == 0 {
			return 0, fmt.Errorf("cannot WriteUint8Slice: available buffer is zero even after flush")
		}
	}

	buf := w.AvailableBuffer()

	if N := len(c); N <= available { // If there is enough space in the available buffer
		buf = buf[:N]

		copy(buf, c)

		nint, err := w.Write(buf)

		return int64(nint), err
	}

	// First fills the space
	buf = buf[:available]

	copy(buf, c)

	var inc int
	if inc, err = w.Write(buf); err != nil {
		return n + int64(inc), err
	}

	n += int64(inc)

	// Flushes
	if err = w.Flush(); err != nil {
		return n, err
	}

	// Then recurses on itself with the remaining slice
	var inc64 int64
	inc64, err = WriteUint8Slice(w, c[available:])

	return n + inc64, err
}
