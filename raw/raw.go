/*
Package raw implements reading and writing headerless RGB565 image files.

A raw file is nothing but width*height 16-bit RGB565 pixels in row-major order,
each stored in the native byte order of the machine that wrote it. There is no
header, so the dimensions must be known in advance, and files are not portable
between machines of differing endianness.
*/
package raw

import (
	"encoding/binary"
	"unsafe"
)

const wordSize = int(unsafe.Sizeof(uint16(0)))

// Words returns b viewed as native-endian 16-bit words. A trailing odd byte is
// ignored. When b is suitably aligned the result shares memory with b and
// must not be used beyond the lifetime of b; otherwise the words are copied.
func Words(b []byte) []uint16 {
	n := len(b) / wordSize
	if n == 0 {
		return []uint16{}
	}

	p := unsafe.Pointer(unsafe.SliceData(b))
	if uintptr(p)%unsafe.Alignof(uint16(0)) == 0 {
		return unsafe.Slice((*uint16)(p), n)
	}

	w := make([]uint16, n)
	for i := range w {
		w[i] = binary.NativeEndian.Uint16(b[i*wordSize:])
	}
	return w
}

// Bytes returns the memory backing w as a byte slice, with each word in
// native byte order. The result shares memory with w.
func Bytes(w []uint16) []byte {
	if len(w) == 0 {
		return []byte{}
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(w))), len(w)*wordSize)
}
