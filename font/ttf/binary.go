package ttf

import "encoding/binary"

// Big-endian append helpers. Values are truncated to the field width; range
// checks happen before encoding.

func appendU8(b []byte, v int) []byte {
	return append(b, byte(v))
}

func appendU16(b []byte, v int) []byte {
	return binary.BigEndian.AppendUint16(b, uint16(v))
}

func appendI16(b []byte, v int) []byte {
	return binary.BigEndian.AppendUint16(b, uint16(int16(v)))
}

func appendU32(b []byte, v uint32) []byte {
	return binary.BigEndian.AppendUint32(b, v)
}

func appendI64(b []byte, v int64) []byte {
	return binary.BigEndian.AppendUint64(b, uint64(v))
}

func appendTag(b []byte, tag string) []byte {
	return append(b, tag[0], tag[1], tag[2], tag[3])
}

// fixed16 converts v to a 16.16 fixed-point number.
func fixed16(v float64) uint32 {
	return uint32(int32(v * 65536))
}

// checksum computes the sfnt table checksum: the sum of big-endian uint32
// words, with the data zero-padded to a multiple of four bytes.
func checksum(data []byte) uint32 {
	var sum uint32
	n := len(data) &^ 3
	for i := 0; i < n; i += 4 {
		sum += binary.BigEndian.Uint32(data[i:])
	}
	if rem := len(data) - n; rem > 0 {
		var last [4]byte
		copy(last[:], data[n:])
		sum += binary.BigEndian.Uint32(last[:])
	}
	return sum
}

// pad4 returns b padded with zeros to a multiple of four bytes.
func pad4(b []byte) []byte {
	for len(b)%4 != 0 {
		b = append(b, 0)
	}
	return b
}

// log2floor returns floor(log2(n)) for n >= 1.
func log2floor(n int) int {
	k := 0
	for n > 1 {
		n >>= 1
		k++
	}
	return k
}
