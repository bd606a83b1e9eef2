// Package engine implements the BLAKE2 compression function and the
// incremental hashing state shared by BLAKE2b and BLAKE2s. Both variants are
// instantiations of the same generic code over their native word type.
package engine

// Word is the native word of a BLAKE2 variant.
type Word interface {
	~uint32 | ~uint64
}

// maxBlockSize is the largest block size of any variant (BLAKE2b).
const maxBlockSize = 128

// A Variant holds the constants that distinguish the BLAKE2 instantiations.
// Everything else, including the round structure and the buffering rules, is
// common to all of them.
type Variant[W Word] struct {
	// Name prefixes every error message, e.g. "blake2b".
	Name string
	// WordSize is the size of W in bytes.
	WordSize int
	// BlockSize is the number of message bytes consumed per compression.
	BlockSize int
	// Rounds is the number of G function rounds.
	Rounds int
	// Rotations are the four right-rotation amounts used by G.
	Rotations [4]uint
	// IV is the initialization vector. The parameter block is XOR'd into it.
	IV [8]W

	MaxSize        int // maximum digest size in bytes
	MaxKey         int // maximum key size in bytes
	SaltSize       int
	PersonalSize   int
	NodeOffsetSize int // width of the node offset field in bytes
}

// Blake2b is optimized for 64-bit platforms.
var Blake2b = Variant[uint64]{
	Name:      "blake2b",
	WordSize:  8,
	BlockSize: 128,
	Rounds:    12,
	Rotations: [4]uint{32, 24, 16, 63},
	IV: [8]uint64{
		0x6a09e667f3bcc908, 0xbb67ae8584caa73b,
		0x3c6ef372fe94f82b, 0xa54ff53a5f1d36f1,
		0x510e527fade682d1, 0x9b05688c2b3e6c1f,
		0x1f83d9abfb41bd6b, 0x5be0cd19137e2179,
	},
	MaxSize:        64,
	MaxKey:         64,
	SaltSize:       16,
	PersonalSize:   16,
	NodeOffsetSize: 8,
}

// Blake2s is optimized for 8- to 32-bit platforms.
var Blake2s = Variant[uint32]{
	Name:      "blake2s",
	WordSize:  4,
	BlockSize: 64,
	Rounds:    10,
	Rotations: [4]uint{16, 12, 8, 7},
	IV: [8]uint32{
		0x6a09e667, 0xbb67ae85, 0x3c6ef372, 0xa54ff53a,
		0x510e527f, 0x9b05688c, 0x1f83d9ab, 0x5be0cd19,
	},
	MaxSize:        32,
	MaxKey:         32,
	SaltSize:       8,
	PersonalSize:   8,
	NodeOffsetSize: 6,
}

// loadLE reads an n-byte little-endian word.
func loadLE[W Word](b []byte, n int) W {
	_ = b[n-1]
	var w W
	for i := n - 1; i >= 0; i-- {
		w = w<<8 | W(b[i])
	}
	return w
}

// storeLE writes w as an n-byte little-endian word.
func storeLE[W Word](b []byte, w W, n int) {
	_ = b[n-1]
	for i := 0; i < n; i++ {
		b[i] = byte(w >> (8 * uint(i)))
	}
}
