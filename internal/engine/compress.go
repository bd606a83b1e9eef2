package engine

// Message word schedule. Rounds past the tenth wrap around to the first row.
var sigma = [10][16]uint8{
	{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15},
	{14, 10, 4, 8, 9, 15, 13, 6, 1, 12, 0, 2, 11, 7, 5, 3},
	{11, 8, 12, 0, 5, 2, 15, 13, 10, 14, 3, 6, 7, 1, 9, 4},
	{7, 9, 3, 1, 13, 12, 11, 14, 2, 6, 5, 10, 4, 0, 15, 8},
	{9, 0, 5, 7, 2, 4, 10, 15, 14, 1, 11, 12, 6, 8, 3, 13},
	{2, 12, 6, 10, 0, 11, 8, 3, 4, 13, 7, 5, 15, 14, 1, 9},
	{12, 5, 1, 15, 14, 13, 4, 10, 0, 7, 6, 3, 9, 2, 8, 11},
	{13, 11, 7, 14, 12, 1, 3, 9, 5, 0, 15, 4, 8, 6, 2, 10},
	{6, 15, 14, 9, 11, 3, 0, 8, 12, 2, 13, 7, 1, 4, 10, 5},
	{10, 2, 8, 4, 7, 6, 1, 5, 15, 11, 9, 14, 3, 12, 13, 0},
}

// compress mixes one block into the chain value using the current counter
// and finalization flags. block must be exactly BlockSize bytes.
func (s *State[W]) compress(block []byte) {
	ws := s.v.WordSize
	bits := uint(8 * ws)
	rot := &s.v.Rotations

	var m [16]W
	for i := range m {
		m[i] = loadLE[W](block[i*ws:], ws)
	}

	// Copy the current hash state to the top, then the tweaked IVs to the
	// bottom.
	var v [16]W
	copy(v[:8], s.h[:])
	copy(v[8:], s.v.IV[:])
	v[12] ^= s.t[0]
	v[13] ^= s.t[1]
	v[14] ^= s.f[0]
	v[15] ^= s.f[1]

	for r := 0; r < s.v.Rounds; r++ {
		p := &sigma[r%len(sigma)]

		// columns
		v[0], v[4], v[8], v[12] = g(v[0], v[4], v[8], v[12], m[p[0]], m[p[1]], rot, bits)
		v[1], v[5], v[9], v[13] = g(v[1], v[5], v[9], v[13], m[p[2]], m[p[3]], rot, bits)
		v[2], v[6], v[10], v[14] = g(v[2], v[6], v[10], v[14], m[p[4]], m[p[5]], rot, bits)
		v[3], v[7], v[11], v[15] = g(v[3], v[7], v[11], v[15], m[p[6]], m[p[7]], rot, bits)

		// diagonals
		v[0], v[5], v[10], v[15] = g(v[0], v[5], v[10], v[15], m[p[8]], m[p[9]], rot, bits)
		v[1], v[6], v[11], v[12] = g(v[1], v[6], v[11], v[12], m[p[10]], m[p[11]], rot, bits)
		v[2], v[7], v[8], v[13] = g(v[2], v[7], v[8], v[13], m[p[12]], m[p[13]], rot, bits)
		v[3], v[4], v[9], v[14] = g(v[3], v[4], v[9], v[14], m[p[14]], m[p[15]], rot, bits)
	}

	for i := 0; i < 8; i++ {
		s.h[i] ^= v[i] ^ v[i+8]
	}

	clear(m[:])
	clear(v[:])
}

// The internal BLAKE2 round function. bits is the word width.
func g[W Word](a, b, c, d, m0, m1 W, rot *[4]uint, bits uint) (W, W, W, W) {
	a = a + b + m0
	d = rotr(d^a, rot[0], bits)
	c = c + d
	b = rotr(b^c, rot[1], bits)
	a = a + b + m1
	d = rotr(d^a, rot[2], bits)
	c = c + d
	b = rotr(b^c, rot[3], bits)

	return a, b, c, d
}

func rotr[W Word](x W, k, bits uint) W {
	return (x >> k) | (x << (bits - k))
}
