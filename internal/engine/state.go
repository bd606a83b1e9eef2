package engine

type status uint8

const (
	unconfigured status = iota
	ready
	finalized
)

// State is the running state of one BLAKE2 computation.
//
// A State moves from unconfigured to ready on Init (or implicitly on the
// first Update or Final), and from ready to finalized on Final. A finalized
// State rejects Update and Final until Reset or Init is called. The zero
// State is unconfigured and unbound; Bind must be called before use.
//
// A State must not be used from more than one goroutine at a time.
type State[W Word] struct {
	v *Variant[W]

	h [8]W // chain value
	t [2]W // byte counter, low word first
	f [2]W // finalization flags

	buf    [maxBlockSize]byte
	filled int // valid bytes in buf

	status status

	// Retained so Reset can restart the same computation.
	pb       ParameterBlock[W]
	key      [maxBlockSize]byte // zero padded to one block
	keyLen   int
	size     int
	lastNode bool
}

// Bind attaches the variant constants to a zero State. It is a no-op on a
// State that is already bound.
func (s *State[W]) Bind(v *Variant[W]) {
	if s.v == nil {
		s.v = v
	}
}

// Init validates p and restarts the computation with it. On error the State
// is left untouched.
func (s *State[W]) Init(p *Params) error {
	pb, err := s.v.Build(p)
	if err != nil {
		return err
	}
	s.Clear()
	s.pb = pb
	s.keyLen = copy(s.key[:], p.Key)
	s.size = p.Size
	s.lastNode = p.LastNode
	s.Reset()
	return nil
}

// Reset restarts the computation with the parameters of the last Init. An
// unconfigured State is initialized with the default parameters.
func (s *State[W]) Reset() {
	if s.status == unconfigured && s.size == 0 {
		p := Sequential(s.v.MaxSize)
		// the default parameters are always valid
		_ = s.Init(&p)
		return
	}

	for i := range s.h {
		s.h[i] = s.v.IV[i] ^ s.pb[i]
	}
	s.t = [2]W{}
	s.f = [2]W{}
	clear(s.buf[:])
	s.filled = 0
	s.status = ready

	if s.keyLen > 0 {
		// The key, padded to a full block, is the first block of input.
		s.write(s.key[:s.v.BlockSize])
	}
}

// Clear zeroes the whole State, key material included, and returns it to
// the unconfigured status.
func (s *State[W]) Clear() {
	v := s.v
	*s = State[W]{v: v}
}

// Size returns the number of bytes Final produces.
func (s *State[W]) Size() int {
	if s.status == unconfigured {
		return s.v.MaxSize
	}
	return s.size
}

// Finalized reports whether Final has been called since the last Init or
// Reset.
func (s *State[W]) Finalized() bool { return s.status == finalized }

func (s *State[W]) ensureReady() {
	if s.status == unconfigured {
		s.Reset()
	}
}

// Update adds p to the running hash.
func (s *State[W]) Update(p []byte) error {
	if s.status == finalized {
		return s.v.usageErrorf("update after final")
	}
	s.ensureReady()
	s.write(p)
	return nil
}

// UpdateRange adds p[offset:offset+length] to the running hash. Nothing is
// written unless the whole range lies within p.
func (s *State[W]) UpdateRange(p []byte, offset, length int) error {
	if offset < 0 || length < 0 || offset > len(p) || length > len(p)-offset {
		return s.v.boundsErrorf("range [%d:+%d] outside buffer of length %d", offset, length, len(p))
	}
	return s.Update(p[offset : offset+length])
}

// write buffers p, compressing every block that is known not to be the last
// one. A full buffer is only compressed once more input arrives, so the final
// block always reaches finalize with its flag set.
func (s *State[W]) write(p []byte) {
	bs := s.v.BlockSize
	for len(p) > 0 {
		if s.filled == bs {
			s.increment(W(bs))
			s.compress(s.buf[:bs])
			s.filled = 0
		}
		if s.filled == 0 {
			// Compress whole blocks straight from the input, keeping
			// at least one byte back.
			for len(p) > bs {
				s.increment(W(bs))
				s.compress(p[:bs])
				p = p[bs:]
			}
		}
		n := copy(s.buf[s.filled:bs], p)
		s.filled += n
		p = p[n:]
	}
}

// increment adds n to the byte counter, carrying into the high word.
func (s *State[W]) increment(n W) {
	s.t[0] += n
	if s.t[0] < n {
		s.t[1]++
	}
}

// Final writes the digest to out, which must be exactly Size bytes long, and
// moves the State to finalized.
func (s *State[W]) Final(out []byte) error {
	if s.status == finalized {
		return s.v.usageErrorf("final called twice")
	}
	if size := s.Size(); len(out) != size {
		return s.v.usageErrorf("output buffer is %d bytes, digest is %d", len(out), size)
	}
	s.ensureReady()
	s.finalize(out)

	// Keep the parameter block and key for Reset, drop everything else.
	s.h = [8]W{}
	s.t = [2]W{}
	s.f = [2]W{}
	clear(s.buf[:])
	s.filled = 0
	s.status = finalized
	return nil
}

// Sum appends the digest of the data written so far to b without changing
// the State. A finalized State has no digest left to give and b is returned
// unchanged.
func (s *State[W]) Sum(b []byte) (out []byte) {
	if s.status == finalized {
		return b
	}
	dCopy := *s
	dCopy.ensureReady()

	// if there's space, reuse the b slice
	if n := len(b) + dCopy.size; cap(b) >= n {
		out = b[:n]
	} else {
		out = make([]byte, n)
		copy(out, b)
	}
	dCopy.finalize(out[len(b):])
	dCopy.Clear()
	return out
}

// finalize compresses the last block and serializes the chain value.
func (s *State[W]) finalize(out []byte) {
	bs := s.v.BlockSize
	ws := s.v.WordSize

	s.increment(W(s.filled))
	s.f[0] = ^W(0)
	if s.lastNode {
		s.f[1] = ^W(0)
	}
	clear(s.buf[s.filled:bs])
	s.compress(s.buf[:bs])

	var full [8 * 8]byte
	for i, w := range s.h {
		storeLE(full[i*ws:], w, ws)
	}
	copy(out, full[:s.size])
	clear(full[:])
}
