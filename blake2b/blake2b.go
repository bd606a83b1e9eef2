// Package blake2b implements the BLAKE2b secure hashing algorithm with support
// for keying, salting, personalization and tree hashing parameters. BLAKE2b is
// optimized for 64-bit platforms and produces digests of any size between 1
// and 64 bytes.
package blake2b

import (
	"hash"

	"github.com/blake2go/blake2/internal/engine"
)

// The constant values will be different for other BLAKE2 variants. These are
// appropriate for BLAKE2b.
const (
	// The maximum length of the key, in bytes.
	KeyLength = 64
	// The maximum number of bytes to produce.
	MaxOutput = 64
	// Size of the salt, in bytes
	SaltLength = 16
	// Size of the personalization string, in bytes
	SeparatorLength = 16
	// Number of G function rounds for BLAKE2b.
	RoundCount = 12
	// Size of a block buffer in bytes
	BlockSize = 128

	// The hash sizes of the common BLAKE2b instances, in bytes.
	Size    = 64
	Size384 = 48
	Size256 = 32
)

// Errors returned by this package wrap one of these; test with errors.Is.
var (
	ErrConfiguration = engine.ErrConfiguration
	ErrUsage         = engine.ErrUsage
	ErrBounds        = engine.ErrBounds
)

var variant = &engine.Blake2b

// Tree holds the tree hashing parameters. This package only carries them into
// the parameter block; combining nodes is left to the caller.
type Tree struct {
	FanOut     uint8  // 0 means unlimited
	MaxDepth   uint8  // 1 to 255
	LeafSize   uint32 // 0 means unlimited
	NodeOffset uint64
	NodeDepth  uint8
	InnerSize  uint8 // 0 to MaxOutput
	IsLastNode bool
}

// Config is the configuration of a BLAKE2b instance. A nil Config stands for
// an unkeyed 64-byte hash.
type Config struct {
	Size     int    // digest size, 1 to MaxOutput bytes
	Key      []byte // up to KeyLength bytes; enables MAC mode
	Salt     []byte // nil or SaltLength bytes
	Personal []byte // nil or SeparatorLength bytes
	Tree     *Tree  // nil for sequential hashing
}

func (c *Config) params() engine.Params {
	if c == nil {
		return engine.Sequential(MaxOutput)
	}
	p := engine.Sequential(c.Size)
	p.Key = c.Key
	p.Salt = c.Salt
	p.Personal = c.Personal
	if t := c.Tree; t != nil {
		p.FanOut = t.FanOut
		p.MaxDepth = t.MaxDepth
		p.LeafSize = t.LeafSize
		p.NodeOffset = t.NodeOffset
		p.NodeDepth = t.NodeDepth
		p.InnerSize = t.InnerSize
		p.LastNode = t.IsLastNode
	}
	return p
}

// Digest represents the internal state of the BLAKE2b algorithm. The zero
// Digest is ready to use and computes an unkeyed 64-byte hash.
//
// Once Final returns, the Digest refuses more input until Reset is called.
// Reconfiguring means creating a new Digest.
type Digest struct {
	s engine.State[uint64]
}

var _ hash.Hash = (*Digest)(nil)

func (d *Digest) state() *engine.State[uint64] {
	d.s.Bind(variant)
	return &d.s
}

// New constructs a new instance of a BLAKE2b hash with the provided
// configuration.
func New(cfg *Config) (*Digest, error) {
	p := cfg.params()
	d := new(Digest)
	if err := d.state().Init(&p); err != nil {
		return nil, err
	}
	return d, nil
}

// NewDigest constructs a new instance of a BLAKE2b hash with the provided
// key, salt and personalization. Any of them may be nil.
func NewDigest(key, salt, personalization []byte, outputBytes int) (*Digest, error) {
	return New(&Config{
		Size:     outputBytes,
		Key:      key,
		Salt:     salt,
		Personal: personalization,
	})
}

// New512 returns a BLAKE2b-512 instance. A non-empty key turns it into a MAC.
func New512(key []byte) (*Digest, error) { return New(&Config{Size: Size, Key: key}) }

// New384 returns a BLAKE2b-384 instance. A non-empty key turns it into a MAC.
func New384(key []byte) (*Digest, error) { return New(&Config{Size: Size384, Key: key}) }

// New256 returns a BLAKE2b-256 instance. A non-empty key turns it into a MAC.
func New256(key []byte) (*Digest, error) { return New(&Config{Size: Size256, Key: key}) }

// Sum512 returns the BLAKE2b-512 checksum of the data.
func Sum512(data []byte) (sum [Size]byte) {
	checkSum(sum[:], data)
	return
}

// Sum384 returns the BLAKE2b-384 checksum of the data.
func Sum384(data []byte) (sum [Size384]byte) {
	checkSum(sum[:], data)
	return
}

// Sum256 returns the BLAKE2b-256 checksum of the data.
func Sum256(data []byte) (sum [Size256]byte) {
	checkSum(sum[:], data)
	return
}

func checkSum(sum, data []byte) {
	var d Digest
	p := engine.Sequential(len(sum))
	if err := d.state().Init(&p); err != nil {
		panic(err)
	}
	if err := d.s.Update(data); err != nil {
		panic(err)
	}
	if err := d.s.Final(sum); err != nil {
		panic(err)
	}
}

// Write adds more data to the running hash. It fails only after Final.
func (d *Digest) Write(input []byte) (n int, err error) {
	if err := d.state().Update(input); err != nil {
		return 0, err
	}
	return len(input), nil
}

// Update adds more data to the running hash.
func (d *Digest) Update(input []byte) error {
	return d.state().Update(input)
}

// UpdateRange adds input[offset:offset+length] to the running hash. An
// out-of-range slice is rejected with ErrBounds and nothing is hashed.
func (d *Digest) UpdateRange(input []byte, offset, length int) error {
	return d.state().UpdateRange(input, offset, length)
}

// Final returns the digest and finalizes the state.
func (d *Digest) Final() ([]byte, error) {
	out := make([]byte, d.Size())
	if err := d.FinalInto(out); err != nil {
		return nil, err
	}
	return out, nil
}

// FinalInto writes the digest to out, which must be exactly Size bytes, and
// finalizes the state.
func (d *Digest) FinalInto(out []byte) error {
	return d.state().Final(out)
}

// Compute hashes input and finalizes the state.
func (d *Digest) Compute(input []byte) ([]byte, error) {
	if err := d.Update(input); err != nil {
		return nil, err
	}
	return d.Final()
}

// Sum appends the current hash to b and returns the resulting slice.
// It does not change the underlying hash state. After Final there is nothing
// to append and b is returned as is, so callers holding the Digest as a
// hash.Hash should check Finalized first or call Reset.
func (d *Digest) Sum(b []byte) []byte { return d.state().Sum(b) }

// Finalized reports whether Final has been called since the Digest was
// created or last Reset.
func (d *Digest) Finalized() bool { return d.state().Finalized() }

// Reset restarts the hash with the same configuration, key included.
func (d *Digest) Reset() { d.state().Reset() }

// Clear zeroes the state and the key it holds. The Digest then behaves like a
// zero Digest.
func (d *Digest) Clear() { d.state().Clear() }

// Size returns the digest output size in bytes.
func (d *Digest) Size() int { return d.state().Size() }

// BlockSize returns the hash's underlying block size. The Write method must be
// able to accept any amount of data, but it may operate more efficiently if
// all writes are a multiple of the block size.
func (d *Digest) BlockSize() int { return BlockSize }
