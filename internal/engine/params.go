package engine

import (
	"encoding/binary"
)

// Params are the user-visible parameters of a BLAKE2 hash instance. The
// parameter block built from them is XOR'd with the IV at the beginning of
// the hash. Sequential hashing uses FanOut = MaxDepth = 1 and leaves the rest
// of the tree fields zero.
type Params struct {
	Size     int    // digest size in bytes
	Key      []byte // MAC key, empty for plain hashing
	Salt     []byte // empty or exactly SaltSize bytes
	Personal []byte // empty or exactly PersonalSize bytes

	FanOut     uint8
	MaxDepth   uint8
	LeafSize   uint32
	NodeOffset uint64
	NodeDepth  uint8
	InnerSize  uint8

	// LastNode sets the second finalization flag. Only meaningful in tree
	// mode.
	LastNode bool
}

// Sequential returns the parameters of a plain, unkeyed hash of the given size.
func Sequential(size int) Params {
	return Params{Size: size, FanOut: 1, MaxDepth: 1}
}

// A ParameterBlock is the packed parameter block read as eight
// little-endian words.
type ParameterBlock[W Word] [8]W

// Validate checks p against the limits of the variant.
func (v *Variant[W]) Validate(p *Params) error {
	if p.Size < 1 || p.Size > v.MaxSize {
		return v.configErrorf("digest size %d not in [1, %d]", p.Size, v.MaxSize)
	}
	if len(p.Key) > v.MaxKey {
		return v.configErrorf("key length %d exceeds %d", len(p.Key), v.MaxKey)
	}
	if len(p.Salt) != 0 && len(p.Salt) != v.SaltSize {
		return v.configErrorf("salt must be %d bytes, got %d", v.SaltSize, len(p.Salt))
	}
	if len(p.Personal) != 0 && len(p.Personal) != v.PersonalSize {
		return v.configErrorf("personalization must be %d bytes, got %d", v.PersonalSize, len(p.Personal))
	}
	if p.MaxDepth == 0 {
		return v.configErrorf("max depth must be at least 1")
	}
	if int(p.InnerSize) > v.MaxSize {
		return v.configErrorf("inner digest size %d exceeds %d", p.InnerSize, v.MaxSize)
	}
	if v.NodeOffsetSize < 8 && p.NodeOffset>>(8*uint(v.NodeOffsetSize)) != 0 {
		return v.configErrorf("node offset %d does not fit in %d bytes", p.NodeOffset, v.NodeOffsetSize)
	}
	return nil
}

// Marshal packs the parameter block into 8*WordSize bytes. The layout is
// digest length, key length, fan-out, depth, leaf length, node offset, node
// depth, inner length, reserved bytes, salt, personalization. p must be valid.
func (v *Variant[W]) Marshal(p *Params) []byte {
	buf := make([]byte, 8*v.WordSize)
	buf[0] = byte(p.Size)
	buf[1] = byte(len(p.Key))
	buf[2] = p.FanOut
	buf[3] = p.MaxDepth
	binary.LittleEndian.PutUint32(buf[4:], p.LeafSize)
	off := 8
	for i := 0; i < v.NodeOffsetSize; i++ {
		buf[off+i] = byte(p.NodeOffset >> (8 * uint(i)))
	}
	off += v.NodeOffsetSize
	buf[off] = p.NodeDepth
	buf[off+1] = p.InnerSize
	// remaining bytes up to the salt are reserved and stay zero
	copy(buf[4*v.WordSize:], p.Salt)
	copy(buf[6*v.WordSize:], p.Personal)
	return buf
}

// Build validates p and returns its parameter block.
func (v *Variant[W]) Build(p *Params) (ParameterBlock[W], error) {
	var pb ParameterBlock[W]
	if err := v.Validate(p); err != nil {
		return pb, err
	}
	raw := v.Marshal(p)
	for i := range pb {
		pb[i] = loadLE[W](raw[i*v.WordSize:], v.WordSize)
	}
	clear(raw)
	return pb, nil
}
