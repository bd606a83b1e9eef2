package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/blake2go/blake2/blake2b"
	"github.com/blake2go/blake2/blake2s"
	"github.com/mr-tron/base58/base58"
	"github.com/multiformats/go-multihash"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	formatHex       = "hex"
	formatMultihash = "multihash"
)

// errFileNotFound is returned when --in does not name a readable file.
var errFileNotFound = errors.New("--in file not found")

type digest interface {
	Update([]byte) error
	Final() ([]byte, error)
}

type algorithm struct {
	name    string
	title   string
	aliases []string
	maxSize int
	chunk   int // default read size
	mhMin   uint64
	new     func(size int, key, salt, personal []byte) (digest, error)
}

var algoBlake2b = &algorithm{
	name:    "blake2b",
	title:   "BLAKE2b",
	aliases: []string{"Blake2B", "b"},
	maxSize: blake2b.MaxOutput,
	chunk:   512,
	mhMin:   multihash.BLAKE2B_MIN,
	new: func(size int, key, salt, personal []byte) (digest, error) {
		return blake2b.NewDigest(key, salt, personal, size)
	},
}

var algoBlake2s = &algorithm{
	name:    "blake2s",
	title:   "BLAKE2s",
	aliases: []string{"Blake2S", "s"},
	maxSize: blake2s.MaxOutput,
	chunk:   256,
	mhMin:   multihash.BLAKE2S_MIN,
	new: func(size int, key, salt, personal []byte) (digest, error) {
		return blake2s.NewDigest(key, salt, personal, size)
	},
}

func decodeHexFlag(v *viper.Viper, name string) ([]byte, error) {
	b, err := hex.DecodeString(v.GetString(name))
	if err != nil {
		return nil, errors.Wrapf(err, "--%s", name)
	}
	if len(b) == 0 {
		return nil, nil
	}
	return b, nil
}

// run hashes the configured file with algo and prints the digest to out.
func run(algo *algorithm, v *viper.Viper, out io.Writer) error {
	size := v.GetInt("size")
	if size == 0 {
		size = algo.maxSize
	}
	chunk := v.GetInt("chunk")
	if chunk <= 0 {
		chunk = algo.chunk
	}
	format := v.GetString("format")
	if format != formatHex && format != formatMultihash {
		return errors.Errorf("unknown --format %q", format)
	}

	var params [3][]byte
	for i, name := range []string{"key", "salt", "personal"} {
		b, err := decodeHexFlag(v, name)
		if err != nil {
			return err
		}
		params[i] = b
	}
	keyed := params[0] != nil || params[1] != nil || params[2] != nil
	if format == formatMultihash && keyed {
		return errors.New("--format multihash needs an unkeyed, unsalted hash")
	}

	d, err := algo.new(size, params[0], params[1], params[2])
	if err != nil {
		return err
	}

	in := v.GetString("in")
	f, err := openInput(in)
	if err != nil {
		return errors.Wrap(err, algo.name)
	}
	defer f.Close()

	n, err := hashStream(d, f, chunk)
	if err != nil {
		return errors.Wrapf(err, "%s: reading %s", algo.name, in)
	}
	sum, err := d.Final()
	if err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{
		"algo":  algo.name,
		"file":  in,
		"bytes": n,
		"chunk": chunk,
		"size":  size,
	}).Debug("hashed")

	if format == formatMultihash {
		mh, err := multihash.Encode(sum, algo.mhMin+uint64(size)-1)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, base58.Encode(mh))
		return err
	}
	_, err = fmt.Fprintf(out, "%x\n", sum)
	return err
}

func openInput(name string) (*os.File, error) {
	if name == "" {
		return nil, errFileNotFound
	}
	fi, err := os.Stat(name)
	if err != nil || fi.IsDir() {
		return nil, errFileNotFound
	}
	return os.Open(name)
}

// hashStream feeds r to d in reads of at most chunk bytes.
func hashStream(d digest, r io.Reader, chunk int) (int64, error) {
	buf := make([]byte, chunk)
	var total int64
	for {
		n, err := r.Read(buf)
		if n > 0 {
			if uerr := d.Update(buf[:n]); uerr != nil {
				return total, uerr
			}
			total += int64(n)
		}
		if err == io.EOF {
			return total, nil
		}
		if err != nil {
			return total, err
		}
	}
}
