package main

import (
	"bytes"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/blake2go/blake2/blake2b"
	"github.com/blake2go/blake2/blake2s"
	"github.com/mr-tron/base58/base58"
	"github.com/multiformats/go-multihash"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, data []byte) string {
	path := filepath.Join(t.TempDir(), "Hallo.txt")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	var out bytes.Buffer
	root := newRootCommand(&out)
	if args == nil {
		// a nil slice makes cobra fall back to os.Args
		args = []string{}
	}
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func testData() []byte {
	return bytes.Repeat([]byte("The quick brown fox jumps over the lazy dog. "), 50)
}

func TestDefaultIsBlake2b(t *testing.T) {
	data := testData()
	path := writeFile(t, data)
	want := blake2b.Sum512(data)

	out, err := execute(t, "--in", path)
	require.NoError(t, err)
	assert.Equal(t, hex.EncodeToString(want[:])+"\n", out)

	out, err = execute(t, "--in="+path, "--chunk", "7", "Blake2B")
	require.NoError(t, err)
	assert.Equal(t, hex.EncodeToString(want[:])+"\n", out)
}

func TestBlake2s(t *testing.T) {
	data := testData()
	path := writeFile(t, data)
	want := blake2s.Sum256(data)

	out, err := execute(t, "-i", path, "blake2s")
	require.NoError(t, err)
	assert.Equal(t, hex.EncodeToString(want[:])+"\n", out)
}

func TestKeyedAndSized(t *testing.T) {
	data := testData()
	path := writeFile(t, data)

	d, err := blake2s.NewDigest([]byte("key"), []byte("saltsalt"), nil, 16)
	require.NoError(t, err)
	want, err := d.Compute(data)
	require.NoError(t, err)

	out, err := execute(t, "--in", path, "--size", "16",
		"--key", hex.EncodeToString([]byte("key")),
		"--salt", hex.EncodeToString([]byte("saltsalt")), "blake2s")
	require.NoError(t, err)
	assert.Equal(t, hex.EncodeToString(want)+"\n", out)
}

func TestEmptyFile(t *testing.T) {
	path := writeFile(t, nil)
	out, err := execute(t, "--in", path, "blake2s")
	require.NoError(t, err)
	assert.Equal(t, "69217a3079908094e11121d042354a7c1f55b6482ca1a51e1b250dfd1ed0eef9\n", out)
}

func TestEnvironment(t *testing.T) {
	data := testData()
	path := writeFile(t, data)
	want := blake2b.Sum256(data)

	t.Setenv("B2SUM_IN", path)
	t.Setenv("B2SUM_SIZE", "32")
	out, err := execute(t)
	require.NoError(t, err)
	assert.Equal(t, hex.EncodeToString(want[:])+"\n", out)
}

func TestMultihash(t *testing.T) {
	data := testData()
	path := writeFile(t, data)
	want := blake2b.Sum256(data)

	out, err := execute(t, "--in", path, "--size", "32", "--format", "multihash")
	require.NoError(t, err)
	raw, err := base58.Decode(strings.TrimSpace(out))
	require.NoError(t, err)
	dmh, err := multihash.Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, uint64(multihash.BLAKE2B_MIN+31), dmh.Code)
	assert.Equal(t, want[:], dmh.Digest)

	_, err = execute(t, "--in", path, "--format", "multihash", "--key", "00")
	assert.Error(t, err)
}

func TestErrors(t *testing.T) {
	_, err := execute(t, "--in", filepath.Join(t.TempDir(), "missing.txt"))
	assert.True(t, errors.Is(err, errFileNotFound), "%v", err)
	assert.EqualError(t, err, "blake2b: --in file not found")

	_, err = execute(t, "blake2s")
	assert.True(t, errors.Is(err, errFileNotFound), "%v", err)

	path := writeFile(t, []byte("abc"))
	_, err = execute(t, "--in", path, "--size", "33", "blake2s")
	assert.True(t, errors.Is(err, blake2s.ErrConfiguration), "%v", err)

	_, err = execute(t, "--in", path, "--salt", "zz")
	assert.Error(t, err)

	_, err = execute(t, "--in", path, "--format", "base64")
	assert.Error(t, err)
}

func TestUnknownCommandPrintsUsage(t *testing.T) {
	path := writeFile(t, []byte("abc"))
	out, err := execute(t, "--in", path, "sha256")
	assert.True(t, errors.Is(err, errUnknownCommand), "%v", err)
	assert.EqualError(t, err, `"sha256": unknown command`)
	assert.Contains(t, out, "Usage:")
	assert.Contains(t, out, "blake2s")
	assert.Contains(t, out, "--in")
}
