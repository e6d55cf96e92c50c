package scanner

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
)

// 64KiB per read keeps memory bounded regardless of file size.
const hashChunkSize = 64 * 1024

// hasherFor returns the constructor for the named algorithm. md5 is the
// default fingerprint; xx64 trades collision resistance for speed, which
// is fine here since a digest match is only ever a duplicate fingerprint,
// not a security boundary.
func hasherFor(algo Algorithm) (func() hash.Hash, error) {
	switch algo {
	case "", AlgoMD5:
		return md5.New, nil
	case AlgoXX64:
		return func() hash.Hash { return xxhash.New() }, nil
	default:
		return nil, fmt.Errorf("unsupported hash algorithm: %s", algo)
	}
}

// digestFile streams the file through the hash in fixed-size chunks and
// returns the hex digest. Failures mid-read (the file vanished or lost
// read permission since traversal) surface as an AccessError.
func digestFile(path string, newHash func() hash.Hash) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", &AccessError{Path: path, Err: err}
	}
	defer f.Close()

	h := newHash()
	buf := make([]byte, hashChunkSize)
	if _, err := io.CopyBuffer(h, f, buf); err != nil {
		return "", &AccessError{Path: path, Err: err}
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
