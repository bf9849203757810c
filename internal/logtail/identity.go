package logtail

import (
	"bytes"
	"errors"
	"io"
	"os"
)

// Identity is an opaque handle for the file a path pointed at.
type Identity interface {
	Same(other Identity) bool
}

// Identifier derives the Identity of the file currently at path. info is a
// fresh stat of that path.
type Identifier interface {
	Identify(path string, info os.FileInfo) (Identity, error)
}

// StatIdentifier compares files by what the OS reports as their identity:
// device and inode on Unix, volume and file index on Windows.
type StatIdentifier struct{}

func (StatIdentifier) Identify(_ string, info os.FileInfo) (Identity, error) {
	return statIdentity{info: info}, nil
}

type statIdentity struct {
	info os.FileInfo
}

func (s statIdentity) Same(other Identity) bool {
	o, ok := other.(statIdentity)
	return ok && os.SameFile(s.info, o.info)
}

// DefaultFingerprintSize is how many leading bytes FingerprintIdentifier reads.
const DefaultFingerprintSize = 256

// FingerprintIdentifier compares files by their leading bytes. It suits
// filesystems that do not report stable inodes, such as some network mounts.
// Two files are the same when the shorter fingerprint is a prefix of the
// longer one, so a file that is still growing keeps its identity.
type FingerprintIdentifier struct {
	Size int
}

func (f FingerprintIdentifier) Identify(path string, _ os.FileInfo) (Identity, error) {
	size := f.Size
	if size <= 0 {
		size = DefaultFingerprintSize
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	buf := make([]byte, size)
	n, err := io.ReadFull(file, buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, err
	}
	return fingerprint(buf[:n]), nil
}

type fingerprint []byte

func (f fingerprint) Same(other Identity) bool {
	o, ok := other.(fingerprint)
	if !ok {
		return false
	}
	n := min(len(f), len(o))
	return bytes.Equal(f[:n], o[:n])
}

// sameFile reports whether two open handles refer to the same file.
func sameFile(a, b *os.File) bool {
	ai, err := a.Stat()
	if err != nil {
		return false
	}
	bi, err := b.Stat()
	if err != nil {
		return false
	}
	return os.SameFile(ai, bi)
}
