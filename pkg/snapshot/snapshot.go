package snapshot

import (
	"io"
	"os"

	farm "github.com/dgryski/go-farm"
	"github.com/pkg/errors"
	"github.com/shamaton/msgpack/v2"
)

// Snapshot is the persisted state of a finished run
type Snapshot struct {
	Lines       int     // physical lines read
	Values      []int64 // stack contents, top first
	Fingerprint uint64
}

// Hash identifies a stack by content
type Hash uint64

// Fingerprint hashes the msgpack encoding of values. Equal stacks always
// produce equal fingerprints.
func Fingerprint(values []int64) (Hash, error) {
	if values == nil {
		values = []int64{}
	}

	data, err := msgpack.Marshal(values)
	if err != nil {
		return 0, errors.Wrap(err, "encoding stack")
	}

	return Hash(farm.Hash64(data)), nil
}

// New builds a snapshot and computes its fingerprint
func New(lines int, values []int64) (*Snapshot, error) {
	h, err := Fingerprint(values)
	if err != nil {
		return nil, err
	}

	return &Snapshot{
		Lines:       lines,
		Values:      append([]int64{}, values...),
		Fingerprint: uint64(h),
	}, nil
}

func (s *Snapshot) Serialize(w io.Writer) error {
	return msgpack.MarshalWrite(w, s)
}

// Deserialize decodes a snapshot and checks its fingerprint
func Deserialize(r io.Reader) (*Snapshot, error) {
	var s Snapshot
	if err := msgpack.UnmarshalRead(r, &s); err != nil {
		return nil, errors.Wrap(err, "decoding snapshot")
	}

	if err := s.Verify(); err != nil {
		return nil, err
	}

	return &s, nil
}

// Verify recomputes the fingerprint and compares it with the stored one
func (s *Snapshot) Verify() error {
	h, err := Fingerprint(s.Values)
	if err != nil {
		return err
	}

	if uint64(h) != s.Fingerprint {
		return errors.Errorf("snapshot fingerprint mismatch: stored %016x, computed %016x", s.Fingerprint, uint64(h))
	}

	return nil
}

// WriteFile writes s to path, replacing any existing file
func WriteFile(path string, s *Snapshot) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "creating snapshot")
	}

	if err := s.Serialize(f); err != nil {
		f.Close()
		return errors.Wrapf(err, "writing snapshot %s", path)
	}

	return f.Close()
}

// ReadFile loads and verifies the snapshot stored at path
func ReadFile(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening snapshot")
	}
	defer f.Close()

	return Deserialize(f)
}
