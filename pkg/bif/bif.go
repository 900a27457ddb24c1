package bif

import (
	"io"
	"os"

	"github.com/matzehuels/bifconv/pkg/errors"
	"github.com/matzehuels/bifconv/pkg/network"
)

// Load reads the BIF file at path and builds its network descriptor.
//
// A missing or unreadable path fails with FILE_NOT_FOUND; malformed content
// fails with PARSE_ERROR wrapping an *Error that carries the position.
func Load(path string) (*network.Network, error) {
	src, err := readFile(path)
	if err != nil {
		return nil, err
	}
	_, n, err := load(src, path)
	return n, err
}

// LoadFile is like [Load] but also returns the syntax tree, which keeps the
// property lists and declaration positions the descriptor drops.
func LoadFile(path string) (*File, *network.Network, error) {
	src, err := readFile(path)
	if err != nil {
		return nil, nil, err
	}
	return load(src, path)
}

func readFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "cannot open %s", path)
	}
	defer f.Close()

	src, err := io.ReadAll(f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "cannot read %s", path)
	}
	return src, nil
}

// Read parses a BIF document from r and builds its network descriptor.
func Read(r io.Reader) (*network.Network, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "cannot read input")
	}
	return ReadBytes(src)
}

// ReadBytes is like [Read] for an in-memory document.
func ReadBytes(src []byte) (*network.Network, error) {
	_, n, err := load(src, "input")
	return n, err
}

func load(src []byte, name string) (*File, *network.Network, error) {
	f, err := ParseBytes(src)
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeParse, err, "%s is not a valid network definition", name)
	}
	n, err := Build(f)
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeParse, err, "%s is not a valid network definition", name)
	}
	return f, n, nil
}
