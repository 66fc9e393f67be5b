package unpack

import (
	"io"

	"github.com/pkg/errors"
)

// Every failure is fatal to the decode pass; these sentinels classify
// it for the caller. Errors returned by Decode either are one of
// these (possibly wrapped with context) or carry the underlying
// stream error, so errors.Is works against each sentinel.
var (
	// ErrInvalidTreeDepth means the header declared a tree with no
	// levels or more than the 24 pack(1) allows.
	ErrInvalidTreeDepth = errors.New("unpack: huffman tree has insane levels")

	// ErrSymbolTableOverflow means the declared per-level counts sum
	// past the 256 symbols a byte-valued tree plus EOB can hold.
	ErrSymbolTableOverflow = errors.New("unpack: bad symbol table")

	// ErrTruncatedSymbolTable means the stream ended inside the
	// header, the count table, or the symbol table.
	ErrTruncatedSymbolTable = errors.New("unpack: file appears to be truncated")

	// ErrCorrupt means the payload produced a code that does not
	// resolve inside the tree.
	ErrCorrupt = errors.New("unpack: file corrupt")

	// ErrPrematureEOF means the payload ran out before an
	// end-of-block symbol was decoded.
	ErrPrematureEOF = errors.New("unpack: premature EOF")
)

// truncated classifies a read failure inside the header: end-of-stream
// is a format error, anything else is a transport failure.
func truncated(err error, what string) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return errors.Wrap(ErrTruncatedSymbolTable, what)
	}
	return errors.Wrapf(err, "reading %s", what)
}
