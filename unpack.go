// Package unpack decodes files produced by the classic pack(1) Unix
// compressor.
//
// pack(1) is a static Huffman compressor over byte-valued symbols plus
// one synthetic end-of-block (EOB) symbol. Its tree is canonical and
// level-ordered, so the file stores no tree pointers at all: a one-byte
// level count, one leaf count per level, and the symbol table in level
// order are enough to rebuild the whole tree. The EOB symbol is never
// transmitted; it is implied as the slot after the last symbol of the
// deepest level.
//
// The layout of a packed file is:
//
//	[1 byte]  tree level count, in [1,24]
//	[L bytes] leaf symbol count for each level
//	[n bytes] symbol table, level by level (no byte for EOB)
//	[...]     Huffman-coded payload, MSB-first
//
// Counting EOB, the tree holds at most 256 symbols. pack(1) rejects
// empty and single-symbol inputs, so the deepest level always holds at
// least two leaves; its stored count is offset by two to fit a byte.
package unpack

import (
	"bufio"
	"io"

	"github.com/pkg/errors"
)

// Result reports the outcome of a decode pass.
type Result struct {
	BytesRead    int64 // compressed bytes consumed, header included
	BytesWritten int64 // decompressed bytes produced
}

// Decode reads one pack(1) stream from r and writes the decompressed
// bytes to w, stopping at the end-of-block symbol. The returned
// Result carries the byte counts for both sides of the pass; the
// format stores no uncompressed size, so BytesWritten is the
// authoritative one. The caller owns both streams.
func Decode(r io.Reader, w io.Writer) (Result, error) {
	src := bufio.NewReader(r)

	d, err := parseHeader(src)
	if err != nil {
		return Result{}, err
	}

	dst := bufio.NewWriter(w)
	written, payload, derr := d.decode(src, dst)

	res := Result{
		BytesRead:    d.headerSize + payload,
		BytesWritten: written,
	}

	// Flush whatever was produced, even on a failed pass.
	if ferr := dst.Flush(); derr == nil && ferr != nil {
		return res, errors.Wrap(ferr, "flushing output")
	}
	return res, derr
}
