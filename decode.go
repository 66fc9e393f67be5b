package unpack

import (
	"bufio"
	"io"

	"github.com/32bitkid/bitreader"
	"github.com/pkg/errors"
)

// decode consumes the compressed payload from src bit by bit and
// writes decoded symbols to dst until the end-of-block leaf is
// reached. It returns the byte counts written and read.
//
// The walk needs no tree pointers: at each level, codes below the
// internal-node count descend one level, everything else addresses a
// leaf in that level's run of the symbol table. A codeword may span
// input byte boundaries; level and code only reset when a symbol is
// emitted.
func (d *descriptor) decode(src io.Reader, dst *bufio.Writer) (written, read int64, err error) {
	br := bitreader.NewReader(src)

	level, code := 0, 0
	bits := int64(0)

	for {
		bit, err := br.Read1()
		if err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				return written, (bits + 7) / 8, ErrPrematureEOF
			}
			return written, (bits + 7) / 8, errors.Wrap(err, "reading payload")
		}
		bits++

		code <<= 1
		if bit {
			code |= 1
		}

		if code < d.inodesIn[level] {
			// Still an internal node.
			level++
			if level > d.treeLevels {
				return written, (bits + 7) / 8, ErrCorrupt
			}
			continue
		}

		index := code - d.inodesIn[level]
		if index >= d.symbolsIn[level] {
			return written, (bits + 7) / 8, ErrCorrupt
		}

		pos := d.tree[level] + index
		if pos == len(d.symbols) {
			// The slot past the last stored symbol is EOB.
			return written, (bits + 7) / 8, nil
		}

		if err := dst.WriteByte(d.symbols[pos]); err != nil {
			return written, (bits + 7) / 8, errors.Wrap(err, "writing output")
		}
		written++
		level, code = 0, 0
	}
}
