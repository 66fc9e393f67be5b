package unpack

import (
	"bufio"
)

const (
	packHeaderLength = 1
	htreeMaxLevel    = 24
	maxSymbols       = 256
)

// descriptor holds the huffman tree the way pack(1) stores it: a flat
// symbol table plus per-level counts, no tree pointers. It is built
// once per stream and read-only during decode.
type descriptor struct {
	treeLevels int    // deepest level index, zero-based
	symbolsIn  []int  // leaf count per level, EOB-adjusted for decode
	inodesIn   []int  // internal node count per level, derived
	symbols    []byte // symbol table, level by level; no byte for EOB
	tree       []int  // offset of each level's first symbol in symbols

	headerSize int64 // bytes consumed building the descriptor
}

// parseHeader consumes exactly the header, the count table, and the
// symbol table from src, leaving it positioned at the start of the
// compressed payload.
func parseHeader(src *bufio.Reader) (*descriptor, error) {
	hdr, err := src.ReadByte()
	if err != nil {
		return nil, truncated(err, "pack header")
	}

	levels := int(hdr)
	if levels < 1 || levels > htreeMaxLevel {
		return nil, ErrInvalidTreeDepth
	}

	d := &descriptor{
		treeLevels: levels - 1,
		symbolsIn:  make([]int, levels),
		inodesIn:   make([]int, levels),
		tree:       make([]int, levels),
		headerSize: packHeaderLength,
	}

	// Per-level leaf counts. The +1 reserves the slot for EOB, which
	// is never transmitted.
	symbolSize := 1
	for i := 0; i <= d.treeLevels; i++ {
		c, err := src.ReadByte()
		if err != nil {
			return nil, truncated(err, "symbol count table")
		}
		d.symbolsIn[i] = int(c)
		symbolSize += int(c)
	}
	d.headerSize += int64(levels)
	if symbolSize > maxSymbols {
		return nil, ErrSymbolTableOverflow
	}

	// The stored last-level count is offset by two: one for the EOB
	// leaf and one so the count always fits a byte (pack(1) rejects
	// inputs with fewer than two symbols). Restore the count of
	// symbols actually present in the table here; the EOB leaf gets
	// its own adjustment once the table has been read.
	d.symbolsIn[d.treeLevels]++

	d.symbols = make([]byte, 0, symbolSize)
	for i := 0; i <= d.treeLevels; i++ {
		d.tree[i] = len(d.symbols)
		for j := 0; j < d.symbolsIn[i]; j++ {
			c, err := src.ReadByte()
			if err != nil {
				return nil, truncated(err, "symbol table")
			}
			d.symbols = append(d.symbols, c)
		}
		d.headerSize += int64(d.symbolsIn[i])
	}

	// Count the EOB leaf into the deepest level so the decode walk
	// sees all n leaves even though only n-1 symbol bytes exist. Its
	// position is the slot just past the end of the table.
	d.symbolsIn[d.treeLevels]++

	d.fillInodesIn()
	return d, nil
}

// fillInodesIn derives the internal-node count table from the leaf
// counts. Every internal node at a level has exactly two children in
// the level below, so a level's internal-node count is half the total
// node count one level down. The deepest level is all leaves.
func (d *descriptor) fillInodesIn() {
	d.inodesIn[d.treeLevels] = 0
	for level := d.treeLevels - 1; level >= 0; level-- {
		d.inodesIn[level] = (d.inodesIn[level+1] + d.symbolsIn[level+1]) / 2
	}
}
