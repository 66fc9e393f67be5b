package unpack

import (
	"bytes"
	"sort"
	"testing"

	"github.com/icza/bitio"
	"github.com/icza/huffman"
)

// packWriter emits byte-exact pack(1) streams for tests. Symbols are
// listed per level, shallowest first; EOB implicitly follows the last
// run of the deepest level. Leaf j at level L decodes from codeword
// inodes[L]+j of L+1 bits, so the codebook falls straight out of the
// same tables the decoder derives.
type packWriter struct {
	levels [][]byte
}

type codeword struct {
	value uint64
	bits  uint8
}

func (pw *packWriter) header() []byte {
	var buf bytes.Buffer
	last := len(pw.levels) - 1

	buf.WriteByte(byte(len(pw.levels)))
	for i, run := range pw.levels {
		n := len(run)
		if i == last {
			n-- // pack(1) stores the deepest count offset by two, see parseHeader
		}
		buf.WriteByte(byte(n))
	}
	for _, run := range pw.levels {
		buf.Write(run)
	}
	return buf.Bytes()
}

func (pw *packWriter) codebook() (map[byte]codeword, codeword) {
	last := len(pw.levels) - 1

	counts := make([]int, len(pw.levels))
	for i, run := range pw.levels {
		counts[i] = len(run)
	}
	counts[last]++ // EOB

	inodes := make([]int, len(pw.levels))
	for level := last - 1; level >= 0; level-- {
		inodes[level] = (inodes[level+1] + counts[level+1]) / 2
	}

	book := make(map[byte]codeword)
	for level, run := range pw.levels {
		for j, sym := range run {
			book[sym] = codeword{uint64(inodes[level] + j), uint8(level + 1)}
		}
	}
	eob := codeword{uint64(inodes[last] + counts[last] - 1), uint8(last + 1)}
	return book, eob
}

func (pw *packWriter) pack(t *testing.T, data []byte) []byte {
	t.Helper()

	book, eob := pw.codebook()

	var buf bytes.Buffer
	buf.Write(pw.header())

	w := bitio.NewWriter(&buf)
	for _, b := range data {
		c, ok := book[b]
		if !ok {
			t.Fatalf("no codeword for %#02x", b)
		}
		if err := w.WriteBits(c.value, c.bits); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.WriteBits(eob.value, eob.bits); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

const eobValue huffman.ValueType = 256

// levelsFor derives per-level symbol runs for data from its byte
// frequencies, the way a matching packer would.
func levelsFor(t *testing.T, data []byte) [][]byte {
	t.Helper()

	freq := make(map[byte]int)
	for _, b := range data {
		freq[b]++
	}

	// Keeping every real symbol strictly more frequent than EOB pins
	// EOB to the deepest level, where the format requires it.
	leaves := make([]*huffman.Node, 0, len(freq)+1)
	for b, n := range freq {
		leaves = append(leaves, &huffman.Node{Value: huffman.ValueType(b), Count: n + 1})
	}
	leaves = append(leaves, &huffman.Node{Value: eobValue, Count: 1})
	sort.Slice(leaves, func(i, j int) bool { return leaves[i].Value < leaves[j].Value })

	depths := make(map[huffman.ValueType]int)
	leafDepths(huffman.Build(leaves), 0, depths)

	max := 0
	for _, d := range depths {
		if d > max {
			max = d
		}
	}
	if max < 1 || max > htreeMaxLevel {
		t.Fatalf("tree depth %d outside pack range", max)
	}
	if depths[eobValue] != max {
		t.Fatal("EOB not on the deepest level")
	}

	levels := make([][]byte, max)
	for v, d := range depths {
		if v == eobValue {
			continue
		}
		levels[d-1] = append(levels[d-1], byte(v))
	}
	for _, run := range levels {
		sort.Slice(run, func(i, j int) bool { return run[i] < run[j] })
	}
	return levels
}

func leafDepths(n *huffman.Node, depth int, depths map[huffman.ValueType]int) {
	if n.Left == nil {
		depths[n.Value] = depth
		return
	}
	leafDepths(n.Left, depth+1, depths)
	leafDepths(n.Right, depth+1, depths)
}
