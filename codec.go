package quilt

import (
	"bytes"
	"encoding/binary"
	"image"
	"io"

	"github.com/klauspost/compress/zstd"
)

// Container layout:
//
//	magic "QLT1" + width(uint32) + height(uint32), big-endian,
//	followed by a zstd frame over the tree bitstream.
//
// Bitstream, pre-order per node:
//
//	1 bit: 1 = leaf, 0 = internal.
//	Leaf: 4*8 bits RGBA average color.
//	Internal: nothing; which children follow is re-derived from the
//	construction split rule, and the internal average is recomputed
//	from the children with the same weighted mean used by Build, so
//	the decoded tree is bit-identical to the encoded one.
const magicQLT = "QLT1"

// Encode serializes t into a compressed container. The tree must be in
// construction orientation (built and optionally pruned, not flipped
// or rotated): the decoder rebuilds geometry from the split rule, which
// transforms invalidate. Transforms are applied after Decode instead.
func Encode(t *QuadTree) ([]byte, error) {
	if t == nil || t.root == nil {
		return nil, ErrEmptyTree
	}

	b := &bytes.Buffer{}
	if _, err := b.WriteString(magicQLT); err != nil {
		return nil, err
	}
	if err := binary.Write(b, binary.BigEndian, uint32(t.width)); err != nil {
		return nil, err
	}
	if err := binary.Write(b, binary.BigEndian, uint32(t.height)); err != nil {
		return nil, err
	}

	var raw bytes.Buffer
	bw := newBitWriter(&raw)
	if err := encodeNode(t.root, bw); err != nil {
		return nil, err
	}
	if err := bw.flush(); err != nil {
		return nil, err
	}

	enc, err := zstd.NewWriter(b)
	if err != nil {
		return nil, err
	}
	if _, err := enc.Write(raw.Bytes()); err != nil {
		enc.Close()
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}

	return b.Bytes(), nil
}

func encodeNode(n *Node, bw *bitWriter) error {
	if n.IsLeaf() {
		if err := bw.writeBit(true); err != nil {
			return err
		}
		for _, v := range [4]uint8{n.Avg.R, n.Avg.G, n.Avg.B, n.Avg.A} {
			if err := bw.writeByte(v); err != nil {
				return err
			}
		}
		return nil
	}

	if err := bw.writeBit(false); err != nil {
		return err
	}
	// Child order must match the decoder's split-rule recursion.
	for _, c := range [4]*Node{n.NW, n.NE, n.SW, n.SE} {
		if c == nil {
			continue
		}
		if err := encodeNode(c, bw); err != nil {
			return err
		}
	}
	return nil
}

// Decode rebuilds a tree from data produced by Encode.
func Decode(data []byte) (*QuadTree, error) {
	r := bytes.NewReader(data)

	hdr := make([]byte, len(magicQLT))
	if _, err := io.ReadFull(r, hdr); err != nil {
		return nil, err
	}
	if string(hdr) != magicQLT {
		return nil, ErrInvalidMagic
	}

	var w32, h32 uint32
	if err := binary.Read(r, binary.BigEndian, &w32); err != nil {
		return nil, err
	}
	if err := binary.Read(r, binary.BigEndian, &h32); err != nil {
		return nil, err
	}
	w, h := int(w32), int(h32)
	if w <= 0 || h <= 0 {
		return nil, ErrInvalidHeader
	}

	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	plain, err := io.ReadAll(dec)
	if err != nil {
		return nil, err
	}

	br := newBitReader(plain)
	root, err := decodeNode(br, image.Pt(0, 0), image.Pt(w-1, h-1))
	if err != nil {
		return nil, err
	}
	return &QuadTree{root: root, width: w, height: h}, nil
}

// decodeNode mirrors encodeNode: it walks the same split rule Build
// uses, so each node's rectangle falls out of the recursion.
func decodeNode(br *bitReader, ul, lr image.Point) (*Node, error) {
	isLeaf, err := br.readBit()
	if err != nil {
		return nil, err
	}

	n := &Node{UpperLeft: ul, LowerRight: lr}
	if isLeaf {
		var px [4]uint8
		for i := range px {
			if px[i], err = br.readByte(); err != nil {
				return nil, err
			}
		}
		n.Avg = Pixel{R: px[0], G: px[1], B: px[2], A: px[3]}
		return n, nil
	}

	if ul == lr {
		// A single pixel can never be an internal node.
		return nil, ErrCorruptPayload
	}

	midX := (ul.X + lr.X) / 2
	midY := (ul.Y + lr.Y) / 2

	if n.NW, err = decodeNode(br, ul, image.Pt(midX, midY)); err != nil {
		return nil, err
	}
	if midX+1 <= lr.X {
		if n.NE, err = decodeNode(br, image.Pt(midX+1, ul.Y), image.Pt(lr.X, midY)); err != nil {
			return nil, err
		}
	}
	if midY+1 <= lr.Y {
		if n.SW, err = decodeNode(br, image.Pt(ul.X, midY+1), image.Pt(midX, lr.Y)); err != nil {
			return nil, err
		}
	}
	if midX+1 <= lr.X && midY+1 <= lr.Y {
		if n.SE, err = decodeNode(br, image.Pt(midX+1, midY+1), lr); err != nil {
			return nil, err
		}
	}
	n.Avg = combineAverage(n.NW, n.NE, n.SW, n.SE)
	return n, nil
}

// bitWriter writes bits MSB-first into a bytes.Buffer.
type bitWriter struct {
	buf  *bytes.Buffer
	acc  byte
	nbit uint8 // bits already occupied in acc (0..7)
}

func newBitWriter(buf *bytes.Buffer) *bitWriter {
	return &bitWriter{buf: buf}
}

func (bw *bitWriter) writeBit(v bool) error {
	if v {
		bw.acc |= 1 << (7 - bw.nbit)
	}
	bw.nbit++
	if bw.nbit == 8 {
		if err := bw.buf.WriteByte(bw.acc); err != nil {
			return err
		}
		bw.acc = 0
		bw.nbit = 0
	}
	return nil
}

// writeByte writes a full byte, respecting current bit alignment.
func (bw *bitWriter) writeByte(b byte) error {
	if bw.nbit == 0 {
		return bw.buf.WriteByte(b)
	}
	for i := 0; i < 8; i++ {
		if err := bw.writeBit(b&(1<<(7-i)) != 0); err != nil {
			return err
		}
	}
	return nil
}

// flush pads the tail byte with zero bits if needed.
func (bw *bitWriter) flush() error {
	if bw.nbit == 0 {
		return nil
	}
	if err := bw.buf.WriteByte(bw.acc); err != nil {
		return err
	}
	bw.acc = 0
	bw.nbit = 0
	return nil
}

// bitReader reads bits and bytes MSB-first from a byte slice.
type bitReader struct {
	data []byte
	pos  int
	acc  byte
	nbit uint8 // bits already consumed from acc (0..8)
}

func newBitReader(data []byte) *bitReader {
	return &bitReader{data: data}
}

func (br *bitReader) readBit() (bool, error) {
	if br.nbit == 0 {
		if br.pos >= len(br.data) {
			return false, io.ErrUnexpectedEOF
		}
		br.acc = br.data[br.pos]
		br.pos++
	}
	bit := br.acc&(1<<(7-br.nbit)) != 0
	br.nbit++
	if br.nbit == 8 {
		br.nbit = 0
	}
	return bit, nil
}

// readByte reads a byte, respecting current bit alignment.
func (br *bitReader) readByte() (byte, error) {
	if br.nbit == 0 {
		if br.pos >= len(br.data) {
			return 0, io.ErrUnexpectedEOF
		}
		b := br.data[br.pos]
		br.pos++
		return b, nil
	}
	var b byte
	for i := 0; i < 8; i++ {
		bit, err := br.readBit()
		if err != nil {
			return 0, err
		}
		if bit {
			b |= 1 << (7 - i)
		}
	}
	return b, nil
}
