package quilt

import (
	"math"
	"testing"
)

func treesEqual(a, b *Node) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	if a == nil {
		return true
	}
	if a.UpperLeft != b.UpperLeft || a.LowerRight != b.LowerRight || a.Avg != b.Avg {
		return false
	}
	return treesEqual(a.NW, b.NW) && treesEqual(a.NE, b.NE) &&
		treesEqual(a.SW, b.SW) && treesEqual(a.SE, b.SE)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	for _, tc := range []struct {
		name      string
		w, h      int
		tolerance float64
	}{
		{name: "unpruned_square", w: 16, h: 16},
		{name: "unpruned_odd", w: 13, h: 7},
		{name: "unpruned_strip", w: 1, h: 9},
		{name: "pruned_light", w: 24, h: 18, tolerance: 32},
		{name: "pruned_heavy", w: 24, h: 18, tolerance: 128},
		{name: "single_pixel", w: 1, h: 1},
	} {
		t.Run(tc.name, func(t *testing.T) {
			tree := buildTest(t, makeTestImage(tc.w, tc.h))
			if tc.tolerance > 0 {
				tree.Prune(tc.tolerance)
			}

			data, err := Encode(tree)
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			if len(data) == 0 {
				t.Fatalf("Encode returned empty payload")
			}

			dec, err := Decode(data)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if dec.Width() != tc.w || dec.Height() != tc.h {
				t.Fatalf("decoded dimensions %dx%d, want %dx%d",
					dec.Width(), dec.Height(), tc.w, tc.h)
			}
			if !treesEqual(tree.Root(), dec.Root()) {
				t.Fatalf("decoded tree differs from the encoded one")
			}

			want, err := tree.Render(1)
			if err != nil {
				t.Fatalf("Render: %v", err)
			}
			got, err := dec.Render(1)
			if err != nil {
				t.Fatalf("Render: %v", err)
			}
			if !imagesEqual(want, got) {
				t.Fatalf("decoded tree renders differently")
			}
		})
	}
}

func TestEncodeEmptyTree(t *testing.T) {
	var cleared QuadTree
	if _, err := Encode(&cleared); err != ErrEmptyTree {
		t.Fatalf("Encode of empty tree: err = %v, want ErrEmptyTree", err)
	}
	if _, err := Encode(nil); err != ErrEmptyTree {
		t.Fatalf("Encode(nil): err = %v, want ErrEmptyTree", err)
	}
}

func TestDecodeInvalidMagic(t *testing.T) {
	tree := buildTest(t, makeTestImage(4, 4))
	data, err := Encode(tree)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	data[0] = 'X'
	if _, err := Decode(data); err != ErrInvalidMagic {
		t.Fatalf("Decode with bad magic: err = %v, want ErrInvalidMagic", err)
	}
}

func TestDecodeTruncated(t *testing.T) {
	tree := buildTest(t, makeTestImage(8, 8))
	data, err := Encode(tree)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	for _, n := range []int{0, 3, len(magicQLT) + 4, len(data) / 2} {
		if _, err := Decode(data[:n]); err == nil {
			t.Fatalf("Decode of %d-byte prefix succeeded, want error", n)
		}
	}
}

func TestDecodeZeroDimensions(t *testing.T) {
	data := append([]byte(magicQLT), 0, 0, 0, 0, 0, 0, 0, 0)
	if _, err := Decode(data); err != ErrInvalidHeader {
		t.Fatalf("Decode with zero dimensions: err = %v, want ErrInvalidHeader", err)
	}
}

// A fully collapsed container must be smaller than the same tree
// unpruned.
func TestEncodePrunedShrinks(t *testing.T) {
	full := buildTest(t, makeTestImage(32, 32))
	pruned := full.Copy()
	pruned.Prune(math.Inf(1))

	fullData, err := Encode(full)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	prunedData, err := Encode(pruned)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(prunedData) >= len(fullData) {
		t.Fatalf("pruned container %d bytes, unpruned %d", len(prunedData), len(fullData))
	}
}
