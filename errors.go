// Package quilt implements a quadtree image compressor. A tree is
// built with one leaf per source pixel and an area-weighted average
// color per internal node, then near-uniform subtrees are collapsed
// within a caller-supplied color tolerance. Trees support lossless
// horizontal flips and 90-degree CCW rotations, render back into a
// pixel buffer at any integer upscale, and serialize into a compact
// zstd-compressed container.
package quilt

import "errors"

var (
	// ErrEmptyImage indicates that a source image has zero area.
	ErrEmptyImage = errors.New("quilt: empty source image")

	// ErrInvalidScale indicates a Render scale below 1.
	ErrInvalidScale = errors.New("quilt: render scale must be positive")

	// ErrEmptyTree indicates an Encode call on a cleared or unbuilt tree.
	ErrEmptyTree = errors.New("quilt: empty tree")

	// ErrInvalidMagic indicates that container data does not start with
	// the QLT1 magic.
	ErrInvalidMagic = errors.New("quilt: invalid magic")

	// ErrInvalidHeader indicates a container header with zero dimensions.
	ErrInvalidHeader = errors.New("quilt: invalid container header")

	// ErrCorruptPayload indicates a tree bitstream that does not match
	// the container dimensions.
	ErrCorruptPayload = errors.New("quilt: corrupt tree payload")
)
