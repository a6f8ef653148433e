// quilt compresses raster images into quadtree .qlt containers and
// decodes them back to PNG, with optional flip/rotate/upscale applied
// on the decoded tree.
package main

import (
	"flag"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/svanichkin/quilt"
)

func main() {
	tolerance := flag.Float64("t", 0, "prune tolerance in RGBA color distance (0 = lossless)")
	scale := flag.Int("s", 1, "integer upscale factor for decoded output")
	flip := flag.Bool("flip", false, "mirror decoded output horizontally")
	rotations := flag.Int("rot", 0, "rotate decoded output 90 degrees CCW this many times")
	verbose := flag.Bool("v", false, "log tree and payload statistics")
	flag.Usage = usage
	flag.Parse()

	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	args := flag.Args()
	if len(args) < 1 || len(args) > 2 {
		usage()
		os.Exit(2)
	}

	inputPath := args[0]
	ext := strings.ToLower(filepath.Ext(inputPath))
	base := strings.TrimSuffix(inputPath, filepath.Ext(inputPath))

	// .qlt input decodes to PNG; anything else encodes to .qlt.
	if ext == ".qlt" {
		outPath := base + ".png"
		if len(args) == 2 {
			outPath = args[1]
		}
		if err := decodeFile(inputPath, outPath, *scale, *flip, *rotations); err != nil {
			log.Fatalf("decode %s: %v", inputPath, err)
		}
		log.Infof("decoded %s -> %s", inputPath, outPath)
		return
	}

	outPath := base + ".qlt"
	if len(args) == 2 {
		outPath = args[1]
	}
	if err := encodeFile(inputPath, outPath, *tolerance); err != nil {
		log.Fatalf("encode %s: %v", inputPath, err)
	}
	log.Infof("encoded %s (tolerance=%g) -> %s", inputPath, *tolerance, outPath)
}

func usage() {
	fmt.Fprint(os.Stderr, "Encode: quilt [-t tolerance] <input-image> [output.qlt]\n"+
		"Decode: quilt [-s scale] [-flip] [-rot n] <input.qlt> [output.png]\n")
	flag.PrintDefaults()
}

func encodeFile(inPath, outPath string, tolerance float64) error {
	in, err := os.Open(inPath)
	if err != nil {
		return err
	}
	defer in.Close()

	img, _, err := image.Decode(in)
	if err != nil {
		return err
	}

	tree, err := quilt.Build(quilt.FromImage(img))
	if err != nil {
		return err
	}
	built := tree.CountNodes()

	if tolerance > 0 {
		tree.Prune(tolerance)
	}
	log.Debugf("tree: %d nodes built, %d after prune, %d leaves",
		built, tree.CountNodes(), tree.CountLeaves())

	data, err := quilt.Encode(tree)
	if err != nil {
		return err
	}
	log.Debugf("container: %d bytes for %dx%d", len(data), tree.Width(), tree.Height())

	return os.WriteFile(outPath, data, 0o644)
}

func decodeFile(inPath, outPath string, scale int, flip bool, rotations int) error {
	data, err := os.ReadFile(inPath)
	if err != nil {
		return err
	}

	tree, err := quilt.Decode(data)
	if err != nil {
		return err
	}
	log.Debugf("tree: %d nodes, %d leaves, %dx%d",
		tree.CountNodes(), tree.CountLeaves(), tree.Width(), tree.Height())

	for i := 0; i < ((rotations % 4) + 4) % 4; i++ {
		tree.RotateCCW()
	}
	if flip {
		tree.FlipHorizontal()
	}

	img, err := tree.Render(scale)
	if err != nil {
		return err
	}

	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer out.Close()

	return png.Encode(out, img)
}
