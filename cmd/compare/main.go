// Command compare measures a rasterz-compressed image against its
// original file size, mirroring the source-size-vs-encoded-size report
// cmd/wav2flac prints during a FLAC encode, generalized from a
// frame-by-frame sample count to a channel-by-channel byte count.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/mewkiz/pkg/osutil"
	"github.com/mewkiz/pkg/pathutil"
	"github.com/pkg/errors"

	"github.com/mewkiz/rasterz"
	"github.com/mewkiz/rasterz/filter"
	"github.com/mewkiz/rasterz/imageio"
	"github.com/mewkiz/rasterz/pipeline"
)

func main() {
	var (
		filename      string
		compressor    string
		separate      bool
		verbose       bool
		heuristicName string
	)
	flag.StringVar(&filename, "filename", "", "path to the source image")
	flag.StringVar(&compressor, "compressor", "", "filtered_zlib | filtered_zstd | filtered_lz_arithmetic | arithmetic0..4")
	flag.BoolVar(&separate, "separate", false, "prepend the filter-type stream instead of interleaving it")
	flag.BoolVar(&verbose, "verbose", false, "print per-run diagnostics")
	flag.StringVar(&heuristicName, "heuristic", "sum", "sum | diffsum")
	flag.Parse()

	if err := compare(filename, compressor, separate, verbose, heuristicName); err != nil {
		log.Fatalf("%v", err)
	}
}

func parseHeuristic(name string) (filter.Heuristic, error) {
	switch name {
	case "sum", "":
		return filter.HeuristicSum, nil
	case "diffsum":
		return filter.HeuristicDiffSum, nil
	default:
		return 0, errors.Errorf("unsupported heuristic %q", name)
	}
}

func compare(filename, compressorName string, separate, verbose bool, heuristicName string) error {
	if filename == "" {
		return errors.Errorf("missing required -filename flag")
	}
	if !osutil.Exists(filename) {
		return errors.Errorf("file %q does not exist", filename)
	}

	backend, err := pipeline.ParseBackend(compressorName)
	if err != nil {
		return errors.WithStack(err)
	}
	heuristic, err := parseHeuristic(heuristicName)
	if err != nil {
		return errors.WithStack(err)
	}

	info, err := os.Stat(filename)
	if err != nil {
		return errors.WithStack(err)
	}

	f, err := os.Open(filename)
	if err != nil {
		return errors.WithStack(err)
	}
	defer f.Close()

	img, err := imageio.Read(f)
	if err != nil {
		return errors.WithStack(err)
	}

	opts := rasterz.Options{PrependFilterType: separate, Heuristic: heuristic, Backend: backend}
	buf, err := rasterz.EncodeImage(context.Background(), img, opts)
	if err != nil {
		return errors.WithStack(err)
	}

	originalSize := info.Size()
	compressedSize := len(buf.Bytes())
	ratio := float64(compressedSize) / float64(originalSize)

	label := pathutil.TrimExt(filename)
	fmt.Printf("%s: original %d bytes, compressed %d bytes, ratio %.4f\n", label, originalSize, compressedSize, ratio)

	if verbose {
		fmt.Printf("  compressor=%s separate=%v heuristic=%s dimensions=%dx%d channels=%d\n",
			compressorName, separate, heuristicName, img.Width, img.Height, len(img.Channels))
	}
	return nil
}
