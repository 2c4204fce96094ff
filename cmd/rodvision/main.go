// Package main is a command that inspects backlit connecting-rod frames and
// reports per-rod type and geometry, optionally writing annotated copies.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"os"
	"path/filepath"

	// frame decoders
	_ "image/jpeg"
	_ "image/png"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/edaniels/golog"
	"github.com/fogleman/gg"
	_ "github.com/lmittmann/ppm" // register ppm
	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
	_ "github.com/xfmoulet/qoi" // register qoi
	"go.viam.com/utils"
	_ "golang.org/x/image/bmp"

	"go.rodworks.dev/rodvision/inspect"
	"go.rodworks.dev/rodvision/raster"
	"go.rodworks.dev/rodvision/render"
)

var logger = golog.NewDevelopmentLogger("rodvision")

func main() {
	utils.ContextualMain(mainWithArgs, logger)
}

func mainWithArgs(ctx context.Context, args []string, logger golog.Logger) error {
	flags := flag.NewFlagSet(args[0], flag.ContinueOnError)
	var (
		configPath = flags.String("config", "", "JSON file overriding the default inspection parameters")
		outDir     = flags.String("out", "", "directory for annotated copies of the frames")
		sortPos    = flags.Bool("sort", false, "report rods top to bottom instead of discovery order")
		showHist   = flags.Bool("histogram", false, "print each frame's intensity distribution")
	)
	if err := flags.Parse(args[1:]); err != nil {
		return err
	}
	if flags.NArg() == 0 {
		return errors.New("usage: rodvision [flags] <frame.bmp ...>")
	}

	cfg := inspect.DefaultConfig()
	if *configPath != "" {
		loaded, err := inspect.LoadConfiguration(*configPath)
		if err != nil {
			return err
		}
		cfg = *loaded
	}
	if *sortPos {
		cfg.SortByPosition = true
	}

	ins, err := inspect.NewInspector(cfg, logger)
	if err != nil {
		return err
	}

	var failed int
	var lengths, widths []float64
	for _, path := range flags.Args() {
		if err := ctx.Err(); err != nil {
			return err
		}
		res, err := inspectFrame(ins, path, *outDir, *showHist)
		if err != nil {
			logger.Errorw("frame failed", "frame", path, "error", err)
			failed++
			continue
		}
		for i := range res.Rods {
			lengths = append(lengths, res.Rods[i].Length)
			widths = append(widths, res.Rods[i].Width)
		}
	}

	if len(lengths) > 0 {
		meanL, err1 := stats.Mean(lengths)
		sdL, err2 := stats.StandardDeviation(lengths)
		meanW, err3 := stats.Mean(widths)
		sdW, err4 := stats.StandardDeviation(widths)
		if err1 == nil && err2 == nil && err3 == nil && err4 == nil {
			logger.Infow("measurement summary",
				"rods", len(lengths),
				"mean_length", meanL,
				"sd_length", sdL,
				"mean_width", meanW,
				"sd_width", sdW,
			)
		}
	}

	if failed > 0 {
		return errors.Errorf("%d frame(s) failed", failed)
	}
	return nil
}

func inspectFrame(ins *inspect.Inspector, path, outDir string, showHist bool) (*inspect.Result, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	defer utils.UncheckedErrorFunc(f.Close)
	decoded, _, err := image.Decode(f)
	if err != nil {
		return nil, errors.Wrap(err, "decoding frame")
	}

	gray := raster.FromImage(decoded)
	if showHist {
		samples := make([]float64, len(gray.Pix))
		for i, v := range gray.Pix {
			samples[i] = float64(v)
		}
		fmt.Printf("%s intensity distribution:\n", path)
		if err := histogram.Fprint(os.Stdout, histogram.Hist(32, samples), histogram.Linear(40)); err != nil {
			return nil, err
		}
	}

	res, err := ins.Inspect(gray)
	if err != nil {
		return nil, err
	}

	fmt.Printf("%s: threshold %d, %d rod(s)\n", path, res.Threshold, len(res.Rods))
	for i := range res.Rods {
		fmt.Printf("  %s\n", res.Rods[i].String())
	}
	if d := &res.Diagnostics; !d.Empty() {
		fmt.Printf("  flagged: %d discarded, %d unknown, %d ambiguous, %d degenerate\n",
			len(d.Discarded), len(d.Unknown), len(d.Ambiguous), len(d.Degenerate))
	}

	if outDir == "" {
		return res, nil
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, err
	}
	base := filepath.Base(path)
	out := filepath.Join(outDir, base[:len(base)-len(filepath.Ext(base))]+"_annotated.png")
	if err := gg.SavePNG(out, render.Overlay(gray, res)); err != nil {
		return nil, err
	}
	return res, nil
}
