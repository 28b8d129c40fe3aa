// Command lison2png renders a LISON image into a PNG file.
// Other raster formats and PDF are selected by the extension of the output.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/benoitkugler/lison/lison"
	"github.com/benoitkugler/lison/lisonpath"
	"github.com/benoitkugler/lison/lisonpdf"
	"github.com/benoitkugler/lison/lisonraster"
	"github.com/benoitkugler/lison/utils"
	"github.com/disintegration/imaging"
	"golang.org/x/net/html/charset"
	"golang.org/x/term"
)

// pipeName is the file name that indicates stdin/stdout is being used.
const pipeName = "-"

type options struct {
	input, output string
	resolution    float64 // pixels per inch
	scale         float64
	charset       string
	info          bool
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("lison2png: ")

	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Println(err)
		os.Exit(2)
	}
	if err := run(opts); err != nil {
		log.Println(utils.Colorize(err.Error(), utils.Failed))
		os.Exit(1)
	}
}

func parseFlags(args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("lison2png", flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: lison2png [flags] <input.lison>\n")
		fs.PrintDefaults()
	}
	fs.StringVar(&opts.output, "o", "", "Output file (default <input>.png, - for stdout); .pdf writes a PDF file")
	fs.Float64Var(&opts.resolution, "r", 72, "Resolution, in pixels per inch")
	fs.Float64Var(&opts.scale, "s", 1, "Scale factor")
	fs.StringVar(&opts.charset, "charset", "utf-8", "Encoding of the input file")
	fs.BoolVar(&opts.info, "info", false, "Print information about the image instead of rendering it")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return options{}, errors.New("expected exactly one input file")
	}
	opts.input = fs.Arg(0)
	if !(opts.resolution > 0) || !(opts.scale > 0) {
		return options{}, fmt.Errorf("resolution and scale must be positive, got %g and %g", opts.resolution, opts.scale)
	}

	if opts.output == "" {
		if opts.input == pipeName {
			opts.output = pipeName
		} else {
			opts.output = opts.input + ".png"
		}
	}
	if !opts.info && opts.output != pipeName && !isPDF(opts.output) {
		if _, err := imaging.FormatFromFilename(opts.output); err != nil {
			return options{}, fmt.Errorf("unsupported output %s: %w", opts.output, err)
		}
	}
	return opts, nil
}

func isPDF(name string) bool { return strings.EqualFold(filepath.Ext(name), ".pdf") }

func run(opts options) error {
	img, err := readImage(opts.input, opts.charset)
	if err != nil {
		return err
	}

	if opts.info {
		return writeInfo(os.Stdout, img, opts.resolution, opts.scale)
	}

	if extent, ok := lisonpath.Extent(img); ok {
		canvas := lisonpath.Rect{Max: lison.Point{X: img.Width, Y: img.Height}}
		if !canvas.Contains(extent) {
			log.Println(utils.Colorize("warning: some shapes are outside of the canvas and will be clipped", utils.Notice))
		}
	}

	now := time.Now()
	if err := render(img, opts); err != nil {
		return err
	}
	if opts.output != pipeName {
		log.Println(utils.Colorize(fmt.Sprintf("%s written in %s", opts.output, utils.FormatTime(time.Since(now))), utils.Done))
	}
	return nil
}

func readImage(input, encoding string) (*lison.Image, error) {
	var src io.Reader
	if input == pipeName {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return nil, errors.New("`-` should be used with a pipe for stdin")
		}
		src = os.Stdin
	} else {
		f, err := os.Open(input)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		src = f
	}

	r, err := charset.NewReaderLabel(encoding, src)
	if err != nil {
		return nil, fmt.Errorf("invalid charset %q: %w", encoding, err)
	}
	img, err := lison.ParseReader(r)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", input, err)
	}
	return img, nil
}

func render(img *lison.Image, opts options) error {
	if isPDF(opts.output) {
		return lisonpdf.WriteFile(img, opts.output, opts.resolution, opts.scale)
	}

	out, err := lisonraster.RasterImage(img, opts.resolution, opts.scale)
	if err != nil {
		return err
	}

	if opts.output == pipeName {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return errors.New("`-` should be used with a pipe for stdout")
		}
		return imaging.Encode(os.Stdout, out, imaging.PNG)
	}
	return imaging.Save(out, opts.output)
}

// writeInfo prints the content and the sizes of the image
func writeInfo(w io.Writer, img *lison.Image, resolution, scale float64) error {
	st := img.Stats()
	fmt.Fprintf(w, "canvas: %g x %g units, %g units per inch\n", img.Width, img.Height, img.UnitPerInch)
	if width, height, err := lison.DeviceSize(img, resolution, scale); err == nil {
		fmt.Fprintf(w, "device size: %d x %d pixels\n", width, height)
	} else {
		fmt.Fprintf(w, "device size: %s\n", err)
	}
	fmt.Fprintf(w, "pens: %d, brushes: %d\n", st.Pens, st.Brushes)
	fmt.Fprintf(w, "groups: %d (max depth %d), curves: %d, regions: %d\n", st.Groups, st.Depth, st.Curves, st.Regions)
	fmt.Fprintf(w, "contours: %d, segments: %d\n", st.Contours, st.Segments)
	if extent, ok := lisonpath.Extent(img); ok {
		_, err := fmt.Fprintf(w, "extent: (%g, %g) - (%g, %g), %g x %g units\n",
			extent.Min.X, extent.Min.Y, extent.Max.X, extent.Max.Y, extent.Width(), extent.Height())
		return err
	}
	_, err := fmt.Fprintln(w, "extent: empty")
	return err
}
