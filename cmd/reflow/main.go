// Command reflow converts a PDF for a target e-reader display: pages are
// rasterized, scaled to the device geometry and reassembled as an
// image-per-page PDF, optionally with an OCR text layer.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/ereaderlab/reflow/engine"
	"github.com/ereaderlab/reflow/engine/pdfium"
	"github.com/ereaderlab/reflow/observability"
	"github.com/ereaderlab/reflow/observability/zerologx"
	"github.com/ereaderlab/reflow/profile"
	"github.com/ereaderlab/reflow/session"
)

type options struct {
	inputPath  string
	outputPath string
	device     string
	width      int
	height     int
	quality    int
	pages      string
	ocr        bool
	verbose    bool
	version    bool
	count      bool
}

func main() {
	opts, err := parseFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "reflow: %v\n", err)
		os.Exit(2)
	}
	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "reflow: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags() (options, error) {
	var opts options
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: reflow [flags] <input.pdf>\n")
		flag.PrintDefaults()
		fmt.Fprintf(flag.CommandLine.Output(), "Devices: %v\n", profile.Names())
	}
	flag.StringVar(&opts.outputPath, "o", "", "Output path (default <input>_reflow.pdf)")
	flag.StringVar(&opts.device, "device", "kindle", "Target device profile")
	flag.IntVar(&opts.width, "width", 0, "Override output width in pixels")
	flag.IntVar(&opts.height, "height", 0, "Override output height in pixels")
	flag.IntVar(&opts.quality, "quality", 2, "Quality tier 1-3")
	flag.StringVar(&opts.pages, "pages", "", "Page range, e.g. 1-10,15-20 (default all)")
	flag.BoolVar(&opts.ocr, "ocr", false, "Add a recognized-text layer (requires OCR build)")
	flag.BoolVar(&opts.verbose, "v", false, "Verbose logging")
	flag.BoolVar(&opts.version, "version", false, "Print the engine version and exit")
	flag.BoolVar(&opts.count, "count", false, "Print the input page count and exit")
	flag.Parse()

	if opts.version {
		return opts, nil
	}
	if flag.NArg() != 1 {
		return options{}, fmt.Errorf("expected exactly one input file")
	}
	opts.inputPath = flag.Arg(0)
	return opts, nil
}

func run(opts options) error {
	level := zerolog.WarnLevel
	if opts.verbose {
		level = zerolog.DebugLevel
	}
	log := zerologx.NewConsole(os.Stderr, level)

	s := session.New(func() (engine.Converter, error) {
		return pdfium.New(pdfium.Config{Logger: log})
	}, session.WithLogger(log))
	if err := s.Init(); err != nil {
		return err
	}
	defer func() {
		if err := s.Close(); err != nil {
			log.Warn("close session", observability.Error("err", err))
		}
	}()

	if opts.version {
		fmt.Println(s.Version())
		return nil
	}

	ctx := context.Background()
	if opts.count {
		n, err := s.PageCount(ctx, opts.inputPath)
		if err != nil {
			return err
		}
		fmt.Println(n)
		return nil
	}

	if err := s.SetDeviceProfile(opts.device); err != nil {
		return err
	}
	if opts.width > 0 {
		if err := s.SetOutputWidth(opts.width); err != nil {
			return err
		}
	}
	if opts.height > 0 {
		if err := s.SetOutputHeight(opts.height); err != nil {
			return err
		}
	}
	if err := s.SetQuality(opts.quality); err != nil {
		return err
	}
	if opts.pages != "" {
		if err := s.SetPageRange(opts.pages); err != nil {
			return err
		}
	}
	if opts.ocr {
		if err := s.SetOCREnabled(true); err != nil {
			return err
		}
	}

	outputPath := opts.outputPath
	if outputPath == "" {
		outputPath = "%s_reflow.pdf"
	}
	return s.ProcessFile(ctx, opts.inputPath, outputPath)
}
