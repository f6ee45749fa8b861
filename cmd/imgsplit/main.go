package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/vearutop/imgsplit"
	"github.com/vearutop/imgsplit/internal/config"
	"github.com/vearutop/imgsplit/internal/logging"
)

var errUsage = errors.New("missing required arguments")

func main() {
	logging.SetDefault()

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	switch os.Args[1] {
	case "split":
		err = runSplit(ctx, os.Args[2:])
	case "detect":
		err = runDetect(os.Args[2:])
	case "layout":
		err = runLayout(os.Args[2:])
	case "preview":
		err = runPreview(os.Args[2:])
	case "join":
		err = runJoin(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		stop()
		fail(err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: imgsplit <command> [args]")
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  split   -in input.png [-out dir] [-format png|jpeg|bmp|tiff] [-q 95] [-zip sections.zip] [-manifest] [-config imgsplit.yaml]")
	fmt.Fprintln(os.Stderr, "  detect  -in input.png")
	fmt.Fprintln(os.Stderr, "  layout  -w 100 -h 90")
	fmt.Fprintln(os.Stderr, "  preview -in input.png -out sheet.png [-thumb 256] [-config imgsplit.yaml]")
	fmt.Fprintln(os.Stderr, "  join    -manifest dir/manifest.json -out joined.png")
}

// loadConfig loads settings and reconfigures logging from them.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := logging.Setup(cfg.Log.Level, cfg.Log.Format, os.Stderr); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runSplit(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("split", flag.ContinueOnError)
	cfgPath := fs.String("config", "", "YAML configuration file")
	inPath := fs.String("in", "", "input image")
	outDir := fs.String("out", "", "output directory (overrides config)")
	format := fs.String("format", "", "section format: png, jpeg, bmp, tiff (overrides config)")
	q := fs.Int("q", 0, "JPEG quality (overrides config)")
	zipOut := fs.String("zip", "", "write all sections to a zip archive instead of a directory")
	withManifest := fs.Bool("manifest", false, "also write manifest.json")
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *inPath == "" {
		return errUsage
	}

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		return err
	}
	if *outDir != "" {
		cfg.Output.Dir = *outDir
	}
	if *format != "" {
		cfg.Output.Format = *format
	}
	if *q > 0 {
		cfg.Output.Quality = *q
	}
	if *zipOut != "" {
		cfg.Output.Archive = *zipOut
	}
	if *withManifest {
		cfg.Output.Manifest = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	src, srcFormat, err := imgsplit.DecodeFile(*inPath, func(o *imgsplit.DecodeOptions) {
		o.MaxPixels = cfg.Decode.MaxPixels
	})
	if err != nil {
		return err
	}
	log.Info().
		Str("path", *inPath).
		Stringer("format", srcFormat).
		Int("width", src.Width).
		Int("height", src.Height).
		Msg("Decoded image")

	sections, err := imgsplit.Partition(src)
	if err != nil {
		return err
	}

	enc := cfg.EncodeOptions()
	exportOpt := func(o *imgsplit.ExportOptions) {
		o.EncodeOptions = enc
		o.Workers = cfg.Workers
		if cfg.Output.Manifest || cfg.Output.Archive != "" {
			o.Manifest = imgsplit.BuildManifest(src.Width, src.Height, sections, enc.Format)
		}
		o.OnFile = func(name string, size int) {
			log.Debug().Str("file", name).Int("bytes", size).Msg("Wrote")
		}
	}

	if cfg.Output.Archive != "" {
		return writeArchive(ctx, cfg.Output.Archive, sections, exportOpt)
	}

	paths, err := imgsplit.ExportDir(ctx, cfg.Output.Dir, sections, exportOpt)
	if err != nil {
		return err
	}
	for i, p := range paths {
		r := sections[i].Region
		log.Info().
			Int("section", r.Index).
			Str("path", p).
			Int("width", r.Width).
			Int("height", r.Height).
			Msg("Saved section")
	}
	return nil
}

func writeArchive(ctx context.Context, path string, sections []imgsplit.Section, opt func(o *imgsplit.ExportOptions)) error {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return err
	}
	if err := imgsplit.WriteArchive(ctx, f, sections, opt); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	log.Info().Str("path", path).Int("sections", len(sections)).Msg("Saved archive")
	return nil
}

func runDetect(args []string) error {
	fs := flag.NewFlagSet("detect", flag.ContinueOnError)
	inPath := fs.String("in", "", "input image")
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *inPath == "" {
		return errUsage
	}
	f, err := os.Open(filepath.Clean(*inPath))
	if err != nil {
		return err
	}
	defer f.Close()

	format, err := imgsplit.DetectFormat(f)
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, format.MIMEType())
	if format == imgsplit.FormatUnknown {
		return imgsplit.ErrUnsupportedFormat
	}
	return nil
}

func runLayout(args []string) error {
	fs := flag.NewFlagSet("layout", flag.ContinueOnError)
	width := fs.Int("w", 0, "image width")
	height := fs.Int("h", 0, "image height")
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	regions, err := imgsplit.Layout(*width, *height)
	if err != nil {
		return err
	}
	payload, err := json.MarshalIndent(regions, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(os.Stdout, string(payload))
	return err
}

func runPreview(args []string) error {
	fs := flag.NewFlagSet("preview", flag.ContinueOnError)
	cfgPath := fs.String("config", "", "YAML configuration file")
	inPath := fs.String("in", "", "input image")
	outPath := fs.String("out", "", "contact sheet PNG")
	thumb := fs.Uint("thumb", 0, "thumbnail size (overrides config)")
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *inPath == "" || *outPath == "" {
		return errUsage
	}

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		return err
	}
	if *thumb > 0 {
		cfg.Preview.ThumbSize = *thumb
	}

	src, _, err := imgsplit.DecodeFile(*inPath, func(o *imgsplit.DecodeOptions) {
		o.MaxPixels = cfg.Decode.MaxPixels
	})
	if err != nil {
		return err
	}
	sections, err := imgsplit.Partition(src)
	if err != nil {
		return err
	}
	sheet, err := imgsplit.ContactSheet(sections, func(o *imgsplit.PreviewOptions) {
		o.ThumbSize = cfg.Preview.ThumbSize
		o.Padding = cfg.Preview.Padding
	})
	if err != nil {
		return err
	}
	if err := writePNG(*outPath, sheet); err != nil {
		return err
	}
	log.Info().Str("path", *outPath).Msg("Saved preview")
	return nil
}

func runJoin(args []string) error {
	fs := flag.NewFlagSet("join", flag.ContinueOnError)
	manifestPath := fs.String("manifest", "", "manifest.json written by split")
	outPath := fs.String("out", "", "output PNG")
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *manifestPath == "" || *outPath == "" {
		return errUsage
	}
	img, err := imgsplit.JoinDir(*manifestPath)
	if err != nil {
		return err
	}
	if err := writePNG(*outPath, img); err != nil {
		return err
	}
	log.Info().Str("path", *outPath).Msg("Saved joined image")
	return nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func fail(err error) {
	log.Error().Err(err).Msg("Failed")
	if errors.Is(err, errUsage) {
		usage()
		os.Exit(2)
	}
	os.Exit(1)
}
