package imgsplit

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/zip"
	"golang.org/x/sync/errgroup"
)

// ExportOptions controls writing sections to a directory or an archive.
type ExportOptions struct {
	EncodeOptions
	// Workers limits concurrent encoders, defaults to 4.
	Workers int
	// Manifest is written as manifest.json when not nil.
	Manifest *Manifest
	// OnFile is called for every written file or archive entry.
	OnFile func(name string, size int)
}

func exportOptions(opts []func(o *ExportOptions)) ExportOptions {
	opt := ExportOptions{Workers: defaultWorkers}
	for _, applyOpt := range opts {
		applyOpt(&opt)
	}
	if opt.Workers <= 0 {
		opt.Workers = defaultWorkers
	}
	opt.EncodeOptions = opt.EncodeOptions.withDefaults()
	return opt
}

// encodeAll encodes sections concurrently, results keep the order of sections.
func encodeAll(ctx context.Context, sections []Section, opt ExportOptions) ([][]byte, error) {
	if !opt.Format.CanEncode() {
		return nil, fmt.Errorf("%w: cannot encode %s", ErrUnsupportedFormat, opt.Format)
	}

	out := make([][]byte, len(sections))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opt.Workers)

	for i, s := range sections {
		i, s := i, s
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := EncodeSectionBytes(s, opt.EncodeOptions)
			if err != nil {
				return fmt.Errorf("encode section %d: %w", s.Index, err)
			}
			out[i] = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// ExportDir writes every section to dir as section_<index>.<ext> and returns the paths in order.
func ExportDir(ctx context.Context, dir string, sections []Section, opts ...func(o *ExportOptions)) ([]string, error) {
	opt := exportOptions(opts)

	encoded, err := encodeAll(ctx, sections, opt)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Clean(dir), 0o755); err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(sections))
	for i, s := range sections {
		p := filepath.Join(dir, s.Filename(opt.Format))
		if err := os.WriteFile(p, encoded[i], 0o644); err != nil {
			return nil, fmt.Errorf("write section %d: %w", s.Index, err)
		}
		if opt.OnFile != nil {
			opt.OnFile(p, len(encoded[i]))
		}
		paths = append(paths, p)
	}

	if opt.Manifest != nil {
		p := filepath.Join(dir, manifestFilename)
		f, err := os.Create(p)
		if err != nil {
			return nil, err
		}
		n, err := opt.Manifest.WriteTo(f)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return nil, fmt.Errorf("write manifest: %w", err)
		}
		if opt.OnFile != nil {
			opt.OnFile(p, int(n))
		}
	}
	return paths, nil
}

// WriteArchive writes all sections into a zip archive, plus manifest.json when configured.
func WriteArchive(ctx context.Context, w io.Writer, sections []Section, opts ...func(o *ExportOptions)) error {
	opt := exportOptions(opts)

	encoded, err := encodeAll(ctx, sections, opt)
	if err != nil {
		return err
	}

	// PNG and JPEG payloads are already compressed.
	method := zip.Deflate
	if opt.Format == FormatPNG || opt.Format == FormatJPEG {
		method = zip.Store
	}

	now := time.Now()
	zw := zip.NewWriter(w)
	for i, s := range sections {
		name := s.Filename(opt.Format)
		fw, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: method, Modified: now})
		if err != nil {
			return err
		}
		if _, err := fw.Write(encoded[i]); err != nil {
			return fmt.Errorf("archive section %d: %w", s.Index, err)
		}
		if opt.OnFile != nil {
			opt.OnFile(name, len(encoded[i]))
		}
	}

	if opt.Manifest != nil {
		fw, err := zw.CreateHeader(&zip.FileHeader{Name: manifestFilename, Method: zip.Deflate, Modified: now})
		if err != nil {
			return err
		}
		n, err := opt.Manifest.WriteTo(fw)
		if err != nil {
			return fmt.Errorf("archive manifest: %w", err)
		}
		if opt.OnFile != nil {
			opt.OnFile(manifestFilename, int(n))
		}
	}
	return zw.Close()
}
