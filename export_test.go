package imgsplit

import (
	"bytes"
	"context"
	"image"
	"io"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeSectionFormats(t *testing.T) {
	sections, err := Partition(gradient(t, 20, 15))
	require.NoError(t, err)
	s := sections[2]

	for _, f := range []Format{FormatPNG, FormatJPEG, FormatBMP, FormatTIFF} {
		data, err := EncodeSectionBytes(s, EncodeOptions{Format: f, Quality: 80})
		require.NoError(t, err, f.String())

		got, err := DetectFormat(bytes.NewReader(data))
		require.NoError(t, err)
		assert.Equal(t, f, got)

		cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
		require.NoError(t, err, f.String())
		assert.Equal(t, s.Width, cfg.Width)
		assert.Equal(t, s.Height, cfg.Height)
	}

	_, err = EncodeSectionBytes(s, EncodeOptions{Format: FormatWebP})
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = EncodeSectionBytes(Section{Index: 1, Width: 2, Height: 2, Pix: make([]byte, 3)}, EncodeOptions{})
	assert.ErrorIs(t, err, ErrInvalidPixelBuffer)
}

func TestEncodeSectionDefaultsToPNG(t *testing.T) {
	sections, err := Partition(gradient(t, 6, 6))
	require.NoError(t, err)

	data, err := EncodeSectionBytes(sections[0], EncodeOptions{})
	require.NoError(t, err)

	src, f, err := DecodeBytes(data)
	require.NoError(t, err)
	assert.Equal(t, FormatPNG, f)
	assert.Equal(t, sections[0].Pix, src.Pix)
}

func TestExportDir(t *testing.T) {
	src := gradient(t, 30, 20)
	sections, err := Partition(src)
	require.NoError(t, err)

	dir := filepath.Join(t.TempDir(), "out")
	var written []string

	paths, err := ExportDir(context.Background(), dir, sections, func(o *ExportOptions) {
		o.Workers = 2
		o.Manifest = BuildManifest(src.Width, src.Height, sections, FormatPNG)
		o.OnFile = func(name string, size int) {
			assert.Positive(t, size)
			written = append(written, filepath.Base(name))
		}
	})
	require.NoError(t, err)
	require.Len(t, paths, SectionCount)

	for i, p := range paths {
		assert.Equal(t, filepath.Join(dir, SectionFilename(i+1, FormatPNG)), p)

		got, _, err := DecodeFile(p)
		require.NoError(t, err)
		assert.Equal(t, sections[i].Pix, got.Pix)
	}

	assert.Equal(t, []string{
		"section_1.png", "section_2.png", "section_3.png", "section_4.png", "section_5.png", "manifest.json",
	}, written)

	_, err = os.Stat(filepath.Join(dir, "manifest.json"))
	assert.NoError(t, err)
}

func TestExportDirCanceled(t *testing.T) {
	sections, err := Partition(gradient(t, 30, 20))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	dir := filepath.Join(t.TempDir(), "out")
	_, err = ExportDir(ctx, dir, sections)
	assert.ErrorIs(t, err, context.Canceled)

	_, err = os.Stat(dir)
	assert.True(t, os.IsNotExist(err))
}

func TestExportDirUnsupportedFormat(t *testing.T) {
	sections, err := Partition(gradient(t, 4, 4))
	require.NoError(t, err)

	_, err = ExportDir(context.Background(), t.TempDir(), sections, func(o *ExportOptions) {
		o.Format = FormatGIF
	})
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestWriteArchive(t *testing.T) {
	src := gradient(t, 16, 12)
	sections, err := Partition(src)
	require.NoError(t, err)

	var buf bytes.Buffer
	err = WriteArchive(context.Background(), &buf, sections, func(o *ExportOptions) {
		o.Format = FormatBMP
		o.Manifest = BuildManifest(src.Width, src.Height, sections, FormatBMP)
	})
	require.NoError(t, err)

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)

	entries := map[string][]byte{}
	var names []string
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())

		entries[f.Name] = data
		names = append(names, f.Name)
	}
	sort.Strings(names)

	assert.Equal(t, []string{
		"manifest.json", "section_1.bmp", "section_2.bmp", "section_3.bmp", "section_4.bmp", "section_5.bmp",
	}, names)

	m, err := ReadManifest(bytes.NewReader(entries["manifest.json"]))
	require.NoError(t, err)
	assert.Equal(t, "section_3.bmp", m.Sections[2].File)

	got, f, err := DecodeBytes(entries["section_4.bmp"])
	require.NoError(t, err)
	assert.Equal(t, FormatBMP, f)
	assert.Equal(t, sections[3].Pix, got.Pix)
}
