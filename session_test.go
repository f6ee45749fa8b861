package imgsplit

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionLifecycle(t *testing.T) {
	s := NewSession()

	_, err := s.Section(1)
	assert.ErrorIs(t, err, ErrNoImage)
	_, err = s.Download(&bytes.Buffer{}, 1, EncodeOptions{})
	assert.ErrorIs(t, err, ErrNoImage)

	require.NoError(t, s.Load(bytes.NewReader(encodeFixture(t, FormatPNG))))

	src, f := s.Source()
	require.NotNil(t, src)
	assert.Equal(t, FormatPNG, f)
	assert.Len(t, s.Sections(), SectionCount)

	sec, err := s.Section(3)
	require.NoError(t, err)
	assert.Equal(t, 3, sec.Index)

	for _, idx := range []int{0, 6, -1} {
		_, err = s.Section(idx)
		assert.ErrorIs(t, err, ErrSectionIndex)
	}

	var buf bytes.Buffer
	name, err := s.Download(&buf, 5, EncodeOptions{Format: FormatJPEG})
	require.NoError(t, err)
	assert.Equal(t, "section_5.jpg", name)

	got, err := DetectFormat(&buf)
	require.NoError(t, err)
	assert.Equal(t, FormatJPEG, got)

	s.Clear()
	src, _ = s.Source()
	assert.Nil(t, src)
	assert.Empty(t, s.Sections())
}

func TestSessionFailedLoadKeepsState(t *testing.T) {
	s := NewSession(func(o *DecodeOptions) { o.MaxPixels = 1000 })
	require.NoError(t, s.LoadImage(gradient(t, 10, 9).Image()))

	assert.ErrorIs(t, s.Load(strings.NewReader("garbage")), ErrUnsupportedFormat)
	assert.ErrorIs(t, s.LoadImage(gradient(t, 1, 9).Image()), ErrInvalidDimensions)

	big := encodeFixture(t, FormatPNG)
	s2 := NewSession(func(o *DecodeOptions) { o.MaxPixels = 10 })
	assert.ErrorIs(t, s2.Load(bytes.NewReader(big)), ErrImageTooLarge)

	src, f := s.Source()
	require.NotNil(t, src)
	assert.Equal(t, 10, src.Width)
	assert.Equal(t, FormatUnknown, f)
	assert.Len(t, s.Sections(), SectionCount)
}

func TestSessionConcurrentAccess(t *testing.T) {
	s := NewSession()
	img := gradient(t, 12, 9).Image()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			if i%2 == 0 {
				_ = s.LoadImage(img)
				return
			}
			_ = s.Sections()
			_, _ = s.Section(1)
		}()
	}
	wg.Wait()

	assert.Len(t, s.Sections(), SectionCount)
}

func TestSessionReturnsCopies(t *testing.T) {
	s := NewSession()
	require.NoError(t, s.LoadImage(gradient(t, 12, 9).Image()))

	first, err := s.Section(1)
	require.NoError(t, err)
	want := first.Pix[0]

	s.Sections()[0].Pix[0] = want ^ 0xFF
	first.Pix[0] = want ^ 0xFF

	again, err := s.Section(1)
	require.NoError(t, err)
	assert.Equal(t, want, again.Pix[0])

	var buf bytes.Buffer
	_, err = s.Download(&buf, 1, EncodeOptions{})
	require.NoError(t, err)

	src, _, err := DecodeBytes(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, want, src.Pix[0])
}
