package imageio

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"micrometa/internal/filesystem"
	"micrometa/internal/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/tiff"
)

func gradient(w, h int) *image.Gray16 {
	img := image.NewGray16(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetGray16(x, y, color.Gray16{Y: uint16((x + y) * 257)})
		}
	}
	return img
}

func writeTIFF(t *testing.T, dir, name string, w, h int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, tiff.Encode(f, gradient(w, h), nil))
	return path
}

func writePNG(t *testing.T, dir, name string, w, h int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, image.NewRGBA(image.Rect(0, 0, w, h))))
	return path
}

func writeGarbage(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("not an image"), 0o644))
	return path
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Retry = filesystem.RetryConfig{MaxRetries: 0, InitialBackoff: time.Millisecond, MaxBackoff: time.Millisecond}
	return cfg
}

func TestLoadTIFF(t *testing.T) {
	path := writeTIFF(t, t.TempDir(), "s01z00ch00_Msmeg_DMN_60X.tif", 32, 16)

	img, err := NewLoader(testConfig()).Load(path)
	require.NoError(t, err)
	assert.Equal(t, 32, img.Bounds().Dx())
	assert.Equal(t, 16, img.Bounds().Dy())
}

func TestLoadPNG(t *testing.T) {
	path := writePNG(t, t.TempDir(), "a.png", 8, 8)

	img, err := NewLoader(testConfig()).Load(path)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 8, 8), img.Bounds())
}

func TestLoadConstrainsLargeImages(t *testing.T) {
	path := writeTIFF(t, t.TempDir(), "big.tif", 40, 20)
	cfg := testConfig()
	cfg.MaxDimension = 10

	img, err := NewLoader(cfg).Load(path)
	require.NoError(t, err)
	assert.Equal(t, 10, img.Bounds().Dx())
	assert.Equal(t, 5, img.Bounds().Dy())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := NewLoader(testConfig()).Load(filepath.Join(t.TempDir(), "gone.tif"))

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrResource)
	assert.ErrorIs(t, err, os.ErrNotExist)

	var re *ResourceError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "open", re.Op)
}

func TestLoadUndecodable(t *testing.T) {
	path := writeGarbage(t, t.TempDir(), "broken.tif")

	_, err := NewLoader(testConfig()).Load(path)
	var re *ResourceError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "decode", re.Op)
	assert.Equal(t, path, re.Path)
}

func TestConstrainedSize(t *testing.T) {
	tests := []struct {
		name                 string
		w, h, maxDim, maxPix int
		wantW, wantH         int
		wantShrink           bool
	}{
		{"fits", 10, 10, 100, 1000, 10, 10, false},
		{"no limits", 5000, 5000, 0, 0, 5000, 5000, false},
		{"wide over dimension", 40, 20, 10, 0, 10, 5, true},
		{"tall over dimension", 20, 40, 10, 0, 5, 10, true},
		{"over pixels", 100, 100, 0, 2500, 50, 50, true},
		{"extreme aspect keeps one pixel", 1000, 1, 10, 0, 10, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h, shrink := ConstrainedSize(tt.w, tt.h, tt.maxDim, tt.maxPix)
			assert.Equal(t, tt.wantW, w)
			assert.Equal(t, tt.wantH, h)
			assert.Equal(t, tt.wantShrink, shrink)
		})
	}
}

func TestLoadAllKeepsInputOrder(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for i := 1; i <= 12; i++ {
		paths = append(paths, writeTIFF(t, dir, fmt.Sprintf("f%02d.tif", i), i, 1))
	}
	cfg := testConfig()
	cfg.Workers = 4

	images, err := NewLoader(cfg).LoadAll(context.Background(), paths)
	require.NoError(t, err)
	require.Len(t, images, len(paths))
	for i, img := range images {
		assert.Equal(t, i+1, img.Bounds().Dx(), "image %d out of place", i)
	}
}

func TestLoadAllFailsOnFirstError(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeTIFF(t, dir, "a.tif", 2, 2),
		writeGarbage(t, dir, "b.tif"),
	}

	images, err := NewLoader(testConfig()).LoadAll(context.Background(), paths)
	assert.ErrorIs(t, err, ErrResource)
	assert.Nil(t, images)
}

func TestLoadAllSkipUnreadable(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeTIFF(t, dir, "a.tif", 2, 2),
		writeGarbage(t, dir, "b.tif"),
		writeTIFF(t, dir, "c.tif", 3, 3),
	}
	cfg := testConfig()
	cfg.SkipUnreadable = true
	cfg.Workers = 2

	images, err := NewLoader(cfg).LoadAll(context.Background(), paths)
	require.NoError(t, err)
	require.Len(t, images, 3)
	assert.NotNil(t, images[0])
	assert.Nil(t, images[1])
	assert.Equal(t, 3, images[2].Bounds().Dx())
}

func TestLoadAllCancelled(t *testing.T) {
	path := writeTIFF(t, t.TempDir(), "a.tif", 2, 2)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewLoader(testConfig()).LoadAll(ctx, []string{path})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoadAllEmpty(t *testing.T) {
	images, err := NewLoader(testConfig()).LoadAll(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, images)
}

func TestLoadAllWithIdleMonitor(t *testing.T) {
	path := writeTIFF(t, t.TempDir(), "a.tif", 2, 2)
	mon := memory.NewMonitor(memory.DefaultConfig())
	defer mon.Stop()

	images, err := NewLoader(testConfig(), WithMonitor(mon)).LoadAll(context.Background(), []string{path})
	require.NoError(t, err)
	assert.Len(t, images, 1)
}

func TestNewLoaderClampsWorkers(t *testing.T) {
	cfg := testConfig()
	cfg.Workers = 0
	assert.Equal(t, 1, NewLoader(cfg).Workers())
}

func TestDecodable(t *testing.T) {
	assert.True(t, Decodable(".tif"))
	assert.True(t, Decodable(".TIFF"))
	assert.True(t, Decodable(".png"))
	assert.False(t, Decodable(".czi"))
	assert.False(t, Decodable(""))

	f, ok := FormatForSuffix(".tif")
	assert.True(t, ok)
	assert.Equal(t, "tiff", f)
	assert.Contains(t, Suffixes(), ".webp")
}
