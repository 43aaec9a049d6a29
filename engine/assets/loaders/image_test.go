package loaders

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"

	"github.com/spaghettifunk/anima-cube/engine/core"
	"github.com/spaghettifunk/anima-cube/engine/renderer/metadata"
)

// twoRows is 2x2: a red/green top row and a blue/white bottom row.
func twoRows(alpha uint8) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.NRGBA{R: 255, A: alpha})
	img.Set(1, 0, color.NRGBA{G: 255, A: alpha})
	img.Set(0, 1, color.NRGBA{B: 255, A: alpha})
	img.Set(1, 1, color.NRGBA{R: 255, G: 255, B: 255, A: alpha})
	return img
}

func writePNG(t *testing.T, img image.Image) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "image.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

func loadImage(t *testing.T, path string, flip bool) *metadata.ImageResourceData {
	t.Helper()
	loader := &ImageLoader{}
	res, err := loader.Load(path, metadata.ResourceTypeImage, &metadata.ImageResourceParams{FlipY: flip})
	if err != nil {
		t.Fatalf("Load(%s) error = %v", path, err)
	}
	if res.Type != metadata.ResourceTypeImage {
		t.Errorf("resource type = %s, want image", res.Type)
	}
	return res.Data.(*metadata.ImageResourceData)
}

func TestImageLoaderFlip(t *testing.T) {
	path := writePNG(t, twoRows(128))

	tests := []struct {
		name     string
		flip     bool
		firstPix [4]uint8
	}{
		{name: "top row first", flip: false, firstPix: [4]uint8{255, 0, 0, 128}},
		{name: "bottom row first", flip: true, firstPix: [4]uint8{0, 0, 255, 128}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := loadImage(t, path, tt.flip)
			if data.Width != 2 || data.Height != 2 || data.ChannelCount != 4 {
				t.Fatalf("got %dx%d with %d channels, want 2x2 with 4", data.Width, data.Height, data.ChannelCount)
			}
			if len(data.Pixels) != 16 {
				t.Fatalf("len(Pixels) = %d, want 16", len(data.Pixels))
			}
			var got [4]uint8
			copy(got[:], data.Pixels[:4])
			if got != tt.firstPix {
				t.Errorf("first pixel = %v, want %v", got, tt.firstPix)
			}
		})
	}
}

func TestChannelCount(t *testing.T) {
	tests := []struct {
		name string
		img  image.Image
		want uint8
	}{
		{name: "translucent", img: twoRows(128), want: 4},
		{name: "opaque", img: twoRows(255), want: 3},
		{name: "gray", img: image.NewGray(image.Rect(0, 0, 1, 1)), want: 1},
		{name: "gray16", img: image.NewGray16(image.Rect(0, 0, 1, 1)), want: 1},
		{name: "ycbcr", img: image.NewYCbCr(image.Rect(0, 0, 2, 2), image.YCbCrSubsampleRatio420), want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ChannelCount(tt.img); got != tt.want {
				t.Errorf("ChannelCount() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPixelsOpaqueIsPacked(t *testing.T) {
	data := Pixels(twoRows(255), true)
	want := []uint8{0, 0, 255, 255, 255, 255, 255, 0, 0, 0, 255, 0}
	if len(data.Pixels) != len(want) {
		t.Fatalf("len(Pixels) = %d, want %d", len(data.Pixels), len(want))
	}
	for i := range want {
		if data.Pixels[i] != want[i] {
			t.Fatalf("Pixels = %v, want %v", data.Pixels, want)
		}
	}
}

func TestImageLoaderBMP(t *testing.T) {
	path := filepath.Join(t.TempDir(), "image.bmp")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := bmp.Encode(f, twoRows(255)); err != nil {
		t.Fatal(err)
	}
	f.Close()

	data := loadImage(t, path, false)
	if data.Width != 2 || data.Height != 2 {
		t.Fatalf("got %dx%d, want 2x2", data.Width, data.Height)
	}
	if data.ChannelCount != 3 && data.ChannelCount != 4 {
		t.Errorf("ChannelCount = %d", data.ChannelCount)
	}
	if data.Pixels[0] != 255 || data.Pixels[1] != 0 || data.Pixels[2] != 0 {
		t.Errorf("first pixel = %v, want red", data.Pixels[:3])
	}
}

func TestImageLoaderErrors(t *testing.T) {
	dir := t.TempDir()
	corrupt := filepath.Join(dir, "corrupt.png")
	if err := os.WriteFile(corrupt, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
		want error
	}{
		{name: "missing", path: filepath.Join(dir, "missing.png"), want: core.ErrResourceNotFound},
		{name: "corrupt", path: corrupt, want: core.ErrImageDecode},
	}

	loader := &ImageLoader{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loader.Load(tt.path, metadata.ResourceTypeImage, nil)
			if !errors.Is(err, tt.want) {
				t.Errorf("Load() error = %v, want %v", err, tt.want)
			}
		})
	}
}
