package loaders

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"os"
	"path/filepath"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/spaghettifunk/anima-cube/engine/core"
	"github.com/spaghettifunk/anima-cube/engine/renderer/metadata"
)

// ImageLoader decodes an image file into tightly packed 8-bit pixels.
// params may be a *metadata.ImageResourceParams or nil.
type ImageLoader struct{}

func (il *ImageLoader) Load(path string, assetType metadata.ResourceType, params interface{}) (*metadata.Resource, error) {
	flip := false
	if p, ok := params.(*metadata.ImageResourceParams); ok && p != nil {
		flip = p.FlipY
	}

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", core.ErrResourceNotFound, path)
		}
		return nil, err
	}
	defer file.Close()

	img, format, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", core.ErrImageDecode, path, err)
	}
	core.LogDebug("decoded %s image %s", format, path)

	data := Pixels(img, flip)
	return &metadata.Resource{
		Name:     filepath.Base(path),
		FullPath: path,
		Type:     metadata.ResourceTypeImage,
		DataSize: uint64(len(data.Pixels)),
		Data:     data,
	}, nil
}

func (il *ImageLoader) Unload(resource *metadata.Resource) error {
	resource.Data = nil
	resource.DataSize = 0
	return nil
}

// ChannelCount is the number of 8-bit channels kept for img: 1 for
// grayscale, 3 for formats without alpha or fully opaque images, 4 otherwise.
func ChannelCount(img image.Image) uint8 {
	switch img.(type) {
	case *image.Gray, *image.Gray16:
		return 1
	case *image.YCbCr, *image.CMYK:
		return 3
	}
	if o, ok := img.(interface{ Opaque() bool }); ok && o.Opaque() {
		return 3
	}
	return 4
}

// Pixels converts img to row-major 8-bit pixels. With flip the bottom row
// comes first, which is the order OpenGL expects texture rows in.
func Pixels(img image.Image, flip bool) *metadata.ImageResourceData {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	channels := ChannelCount(img)

	pixels := make([]uint8, width*height*int(channels))
	i := 0
	for row := 0; row < height; row++ {
		y := bounds.Min.Y + row
		if flip {
			y = bounds.Max.Y - 1 - row
		}
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if channels == 1 {
				pixels[i] = color.GrayModel.Convert(img.At(x, y)).(color.Gray).Y
				i++
				continue
			}
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			pixels[i], pixels[i+1], pixels[i+2] = c.R, c.G, c.B
			if channels == 4 {
				pixels[i+3] = c.A
			}
			i += int(channels)
		}
	}

	return &metadata.ImageResourceData{
		ChannelCount: channels,
		Width:        uint32(width),
		Height:       uint32(height),
		Pixels:       pixels,
	}
}
