package renderer

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spaghettifunk/anima-cube/engine/core"
	"github.com/spaghettifunk/anima-cube/engine/renderer/metadata"
)

/**
 * @brief Represents a 2D texture resident on the device.
 */
type Texture struct {
	/** @brief The texture Name. */
	Name string
	/** @brief The texture Width. */
	Width uint32
	/** @brief The texture Height. */
	Height uint32
	/** @brief The number of channels in the texture. */
	ChannelCount uint8

	device Device
	handle uint32
}

// PixelFormatFor maps a channel count to an upload format. Only 3 (RGB) and
// 4 (RGBA) are supported.
func PixelFormatFor(channels uint8) (metadata.PixelFormat, error) {
	switch channels {
	case 3:
		return metadata.PixelFormatRGB, nil
	case 4:
		return metadata.PixelFormatRGBA, nil
	default:
		return 0, fmt.Errorf("%w: %d", core.ErrUnsupportedChannelCount, channels)
	}
}

// NewTexture uploads image to the device. An empty name gets a generated one.
func NewTexture(device Device, name string, image *metadata.ImageResourceData) (*Texture, error) {
	format, err := PixelFormatFor(image.ChannelCount)
	if err != nil {
		return nil, err
	}
	want := int(image.Width) * int(image.Height) * int(image.ChannelCount)
	if len(image.Pixels) != want {
		return nil, fmt.Errorf("texture %q: %d bytes of pixel data, want %d", name, len(image.Pixels), want)
	}
	if name == "" {
		name = uuid.NewString()
	}

	handle := device.CreateTexture2D(&metadata.TextureUpload{
		Width:  image.Width,
		Height: image.Height,
		Format: format,
		Pixels: image.Pixels,
		Filter: metadata.TextureFilterModeLinear,
		Repeat: metadata.TextureRepeatRepeat,
	})
	core.LogDebug("texture %q uploaded (%dx%d %s)", name, image.Width, image.Height, format)

	return &Texture{
		Name:         name,
		Width:        image.Width,
		Height:       image.Height,
		ChannelCount: image.ChannelCount,
		device:       device,
		handle:       handle,
	}, nil
}

// Bind attaches the texture to unit.
func (t *Texture) Bind(unit uint32) {
	t.device.BindTexture2D(unit, t.handle)
}

func (t *Texture) Destroy() {
	if t.handle == 0 {
		return
	}
	t.device.DeleteTexture(t.handle)
	t.handle = 0
}
