package metadata

/** @brief Pixel layout of uploaded texture data. */
type PixelFormat int

const (
	PixelFormatRGB PixelFormat = iota
	PixelFormatRGBA
)

func (f PixelFormat) String() string {
	if f == PixelFormatRGBA {
		return "RGBA"
	}
	return "RGB"
}

/** @brief Represents supported texture filtering modes. */
type TextureFilter int

const (
	/** @brief Nearest-neighbor filtering. */
	TextureFilterModeNearest TextureFilter = 0x0
	/** @brief Linear (i.e. bilinear) filtering.*/
	TextureFilterModeLinear TextureFilter = 0x1
)

type TextureRepeat int

const (
	TextureRepeatRepeat         TextureRepeat = 0x1
	TextureRepeatMirroredRepeat TextureRepeat = 0x2
	TextureRepeatClampToEdge    TextureRepeat = 0x3
)

/**
 * @brief Everything the backend needs to upload a 2D texture.
 */
type TextureUpload struct {
	Width  uint32
	Height uint32
	Format PixelFormat
	Pixels []uint8
	Filter TextureFilter
	Repeat TextureRepeat
}
