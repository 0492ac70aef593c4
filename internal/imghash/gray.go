package imghash

import (
	"image"

	"golang.org/x/image/draw"
)

// rgbToLuma converts 8-bit RGB to ITU-R BT.601 luma using the same
// fixed-point arithmetic as the standard library's RGBToYCbCr.
func rgbToLuma(r, g, b uint8) uint8 {
	return uint8((19595*int32(r) + 38470*int32(g) + 7471*int32(b) + 1<<15) >> 16)
}

// lumaReader returns a per-pixel luma accessor for absolute image
// coordinates, with direct pixel access for the common in-memory formats so
// the generic color.Color path only runs for exotic image types.
func lumaReader(img image.Image) func(x, y int) uint8 {
	switch src := img.(type) {
	case *image.Gray:
		return func(x, y int) uint8 {
			return src.Pix[(y-src.Rect.Min.Y)*src.Stride+(x-src.Rect.Min.X)]
		}
	case *image.NRGBA:
		return func(x, y int) uint8 {
			i := (y-src.Rect.Min.Y)*src.Stride + (x-src.Rect.Min.X)*4
			return rgbToLuma(src.Pix[i], src.Pix[i+1], src.Pix[i+2])
		}
	case *image.RGBA:
		return func(x, y int) uint8 {
			i := (y-src.Rect.Min.Y)*src.Stride + (x-src.Rect.Min.X)*4
			return rgbToLuma(src.Pix[i], src.Pix[i+1], src.Pix[i+2])
		}
	case *image.YCbCr:
		// The Y plane already is BT.601 luma.
		return func(x, y int) uint8 {
			return src.Y[src.YOffset(x, y)]
		}
	default:
		return func(x, y int) uint8 {
			r, g, b, _ := img.At(x, y).RGBA()
			return rgbToLuma(uint8(r>>8), uint8(g>>8), uint8(b>>8))
		}
	}
}

// toGray converts an image to grayscale. Images that already are grayscale
// pass through without copying.
func toGray(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok {
		return g
	}

	bounds := img.Bounds()
	gray := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	luma := lumaReader(img)
	for y := 0; y < bounds.Dy(); y++ {
		row := gray.Pix[y*gray.Stride:]
		for x := 0; x < bounds.Dx(); x++ {
			row[x] = luma(bounds.Min.X+x, bounds.Min.Y+y)
		}
	}
	return gray
}

// resizeGray scales a grayscale image to the given dimensions using
// bilinear interpolation.
func resizeGray(gray *image.Gray, width, height int) *image.Gray {
	if gray.Bounds().Dx() == width && gray.Bounds().Dy() == height {
		return gray
	}
	dst := image.NewGray(image.Rect(0, 0, width, height))
	draw.BiLinear.Scale(dst, dst.Bounds(), gray, gray.Bounds(), draw.Over, nil)
	return dst
}

// grayToF64 flattens a grayscale image into a row-major float64 buffer.
func grayToF64(gray *image.Gray) []float64 {
	bounds := gray.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	out := make([]float64, width*height)
	for y := 0; y < height; y++ {
		row := gray.Pix[y*gray.Stride:]
		for x := 0; x < width; x++ {
			out[y*width+x] = float64(row[x])
		}
	}
	return out
}
