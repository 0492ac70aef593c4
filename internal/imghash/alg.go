package imghash

import (
	"fmt"
	"image"
	"iter"
	"strings"
)

// HashAlg selects the hashing algorithm. The algorithms are implemented
// based on the high-level descriptions on Dr. Neal Krawetz's blog
// (http://www.hackerfactor.com/) plus the Blockhash.io algorithm.
type HashAlg int

const (
	// Mean compares every pixel of the scaled-down grayscale image
	// against the mean pixel value. The most basic algorithm, resistant
	// only to changes in resolution, aspect ratio and overall brightness.
	Mean HashAlg = iota

	// Median compares every pixel against the median pixel value.
	// Combined with DCT preprocessing this is the basis for pHash.
	Median

	// Gradient compares horizontally adjacent pixels in row-major order.
	// The image is scaled to (width+1) x height so each row yields
	// exactly `width` comparisons.
	Gradient

	// VertGradient is Gradient operating on columns instead of rows.
	VertGradient

	// DoubleGradient scales to (width/2+1) x (height/2+1) and compares
	// both rows and columns, concatenating the two bit sequences.
	DoubleGradient

	// Blockhash is the Blockhash.io algorithm. It averages blocks of the
	// original pixel data directly and needs no grayscale or resize
	// preprocessing.
	Blockhash
)

var algNames = map[HashAlg]string{
	Mean:           "mean",
	Median:         "median",
	Gradient:       "gradient",
	VertGradient:   "vertgradient",
	DoubleGradient: "doublegradient",
	Blockhash:      "blockhash",
}

func (alg HashAlg) String() string {
	if name, ok := algNames[alg]; ok {
		return name
	}
	return fmt.Sprintf("HashAlg(%d)", int(alg))
}

// Algorithms returns all supported algorithms in declaration order.
func Algorithms() []HashAlg {
	return []HashAlg{Mean, Median, Gradient, VertGradient, DoubleGradient, Blockhash}
}

// ParseAlg resolves an algorithm name as used on the CLI and in config files.
func ParseAlg(name string) (HashAlg, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for alg, algName := range algNames {
		if normalized == algName {
			return alg, nil
		}
	}
	return 0, fmt.Errorf("unknown hash algorithm %q", name)
}

// MarshalText implements encoding.TextMarshaler so algorithms serialize by
// name in YAML and JSON.
func (alg HashAlg) MarshalText() ([]byte, error) {
	if name, ok := algNames[alg]; ok {
		return []byte(name), nil
	}
	return nil, fmt.Errorf("unknown hash algorithm %d", int(alg))
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (alg *HashAlg) UnmarshalText(text []byte) error {
	parsed, err := ParseAlg(string(text))
	if err != nil {
		return err
	}
	*alg = parsed
	return nil
}

// RoundHashSize adjusts the requested hash dimensions to values the
// algorithm can produce: DoubleGradient needs even dimensions, Blockhash
// needs multiples of 4. It never fails and never shrinks the request.
func (alg HashAlg) RoundHashSize(width, height int) (int, int) {
	switch alg {
	case DoubleGradient:
		return nextMultipleOf2(width), nextMultipleOf2(height)
	case Blockhash:
		return nextMultipleOf4(width), nextMultipleOf4(height)
	default:
		return width, height
	}
}

// BitCount returns the number of bits the algorithm produces for the given
// (already rounded) hash dimensions.
func (alg HashAlg) BitCount(width, height int) int {
	switch alg {
	case DoubleGradient:
		rw, rh := alg.resizeDimensions(width, height)
		return (rw-1)*rh + rw*(rh-1)
	default:
		return width * height
	}
}

// resizeDimensions returns the dimensions the grayscale image is scaled to
// before sampling. Gradient variants need an extra row or column so that
// every output bit has a pair to compare.
//
// Blockhash computes its own block partition straight from the pixel data,
// so asking for its resize dimensions is a programming error.
func (alg HashAlg) resizeDimensions(width, height int) (int, int) {
	switch alg {
	case Mean, Median:
		return width, height
	case Gradient:
		return width + 1, height
	case VertGradient:
		return width, height + 1
	case DoubleGradient:
		return width/2 + 1, height/2 + 1
	case Blockhash:
		panic("imghash: blockhash algorithm does not resize")
	}
	panic(fmt.Sprintf("imghash: unknown algorithm %d", int(alg)))
}

// hashImage runs the full pipeline for one image: optional Gaussian
// preprocessing, grayscale conversion, algorithm-specific resize, the
// comparison primitive and finally bit packing.
func (alg HashAlg) hashImage(ctx *Hasher, img image.Image) ImageHash {
	post := ctx.gaussPreproc(img)

	// Blockhash averages blocks of the (possibly blurred) pixel data
	// directly; grayscale conversion and resizing would be redundant.
	if alg == Blockhash {
		return blockhashImage(post, ctx.width, ctx.height, ctx.bitOrder)
	}

	gray := toGray(post)
	resizeW, resizeH := alg.resizeDimensions(ctx.width, ctx.height)
	vals := ctx.calcHashVals(gray, resizeW, resizeH)
	rowstride := resizeW

	var bools iter.Seq[bool]
	switch alg {
	case Mean:
		if vals.floats != nil {
			bools = meanHashF64(vals.floats)
		} else {
			bools = meanHashU8(vals.bytes)
		}
	case Median:
		if vals.floats != nil {
			bools = medianHashF64(vals.floats)
		} else {
			bools = medianHashU8(vals.bytes)
		}
	case Gradient:
		if vals.floats != nil {
			bools = gradientHash(vals.floats, rowstride)
		} else {
			bools = gradientHash(vals.bytes, rowstride)
		}
	case VertGradient:
		if vals.floats != nil {
			bools = vertGradientHash(vals.floats, rowstride)
		} else {
			bools = vertGradientHash(vals.bytes, rowstride)
		}
	case DoubleGradient:
		if vals.floats != nil {
			bools = doubleGradientHash(vals.floats, rowstride)
		} else {
			bools = doubleGradientHash(vals.bytes, rowstride)
		}
	default:
		panic(fmt.Sprintf("imghash: unknown algorithm %d", int(alg)))
	}

	return fromBools(bools, ctx.bitOrder)
}

func nextMultipleOf2(x int) int {
	return (x + 1) &^ 1
}

func nextMultipleOf4(x int) int {
	return (x + 3) &^ 3
}

// BitOrder controls how the boolean comparison sequence maps onto bit
// positions within the hash bytes.
type BitOrder int

const (
	// LSBFirst fills each byte starting from its least significant bit.
	// A comparison sequence of 1000_0000 becomes the hash byte 0x01.
	LSBFirst BitOrder = iota

	// MSBFirst fills each byte starting from its most significant bit,
	// turning the same sequence into 0x80. Popular among other perceptual
	// hashing libraries, useful for generating compatible hashes.
	MSBFirst
)

func (order BitOrder) String() string {
	switch order {
	case LSBFirst:
		return "lsb"
	case MSBFirst:
		return "msb"
	}
	return fmt.Sprintf("BitOrder(%d)", int(order))
}

// ParseBitOrder resolves a bit order name ("lsb" or "msb").
func ParseBitOrder(name string) (BitOrder, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "lsb", "lsbfirst":
		return LSBFirst, nil
	case "msb", "msbfirst":
		return MSBFirst, nil
	}
	return 0, fmt.Errorf("unknown bit order %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (order BitOrder) MarshalText() ([]byte, error) {
	switch order {
	case LSBFirst, MSBFirst:
		return []byte(order.String()), nil
	}
	return nil, fmt.Errorf("unknown bit order %d", int(order))
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (order *BitOrder) UnmarshalText(text []byte) error {
	parsed, err := ParseBitOrder(string(text))
	if err != nil {
		return err
	}
	*order = parsed
	return nil
}
