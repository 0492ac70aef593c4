package cmd

import (
	"encoding/json"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/kozaktomas/imagehash/internal/config"
	"github.com/kozaktomas/imagehash/internal/imghash"
	"github.com/spf13/cobra"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// HashResult is the per-file output of the hash commands.
type HashResult struct {
	File   string `json:"file"`
	Alg    string `json:"alg"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Bits   int    `json:"bits"`
	Hash   string `json:"hash"`
	Base64 string `json:"base64,omitempty"`

	// Raw hash for comparison
	Raw imghash.ImageHash `json:"-"`
}

// addHasherFlags registers the flags shared by every command that computes
// hashes.
func addHasherFlags(cmd *cobra.Command) {
	cmd.Flags().String("alg", "", "Hash algorithm: mean, median, gradient, vertgradient, doublegradient, blockhash")
	cmd.Flags().Int("size", 0, "Hash width and height (shorthand for equal --width/--height)")
	cmd.Flags().Int("width", 0, "Hash width")
	cmd.Flags().Int("height", 0, "Hash height")
	cmd.Flags().Bool("msb", false, "Pack bits most significant first")
	cmd.Flags().Float64("gaussian", 0, "Gaussian blur preprocessing sigma (0 = disabled)")
	cmd.Flags().Bool("dct", false, "Enable DCT low-pass preprocessing")
	cmd.Flags().String("preset", "", "Named preset: ahash, dhash, phash, blockhash, robust")
}

// buildHasher resolves the hasher configuration from flags, presets and
// config defaults, in that order of precedence.
func buildHasher(cmd *cobra.Command, cfg *config.Config) (*imghash.Hasher, error) {
	order, err := imghash.ParseBitOrder(cfg.Hash.BitOrder)
	if err != nil {
		return nil, fmt.Errorf("invalid IMAGEHASH_BIT_ORDER: %w", err)
	}
	if mustGetBool(cmd, "msb") {
		order = imghash.MSBFirst
	}

	hashCfg := imghash.HasherConfig{
		Width:         cfg.Hash.Size,
		Height:        cfg.Hash.Size,
		BitOrder:      order,
		GaussianSigma: mustGetFloat64(cmd, "gaussian"),
		DCT:           mustGetBool(cmd, "dct"),
	}

	if presetName := mustGetString(cmd, "preset"); presetName != "" {
		preset, err := cfg.Preset(presetName)
		if err != nil {
			return nil, err
		}
		hashCfg, err = preset.HasherConfig(order)
		if err != nil {
			return nil, fmt.Errorf("invalid preset %q: %w", presetName, err)
		}
	} else {
		alg, err := imghash.ParseAlg(cfg.Hash.Alg)
		if err != nil {
			return nil, fmt.Errorf("invalid IMAGEHASH_ALG: %w", err)
		}
		hashCfg.Alg = alg
	}

	// Explicit flags win over preset and config defaults.
	if name := mustGetString(cmd, "alg"); name != "" {
		alg, err := imghash.ParseAlg(name)
		if err != nil {
			return nil, err
		}
		hashCfg.Alg = alg
	}
	if size := mustGetInt(cmd, "size"); size > 0 {
		hashCfg.Width = size
		hashCfg.Height = size
	}
	if width := mustGetInt(cmd, "width"); width > 0 {
		hashCfg.Width = width
	}
	if height := mustGetInt(cmd, "height"); height > 0 {
		hashCfg.Height = height
	}
	if cmd.Flags().Changed("gaussian") {
		hashCfg.GaussianSigma = mustGetFloat64(cmd, "gaussian")
	}
	if cmd.Flags().Changed("dct") {
		hashCfg.DCT = mustGetBool(cmd, "dct")
	}

	return imghash.NewHasher(hashCfg)
}

// loadImage opens and decodes an image file. Supported formats: JPEG, PNG,
// GIF, BMP, TIFF, WebP.
func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return img, nil
}

// hashFile loads a file and computes its hash.
func hashFile(hasher *imghash.Hasher, path string, withBase64 bool) (HashResult, error) {
	img, err := loadImage(path)
	if err != nil {
		return HashResult{}, err
	}

	hash := hasher.Hash(img)
	width, height := hasher.HashSize()

	result := HashResult{
		File:   path,
		Alg:    hasher.Alg().String(),
		Width:  width,
		Height: height,
		Bits:   hash.Bits(),
		Hash:   hash.String(),
		Raw:    hash,
	}
	if withBase64 {
		result.Base64 = hash.Base64()
	}
	return result, nil
}

// outputJSON writes indented JSON to stdout.
func outputJSON(data any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
