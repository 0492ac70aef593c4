package cmd

import (
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/kozaktomas/imagehash/internal/config"
)

func newHasherTestCmd(t *testing.T) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	addHasherFlags(cmd)
	return cmd
}

// rampImage is 9x8 so the default 8x8 gradient hash samples it without
// resizing. Every row rises for four steps and falls for four, giving the
// comparison sequence TTTTFFFF per row: 0x0f LSB-first, 0xf0 MSB-first.
func rampImage() image.Image {
	values := []uint8{10, 20, 30, 40, 50, 40, 30, 20, 10}
	img := image.NewGray(image.Rect(0, 0, 9, 8))
	for y := 0; y < 8; y++ {
		for x, v := range values {
			img.SetGray(x, y, color.Gray{Y: v})
		}
	}
	return img
}

func TestBuildHasherBitOrder(t *testing.T) {
	tests := []struct {
		name     string
		envOrder string
		msbFlag  bool
		expected string
	}{
		{"default lsb", "", false, strings.Repeat("0f", 8)},
		{"env msb", "msb", false, strings.Repeat("f0", 8)},
		{"flag overrides env", "lsb", true, strings.Repeat("f0", 8)},
	}

	img := rampImage()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("IMAGEHASH_BIT_ORDER", tc.envOrder)

			cmd := newHasherTestCmd(t)
			if tc.msbFlag {
				if err := cmd.Flags().Set("msb", "true"); err != nil {
					t.Fatalf("setting --msb failed: %v", err)
				}
			}

			hasher, err := buildHasher(cmd, config.Load())
			if err != nil {
				t.Fatalf("buildHasher failed: %v", err)
			}
			if got := hasher.Hash(img).String(); got != tc.expected {
				t.Errorf("hash = %s; want %s", got, tc.expected)
			}
		})
	}
}

func TestBuildHasherInvalidBitOrderEnv(t *testing.T) {
	t.Setenv("IMAGEHASH_BIT_ORDER", "middle")

	if _, err := buildHasher(newHasherTestCmd(t), config.Load()); err == nil {
		t.Error("buildHasher should fail for an invalid IMAGEHASH_BIT_ORDER")
	}
}
