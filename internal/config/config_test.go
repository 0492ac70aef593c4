package config

import (
	"testing"

	"github.com/kozaktomas/imagehash/internal/imghash"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Server.Port != 8080 {
		t.Errorf("default port = %d; want 8080", cfg.Server.Port)
	}
	if cfg.Hash.Alg != "gradient" {
		t.Errorf("default algorithm = %q; want %q", cfg.Hash.Alg, "gradient")
	}
	if cfg.Hash.Size != 8 {
		t.Errorf("default hash size = %d; want 8", cfg.Hash.Size)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("IMAGEHASH_PORT", "9000")
	t.Setenv("IMAGEHASH_ALG", "blockhash")
	t.Setenv("IMAGEHASH_SIZE", "16")

	cfg := Load()

	if cfg.Server.Port != 9000 {
		t.Errorf("port = %d; want 9000", cfg.Server.Port)
	}
	if cfg.Hash.Alg != "blockhash" {
		t.Errorf("algorithm = %q; want %q", cfg.Hash.Alg, "blockhash")
	}
	if cfg.Hash.Size != 16 {
		t.Errorf("hash size = %d; want 16", cfg.Hash.Size)
	}
}

func TestLoadInvalidEnvFallsBack(t *testing.T) {
	t.Setenv("IMAGEHASH_PORT", "not-a-number")

	cfg := Load()
	if cfg.Server.Port != 8080 {
		t.Errorf("port = %d; want default 8080 for invalid env value", cfg.Server.Port)
	}
}

func TestEmbeddedPresets(t *testing.T) {
	cfg := Load()

	tests := []struct {
		name string
		alg  imghash.HashAlg
		dct  bool
	}{
		{"ahash", imghash.Mean, false},
		{"dhash", imghash.Gradient, false},
		{"phash", imghash.Median, true},
		{"blockhash", imghash.Blockhash, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			preset, err := cfg.Preset(tc.name)
			if err != nil {
				t.Fatalf("Preset(%q) failed: %v", tc.name, err)
			}

			hcfg, err := preset.HasherConfig(imghash.LSBFirst)
			if err != nil {
				t.Fatalf("HasherConfig failed: %v", err)
			}
			if hcfg.Alg != tc.alg {
				t.Errorf("preset %q algorithm = %v; want %v", tc.name, hcfg.Alg, tc.alg)
			}
			if hcfg.DCT != tc.dct {
				t.Errorf("preset %q DCT = %v; want %v", tc.name, hcfg.DCT, tc.dct)
			}

			// Every embedded preset must produce a working hasher.
			if _, err := imghash.NewHasher(hcfg); err != nil {
				t.Errorf("preset %q is not a valid hasher config: %v", tc.name, err)
			}
		})
	}
}

func TestUnknownPreset(t *testing.T) {
	cfg := Load()
	if _, err := cfg.Preset("does-not-exist"); err == nil {
		t.Error("unknown preset should return an error")
	}
}
