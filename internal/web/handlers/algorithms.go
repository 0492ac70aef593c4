package handlers

import (
	"net/http"

	"github.com/kozaktomas/imagehash/internal/imghash"
)

// AlgorithmInfo describes one hash algorithm for API clients.
type AlgorithmInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// PresetInfo describes one named preset for API clients.
type PresetInfo struct {
	Name          string  `json:"name"`
	Alg           string  `json:"alg"`
	Width         int     `json:"width"`
	Height        int     `json:"height"`
	GaussianSigma float64 `json:"gaussian_sigma,omitempty"`
	DCT           bool    `json:"dct,omitempty"`
}

var algorithmDescriptions = map[imghash.HashAlg]string{
	imghash.Mean:           "one bit per pixel, set when the pixel is brighter than the image mean",
	imghash.Median:         "one bit per pixel, set when the pixel is brighter than the image median",
	imghash.Gradient:       "one bit per horizontal neighbor pair, set when brightness increases left to right",
	imghash.VertGradient:   "one bit per vertical neighbor pair, set when brightness increases top to bottom",
	imghash.DoubleGradient: "horizontal and vertical gradients concatenated, computed at half size",
	imghash.Blockhash:      "block-based hash over the full-size image, one bit per block against the block median",
}

// Algorithms lists the supported hash algorithms and the named presets.
func (h *HashHandler) Algorithms(w http.ResponseWriter, r *http.Request) {
	algs := imghash.Algorithms()
	algList := make([]AlgorithmInfo, 0, len(algs))
	for _, alg := range algs {
		algList = append(algList, AlgorithmInfo{
			Name:        alg.String(),
			Description: algorithmDescriptions[alg],
		})
	}

	presets := make([]PresetInfo, 0, len(h.config.PresetNames()))
	for _, name := range h.config.PresetNames() {
		preset, err := h.config.Preset(name)
		if err != nil {
			continue
		}
		presets = append(presets, PresetInfo{
			Name:          name,
			Alg:           preset.Alg,
			Width:         preset.Width,
			Height:        preset.Height,
			GaussianSigma: preset.GaussianSigma,
			DCT:           preset.DCT,
		})
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"algorithms": algList,
		"presets":    presets,
	})
}
