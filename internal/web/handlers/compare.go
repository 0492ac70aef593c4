package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/kozaktomas/imagehash/internal/constants"
)

// CompareResponse is the result of comparing two uploaded images.
type CompareResponse struct {
	Results   []HashResponse `json:"results"`
	Distance  int            `json:"distance"`
	Threshold int            `json:"threshold"`
	Similar   bool           `json:"similar"`
}

// Compare handles POST /api/v1/compare with exactly two uploaded images.
func (h *HashHandler) Compare(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(constants.MaxUploadSize); err != nil {
		respondError(w, http.StatusBadRequest, "failed to parse multipart form")
		return
	}

	hasher, err := hasherFromForm(h.config, r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	threshold := h.config.Hash.Threshold
	if v := r.FormValue("threshold"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid threshold %q", v))
			return
		}
		threshold = n
	}

	files := r.MultipartForm.File["files"]
	if len(files) != constants.MaxCompareFiles {
		respondError(w, http.StatusBadRequest,
			fmt.Sprintf("expected exactly %d files, got %d", constants.MaxCompareFiles, len(files)))
		return
	}

	results, hashes, err := h.hashUploads(hasher, files)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	distance, err := hashes[0].Distance(hashes[1])
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, CompareResponse{
		Results:   results,
		Distance:  distance,
		Threshold: threshold,
		Similar:   distance <= threshold,
	})
}
