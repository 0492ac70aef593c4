package handlers

import (
	"fmt"
	"image"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	// Image decoders for uploaded files.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/google/uuid"

	"github.com/kozaktomas/imagehash/internal/config"
	"github.com/kozaktomas/imagehash/internal/constants"
	"github.com/kozaktomas/imagehash/internal/imghash"
)

// HashHandler handles the hashing endpoints.
type HashHandler struct {
	config *config.Config
}

// NewHashHandler creates a new hash handler.
func NewHashHandler(cfg *config.Config) *HashHandler {
	return &HashHandler{config: cfg}
}

// HashResponse describes one hashed upload.
type HashResponse struct {
	File   string `json:"file"`
	Alg    string `json:"alg"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Bits   int    `json:"bits"`
	Hash   string `json:"hash"`
	Base64 string `json:"base64"`
}

// hasherFromForm builds a hasher from request form values, layered over the
// server defaults: preset first, then explicit parameters.
func hasherFromForm(cfg *config.Config, r *http.Request) (*imghash.Hasher, error) {
	order, err := imghash.ParseBitOrder(cfg.Hash.BitOrder)
	if err != nil {
		order = imghash.LSBFirst
	}

	hc := imghash.HasherConfig{
		Width:    cfg.Hash.Size,
		Height:   cfg.Hash.Size,
		BitOrder: order,
	}
	if hc.Alg, err = imghash.ParseAlg(cfg.Hash.Alg); err != nil {
		hc.Alg = imghash.Gradient
	}

	if name := r.FormValue("preset"); name != "" {
		preset, err := cfg.Preset(name)
		if err != nil {
			return nil, err
		}
		if hc, err = preset.HasherConfig(order); err != nil {
			return nil, err
		}
	}

	if v := r.FormValue("alg"); v != "" {
		if hc.Alg, err = imghash.ParseAlg(v); err != nil {
			return nil, err
		}
	}
	if v := r.FormValue("size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid size %q", v)
		}
		hc.Width, hc.Height = n, n
	}
	if v := r.FormValue("width"); v != "" {
		if hc.Width, err = strconv.Atoi(v); err != nil {
			return nil, fmt.Errorf("invalid width %q", v)
		}
	}
	if v := r.FormValue("height"); v != "" {
		if hc.Height, err = strconv.Atoi(v); err != nil {
			return nil, fmt.Errorf("invalid height %q", v)
		}
	}
	if v := r.FormValue("bit_order"); v != "" {
		if hc.BitOrder, err = imghash.ParseBitOrder(v); err != nil {
			return nil, err
		}
	}
	if v := r.FormValue("gaussian_sigma"); v != "" {
		if hc.GaussianSigma, err = strconv.ParseFloat(v, 64); err != nil {
			return nil, fmt.Errorf("invalid gaussian_sigma %q", v)
		}
	}
	if v := r.FormValue("dct"); v != "" {
		if hc.DCT, err = strconv.ParseBool(v); err != nil {
			return nil, fmt.Errorf("invalid dct %q", v)
		}
	}

	return imghash.NewHasher(hc)
}

// saveUpload writes one multipart file into tempDir under a unique name and
// returns its path. Unique names keep same-named uploads from clobbering
// each other within a request.
func saveUpload(fileHeader *multipart.FileHeader, tempDir string) (string, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %s", fileHeader.Filename)
	}
	defer file.Close()

	name := uuid.NewString() + filepath.Ext(filepath.Base(fileHeader.Filename))
	tempPath := filepath.Join(tempDir, name)
	out, err := os.Create(tempPath) //nolint:gosec // name is a generated UUID
	if err != nil {
		return "", fmt.Errorf("failed to create temp file")
	}
	defer out.Close()

	if _, err := io.Copy(out, file); err != nil {
		return "", fmt.Errorf("failed to save file: %s", fileHeader.Filename)
	}
	return tempPath, nil
}

func decodeImageFile(path string) (image.Image, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from saveUpload
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	return img, err
}

// hashUploads saves, decodes and hashes all uploaded files in request order.
func (h *HashHandler) hashUploads(hasher *imghash.Hasher, files []*multipart.FileHeader) ([]HashResponse, []imghash.ImageHash, error) {
	tempDir, err := os.MkdirTemp("", "imagehash-upload-*")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create temp directory")
	}
	defer os.RemoveAll(tempDir)

	results := make([]HashResponse, 0, len(files))
	hashes := make([]imghash.ImageHash, 0, len(files))
	for _, fileHeader := range files {
		path, err := saveUpload(fileHeader, tempDir)
		if err != nil {
			return nil, nil, err
		}
		img, err := decodeImageFile(path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to decode %s: %v", fileHeader.Filename, err)
		}

		hash := hasher.Hash(img)
		w, ht := hasher.HashSize()
		results = append(results, HashResponse{
			File:   fileHeader.Filename,
			Alg:    hasher.Alg().String(),
			Width:  w,
			Height: ht,
			Bits:   hash.Bits(),
			Hash:   hash.String(),
			Base64: hash.Base64(),
		})
		hashes = append(hashes, hash)
	}
	return results, hashes, nil
}

// Hash handles POST /api/v1/hash with one or more uploaded images.
func (h *HashHandler) Hash(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(constants.MaxUploadSize); err != nil {
		respondError(w, http.StatusBadRequest, "failed to parse multipart form")
		return
	}

	hasher, err := hasherFromForm(h.config, r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		respondError(w, http.StatusBadRequest, "no files provided")
		return
	}

	results, _, err := h.hashUploads(hasher, files)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"results": results})
}
