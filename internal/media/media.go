// Package media prepares device images for upload: size and type checks,
// downscaling to a sane bound, and JPEG re-encoding so the backend never
// sees multi-megabyte camera originals.
package media

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

const (
	// MaxUploadBytes is the largest source image accepted from the device.
	MaxUploadBytes = 10 * 1024 * 1024

	// MaxDimension bounds the longest side of the uploaded image.
	MaxDimension = 1080

	jpegQuality = 85
)

var (
	ErrFileTooLarge     = errors.New("image exceeds the 10MB upload limit")
	ErrInvalidImageType = errors.New("unsupported image type")
)

// Only formats the decoder can read; no WebP decoder is registered.
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// Upload is an image normalized and ready for a multipart form.
type Upload struct {
	Name        string
	ContentType string
	Data        []byte
}

// PrepareImage loads the image at path, validates it, bounds it to
// MaxDimension and re-encodes it as JPEG.
func PrepareImage(path string) (*Upload, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	if info.Size() > MaxUploadBytes {
		return nil, ErrFileTooLarge
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}

	sniff := data
	if len(sniff) > 512 {
		sniff = sniff[:512]
	}
	if !allowedImageTypes[strings.TrimSpace(strings.SplitN(http.DetectContentType(sniff), ";", 2)[0])] {
		return nil, ErrInvalidImageType
	}

	jpegBytes, err := boundToJPEG(data)
	if err != nil {
		return nil, err
	}

	return &Upload{
		Name:        uploadName(path),
		ContentType: "image/jpeg",
		Data:        jpegBytes,
	}, nil
}

// boundToJPEG shrinks the image so its longest side is at most MaxDimension
// and encodes it as JPEG. Images already within bounds are only re-encoded.
func boundToJPEG(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > MaxDimension || bounds.Dy() > MaxDimension {
		img = imaging.Fit(img, MaxDimension, MaxDimension, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// uploadName derives the form filename from the device path, normalized to
// a .jpg extension since the payload is re-encoded.
func uploadName(path string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	if ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	if base == "" || base == "." {
		base = "image"
	}
	return base + ".jpg"
}
