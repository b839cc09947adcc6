package media

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
)

func writePNG(t *testing.T, name string, width, height int) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 90, A: 255})
		}
	}

	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create image file: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return path
}

func TestPrepareImage_ReencodesAsJPEG(t *testing.T) {
	path := writePNG(t, "fit.png", 64, 48)

	upload, err := PrepareImage(path)
	if err != nil {
		t.Fatalf("prepare failed: %v", err)
	}

	if upload.ContentType != "image/jpeg" {
		t.Errorf("content type = %q, want image/jpeg", upload.ContentType)
	}
	if upload.Name != "fit.jpg" {
		t.Errorf("name = %q, want fit.jpg", upload.Name)
	}

	decoded, err := imaging.Decode(bytes.NewReader(upload.Data))
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if decoded.Bounds().Dx() != 64 || decoded.Bounds().Dy() != 48 {
		t.Errorf("bounds = %v, want the original 64x48 kept", decoded.Bounds())
	}
}

func TestPrepareImage_BoundsLargeImages(t *testing.T) {
	path := writePNG(t, "huge.png", 2400, 1200)

	upload, err := PrepareImage(path)
	if err != nil {
		t.Fatalf("prepare failed: %v", err)
	}

	decoded, err := imaging.Decode(bytes.NewReader(upload.Data))
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if w := decoded.Bounds().Dx(); w > MaxDimension {
		t.Errorf("width = %d, want at most %d", w, MaxDimension)
	}
	// Fit preserves aspect ratio: 2400x1200 shrinks to 1080x540.
	if h := decoded.Bounds().Dy(); h != 540 {
		t.Errorf("height = %d, want 540", h)
	}
}

// WebP sniffs as an image but has no registered decoder, so it must be
// turned away at the type check with the domain error.
func TestPrepareImage_RejectsWebP(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pic.webp")
	data := append([]byte("RIFF\x24\x00\x00\x00WEBPVP8 "), make([]byte, 64)...)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	_, err := PrepareImage(path)
	if !errors.Is(err, ErrInvalidImageType) {
		t.Fatalf("error = %v, want ErrInvalidImageType", err)
	}
}

func TestPrepareImage_RejectsNonImages(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("not an image at all"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	_, err := PrepareImage(path)
	if !errors.Is(err, ErrInvalidImageType) {
		t.Fatalf("error = %v, want ErrInvalidImageType", err)
	}
}

func TestPrepareImage_MissingFile(t *testing.T) {
	if _, err := PrepareImage(filepath.Join(t.TempDir(), "gone.png")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
