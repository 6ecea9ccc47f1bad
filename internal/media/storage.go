// Package media stores uploaded images under the media directory and
// generates the fixed-size thumbnails the catalog and admin list render.
package media

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	xdraw "golang.org/x/image/draw"

	_ "image/gif"

	_ "golang.org/x/image/webp" // register webp decoder

	"github.com/example/cacti/internal/models"
)

// ThumbnailSize is the bounding box for generated thumbnails.
const ThumbnailSize = 320

const jpegQuality = 82

// Store writes uploads and thumbnails under a single media directory.
type Store struct {
	dir string
}

// NewStore constructs a Store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the media directory path.
func (s *Store) Dir() string {
	return s.dir
}

// EnsureDir creates the media directory if it does not exist.
func (s *Store) EnsureDir() error {
	return os.MkdirAll(s.dir, 0o755)
}

// Save validates the upload, writes the original file and its thumbnail,
// and returns the stored filename. Filenames are sanitized and uniquified
// so concurrent admins cannot clobber each other's uploads.
func (s *Store) Save(filename string, content []byte) (string, error) {
	decoded, _, err := image.Decode(bytes.NewReader(content))
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}

	name := sanitize(filename)
	if _, err := os.Stat(filepath.Join(s.dir, name)); err == nil {
		ext := filepath.Ext(name)
		name = strings.TrimSuffix(name, ext) + "_" + uuid.New().String()[:8] + ext
	}

	if err := os.WriteFile(filepath.Join(s.dir, name), content, 0o644); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}

	thumb := resizeToFit(decoded, ThumbnailSize, ThumbnailSize)
	encoded, err := encodeByExt(thumb, filepath.Ext(name))
	if err != nil {
		return "", fmt.Errorf("encode thumbnail: %w", err)
	}

	if err := os.WriteFile(filepath.Join(s.dir, models.ThumbName(name)), encoded, 0o644); err != nil {
		return "", fmt.Errorf("write thumbnail: %w", err)
	}

	return name, nil
}

func sanitize(filename string) string {
	name := filepath.Base(filepath.ToSlash(filename))
	name = strings.ReplaceAll(name, " ", "_")
	if name == "" || name == "." || name == ".." {
		name = uuid.New().String()[:8] + ".jpg"
	}
	return name
}

// resizeToFit scales img down to fit within maxW x maxH preserving the
// aspect ratio. Images already inside the box are returned unchanged.
func resizeToFit(img image.Image, maxW, maxH int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxW && h <= maxH {
		return img
	}

	scale := float64(maxW) / float64(w)
	if s := float64(maxH) / float64(h); s < scale {
		scale = s
	}

	dstW := int(float64(w) * scale)
	dstH := int(float64(h) * scale)
	if dstW < 1 {
		dstW = 1
	}
	if dstH < 1 {
		dstH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, dstW, dstH))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Over, nil)
	return dst
}

func encodeByExt(img image.Image, ext string) ([]byte, error) {
	buf := &bytes.Buffer{}
	switch strings.ToLower(ext) {
	case ".png":
		if err := png.Encode(buf, img); err != nil {
			return nil, err
		}
	default:
		if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}
