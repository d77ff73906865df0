package services

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"

	"filter-viewer/internal/logger"
	"filter-viewer/internal/models"

	filetype "gopkg.in/h2non/filetype.v1"
	"gopkg.in/h2non/filetype.v1/matchers"
)

const DefaultJPEGQuality = 95

var acceptedExtensions = []string{"png", "jpg", "jpeg"}

// ImageService validates files before they reach the ImageStore and encodes
// displayed images for saving.
type ImageService struct {
	store       *models.ImageStore
	logger      logger.Logger
	jpegQuality int
}

func NewImageService(store *models.ImageStore, log logger.Logger, jpegQuality int) *ImageService {
	if jpegQuality < 1 || jpegQuality > 100 {
		jpegQuality = DefaultJPEGQuality
	}
	return &ImageService{
		store:       store,
		logger:      log,
		jpegQuality: jpegQuality,
	}
}

// AcceptedExtensions lists the extensions offered by the open dialog.
func AcceptedExtensions() []string {
	out := make([]string, len(acceptedExtensions))
	copy(out, acceptedExtensions)
	return out
}

func isAccepted(ext string) bool {
	for _, e := range acceptedExtensions {
		if e == ext {
			return true
		}
	}
	return false
}

// Candidate is a validated file that has not yet been committed to the store.
type Candidate struct {
	Data      []byte
	Extension string
	Path      string
	Size      image.Point
	Format    string
}

// Read loads path and checks that it holds a PNG or JPEG image with an
// accepted extension. The store is not touched.
func (is *ImageService) Read(path string) (*Candidate, error) {
	ext := models.ExtensionOf(path)
	if !isAccepted(ext) {
		return nil, fmt.Errorf("%w: unsupported extension %q", models.ErrLoad, ext)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", models.ErrLoad, path, err)
	}

	kind, err := filetype.Match(data)
	if err != nil {
		return nil, fmt.Errorf("%w: sniff %s: %w", models.ErrLoad, path, err)
	}
	if kind != matchers.TypePng && kind != matchers.TypeJpeg {
		return nil, fmt.Errorf("%w: %s is not a PNG or JPEG image (detected %q)", models.ErrLoad, path, kind.MIME.Value)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", models.ErrLoad, path, err)
	}

	return &Candidate{
		Data:      data,
		Extension: ext,
		Path:      path,
		Size:      image.Pt(cfg.Width, cfg.Height),
		Format:    kind.Extension,
	}, nil
}

// Commit makes c the current document.
func (is *ImageService) Commit(c *Candidate) error {
	if err := is.store.LoadBytes(c.Data, c.Extension, c.Path); err != nil {
		return err
	}

	is.logger.Info("ImageService", "image opened", map[string]interface{}{
		"path":   c.Path,
		"format": c.Format,
		"width":  c.Size.X,
		"height": c.Size.Y,
		"bytes":  len(c.Data),
	})
	return nil
}

// Encode writes img in the format named by ext.
func (is *ImageService) Encode(w io.Writer, img image.Image, ext string) error {
	if img == nil {
		return fmt.Errorf("%w: no image data to encode", models.ErrSave)
	}

	var err error
	switch ext {
	case "jpg", "jpeg":
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: is.jpegQuality})
	case "png":
		err = png.Encode(w, img)
	default:
		return fmt.Errorf("%w: unsupported save format %q", models.ErrSave, ext)
	}
	if err != nil {
		return fmt.Errorf("%w: encode %s: %w", models.ErrSave, ext, err)
	}
	return nil
}

// SaveDisplayed re-encodes img in the document's format and writes it to
// path. The path must carry the same extension as the opened file; nothing
// on disk is touched until both the check and the encode succeed.
func (is *ImageService) SaveDisplayed(img image.Image, path string) error {
	docExt, ok := is.store.Extension()
	if !ok {
		return fmt.Errorf("%w: no image loaded", models.ErrSave)
	}

	if ext := models.ExtensionOf(path); ext != docExt {
		return fmt.Errorf("%w: %s must use the .%s extension", models.ErrSave, path, docExt)
	}

	var buf bytes.Buffer
	if err := is.Encode(&buf, img, docExt); err != nil {
		return err
	}

	if err := is.store.Save(buf.Bytes(), path); err != nil {
		return err
	}

	is.logger.Info("ImageService", "image saved", map[string]interface{}{
		"path":  path,
		"bytes": buf.Len(),
	})
	return nil
}
