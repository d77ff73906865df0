package conversion

import (
	"fmt"
	"image"

	"filter-viewer/internal/opencv/safe"

	"gocv.io/x/gocv"
	"golang.org/x/image/draw"
)

// ImageToMat converts a decoded Go image into a 3-channel BGR Mat.
// Alpha is discarded; the filters operate on opaque color.
func ImageToMat(img image.Image) (*safe.Mat, error) {
	if img == nil {
		return nil, fmt.Errorf("input image is nil")
	}

	rgba := ToRGBA(img)
	bounds := rgba.Bounds()
	if err := safe.ValidateDimensions(bounds.Dx(), bounds.Dy(), "image to Mat conversion"); err != nil {
		return nil, err
	}

	src, err := gocv.NewMatFromBytes(bounds.Dy(), bounds.Dx(), gocv.MatTypeCV8UC4, rgba.Pix)
	if err != nil {
		return nil, fmt.Errorf("RGBA Mat creation failed: %w", err)
	}
	defer src.Close()

	bgr := gocv.NewMat()
	gocv.CvtColor(src, &bgr, gocv.ColorRGBAToBGR)

	return safe.Wrap(bgr, "image_to_mat")
}

// MatToImage converts a 1, 3 or 4 channel 8-bit Mat back to a Go image.
func MatToImage(src *safe.Mat) (image.Image, error) {
	if err := safe.ValidateMatForOperation(src, "Mat to image conversion"); err != nil {
		return nil, err
	}

	switch src.Channels() {
	case 1, 3, 4:
	default:
		return nil, fmt.Errorf("unsupported channel count: %d", src.Channels())
	}

	img, err := src.GetMat().ToImage()
	if err != nil {
		return nil, fmt.Errorf("Mat to image conversion failed: %w", err)
	}
	return img, nil
}

// ConvertToGrayscale converts a BGR Mat to single-channel grayscale.
func ConvertToGrayscale(src *safe.Mat) (*safe.Mat, error) {
	if err := safe.ValidateMatForOperation(src, "grayscale conversion"); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if src.Channels() == 1 {
		return src.Clone()
	}

	dst := gocv.NewMat()
	switch src.Channels() {
	case 3:
		gocv.CvtColor(src.GetMat(), &dst, gocv.ColorBGRToGray)
	case 4:
		gocv.CvtColor(src.GetMat(), &dst, gocv.ColorBGRAToGray)
	default:
		dst.Close()
		return nil, fmt.Errorf("unsupported channel count: %d", src.Channels())
	}

	return safe.Wrap(dst, "grayscale")
}

// GrayscaleToBGR expands a single-channel Mat back to three channels.
func GrayscaleToBGR(src *safe.Mat) (*safe.Mat, error) {
	if err := safe.ValidateMatForOperation(src, "gray to BGR conversion"); err != nil {
		return nil, err
	}
	if src.Channels() != 1 {
		return nil, fmt.Errorf("gray to BGR conversion requires 1 channel, got %d", src.Channels())
	}

	dst := gocv.NewMat()
	gocv.CvtColor(src.GetMat(), &dst, gocv.ColorGrayToBGR)
	return safe.Wrap(dst, "gray_to_bgr")
}

// ToRGBA returns img as a tightly packed *image.RGBA anchored at the origin.
func ToRGBA(img image.Image) *image.RGBA {
	bounds := img.Bounds()
	if rgba, ok := img.(*image.RGBA); ok && bounds.Min == (image.Point{}) && rgba.Stride == 4*bounds.Dx() {
		return rgba
	}

	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	return rgba
}
