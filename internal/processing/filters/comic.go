package filters

import (
	"context"

	"filter-viewer/internal/opencv/conversion"
	"filter-viewer/internal/opencv/safe"

	"gocv.io/x/gocv"
)

const (
	comicMedianKernel   = 7
	comicEdgeBlockSize  = 9
	comicEdgeOffset     = 2
	comicBilateralDiam  = 9
	comicBilateralSigma = 75
)

// ComicFilter flattens colors with a bilateral filter and inks dark outlines
// taken from an adaptive threshold of the blurred luminance.
type ComicFilter struct{}

func NewComicFilter() *ComicFilter {
	return &ComicFilter{}
}

func (c *ComicFilter) Name() string {
	return "comic_filter"
}

func (c *ComicFilter) Apply(ctx context.Context, input *safe.Mat, params map[string]interface{}) (*safe.Mat, error) {
	if err := checkInput(ctx, input, c.Name()); err != nil {
		return nil, err
	}

	gray, err := conversion.ConvertToGrayscale(input)
	if err != nil {
		return nil, err
	}
	defer gray.Close()

	blurred := gocv.NewMat()
	defer blurred.Close()
	gocv.MedianBlur(gray.GetMat(), &blurred, comicMedianKernel)

	edges := gocv.NewMat()
	defer edges.Close()
	gocv.AdaptiveThreshold(blurred, &edges, 255, gocv.AdaptiveThresholdMean,
		gocv.ThresholdBinary, comicEdgeBlockSize, comicEdgeOffset)

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	flat := gocv.NewMat()
	defer flat.Close()
	gocv.BilateralFilter(input.GetMat(), &flat, comicBilateralDiam, comicBilateralSigma, comicBilateralSigma)

	if edges.Empty() || flat.Empty() {
		return nil, safe.ErrEmptyMat
	}

	dst := gocv.Zeros(input.Rows(), input.Cols(), gocv.MatTypeCV8UC3)
	gocv.BitwiseAndWithMask(flat, flat, &dst, edges)

	return safe.Wrap(dst, c.Name())
}
