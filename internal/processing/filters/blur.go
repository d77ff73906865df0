package filters

import (
	"context"
	"image"

	"filter-viewer/internal/models"
	"filter-viewer/internal/opencv/safe"

	"gocv.io/x/gocv"
)

// BlurFilter applies a Gaussian blur whose sigma equals the radius
// parameter. The kernel size is derived by OpenCV from sigma and the output
// keeps the input extent.
type BlurFilter struct{}

func NewBlurFilter() *BlurFilter {
	return &BlurFilter{}
}

func (b *BlurFilter) Name() string {
	return "blur_filter"
}

func (b *BlurFilter) Apply(ctx context.Context, input *safe.Mat, params map[string]interface{}) (*safe.Mat, error) {
	if err := checkInput(ctx, input, b.Name()); err != nil {
		return nil, err
	}

	radius := floatParam(params, models.ParamRadius, models.BlurRadius)
	if radius <= 0 {
		return input.Clone()
	}

	dst := gocv.NewMat()
	gocv.GaussianBlur(input.GetMat(), &dst, image.Point{}, radius, radius, gocv.BorderReflect101)

	return safe.Wrap(dst, b.Name())
}
