package filters

import (
	"context"
	"fmt"
	"math"

	"filter-viewer/internal/models"
	"filter-viewer/internal/opencv/conversion"
	"filter-viewer/internal/opencv/safe"

	"gocv.io/x/gocv"
)

// MonochromeFilter desaturates to luminance and keeps a 3-channel layout.
type MonochromeFilter struct{}

func NewMonochromeFilter() *MonochromeFilter {
	return &MonochromeFilter{}
}

func (m *MonochromeFilter) Name() string {
	return "monochrome_filter"
}

func (m *MonochromeFilter) Apply(ctx context.Context, input *safe.Mat, params map[string]interface{}) (*safe.Mat, error) {
	if err := checkInput(ctx, input, m.Name()); err != nil {
		return nil, err
	}

	gray, err := conversion.ConvertToGrayscale(input)
	if err != nil {
		return nil, err
	}
	defer gray.Close()

	return conversion.GrayscaleToBGR(gray)
}

// Sepia tone matrix in BGR order: rows produce B', G', R' from B, G, R.
var sepiaKernel = [3][3]float64{
	{0.131, 0.534, 0.272},
	{0.168, 0.686, 0.349},
	{0.189, 0.769, 0.393},
}

// SepiaFilter maps colors through the sepia matrix, blended with the
// identity by the intensity parameter.
type SepiaFilter struct{}

func NewSepiaFilter() *SepiaFilter {
	return &SepiaFilter{}
}

func (s *SepiaFilter) Name() string {
	return "sepia_filter"
}

func (s *SepiaFilter) Apply(ctx context.Context, input *safe.Mat, params map[string]interface{}) (*safe.Mat, error) {
	if err := checkInput(ctx, input, s.Name()); err != nil {
		return nil, err
	}

	intensity := floatParam(params, models.ParamIntensity, models.SepiaIntensity)
	intensity = math.Max(0, math.Min(1, intensity))

	kernel := gocv.NewMatWithSize(3, 3, gocv.MatTypeCV32F)
	defer kernel.Close()
	if kernel.Empty() {
		return nil, fmt.Errorf("sepia kernel allocation failed")
	}

	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			identity := 0.0
			if row == col {
				identity = 1.0
			}
			value := (1-intensity)*identity + intensity*sepiaKernel[row][col]
			kernel.SetFloatAt(row, col, float32(value))
		}
	}

	dst := gocv.NewMat()
	gocv.Transform(input.GetMat(), &dst, kernel)

	return safe.Wrap(dst, s.Name())
}
