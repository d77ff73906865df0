package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterCatalogOrderAndIDs(t *testing.T) {
	var ids []string
	for _, k := range FilterCatalog() {
		ids = append(ids, k.ID())
	}
	assert.Equal(t, []string{"mono", "sepia", "blur", "comic"}, ids)
}

func TestFilterCatalogIsACopy(t *testing.T) {
	c := FilterCatalog()
	c[0] = FilterComic
	assert.Equal(t, FilterMonochrome, FilterCatalog()[0])
}

func TestParseFilterKindRoundTrip(t *testing.T) {
	for _, k := range append(FilterCatalog(), FilterNone) {
		got, err := ParseFilterKind(k.ID())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}
}

func TestParseFilterKindUnknown(t *testing.T) {
	_, err := ParseFilterKind("vignette")
	assert.Error(t, err)
}

func TestFilterParams(t *testing.T) {
	assert.Equal(t, map[string]interface{}{ParamIntensity: 1.0}, FilterSepia.Params())
	assert.Equal(t, map[string]interface{}{ParamRadius: 20.0}, FilterBlur.Params())
	assert.Empty(t, FilterMonochrome.Params())
	assert.Empty(t, FilterComic.Params())
	assert.Empty(t, FilterNone.Params())

	p := FilterSepia.Params()
	p[ParamIntensity] = 0.1
	assert.Equal(t, 1.0, FilterSepia.Params()[ParamIntensity])
}

func TestFilterKindValid(t *testing.T) {
	assert.True(t, FilterNone.Valid())
	assert.True(t, FilterComic.Valid())
	assert.False(t, FilterKind(99).Valid())
	assert.False(t, FilterKind(-1).Valid())
}
