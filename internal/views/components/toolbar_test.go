package components

import (
	"testing"

	"filter-viewer/internal/models"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestToolbar(t *testing.T) (*Toolbar, *[]models.MenuItem) {
	t.Helper()
	a := test.NewApp()
	t.Cleanup(a.Quit)

	tb := NewToolbar()
	var emitted []models.MenuItem
	tb.SetActionHandler(func(item models.MenuItem) {
		emitted = append(emitted, item)
	})
	tb.SetFilters(models.FilterMenuItems())
	return tb, &emitted
}

func TestFilterSelectionEmitsItem(t *testing.T) {
	tb, emitted := newTestToolbar(t)
	tb.SetViewerState(models.LoadedWith(models.FilterNone))

	tb.filterSelect.SetSelected("Sepia")
	require.Len(t, *emitted, 1)
	assert.Equal(t, models.ActionApplyFilter, (*emitted)[0].Action)
	assert.Equal(t, models.FilterSepia, (*emitted)[0].Filter)

	tb.filterSelect.SetSelected("Remove Filter")
	require.Len(t, *emitted, 2)
	assert.Equal(t, models.ActionRemoveFilter, (*emitted)[1].Action)
}

func TestViewerStateResyncsRejectedSelection(t *testing.T) {
	tb, emitted := newTestToolbar(t)
	tb.SetViewerState(models.LoadedWith(models.FilterSepia))

	tb.filterSelect.SetSelected("Comic")
	require.Len(t, *emitted, 1)
	assert.Equal(t, "Comic", tb.SelectedFilter())

	tb.SetViewerState(models.LoadedWith(models.FilterSepia))
	assert.Equal(t, "Sepia", tb.SelectedFilter())
	assert.Len(t, *emitted, 1)
}

func TestEmptyStateDisablesImageControls(t *testing.T) {
	tb, _ := newTestToolbar(t)

	tb.SetViewerState(models.StateEmpty)
	assert.True(t, tb.saveButton.Disabled())
	assert.True(t, tb.filterSelect.Disabled())
	for _, b := range tb.zoomButtons {
		assert.True(t, b.Disabled())
	}
	assert.False(t, tb.openButton.Disabled())

	tb.SetViewerState(models.LoadedWith(models.FilterNone))
	assert.False(t, tb.saveButton.Disabled())
	for _, b := range tb.zoomButtons {
		assert.False(t, b.Disabled())
	}
}

func TestFormatZoom(t *testing.T) {
	assert.Equal(t, "25%", formatZoom(0.25))
	assert.Equal(t, "500%", formatZoom(5))
}
