package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterMenuItemsFollowCatalog(t *testing.T) {
	items := FilterMenuItems()
	catalog := FilterCatalog()
	require.Len(t, items, len(catalog)+2)

	for i, kind := range catalog {
		assert.Equal(t, kind.ID(), items[i].ID)
		assert.Equal(t, ActionApplyFilter, items[i].Action)
		assert.Equal(t, kind, items[i].Filter)
	}
	assert.True(t, items[len(catalog)].Separator)

	last := items[len(items)-1]
	assert.Equal(t, RemoveFilterID, last.ID)
	assert.Equal(t, ActionRemoveFilter, last.Action)
}

func TestContextMenuItems(t *testing.T) {
	empty := ContextMenuItems(false)
	require.Len(t, empty, 1)
	assert.Equal(t, ActionOpen, empty[0].Action)

	loaded := ContextMenuItems(true)
	require.Len(t, loaded, 3)
	assert.Equal(t, "Zoom", loaded[0].Label)
	assert.Equal(t, ZoomMenuItems(), loaded[0].Children)
	assert.Equal(t, "Filters", loaded[1].Label)
	assert.Equal(t, FilterMenuItems(), loaded[1].Children)
	assert.Equal(t, ActionDismiss, loaded[2].Action)
}

func TestQuickZoomMenuItems(t *testing.T) {
	var ids []string
	for _, item := range QuickZoomMenuItems() {
		assert.Equal(t, ActionZoom, item.Action)
		ids = append(ids, item.ID)
	}
	assert.Equal(t, []string{"zoomX4", "zoomX2", "zoomX0.5", "zoomX0.25"}, ids)
}
