package models

// MenuAction identifies what a menu entry does when chosen.
type MenuAction int

const (
	// ActionNone is used by separators and submenu headers.
	ActionNone MenuAction = iota
	ActionOpen
	ActionSave
	ActionApplyFilter
	ActionRemoveFilter
	ActionZoom
	ActionDismiss
)

// MenuItem is a toolkit-neutral menu entry. Views translate it into widgets
// and hand the chosen item back to the controller.
type MenuItem struct {
	ID        string
	Label     string
	Action    MenuAction
	Filter    FilterKind
	Zoom      ZoomAction
	Separator bool
	Children  []MenuItem
}

func SeparatorItem() MenuItem {
	return MenuItem{Separator: true}
}

// FilterMenuItems builds the filter entries from the catalog, followed by a
// separator and the remove-filter sentinel.
func FilterMenuItems() []MenuItem {
	catalog := FilterCatalog()
	items := make([]MenuItem, 0, len(catalog)+2)
	for _, kind := range catalog {
		items = append(items, MenuItem{
			ID:     kind.ID(),
			Label:  kind.Title(),
			Action: ActionApplyFilter,
			Filter: kind,
		})
	}
	items = append(items, SeparatorItem(), MenuItem{
		ID:     RemoveFilterID,
		Label:  FilterNone.Title(),
		Action: ActionRemoveFilter,
		Filter: FilterNone,
	})
	return items
}

func zoomItem(action ZoomAction) MenuItem {
	return MenuItem{ID: action.ID(), Label: action.Title(), Action: ActionZoom, Zoom: action}
}

// ZoomMenuItems is the zoom submenu: in, out, separator, fit.
func ZoomMenuItems() []MenuItem {
	return []MenuItem{zoomItem(ZoomIn), zoomItem(ZoomOut), SeparatorItem(), zoomItem(ZoomFit)}
}

// QuickZoomMenuItems lists the multiplier presets.
func QuickZoomMenuItems() []MenuItem {
	presets := QuickZoomActions()
	items := make([]MenuItem, 0, len(presets))
	for _, a := range presets {
		items = append(items, zoomItem(a))
	}
	return items
}

// ContextMenuItems returns the surface context menu for the given state.
func ContextMenuItems(loaded bool) []MenuItem {
	if !loaded {
		return []MenuItem{{ID: "open", Label: "Open image...", Action: ActionOpen}}
	}
	return []MenuItem{
		{ID: "zoom", Label: "Zoom", Children: ZoomMenuItems()},
		{ID: "filters", Label: "Filters", Children: FilterMenuItems()},
		{ID: "dismiss", Label: "Remove Image", Action: ActionDismiss},
	}
}
