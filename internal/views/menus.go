package views

import (
	"filter-viewer/internal/models"

	"fyne.io/fyne/v2"
)

// toFyneItems translates model menu entries into fyne menu items. Chosen
// leaves are passed to handler; entries with children become submenus.
func toFyneItems(items []models.MenuItem, handler func(models.MenuItem)) []*fyne.MenuItem {
	out := make([]*fyne.MenuItem, 0, len(items))
	for _, item := range items {
		if item.Separator {
			out = append(out, fyne.NewMenuItemSeparator())
			continue
		}

		mi := fyne.NewMenuItem(item.Label, nil)
		if len(item.Children) > 0 {
			mi.ChildMenu = fyne.NewMenu(item.Label, toFyneItems(item.Children, handler)...)
		} else {
			chosen := item
			mi.Action = func() {
				if handler != nil {
					handler(chosen)
				}
			}
		}
		out = append(out, mi)
	}
	return out
}

func toFyneMenu(label string, items []models.MenuItem, handler func(models.MenuItem)) *fyne.Menu {
	return fyne.NewMenu(label, toFyneItems(items, handler)...)
}
