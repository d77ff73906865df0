package models

import "fmt"

// FilterKind is the closed set of transforms the viewer can apply.
type FilterKind int

const (
	FilterNone FilterKind = iota
	FilterMonochrome
	FilterSepia
	FilterBlur
	FilterComic
)

// Parameter keys understood by the filter implementations.
const (
	ParamIntensity = "intensity"
	ParamRadius    = "radius"
)

const (
	SepiaIntensity = 1.0
	BlurRadius     = 20.0
)

// RemoveFilterID is the catalog sentinel that maps to FilterNone.
const RemoveFilterID = "removeFilter"

var filterCatalog = []FilterKind{
	FilterMonochrome,
	FilterSepia,
	FilterBlur,
	FilterComic,
}

// FilterCatalog returns the ordered list of selectable filters. Every menu
// surface is built from this list.
func FilterCatalog() []FilterKind {
	out := make([]FilterKind, len(filterCatalog))
	copy(out, filterCatalog)
	return out
}

// ID returns the stable identifier used by menus and the toolbar popup.
func (k FilterKind) ID() string {
	switch k {
	case FilterNone:
		return RemoveFilterID
	case FilterMonochrome:
		return "mono"
	case FilterSepia:
		return "sepia"
	case FilterBlur:
		return "blur"
	case FilterComic:
		return "comic"
	default:
		return fmt.Sprintf("filter(%d)", int(k))
	}
}

// Title is the human-readable label.
func (k FilterKind) Title() string {
	switch k {
	case FilterNone:
		return "Remove Filter"
	case FilterMonochrome:
		return "Monochrome"
	case FilterSepia:
		return "Sepia"
	case FilterBlur:
		return "Blur"
	case FilterComic:
		return "Comic"
	default:
		return k.ID()
	}
}

func (k FilterKind) String() string {
	return k.ID()
}

// Valid reports whether k is a member of the enumeration.
func (k FilterKind) Valid() bool {
	return k >= FilterNone && k <= FilterComic
}

// Params returns the fixed parameter set for the kind. A fresh map is
// returned on every call.
func (k FilterKind) Params() map[string]interface{} {
	switch k {
	case FilterSepia:
		return map[string]interface{}{ParamIntensity: SepiaIntensity}
	case FilterBlur:
		return map[string]interface{}{ParamRadius: BlurRadius}
	default:
		return map[string]interface{}{}
	}
}

// ParseFilterKind maps a catalog identifier back to its kind.
func ParseFilterKind(id string) (FilterKind, error) {
	if id == RemoveFilterID {
		return FilterNone, nil
	}
	for _, k := range filterCatalog {
		if k.ID() == id {
			return k, nil
		}
	}
	return FilterNone, fmt.Errorf("unknown filter identifier %q", id)
}
