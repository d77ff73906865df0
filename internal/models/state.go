package models

// ViewerState is the observable state of the viewer: either no document,
// or a loaded document with the filter currently displayed.
type ViewerState struct {
	Loaded bool
	Filter FilterKind
}

var StateEmpty = ViewerState{}

// LoadedWith returns the loaded state displaying kind.
func LoadedWith(kind FilterKind) ViewerState {
	return ViewerState{Loaded: true, Filter: kind}
}

func (s ViewerState) String() string {
	if !s.Loaded {
		return "Empty"
	}
	if s.Filter == FilterNone {
		return "Loaded(none)"
	}
	return "Loaded(" + s.Filter.ID() + ")"
}
