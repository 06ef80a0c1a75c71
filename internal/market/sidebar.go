package market

import (
	"sync"

	"github.com/pkg/errors"
)

// View identifies which block of the sidebar is visible.
type View string

const (
	ViewOverview View = "overview"
	ViewNews     View = "news"
	ViewMovers   View = "movers"
)

// ErrUnknownView is returned by SelectView for a view the sidebar doesn't have.
var ErrUnknownView = errors.New("unknown sidebar view")

// Views returns the selectable views in display order.
func Views() []View {
	return []View{ViewOverview, ViewNews, ViewMovers}
}

// Label is the tab caption for v.
func (v View) Label() string {
	switch v {
	case ViewOverview:
		return "Pulse"
	case ViewNews:
		return "News"
	case ViewMovers:
		return "Movers"
	}
	return string(v)
}

// Valid reports whether v is one of Views.
func (v View) Valid() bool {
	switch v {
	case ViewOverview, ViewNews, ViewMovers:
		return true
	}
	return false
}

// Sidebar holds the state of the market panel: the static snapshot and the selected view.
type Sidebar struct {
	mu       sync.RWMutex
	view     View
	snapshot Snapshot
}

// NewSidebar creates a sidebar showing the overview of snapshot.
func NewSidebar(snapshot Snapshot) *Sidebar {
	return &Sidebar{
		view:     ViewOverview,
		snapshot: snapshot,
	}
}

// SelectView switches the visible block. Selecting the current view again is a no-op.
func (s *Sidebar) SelectView(v View) error {
	if !v.Valid() {
		return errors.Wrapf(ErrUnknownView, "view %q", string(v))
	}

	s.mu.Lock()
	s.view = v
	s.mu.Unlock()
	return nil
}

func (s *Sidebar) View() View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view
}

func (s *Sidebar) Snapshot() Snapshot {
	return s.snapshot
}
