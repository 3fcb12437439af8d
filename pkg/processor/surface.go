package processor

import (
	"fmt"

	"github.com/a2ui/go-sdk/pkg/core/messages"
	"github.com/a2ui/go-sdk/pkg/datamodel"
)

// Surface is one live UI context: a component tree plus its bound data model.
// Surfaces handed out by the processor are snapshots; later batches replace
// the processor's copy instead of mutating it.
type Surface struct {
	id         string
	catalogID  string
	rootID     string
	styles     map[string]any
	components map[string]*messages.Component
	order      []string
	data       *datamodel.DataModel
}

func newSurface(id string) *Surface {
	return &Surface{
		id:         id,
		components: make(map[string]*messages.Component),
		data:       datamodel.New(),
	}
}

// ID returns the surface identifier
func (s *Surface) ID() string {
	return s.id
}

// CatalogID returns the component catalog the agent requested, if any
func (s *Surface) CatalogID() string {
	return s.catalogID
}

// RootID returns the id of the root component named by beginRendering
func (s *Surface) RootID() string {
	return s.rootID
}

// Styles returns the style hints supplied at surface creation
func (s *Surface) Styles() map[string]any {
	return s.styles
}

// Component returns the component with the given id
func (s *Surface) Component(id string) (*messages.Component, bool) {
	comp, ok := s.components[id]
	return comp, ok
}

// Components returns all components in first-insertion order
func (s *Surface) Components() []*messages.Component {
	result := make([]*messages.Component, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, s.components[id])
	}
	return result
}

// Root returns the root component, when present
func (s *Surface) Root() (*messages.Component, bool) {
	if s.rootID == "" {
		return nil, false
	}
	return s.Component(s.rootID)
}

// Data returns the surface's data model
func (s *Surface) Data() *datamodel.DataModel {
	return s.data
}

// applyComponents upserts the given components by id. The update is
// all-or-nothing for the message: a component set that would make the tree
// cyclic leaves the surface unchanged.
func (s *Surface) applyComponents(comps []messages.Component) error {
	staged := make(map[string]*messages.Component, len(s.components)+len(comps))
	for id, comp := range s.components {
		staged[id] = comp
	}
	order := append([]string(nil), s.order...)

	for i := range comps {
		comp := comps[i]
		if comp.ID == "" {
			continue
		}
		if _, exists := staged[comp.ID]; !exists {
			order = append(order, comp.ID)
		}
		staged[comp.ID] = &comp
	}

	if cycle := findCycle(staged); cycle != "" {
		return fmt.Errorf("component %s is its own ancestor", cycle)
	}

	s.components = staged
	s.order = order
	return nil
}

// findCycle returns the id of a component reachable from itself through child
// references, or "" when the tree is acyclic.
func findCycle(components map[string]*messages.Component) string {
	const (
		visiting = 1
		done     = 2
	)
	state := make(map[string]int, len(components))

	var visit func(id string) string
	visit = func(id string) string {
		comp, ok := components[id]
		if !ok || state[id] == done {
			return ""
		}
		if state[id] == visiting {
			return id
		}
		state[id] = visiting
		for _, child := range comp.ChildIDs() {
			if cyclic := visit(child); cyclic != "" {
				return cyclic
			}
		}
		state[id] = done
		return ""
	}

	for id := range components {
		if cyclic := visit(id); cyclic != "" {
			return cyclic
		}
	}
	return ""
}

// clone returns a snapshot of the surface with an independent data model and
// component registry. Components themselves are replaced, never mutated, on
// update, so sharing their pointers is safe.
func (s *Surface) clone() *Surface {
	components := make(map[string]*messages.Component, len(s.components))
	for id, comp := range s.components {
		components[id] = comp
	}
	return &Surface{
		id:         s.id,
		catalogID:  s.catalogID,
		rootID:     s.rootID,
		styles:     s.styles,
		components: components,
		order:      append([]string(nil), s.order...),
		data:       s.data.Clone(),
	}
}
