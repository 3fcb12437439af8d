package processor

import (
	"time"

	"github.com/a2ui/go-sdk/pkg/core"
	"github.com/a2ui/go-sdk/pkg/core/messages"
	"github.com/a2ui/go-sdk/pkg/datamodel"
)

// ActionRequest describes a user interaction about to be reported to the
// agent: which component fired on which surface, and the data context path in
// effect at the firing component. For a component instantiated from a list
// template the context path is the path of the specific sequence element, so
// relative context entries resolve against that item rather than the list
// root.
type ActionRequest struct {
	SurfaceID   string
	ComponentID string
	ContextPath datamodel.Path
}

// BuildUserAction resolves the firing component's action template into an
// outbound client event. Literal context entries are copied verbatim; path
// entries are resolved against the surface data model using the request's
// context path. Entries whose binding is absent are omitted from the event
// context. The timestamp is generated here, not supplied by the UI.
func (p *MessageProcessor) BuildUserAction(req ActionRequest) (*messages.ClientEvent, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	surface, ok := p.surfaces[req.SurfaceID]
	if !ok {
		return nil, &core.ActionError{SurfaceID: req.SurfaceID, ComponentID: req.ComponentID, Err: core.ErrSurfaceNotFound}
	}
	component, ok := surface.Component(req.ComponentID)
	if !ok {
		return nil, &core.ActionError{SurfaceID: req.SurfaceID, ComponentID: req.ComponentID, Err: core.ErrComponentNotFound}
	}
	action := component.Action()
	if action == nil {
		return nil, &core.ActionError{SurfaceID: req.SurfaceID, ComponentID: req.ComponentID, Err: core.ErrNoAction}
	}

	return p.buildAction(surface, action, req.ComponentID, req.ContextPath), nil
}

// BuildAction resolves an explicit action template against a surface's data
// model. It serves components whose action definition lives outside the
// component tree, such as host-level shortcuts.
func (p *MessageProcessor) BuildAction(surfaceID string, action *messages.Action, sourceComponentID string, contextPath datamodel.Path) (*messages.ClientEvent, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	surface, ok := p.surfaces[surfaceID]
	if !ok {
		return nil, &core.ActionError{SurfaceID: surfaceID, ComponentID: sourceComponentID, Err: core.ErrSurfaceNotFound}
	}
	return p.buildAction(surface, action, sourceComponentID, contextPath), nil
}

func (p *MessageProcessor) buildAction(surface *Surface, action *messages.Action, sourceComponentID string, contextPath datamodel.Path) *messages.ClientEvent {
	var context map[string]any
	if len(action.Context) > 0 {
		context = make(map[string]any, len(action.Context))
		for _, entry := range action.Context {
			if resolved, ok := surface.data.Resolve(entry.Value, contextPath); ok {
				context[entry.Key] = resolved
			}
		}
	}

	return messages.NewUserActionEvent(&messages.UserAction{
		SurfaceID:         surface.ID(),
		Name:              action.Name,
		SourceComponentID: sourceComponentID,
		Timestamp:         p.now().UTC().Format(time.RFC3339),
		Context:           context,
	})
}
