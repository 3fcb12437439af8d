package processor

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/a2ui/go-sdk/pkg/core"
	"github.com/a2ui/go-sdk/pkg/core/messages"
	"github.com/a2ui/go-sdk/pkg/datamodel"
)

// Diagnostic records one skipped message from a batch. Diagnostics are
// protocol warnings, not engine failures: the batch's remaining messages
// still apply.
type Diagnostic struct {
	// Index is the message's position within the batch
	Index int

	// Kind is the message kind, or MessageKindUnknown
	Kind messages.MessageKind

	// SurfaceID is the surface the message addressed, when known
	SurfaceID string

	// Err describes why the message was skipped
	Err error
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("message %d (%s, surface %q) skipped: %v", d.Index, d.Kind, d.SurfaceID, d.Err)
}

// Option configures a MessageProcessor
type Option func(*MessageProcessor)

// WithLogger sets the logger used for diagnostics
func WithLogger(logger logrus.FieldLogger) Option {
	return func(p *MessageProcessor) {
		p.logger = logger
	}
}

// WithClock sets the time source used to stamp outbound user actions
func WithClock(now func() time.Time) Option {
	return func(p *MessageProcessor) {
		p.now = now
	}
}

// MessageProcessor applies server-issued message batches to a store of
// surfaces and answers queries over them. Construct one per conversation
// session and discard it on full reset.
type MessageProcessor struct {
	mu       sync.RWMutex
	surfaces map[string]*Surface
	order    []string

	logger logrus.FieldLogger
	now    func() time.Time

	subMu   sync.Mutex
	subs    map[int]func(surfaceID string)
	nextSub int
}

// New creates a message processor with an empty surface store
func New(opts ...Option) *MessageProcessor {
	p := &MessageProcessor{
		surfaces: make(map[string]*Surface),
		logger:   logrus.StandardLogger(),
		now:      time.Now,
		subs:     make(map[int]func(string)),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ProcessMessages applies an ordered batch of messages to the surface store.
// Invalid messages are skipped and reported as diagnostics; valid siblings in
// the same batch still apply. At most one call may be active at a time per
// processor.
func (p *MessageProcessor) ProcessMessages(batch []*messages.Message) []Diagnostic {
	var diagnostics []Diagnostic
	changed := make(map[string]bool)

	p.mu.Lock()
	for i, msg := range batch {
		if err := p.apply(msg, changed); err != nil {
			diagnostics = append(diagnostics, Diagnostic{
				Index:     i,
				Kind:      msg.Kind,
				SurfaceID: msg.TargetSurfaceID(),
				Err:       err,
			})
		}
	}
	p.mu.Unlock()

	for _, d := range diagnostics {
		p.logger.WithFields(logrus.Fields{
			"index":     d.Index,
			"kind":      d.Kind,
			"surfaceId": d.SurfaceID,
		}).Warnf("skipping message: %v", d.Err)
	}

	p.notify(changed)
	return diagnostics
}

// ProcessJSON parses a JSON array of messages and applies it as a batch.
// Elements that fail to parse are skipped with a diagnostic, like any other
// invalid message.
func (p *MessageProcessor) ProcessJSON(data []byte) []Diagnostic {
	var rawBatch []json.RawMessage
	if err := json.Unmarshal(data, &rawBatch); err != nil {
		diag := Diagnostic{Index: -1, Kind: messages.MessageKindUnknown, Err: fmt.Errorf("failed to parse message batch: %w", err)}
		p.logger.Warnf("skipping batch: %v", diag.Err)
		return []Diagnostic{diag}
	}

	batch := make([]*messages.Message, 0, len(rawBatch))
	var parseDiags []Diagnostic
	for i, raw := range rawBatch {
		msg, err := messages.MessageFromJSON(raw)
		if err != nil {
			parseDiags = append(parseDiags, Diagnostic{Index: i, Kind: messages.MessageKindUnknown, Err: err})
			p.logger.WithField("index", i).Warnf("skipping message: %v", err)
			continue
		}
		batch = append(batch, msg)
	}

	return append(parseDiags, p.ProcessMessages(batch)...)
}

// apply handles one message under the write lock
func (p *MessageProcessor) apply(msg *messages.Message, changed map[string]bool) error {
	if err := msg.Validate(); err != nil {
		return err
	}
	surfaceID := msg.TargetSurfaceID()

	switch msg.Kind {
	case messages.MessageKindBeginRendering:
		// A reused id is a fresh surface; prior state is discarded
		surface := newSurface(surfaceID)
		surface.catalogID = msg.BeginRendering.CatalogID
		surface.rootID = msg.BeginRendering.Root
		surface.styles = msg.BeginRendering.Styles
		if _, exists := p.surfaces[surfaceID]; !exists {
			p.order = append(p.order, surfaceID)
		}
		p.surfaces[surfaceID] = surface

	case messages.MessageKindSurfaceUpdate:
		surface, ok := p.surfaces[surfaceID]
		if !ok {
			return fmt.Errorf("%w: %s", core.ErrSurfaceNotFound, surfaceID)
		}
		if err := surface.applyComponents(msg.SurfaceUpdate.Components); err != nil {
			return err
		}

	case messages.MessageKindDataModelUpdate:
		surface, ok := p.surfaces[surfaceID]
		if !ok {
			return fmt.Errorf("%w: %s", core.ErrSurfaceNotFound, surfaceID)
		}
		update := msg.DataModelUpdate
		if len(update.Patch) > 0 {
			if err := surface.data.ApplyPatch(update.Patch); err != nil {
				return err
			}
		} else {
			surface.data.SetEntries(datamodel.Path(update.Path), update.Contents)
		}

	case messages.MessageKindDeleteSurface:
		if _, ok := p.surfaces[surfaceID]; !ok {
			return fmt.Errorf("%w: %s", core.ErrSurfaceNotFound, surfaceID)
		}
		delete(p.surfaces, surfaceID)
		for i, id := range p.order {
			if id == surfaceID {
				p.order = append(p.order[:i], p.order[i+1:]...)
				break
			}
		}
	}

	changed[surfaceID] = true
	return nil
}

// Surface returns a snapshot of the surface with the given id
func (p *MessageProcessor) Surface(id string) (*Surface, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	surface, ok := p.surfaces[id]
	if !ok {
		return nil, false
	}
	return surface.clone(), true
}

// Surfaces returns snapshots of all surfaces in creation order
func (p *MessageProcessor) Surfaces() []*Surface {
	p.mu.RLock()
	defer p.mu.RUnlock()
	result := make([]*Surface, 0, len(p.order))
	for _, id := range p.order {
		result = append(result, p.surfaces[id].clone())
	}
	return result
}

// SurfaceIDs returns the ids of all surfaces in creation order
func (p *MessageProcessor) SurfaceIDs() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]string(nil), p.order...)
}

// GetData reads the value at a path in a surface's data model. An unknown
// surface or an unbound path yields (nil, false).
func (p *MessageProcessor) GetData(surfaceID string, path datamodel.Path) (any, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	surface, ok := p.surfaces[surfaceID]
	if !ok {
		return nil, false
	}
	return surface.data.Get(path)
}

// ClearSurfaces removes every surface unconditionally. It is idempotent and
// may run at any time, including while a conversation turn is in flight; the
// store keeps no memory of past surfaces.
func (p *MessageProcessor) ClearSurfaces() {
	p.mu.Lock()
	cleared := p.order
	p.surfaces = make(map[string]*Surface)
	p.order = nil
	p.mu.Unlock()

	changed := make(map[string]bool, len(cleared))
	for _, id := range cleared {
		changed[id] = true
	}
	p.notify(changed)
}

// Subscribe registers a callback invoked once per changed surface after each
// batch. The returned function removes the subscription.
func (p *MessageProcessor) Subscribe(fn func(surfaceID string)) (unsubscribe func()) {
	p.subMu.Lock()
	id := p.nextSub
	p.nextSub++
	p.subs[id] = fn
	p.subMu.Unlock()

	return func() {
		p.subMu.Lock()
		delete(p.subs, id)
		p.subMu.Unlock()
	}
}

// notify invokes subscribers outside the store lock
func (p *MessageProcessor) notify(changed map[string]bool) {
	if len(changed) == 0 {
		return
	}
	p.subMu.Lock()
	subs := make([]func(string), 0, len(p.subs))
	for _, fn := range p.subs {
		subs = append(subs, fn)
	}
	p.subMu.Unlock()

	for surfaceID := range changed {
		for _, fn := range subs {
			fn(surfaceID)
		}
	}
}
