package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/a2ui/go-sdk/pkg/core/messages"
	"github.com/a2ui/go-sdk/pkg/datamodel"
	"github.com/a2ui/go-sdk/pkg/processor"
)

// DefaultCSS is the default stylesheet for rendered A2UI components
const DefaultCSS = `
.a2ui-surface { display: flex; flex-direction: column; gap: 16px; }
.a2ui-card { background: white; border-radius: 16px; box-shadow: 0 4px 12px rgba(0, 0, 0, 0.15); overflow: hidden; }
.a2ui-row { display: flex; flex-direction: row; gap: 16px; align-items: center; padding: 12px; }
.a2ui-column { display: flex; flex-direction: column; gap: 4px; }
.a2ui-list { display: flex; flex-direction: column; gap: 12px; }
.a2ui-image { width: 150px; height: 120px; border-radius: 12px; object-fit: cover; }
.a2ui-title { font-weight: 600; font-size: 16px; margin: 0; }
.a2ui-text { font-size: 14px; margin: 0; }
.a2ui-heading { font-weight: 600; margin: 0; }
.a2ui-button { border: none; padding: 8px 16px; border-radius: 20px; font-weight: 600; cursor: pointer; }
.a2ui-divider { border: none; border-top: 1px solid #e0e0e0; margin: 8px 0; }
.a2ui-field { display: flex; flex-direction: column; gap: 4px; }
`

// Config contains configuration options for the HTML renderer
type Config struct {
	// BaseURL resolves relative image URLs
	BaseURL string
}

// HTMLRenderer renders surfaces to HTML strings through the processor's
// query API.
type HTMLRenderer struct {
	processor *processor.MessageProcessor
	baseURL   string
}

// NewHTML creates an HTML renderer over the given processor
func NewHTML(p *processor.MessageProcessor, config Config) *HTMLRenderer {
	return &HTMLRenderer{
		processor: p,
		baseURL:   strings.TrimSuffix(config.BaseURL, "/"),
	}
}

// CSS returns the default stylesheet
func (r *HTMLRenderer) CSS() string {
	return DefaultCSS
}

// RenderAll renders every surface in creation order
func (r *HTMLRenderer) RenderAll() string {
	var b strings.Builder
	for _, id := range r.processor.SurfaceIDs() {
		b.WriteString(r.RenderSurface(id))
	}
	return b.String()
}

// RenderSurface renders one surface to HTML. An unknown surface renders to
// the empty string.
func (r *HTMLRenderer) RenderSurface(surfaceID string) string {
	surface, ok := r.processor.Surface(surfaceID)
	if !ok {
		return ""
	}

	var b strings.Builder
	b.WriteString(`<div class="a2ui-surface">`)
	if root, ok := surface.Root(); ok {
		r.renderComponent(&b, surface, root, "")
	} else {
		// No declared root: render components nothing else references
		referenced := make(map[string]bool)
		for _, comp := range surface.Components() {
			for _, child := range comp.ChildIDs() {
				referenced[child] = true
			}
		}
		for _, comp := range surface.Components() {
			if !referenced[comp.ID] {
				r.renderComponent(&b, surface, comp, "")
			}
		}
	}
	b.WriteString(`</div>`)
	return b.String()
}

func (r *HTMLRenderer) renderComponent(b *strings.Builder, surface *processor.Surface, comp *messages.Component, context datamodel.Path) {
	data := surface.Data()
	switch props := comp.Props.(type) {
	case *messages.TextProps:
		class := "a2ui-text"
		if strings.HasPrefix(props.UsageHint, "h") {
			class = "a2ui-title"
		}
		fmt.Fprintf(b, `<p class="%s">%s</p>`, class, html.EscapeString(data.ResolveString(props.Text, context, "")))

	case *messages.HeadingProps:
		level := props.Level
		if level < 1 {
			level = 2
		}
		if level > 6 {
			level = 6
		}
		fmt.Fprintf(b, `<h%d class="a2ui-heading">%s</h%d>`, level, html.EscapeString(data.ResolveString(props.Text, context, "")), level)

	case *messages.ImageProps:
		src := data.ResolveString(props.URL, context, "")
		if strings.HasPrefix(src, "/") {
			src = r.baseURL + src
		}
		fmt.Fprintf(b, `<img src="%s" alt="%s" class="a2ui-image" />`,
			html.EscapeString(src), html.EscapeString(data.ResolveString(props.Alt, context, "")))

	case *messages.CardProps:
		b.WriteString(`<div class="a2ui-card">`)
		r.renderChildByID(b, surface, props.Child, context)
		b.WriteString(`</div>`)

	case *messages.RowProps:
		b.WriteString(`<div class="a2ui-row">`)
		r.renderChildren(b, surface, props.Children, context)
		b.WriteString(`</div>`)

	case *messages.ColumnProps:
		b.WriteString(`<div class="a2ui-column">`)
		r.renderChildren(b, surface, props.Children, context)
		b.WriteString(`</div>`)

	case *messages.ListProps:
		b.WriteString(`<div class="a2ui-list">`)
		r.renderChildren(b, surface, props.Children, context)
		b.WriteString(`</div>`)

	case *messages.ButtonProps:
		b.WriteString(`<button class="a2ui-button">`)
		if props.Child != "" {
			r.renderChildByID(b, surface, props.Child, context)
		} else {
			b.WriteString(html.EscapeString(data.ResolveString(props.Label, context, "Button")))
		}
		b.WriteString(`</button>`)

	case *messages.DividerProps:
		b.WriteString(`<hr class="a2ui-divider" />`)

	case *messages.TextFieldProps:
		fmt.Fprintf(b, `<label class="a2ui-field">%s<input type="text" value="%s" /></label>`,
			html.EscapeString(data.ResolveString(props.Label, context, "")),
			html.EscapeString(data.ResolveString(props.Text, context, "")))

	case *messages.CheckBoxProps:
		checked := ""
		if data.ResolveString(props.Value, context, "") == "true" {
			checked = " checked"
		}
		fmt.Fprintf(b, `<label class="a2ui-field"><input type="checkbox"%s />%s</label>`,
			checked, html.EscapeString(data.ResolveString(props.Label, context, "")))

	case *messages.SliderProps:
		fmt.Fprintf(b, `<input type="range" min="%v" max="%v" value="%s" />`,
			props.MinValue, props.MaxValue, html.EscapeString(data.ResolveString(props.Value, context, "0")))
	}
}

// renderChildren renders a container's children: the explicit list in order,
// then the template expanded once per element of the bound sequence with the
// element's path as the child's data context.
func (r *HTMLRenderer) renderChildren(b *strings.Builder, surface *processor.Surface, children messages.Children, context datamodel.Path) {
	for _, childID := range children.ExplicitList {
		r.renderChildByID(b, surface, childID, context)
	}

	template := children.Template
	if template == nil || template.ComponentID == "" {
		return
	}
	binding := datamodel.Path(template.DataBinding).Resolve(context)
	bound, ok := surface.Data().Get(binding)
	if !ok {
		return
	}
	items, ok := bound.([]any)
	if !ok {
		return
	}
	for i := range items {
		r.renderChildByID(b, surface, template.ComponentID, binding.Index(i))
	}
}

func (r *HTMLRenderer) renderChildByID(b *strings.Builder, surface *processor.Surface, childID string, context datamodel.Path) {
	if childID == "" {
		return
	}
	if child, ok := surface.Component(childID); ok {
		r.renderComponent(b, surface, child, context)
	}
}
