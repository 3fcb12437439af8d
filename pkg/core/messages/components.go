package messages

import (
	"encoding/json"
	"fmt"
)

// ComponentKind identifies one of the component kinds in the A2UI v0.8 catalog
type ComponentKind string

// A2UI v0.8 component catalog - the kind set is closed per protocol version
const (
	ComponentCard      ComponentKind = "Card"
	ComponentRow       ComponentKind = "Row"
	ComponentColumn    ComponentKind = "Column"
	ComponentList      ComponentKind = "List"
	ComponentText      ComponentKind = "Text"
	ComponentHeading   ComponentKind = "Heading"
	ComponentImage     ComponentKind = "Image"
	ComponentButton    ComponentKind = "Button"
	ComponentDivider   ComponentKind = "Divider"
	ComponentTextField ComponentKind = "TextField"
	ComponentCheckBox  ComponentKind = "CheckBox"
	ComponentSlider    ComponentKind = "Slider"
)

// validComponentKinds is a map for O(1) lookup of valid component kinds
var validComponentKinds = map[ComponentKind]bool{
	ComponentCard:      true,
	ComponentRow:       true,
	ComponentColumn:    true,
	ComponentList:      true,
	ComponentText:      true,
	ComponentHeading:   true,
	ComponentImage:     true,
	ComponentButton:    true,
	ComponentDivider:   true,
	ComponentTextField: true,
	ComponentCheckBox:  true,
	ComponentSlider:    true,
}

// IsValidComponentKind checks if the given component kind is part of the catalog
func IsValidComponentKind(kind ComponentKind) bool {
	return validComponentKinds[kind]
}

// ComponentProps is implemented by the property struct of each component kind
type ComponentProps interface {
	// Kind returns the component kind the properties belong to
	Kind() ComponentKind

	// ChildIDs returns the ids of directly referenced child components, in order
	ChildIDs() []string
}

// Component is one node in a surface's UI tree. On the wire it is
// {"id": ..., "weight": ..., "component": {"Kind": {...props}}}; the single
// key of the component object selects the variant.
type Component struct {
	ID     string
	Weight float64
	Props  ComponentProps
}

// Kind returns the component's kind, or the empty string when no properties
// were decoded.
func (c *Component) Kind() ComponentKind {
	if c.Props == nil {
		return ""
	}
	return c.Props.Kind()
}

// ChildIDs returns the ids of the component's directly referenced children
func (c *Component) ChildIDs() []string {
	if c.Props == nil {
		return nil
	}
	return c.Props.ChildIDs()
}

// Action returns the action attached to the component, if any
func (c *Component) Action() *Action {
	if props, ok := c.Props.(*ButtonProps); ok {
		return props.Action
	}
	return nil
}

// Validate validates the component structure
func (c *Component) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("component id is required")
	}
	if c.Props == nil {
		return fmt.Errorf("component %s: properties are required", c.ID)
	}
	if action := c.Action(); action != nil {
		if err := action.Validate(); err != nil {
			return fmt.Errorf("component %s: %w", c.ID, err)
		}
	}
	return nil
}

// UnmarshalJSON parses a component from its wire form
func (c *Component) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID        string                     `json:"id"`
		Weight    float64                    `json:"weight"`
		Component map[string]json.RawMessage `json:"component"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to parse component: %w", err)
	}

	c.ID = raw.ID
	c.Weight = raw.Weight
	c.Props = nil

	if len(raw.Component) == 0 {
		return fmt.Errorf("component %s: missing component kind", raw.ID)
	}
	if len(raw.Component) > 1 {
		return fmt.Errorf("component %s: must contain exactly one kind, got %d", raw.ID, len(raw.Component))
	}

	for kind, propsData := range raw.Component {
		props, err := unmarshalProps(ComponentKind(kind), propsData)
		if err != nil {
			return fmt.Errorf("component %s: %w", raw.ID, err)
		}
		c.Props = props
	}
	return nil
}

// MarshalJSON serializes the component to its wire form
func (c Component) MarshalJSON() ([]byte, error) {
	if c.Props == nil {
		return nil, fmt.Errorf("component %s: properties are required", c.ID)
	}
	raw := struct {
		ID        string                           `json:"id"`
		Weight    float64                          `json:"weight,omitempty"`
		Component map[ComponentKind]ComponentProps `json:"component"`
	}{
		ID:        c.ID,
		Weight:    c.Weight,
		Component: map[ComponentKind]ComponentProps{c.Props.Kind(): c.Props},
	}
	return json.Marshal(raw)
}

// unmarshalProps decodes the property struct for the given kind
func unmarshalProps(kind ComponentKind, data json.RawMessage) (ComponentProps, error) {
	var props ComponentProps
	switch kind {
	case ComponentCard:
		props = &CardProps{}
	case ComponentRow:
		props = &RowProps{}
	case ComponentColumn:
		props = &ColumnProps{}
	case ComponentList:
		props = &ListProps{}
	case ComponentText:
		props = &TextProps{}
	case ComponentHeading:
		props = &HeadingProps{}
	case ComponentImage:
		props = &ImageProps{}
	case ComponentButton:
		props = &ButtonProps{}
	case ComponentDivider:
		props = &DividerProps{}
	case ComponentTextField:
		props = &TextFieldProps{}
	case ComponentCheckBox:
		props = &CheckBoxProps{}
	case ComponentSlider:
		props = &SliderProps{}
	default:
		return nil, fmt.Errorf("unknown component kind %q", kind)
	}
	if err := json.Unmarshal(data, props); err != nil {
		return nil, fmt.Errorf("failed to parse %s properties: %w", kind, err)
	}
	return props, nil
}

// Children holds a container component's child references: either an explicit
// ordered list of component ids, or a template instantiated once per element
// of a data model sequence.
type Children struct {
	ExplicitList []string  `json:"explicitList,omitempty"`
	Template     *Template `json:"template,omitempty"`
}

// Template binds a child component to each element of the sequence at
// DataBinding. The referenced component is rendered once per element with its
// data context anchored at that element's path.
type Template struct {
	ComponentID string `json:"componentId"`
	DataBinding string `json:"dataBinding"`
}

// childIDs returns the referenced component ids for cycle and reachability checks
func (ch Children) childIDs() []string {
	ids := make([]string, 0, len(ch.ExplicitList)+1)
	ids = append(ids, ch.ExplicitList...)
	if ch.Template != nil && ch.Template.ComponentID != "" {
		ids = append(ids, ch.Template.ComponentID)
	}
	return ids
}

// CardProps holds the properties of a Card component
type CardProps struct {
	Child string `json:"child,omitempty"`
}

func (*CardProps) Kind() ComponentKind { return ComponentCard }

func (p *CardProps) ChildIDs() []string {
	if p.Child == "" {
		return nil
	}
	return []string{p.Child}
}

// RowProps holds the properties of a Row component
type RowProps struct {
	Children     Children `json:"children"`
	Alignment    string   `json:"alignment,omitempty"`
	Distribution string   `json:"distribution,omitempty"`
}

func (*RowProps) Kind() ComponentKind  { return ComponentRow }
func (p *RowProps) ChildIDs() []string { return p.Children.childIDs() }

// ColumnProps holds the properties of a Column component
type ColumnProps struct {
	Children     Children `json:"children"`
	Alignment    string   `json:"alignment,omitempty"`
	Distribution string   `json:"distribution,omitempty"`
}

func (*ColumnProps) Kind() ComponentKind  { return ComponentColumn }
func (p *ColumnProps) ChildIDs() []string { return p.Children.childIDs() }

// ListProps holds the properties of a List component
type ListProps struct {
	Children  Children `json:"children"`
	Direction string   `json:"direction,omitempty"`
	Alignment string   `json:"alignment,omitempty"`
}

func (*ListProps) Kind() ComponentKind  { return ComponentList }
func (p *ListProps) ChildIDs() []string { return p.Children.childIDs() }

// TextProps holds the properties of a Text component
type TextProps struct {
	Text      Value  `json:"text"`
	UsageHint string `json:"usageHint,omitempty"`
}

func (*TextProps) Kind() ComponentKind { return ComponentText }
func (*TextProps) ChildIDs() []string  { return nil }

// HeadingProps holds the properties of a Heading component
type HeadingProps struct {
	Text  Value `json:"text"`
	Level int   `json:"level,omitempty"`
}

func (*HeadingProps) Kind() ComponentKind { return ComponentHeading }
func (*HeadingProps) ChildIDs() []string  { return nil }

// ImageProps holds the properties of an Image component
type ImageProps struct {
	URL       Value  `json:"url"`
	Alt       Value  `json:"alt,omitempty"`
	UsageHint string `json:"usageHint,omitempty"`
}

func (*ImageProps) Kind() ComponentKind { return ComponentImage }
func (*ImageProps) ChildIDs() []string  { return nil }

// ButtonProps holds the properties of a Button component
type ButtonProps struct {
	Child   string  `json:"child,omitempty"`
	Label   Value   `json:"label,omitempty"`
	Primary bool    `json:"primary,omitempty"`
	Action  *Action `json:"action,omitempty"`
}

func (*ButtonProps) Kind() ComponentKind { return ComponentButton }

func (p *ButtonProps) ChildIDs() []string {
	if p.Child == "" {
		return nil
	}
	return []string{p.Child}
}

// DividerProps holds the properties of a Divider component
type DividerProps struct{}

func (*DividerProps) Kind() ComponentKind { return ComponentDivider }
func (*DividerProps) ChildIDs() []string  { return nil }

// TextFieldProps holds the properties of a TextField component. Text is
// typically a path value binding the field to the data model.
type TextFieldProps struct {
	Label            Value  `json:"label,omitempty"`
	Text             Value  `json:"text,omitempty"`
	FieldType        string `json:"type,omitempty"`
	ValidationRegexp string `json:"validationRegexp,omitempty"`
}

func (*TextFieldProps) Kind() ComponentKind { return ComponentTextField }
func (*TextFieldProps) ChildIDs() []string  { return nil }

// CheckBoxProps holds the properties of a CheckBox component
type CheckBoxProps struct {
	Label Value `json:"label,omitempty"`
	Value Value `json:"value,omitempty"`
}

func (*CheckBoxProps) Kind() ComponentKind { return ComponentCheckBox }
func (*CheckBoxProps) ChildIDs() []string  { return nil }

// SliderProps holds the properties of a Slider component
type SliderProps struct {
	Value    Value   `json:"value,omitempty"`
	MinValue float64 `json:"minValue,omitempty"`
	MaxValue float64 `json:"maxValue,omitempty"`
}

func (*SliderProps) Kind() ComponentKind { return ComponentSlider }
func (*SliderProps) ChildIDs() []string  { return nil }
