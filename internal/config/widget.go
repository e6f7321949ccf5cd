package config

// WidgetOptions are the construction options of the text widget. Values are
// copied, never shared, so a resolved set cannot change under the widget.
type WidgetOptions struct {
	LineNumbers        bool
	LineWrapping       bool
	StyleActiveLine    bool
	ViewportMargin     int
	ScrollbarStyle     string // "native" or "overlay"
	DragDrop           bool
	SelectionsMayTouch bool
	Mode               string
	Theme              string
	TabWidth           int
}

// WidgetOverrides is the partial form read from the [widget] table and from
// flags. A nil field keeps the default.
type WidgetOverrides struct {
	LineNumbers        *bool   `toml:"line_numbers"`
	LineWrapping       *bool   `toml:"line_wrapping"`
	StyleActiveLine    *bool   `toml:"style_active_line"`
	ViewportMargin     *int    `toml:"viewport_margin"`
	ScrollbarStyle     *string `toml:"scrollbar_style"`
	DragDrop           *bool   `toml:"drag_drop"`
	SelectionsMayTouch *bool   `toml:"selections_may_touch"`
	Mode               *string `toml:"mode"`
	Theme              *string `toml:"theme"`
	TabWidth           *int    `toml:"tab_width"`
}

// DefaultWidgetOptions returns the options a markdown editor starts with.
func DefaultWidgetOptions() WidgetOptions {
	return WidgetOptions{
		LineNumbers:        true,
		LineWrapping:       true,
		StyleActiveLine:    true,
		ViewportMargin:     DefaultViewportMargin,
		ScrollbarStyle:     "native",
		DragDrop:           true,
		SelectionsMayTouch: false,
		Mode:               "markdown",
		Theme:              "default",
		TabWidth:           DefaultTabWidth,
	}
}

// Merge returns o with every set field of ov applied. Neither argument is
// modified. Invalid numeric overrides are ignored.
func (o WidgetOptions) Merge(ov WidgetOverrides) WidgetOptions {
	if ov.LineNumbers != nil {
		o.LineNumbers = *ov.LineNumbers
	}
	if ov.LineWrapping != nil {
		o.LineWrapping = *ov.LineWrapping
	}
	if ov.StyleActiveLine != nil {
		o.StyleActiveLine = *ov.StyleActiveLine
	}
	if ov.ViewportMargin != nil && *ov.ViewportMargin >= 0 {
		o.ViewportMargin = *ov.ViewportMargin
	}
	if ov.ScrollbarStyle != nil && (*ov.ScrollbarStyle == "native" || *ov.ScrollbarStyle == "overlay") {
		o.ScrollbarStyle = *ov.ScrollbarStyle
	}
	if ov.DragDrop != nil {
		o.DragDrop = *ov.DragDrop
	}
	if ov.SelectionsMayTouch != nil {
		o.SelectionsMayTouch = *ov.SelectionsMayTouch
	}
	if ov.Mode != nil && *ov.Mode != "" {
		o.Mode = *ov.Mode
	}
	if ov.Theme != nil && *ov.Theme != "" {
		o.Theme = *ov.Theme
	}
	if ov.TabWidth != nil && *ov.TabWidth > 0 {
		o.TabWidth = *ov.TabWidth
	}
	return o
}

// Overlay combines two override sets; fields set in top win.
func (base WidgetOverrides) Overlay(top WidgetOverrides) WidgetOverrides {
	if top.LineNumbers != nil {
		base.LineNumbers = top.LineNumbers
	}
	if top.LineWrapping != nil {
		base.LineWrapping = top.LineWrapping
	}
	if top.StyleActiveLine != nil {
		base.StyleActiveLine = top.StyleActiveLine
	}
	if top.ViewportMargin != nil {
		base.ViewportMargin = top.ViewportMargin
	}
	if top.ScrollbarStyle != nil {
		base.ScrollbarStyle = top.ScrollbarStyle
	}
	if top.DragDrop != nil {
		base.DragDrop = top.DragDrop
	}
	if top.SelectionsMayTouch != nil {
		base.SelectionsMayTouch = top.SelectionsMayTouch
	}
	if top.Mode != nil {
		base.Mode = top.Mode
	}
	if top.Theme != nil {
		base.Theme = top.Theme
	}
	if top.TabWidth != nil {
		base.TabWidth = top.TabWidth
	}
	return base
}
