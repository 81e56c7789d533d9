package chart

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Trace names identify the three series of a migration figure.
const (
	TraceTrend   = "trend"
	TraceYears   = "years"
	TraceOutlier = "outlier"
)

// Figure is a plotly.js figure: data traces plus layout. It is built once by
// Build and treated as read-only by every consumer.
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

// Trace is a scatter trace drawn as lines, markers, or both.
type Trace struct {
	Type          string      `json:"type"`
	Name          string      `json:"name"`
	X             []string    `json:"x"`
	Y             []float64   `json:"y"`
	Mode          string      `json:"mode"`
	Line          *Line       `json:"line,omitempty"`
	Marker        *Marker     `json:"marker,omitempty"`
	HoverInfo     string      `json:"hoverinfo,omitempty"`
	HoverTemplate string      `json:"hovertemplate,omitempty"`
	HoverLabel    *HoverLabel `json:"hoverlabel,omitempty"`
	ShowLegend    bool        `json:"showlegend"`
}

// Line styles a trace line or a shape outline.
type Line struct {
	Color string  `json:"color"`
	Width float64 `json:"width"`
}

// Marker styles the points of a markers trace.
type Marker struct {
	Size  float64 `json:"size"`
	Color string  `json:"color"`
	Line  *Line   `json:"line,omitempty"`
}

// HoverLabel sets the hover box background of a trace.
type HoverLabel struct {
	BGColor string `json:"bgcolor"`
}

// Font sets text color and size.
type Font struct {
	Color string  `json:"color,omitempty"`
	Size  float64 `json:"size,omitempty"`
}

// Shape is a layout shape. Only straight lines are produced here.
type Shape struct {
	Type string  `json:"type"`
	XRef string  `json:"xref"`
	YRef string  `json:"yref"`
	X0   string  `json:"x0"`
	X1   string  `json:"x1"`
	Y0   float64 `json:"y0"`
	Y1   float64 `json:"y1"`
	Line Line    `json:"line"`
}

// Annotation is a layout annotation. X and Y hold either a category label or
// a number depending on XRef and YRef ("x"/"y" for data space, "paper" for
// fractions of the plot area).
type Annotation struct {
	X          any     `json:"x"`
	Y          any     `json:"y"`
	XRef       string  `json:"xref"`
	YRef       string  `json:"yref"`
	AX         any     `json:"ax,omitempty"`
	AY         any     `json:"ay,omitempty"`
	AXRef      string  `json:"axref,omitempty"`
	AYRef      string  `json:"ayref,omitempty"`
	Text       string  `json:"text,omitempty"`
	ShowArrow  bool    `json:"showarrow"`
	ArrowColor string  `json:"arrowcolor,omitempty"`
	ArrowWidth float64 `json:"arrowwidth,omitempty"`
	ArrowHead  int     `json:"arrowhead,omitempty"`
	Font       *Font   `json:"font,omitempty"`
	Align      string  `json:"align,omitempty"`
	XAnchor    string  `json:"xanchor,omitempty"`
}

// Title is a figure or axis title.
type Title struct {
	Text    string  `json:"text"`
	X       float64 `json:"x,omitempty"`
	XAnchor string  `json:"xanchor,omitempty"`
	Font    *Font   `json:"font,omitempty"`
}

// Axis configures one layout axis.
type Axis struct {
	Title         Title    `json:"title"`
	Type          string   `json:"type,omitempty"`
	CategoryOrder string   `json:"categoryorder,omitempty"`
	CategoryArray []string `json:"categoryarray,omitempty"`
	Ticks         string   `json:"ticks,omitempty"`
	TickFormat    string   `json:"tickformat,omitempty"`
	GridColor     string   `json:"gridcolor,omitempty"`
	ZeroLine      *bool    `json:"zeroline,omitempty"`
	ShowSpikes    bool     `json:"showspikes"`
	SpikeMode     string   `json:"spikemode,omitempty"`
}

// Margin is the plot margin in pixels.
type Margin struct {
	L int `json:"l"`
	R int `json:"r"`
	T int `json:"t"`
	B int `json:"b"`
}

// Layout holds everything drawn outside the traces.
type Layout struct {
	Title       Title        `json:"title"`
	XAxis       Axis         `json:"xaxis"`
	YAxis       Axis         `json:"yaxis"`
	HoverMode   string       `json:"hovermode"`
	Margin      Margin       `json:"margin"`
	PlotBGColor string       `json:"plot_bgcolor"`
	Shapes      []Shape      `json:"shapes"`
	Annotations []Annotation `json:"annotations"`
}

// Trace returns the trace with the given name.
func (f *Figure) Trace(name string) (Trace, bool) {
	for _, tr := range f.Data {
		if tr.Name == name {
			return tr, true
		}
	}
	return Trace{}, false
}

// Categories returns the x-axis category order.
func (f *Figure) Categories() []string {
	return f.Layout.XAxis.CategoryArray
}

// ZeroLine returns the horizontal reference line at y=0.
func (f *Figure) ZeroLine() (Shape, bool) {
	for _, s := range f.Layout.Shapes {
		if s.Type == "line" && s.Y0 == 0 && s.Y1 == 0 {
			return s, true
		}
	}
	return Shape{}, false
}

// PlainTitle returns the title with plotly line breaks replaced by spaces.
func (f *Figure) PlainTitle() string {
	return strings.Join(strings.Fields(strings.ReplaceAll(f.Layout.Title.Text, "<br>", " ")), " ")
}

// JSON encodes the data and layout. Output is deterministic for a given figure.
func (f *Figure) JSON() (data, layout []byte, err error) {
	data, err = json.Marshal(f.Data)
	if err != nil {
		return nil, nil, fmt.Errorf("encode figure data: %w", err)
	}
	layout, err = json.Marshal(f.Layout)
	if err != nil {
		return nil, nil, fmt.Errorf("encode figure layout: %w", err)
	}
	return data, layout, nil
}
