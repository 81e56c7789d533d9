// Package snapshot renders a static PNG of a migration figure with gonum/plot.
// It approximates the interactive chart: same traces, colors, zero line,
// caption, and pointer, without hover behaviour.
package snapshot

import (
	"bytes"
	"context"
	"fmt"
	"image/color"
	"log/slog"
	"strconv"
	"strings"

	"github.com/couchcryptid/nom-chart/internal/chart"
	"github.com/couchcryptid/nom-chart/internal/fileutil"
	"github.com/dustin/go-humanize"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Default image size.
const (
	DefaultWidth  = 10 * vg.Inch
	DefaultHeight = 6 * vg.Inch
)

// Writer saves a PNG rendering of the figure.
type Writer struct {
	path   string
	width  vg.Length
	height vg.Length
	logger *slog.Logger
}

// NewWriter creates a Writer targeting path at the default size.
func NewWriter(path string, logger *slog.Logger) *Writer {
	return &Writer{path: path, width: DefaultWidth, height: DefaultHeight, logger: logger}
}

// Name identifies the output in logs and metrics.
func (w *Writer) Name() string { return "png" }

// Emit renders fig and replaces the output file atomically.
func (w *Writer) Emit(_ context.Context, fig *chart.Figure) error {
	p, err := Plot(fig)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(w.width, w.height, "png")
	if err != nil {
		return fmt.Errorf("create png writer: %w", err)
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	if err := fileutil.WriteAtomic(w.path, buf.Bytes()); err != nil {
		return fmt.Errorf("write png: %w", err)
	}
	w.logger.Info("png chart written", "path", w.path, "bytes", buf.Len())
	return nil
}

// Plot builds the gonum plot for fig. Categories map to x = 0..n-1 in
// figure order.
func Plot(fig *chart.Figure) (*plot.Plot, error) {
	cats := fig.Categories()
	xOf := make(map[string]float64, len(cats))
	for i, c := range cats {
		xOf[c] = float64(i)
	}

	p := plot.New()
	p.Title.Text = fig.PlainTitle()
	p.X.Label.Text = fig.Layout.XAxis.Title.Text
	p.Y.Label.Text = fig.Layout.YAxis.Title.Text
	p.Y.Tick.Marker = siTicks{}
	p.BackgroundColor = parseColor(fig.Layout.PlotBGColor)
	p.NominalX(cats...)

	grid := plotter.NewGrid()
	grid.Vertical.Color = nil
	grid.Horizontal.Color = parseColor(fig.Layout.YAxis.GridColor)
	p.Add(grid)

	if zero, ok := fig.ZeroLine(); ok {
		l, err := plotter.NewLine(plotter.XYs{{X: xOf[zero.X0], Y: 0}, {X: xOf[zero.X1], Y: 0}})
		if err != nil {
			return nil, fmt.Errorf("zero line: %w", err)
		}
		l.LineStyle.Color = parseColor(zero.Line.Color)
		l.LineStyle.Width = vg.Points(zero.Line.Width)
		p.Add(l)
	}

	for _, tr := range fig.Data {
		if len(tr.X) == 0 {
			continue
		}
		xys := make(plotter.XYs, len(tr.X))
		for i := range tr.X {
			xys[i] = plotter.XY{X: xOf[tr.X[i]], Y: tr.Y[i]}
		}

		switch tr.Mode {
		case "lines":
			l, err := plotter.NewLine(xys)
			if err != nil {
				return nil, fmt.Errorf("trace %s: %w", tr.Name, err)
			}
			l.LineStyle.Color = parseColor(tr.Line.Color)
			l.LineStyle.Width = vg.Points(tr.Line.Width)
			p.Add(l)
		case "markers":
			s, err := plotter.NewScatter(xys)
			if err != nil {
				return nil, fmt.Errorf("trace %s: %w", tr.Name, err)
			}
			s.GlyphStyle.Shape = draw.CircleGlyph{}
			s.GlyphStyle.Color = parseColor(tr.Marker.Color)
			s.GlyphStyle.Radius = vg.Points(tr.Marker.Size / 2)
			p.Add(s)
		}
	}

	if err := addAnnotations(p, fig, xOf); err != nil {
		return nil, err
	}
	return p, nil
}

// addAnnotations draws data-space arrows as plain segments and places the
// outlier caption under the arrow's far end. Paper-space notes without a
// category anchor are appended to the x-axis label.
func addAnnotations(p *plot.Plot, fig *chart.Figure, xOf map[string]float64) error {
	var (
		captionX, captionY float64
		haveArrow          bool
	)
	for _, a := range fig.Layout.Annotations {
		if !a.ShowArrow || a.XRef != "x" || a.YRef != "y" {
			continue
		}
		x, _ := a.X.(string)
		ax, _ := a.AX.(string)
		y, yok := a.Y.(float64)
		ay, ayok := a.AY.(float64)
		if !yok || !ayok {
			continue
		}
		l, err := plotter.NewLine(plotter.XYs{{X: xOf[ax], Y: ay}, {X: xOf[x], Y: y}})
		if err != nil {
			return fmt.Errorf("arrow: %w", err)
		}
		l.LineStyle.Color = parseColor(a.ArrowColor)
		l.LineStyle.Width = vg.Points(a.ArrowWidth)
		p.Add(l)
		captionX, captionY, haveArrow = xOf[x], y, true
	}

	for _, a := range fig.Layout.Annotations {
		if a.Text == "" {
			continue
		}
		if a.XRef == "paper" {
			p.X.Label.Text += "\n" + a.Text
			continue
		}
		x, _ := a.X.(string)
		pos := plotter.XY{X: xOf[x], Y: captionY}
		if !haveArrow || captionX != xOf[x] {
			pos.Y = 0
		}
		labels, err := plotter.NewLabels(plotter.XYLabels{XYs: plotter.XYs{pos}, Labels: []string{a.Text}})
		if err != nil {
			return fmt.Errorf("caption: %w", err)
		}
		for i := range labels.TextStyle {
			if a.Font != nil {
				labels.TextStyle[i].Color = parseColor(a.Font.Color)
			}
			labels.TextStyle[i].XAlign = text.XCenter
			labels.TextStyle[i].YAlign = text.YTop
		}
		p.Add(labels)
	}
	return nil
}

// siTicks labels the default ticks with SI prefixes ("20k"), matching the
// "~s" format of the interactive chart.
type siTicks struct{}

func (siTicks) Ticks(lo, hi float64) []plot.Tick {
	ticks := plot.DefaultTicks{}.Ticks(lo, hi)
	for i := range ticks {
		if ticks[i].Label != "" {
			ticks[i].Label = siLabel(ticks[i].Value)
		}
	}
	return ticks
}

func siLabel(v float64) string {
	return strings.ReplaceAll(humanize.SIWithDigits(v, 1, ""), " ", "")
}

var namedColors = map[string]color.Color{
	"white": color.White,
	"black": color.Black,
}

// parseColor accepts "#rrggbb" and the named colors used by chart defaults.
// Anything else falls back to black.
func parseColor(s string) color.Color {
	if c, ok := namedColors[strings.ToLower(s)]; ok {
		return c
	}
	hex, ok := strings.CutPrefix(s, "#")
	if !ok || len(hex) != 6 {
		return color.Black
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.Black
	}
	r, g, b := uint8(v>>16), uint8(v>>8), uint8(v) //nolint:gosec // masked by 24-bit parse
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
