package chart

import (
	"fmt"

	"github.com/couchcryptid/nom-chart/internal/domain"
)

// Build maps rows onto an annotated migration figure. It performs no I/O.
//
// The outlier row is located first so that an empty table or a missing label
// fails before any geometry is derived.
func Build(rows []domain.Row, opts Options) (*Figure, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("chart options: %w", err)
	}

	outlier, err := domain.LocateOutlier(rows, opts.OutlierLabel)
	if err != nil {
		return nil, err
	}

	years := domain.Years(rows)
	values := domain.Values(rows)
	normal := domain.Partition(rows, opts.OutlierLabel)

	fig := &Figure{
		Data: []Trace{
			trendTrace(years, values, opts),
			markerTrace(TraceYears, domain.Years(normal), domain.Values(normal), opts.LineColor, opts),
			markerTrace(TraceOutlier, []string{outlier.FinancialYear}, []float64{outlier.NetMigrant}, opts.OutlierColor, opts),
		},
		Layout: layout(years, opts),
	}

	fig.Layout.Shapes = []Shape{{
		Type: "line",
		XRef: "x",
		YRef: "y",
		X0:   years[0],
		X1:   years[len(years)-1],
		Y0:   0,
		Y1:   0,
		Line: Line{Color: opts.ZeroLineColor, Width: opts.ZeroLineWidth},
	}}
	fig.Layout.Annotations = annotations(outlier, opts)

	return fig, nil
}

func trendTrace(years []string, values []float64, opts Options) Trace {
	return Trace{
		Type:       "scatter",
		Name:       TraceTrend,
		X:          years,
		Y:          values,
		Mode:       "lines",
		Line:       &Line{Color: opts.LineColor, Width: opts.LineWidth},
		HoverInfo:  "skip",
		ShowLegend: false,
	}
}

func markerTrace(name string, years []string, values []float64, color string, opts Options) Trace {
	return Trace{
		Type: "scatter",
		Name: name,
		X:    years,
		Y:    values,
		Mode: "markers",
		Marker: &Marker{
			Size:  opts.MarkerSize,
			Color: color,
			Line:  &Line{Color: opts.MarkerBorderColor, Width: opts.MarkerBorderWidth},
		},
		HoverTemplate: opts.HoverTemplate,
		HoverLabel:    &HoverLabel{BGColor: color},
		ShowLegend:    false,
	}
}

func annotations(outlier domain.Row, opts Options) []Annotation {
	year := outlier.FinancialYear
	return []Annotation{
		{
			X:         year,
			Y:         opts.CaptionY,
			XRef:      "x",
			YRef:      "paper",
			Text:      opts.Caption,
			ShowArrow: false,
			Font:      &Font{Color: opts.OutlierColor, Size: opts.CaptionSize},
			Align:     "center",
		},
		// Head sits ArrowLength below the point, tail on the point itself.
		// The arrow points down from the marker toward the caption.
		{
			X:          year,
			Y:          outlier.NetMigrant - opts.ArrowLength,
			XRef:       "x",
			YRef:       "y",
			AX:         year,
			AY:         outlier.NetMigrant,
			AXRef:      "x",
			AYRef:      "y",
			ShowArrow:  true,
			ArrowColor: opts.ArrowColor,
			ArrowWidth: opts.ArrowWidth,
			ArrowHead:  opts.ArrowHead,
		},
		{
			X:         0.0,
			Y:         opts.SourceNoteY,
			XRef:      "paper",
			YRef:      "paper",
			Text:      opts.SourceNote,
			ShowArrow: false,
			XAnchor:   "left",
			Font:      &Font{Color: opts.SourceNoteColor, Size: opts.SourceNoteSize},
		},
	}
}

func layout(years []string, opts Options) Layout {
	noZero := false
	return Layout{
		Title: Title{
			Text:    opts.Title,
			X:       0.5,
			XAnchor: "center",
			Font:    &Font{Size: opts.TitleSize},
		},
		XAxis: Axis{
			Title:         Title{Text: opts.XAxisTitle, Font: &Font{Size: opts.AxisTitleSize}},
			Type:          "category",
			CategoryOrder: "array",
			CategoryArray: years,
			Ticks:         "outside",
			ShowSpikes:    false,
			SpikeMode:     "across",
		},
		YAxis: Axis{
			Title:      Title{Text: opts.YAxisTitle, Font: &Font{Size: opts.AxisTitleSize}},
			TickFormat: opts.YTickFormat,
			GridColor:  opts.GridColor,
			ZeroLine:   &noZero,
			ShowSpikes: false,
		},
		HoverMode:   "closest",
		Margin:      opts.Margin,
		PlotBGColor: opts.PlotBackground,
	}
}
