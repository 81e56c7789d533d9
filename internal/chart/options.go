package chart

import (
	"errors"
	"fmt"
)

// Options holds every styling and annotation constant of the migration chart.
// DefaultOptions reproduces the published Victorian chart.
type Options struct {
	// OutlierLabel selects the highlighted financial year.
	OutlierLabel string
	// ArrowLength is the data-space distance between the outlier point and
	// the far end of the pointer arrow.
	ArrowLength float64

	Title         string
	TitleSize     float64
	XAxisTitle    string
	YAxisTitle    string
	AxisTitleSize float64
	YTickFormat   string
	GridColor     string

	LineColor         string
	LineWidth         float64
	MarkerSize        float64
	MarkerBorderColor string
	MarkerBorderWidth float64
	OutlierColor      string
	HoverTemplate     string

	ZeroLineColor string
	ZeroLineWidth float64

	Caption     string
	CaptionY    float64 // paper space, negative is below the plot area
	CaptionSize float64

	ArrowColor string
	ArrowWidth float64
	ArrowHead  int

	SourceNote      string
	SourceNoteY     float64 // paper space
	SourceNoteColor string
	SourceNoteSize  float64

	Margin         Margin
	PlotBackground string
}

// DefaultOptions returns the options used for the ABS Victoria chart.
func DefaultOptions() Options {
	return Options{
		OutlierLabel: "2020-21",
		ArrowLength:  12000,

		Title:         "Net Overseas Migration in Victoria<br>(2019–20 to 2023–24)",
		TitleSize:     26,
		XAxisTitle:    "Financial Year",
		YAxisTitle:    "Net Overseas Migrants",
		AxisTitleSize: 16,
		YTickFormat:   "~s",
		GridColor:     "#e8e8e8",

		LineColor:         "#0072B2",
		LineWidth:         3,
		MarkerSize:        8,
		MarkerBorderColor: "white",
		MarkerBorderWidth: 1.5,
		OutlierColor:      "#d62728",
		HoverTemplate:     "Year: %{x}<br>Net Migrants: %{y:,}<extra></extra>",

		ZeroLineColor: "#9e9e9e",
		ZeroLineWidth: 1,

		Caption:     "Significant drop due to COVID-19",
		CaptionY:    -0.12,
		CaptionSize: 12,

		ArrowColor: "black",
		ArrowWidth: 2,
		ArrowHead:  2,

		SourceNote:      "Source: Australian Bureau of Statistics",
		SourceNoteY:     -0.30,
		SourceNoteColor: "#6b6b6b",
		SourceNoteSize:  14,

		Margin:         Margin{L: 90, R: 40, T: 110, B: 190},
		PlotBackground: "white",
	}
}

// Validate reports options that would produce a broken figure.
func (o Options) Validate() error {
	if o.OutlierLabel == "" {
		return errors.New("outlier label is required")
	}
	if o.ArrowLength < 0 {
		return fmt.Errorf("arrow length must be non-negative, got %g", o.ArrowLength)
	}
	if o.LineWidth <= 0 || o.MarkerSize <= 0 {
		return errors.New("line width and marker size must be positive")
	}
	return nil
}
