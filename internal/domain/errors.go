package domain

import "errors"

var (
	// ErrDataLoad means the input table is missing, unreadable, or malformed.
	ErrDataLoad = errors.New("data load failed")

	// ErrMissingColumn means a required column is absent from the header row.
	ErrMissingColumn = errors.New("required column missing")

	// ErrMissingOutlier means no row carries the outlier label.
	ErrMissingOutlier = errors.New("outlier row not found")

	// ErrAmbiguousOutlier means more than one row carries the outlier label.
	ErrAmbiguousOutlier = errors.New("outlier label matches more than one row")

	// ErrOutputWrite means a chart output could not be written.
	ErrOutputWrite = errors.New("output write failed")

	// ErrDisplayUnavailable means no interactive viewer could show the chart.
	ErrDisplayUnavailable = errors.New("display unavailable")
)
