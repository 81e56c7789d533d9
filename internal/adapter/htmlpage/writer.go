package htmlpage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/couchcryptid/nom-chart/internal/chart"
	"github.com/couchcryptid/nom-chart/internal/fileutil"
)

// Writer saves the rendered page to a file.
type Writer struct {
	path      string
	plotlyURL string
	logger    *slog.Logger
}

// NewWriter creates a Writer targeting path.
func NewWriter(path, plotlyURL string, logger *slog.Logger) *Writer {
	return &Writer{path: path, plotlyURL: plotlyURL, logger: logger}
}

// Name identifies the output in logs and metrics.
func (w *Writer) Name() string { return "html" }

// Emit renders fig and replaces the output file atomically.
func (w *Writer) Emit(_ context.Context, fig *chart.Figure) error {
	page, err := Render(fig, w.plotlyURL)
	if err != nil {
		return err
	}
	if err := fileutil.WriteAtomic(w.path, page); err != nil {
		return fmt.Errorf("write html: %w", err)
	}
	w.logger.Info("html chart written", "path", w.path, "bytes", len(page))
	return nil
}
