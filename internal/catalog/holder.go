package catalog

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/rcliao/paper-catalog/internal/model"
)

// Holder keeps the current document for concurrent readers. A reload swaps
// the whole document; readers never see a partial one.
type Holder struct {
	mu       sync.RWMutex
	doc      *model.Document
	err      error
	loadedAt time.Time
	source   Source
	logger   *zap.Logger
}

// NewHolder returns an empty Holder that loads from src.
func NewHolder(src Source, logger *zap.Logger) *Holder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Holder{source: src, logger: logger}
}

// Reload loads the document from the source. On failure the previous
// document, if any, stays current and the error is remembered.
func (h *Holder) Reload(ctx context.Context) error {
	start := time.Now()
	doc, err := h.source.Load(ctx)

	h.mu.Lock()
	defer h.mu.Unlock()
	if err != nil {
		h.err = err
		h.logger.Error("load papers data", zap.String("source", h.source.String()), zap.Error(err))
		return err
	}
	h.doc = doc
	h.err = nil
	h.loadedAt = time.Now()
	h.logger.Info("loaded papers data",
		zap.String("source", h.source.String()),
		zap.Int("years", len(doc.PastPapers)),
		zap.Int("papers", doc.PaperCount()),
		zap.Int("specimens", len(doc.SpecimenPapers)),
		zap.Duration("took", time.Since(start)))
	return nil
}

// Set replaces the current document directly.
func (h *Holder) Set(doc *model.Document) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.doc = doc
	h.err = nil
	h.loadedAt = time.Now()
}

// Current returns the current document, or the last load error when no
// document was ever loaded.
func (h *Holder) Current() (*model.Document, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.doc == nil {
		if h.err != nil {
			return nil, h.err
		}
		return nil, ErrLoad
	}
	return h.doc, nil
}

// LoadedAt returns when the current document was loaded.
func (h *Holder) LoadedAt() time.Time {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.loadedAt
}

// Source returns the holder's source.
func (h *Holder) Source() Source {
	return h.source
}
