// Package bridge connects live editor state to the external store.
//
// The Repository owns the in-memory collection of layout documents. It
// loads the collection from a single store key, folds edited placements
// back into section metadata on save or export, and never drives the
// editor: persistence only reads placement snapshots on demand.
//
// Storage layout: the whole collection is serialized under [KeyLayouts],
// and the last-selected layout id under [KeyActive]. Both are whole-value
// reads and writes.
package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	apperrors "github.com/hallforge/seatplan/pkg/errors"
	"github.com/hallforge/seatplan/pkg/layout"
	"github.com/hallforge/seatplan/pkg/observability"
	"github.com/hallforge/seatplan/pkg/store"
)

// Store keys.
const (
	// KeyLayouts holds the serialized array of layout documents.
	KeyLayouts = "seatplan:layouts"

	// KeyActive holds the id of the last-selected layout.
	KeyActive = "seatplan:active"
)

// Repository loads, selects, saves and exports layout documents.
type Repository struct {
	store  store.Store
	logger *log.Logger

	layouts  []layout.Layout
	activeID string
}

// NewRepository creates a repository over the given store.
// A nil logger falls back to log.Default().
func NewRepository(s store.Store, logger *log.Logger) *Repository {
	if logger == nil {
		logger = log.Default()
	}
	return &Repository{store: s, logger: logger}
}

// Load reads the layout collection from the store. Corrupt or non-array
// content is discarded in favor of an empty collection with a logged
// warning: bad storage must never crash the editor. Only transport-level
// store failures surface as errors.
func (r *Repository) Load(ctx context.Context) error {
	raw, err := r.store.Get(ctx, KeyLayouts)
	switch {
	case errors.Is(err, store.ErrNotFound):
		observability.Store().OnRead(ctx, KeyLayouts, false)
		r.layouts = nil
	case err != nil:
		return apperrors.Wrap(apperrors.ErrCodeStore, err, "read layouts")
	default:
		observability.Store().OnRead(ctx, KeyLayouts, true)
		var parsed []layout.Layout
		if jsonErr := json.Unmarshal([]byte(raw), &parsed); jsonErr != nil {
			r.logger.Warn("discarding corrupt layout storage", "err", jsonErr)
			observability.Store().OnCorrupt(ctx, KeyLayouts, jsonErr)
			r.layouts = nil
		} else {
			r.layouts = parsed
		}
	}

	// Restore the last selection if it still resolves.
	r.activeID = ""
	if id, err := r.store.Get(ctx, KeyActive); err == nil {
		if _, ok := r.Layout(id); ok {
			r.activeID = id
		}
	}
	return nil
}

// Layouts returns the loaded collection in stored order.
func (r *Repository) Layouts() []layout.Layout {
	return r.layouts
}

// Layout returns the layout with the given id.
func (r *Repository) Layout(id string) (layout.Layout, bool) {
	for _, l := range r.layouts {
		if l.ID == id {
			return l, true
		}
	}
	return layout.Layout{}, false
}

// Active returns the currently selected layout.
func (r *Repository) Active() (layout.Layout, bool) {
	if r.activeID == "" {
		return layout.Layout{}, false
	}
	return r.Layout(r.activeID)
}

// Select switches the active layout and returns it together with freshly
// hydrated placements. The caller is responsible for resetting its editing
// session against the returned placements. The selection is persisted as
// the last-selected id; a failed persist only logs, selection still works.
func (r *Repository) Select(ctx context.Context, id string) (layout.Layout, *layout.Placements, error) {
	l, ok := r.Layout(id)
	if !ok {
		return layout.Layout{}, nil, apperrors.New(apperrors.ErrCodeLayoutNotFound, "layout %q not found", id)
	}
	r.activeID = id

	if err := r.store.Set(ctx, KeyActive, id); err != nil {
		r.logger.Warn("persist last-selected layout", "id", id, "err", err)
	} else {
		observability.Store().OnWrite(ctx, KeyActive, len(id))
	}

	return l, layout.Hydrate(l.Sections), nil
}

// Save folds the live placements into the active layout, replaces it in
// the collection by id, and writes the whole collection back. Saving twice
// with no intervening edits produces byte-identical stored content.
func (r *Repository) Save(ctx context.Context, placements *layout.Placements) error {
	active, ok := r.Active()
	if !ok {
		return apperrors.New(apperrors.ErrCodeNoActiveLayout, "no layout selected")
	}

	folded := layout.Fold(active, placements)
	for i, l := range r.layouts {
		if l.ID == folded.ID {
			r.layouts[i] = folded
			break
		}
	}

	data, err := json.Marshal(r.layouts)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInternal, err, "encode layouts")
	}
	if err := r.store.Set(ctx, KeyLayouts, string(data)); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeStore, err, "write layouts")
	}
	observability.Store().OnWrite(ctx, KeyLayouts, len(data))
	return nil
}

// Export performs the same fold as Save but serializes the single updated
// document to w instead of touching the store. With no active layout it
// returns a user-facing error and writes nothing.
func (r *Repository) Export(w io.Writer, placements *layout.Placements) error {
	active, ok := r.Active()
	if !ok {
		return apperrors.New(apperrors.ErrCodeNoActiveLayout, "no layout selected")
	}

	folded := layout.Fold(active, placements)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(folded); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeExport, err, "encode layout %q", folded.ID)
	}
	return nil
}

// ExportFilename returns the download filename for the active layout:
// its display name (or id) with whitespace collapsed to underscores.
func (r *Repository) ExportFilename() (string, error) {
	active, ok := r.Active()
	if !ok {
		return "", apperrors.New(apperrors.ErrCodeNoActiveLayout, "no layout selected")
	}
	return fmt.Sprintf("%s.json", active.ExportName()), nil
}

// Add appends a layout to the collection and persists it. An existing
// layout with the same id is replaced.
func (r *Repository) Add(ctx context.Context, l layout.Layout) error {
	replaced := false
	for i, existing := range r.layouts {
		if existing.ID == l.ID {
			r.layouts[i] = l
			replaced = true
			break
		}
	}
	if !replaced {
		r.layouts = append(r.layouts, l)
	}

	data, err := json.Marshal(r.layouts)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInternal, err, "encode layouts")
	}
	if err := r.store.Set(ctx, KeyLayouts, string(data)); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeStore, err, "write layouts")
	}
	observability.Store().OnWrite(ctx, KeyLayouts, len(data))
	return nil
}
