package storage

import (
	"log/slog"
	"sync"
	"time"

	"github.com/bep/debounce"

	"sld/diagram"
)

// Autosaver persists the document some time after the last edit, collapsing
// bursts of edits into a single write. Wire Changed to the editor's commit
// hook.
type Autosaver struct {
	store    *Store
	log      *slog.Logger
	debounce func(func())

	mu      sync.Mutex
	pending *diagram.Document
}

// NewAutosaver wraps store with a debounce window of delay.
func NewAutosaver(store *Store, delay time.Duration, log *slog.Logger) *Autosaver {
	if log == nil {
		log = slog.Default()
	}
	return &Autosaver{
		store:    store,
		log:      log,
		debounce: debounce.New(delay),
	}
}

// Changed records the latest committed state and (re)arms the save timer.
// The document is cloned immediately so later in-place edits by the caller
// cannot leak into the write.
func (a *Autosaver) Changed(doc *diagram.Document) {
	snapshot := doc.Clone()
	a.mu.Lock()
	a.pending = snapshot
	a.mu.Unlock()
	a.debounce(a.flush)
}

// Flush saves any pending state immediately, bypassing the timer. Call on
// shutdown.
func (a *Autosaver) Flush() error {
	a.mu.Lock()
	doc := a.pending
	a.pending = nil
	a.mu.Unlock()
	if doc == nil {
		return nil
	}
	return a.store.Save(doc)
}

func (a *Autosaver) flush() {
	if err := a.Flush(); err != nil {
		a.log.Error("autosave failed", "error", err)
	}
}
