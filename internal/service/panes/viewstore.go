package panes

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/rosterhq/roster-console/internal/gateway"
)

// PaneView is the last successfully rendered snapshot for one pane. The
// local UI serves these verbatim; a failed load never clears them.
type PaneView struct {
	Fields    map[string]json.RawMessage `json:"fields"`
	UpdatedAt time.Time                  `json:"updated_at"`
}

// ViewStore holds the per-pane snapshots the UI projects from.
type ViewStore struct {
	mu    sync.RWMutex
	views map[string]PaneView
}

func NewViewStore() *ViewStore {
	return &ViewStore{views: make(map[string]PaneView)}
}

func (s *ViewStore) Put(paneID string, env *gateway.Envelope) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.views[paneID] = PaneView{Fields: env.Data, UpdatedAt: time.Now()}
}

func (s *ViewStore) Get(paneID string) (PaneView, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	view, ok := s.views[paneID]
	return view, ok
}

// Reset drops every snapshot, used on logout.
func (s *ViewStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.views = make(map[string]PaneView)
}
