package report

import "sync"

// EditingContext references a previously submitted report being modified
// rather than created anew.
type EditingContext struct {
	ReportID string       `json:"id"`
	Items    []ReviewItem `json:"items"`
}

// EditingHolder keeps at most one in-flight editing context. It is set
// when the user picks "edit" from a history listing and cleared when the
// form renders from it or when the user navigates away from the
// submission pane.
type EditingHolder struct {
	mu  sync.Mutex
	ctx *EditingContext
}

func (h *EditingHolder) Set(ctx EditingContext) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.ctx = &ctx
}

// Peek returns the current context without consuming it.
func (h *EditingHolder) Peek() (EditingContext, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.ctx == nil {
		return EditingContext{}, false
	}
	return *h.ctx, true
}

func (h *EditingHolder) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.ctx = nil
}
