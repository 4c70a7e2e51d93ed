package panes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaneFor(t *testing.T) {
	assert.Equal(t, "pane-dashboard", PaneFor("tab-dashboard"))
	assert.Equal(t, "pane-submit-status-daily", PaneFor("tab-submit-status-daily"))
	assert.Equal(t, "", PaneFor("pane-dashboard"))
	assert.Equal(t, "", PaneFor("tab-"))
	assert.Equal(t, "", PaneFor(""))
}

func TestTabFor(t *testing.T) {
	assert.Equal(t, "tab-history", TabFor("pane-history"))
	assert.Equal(t, "", TabFor("tab-history"))
	assert.Equal(t, "", TabFor("pane-"))
}

func TestPaneForTabForRoundTrip(t *testing.T) {
	for _, tab := range []string{"tab-dashboard", "tab-active-statuses", "tab-submit-status"} {
		assert.Equal(t, tab, TabFor(PaneFor(tab)))
	}
}
