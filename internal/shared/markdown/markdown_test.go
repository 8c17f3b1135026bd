package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	r := NewRenderer()

	out, err := r.Render("# Reset VPN\n\nRun `vpnctl reset`.\n\n<script>alert(1)</script>")
	require.NoError(t, err)

	assert.Contains(t, out, `<h1 id="reset-vpn">Reset VPN</h1>`)
	assert.Contains(t, out, "<code>vpnctl reset</code>")
	assert.NotContains(t, out, "<script>")
}

func TestRender_GFMTable(t *testing.T) {
	out, err := NewRenderer().Render("| a | b |\n|---|---|\n| 1 | 2 |")
	require.NoError(t, err)
	assert.Contains(t, out, "<table>")
}

func TestExcerpt(t *testing.T) {
	r := NewRenderer()

	assert.Equal(t, "Printer offline Check the cable.", r.Excerpt("## Printer offline\n\nCheck the **cable**.", 0))
	assert.Equal(t, "Printer…", r.Excerpt("Printer offline", 7))
}
