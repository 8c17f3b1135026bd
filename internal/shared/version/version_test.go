package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := map[string]string{
		"1.2.3":  "v1.2.3",
		"v1.2.3": "v1.2.3",
		" 2.0 ":  "v2.0",
		"dev":    "dev",
		"":       "",
	}
	for in, want := range tests {
		assert.Equal(t, want, Normalize(in), in)
	}
}

func TestGet(t *testing.T) {
	orig := Current
	t.Cleanup(func() { Current = orig })
	Current = "0.4.1"

	info := Get()
	assert.Equal(t, "v0.4.1", info.Version)
	assert.Contains(t, info.String(), "servicedesk v0.4.1")
	assert.NotEmpty(t, info.GoVersion)
}
