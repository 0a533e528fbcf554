package commands

import (
	"runtime"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petal-labs/prism/settings"
)

func TestVersionVariables(t *testing.T) {
	assert.NotEmpty(t, Version)
	assert.NotEmpty(t, Commit)
	assert.NotEmpty(t, BuildDate)
}

func TestVersionCommand(t *testing.T) {
	hs := newHarness(t, &recorder{}, "", settings.ProviderSettings{})
	require.NoError(t, hs.run("version"))
	assert.Contains(t, hs.stdout.String(), "prism "+Version)
	assert.Contains(t, hs.stdout.String(), runtime.Version())
}

func TestVersionCommandJSON(t *testing.T) {
	hs := newHarness(t, &recorder{}, "", settings.ProviderSettings{})
	require.NoError(t, hs.run("version", "--json"))

	var out map[string]string
	require.NoError(t, json.Unmarshal(hs.stdout.Bytes(), &out))
	assert.Equal(t, Version, out["version"])
	assert.Equal(t, runtime.GOOS+"/"+runtime.GOARCH, out["platform"])
}
