package commands

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petal-labs/prism/cli/config"
	"github.com/petal-labs/prism/credentials"
	"github.com/petal-labs/prism/settings"
)

func TestConfigSetAndGet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	run := func(args ...string) string {
		t.Helper()
		var out bytes.Buffer
		app := NewApp(WithIO(strings.NewReader(""), &out, &bytes.Buffer{}), WithEnvironment(credentials.Map{}))
		app.SetArgs(append([]string{"--config", path}, args...))
		require.NoError(t, app.Execute())
		return out.String()
	}

	run("config", "set", "apiProvider", "openrouter")
	run("config", "set", "openRouterModelId", "anthropic/claude-sonnet-4")
	run("config", "set", "openAiUseAzure", "true")

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, settings.ProviderName("openrouter"), cfg.APIProvider)

	assert.Equal(t, "anthropic/claude-sonnet-4\n", run("config", "get", "openRouterModelId"))
	assert.Equal(t, "true\n", run("config", "get", "openAiUseAzure"))
	assert.Empty(t, run("config", "get", "apiModelId"))
}

func TestConfigSetIgnoresInvocationOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	app := NewApp(WithIO(strings.NewReader(""), &bytes.Buffer{}, &bytes.Buffer{}), WithEnvironment(credentials.Map{}))
	app.SetArgs([]string{"--config", path, "--provider", "ollama", "config", "set", "apiModelId", "m"})
	require.NoError(t, app.Execute())

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)
	assert.Empty(t, cfg.APIProvider)
	assert.Equal(t, "m", cfg.APIModelID)
}

func TestConfigUnknownField(t *testing.T) {
	hs := newHarness(t, &recorder{}, "", settings.ProviderSettings{})
	err := hs.run("config", "get", "bogus")
	assert.ErrorIs(t, err, settings.ErrUnknownField)
}

func TestConfigFields(t *testing.T) {
	hs := newHarness(t, &recorder{}, "", settings.ProviderSettings{})
	require.NoError(t, hs.run("config", "fields"))
	assert.Contains(t, hs.stdout.String(), "apiProvider\n")
	assert.Contains(t, hs.stdout.String(), "openAiBaseUrl\n")
}
