package credentials

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingEnv fails the test if it is ever consulted.
type countingEnv struct {
	Map
	calls int
}

func (c *countingEnv) LookupEnv(name string) (string, bool) {
	c.calls++
	return c.Map.LookupEnv(name)
}

func TestResolvePrecedence(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		env        Map
		useEnv     bool
		want       string
	}{
		{"flag off ignores env", "config-key", Map{AnthropicAPIKey: "env-key"}, false, "config-key"},
		{"flag on prefers env", "config-key", Map{AnthropicAPIKey: "env-key"}, true, "env-key"},
		{"flag on without env keeps config", "config-key", Map{}, true, "config-key"},
		{"flag on with empty config", "", Map{AnthropicAPIKey: "env-key"}, true, "env-key"},
		{"present but empty env wins", "config-key", Map{AnthropicAPIKey: ""}, true, ""},
		{"flag off and nothing configured", "", Map{AnthropicAPIKey: "env-key"}, false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.env, tt.configured, AnthropicAPIKey, tt.useEnv))
		})
	}
}

func TestResolveFlagOffNeverReadsEnv(t *testing.T) {
	env := &countingEnv{Map: Map{AnthropicAPIKey: "env-key"}}
	Resolve(env, "config-key", AnthropicAPIKey, false)
	assert.Zero(t, env.calls)
}

func TestResolveNoOverrideSupported(t *testing.T) {
	env := &countingEnv{Map: Map{"": "nope"}}
	assert.Equal(t, "config-key", Resolve(env, "config-key", "", true))
	assert.Zero(t, env.calls)
}

func TestLookup(t *testing.T) {
	env := Map{"SET": "value", "EMPTY": ""}
	assert.Equal(t, "value", Lookup(env, "SET", "def"))
	assert.Equal(t, "", Lookup(env, "EMPTY", "def"))
	assert.Equal(t, "def", Lookup(env, "MISSING", "def"))
	assert.Equal(t, "def", Lookup(env, "", "def"))
	assert.Equal(t, "def", Lookup(nil, "SET", "def"))
}

func TestAvailable(t *testing.T) {
	avail := Available(Map{
		OpenAIAPIKey:     "sk-test",
		OpenRouterAPIKey: "",
		"UNRELATED":      "x",
	})
	assert.Len(t, avail, len(Canonical))
	assert.True(t, avail[OpenAIAPIKey])
	assert.False(t, avail[OpenRouterAPIKey], "empty values cannot be used")
	assert.False(t, avail[AnthropicAPIKey])
	assert.NotContains(t, avail, "UNRELATED")
}

func TestCanonicalNamesAreDistinct(t *testing.T) {
	seen := make(map[string]bool)
	for _, name := range Canonical {
		assert.False(t, seen[name], "duplicate %s", name)
		seen[name] = true
	}
	assert.Contains(t, seen, "OPEN_ROUTER_API_KEY")
	assert.Contains(t, seen, "DEEP_SEEK_API_KEY")
}

func TestDotenvOverlay(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "base.env")
	second := filepath.Join(dir, "local.env")
	require.NoError(t, os.WriteFile(first, []byte("GROQ_API_KEY=gsk-file\nXAI_API_KEY=xai-file\n"), 0o600))
	require.NoError(t, os.WriteFile(second, []byte("XAI_API_KEY=xai-local\n"), 0o600))

	env, err := Dotenv(Map{GroqAPIKey: "gsk-process", MistralAPIKey: "m-process"}, first, second)
	require.NoError(t, err)

	assert.Equal(t, "gsk-file", Lookup(env, GroqAPIKey, ""))
	assert.Equal(t, "xai-local", Lookup(env, XAIAPIKey, ""))
	assert.Equal(t, "m-process", Lookup(env, MistralAPIKey, ""))
	_, ok := env.LookupEnv(ChutesAPIKey)
	assert.False(t, ok)

	_, err = Dotenv(Map{}, filepath.Join(dir, "missing.env"))
	assert.Error(t, err)
}

func TestProcessEnvironment(t *testing.T) {
	t.Setenv("PRISM_TEST_CREDENTIAL", "from-process")
	assert.Equal(t, "from-process", Lookup(Process(), "PRISM_TEST_CREDENTIAL", ""))
}
