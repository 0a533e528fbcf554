package commands

import (
	"fmt"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/petal-labs/prism/settings"
)

// applySet applies one field=value override. Values that parse as JSON
// (numbers, booleans, objects) keep their type; anything else is a string.
func applySet(cfg *settings.ProviderSettings, kv string) error {
	field, raw, ok := strings.Cut(kv, "=")
	if !ok || field == "" {
		return fmt.Errorf("invalid --set %q: want field=value", kv)
	}
	return cfg.SetField(field, parseValue(raw))
}

func parseValue(raw string) any {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err == nil {
		return v
	}
	return raw
}
