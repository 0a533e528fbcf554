// Package catalog holds static model metadata for every provider.
package catalog

import (
	"slices"

	"github.com/alphadose/haxmap"
	"github.com/petal-labs/prism/core"
)

// entry is one registered model; the map key is provider + "/" + model.
type entry struct {
	provider string
	model    string
	info     core.ModelInfo
}

func key(provider, model string) string { return provider + "/" + model }

var (
	models   = haxmap.New[string, entry]()
	defaults = haxmap.New[string, string]()
)

// Register adds or replaces metadata for one model.
func Register(provider, model string, info core.ModelInfo) {
	models.Set(key(provider, model), entry{provider: provider, model: model, info: info})
}

// SetDefault sets the model used when a configuration names none.
func SetDefault(provider, model string) {
	defaults.Set(provider, model)
}

// Default returns the provider's default model id, or "".
func Default(provider string) string {
	id, _ := defaults.Get(provider)
	return id
}

// Lookup returns metadata for a known model.
func Lookup(provider, model string) (core.ModelInfo, bool) {
	e, ok := models.Get(key(provider, model))
	return e.info, ok
}

// Resolve returns the effective model for a configured id: the id itself,
// or the provider default when empty. Unknown ids get core.DefaultModelInfo.
func Resolve(provider, model string) core.ModelRef {
	if model == "" {
		model = Default(provider)
	}
	info, ok := Lookup(provider, model)
	if !ok {
		info = core.DefaultModelInfo
	}
	return core.ModelRef{ID: model, Info: info}
}

// Models lists the provider's known model ids in sorted order.
func Models(provider string) []string {
	var ids []string
	models.ForEach(func(_ string, e entry) bool {
		if e.provider == provider {
			ids = append(ids, e.model)
		}
		return true
	})
	slices.Sort(ids)
	return ids
}
