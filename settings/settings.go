// Package settings holds the declarative provider configuration: a tag
// naming the backend plus the union of every backend's fields.
package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"

	json "github.com/goccy/go-json"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"gopkg.in/yaml.v3"
)

// ErrUnknownField is returned when a field name matches no setting.
var ErrUnknownField = errors.New("unknown settings field")

// ProviderSettings is one provider configuration.
type ProviderSettings struct {
	APIProvider ProviderName `json:"apiProvider,omitempty" yaml:"apiProvider,omitempty"`
	Options     `yaml:",inline"`
}

// Split separates the tag from a deep copy of the options.
// Mutating the returned Options never affects s.
func (s ProviderSettings) Split() (ProviderName, Options) {
	return s.APIProvider, s.Options.Clone()
}

// Clone returns a deep copy of s.
func (s ProviderSettings) Clone() ProviderSettings {
	return ProviderSettings{APIProvider: s.APIProvider, Options: s.Options.Clone()}
}

// SetField updates one setting by its JSON field name, e.g. "openAiBaseUrl"
// or "openAiHeaders.X-Title". A nil value clears the field.
func (s *ProviderSettings) SetField(field string, value any) error {
	if err := checkField(field); err != nil {
		return err
	}
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if value == nil {
		data, err = sjson.DeleteBytes(data, field)
	} else {
		data, err = sjson.SetBytes(data, field, value)
	}
	if err != nil {
		return fmt.Errorf("set %s: %w", field, err)
	}

	var next ProviderSettings
	if err := json.Unmarshal(data, &next); err != nil {
		return fmt.Errorf("set %s: %w", field, err)
	}
	next.FakeAI = s.FakeAI
	*s = next
	return nil
}

// Get reads one setting by its JSON field name. Unset fields return nil.
func (s ProviderSettings) Get(field string) (any, error) {
	if err := checkField(field); err != nil {
		return nil, err
	}
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode settings: %w", err)
	}
	res := gjson.GetBytes(data, field)
	if !res.Exists() {
		return nil, nil
	}
	return res.Value(), nil
}

// Fields lists every settable top-level JSON field name.
func Fields() []string {
	loadFields()
	return fieldList
}

func checkField(field string) error {
	top, _, _ := strings.Cut(field, ".")
	loadFields()
	if _, ok := fieldSet[top]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}

var (
	fieldsOnce sync.Once
	fieldSet   map[string]struct{}
	fieldList  []string
)

func loadFields() {
	fieldsOnce.Do(func() {
		fieldSet = make(map[string]struct{})
		collectFields(reflect.TypeOf(ProviderSettings{}))
	})
}

func collectFields(t reflect.Type) {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Anonymous && f.Type.Kind() == reflect.Struct {
			collectFields(f.Type)
			continue
		}
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			continue
		}
		fieldSet[name] = struct{}{}
		fieldList = append(fieldList, name)
	}
}

// Parse decodes settings. format is "json" or "yaml".
func Parse(data []byte, format string) (ProviderSettings, error) {
	var s ProviderSettings
	var err error
	switch format {
	case "json":
		err = json.Unmarshal(data, &s)
	case "yaml", "yml":
		err = yaml.Unmarshal(data, &s)
	default:
		return s, fmt.Errorf("unsupported settings format %q", format)
	}
	if err != nil {
		return s, fmt.Errorf("parse %s settings: %w", format, err)
	}
	return s, nil
}

// Load reads settings from a .json, .yaml or .yml file.
func Load(path string) (ProviderSettings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ProviderSettings{}, err
	}
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if format == "" {
		format = "yaml"
	}
	return Parse(data, format)
}
