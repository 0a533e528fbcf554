package credentials

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Environment is a read-only name to value mapping.
// The boolean reports presence; an empty value that is present is still present.
type Environment interface {
	LookupEnv(name string) (string, bool)
}

type processEnv struct{}

func (processEnv) LookupEnv(name string) (string, bool) { return os.LookupEnv(name) }

// Process returns the real process environment.
func Process() Environment { return processEnv{} }

// Map is a synthetic environment.
type Map map[string]string

// LookupEnv implements Environment.
func (m Map) LookupEnv(name string) (string, bool) {
	v, ok := m[name]
	return v, ok
}

// Overlay layers values over a base environment. Overlay values win.
type Overlay struct {
	Base   Environment
	Values map[string]string
}

// LookupEnv implements Environment.
func (o Overlay) LookupEnv(name string) (string, bool) {
	if v, ok := o.Values[name]; ok {
		return v, true
	}
	if o.Base == nil {
		return "", false
	}
	return o.Base.LookupEnv(name)
}

// Dotenv reads .env files and layers them over base without touching the
// process environment. Later files win over earlier ones.
func Dotenv(base Environment, files ...string) (Environment, error) {
	values := make(map[string]string)
	for _, f := range files {
		m, err := godotenv.Read(f)
		if err != nil {
			return nil, fmt.Errorf("read env file %s: %w", f, err)
		}
		for k, v := range m {
			values[k] = v
		}
	}
	return Overlay{Base: base, Values: values}, nil
}
