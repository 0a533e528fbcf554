package credentials

// Lookup returns the value of key in env, or def when key is empty or absent.
// A present but empty value is returned as-is.
func Lookup(env Environment, key, def string) string {
	if key == "" || env == nil {
		return def
	}
	if v, ok := env.LookupEnv(key); ok {
		return v
	}
	return def
}

// Resolve picks the effective credential for one field.
//
// With useEnv unset the configured value is returned and env is never read.
// With useEnv set the value of envVar wins whenever it is present, even if
// empty; otherwise the configured value is kept. An empty envVar means the
// provider supports no override.
func Resolve(env Environment, configured, envVar string, useEnv bool) string {
	if !useEnv || envVar == "" {
		return configured
	}
	return Lookup(env, envVar, configured)
}

// Available reports, for each canonical variable, whether it is set to a
// non-empty value in env. Settings forms only offer the "use environment"
// toggle for variables reported true.
func Available(env Environment) map[string]bool {
	out := make(map[string]bool, len(Canonical))
	for _, name := range Canonical {
		v, ok := env.LookupEnv(name)
		out[name] = ok && v != ""
	}
	return out
}
