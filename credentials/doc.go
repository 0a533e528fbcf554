// Package credentials decides which credential value a backend adapter is
// constructed with: the value stored in settings, or one found in the
// process environment.
//
// The environment is always passed in explicitly as an [Environment] so
// resolution stays testable; [Process] is the only implementation that
// touches the real process environment.
package credentials
