// Package host adapts completion backends that live in the embedding host
// rather than behind a network API: a human relaying prompts by hand, a
// host-provided language model, and a caller-supplied fake.
//
// Each adapter takes its collaborator at construction. A missing
// collaborator is not a construction error; the first request fails with
// core.ErrNoHost instead.
package host
