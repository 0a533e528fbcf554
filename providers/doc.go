// Package providers turns a declarative provider configuration into a
// ready core.Handler.
//
// # Dispatch
//
// Build looks the configuration's tag up in a static table with one entry
// per known backend. Unknown or empty tags use the default provider
// (anthropic) with exactly the same credential binding as an explicit
// anthropic configuration. Build never fails and never performs I/O;
// problems such as a missing key surface on the first request.
//
// # Credentials
//
// Each table entry binds its credential field to one canonical
// environment variable (see package credentials). When the entry's
// "use environment" flag is set the variable overrides the configured
// value if present, even when empty. The caller's configuration is never
// modified; resolution writes into a deep copy.
//
// # Host collaborators
//
// human-relay and vscode-lm need the embedding application; supply them
// with WithHumanRelay and WithLanguageModel. Without them the handlers are
// still built and fail their first request with core.ErrNoHost.
package providers
