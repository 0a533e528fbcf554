package core

import "sync"

// Continuity remembers the id of the last completed response so that
// backends with server-side conversation state can chain requests.
//
// A call is fresh (nothing remembered yet), continuing (the remembered or
// explicitly supplied id is sent) or suppressed (no id sent for this call).
//
// Suppression never persists; the next unsuppressed call continues from
// whatever id was remembered last.
type Continuity struct {
	mu     sync.Mutex
	lastID string
}

// Previous returns the response id to send with the request, or "".
// An explicit meta.PreviousResponseID always wins.
func (c *Continuity) Previous(meta *Metadata) string {
	if meta != nil && meta.PreviousResponseID != "" {
		return meta.PreviousResponseID
	}
	if meta != nil && meta.SuppressPreviousResponseID {
		return ""
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastID
}

// Remember records the id of a completed response.
// Responses that were not stored server-side cannot be chained and are skipped.
func (c *Continuity) Remember(meta *Metadata, id string) {
	if id == "" || !meta.StoreEnabled() {
		return
	}
	c.mu.Lock()
	c.lastID = id
	c.mu.Unlock()
}

// Last returns the remembered id.
func (c *Continuity) Last() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastID
}
