// Package gcp supplies OAuth2 access tokens for Vertex AI endpoints.
package gcp

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"sync"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// Scope is the OAuth2 scope Vertex AI requires.
const Scope = "https://www.googleapis.com/auth/cloud-platform"

// Credentials locates Google credentials from, in order, inline JSON,
// a key file, or application default credentials. Lookup is deferred to
// the first token request so construction never does I/O.
type Credentials struct {
	JSON    string
	KeyFile string

	once sync.Once
	ts   oauth2.TokenSource
	err  error
}

func (c *Credentials) source(ctx context.Context) (oauth2.TokenSource, error) {
	c.once.Do(func() {
		var data []byte
		switch {
		case c.JSON != "":
			data = []byte(c.JSON)
		case c.KeyFile != "":
			data, c.err = os.ReadFile(c.KeyFile)
			if c.err != nil {
				c.err = fmt.Errorf("read vertex key file: %w", c.err)
				return
			}
		default:
			var creds *google.Credentials
			creds, c.err = google.FindDefaultCredentials(ctx, Scope)
			if c.err == nil {
				c.ts = creds.TokenSource
			}
			return
		}
		var creds *google.Credentials
		creds, c.err = google.CredentialsFromJSON(ctx, data, Scope)
		if c.err == nil {
			c.ts = creds.TokenSource
		}
	})
	return c.ts, c.err
}

// Authorize sets a bearer token on req.
func (c *Credentials) Authorize(ctx context.Context, req *http.Request) error {
	ts, err := c.source(context.WithoutCancel(ctx))
	if err != nil {
		return fmt.Errorf("google credentials: %w", err)
	}
	tok, err := ts.Token()
	if err != nil {
		return fmt.Errorf("google token: %w", err)
	}
	tok.SetAuthHeader(req)
	return nil
}

// StaticToken returns credentials that always use the given access token.
func StaticToken(token string) *Credentials {
	c := &Credentials{}
	c.once.Do(func() {
		c.ts = oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
	})
	return c
}

// Endpoint returns the regional Vertex AI host for region.
func Endpoint(region string) string {
	if region == "" || region == "global" {
		return "https://aiplatform.googleapis.com"
	}
	return "https://" + region + "-aiplatform.googleapis.com"
}
