package qwencode

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"golang.org/x/oauth2"
)

const (
	// TokenURL is the Qwen OAuth2 token endpoint used for refreshes.
	TokenURL = "https://chat.qwen.ai/api/v1/oauth2/token"
	// ClientID is the public client id of the Qwen Code CLI.
	ClientID = "f0304373b74a44d2b584a3fb70ca9e56"

	// DefaultBaseURL is used when the credentials name no resource URL.
	DefaultBaseURL = "https://dashscope.aliyuncs.com/compatible-mode/v1"

	// refreshSkew refreshes tokens this long before they expire.
	refreshSkew = 30 * time.Second
)

// oauthFile mirrors ~/.qwen/oauth_creds.json as written by the Qwen CLI.
// expiry_date is in Unix milliseconds.
type oauthFile struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type,omitempty"`
	ExpiryDate   int64  `json:"expiry_date"`
	ResourceURL  string `json:"resource_url,omitempty"`
}

func (f *oauthFile) expiry() time.Time {
	return time.UnixMilli(f.ExpiryDate)
}

// Credentials reads and refreshes the Qwen CLI's OAuth credentials file.
// Nothing is read until the first Token call; refreshed tokens are written
// back so the CLI and this process share one login.
type Credentials struct {
	Path       string
	TokenURL   string
	HTTPClient *http.Client

	mu    sync.Mutex
	creds *oauthFile
	now   func() time.Time
}

// DefaultPath returns ~/.qwen/oauth_creds.json.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".qwen", "oauth_creds.json")
	}
	return filepath.Join(home, ".qwen", "oauth_creds.json")
}

// NewCredentials returns credentials backed by path, or DefaultPath when
// path is empty.
func NewCredentials(path string, client *http.Client) *Credentials {
	if path == "" {
		path = DefaultPath()
	}
	return &Credentials{Path: path, TokenURL: TokenURL, HTTPClient: client, now: time.Now}
}

// Token returns a valid access token and the API base URL it belongs to.
func (c *Credentials) Token(ctx context.Context) (token, baseURL string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.creds == nil {
		if c.creds, err = c.load(); err != nil {
			return "", "", err
		}
	}
	if c.now().Add(refreshSkew).After(c.creds.expiry()) {
		if err := c.refresh(ctx); err != nil {
			return "", "", err
		}
	}
	return c.creds.AccessToken, resourceBaseURL(c.creds.ResourceURL), nil
}

func (c *Credentials) load() (*oauthFile, error) {
	data, err := os.ReadFile(c.Path)
	if err != nil {
		return nil, fmt.Errorf("read qwen credentials: %w", err)
	}
	var f oauthFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse qwen credentials %s: %w", c.Path, err)
	}
	if f.AccessToken == "" && f.RefreshToken == "" {
		return nil, errors.New("qwen credentials contain no tokens; run `qwen` to log in")
	}
	return &f, nil
}

func (c *Credentials) refresh(ctx context.Context) error {
	if c.creds.RefreshToken == "" {
		return errors.New("qwen access token expired and no refresh token is available")
	}
	if c.HTTPClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, c.HTTPClient)
	}
	cfg := oauth2.Config{
		ClientID: ClientID,
		Endpoint: oauth2.Endpoint{TokenURL: c.TokenURL, AuthStyle: oauth2.AuthStyleInParams},
	}
	tok, err := cfg.TokenSource(ctx, &oauth2.Token{
		RefreshToken: c.creds.RefreshToken,
		Expiry:       time.Unix(1, 0),
	}).Token()
	if err != nil {
		return fmt.Errorf("refresh qwen token: %w", err)
	}

	next := *c.creds
	next.AccessToken = tok.AccessToken
	next.TokenType = tok.TokenType
	if tok.RefreshToken != "" {
		next.RefreshToken = tok.RefreshToken
	}
	if !tok.Expiry.IsZero() {
		next.ExpiryDate = tok.Expiry.UnixMilli()
	}
	if u, ok := tok.Extra("resource_url").(string); ok && u != "" {
		next.ResourceURL = u
	}
	c.creds = &next
	return c.save()
}

func (c *Credentials) save() error {
	data, err := json.MarshalIndent(c.creds, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(c.Path, data, 0o600); err != nil {
		return fmt.Errorf("write qwen credentials: %w", err)
	}
	return nil
}

// resourceBaseURL turns the credential's resource host into an API base.
func resourceBaseURL(resource string) string {
	if resource == "" {
		return DefaultBaseURL
	}
	if !strings.HasPrefix(resource, "http://") && !strings.HasPrefix(resource, "https://") {
		resource = "https://" + resource
	}
	resource = strings.TrimRight(resource, "/")
	if !strings.HasSuffix(resource, "/v1") {
		resource += "/v1"
	}
	return resource
}
