// Package urlproc normalizes user-supplied URLs into the canonical form
// the auditors fetch: scheme added, www variant probed, default ports and
// bare root paths stripped, redirects resolved.
package urlproc

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strings"

	"github.com/seolens/seolens/pkg/fetcher"
)

// Normalize canonicalizes raw. Probing uses HEAD requests through client;
// a nil client uses the shared default. Normalize never fails on probe
// errors, only on unparseable input.
func Normalize(ctx context.Context, raw string, client *fetcher.Client) (string, error) {
	if client == nil {
		client = fetcher.Default()
	}

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty url")
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parse url %q: %w", raw, err)
	}
	if u.Host == "" {
		return "", fmt.Errorf("url %q has no host", raw)
	}

	stripDefaultPort(u)

	// Prefer the www variant when the bare host does not answer.
	if host := u.Hostname(); !strings.HasPrefix(host, "www.") && net.ParseIP(host) == nil {
		if _, err := client.Head(ctx, u.String()); err != nil {
			www := *u
			www.Host = "www." + u.Host
			if _, wwwErr := client.Head(ctx, www.String()); wwwErr == nil {
				u = &www
			}
		}
	}

	// Resolve redirects to the final destination.
	if resp, err := client.Head(ctx, u.String()); err == nil && resp.FinalURL != "" {
		if final, err := url.Parse(resp.FinalURL); err == nil && final.Host != "" {
			u = final
		}
	}

	stripDefaultPort(u)
	if u.Path == "/" && u.RawQuery == "" && u.Fragment == "" {
		u.Path = ""
	}
	return u.String(), nil
}

func stripDefaultPort(u *url.URL) {
	port := u.Port()
	if (u.Scheme == "http" && port == "80") || (u.Scheme == "https" && port == "443") {
		u.Host = u.Hostname()
	}
}
