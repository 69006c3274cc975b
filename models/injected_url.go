package models

import (
	"net/url"
	"time"

	"github.com/google/uuid"
)

// InjectedURL is a user-supplied upstream URL polled alongside the primary
// feed. The id is a deterministic hash of the URL, so adding the same URL
// twice yields the same registration. Registrations live in process memory
// only and are lost on restart.
type InjectedURL struct {
	ID        string            `json:"id"`
	URL       string            `json:"url"`
	Path      string            `json:"path"`
	Params    map[string]string `json:"params,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
}

// NewInjectedURL parses rawURL into a registration. The path and query
// parameters are split out so the poller can feed them to the upstream client.
func NewInjectedURL(rawURL string) (*InjectedURL, error) {
	u, err := url.ParseRequestURI(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, ErrInvalidURL
	}

	params := make(map[string]string)
	for key, values := range u.Query() {
		if len(values) > 0 {
			params[key] = values[0]
		}
	}

	return &InjectedURL{
		ID:        InjectedURLID(rawURL),
		URL:       rawURL,
		Path:      u.Path,
		Params:    params,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// InjectedURLID derives the deterministic id for a URL.
func InjectedURLID(rawURL string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(rawURL)).String()
}
