// Package testing provides test utilities for normalize.
package testing

import (
	"time"

	"github.com/zoobzio/normalize"
	"github.com/zoobzio/normalize/json"
)

// TestChain returns a chain built from the default registry.
func TestChain() *normalize.Chain {
	return normalize.NewChain(normalize.DefaultRegistry())
}

// TestSerializer returns a serializer over the default chain with the JSON
// encoder registered.
func TestSerializer() *normalize.Serializer {
	return normalize.NewSerializer(TestChain(), normalize.WithEncoder(json.New()))
}

// Account is a test type exercising the builtin candidates: renamed and
// skipped fields, omitempty, nested times, durations, byte slices, and
// collections.
type Account struct {
	ID        string            `normalize:"id"`
	Email     string            `normalize:"email"`
	Nickname  string            `normalize:"nickname,omitempty"`
	CreatedAt time.Time         `normalize:"created_at"`
	TTL       time.Duration     `normalize:"ttl"`
	Avatar    []byte            `normalize:"avatar"`
	Roles     []string          `normalize:"roles"`
	Labels    map[string]string `normalize:"labels"`
	Internal  string            `normalize:"-"`
}

// SampleAccount returns a fully populated Account fixture.
func SampleAccount() Account {
	return Account{
		ID:        "acct-1",
		Email:     "ada@example.com",
		Nickname:  "ada",
		CreatedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		TTL:       90 * time.Minute,
		Avatar:    []byte{0xde, 0xad, 0xbe, 0xef},
		Roles:     []string{"admin", "auditor"},
		Labels:    map[string]string{"region": "eu-west"},
		Internal:  "never-on-the-wire",
	}
}
