// Package extractor holds the issuer rule registry and the pattern-driven
// extraction engine that turns linearized statement text into a
// common.StatementRecord.
package extractor

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/spf13/viper"
)

// ErrUnknownIssuer is returned when a bank key has no configured profile.
var ErrUnknownIssuer = errors.New("unknown issuer")

// Profile is the declarative rule set for one issuer: four compiled patterns,
// the credit marker token, and the noise-filter substrings. Profiles are
// immutable after LoadRegistry and safe for concurrent use.
type Profile struct {
	Key                string
	Last4Pattern       *regexp.Regexp
	DueDatePattern     *regexp.Regexp
	BalancePattern     *regexp.Regexp
	TransactionPattern *regexp.Regexp
	CreditMarker       string
	NoiseFilters       []string
}

// Registry maps lowercase issuer keys to their profiles.
type Registry struct {
	profiles map[string]*Profile
}

// LoadRegistry builds the registry from the viper config under the "parser"
// key, compiling every pattern once. Adding a bank is a pure config change:
// a new block under parser: with the four patterns, the credit marker and
// the filter list.
func LoadRegistry() (*Registry, error) {
	issuers := viper.GetStringMap("parser")
	if len(issuers) == 0 {
		return nil, errors.New("no issuer profiles configured")
	}

	profiles := make(map[string]*Profile, len(issuers))
	for key := range issuers {
		profile, err := loadProfile(key)
		if err != nil {
			return nil, fmt.Errorf("profile %s: %w", key, err)
		}
		profiles[key] = profile
	}

	return &Registry{profiles: profiles}, nil
}

func loadProfile(key string) (*Profile, error) {
	base := "parser." + key + ".patterns."

	profile := &Profile{
		Key:          key,
		CreditMarker: viper.GetString(base + "credit_marker"),
		NoiseFilters: viper.GetStringSlice("parser." + key + ".filters"),
	}

	var err error
	if profile.Last4Pattern, err = compilePattern(base + "last_4_digits"); err != nil {
		return nil, err
	}
	if profile.DueDatePattern, err = compilePattern(base + "due_date"); err != nil {
		return nil, err
	}
	if profile.BalancePattern, err = compilePattern(base + "total_balance"); err != nil {
		return nil, err
	}
	if profile.TransactionPattern, err = compilePattern(base + "transaction"); err != nil {
		return nil, err
	}

	return profile, nil
}

func compilePattern(configKey string) (*regexp.Regexp, error) {
	pattern := viper.GetString(configKey)
	if pattern == "" {
		return nil, fmt.Errorf("missing pattern %s", configKey)
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %s: %w", configKey, err)
	}
	return re, nil
}

// Lookup resolves an issuer key case-insensitively. Unknown keys yield
// ErrUnknownIssuer, never a partial profile.
func (r *Registry) Lookup(issuerKey string) (*Profile, error) {
	profile, ok := r.profiles[strings.ToLower(issuerKey)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownIssuer, issuerKey)
	}
	return profile, nil
}

// Issuers returns the supported issuer keys, sorted.
func (r *Registry) Issuers() []string {
	keys := make([]string, 0, len(r.profiles))
	for key := range r.profiles {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
