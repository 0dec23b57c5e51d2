// Package raw reads bootstrap settings before the logger exists, so it must
// never import the logger. Invalid values silently fall back to defaults
package raw

import (
	"os"
	"slices"
	"strconv"
	"strings"
)

// Conf is a prefixed env view, e.g. "LOG_"
type Conf struct{ prefix string }

// New returns the unprefixed view
func New() Conf { return Conf{} }

// Prefix nests p under the current prefix
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

// Get returns the trimmed value of key or def when it is blank
func (c Conf) Get(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(c.prefix + key)); v != "" {
		return v
	}
	return def
}

var truthy = []string{"1", "true", "yes", "on"}

// GetBool is true for 1, true, yes or on in any case
func (c Conf) GetBool(key string, def bool) bool {
	v := c.Get(key, "")
	if v == "" {
		return def
	}
	return slices.Contains(truthy, strings.ToLower(v))
}

// GetInt accepts non-negative integers only
func (c Conf) GetInt(key string, def int) int {
	if n, err := strconv.Atoi(c.Get(key, "")); err == nil && n >= 0 {
		return n
	}
	return def
}
