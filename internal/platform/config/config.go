// Package config reads typed settings from prefixed environment variables.
// Bad optional values fall back to their default with a warning, bad
// required values panic at boot
package config

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"facilities/internal/platform/logger"
)

// Conf is a namespaced view over the environment, e.g. "FACILITIES_" or "SERVICE_PGSQL_"
type Conf struct{ prefix string }

// New returns the unprefixed root view
func New() Conf { return Conf{} }

// Prefix nests p under the current prefix
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

func (c Conf) key(k string) string { return c.prefix + k }

func (c Conf) lookup(k string) string { return strings.TrimSpace(os.Getenv(c.key(k))) }

// may parses key with parse, returning def when unset or unparseable
func may[T any](c Conf, key string, def T, parse func(string) (T, error)) T {
	s := c.lookup(key)
	if s == "" {
		return def
	}
	v, err := parse(s)
	if err != nil {
		logger.Get().Warn().Err(err).
			Str("key", c.key(key)).
			Str("value", s).
			Str("default", fmt.Sprint(def)).
			Msg("invalid config value, using default")
		return def
	}
	return v
}

// must parses key with parse and panics when it is unset or unparseable
func must[T any](c Conf, key string, parse func(string) (T, error)) T {
	s := c.lookup(key)
	if s == "" {
		logger.Get().Panic().Str("key", c.key(key)).Msg("missing required env")
	}
	v, err := parse(s)
	if err != nil {
		logger.Get().Panic().Err(err).Str("key", c.key(key)).Str("value", s).Msg("invalid required env")
	}
	return v
}

func asString(s string) (string, error) { return s, nil }

// MustString panics when key is unset
func (c Conf) MustString(key string) string { return must(c, key, asString) }

// MustDuration panics when key is unset or not a duration. Day units are accepted
func (c Conf) MustDuration(key string) time.Duration { return must(c, key, ParseDuration) }

// MayString returns def when key is unset
func (c Conf) MayString(key, def string) string { return may(c, key, def, asString) }

// MayInt returns def when key is unset or not an integer
func (c Conf) MayInt(key string, def int) int { return may(c, key, def, strconv.Atoi) }

// MayBool returns def when key is unset or not a bool
func (c Conf) MayBool(key string, def bool) bool { return may(c, key, def, strconv.ParseBool) }

// MayDuration returns def when key is unset or invalid. "3d" and "1d12h" work alongside time.ParseDuration units
func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	return may(c, key, def, ParseDuration)
}

// MayCSV splits a comma separated value, dropping blanks. def when nothing is left
func (c Conf) MayCSV(key string, def []string) []string {
	out := slices.DeleteFunc(strings.Split(c.lookup(key), ","), func(s string) bool {
		return strings.TrimSpace(s) == ""
	})
	if len(out) == 0 {
		return def
	}
	for i := range out {
		out[i] = strings.TrimSpace(out[i])
	}
	return out
}

// MayEnum matches case insensitively against allowed and returns the canonical
// spelling. An unknown value panics since a typo here changes behaviour silently
func (c Conf) MayEnum(key, def string, allowed ...string) string {
	v := c.MayString(key, def)
	if v == "" {
		return v
	}
	i := slices.IndexFunc(allowed, func(a string) bool { return strings.EqualFold(a, v) })
	if i < 0 {
		logger.Get().Panic().Str("key", c.key(key)).Str("value", v).Strs("allowed", allowed).Msg("invalid enum value")
	}
	return allowed[i]
}
