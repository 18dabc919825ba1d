package cronx

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/chronex/chronex/internal/duration"
)

// Options is the parsed form of an expression's {k:v,...} suffix, per
// spec.md §3 and §4.8.
type Options struct {
	Jitter  *time.Duration
	Stagger *time.Duration
	Window  *time.Duration
	From    *time.Time
	Until   *time.Time
	Max     *int
	Tags    []string
}

var recognizedOptionKeys = map[string]bool{
	"jitter": true, "stagger": true, "window": true,
	"from": true, "until": true, "max": true, "tag": true,
}

// ParseOptions parses the contents of a {...} block (without the braces).
// An empty raw string yields the zero Options.
func ParseOptions(raw string) (Options, error) {
	var opts Options
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return opts, nil
	}

	for _, pair := range strings.Split(raw, ",") {
		key, value, hasColon := strings.Cut(pair, ":")
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if !hasColon {
			return Options{}, fmt.Errorf("cronx[E015]: option %q missing ':'", pair)
		}
		if !recognizedOptionKeys[key] {
			return Options{}, fmt.Errorf("cronx[E015]: unknown option key %q", key)
		}

		switch key {
		case "jitter":
			d, err := duration.Parse(value)
			if err != nil || d <= 0 {
				return Options{}, fmt.Errorf("cronx[E016]: invalid jitter %q: %w", value, err)
			}
			opts.Jitter = &d
		case "stagger":
			d, err := duration.Parse(value)
			if err != nil || d <= 0 {
				return Options{}, fmt.Errorf("cronx[E024]: invalid stagger %q: %w", value, err)
			}
			opts.Stagger = &d
		case "window":
			d, err := duration.Parse(value)
			if err != nil || d <= 0 {
				return Options{}, fmt.Errorf("cronx[E023]: invalid window %q: %w", value, err)
			}
			opts.Window = &d
		case "max":
			n, err := strconv.Atoi(value)
			if err != nil || n <= 0 {
				return Options{}, fmt.Errorf("cronx[E021]: invalid max %q", value)
			}
			opts.Max = &n
		case "from":
			t, err := parseOptionInstant(value, false)
			if err != nil {
				return Options{}, fmt.Errorf("cronx[E016]: invalid from %q: %w", value, err)
			}
			opts.From = &t
		case "until":
			t, err := parseOptionInstant(value, true)
			if err != nil {
				return Options{}, fmt.Errorf("cronx[E016]: invalid until %q: %w", value, err)
			}
			opts.Until = &t
		case "tag":
			opts.Tags = append(opts.Tags, strings.Split(value, "+")...)
		}
	}

	if opts.From != nil && opts.Until != nil && !opts.From.Before(*opts.Until) {
		return Options{}, fmt.Errorf("cronx[E020]: from must be before until")
	}
	return opts, nil
}

// parseOptionInstant parses an ISO-8601 date-only or full datetime-with-
// offset value. Date-only "from" means start-of-day; date-only "until"
// means end-of-day (23:59:59.999).
func parseOptionInstant(value string, isUntil bool) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		if isUntil {
			return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999_000_000, time.UTC), nil
		}
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("not a recognized ISO-8601 date or datetime")
}
