// Package validate runs a Chronex expression through the parser in a mode
// that collects every diagnostic instead of failing on the first one, per
// spec.md §4.11.
package validate

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/chronex/chronex/internal/cronx"
	"github.com/chronex/chronex/internal/duration"
)

// Severity distinguishes a diagnostic that fails validation from one that
// merely warns.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

// Diagnostic is one coded validation finding.
type Diagnostic struct {
	Code     string   `json:"code"`
	Severity Severity `json:"-"`
	Field    string   `json:"field,omitempty"`
	Message  string   `json:"message"`
	Value    string   `json:"value,omitempty"`
	Position int      `json:"position,omitempty"`
}

// Result is the outcome of validating one expression string, per spec.md
// §6's external validation contract.
type Result struct {
	IsValid  bool         `json:"is_valid"`
	Errors   []Diagnostic `json:"errors"`
	Warnings []Diagnostic `json:"warnings"`
}

func (r *Result) addError(code, field, message, value string) {
	r.Errors = append(r.Errors, Diagnostic{Code: code, Severity: SeverityError, Field: field, Message: message, Value: value})
}

func (r *Result) addWarning(code, field, message, value string) {
	r.Warnings = append(r.Warnings, Diagnostic{Code: code, Severity: SeverityWarning, Field: field, Message: message, Value: value})
}

var fieldErrorCodes = map[string]string{
	"second": "E001", "minute": "E002", "hour": "E003",
	"dom": "E004", "month": "E005", "dow": "E006",
}

var fieldKinds = map[string]cronx.FieldKind{
	"second": cronx.FieldSecond, "minute": cronx.FieldMinute, "hour": cronx.FieldHour,
	"dom": cronx.FieldDayOfMonth, "month": cronx.FieldMonth, "dow": cronx.FieldDayOfWeek,
}

// Validate collects every diagnostic the expression raises, rather than
// stopping at the first parse error.
func Validate(raw string) Result {
	result := Result{}

	tokens, err := cronx.Tokenize(raw)
	if err != nil {
		result.addError("E010", "", err.Error(), raw)
		result.IsValid = len(result.Errors) == 0
		return result
	}

	if tokens.Timezone != "" {
		if _, err := (cronx.RealZoneResolver{}).Load(tokens.Timezone); err != nil {
			result.addError("E011", "timezone", err.Error(), tokens.Timezone)
		}
	}

	validateOptions(tokens.OptionsRaw, &result)

	var everyMinInterval *time.Duration
	switch tokens.Kind {
	case cronx.KindInterval:
		everyMinInterval = validateIntervalBody(tokens.Body, &result)
	case cronx.KindOnce:
		validateOnceBody(tokens.Body, &result)
	case cronx.KindAlias:
		if _, ok := cronx.ExpandAlias(tokens.Body); !ok {
			result.addError("E010", "", fmt.Sprintf("unknown alias %q", tokens.Body), tokens.Body)
		}
	case cronx.KindCron:
		validateCronBody(tokens.Body, &result)
	}

	if everyMinInterval != nil {
		if opts, err := cronx.ParseOptions(tokens.OptionsRaw); err == nil {
			checkIntervalOptionBounds(&result, *everyMinInterval, opts)
		}
	}

	result.IsValid = len(result.Errors) == 0
	return result
}

// checkIntervalOptionBounds emits E022/E025 (warnings): jitter exceeding 50%
// of the schedule's minimum interval, or stagger exceeding it outright.
// Computed only for @every, the one kind with a statically knowable minimum
// interval; general cron minimum-interval extraction is out of scope.
func checkIntervalOptionBounds(result *Result, minInterval time.Duration, opts cronx.Options) {
	if opts.Jitter != nil && *opts.Jitter > minInterval/2 {
		result.addWarning("E022", "jitter", "jitter exceeds 50% of the schedule interval", opts.Jitter.String())
	}
	if opts.Stagger != nil && *opts.Stagger > minInterval {
		result.addWarning("E025", "stagger", "stagger exceeds the schedule interval", opts.Stagger.String())
	}
}

func validateCronBody(body string, result *Result) {
	fields, err := cronx.SplitCronFields(body)
	if err != nil {
		result.addError("E010", "", err.Error(), body)
		return
	}
	names := []string{"minute", "hour", "dom", "month", "dow"}
	if len(fields) == 6 {
		names = []string{"second", "minute", "hour", "dom", "month", "dow"}
	}
	for i, name := range names {
		token := fields[i]
		if name == "dom" && cronx.IsDOMSpecialToken(token) {
			if _, ok, err := cronx.ParseDOMSpecial(token); ok && err != nil {
				result.addError("E004", name, err.Error(), token)
			}
			continue
		}
		if name == "dow" && cronx.IsDOWSpecialToken(token) {
			if _, ok, err := cronx.ParseDOWSpecial(token, cronx.DefaultSymbolRegistry); ok && err != nil {
				result.addError("E006", name, err.Error(), token)
			}
			continue
		}
		if _, err := cronx.ParseField(token, fieldKinds[name], cronx.DefaultSymbolRegistry); err != nil {
			code := fieldErrorCodes[name]
			if errors.Is(err, cronx.ErrInvalidStep) {
				code = "E007"
			}
			result.addError(code, name, err.Error(), token)
		}
	}
}

func validateIntervalBody(body string, result *Result) *time.Duration {
	rest := strings.TrimSpace(strings.TrimPrefix(body, "@every"))
	if rest == "" {
		result.addError("E013", "", "@every requires a duration", body)
		return nil
	}
	lo, hi, hasRange := strings.Cut(rest, "-")
	minDur, err := duration.Parse(strings.TrimSpace(lo))
	if err != nil || minDur <= 0 {
		result.addError("E013", "", "malformed @every duration", lo)
		return nil
	}
	if hasRange {
		maxDur, err := duration.Parse(strings.TrimSpace(hi))
		if err != nil {
			result.addError("E013", "", "malformed @every range duration", hi)
			return &minDur
		}
		if minDur >= maxDur {
			result.addError("E014", "", "@every range min must be less than max", rest)
		}
	}
	return &minDur
}

func validateOnceBody(body string, result *Result) {
	rest := strings.TrimSpace(strings.TrimPrefix(body, "@once"))
	if rest == "" {
		result.addError("E012", "", "@once requires an instant or relative duration", body)
		return
	}
	if strings.HasPrefix(rest, "+") {
		d, err := duration.Parse(rest[1:])
		if err != nil {
			result.addError("E012", "", "malformed relative @once duration", rest)
			return
		}
		if d <= 0 {
			result.addError("E017", "", "relative @once duration must be positive", rest)
		}
		return
	}
	if _, err := time.Parse(time.RFC3339Nano, rest); err != nil {
		result.addError("E012", "", "malformed @once datetime", rest)
	}
}

func validateOptions(raw string, result *Result) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return
	}
	seenTags := map[string]int{}
	var from, until *time.Time
	for _, pair := range strings.Split(raw, ",") {
		key, value, hasColon := strings.Cut(pair, ":")
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if !hasColon {
			result.addError("E015", "", "option missing ':'", pair)
			continue
		}
		switch key {
		case "jitter", "stagger", "window":
			d, err := duration.Parse(value)
			code := "E016"
			if key == "window" {
				code = "E023"
			}
			if key == "stagger" {
				code = "E024"
			}
			if err != nil || d <= 0 {
				result.addError(code, key, "must be a positive duration", value)
			}
		case "max":
			if n, err := strconv.Atoi(value); err != nil || n <= 0 {
				result.addError("E021", "max", "must be a positive integer", value)
			}
		case "from", "until":
			t, err := parseInstant(value, key == "until")
			if err != nil {
				result.addError("E016", key, "malformed ISO-8601 date or datetime", value)
				continue
			}
			if key == "from" {
				from = &t
			} else {
				until = &t
			}
		case "tag":
			for _, tag := range strings.Split(value, "+") {
				seenTags[tag]++
			}
		default:
			result.addError("E015", "", "unknown option key", key)
		}
	}
	for tag, count := range seenTags {
		if count > 1 {
			result.addWarning("W001", "tag", "duplicate tag", tag)
		}
	}
	if from != nil && until != nil && !from.Before(*until) {
		result.addError("E020", "", "from must be before until", "")
	}
}

func parseInstant(value string, isUntil bool) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		if isUntil {
			return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999_000_000, time.UTC), nil
		}
		return t, nil
	}
	return time.Parse(time.RFC3339Nano, value)
}
