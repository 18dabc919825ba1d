package cronx

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/chronex/chronex/internal/duration"
)

// Expression is the fully parsed, immutable form of one Chronex expression
// string, per spec.md §3 and §4.9.
type Expression struct {
	Original string
	Kind     ExpressionKind
	Timezone string // IANA id, empty if none supplied (UTC is used)

	Cron     *CronSchedule
	Interval *IntervalSchedule
	Once     *OnceSchedule

	Options Options

	zoneResolver ZoneResolver
	location     *time.Location
}

const defaultEnumerateMax = 1000

// Parse parses a complete Chronex expression string. now is the reference
// instant used to resolve relative "@once +D" bodies; pass time.Now() in
// production.
func Parse(raw string, now time.Time) (*Expression, error) {
	return ParseWithResolver(raw, now, RealZoneResolver{})
}

// ParseWithResolver is Parse with an injectable ZoneResolver, for callers
// that supply their own timezone data.
func ParseWithResolver(raw string, now time.Time, resolver ZoneResolver) (*Expression, error) {
	tokens, err := Tokenize(raw)
	if err != nil {
		return nil, err
	}

	expr := &Expression{
		Original:     strings.TrimSpace(raw),
		Kind:         tokens.Kind,
		Timezone:     tokens.Timezone,
		zoneResolver: resolver,
	}

	if tokens.Timezone != "" {
		loc, err := resolver.Load(tokens.Timezone)
		if err != nil {
			return nil, fmt.Errorf("cronx[E011]: unknown timezone %q: %w", tokens.Timezone, err)
		}
		expr.location = loc
	} else {
		expr.location = time.UTC
	}

	opts, err := ParseOptions(tokens.OptionsRaw)
	if err != nil {
		return nil, err
	}
	expr.Options = opts

	switch tokens.Kind {
	case KindInterval:
		sched, err := parseIntervalBody(tokens.Body)
		if err != nil {
			return nil, err
		}
		expr.Interval = sched
	case KindOnce:
		sched, err := parseOnceBody(tokens.Body, now)
		if err != nil {
			return nil, err
		}
		expr.Once = sched
	case KindAlias:
		cronBody, ok := ExpandAlias(tokens.Body)
		if !ok {
			return nil, fmt.Errorf("cronx[E010]: unknown alias %q", tokens.Body)
		}
		sched, err := parseCronBody(cronBody)
		if err != nil {
			return nil, err
		}
		expr.Cron = sched
	case KindCron:
		sched, err := parseCronBody(tokens.Body)
		if err != nil {
			return nil, err
		}
		expr.Cron = sched
	}

	return expr, nil
}

func parseIntervalBody(body string) (*IntervalSchedule, error) {
	rest := strings.TrimSpace(strings.TrimPrefix(body, "@every"))
	if rest == "" {
		return nil, fmt.Errorf("cronx[E013]: @every requires a duration")
	}
	lo, hi, hasRange := strings.Cut(rest, "-")
	minDur, err := duration.Parse(strings.TrimSpace(lo))
	if err != nil {
		return nil, fmt.Errorf("cronx[E013]: malformed @every duration: %w", err)
	}
	if minDur <= 0 {
		return nil, fmt.Errorf("cronx[E013]: @every duration must be positive")
	}
	sched := &IntervalSchedule{Min: minDur}
	if hasRange {
		maxDur, err := duration.Parse(strings.TrimSpace(hi))
		if err != nil {
			return nil, fmt.Errorf("cronx[E013]: malformed @every range duration: %w", err)
		}
		if minDur >= maxDur {
			return nil, fmt.Errorf("cronx[E014]: @every range min must be less than max")
		}
		sched.Max = &maxDur
	}
	return sched, nil
}

func parseOnceBody(body string, now time.Time) (*OnceSchedule, error) {
	rest := strings.TrimSpace(strings.TrimPrefix(body, "@once"))
	if rest == "" {
		return nil, fmt.Errorf("cronx[E012]: @once requires an instant or relative duration")
	}
	if strings.HasPrefix(rest, "+") {
		d, err := duration.Parse(rest[1:])
		if err != nil {
			return nil, fmt.Errorf("cronx[E012]: malformed relative @once duration: %w", err)
		}
		if d <= 0 {
			return nil, fmt.Errorf("cronx[E017]: relative @once duration must be positive")
		}
		return &OnceSchedule{FireAt: now.Add(d), WasRelative: true, RelativeOffset: d}, nil
	}
	t, err := time.Parse(time.RFC3339Nano, rest)
	if err != nil {
		return nil, fmt.Errorf("cronx[E012]: malformed @once datetime %q: %w", rest, err)
	}
	return &OnceSchedule{FireAt: t}, nil
}

func parseCronBody(body string) (*CronSchedule, error) {
	fields, err := SplitCronFields(body)
	if err != nil {
		return nil, err
	}
	hasSeconds := len(fields) == 6
	idx := 0
	var secondRaw string
	if hasSeconds {
		secondRaw = fields[idx]
		idx++
	}
	minuteRaw, hourRaw, domRaw, monthRaw, dowRaw := fields[idx], fields[idx+1], fields[idx+2], fields[idx+3], fields[idx+4]

	sched := &CronSchedule{HasSeconds: hasSeconds}

	if hasSeconds {
		f, err := ParseField(secondRaw, FieldSecond, DefaultSymbolRegistry)
		if err != nil {
			return nil, fmt.Errorf("cronx[E001]: %w", err)
		}
		sched.Second = f
	}

	f, err := ParseField(minuteRaw, FieldMinute, DefaultSymbolRegistry)
	if err != nil {
		return nil, fmt.Errorf("cronx[E002]: %w", err)
	}
	sched.Minute = f

	f, err = ParseField(hourRaw, FieldHour, DefaultSymbolRegistry)
	if err != nil {
		return nil, fmt.Errorf("cronx[E003]: %w", err)
	}
	sched.Hour = f

	if IsDOMSpecialToken(domRaw) {
		special, ok, err := ParseDOMSpecial(domRaw)
		if err != nil {
			return nil, fmt.Errorf("cronx[E004]: %w", err)
		}
		if ok {
			sched.DOMSpecial = &special
		}
	}
	if sched.DOMSpecial == nil {
		f, err = ParseField(domRaw, FieldDayOfMonth, DefaultSymbolRegistry)
		if err != nil {
			return nil, fmt.Errorf("cronx[E004]: %w", err)
		}
		sched.DOM = f
	}

	f, err = ParseField(monthRaw, FieldMonth, DefaultSymbolRegistry)
	if err != nil {
		return nil, fmt.Errorf("cronx[E005]: %w", err)
	}
	sched.Month = f

	if IsDOWSpecialToken(dowRaw) {
		special, ok, err := ParseDOWSpecial(dowRaw, DefaultSymbolRegistry)
		if err != nil {
			return nil, fmt.Errorf("cronx[E006]: %w", err)
		}
		if ok {
			sched.DOWSpecial = &special
		}
	}
	if sched.DOWSpecial == nil {
		f, err = ParseField(dowRaw, FieldDayOfWeek, DefaultSymbolRegistry)
		if err != nil {
			return nil, fmt.Errorf("cronx[E006]: %w", err)
		}
		sched.DOW = f
	}

	return sched, nil
}

// NextOccurrence computes the next absolute instant strictly after from at
// which the expression fires, per spec.md §4.9. rng supplies randomness for
// interval-range sampling; pass nil for fixed intervals or when the
// expression is known not to use a range.
func (e *Expression) NextOccurrence(from time.Time, rng *rand.Rand) (time.Time, bool) {
	if e.Options.Until != nil && !from.Before(*e.Options.Until) {
		return time.Time{}, false
	}

	switch e.Kind {
	case KindCron, KindAlias:
		searchFrom := from
		if e.Options.From != nil && from.Before(*e.Options.From) {
			searchFrom = e.Options.From.Add(-time.Second)
		}
		naiveFrom := searchFrom.In(e.location)
		next, ok := e.Cron.NextAfter(time.Date(naiveFrom.Year(), naiveFrom.Month(), naiveFrom.Day(),
			naiveFrom.Hour(), naiveFrom.Minute(), naiveFrom.Second(), naiveFrom.Nanosecond(), time.UTC))
		if !ok {
			return time.Time{}, false
		}
		result := ResolveNaive(next, e.location)
		if e.Options.Until != nil && !result.Before(*e.Options.Until) {
			return time.Time{}, false
		}
		return result, true

	case KindInterval:
		searchFrom := from
		if e.Options.From != nil && from.Before(*e.Options.From) {
			searchFrom = *e.Options.From
		}
		next, ok := e.Interval.NextAfter(searchFrom, rng)
		if !ok {
			return time.Time{}, false
		}
		if e.Options.Until != nil && next.After(*e.Options.Until) {
			return time.Time{}, false
		}
		return next, true

	case KindOnce:
		next, ok := e.Once.NextAfter(from)
		if !ok {
			return time.Time{}, false
		}
		if e.Options.From != nil && !next.After(*e.Options.From) {
			return time.Time{}, false
		}
		return next, true
	}
	return time.Time{}, false
}

// Enumerate returns up to min(count, options.Max ?? 1000) successive
// occurrences starting strictly after from.
func (e *Expression) Enumerate(from time.Time, count int, rng *rand.Rand) []time.Time {
	limit := count
	maxCount := defaultEnumerateMax
	if e.Options.Max != nil {
		maxCount = *e.Options.Max
	}
	if maxCount < limit {
		limit = maxCount
	}

	results := make([]time.Time, 0, limit)
	cursor := from
	for len(results) < limit {
		next, ok := e.NextOccurrence(cursor, rng)
		if !ok {
			break
		}
		results = append(results, next)
		cursor = next
	}
	return results
}

// String renders the expression in canonical form: [TZ=<zone> ]<body>[
// {<opts>}], with options sorted alphabetically by key.
func (e *Expression) String() string {
	var b strings.Builder
	if e.Timezone != "" {
		fmt.Fprintf(&b, "TZ=%s ", e.Timezone)
	}
	b.WriteString(e.canonicalBody())

	optParts := e.canonicalOptionParts()
	if len(optParts) > 0 {
		sort.Strings(optParts)
		b.WriteString(" {")
		b.WriteString(strings.Join(optParts, ","))
		b.WriteString("}")
	}
	return b.String()
}

func (e *Expression) canonicalBody() string {
	switch e.Kind {
	case KindInterval:
		s := duration.Canonical(e.Interval.Min)
		if e.Interval.Max != nil {
			s += "-" + duration.Canonical(*e.Interval.Max)
		}
		return "@every " + s
	case KindOnce:
		return "@once " + e.Once.FireAt.Format(time.RFC3339Nano)
	default:
		return canonicalCronBody(e.Cron)
	}
}

func canonicalCronBody(s *CronSchedule) string {
	parts := make([]string, 0, 6)
	if s.HasSeconds {
		parts = append(parts, s.Second.Raw)
	}
	parts = append(parts, s.Minute.Raw, s.Hour.Raw)
	if s.DOM != nil {
		parts = append(parts, s.DOM.Raw)
	} else {
		parts = append(parts, s.DOMSpecial.Raw)
	}
	parts = append(parts, s.Month.Raw)
	if s.DOW != nil {
		parts = append(parts, s.DOW.Raw)
	} else {
		parts = append(parts, s.DOWSpecial.Raw)
	}
	return strings.Join(parts, " ")
}

func (e *Expression) canonicalOptionParts() []string {
	var parts []string
	o := e.Options
	if o.Jitter != nil {
		parts = append(parts, "jitter:"+duration.Canonical(*o.Jitter))
	}
	if o.Stagger != nil {
		parts = append(parts, "stagger:"+duration.Canonical(*o.Stagger))
	}
	if o.Window != nil {
		parts = append(parts, "window:"+duration.Canonical(*o.Window))
	}
	if o.From != nil {
		parts = append(parts, "from:"+o.From.Format(time.RFC3339Nano))
	}
	if o.Until != nil {
		parts = append(parts, "until:"+o.Until.Format(time.RFC3339Nano))
	}
	if o.Max != nil {
		parts = append(parts, fmt.Sprintf("max:%d", *o.Max))
	}
	if len(o.Tags) > 0 {
		parts = append(parts, "tag:"+strings.Join(o.Tags, "+"))
	}
	return parts
}
