package cronx

// Cron field value domains. DOW accepts 7 as an alias for 0 (Sunday) during
// parsing; the domain itself is 0-6.
const (
	MinSecond = 0
	MaxSecond = 59

	MinMinute = 0
	MaxMinute = 59

	MinHour = 0
	MaxHour = 23

	MinDayOfMonth = 1
	MaxDayOfMonth = 31

	MinMonth = 1
	MaxMonth = 12

	MinDayOfWeek = 0
	MaxDayOfWeek = 6
)

// FieldKind identifies which positional cron field a Field instance
// represents; it selects the value domain and, for Month/DayOfWeek, which
// symbol table to consult.
type FieldKind int

const (
	FieldSecond FieldKind = iota
	FieldMinute
	FieldHour
	FieldDayOfMonth
	FieldMonth
	FieldDayOfWeek
)

func domainFor(kind FieldKind) (min, max int) {
	switch kind {
	case FieldSecond:
		return MinSecond, MaxSecond
	case FieldMinute:
		return MinMinute, MaxMinute
	case FieldHour:
		return MinHour, MaxHour
	case FieldDayOfMonth:
		return MinDayOfMonth, MaxDayOfMonth
	case FieldMonth:
		return MinMonth, MaxMonth
	case FieldDayOfWeek:
		return MinDayOfWeek, MaxDayOfWeek
	default:
		return 0, 0
	}
}
