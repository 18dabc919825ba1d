package cronx_test

import (
	"testing"

	"github.com/chronex/chronex/internal/cronx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseField_Wildcard(t *testing.T) {
	f, err := cronx.ParseField("*", cronx.FieldMinute, cronx.DefaultSymbolRegistry)
	require.NoError(t, err)
	assert.True(t, f.IsWildcard())
	for v := cronx.MinMinute; v <= cronx.MaxMinute; v++ {
		assert.True(t, f.Contains(v))
	}
}

func TestParseField_WildcardStep(t *testing.T) {
	f, err := cronx.ParseField("*/15", cronx.FieldMinute, cronx.DefaultSymbolRegistry)
	require.NoError(t, err)
	assert.False(t, f.IsWildcard())
	for _, v := range []int{0, 15, 30, 45} {
		assert.True(t, f.Contains(v), "expected %d to match", v)
	}
	for _, v := range []int{1, 14, 44, 59} {
		assert.False(t, f.Contains(v), "expected %d not to match", v)
	}
}

func TestParseField_Value(t *testing.T) {
	f, err := cronx.ParseField("5", cronx.FieldMinute, cronx.DefaultSymbolRegistry)
	require.NoError(t, err)
	assert.True(t, f.Contains(5))
	assert.False(t, f.Contains(6))
}

func TestParseField_List(t *testing.T) {
	f, err := cronx.ParseField("1,15,30", cronx.FieldMinute, cronx.DefaultSymbolRegistry)
	require.NoError(t, err)
	for _, v := range []int{1, 15, 30} {
		assert.True(t, f.Contains(v))
	}
	assert.False(t, f.Contains(2))
}

func TestParseField_Range(t *testing.T) {
	f, err := cronx.ParseField("9-17", cronx.FieldHour, cronx.DefaultSymbolRegistry)
	require.NoError(t, err)
	assert.True(t, f.Contains(9))
	assert.True(t, f.Contains(17))
	assert.True(t, f.Contains(12))
	assert.False(t, f.Contains(8))
	assert.False(t, f.Contains(18))
}

func TestParseField_ReversedRangeWraps(t *testing.T) {
	f, err := cronx.ParseField("23-1", cronx.FieldHour, cronx.DefaultSymbolRegistry)
	require.NoError(t, err)
	for _, v := range []int{23, 0, 1} {
		assert.True(t, f.Contains(v), "expected %d to match wrapped range", v)
	}
	for _, v := range []int{2, 22} {
		assert.False(t, f.Contains(v))
	}
}

func TestParseField_ReversedDOWRange(t *testing.T) {
	f, err := cronx.ParseField("FRI-MON", cronx.FieldDayOfWeek, cronx.DefaultSymbolRegistry)
	require.NoError(t, err)
	for _, v := range []int{5, 6, 0, 1} { // Fri, Sat, Sun, Mon
		assert.True(t, f.Contains(v))
	}
	for _, v := range []int{2, 3, 4} { // Tue, Wed, Thu
		assert.False(t, f.Contains(v))
	}
}

func TestParseField_RangeStep(t *testing.T) {
	f, err := cronx.ParseField("0-59/5", cronx.FieldMinute, cronx.DefaultSymbolRegistry)
	require.NoError(t, err)
	for _, v := range []int{0, 5, 10, 55} {
		assert.True(t, f.Contains(v))
	}
	assert.False(t, f.Contains(6))
}

func TestParseField_BareStepNoUpperBoundIsVToMax(t *testing.T) {
	f, err := cronx.ParseField("5/10", cronx.FieldMinute, cronx.DefaultSymbolRegistry)
	require.NoError(t, err)
	assert.False(t, f.Contains(0))
	assert.True(t, f.Contains(5))
	assert.True(t, f.Contains(15))
	assert.True(t, f.Contains(55))
	assert.False(t, f.Contains(56))
}

func TestParseField_ReversedRangeStepWraps(t *testing.T) {
	// 22-2/2 over hours: linearized domain length = (23-22+1)+(2-0+1) = 2+3 = 5
	// members at offsets 0,2,4 -> hours 22, 0, 2
	f, err := cronx.ParseField("22-2/2", cronx.FieldHour, cronx.DefaultSymbolRegistry)
	require.NoError(t, err)
	assert.True(t, f.Contains(22))
	assert.True(t, f.Contains(0))
	assert.True(t, f.Contains(2))
	assert.False(t, f.Contains(23))
	assert.False(t, f.Contains(1))
}

func TestParseField_SymbolNames(t *testing.T) {
	f, err := cronx.ParseField("MON-FRI", cronx.FieldDayOfWeek, cronx.DefaultSymbolRegistry)
	require.NoError(t, err)
	for _, v := range []int{1, 2, 3, 4, 5} {
		assert.True(t, f.Contains(v))
	}
	assert.False(t, f.Contains(0))
	assert.False(t, f.Contains(6))
}

func TestParseField_DOWSevenNormalizesToZero(t *testing.T) {
	f, err := cronx.ParseField("7", cronx.FieldDayOfWeek, cronx.DefaultSymbolRegistry)
	require.NoError(t, err)
	assert.True(t, f.Contains(0))
}

func TestParseField_NonPositiveStepWrapsErrInvalidStep(t *testing.T) {
	_, err := cronx.ParseField("*/0", cronx.FieldMinute, cronx.DefaultSymbolRegistry)
	require.Error(t, err)
	assert.ErrorIs(t, err, cronx.ErrInvalidStep)
}

func TestParseField_Errors(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		kind cronx.FieldKind
	}{
		{"empty", "", cronx.FieldMinute},
		{"out of range", "60", cronx.FieldMinute},
		{"zero step", "*/0", cronx.FieldMinute},
		{"negative step", "1-5/-1", cronx.FieldMinute},
		{"malformed", "1-", cronx.FieldMinute},
		{"unknown symbol", "FOO", cronx.FieldDayOfWeek},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := cronx.ParseField(tc.raw, tc.kind, cronx.DefaultSymbolRegistry)
			assert.Error(t, err)
		})
	}
}
