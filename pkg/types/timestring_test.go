package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeString
		wantErr bool
	}{
		{name: "valid morning", input: "09:30", want: "09:30"},
		{name: "valid midnight", input: "00:00", want: "00:00"},
		{name: "hour without leading zero", input: "9:30", want: "09:30"},
		{name: "out of range hour", input: "25:00", wantErr: true},
		{name: "out of range minute", input: "12:60", wantErr: true},
		{name: "with seconds", input: "12:30:00", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "garbage", input: "noon", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_AddMinutes(t *testing.T) {
	tests := []struct {
		name    string
		start   TimeString
		minutes int
		want    TimeString
		wantErr bool
	}{
		{name: "within hour", start: "10:00", minutes: 30, want: "10:30"},
		{name: "crosses hour", start: "10:45", minutes: 30, want: "11:15"},
		{name: "up to end of day", start: "23:30", minutes: 30, want: "24:00"},
		{name: "past end of day", start: "23:45", minutes: 30, wantErr: true},
		{name: "negative below zero", start: "00:15", minutes: -30, wantErr: true},
		{name: "negative valid", start: "10:00", minutes: -15, want: "09:45"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.start.AddMinutes(tt.minutes)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_Comparisons(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("10:00"))
	assert.False(t, TimeString("10:00").IsBefore("10:00"))
	assert.True(t, TimeString("22:00").IsAfter("21:30"))
	assert.True(t, TimeString("12:30").Equal("12:30"))

	// 24:00 позже любого времени суток
	assert.True(t, TimeString("24:00").IsAfter("23:59"))
}

func TestNewTimeString(t *testing.T) {
	ts := NewTimeString(time.Date(2026, 9, 15, 19, 5, 42, 0, time.UTC))
	assert.Equal(t, TimeString("19:05"), ts)
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	// Postgres отдает time колонку строкой HH:MM:SS
	require.NoError(t, ts.Scan("19:30:00"))
	assert.Equal(t, TimeString("19:30"), ts)

	require.NoError(t, ts.Scan("08:00"))
	assert.Equal(t, TimeString("08:00"), ts)

	require.NoError(t, ts.Scan(time.Date(2026, 1, 1, 12, 15, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("12:15"), ts)

	assert.Error(t, ts.Scan(42))
}

func TestTimeString_Value(t *testing.T) {
	v, err := TimeString("19:30").Value()
	require.NoError(t, err)
	assert.Equal(t, "19:30:00", v)

	_, err = TimeString("bad").Value()
	assert.Error(t, err)
}
