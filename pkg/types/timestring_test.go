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
		wantErr error
	}{
		{name: "canonical", input: "09:30", want: "09:30"},
		{name: "single digit hour normalized", input: "9:30", want: "09:30"},
		{name: "midnight", input: "00:00", want: "00:00"},
		{name: "end of day", input: "23:59", want: "23:59"},
		{name: "hour out of range", input: "24:00", wantErr: ErrInvalidTimeFormat},
		{name: "minute out of range", input: "10:60", wantErr: ErrInvalidTimeFormat},
		{name: "missing minutes", input: "10", wantErr: ErrInvalidTimeFormat},
		{name: "seconds not accepted", input: "10:00:00", wantErr: ErrInvalidTimeFormat},
		{name: "empty", input: "", wantErr: ErrInvalidTimeFormat},
		{name: "garbage", input: "ab:cd", wantErr: ErrInvalidTimeFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_MinutesRoundTrip(t *testing.T) {
	assert.Equal(t, 0, TimeString("00:00").Minutes())
	assert.Equal(t, 570, TimeString("09:30").Minutes())
	assert.Equal(t, 1439, TimeString("23:59").Minutes())

	assert.Equal(t, TimeString("09:30"), FromMinutes(570))
	assert.Equal(t, TimeString("00:00"), FromMinutes(0))
}

func TestTimeString_AddMinutes(t *testing.T) {
	got, err := TimeString("09:00").AddMinutes(90)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:30").Minutes(), got.Minutes())

	got, err = TimeString("10:30").AddMinutes(-30)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:00"), got)

	// Переход через полночь недопустим
	_, err = TimeString("23:30").AddMinutes(60)
	require.ErrorIs(t, err, ErrTimeOutOfRange)

	_, err = TimeString("00:30").AddMinutes(-60)
	require.ErrorIs(t, err, ErrTimeOutOfRange)

	_, err = TimeString("not a time").AddMinutes(30)
	require.ErrorIs(t, err, ErrInvalidTimeFormat)
}

func TestTimeString_Ordering(t *testing.T) {
	a, b := TimeString("09:00"), TimeString("16:30")

	assert.True(t, a.IsBefore(b))
	assert.False(t, b.IsBefore(a))
	assert.True(t, b.IsAfter(a))
	assert.False(t, a.IsBefore(a))
	assert.False(t, a.IsAfter(a))
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	// Postgres TIME приходит как "HH:MM:SS"
	require.NoError(t, ts.Scan("09:30:00"))
	assert.Equal(t, TimeString("09:30"), ts)

	require.NoError(t, ts.Scan([]byte("16:30:00")))
	assert.Equal(t, TimeString("16:30"), ts)

	require.NoError(t, ts.Scan(time.Date(2026, 9, 10, 12, 45, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("12:45"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	require.Error(t, ts.Scan(42))
}

func TestTimeString_Value(t *testing.T) {
	v, err := TimeString("09:00").Value()
	require.NoError(t, err)
	assert.Equal(t, "09:00", v)

	_, err = TimeString("25:00").Value()
	require.ErrorIs(t, err, ErrInvalidTimeFormat)
}
