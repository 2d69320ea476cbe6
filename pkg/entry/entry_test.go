package entry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseField(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"hh", 0},
		{"7", 7},
		{"07", 7},
		{" 42 ", 42},
		{"12abc", 12},
		{"-3", -3},
		{"+5", 5},
		{"-", 0},
		{"3.9", 3},
		{"99999999999999999999999", int(^uint(0) >> 1)},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseField(tt.in))
		})
	}
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0, ClampHours(-1))
	assert.Equal(t, 99, ClampHours(150))
	assert.Equal(t, 42, ClampHours(42))
	assert.Equal(t, 59, ClampMinutes(60))
	assert.Equal(t, 59, ClampSeconds(1000))
	assert.Equal(t, 0, ClampSeconds(-20))
}

func TestFromFields(t *testing.T) {
	f := FromFields("120", "75", "abc")
	assert.Equal(t, Fields{Hours: 99, Minutes: 59, Seconds: 0}, f)
	assert.Equal(t, "99:59:00", f.String())
	assert.Equal(t, 99*3600+59*60, f.Total())

	assert.Equal(t, 0, FromFields("hh", "mm", "ss").Total())
	assert.Equal(t, 3661, FromFields("1", "1", "1").Total())
}

func TestFieldsTotalClampsRawValues(t *testing.T) {
	assert.Equal(t, 59, Fields{Seconds: 90}.Total())
	assert.Equal(t, 0, Fields{Hours: -1}.Total())
}

func TestPadField(t *testing.T) {
	assert.Equal(t, "00", PadField(0))
	assert.Equal(t, "05", PadField(5))
	assert.Equal(t, "99", PadField(99))
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"90", 90},
		{"0", 0},
		{"1:30", 90},
		{"1:02:03", 3723},
		{"0:75:00", 59 * 60},
		{"1h2m3s", 3723},
		{"1m30s", 90},
		{"1500ms", 1},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDuration(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDurationErrors(t *testing.T) {
	_, err := ParseDuration("  ")
	assert.ErrorIs(t, err, ErrEmptyDuration)

	for _, in := range []string{"soon", "1:x", "1:2:3:4", "5 minutes"} {
		_, err := ParseDuration(in)
		assert.ErrorIs(t, err, ErrBadDuration, in)
	}
}
