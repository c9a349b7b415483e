package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want int
	}{
		{"regular date", time.Date(2023, time.September, 13, 0, 0, 0, 0, time.UTC), 20230913},
		{"single digit month and day", time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC), 20240105},
		{"end of year", time.Date(1999, time.December, 31, 23, 59, 59, 0, time.UTC), 19991231},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Encode(tt.in))
		})
	}
}

func TestDecode(t *testing.T) {
	got, err := Decode(20230913)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2023, time.September, 13, 0, 0, 0, 0, time.UTC), got)
}

func TestDecodeRejectsInvalid(t *testing.T) {
	for _, d := range []int{0, -1, 20231301, 20230230, 20230100, 123} {
		_, err := Decode(d)
		assert.Error(t, err, "expected %d to be rejected", d)
	}
}

func TestRoundTrip(t *testing.T) {
	day := time.Date(2020, time.February, 29, 0, 0, 0, 0, time.UTC)
	decoded, err := Decode(Encode(day))
	require.NoError(t, err)
	assert.True(t, decoded.Equal(day))
}

func TestTodayIsValid(t *testing.T) {
	assert.True(t, Valid(Today()))
}
