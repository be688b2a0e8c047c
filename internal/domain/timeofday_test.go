package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeOfDay(t *testing.T) {
	t.Parallel()

	d, err := NewTimeOfDay(13, 45, 30)
	require.NoError(t, err)
	assert.Equal(t, 13, d.Hour())
	assert.Equal(t, 45, d.Minute())
	assert.Equal(t, 30, d.Second())
	assert.Equal(t, 13*3600+45*60+30, d.Seconds())
	assert.Equal(t, "13:45:30", d.String())
	assert.Equal(t, "13:45", d.HHMM())

	for _, c := range [][3]int{{24, 0, 0}, {0, 60, 0}, {0, 0, 60}, {-1, 0, 0}} {
		_, err := NewTimeOfDay(c[0], c[1], c[2])
		assert.Error(t, err, "%v", c)
	}
}

func TestTimeOfDayOf_IgnoresDate(t *testing.T) {
	t.Parallel()

	a := TimeOfDayOf(time.Date(2024, 8, 1, 7, 15, 0, 0, time.UTC))
	b := TimeOfDayOf(time.Date(2023, 2, 28, 7, 15, 0, 0, time.UTC))
	assert.Equal(t, a, b)

	day := time.Date(2024, 8, 3, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 8, 3, 7, 15, 0, 0, time.UTC), a.On(day))
}
