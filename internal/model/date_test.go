package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalForm(t *testing.T) {
	assert.Equal(t, "05032020", NewDateKey(5, 3, 2020).CanonicalForm())
	assert.Equal(t, "31122019", NewDateKey(31, 12, 2019).CanonicalForm())
	assert.Equal(t, "0101900", NewDateKey(1, 1, 900).CanonicalForm())
}

func TestEqualKeysHashIdentically(t *testing.T) {
	for y := 2017; y <= 2020; y++ {
		for m := 1; m <= 12; m++ {
			for d := 1; d <= DaysIn(m, y); d++ {
				a, b := NewDateKey(d, m, y), NewDateKey(d, m, y)
				require.True(t, a.Equals(b))
				require.Equal(t, a, b)
				require.Equal(t, a.HashKey(), b.HashKey())
			}
		}
	}
}

func TestDistinctKeysDiffer(t *testing.T) {
	seen := map[string]DateKey{}
	for y := 2017; y <= 2020; y++ {
		for m := 1; m <= 12; m++ {
			for d := 1; d <= 31; d++ {
				k := NewDateKey(d, m, y)
				prev, dup := seen[k.CanonicalForm()]
				require.False(t, dup, "%v collides with %v", k, prev)
				seen[k.CanonicalForm()] = k
			}
		}
	}

	a, b := NewDateKey(1, 12, 2020), NewDateKey(11, 2, 2020)
	assert.False(t, a.Equals(b))
	assert.NotEqual(t, a.CanonicalForm(), b.CanonicalForm())
	assert.False(t, NewDateKey(1, 1, 2020).Equals(NewDateKey(1, 1, 2019)))
	assert.False(t, NewDateKey(1, 1, 2020).Equals(NewDateKey(2, 1, 2020)))
}

func TestOutOfRangeAccepted(t *testing.T) {
	k := NewDateKey(31, 2, 2019)
	assert.Equal(t, 31, k.Day())
	assert.Equal(t, 2, k.Month())
	assert.False(t, k.Valid())
}

func TestValid(t *testing.T) {
	assert.True(t, NewDateKey(29, 2, 2020).Valid())
	assert.False(t, NewDateKey(29, 2, 2019).Valid())
	assert.True(t, NewDateKey(30, 4, 2018).Valid())
	assert.False(t, NewDateKey(31, 4, 2018).Valid())
	assert.False(t, NewDateKey(0, 1, 2018).Valid())
	assert.False(t, NewDateKey(1, 13, 2018).Valid())
	assert.False(t, NewDateKey(1, 1, 0).Valid())
}

func TestParseDateKey(t *testing.T) {
	k, err := ParseDateKey("2020-03-05")
	require.NoError(t, err)
	assert.Equal(t, NewDateKey(5, 3, 2020), k)
	assert.Equal(t, "2020-03-05", k.String())

	_, err = ParseDateKey("2019-02-29")
	assert.Error(t, err)
	_, err = ParseDateKey("05/03/2020")
	assert.Error(t, err)
	_, err = ParseDateKey("0000-03-05")
	assert.Error(t, err)
}

func TestBefore(t *testing.T) {
	assert.True(t, NewDateKey(31, 12, 2019).Before(NewDateKey(1, 1, 2020)))
	assert.True(t, NewDateKey(1, 2, 2020).Before(NewDateKey(1, 3, 2020)))
	assert.True(t, NewDateKey(1, 3, 2020).Before(NewDateKey(2, 3, 2020)))
	assert.False(t, NewDateKey(2, 3, 2020).Before(NewDateKey(2, 3, 2020)))
}

func TestCalendarHelpers(t *testing.T) {
	assert.Equal(t, 28, DaysIn(2, 2019))
	assert.Equal(t, 29, DaysIn(2, 2020))
	assert.Equal(t, 30, DaysIn(11, 2020))
	assert.Equal(t, 31, DaysIn(12, 2020))
	assert.Equal(t, 0, DaysIn(13, 2020))

	m, ok := MonthByName("september")
	assert.True(t, ok)
	assert.Equal(t, 9, m)
	_, ok = MonthByName("Smarch")
	assert.False(t, ok)

	assert.Equal(t, []int{2017, 2018, 2019, 2020}, Years(2017, 2020))
	assert.Empty(t, Years(2021, 2020))
}
