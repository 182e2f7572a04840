package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDaysPastDue(t *testing.T) {
	today := "2024-06-15"

	tests := []struct {
		name    string
		dueDate string
		want    int
	}{
		{"overdue", "2024-06-10", 5},
		{"due today", "2024-06-15", 0},
		{"not yet due", "2024-06-20", -5},
		{"month boundary", "2024-05-31", 15},
		{"empty due date", "", 0},
		{"malformed due date", "15/06/2024", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysPastDue(today, tt.dueDate))
		})
	}
}

func TestDaysPastDueMalformedToday(t *testing.T) {
	assert.Equal(t, 0, DaysPastDue("garbage", "2024-06-10"))
}

func TestIsValidDate(t *testing.T) {
	assert.True(t, IsValidDate("2024-02-29"))
	assert.False(t, IsValidDate("2023-02-29"))
	assert.False(t, IsValidDate("2024-13-01"))
	assert.False(t, IsValidDate("2024-6-1"))
	assert.False(t, IsValidDate(""))
}

func TestDateHelpersWellFormed(t *testing.T) {
	assert.True(t, IsValidDate(TodayISO()))
	assert.True(t, IsValidDate(DateAddDays(15)))
	assert.True(t, IsValidDate(DateAddDays(-30)))

	// Lexical order must track chronological order.
	assert.Less(t, TodayISO(), DateAddDays(1))
	assert.Less(t, DateAddDays(-1), TodayISO())
}
