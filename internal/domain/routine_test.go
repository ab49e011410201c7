package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRecurrenceRule(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want RecurrenceRule
	}{
		{
			name: "valid rule",
			raw:  `{"days":["Mon","Wed","Fri"],"time":"09:00"}`,
			want: RecurrenceRule{Days: []Weekday{Mon, Wed, Fri}, Time: "09:00"},
		},
		{
			name: "days only",
			raw:  `{"days":["Sat"]}`,
			want: RecurrenceRule{Days: []Weekday{Sat}},
		},
		{
			name: "empty input",
			raw:  "",
			want: RecurrenceRule{},
		},
		{
			name: "malformed json",
			raw:  `{"days":[`,
			want: RecurrenceRule{},
		},
		{
			name: "wrong shape",
			raw:  `{"days":"Mon"}`,
			want: RecurrenceRule{},
		},
		{
			name: "unknown tokens preserved for expansion to skip",
			raw:  `{"days":["Monday","Tue"]}`,
			want: RecurrenceRule{Days: []Weekday{"Monday", Tue}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseRecurrenceRule([]byte(tt.raw)))
		})
	}
}

func TestRecurrenceRule_Empty(t *testing.T) {
	assert.True(t, RecurrenceRule{}.Empty())
	assert.True(t, RecurrenceRule{Time: "09:00"}.Empty())
	assert.False(t, RecurrenceRule{Days: []Weekday{Mon}}.Empty())
}

func TestWeekday_StdWeekday(t *testing.T) {
	d, ok := Wed.StdWeekday()
	assert.True(t, ok)
	assert.Equal(t, "Wednesday", d.String())

	_, ok = Weekday("Wednesday").StdWeekday()
	assert.False(t, ok)
}

func TestRole_CanManageRoutines(t *testing.T) {
	assert.True(t, RoleOwner.CanManageRoutines())
	assert.True(t, RoleAdmin.CanManageRoutines())
	assert.False(t, RoleMember.CanManageRoutines())
}
