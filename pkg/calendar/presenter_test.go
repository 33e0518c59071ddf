package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresenter_StartsOnToday(t *testing.T) {
	today := Date{2025, time.November, 10}
	p := NewPresenter(today)

	assert.Equal(t, DateSelected, p.State())
	sel := p.Selection()
	require.NotNil(t, sel.Date)
	assert.Equal(t, today, *sel.Date)
	assert.Nil(t, sel.Time)
	assert.False(t, sel.Complete())
	assert.Len(t, p.Slots(), 17)
}

func TestPresenter_SelectSlotThenDateClearsTime(t *testing.T) {
	p := NewPresenter(Date{2025, time.November, 10})

	require.NoError(t, p.SelectSlot(TimeOfDay{Hour: 14}))
	assert.Equal(t, DateAndTimeSelected, p.State())
	assert.True(t, p.Selection().Complete())

	require.NoError(t, p.SelectDate(Date{2025, time.November, 15}))
	assert.Equal(t, DateSelected, p.State())
	assert.Nil(t, p.Selection().Time)
	assert.Len(t, p.Slots(), 9)

	// Re-selecting the same date still drops the time.
	require.NoError(t, p.SelectSlot(TimeOfDay{Hour: 9, Minute: 30}))
	require.NoError(t, p.SelectDate(Date{2025, time.November, 15}))
	assert.Equal(t, DateSelected, p.State())
}

func TestPresenter_RejectsPastDate(t *testing.T) {
	today := Date{2025, time.November, 10}
	p := NewPresenter(today)
	require.NoError(t, p.SelectSlot(TimeOfDay{Hour: 8}))

	err := p.SelectDate(Date{2025, time.November, 9})
	assert.ErrorIs(t, err, ErrPastDate)
	assert.Equal(t, DateAndTimeSelected, p.State())
	assert.Equal(t, today, *p.Selection().Date)
}

func TestPresenter_RejectsNonexistentDate(t *testing.T) {
	today := Date{2025, time.January, 10}
	p := NewPresenter(today)

	for _, d := range []Date{{2025, time.February, 30}, {2025, time.April, 31}, {2025, 13, 1}, {2025, time.March, 0}} {
		assert.ErrorIs(t, p.SelectDate(d), ErrInvalidDate, d.String())
	}
	assert.Equal(t, today, *p.Selection().Date)
	assert.Len(t, p.Slots(), 17)

	require.NoError(t, p.SelectDate(Date{2028, time.February, 29}))
}

func TestPresenter_RejectsSlotNotOffered(t *testing.T) {
	p := NewPresenter(Date{2025, time.November, 10})

	assert.ErrorIs(t, p.SelectSlot(TimeOfDay{Hour: 16, Minute: 30}), ErrSlotNotOffered)
	assert.ErrorIs(t, p.SelectSlot(TimeOfDay{Hour: 7}), ErrSlotNotOffered)

	require.NoError(t, p.SelectDate(Date{2025, time.November, 16}))
	assert.Empty(t, p.Slots())
	assert.ErrorIs(t, p.SelectSlot(TimeOfDay{Hour: 9}), ErrSlotNotOffered)
	assert.Equal(t, DateSelected, p.State())
}

func TestPresenter_ZeroValueHasNoDate(t *testing.T) {
	var p Presenter
	assert.Equal(t, NoDateSelected, p.State())
	assert.ErrorIs(t, p.SelectSlot(TimeOfDay{Hour: 9}), ErrNoDateSelected)
}

func TestPresenter_MonthNavigation(t *testing.T) {
	p := NewPresenter(Date{2025, time.January, 15})

	assert.Equal(t, MonthView{Year: 2024, Month: time.December}, p.PrevMonth())
	assert.Equal(t, MonthView{Year: 2025, Month: time.January}, p.NextMonth())

	for i := 0; i < 11; i++ {
		p.NextMonth()
	}
	assert.Equal(t, MonthView{Year: 2025, Month: time.December}, p.View())
	assert.Equal(t, MonthView{Year: 2026, Month: time.January}, p.NextMonth())

	cells := p.Cells()
	assert.Equal(t, time.January, cells[len(cells)-1].Date.Month)
	assert.Equal(t, 31, cells[len(cells)-1].Date.Day)
}

func TestPresenter_WeekMode(t *testing.T) {
	today := Date{2025, time.November, 10}
	p := NewPresenter(today, WithMode(ModeWeek), WithWeekStart(time.Monday))

	cells := p.Cells()
	require.Len(t, cells, 7)
	assert.Equal(t, today, cells[0].Date)

	p.SetMode(ModeMonth)
	assert.Equal(t, ModeMonth, p.Mode())
	assert.Len(t, p.Cells(), 5+30)
}
