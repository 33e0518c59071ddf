package calendar

import (
	"errors"
	"time"
)

var (
	ErrPastDate       = errors.New("cannot select a date in the past")
	ErrNoDateSelected = errors.New("select a date first")
	ErrSlotNotOffered = errors.New("time slot is not offered on the selected date")
)

// State is the selection state of a Presenter.
type State int

const (
	NoDateSelected State = iota
	DateSelected
	DateAndTimeSelected
)

func (s State) String() string {
	switch s {
	case DateSelected:
		return "date_selected"
	case DateAndTimeSelected:
		return "date_and_time_selected"
	default:
		return "no_date_selected"
	}
}

// Selection is the (date, time) pair currently chosen. Either field may be nil.
type Selection struct {
	Date *Date
	Time *TimeOfDay
}

// Complete reports whether both a date and a time are chosen.
func (s Selection) Complete() bool {
	return s.Date != nil && s.Time != nil
}

type Option func(*Presenter)

// WithWeekStart sets the first column of the month grid. Sunday is the default.
func WithWeekStart(wd time.Weekday) Option {
	return func(p *Presenter) {
		p.weekStart = wd
	}
}

func WithMode(m Mode) Option {
	return func(p *Presenter) {
		p.mode = m
	}
}

// Presenter holds the transient selection of the booking page. It never reads
// the wall clock; today is fixed when it is created.
type Presenter struct {
	today     Date
	weekStart time.Weekday
	mode      Mode
	view      MonthView

	date  *Date
	time  *TimeOfDay
	slots []Slot
}

// NewPresenter starts in DateSelected with today selected and its slots generated.
func NewPresenter(today Date, opts ...Option) *Presenter {
	p := &Presenter{
		today:     today,
		weekStart: time.Sunday,
		mode:      ModeMonth,
		view:      MonthOf(today),
	}
	for _, opt := range opts {
		opt(p)
	}

	d := today
	p.date = &d
	p.slots = GenerateSlots(d)
	return p
}

func (p *Presenter) State() State {
	switch {
	case p.date == nil:
		return NoDateSelected
	case p.time == nil:
		return DateSelected
	default:
		return DateAndTimeSelected
	}
}

func (p *Presenter) Today() Date {
	return p.today
}

// SelectDate makes d the active date. The previous time choice is always
// dropped and the slots are regenerated for d. A day that does not exist is
// rejected with ErrInvalidDate.
func (p *Presenter) SelectDate(d Date) error {
	if !d.Valid() {
		return ErrInvalidDate
	}
	if d.Before(p.today) {
		return ErrPastDate
	}
	p.date = &d
	p.time = nil
	p.slots = GenerateSlots(d)
	return nil
}

// SelectSlot makes t the active time. t must be one of the slots of the active date.
func (p *Presenter) SelectSlot(t TimeOfDay) error {
	if p.date == nil {
		return ErrNoDateSelected
	}
	for _, s := range p.slots {
		if s.Time == t {
			p.time = &t
			return nil
		}
	}
	return ErrSlotNotOffered
}

// Slots returns the slots of the active date.
func (p *Presenter) Slots() []Slot {
	out := make([]Slot, len(p.slots))
	copy(out, p.slots)
	return out
}

func (p *Presenter) Selection() Selection {
	var sel Selection
	if p.date != nil {
		d := *p.date
		sel.Date = &d
	}
	if p.time != nil {
		t := *p.time
		sel.Time = &t
	}
	return sel
}

func (p *Presenter) Mode() Mode {
	return p.mode
}

func (p *Presenter) SetMode(m Mode) {
	p.mode = m
}

func (p *Presenter) View() MonthView {
	return p.view
}

func (p *Presenter) PrevMonth() MonthView {
	p.view = p.view.Prev()
	return p.view
}

func (p *Presenter) NextMonth() MonthView {
	p.view = p.view.Next()
	return p.view
}

// Cells renders the current mode: the week starting today, or the viewed month.
func (p *Presenter) Cells() []Cell {
	if p.mode == ModeWeek {
		return RenderCalendar(p.today, p.today, ModeWeek, p.weekStart)
	}
	return RenderCalendar(p.view.FirstDay(), p.today, ModeMonth, p.weekStart)
}
