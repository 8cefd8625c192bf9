// Package calendar projects an instant onto civil-calendar fields under a
// local or UTC view, and provides the pure calendar arithmetic (leap years,
// day of year, ISO-8601 weeks) the format fields are built from.
package calendar

import "time"

// View selects which civil-calendar interpretation of an instant is used.
type View uint8

const (
	// Local interprets instants in the formatter's location.
	Local View = iota
	// UTC interprets instants in UTC; zone fields report GMT with a zero offset.
	UTC
)

func (v View) String() string {
	if v == UTC {
		return "utc"
	}
	return "local"
}

// Accessor exposes the civil-calendar decomposition of an instant.
// Month is zero based and Weekday counts from Sunday = 0.
type Accessor interface {
	UnixMilli() int64
	Year() int
	Month() int
	Day() int
	Weekday() int
	Hour() int
	Minute() int
	Second() int
}

// Fields is an Accessor decomposed once from a time.Time. It is a plain
// value; building it is the only place the time package is consulted for
// calendar fields.
type Fields struct {
	t      time.Time
	millis int64
	view   View

	year, month, day int
	wday             int
	hour, min, sec   int
}

// New decomposes t under view v. For the Local view t is moved into loc
// (nil means time.Local); the UTC view ignores loc.
func New(t time.Time, v View, loc *time.Location) Fields {
	if v == UTC {
		t = t.UTC()
	} else {
		if loc == nil {
			loc = time.Local
		}
		t = t.In(loc)
	}
	year, month, day := t.Date()
	hour, min, sec := t.Clock()
	return Fields{
		t:      t,
		millis: t.UnixMilli(),
		view:   v,
		year:   year,
		month:  int(month) - 1,
		day:    day,
		wday:   int(t.Weekday()),
		hour:   hour,
		min:    min,
		sec:    sec,
	}
}

// FromMillis decomposes an epoch-milliseconds timestamp.
func FromMillis(ms int64, v View, loc *time.Location) Fields {
	return New(time.UnixMilli(ms), v, loc)
}

func (f *Fields) UnixMilli() int64 { return f.millis }
func (f *Fields) Year() int        { return f.year }
func (f *Fields) Month() int       { return f.month }
func (f *Fields) Day() int         { return f.day }
func (f *Fields) Weekday() int     { return f.wday }
func (f *Fields) Hour() int        { return f.hour }
func (f *Fields) Minute() int      { return f.min }
func (f *Fields) Second() int      { return f.sec }

// View reports which interpretation the fields were built with.
func (f *Fields) View() View { return f.view }

// Time returns the instant in the view's location.
func (f *Fields) Time() time.Time { return f.t }

var _ Accessor = (*Fields)(nil)
