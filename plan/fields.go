package plan

import (
	"strconv"

	"github.com/IvanBrykalov/phpdate/calendar"
	"github.com/IvanBrykalov/phpdate/internal/util"
)

var (
	shortDays = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	longDays  = [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

	shortMonths = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}
	longMonths  = [12]string{"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December"}
)

const (
	msPerDay  = 86_400_000
	msPerHour = 3_600_000
)

// fields maps each field letter to its appender. c and r are handled by
// the compiler because they expand through the plan cache.
var fields = [128]appender{
	// day
	'd': func(b []byte, s *State) []byte { return util.Append2(b, s.Cal.Day()) },
	'D': func(b []byte, s *State) []byte { return append(b, shortDays[s.Cal.Weekday()]...) },
	'j': func(b []byte, s *State) []byte { return util.AppendInt(b, s.Cal.Day(), 0) },
	'l': func(b []byte, s *State) []byte { return append(b, longDays[s.Cal.Weekday()]...) },
	'N': func(b []byte, s *State) []byte { return util.AppendInt(b, calendar.ISOWeekday(s.Cal.Weekday()), 0) },
	'S': func(b []byte, s *State) []byte { return append(b, calendar.OrdinalSuffix(s.Cal.Day())...) },
	'w': func(b []byte, s *State) []byte { return util.AppendInt(b, s.Cal.Weekday(), 0) },
	'z': func(b []byte, s *State) []byte { return util.AppendInt(b, calendar.DayOfYear(&s.Cal), 0) },

	// week
	'W': func(b []byte, s *State) []byte { return util.Append2(b, calendar.ISOWeek(&s.Cal)) },

	// month
	'F': func(b []byte, s *State) []byte { return append(b, longMonths[s.Cal.Month()]...) },
	'M': func(b []byte, s *State) []byte { return append(b, shortMonths[s.Cal.Month()]...) },
	'm': func(b []byte, s *State) []byte { return util.Append2(b, s.Cal.Month()+1) },
	'n': func(b []byte, s *State) []byte { return util.AppendInt(b, s.Cal.Month()+1, 0) },
	't': func(b []byte, s *State) []byte { return util.AppendInt(b, calendar.DaysInMonth(&s.Cal), 0) },

	// year
	'L': func(b []byte, s *State) []byte { return appendBool(b, calendar.IsLeapYear(s.Cal.Year())) },
	'o': func(b []byte, s *State) []byte { return util.AppendInt(b, calendar.ISOYear(&s.Cal), 4) },
	'Y': func(b []byte, s *State) []byte { return util.AppendInt(b, s.Cal.Year(), 4) },
	'y': func(b []byte, s *State) []byte { return util.Append2(b, abs(s.Cal.Year())%100) },

	// time
	'a': func(b []byte, s *State) []byte { return append(b, meridiem(s.Cal.Hour(), "am", "pm")...) },
	'A': func(b []byte, s *State) []byte { return append(b, meridiem(s.Cal.Hour(), "AM", "PM")...) },
	'B': func(b []byte, s *State) []byte { return util.AppendInt(b, swatch(s.Cal.UnixMilli()), 3) },
	'g': func(b []byte, s *State) []byte { return util.AppendInt(b, calendar.Hour12(&s.Cal), 0) },
	'G': func(b []byte, s *State) []byte { return util.AppendInt(b, s.Cal.Hour(), 0) },
	'h': func(b []byte, s *State) []byte { return util.Append2(b, calendar.Hour12(&s.Cal)) },
	'H': func(b []byte, s *State) []byte { return util.Append2(b, s.Cal.Hour()) },
	'i': func(b []byte, s *State) []byte { return util.Append2(b, s.Cal.Minute()) },
	's': func(b []byte, s *State) []byte { return util.Append2(b, s.Cal.Second()) },
	'u': func(b []byte, s *State) []byte { return util.AppendInt(b, int(floorMod(s.Cal.UnixMilli(), 1000))*1000, 6) },

	// timezone
	'e': func(b []byte, s *State) []byte { return append(b, s.Zone().Name...) },
	'I': func(b []byte, s *State) []byte { return appendBool(b, s.Zone().DST) },
	'O': func(b []byte, s *State) []byte { return appendOffset(b, s, false) },
	'P': func(b []byte, s *State) []byte { return appendOffset(b, s, true) },
	'T': func(b []byte, s *State) []byte { return append(b, s.Zone().Abbrev...) },
	'Z': func(b []byte, s *State) []byte { return strconv.AppendInt(b, int64(s.Zone().Offset), 10) },

	// full date/time
	'U': func(b []byte, s *State) []byte { return strconv.AppendInt(b, floorDiv(s.Cal.UnixMilli(), 1000), 10) },
}

// IsField reports whether c is a field letter, including c and r.
func IsField(c byte) bool {
	return c == 'c' || c == 'r' || (c < 128 && fields[c] != nil)
}

func appendOffset(b []byte, s *State, colon bool) []byte {
	z := s.Zone()
	b = append(b, z.Sign)
	b = util.Append2(b, z.Hours)
	if colon {
		b = append(b, ':')
	}
	return util.Append2(b, z.Minutes)
}

// swatch returns Internet time beats: UTC+1, no DST, 1000 beats per day.
func swatch(ms int64) int {
	return int(1000 * floorMod(ms+msPerHour, msPerDay) / msPerDay)
}

func meridiem(hour int, am, pm string) string {
	if hour < 12 {
		return am
	}
	return pm
}

func appendBool(b []byte, v bool) []byte {
	if v {
		return append(b, '1')
	}
	return append(b, '0')
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func floorMod(a, n int64) int64 {
	a %= n
	if a < 0 {
		a += n
	}
	return a
}

func floorDiv(a, n int64) int64 {
	q := a / n
	if a%n < 0 {
		q--
	}
	return q
}
