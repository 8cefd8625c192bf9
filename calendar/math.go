package calendar

var monthDays = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// IsLeapYear applies the Gregorian rule.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInYear returns 365 or 366.
func DaysInYear(year int) int {
	if IsLeapYear(year) {
		return 366
	}
	return 365
}

// MonthDays returns the length of a zero-based month of year.
func MonthDays(year, month int) int {
	if month == 1 && IsLeapYear(year) {
		return 29
	}
	return monthDays[month]
}

// YearDay returns the zero-based day of year (Jan 1 = 0).
func YearDay(year, month, day int) int {
	n := day - 1
	for m := 0; m < month; m++ {
		n += monthDays[m]
	}
	if month > 1 && IsLeapYear(year) {
		n++
	}
	return n
}

// DayOfYear is YearDay over an Accessor.
func DayOfYear(a Accessor) int { return YearDay(a.Year(), a.Month(), a.Day()) }

// DaysInMonth is MonthDays over an Accessor.
func DaysInMonth(a Accessor) int { return MonthDays(a.Year(), a.Month()) }

// ISOWeekday converts Sunday=0..Saturday=6 to Monday=1..Sunday=7.
func ISOWeekday(wday int) int {
	if wday == 0 {
		return 7
	}
	return wday
}

// WeekOf returns the ISO-8601 week number for the day at zero-based yday of
// year whose weekday is wday (Sunday = 0).
//
// Week 1 is the Monday-started week holding the year's first Thursday.
// Days before that week belong to the last week of the previous year, which
// is found by recursing on Dec 31 of that year.
func WeekOf(year, yday, wday int) int {
	isoDay := ISOWeekday(wday) - 1 // Monday = 0

	// offset from Jan 1 of the Monday starting ISO week 1, in [-3, 3]
	base := yday%7 - isoDay
	if base < -3 {
		base += 7
	} else if base > 3 {
		base -= 7
	}

	switch {
	case yday < base:
		prev := year - 1
		return WeekOf(prev, DaysInYear(prev)-1, mod(wday-(yday+1), 7))
	case yday+(3-isoDay) >= DaysInYear(year):
		// this week's Thursday falls in the next year
		return 1
	default:
		return 1 + (yday-base)/7
	}
}

// ISOWeek returns the ISO-8601 week number (1..53).
func ISOWeek(a Accessor) int {
	return WeekOf(a.Year(), DayOfYear(a), a.Weekday())
}

// ISOYear returns the year the ISO week of a belongs to.
func ISOYear(a Accessor) int {
	week := ISOWeek(a)
	switch {
	case week > 50 && a.Month() == 0:
		return a.Year() - 1
	case week == 1 && a.Month() == 11:
		return a.Year() + 1
	default:
		return a.Year()
	}
}

// Hour12 maps 0..23 onto the 12-hour clock, with 0 and 12 both reading 12.
func Hour12(a Accessor) int {
	h := a.Hour() % 12
	if h == 0 {
		return 12
	}
	return h
}

var suffixes = [10]string{"th", "st", "nd", "rd", "th", "th", "th", "th", "th", "th"}

// OrdinalSuffix returns the English suffix for a day of month.
func OrdinalSuffix(day int) string {
	if n := day % 100; n > 10 && n < 20 {
		return "th"
	}
	return suffixes[day%10]
}

func mod(a, n int) int {
	a %= n
	if a < 0 {
		a += n
	}
	return a
}
