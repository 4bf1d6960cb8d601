package render

import (
	"math"
	"strconv"
	"time"
)

// RelativeDate formats t relative to now: "Mon at 3 pm UTC" within the
// last week, "3rd Feb" within the last year and "3rd Feb, 2020" before.
func RelativeDate(t, now time.Time) string {
	t = t.UTC()
	switch {
	case !t.Before(now.AddDate(0, 0, -7)):
		return t.Format("Mon") + " at " + t.Format("3 pm") + " UTC"
	case !t.Before(now.AddDate(-1, 0, 0)):
		return ordinal(t.Day()) + " " + t.Format("Jan")
	default:
		return ordinal(t.Day()) + " " + t.Format("Jan") + ", " + strconv.Itoa(t.Year())
	}
}

func ordinal(n int) string {
	suffix := "th"
	switch n % 100 {
	case 11, 12, 13:
	default:
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return strconv.Itoa(n) + suffix
}

var approxUnits = []string{"k", "m", "b", "t"}

// Approx formats n with at most three significant digits and a magnitude
// suffix: 950, 1.2k, 12k, 3.4m.
func Approx(n int) string {
	v := float64(n)
	if math.Abs(v) < 1000 {
		return strconv.Itoa(n)
	}
	unit := -1
	for math.Abs(v) >= 1000 && unit < len(approxUnits)-1 {
		v /= 1000
		unit++
	}
	var rounded float64
	if math.Abs(v) < 10 {
		rounded = math.Round(v*10) / 10
	} else {
		rounded = math.Round(v)
	}
	if math.Abs(rounded) >= 1000 && unit < len(approxUnits)-1 {
		rounded /= 1000
		unit++
	}
	return strconv.FormatFloat(rounded, 'f', -1, 64) + approxUnits[unit]
}

// Chapters formats a chapter count: "1 chapter", "12 chapters".
func Chapters(n int) string {
	if n == 1 {
		return "1 chapter"
	}
	return strconv.Itoa(n) + " chapters"
}
