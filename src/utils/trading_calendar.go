package utils

import (
	"strings"
	"time"

	"github.com/scmhub/calendar"
)

// TradingCalendar answers market-open questions for a symbol's exchange
// using scmhub/calendar, with a simple Mon-Fri fallback when the MIC is
// unknown to the library.
type TradingCalendar struct {
	Calendar *calendar.Calendar
	Fallback bool
	Timezone *time.Location
}

// -----------------------------------------------------------------------------

// GetCalendar maps a ticker suffix to an exchange calendar (ISO 10383 MIC).
// Suffix-less tickers are treated as US/NYSE.
func GetCalendar(symbol string) *TradingCalendar {
	mic := "xnys"
	switch {
	case strings.HasSuffix(symbol, ".L"):
		mic = "xlon"
	case strings.HasSuffix(symbol, ".PA"):
		mic = "xpar"
	case strings.HasSuffix(symbol, ".DE"):
		mic = "xfra"
	case strings.HasSuffix(symbol, ".AS"):
		mic = "xams"
	case strings.HasSuffix(symbol, ".MI"):
		mic = "xmil"
	case strings.HasSuffix(symbol, ".MC"):
		mic = "xmad"
	case strings.HasSuffix(symbol, ".SW"):
		mic = "xswx"
	case strings.HasSuffix(symbol, ".TO"):
		mic = "xtse"
	case strings.HasSuffix(symbol, ".T"):
		mic = "xtks"
	case strings.HasSuffix(symbol, ".HK"):
		mic = "xhkg"
	case strings.HasSuffix(symbol, ".AX"):
		mic = "xasx"
	case strings.HasSuffix(symbol, ".SS"):
		mic = "xshg"
	case strings.HasSuffix(symbol, ".SZ"):
		mic = "xshe"
	}

	cal := calendar.GetCalendar(mic)
	if cal == nil {
		cal = calendar.GetCalendar("xnys")
	}

	if cal == nil {
		// Library could not provide a calendar: Mon-Fri 09:30-16:00 NY time.
		nyLoc, _ := time.LoadLocation("America/New_York")
		if nyLoc == nil {
			nyLoc = time.UTC
		}
		return &TradingCalendar{Fallback: true, Timezone: nyLoc}
	}

	return &TradingCalendar{Calendar: cal, Fallback: false, Timezone: cal.Loc}
}

// -----------------------------------------------------------------------------

func (tc *TradingCalendar) IsTradingDay(date time.Time) bool {
	if tc.Timezone != nil {
		date = date.In(tc.Timezone)
	}

	if tc.Fallback {
		weekday := date.Weekday()
		return weekday != time.Saturday && weekday != time.Sunday
	}
	return tc.Calendar.IsBusinessDay(date)
}

// -----------------------------------------------------------------------------

// IsOpenOnMinute checks if the market is open at a specific minute.
func (tc *TradingCalendar) IsOpenOnMinute(t time.Time) bool {
	if tc.Timezone != nil {
		t = t.In(tc.Timezone)
	}

	if tc.Fallback {
		if !tc.IsTradingDay(t) {
			return false
		}

		hour := t.Hour()
		minute := t.Minute()

		// 9:30 - 16:00 NY Time
		if (hour > 9 || (hour == 9 && minute >= 30)) && hour < 16 {
			return true
		}
		return false
	}

	return tc.Calendar.IsOpen(t)
}
