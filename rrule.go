package ics

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/samber/mo"
)

// Frequency enumerates the FREQ part of a recurrence rule (RFC 5545
// section 3.3.10).
type Frequency string

const (
	FrequencySecondly Frequency = "SECONDLY"
	FrequencyMinutely Frequency = "MINUTELY"
	FrequencyHourly   Frequency = "HOURLY"
	FrequencyDaily    Frequency = "DAILY"
	FrequencyWeekly   Frequency = "WEEKLY"
	FrequencyMonthly  Frequency = "MONTHLY"
	FrequencyYearly   Frequency = "YEARLY"
)

func (f Frequency) valid() bool {
	switch f {
	case FrequencySecondly, FrequencyMinutely, FrequencyHourly, FrequencyDaily,
		FrequencyWeekly, FrequencyMonthly, FrequencyYearly:
		return true
	}
	return false
}

// Weekday is the two-letter weekday code of the recur grammar.
type Weekday string

const (
	WeekdaySunday    Weekday = "SU"
	WeekdayMonday    Weekday = "MO"
	WeekdayTuesday   Weekday = "TU"
	WeekdayWednesday Weekday = "WE"
	WeekdayThursday  Weekday = "TH"
	WeekdayFriday    Weekday = "FR"
	WeekdaySaturday  Weekday = "SA"
)

func (d Weekday) valid() bool {
	switch d {
	case WeekdaySunday, WeekdayMonday, WeekdayTuesday, WeekdayWednesday,
		WeekdayThursday, WeekdayFriday, WeekdaySaturday:
		return true
	}
	return false
}

// WeekdayNum is a BYDAY element: a weekday with an optional signed ordinal,
// e.g. MO, 2TU, -1SU.
type WeekdayNum struct {
	ordinal int
	day     Weekday
}

// OnWeekday returns the bare form with no ordinal.
func OnWeekday(day Weekday) WeekdayNum {
	return WeekdayNum{day: day}
}

// NthWeekday returns the ordinal form.  The ordinal selects an occurrence
// within the frequency interval and must lie in ±1..53; zero has no meaning
// in the grammar and is rejected.
func NthWeekday(ordinal int, day Weekday) (WeekdayNum, error) {
	if ordinal == 0 {
		return WeekdayNum{}, rangeError("byday ordinal", ordinal, "zero is not a valid occurrence number")
	}
	if ordinal < -53 || ordinal > 53 {
		return WeekdayNum{}, rangeError("byday ordinal", ordinal, "must be within ±1..53")
	}
	return WeekdayNum{ordinal: ordinal, day: day}, nil
}

func (wn WeekdayNum) String() string {
	if wn.ordinal == 0 {
		return string(wn.day)
	}
	return strconv.Itoa(wn.ordinal) + string(wn.day)
}

// RecurrenceRuleConfig collects every part of the recur grammar.  Optional
// scalars use mo.Option so that zero remains an expressible value; list
// parts are simply nil when absent.
type RecurrenceRuleConfig struct {
	Frequency  Frequency
	Interval   mo.Option[int]
	Count      mo.Option[int]
	Until      mo.Option[time.Time]
	BySecond   []int
	ByMinute   []int
	ByHour     []int
	ByDay      []WeekdayNum
	ByMonthDay []int
	ByYearDay  []int
	ByWeekNo   []int
	ByMonth    []int
	BySetPos   []int
	WeekStart  mo.Option[Weekday]
}

// RecurrenceRule is a validated, rendered RRULE value.
type RecurrenceRule struct {
	value string
}

// NewRecurrenceRule validates cfg and renders the RRULE value grammar.
//
// FREQ always leads, followed by INTERVAL, COUNT and UNTIL when present,
// the BYxxx lists in RFC field order, and WKST last.  An UNTIL whose
// time-of-day is exactly 23:59:59 is taken as the end-of-day sentinel for a
// bare calendar date and renders as an 8-digit DATE; any other time renders
// as a full UTC timestamp.
//
// Out-of-domain integers in the BYxxx lists are dropped silently rather
// than rejected, matching the established output of this encoder; negative
// INTERVAL or COUNT values are rejected with *RangeError.
func NewRecurrenceRule(cfg RecurrenceRuleConfig) (*RecurrenceRule, error) {
	if !cfg.Frequency.valid() {
		return nil, rangeError("rrule freq", string(cfg.Frequency), "not a recur frequency")
	}
	if interval, ok := cfg.Interval.Get(); ok && interval < 0 {
		return nil, rangeError("rrule interval", interval, "must not be negative")
	}
	if count, ok := cfg.Count.Get(); ok && count < 0 {
		return nil, rangeError("rrule count", count, "must not be negative")
	}
	for _, wn := range cfg.ByDay {
		if !wn.day.valid() {
			return nil, rangeError("rrule byday", string(wn.day), "not a weekday code")
		}
	}
	if wkst, ok := cfg.WeekStart.Get(); ok && !wkst.valid() {
		return nil, rangeError("rrule wkst", string(wkst), "not a weekday code")
	}

	parts := []string{"FREQ=" + string(cfg.Frequency)}
	if interval, ok := cfg.Interval.Get(); ok {
		parts = append(parts, "INTERVAL="+strconv.Itoa(interval))
	}
	if count, ok := cfg.Count.Get(); ok {
		parts = append(parts, "COUNT="+strconv.Itoa(count))
	}
	if until, ok := cfg.Until.Get(); ok {
		parts = append(parts, "UNTIL="+formatUntil(until))
	}
	parts = appendIntPart(parts, "BYSECOND", cfg.BySecond, func(v int) bool { return v >= 0 && v <= 60 })
	parts = appendIntPart(parts, "BYMINUTE", cfg.ByMinute, func(v int) bool { return v >= 0 && v <= 59 })
	parts = appendIntPart(parts, "BYHOUR", cfg.ByHour, func(v int) bool { return v >= 0 && v <= 23 })
	if len(cfg.ByDay) > 0 {
		days := make([]string, 0, len(cfg.ByDay))
		for _, wn := range cfg.ByDay {
			days = append(days, wn.String())
		}
		parts = append(parts, "BYDAY="+strings.Join(days, ","))
	}
	parts = appendIntPart(parts, "BYMONTHDAY", cfg.ByMonthDay, func(v int) bool { return v != 0 && v >= -31 && v <= 31 })
	parts = appendIntPart(parts, "BYYEARDAY", cfg.ByYearDay, func(v int) bool { return v != 0 && v >= -366 && v <= 366 })
	parts = appendIntPart(parts, "BYWEEKNO", cfg.ByWeekNo, func(v int) bool { return v != 0 && v >= -53 && v <= 53 })
	parts = appendIntPart(parts, "BYMONTH", cfg.ByMonth, func(v int) bool { return v >= 1 && v <= 12 })
	parts = appendIntPart(parts, "BYSETPOS", cfg.BySetPos, func(v int) bool { return v != 0 && v >= -366 && v <= 366 })
	if wkst, ok := cfg.WeekStart.Get(); ok && wkst != WeekdayMonday {
		parts = append(parts, "WKST="+string(wkst))
	}
	return &RecurrenceRule{value: strings.Join(parts, ";")}, nil
}

// Value returns the rendered RRULE value, e.g. FREQ=WEEKLY;BYDAY=MO.
func (r *RecurrenceRule) Value() string {
	return r.value
}

func (r *RecurrenceRule) String() string {
	return fmt.Sprintf("RRULE:%s", r.value)
}

// formatUntil applies the date-vs-date-time decision.  The boundary is
// exact: 23:59:59 is the sentinel, 23:59:58 is an ordinary timestamp.
func formatUntil(t time.Time) string {
	if t.Hour() == 23 && t.Minute() == 59 && t.Second() == 59 {
		return FormatDate(t)
	}
	return FormatDateTimeUTC(t)
}

// appendIntPart renders one BYxxx integer list, keeping only values inside
// the part's numeric domain.  A list left empty by filtering is omitted.
func appendIntPart(parts []string, name string, values []int, inDomain func(int) bool) []string {
	kept := make([]string, 0, len(values))
	for _, v := range values {
		if inDomain(v) {
			kept = append(kept, strconv.Itoa(v))
		}
	}
	if len(kept) == 0 {
		return parts
	}
	return append(parts, name+"="+strings.Join(kept, ","))
}
