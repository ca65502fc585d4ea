package ics

import (
	"fmt"
	"strings"
	"time"
)

// Lexical layouts for the date and time value types of RFC 5545 section 3.3.
const (
	icalTimestampFormatUtc   = "20060102T150405Z"
	icalTimestampFormatLocal = "20060102T150405"
	icalDateFormat           = "20060102"
)

// FormatDateTimeUTC renders t as a DATE-TIME in UTC form (section 3.3.5),
// converting from whatever zone t carries.
func FormatDateTimeUTC(t time.Time) string {
	return t.UTC().Format(icalTimestampFormatUtc)
}

// FormatDateTimeFloating renders t as a floating DATE-TIME with no zone
// designator.  A floating value has no absolute meaning; the caller owns
// that interpretation.
func FormatDateTimeFloating(t time.Time) string {
	return t.Format(icalTimestampFormatLocal)
}

// FormatDate renders t as a DATE (section 3.3.4).
func FormatDate(t time.Time) string {
	return t.Format(icalDateFormat)
}

// FormatDuration renders d in the ISO 8601 shape used by the DURATION value
// type (section 3.3.6), e.g. PT1H, -PT15M, P2DT3H.  Sub-second precision is
// truncated; the grammar has no slot for it.
func FormatDuration(d time.Duration) string {
	b := &strings.Builder{}
	if d < 0 {
		b.WriteByte('-')
		d = -d
	}
	b.WriteByte('P')
	days := d / (24 * time.Hour)
	d -= days * 24 * time.Hour
	if days > 0 {
		fmt.Fprintf(b, "%dD", days)
	}
	hours := d / time.Hour
	minutes := d % time.Hour / time.Minute
	seconds := d % time.Minute / time.Second
	if hours == 0 && minutes == 0 && seconds == 0 {
		if days == 0 {
			b.WriteString("T0S")
		}
		return b.String()
	}
	b.WriteByte('T')
	if hours > 0 {
		fmt.Fprintf(b, "%dH", hours)
	}
	if minutes > 0 {
		fmt.Fprintf(b, "%dM", minutes)
	}
	if seconds > 0 {
		fmt.Fprintf(b, "%dS", seconds)
	}
	return b.String()
}

// UTCOffset is a signed displacement from UTC (section 3.3.14), carried by
// the TZOFFSETFROM and TZOFFSETTO observance properties.
type UTCOffset struct {
	negative                bool
	hours, minutes, seconds int
}

// NewUTCOffset builds a UTCOffset.  Hours are limited to 0-12, minutes and
// seconds to 0-59.  RFC 5545 reserves +0000 for UTC and forbids a negative
// zero, so -0000 and -000000 are rejected.
func NewUTCOffset(negative bool, hours, minutes, seconds int) (UTCOffset, error) {
	if hours < 0 || hours > 12 {
		return UTCOffset{}, rangeError("utc-offset hours", hours, "must be within 0..12")
	}
	if minutes < 0 || minutes > 59 {
		return UTCOffset{}, rangeError("utc-offset minutes", minutes, "must be within 0..59")
	}
	if seconds < 0 || seconds > 59 {
		return UTCOffset{}, rangeError("utc-offset seconds", seconds, "must be within 0..59")
	}
	if negative && hours == 0 && minutes == 0 && seconds == 0 {
		return UTCOffset{}, rangeError("utc-offset", "-0000", "+0000 denotes UTC; a negative zero offset is not a thing")
	}
	return UTCOffset{negative: negative, hours: hours, minutes: minutes, seconds: seconds}, nil
}

// String renders the offset as [+|-]HHMM, extending to [+|-]HHMMSS only
// when the seconds component is non-zero.
func (o UTCOffset) String() string {
	sign := "+"
	if o.negative {
		sign = "-"
	}
	if o.seconds != 0 {
		return fmt.Sprintf("%s%02d%02d%02d", sign, o.hours, o.minutes, o.seconds)
	}
	return fmt.Sprintf("%s%02d%02d", sign, o.hours, o.minutes)
}

// Period is a PERIOD value (section 3.3.9): an explicit start/end pair, or a
// start plus duration when End is the zero time.  Both timestamps render in
// UTC form.
type Period struct {
	Start    time.Time
	End      time.Time
	Duration time.Duration
}

func (p Period) String() string {
	if !p.End.IsZero() {
		return FormatDateTimeUTC(p.Start) + "/" + FormatDateTimeUTC(p.End)
	}
	return FormatDateTimeUTC(p.Start) + "/" + FormatDuration(p.Duration)
}

// GeoPosition is the value of the GEO property (section 3.8.1.6).
type GeoPosition struct {
	Latitude  float64
	Longitude float64
}

// NewGeoPosition checks the coordinates against the WGS84 domains GEO uses.
func NewGeoPosition(latitude, longitude float64) (GeoPosition, error) {
	if latitude < -90 || latitude > 90 {
		return GeoPosition{}, rangeError("geo latitude", latitude, "must be within -90..90")
	}
	if longitude < -180 || longitude > 180 {
		return GeoPosition{}, rangeError("geo longitude", longitude, "must be within -180..180")
	}
	return GeoPosition{Latitude: latitude, Longitude: longitude}, nil
}

func (g GeoPosition) String() string {
	return fmt.Sprintf("%v;%v", g.Latitude, g.Longitude)
}
