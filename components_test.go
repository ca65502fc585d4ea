package ics

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lines(s ...string) string {
	return strings.Join(s, "\r\n") + "\r\n"
}

func TestNewAttendee(t *testing.T) {
	a, err := NewAttendee("a@example.com")
	require.NoError(t, err)
	assert.Equal(t, "mailto:a@example.com", a.Address())

	a, err = NewAttendee("mailto:b@example.com")
	require.NoError(t, err)
	assert.Equal(t, "mailto:b@example.com", a.Address())

	_, err = NewAttendee("http://%zz")
	var formatErr *FormatError
	require.ErrorAs(t, err, &formatErr)
}

func TestTriggerRendering(t *testing.T) {
	tests := []struct {
		name    string
		trigger Trigger
		want    string
	}{
		{"relative before start", TriggerOffset(-15 * time.Minute), "TRIGGER:-PT15M"},
		{"at start", TriggerAtStart(), "TRIGGER:PT0S"},
		{"related to end", TriggerOffsetFrom(5*time.Minute, TriggerRelationEnd), "TRIGGER;RELATED=END:PT5M"},
		{"absolute", TriggerAt(time.Date(2026, 1, 2, 9, 0, 0, 0, time.UTC)), "TRIGGER;VALUE=DATE-TIME:20260102T090000Z"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := &strings.Builder{}
			p := tc.trigger.property()
			require.NoError(t, p.serialize(b, defaultSerializationOptions()))
			assert.Equal(t, tc.want+"\r\n", b.String())
		})
	}
}

func TestAlarmStructuralContracts(t *testing.T) {
	trigger := TriggerOffset(-10 * time.Minute)
	attendee, err := NewAttendee("a@example.com")
	require.NoError(t, err)

	var validationErr *ValidationError

	_, err = NewAudioAlarm(AudioAlarmConfig{})
	require.ErrorAs(t, err, &validationErr)

	_, err = NewDisplayAlarm(DisplayAlarmConfig{Trigger: trigger})
	require.ErrorAs(t, err, &validationErr)

	_, err = NewDisplayAlarm(DisplayAlarmConfig{Description: "Reminder"})
	require.ErrorAs(t, err, &validationErr)

	_, err = NewEmailAlarm(EmailAlarmConfig{Trigger: trigger, Summary: "s", Attendees: []Attendee{attendee}})
	require.ErrorAs(t, err, &validationErr)

	_, err = NewEmailAlarm(EmailAlarmConfig{Description: "d", Trigger: trigger, Attendees: []Attendee{attendee}})
	require.ErrorAs(t, err, &validationErr)

	_, err = NewEmailAlarm(EmailAlarmConfig{Description: "d", Trigger: trigger, Summary: "s"})
	require.ErrorAs(t, err, &validationErr)

	var rangeErr *RangeError
	_, err = NewDisplayAlarm(DisplayAlarmConfig{
		Description: "Reminder",
		Trigger:     trigger,
		Cadence:     mo.Some(AlarmCadence{Interval: 5 * time.Minute, Repeat: -1}),
	})
	require.ErrorAs(t, err, &rangeErr)
}

func TestEmailAlarmSerialization(t *testing.T) {
	attendee, err := NewAttendee("a@example.com")
	require.NoError(t, err)

	alarm, err := NewEmailAlarm(EmailAlarmConfig{
		Description: "Reminder",
		Trigger:     TriggerOffset(-15 * time.Minute),
		Summary:     "Don't forget",
		Attendees:   []Attendee{attendee},
	})
	require.NoError(t, err)
	assert.Equal(t, ActionEmail, alarm.Action())

	want := lines(
		"BEGIN:VALARM",
		"ACTION:EMAIL",
		"DESCRIPTION:Reminder",
		"TRIGGER:-PT15M",
		"SUMMARY:Don't forget",
		"ATTENDEE:mailto:a@example.com",
		"END:VALARM",
	)
	if diff := cmp.Diff(want, alarm.Serialize()); diff != "" {
		t.Errorf("serialization mismatch (-want +got):\n%s", diff)
	}
}

func TestAudioAlarmWithCadence(t *testing.T) {
	attachment, err := NewURIAttachment("http://example.com/ding.aud", "audio/basic")
	require.NoError(t, err)

	alarm, err := NewAudioAlarm(AudioAlarmConfig{
		Trigger:    TriggerAtStart(),
		Attachment: mo.Some(attachment),
		Cadence:    mo.Some(AlarmCadence{Interval: 5 * time.Minute, Repeat: 2}),
	})
	require.NoError(t, err)

	want := lines(
		"BEGIN:VALARM",
		"ACTION:AUDIO",
		"TRIGGER:PT0S",
		"ATTACH;FMTTYPE=audio/basic:http://example.com/ding.aud",
		"DURATION:PT5M",
		"REPEAT:2",
		"END:VALARM",
	)
	if diff := cmp.Diff(want, alarm.Serialize()); diff != "" {
		t.Errorf("serialization mismatch (-want +got):\n%s", diff)
	}
}

func TestBinaryAttachment(t *testing.T) {
	attachment := NewBinaryAttachment([]byte("hello"), "text/plain")
	b := &strings.Builder{}
	p := attachment.property()
	require.NoError(t, p.serialize(b, defaultSerializationOptions()))
	assert.Equal(t, "ATTACH;FMTTYPE=text/plain;ENCODING=BASE64;VALUE=BINARY:aGVsbG8=\r\n", b.String())
}

func TestNewEventValidation(t *testing.T) {
	start := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	var validationErr *ValidationError
	var rangeErr *RangeError

	_, err := NewEvent(EventConfig{})
	require.ErrorAs(t, err, &validationErr)

	_, err = NewEvent(EventConfig{
		Start:    start,
		End:      start.Add(time.Hour),
		Duration: mo.Some(time.Hour),
	})
	require.ErrorAs(t, err, &validationErr)

	_, err = NewEvent(EventConfig{Start: start, Priority: mo.Some(10)})
	require.ErrorAs(t, err, &rangeErr)

	_, err = NewEvent(EventConfig{Start: start, Priority: mo.Some(-1)})
	require.ErrorAs(t, err, &rangeErr)

	_, err = NewEvent(EventConfig{Start: start, Sequence: mo.Some(-1)})
	require.ErrorAs(t, err, &rangeErr)

	_, err = NewEvent(EventConfig{Start: start, Status: ObjectStatusDraft})
	require.ErrorAs(t, err, &rangeErr)

	event, err := NewEvent(EventConfig{Start: start, Priority: mo.Some(0), Status: ObjectStatusConfirmed})
	require.NoError(t, err)
	assert.Equal(t, "0", event.GetProperty(PropertyPriority).Value)
}

func TestNewEventDefaults(t *testing.T) {
	event, err := NewEvent(EventConfig{Start: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)})
	require.NoError(t, err)

	uid := event.GetProperty(PropertyUid)
	require.NotNil(t, uid)
	_, err = uuid.Parse(uid.Value)
	assert.NoError(t, err)

	assert.NotNil(t, event.GetProperty(PropertyDtstamp))
}

func TestNewEventAllDay(t *testing.T) {
	event, err := NewEvent(EventConfig{
		UID:     "allday@example.com",
		DtStamp: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Start:   time.Date(2026, 7, 4, 0, 0, 0, 0, time.UTC),
		End:     time.Date(2026, 7, 5, 0, 0, 0, 0, time.UTC),
		AllDay:  true,
	})
	require.NoError(t, err)

	want := lines(
		"BEGIN:VEVENT",
		"UID:allday@example.com",
		"DTSTAMP:20260101T000000Z",
		"DTSTART;VALUE=DATE:20260704",
		"DTEND;VALUE=DATE:20260705",
		"END:VEVENT",
	)
	if diff := cmp.Diff(want, event.Serialize()); diff != "" {
		t.Errorf("serialization mismatch (-want +got):\n%s", diff)
	}
}

func TestNewTodoValidation(t *testing.T) {
	start := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	var validationErr *ValidationError
	var rangeErr *RangeError

	_, err := NewTodo(TodoConfig{
		Start:    start,
		Due:      start.Add(time.Hour),
		Duration: mo.Some(time.Hour),
	})
	require.ErrorAs(t, err, &validationErr)

	_, err = NewTodo(TodoConfig{Duration: mo.Some(time.Hour)})
	require.ErrorAs(t, err, &validationErr)

	_, err = NewTodo(TodoConfig{PercentComplete: mo.Some(101)})
	require.ErrorAs(t, err, &rangeErr)

	_, err = NewTodo(TodoConfig{Status: ObjectStatusConfirmed})
	require.ErrorAs(t, err, &rangeErr)

	todo, err := NewTodo(TodoConfig{
		UID:             "todo@example.com",
		Due:             start,
		PercentComplete: mo.Some(40),
		Status:          ObjectStatusInProcess,
	})
	require.NoError(t, err)
	assert.Equal(t, "40", todo.GetProperty(PropertyPercentComplete).Value)
	assert.Equal(t, "IN-PROCESS", todo.GetProperty(PropertyStatus).Value)
}

func TestNewJournalStatusDomain(t *testing.T) {
	var rangeErr *RangeError
	_, err := NewJournal(JournalConfig{Status: ObjectStatusConfirmed})
	require.ErrorAs(t, err, &rangeErr)

	journal, err := NewJournal(JournalConfig{
		UID:          "journal@example.com",
		DtStamp:      time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Descriptions: []string{"first entry", "second entry"},
		Status:       ObjectStatusFinal,
	})
	require.NoError(t, err)
	assert.Len(t, journal.GetProperties(PropertyDescription), 2)
}

func TestNewFreeBusy(t *testing.T) {
	start := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	var validationErr *ValidationError

	_, err := NewFreeBusy(FreeBusyConfig{Start: start})
	require.ErrorAs(t, err, &validationErr)

	_, err = NewFreeBusy(FreeBusyConfig{Start: start, End: start.Add(-time.Hour)})
	require.ErrorAs(t, err, &validationErr)

	_, err = NewFreeBusy(FreeBusyConfig{
		Slots: []FreeBusySlot{{Type: FreeBusyTimeTypeBusy}},
	})
	require.ErrorAs(t, err, &validationErr)

	var rangeErr *RangeError
	_, err = NewFreeBusy(FreeBusyConfig{
		Slots: []FreeBusySlot{{Type: "SORTA-BUSY", Periods: []Period{{Start: start, End: start.Add(time.Hour)}}}},
	})
	require.ErrorAs(t, err, &rangeErr)

	fb, err := NewFreeBusy(FreeBusyConfig{
		UID:     "fb@example.com",
		DtStamp: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Start:   start,
		End:     start.Add(8 * time.Hour),
		Slots: []FreeBusySlot{
			{Type: FreeBusyTimeTypeBusyUnavailable, Periods: []Period{
				{Start: start, End: start.Add(time.Hour)},
				{Start: start.Add(3 * time.Hour), Duration: 30 * time.Minute},
			}},
		},
	})
	require.NoError(t, err)

	want := lines(
		"BEGIN:VFREEBUSY",
		"UID:fb@example.com",
		"DTSTAMP:20260101T000000Z",
		"DTSTART:20260314T090000Z",
		"DTEND:20260314T170000Z",
		"FREEBUSY;FBTYPE=BUSY-UNAVAILABLE:20260314T090000Z/20260314T100000Z,20260314",
		" T120000Z/PT30M",
		"END:VFREEBUSY",
	)
	if diff := cmp.Diff(want, fb.Serialize()); diff != "" {
		t.Errorf("serialization mismatch (-want +got):\n%s", diff)
	}
}

func TestNewTimezone(t *testing.T) {
	var validationErr *ValidationError

	_, err := NewTimezone(TimezoneConfig{})
	require.ErrorAs(t, err, &validationErr)

	_, err = NewTimezone(TimezoneConfig{TzID: "Europe/Berlin"})
	require.ErrorAs(t, err, &validationErr)

	_, err = NewStandard(ObservanceConfig{})
	require.ErrorAs(t, err, &validationErr)

	plusOne, err := NewUTCOffset(false, 1, 0, 0)
	require.NoError(t, err)
	plusTwo, err := NewUTCOffset(false, 2, 0, 0)
	require.NoError(t, err)

	lastSunday, err := NthWeekday(-1, WeekdaySunday)
	require.NoError(t, err)
	toDaylight, err := NewRecurrenceRule(RecurrenceRuleConfig{
		Frequency: FrequencyYearly,
		ByDay:     []WeekdayNum{lastSunday},
		ByMonth:   []int{3},
	})
	require.NoError(t, err)
	toStandard, err := NewRecurrenceRule(RecurrenceRuleConfig{
		Frequency: FrequencyYearly,
		ByDay:     []WeekdayNum{lastSunday},
		ByMonth:   []int{10},
	})
	require.NoError(t, err)

	daylight, err := NewDaylight(ObservanceConfig{
		Start:      time.Date(1970, 3, 29, 2, 0, 0, 0, time.UTC),
		OffsetFrom: plusOne,
		OffsetTo:   plusTwo,
		Name:       "CEST",
		Rule:       toDaylight,
	})
	require.NoError(t, err)
	standard, err := NewStandard(ObservanceConfig{
		Start:      time.Date(1970, 10, 25, 3, 0, 0, 0, time.UTC),
		OffsetFrom: plusTwo,
		OffsetTo:   plusOne,
		Name:       "CET",
		Rule:       toStandard,
	})
	require.NoError(t, err)

	tz, err := NewTimezone(TimezoneConfig{
		TzID:        "Europe/Berlin",
		Observances: []*Observance{daylight, standard},
	})
	require.NoError(t, err)

	want := lines(
		"BEGIN:VTIMEZONE",
		"TZID:Europe/Berlin",
		"BEGIN:DAYLIGHT",
		"DTSTART:19700329T020000",
		"TZOFFSETFROM:+0100",
		"TZOFFSETTO:+0200",
		"TZNAME:CEST",
		"RRULE:FREQ=YEARLY;BYDAY=-1SU;BYMONTH=3",
		"END:DAYLIGHT",
		"BEGIN:STANDARD",
		"DTSTART:19701025T030000",
		"TZOFFSETFROM:+0200",
		"TZOFFSETTO:+0100",
		"TZNAME:CET",
		"RRULE:FREQ=YEARLY;BYDAY=-1SU;BYMONTH=10",
		"END:STANDARD",
		"END:VTIMEZONE",
	)
	if diff := cmp.Diff(want, tz.Serialize()); diff != "" {
		t.Errorf("serialization mismatch (-want +got):\n%s", diff)
	}
}

func TestRelatedTo(t *testing.T) {
	event, err := NewEvent(EventConfig{
		UID:     "child@example.com",
		DtStamp: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Start:   time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC),
		RelatedTo: []RelatedTo{
			{UID: "parent@example.com"},
			{UID: "sibling@example.com", Type: RelationshipTypeSibling},
		},
	})
	require.NoError(t, err)

	related := event.GetProperties(PropertyRelatedTo)
	require.Len(t, related, 2)
	assert.Empty(t, related[0].Parameters)
	assert.Equal(t, []KeyValues{{Key: "RELTYPE", Value: []string{"SIBLING"}}}, related[1].Parameters)
}
