// Package ics encodes RFC 5545 iCalendar objects: typed values, properties
// with ordered parameters, folded content lines, and the component tree from
// VALARM up to the VCALENDAR envelope.  The package is write-only; every
// object is validated by its constructor and serialization cannot fail for
// semantic reasons afterwards.
package ics

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// ComponentType names a BEGIN/END block.
type ComponentType string

const (
	ComponentVCalendar ComponentType = "VCALENDAR"
	ComponentVEvent    ComponentType = "VEVENT"
	ComponentVTodo     ComponentType = "VTODO"
	ComponentVJournal  ComponentType = "VJOURNAL"
	ComponentVFreeBusy ComponentType = "VFREEBUSY"
	ComponentVTimezone ComponentType = "VTIMEZONE"
	ComponentVAlarm    ComponentType = "VALARM"
	ComponentStandard  ComponentType = "STANDARD"
	ComponentDaylight  ComponentType = "DAYLIGHT"
)

// Property names a content line.
type Property string

const (
	PropertyAction          Property = "ACTION"
	PropertyAttach          Property = "ATTACH"
	PropertyAttendee        Property = "ATTENDEE"
	PropertyCalscale        Property = "CALSCALE"
	PropertyCategories      Property = "CATEGORIES"
	PropertyClass           Property = "CLASS"
	PropertyColor           Property = "COLOR" // RFC 7986
	PropertyComment         Property = "COMMENT"
	PropertyCompleted       Property = "COMPLETED"
	PropertyContact         Property = "CONTACT"
	PropertyCreated         Property = "CREATED"
	PropertyDescription     Property = "DESCRIPTION"
	PropertyDtend           Property = "DTEND"
	PropertyDtstamp         Property = "DTSTAMP"
	PropertyDtstart         Property = "DTSTART"
	PropertyDue             Property = "DUE"
	PropertyDuration        Property = "DURATION"
	PropertyExdate          Property = "EXDATE"
	PropertyFreebusy        Property = "FREEBUSY"
	PropertyGeo             Property = "GEO"
	PropertyLastModified    Property = "LAST-MODIFIED"
	PropertyLocation        Property = "LOCATION"
	PropertyMethod          Property = "METHOD"
	PropertyName            Property = "NAME" // RFC 7986
	PropertyOrganizer       Property = "ORGANIZER"
	PropertyPercentComplete Property = "PERCENT-COMPLETE"
	PropertyPriority        Property = "PRIORITY"
	PropertyProductId       Property = "PRODID"
	PropertyRdate           Property = "RDATE"
	PropertyRecurrenceId    Property = "RECURRENCE-ID"
	PropertyRefreshInterval Property = "REFRESH-INTERVAL" // RFC 7986
	PropertyRelatedTo       Property = "RELATED-TO"
	PropertyRepeat          Property = "REPEAT"
	PropertyResources       Property = "RESOURCES"
	PropertyRrule           Property = "RRULE"
	PropertySequence        Property = "SEQUENCE"
	PropertyStatus          Property = "STATUS"
	PropertySummary         Property = "SUMMARY"
	PropertyTransp          Property = "TRANSP"
	PropertyTrigger         Property = "TRIGGER"
	PropertyTzid            Property = "TZID"
	PropertyTzname          Property = "TZNAME"
	PropertyTzoffsetfrom    Property = "TZOFFSETFROM"
	PropertyTzoffsetto      Property = "TZOFFSETTO"
	PropertyTzurl           Property = "TZURL"
	PropertyUid             Property = "UID"
	PropertyUrl             Property = "URL"
	PropertyVersion         Property = "VERSION"
	PropertyXPublishedTTL   Property = "X-PUBLISHED-TTL"
	PropertyXWrCalDesc      Property = "X-WR-CALDESC"
	PropertyXWrCalName      Property = "X-WR-CALNAME"
	PropertyXWrTimezone     Property = "X-WR-TIMEZONE"
)

// Parameter names a property parameter.
type Parameter string

const (
	ParameterAltrep              Parameter = "ALTREP"
	ParameterCn                  Parameter = "CN"
	ParameterCutype              Parameter = "CUTYPE"
	ParameterDelegatedFrom       Parameter = "DELEGATED-FROM"
	ParameterDelegatedTo         Parameter = "DELEGATED-TO"
	ParameterDir                 Parameter = "DIR"
	ParameterEncoding            Parameter = "ENCODING"
	ParameterFbtype              Parameter = "FBTYPE"
	ParameterFmttype             Parameter = "FMTTYPE"
	ParameterLanguage            Parameter = "LANGUAGE"
	ParameterMember              Parameter = "MEMBER"
	ParameterParticipationStatus Parameter = "PARTSTAT"
	ParameterRange               Parameter = "RANGE"
	ParameterRelated             Parameter = "RELATED"
	ParameterReltype             Parameter = "RELTYPE"
	ParameterRole                Parameter = "ROLE"
	ParameterRsvp                Parameter = "RSVP"
	ParameterSentBy              Parameter = "SENT-BY"
	ParameterTzid                Parameter = "TZID"
	ParameterValue               Parameter = "VALUE"
)

// IsQuoted reports whether the parameter's values are URIs and must always
// be rendered inside DQUOTEs regardless of content.
func (p Parameter) IsQuoted() bool {
	switch p {
	case ParameterAltrep, ParameterMember, ParameterDelegatedFrom,
		ParameterDelegatedTo, ParameterDir, ParameterSentBy:
		return true
	}
	return false
}

// CalendarUserType is the CUTYPE parameter value (section 3.2.3).
type CalendarUserType string

const (
	CalendarUserTypeIndividual CalendarUserType = "INDIVIDUAL"
	CalendarUserTypeGroup      CalendarUserType = "GROUP"
	CalendarUserTypeResource   CalendarUserType = "RESOURCE"
	CalendarUserTypeRoom       CalendarUserType = "ROOM"
	CalendarUserTypeUnknown    CalendarUserType = "UNKNOWN"
)

func (cut CalendarUserType) KeyValue(s ...interface{}) (string, []string) {
	return string(ParameterCutype), []string{string(cut)}
}

// ParticipationStatus is the PARTSTAT parameter value (section 3.2.12).
type ParticipationStatus string

const (
	ParticipationStatusNeedsAction ParticipationStatus = "NEEDS-ACTION"
	ParticipationStatusAccepted    ParticipationStatus = "ACCEPTED"
	ParticipationStatusDeclined    ParticipationStatus = "DECLINED"
	ParticipationStatusTentative   ParticipationStatus = "TENTATIVE"
	ParticipationStatusDelegated   ParticipationStatus = "DELEGATED"
	ParticipationStatusCompleted   ParticipationStatus = "COMPLETED"
	ParticipationStatusInProcess   ParticipationStatus = "IN-PROCESS"
)

func (ps ParticipationStatus) KeyValue(s ...interface{}) (string, []string) {
	return string(ParameterParticipationStatus), []string{string(ps)}
}

// ParticipationRole is the ROLE parameter value (section 3.2.16).
type ParticipationRole string

const (
	ParticipationRoleChair          ParticipationRole = "CHAIR"
	ParticipationRoleReqParticipant ParticipationRole = "REQ-PARTICIPANT"
	ParticipationRoleOptParticipant ParticipationRole = "OPT-PARTICIPANT"
	ParticipationRoleNonParticipant ParticipationRole = "NON-PARTICIPANT"
)

func (pr ParticipationRole) KeyValue(s ...interface{}) (string, []string) {
	return string(ParameterRole), []string{string(pr)}
}

// FreeBusyTimeType is the FBTYPE parameter value (section 3.2.9).
type FreeBusyTimeType string

const (
	FreeBusyTimeTypeFree            FreeBusyTimeType = "FREE"
	FreeBusyTimeTypeBusy            FreeBusyTimeType = "BUSY"
	FreeBusyTimeTypeBusyUnavailable FreeBusyTimeType = "BUSY-UNAVAILABLE"
	FreeBusyTimeTypeBusyTentative   FreeBusyTimeType = "BUSY-TENTATIVE"
)

// ObjectStatus is the STATUS property value (section 3.8.1.11).  Which
// subset is legal depends on the component kind; the constructors enforce
// the per-kind sets.
type ObjectStatus string

const (
	ObjectStatusTentative   ObjectStatus = "TENTATIVE"
	ObjectStatusConfirmed   ObjectStatus = "CONFIRMED"
	ObjectStatusCancelled   ObjectStatus = "CANCELLED"
	ObjectStatusNeedsAction ObjectStatus = "NEEDS-ACTION"
	ObjectStatusCompleted   ObjectStatus = "COMPLETED"
	ObjectStatusInProcess   ObjectStatus = "IN-PROCESS"
	ObjectStatusDraft       ObjectStatus = "DRAFT"
	ObjectStatusFinal       ObjectStatus = "FINAL"
)

// RelationshipType is the RELTYPE parameter value, including the extended
// relations of RFC 9253.
type RelationshipType string

const (
	RelationshipTypeParent         RelationshipType = "PARENT"
	RelationshipTypeChild          RelationshipType = "CHILD"
	RelationshipTypeSibling        RelationshipType = "SIBLING"
	RelationshipTypeConcept        RelationshipType = "CONCEPT"
	RelationshipTypeDependsOn      RelationshipType = "DEPENDS-ON"
	RelationshipTypeRefId          RelationshipType = "REFID"
	RelationshipTypeFinishToFinish RelationshipType = "FINISHTOFINISH"
	RelationshipTypeFinishToStart  RelationshipType = "FINISHTOSTART"
	RelationshipTypeStartToFinish  RelationshipType = "STARTTOFINISH"
	RelationshipTypeStartToStart   RelationshipType = "STARTTOSTART"
)

func (rt RelationshipType) KeyValue(s ...interface{}) (string, []string) {
	return string(ParameterReltype), []string{string(rt)}
}

// Classification is the CLASS property value.
type Classification string

const (
	ClassificationPublic       Classification = "PUBLIC"
	ClassificationPrivate      Classification = "PRIVATE"
	ClassificationConfidential Classification = "CONFIDENTIAL"
)

// Method is the iTIP METHOD property value.
type Method string

const (
	MethodPublish        Method = "PUBLISH"
	MethodRequest        Method = "REQUEST"
	MethodReply          Method = "REPLY"
	MethodAdd            Method = "ADD"
	MethodCancel         Method = "CANCEL"
	MethodRefresh        Method = "REFRESH"
	MethodCounter        Method = "COUNTER"
	MethodDeclineCounter Method = "DECLINECOUNTER"
)

// TimeTransparency is the TRANSP property value.
type TimeTransparency string

const (
	TransparencyOpaque      TimeTransparency = "OPAQUE"
	TransparencyTransparent TimeTransparency = "TRANSPARENT"
)

// Action is the VALARM ACTION property value.
type Action string

const (
	ActionAudio   Action = "AUDIO"
	ActionDisplay Action = "DISPLAY"
	ActionEmail   Action = "EMAIL"
)

// ValueDataType is the VALUE parameter value (section 3.2.20).
type ValueDataType string

const (
	ValueDataTypeBinary     ValueDataType = "BINARY"
	ValueDataTypeBoolean    ValueDataType = "BOOLEAN"
	ValueDataTypeCalAddress ValueDataType = "CAL-ADDRESS"
	ValueDataTypeDate       ValueDataType = "DATE"
	ValueDataTypeDateTime   ValueDataType = "DATE-TIME"
	ValueDataTypeDuration   ValueDataType = "DURATION"
	ValueDataTypeFloat      ValueDataType = "FLOAT"
	ValueDataTypeInteger    ValueDataType = "INTEGER"
	ValueDataTypePeriod     ValueDataType = "PERIOD"
	ValueDataTypeRecur      ValueDataType = "RECUR"
	ValueDataTypeText       ValueDataType = "TEXT"
	ValueDataTypeTime       ValueDataType = "TIME"
	ValueDataTypeUri        ValueDataType = "URI"
	ValueDataTypeUtcOffset  ValueDataType = "UTC-OFFSET"
)

// SerializationConfiguration controls the physical text form: the octet
// width lines are folded at and the line terminator.
type SerializationConfiguration struct {
	MaxLength int
	NewLine   string
}

// WithLineLength overrides the fold width, in octets.  Widths below
// minLineLength are rejected by Serialize/SerializeTo.
type WithLineLength int

// minLineLength is the smallest usable fold width: a continuation line
// needs its leading space plus room for one maximal four-octet UTF-8 rune.
const minLineLength = 5

// WithNewLine overrides the line terminator.
type WithNewLine string

func defaultSerializationOptions() *SerializationConfiguration {
	return &SerializationConfiguration{
		MaxLength: 75,
		NewLine:   "\r\n",
	}
}

func parseSerializeOps(ops []any) (*SerializationConfiguration, error) {
	serialConfig := defaultSerializationOptions()
	for _, op := range ops {
		switch op := op.(type) {
		case WithLineLength:
			if int(op) < minLineLength {
				return nil, fmt.Errorf("line length %d is below the minimum of %d", op, minLineLength)
			}
			serialConfig.MaxLength = int(op)
		case WithNewLine:
			serialConfig.NewLine = string(op)
		case *SerializationConfiguration:
			serialConfig = op
		case error:
			return nil, op
		default:
			return nil, fmt.Errorf("unknown serialization option %v", op)
		}
	}
	return serialConfig, nil
}

// CalendarConfig collects the VCALENDAR envelope.  ProductID and at least
// one component are required; everything else is optional.  Name and
// Description are emitted both as their RFC 7986 properties and as the
// widely consumed X-WR-CALNAME / X-WR-CALDESC extensions.
type CalendarConfig struct {
	ProductID       string
	Method          Method
	CalendarScale   string
	Name            string
	Description     string
	Color           string
	URL             string
	RefreshInterval time.Duration
	LastModified    time.Time
	TimezoneID      string
	Components      []Component
}

// Calendar is a validated VCALENDAR ready for serialization.
type Calendar struct {
	CalendarProperties []CalendarProperty
	Components         []Component
}

// NewCalendar validates cfg and freezes it into a Calendar.  VERSION:2.0 is
// always the first property, per section 3.7.4.
func NewCalendar(cfg CalendarConfig) (*Calendar, error) {
	if cfg.ProductID == "" {
		return nil, validationErrorf(ComponentVCalendar, "PRODID is required")
	}
	if len(cfg.Components) == 0 {
		return nil, validationErrorf(ComponentVCalendar, "at least one component is required")
	}

	cal := &Calendar{Components: cfg.Components}
	cal.addProperty(PropertyVersion, "2.0")
	cal.addProperty(PropertyProductId, ToText(cfg.ProductID))
	if cfg.CalendarScale != "" {
		cal.addProperty(PropertyCalscale, cfg.CalendarScale)
	}
	if cfg.Method != "" {
		cal.addProperty(PropertyMethod, string(cfg.Method))
	}
	if cfg.Name != "" {
		cal.addProperty(PropertyName, ToText(cfg.Name))
		cal.addProperty(PropertyXWrCalName, ToText(cfg.Name))
	}
	if cfg.Description != "" {
		cal.addProperty(PropertyDescription, ToText(cfg.Description))
		cal.addProperty(PropertyXWrCalDesc, ToText(cfg.Description))
	}
	if cfg.Color != "" {
		cal.addProperty(PropertyColor, cfg.Color)
	}
	if cfg.URL != "" {
		cal.addProperty(PropertyUrl, cfg.URL)
	}
	if cfg.RefreshInterval != 0 {
		cal.addProperty(PropertyRefreshInterval, FormatDuration(cfg.RefreshInterval),
			WithValue(string(ValueDataTypeDuration)))
		cal.addProperty(PropertyXPublishedTTL, FormatDuration(cfg.RefreshInterval))
	}
	if !cfg.LastModified.IsZero() {
		cal.addProperty(PropertyLastModified, FormatDateTimeUTC(cfg.LastModified))
	}
	if cfg.TimezoneID != "" {
		cal.addProperty(PropertyXWrTimezone, cfg.TimezoneID)
	}
	return cal, nil
}

func (cal *Calendar) addProperty(name Property, value string, params ...PropertyParameter) {
	p := CalendarProperty{
		BaseProperty{
			IANAToken: string(name),
			Value:     value,
		},
	}
	p.setParameters(params)
	cal.CalendarProperties = append(cal.CalendarProperties, p)
}

// GetProperty returns the first envelope property with the given name, or
// nil.
func (cal *Calendar) GetProperty(name Property) *CalendarProperty {
	for i := range cal.CalendarProperties {
		if cal.CalendarProperties[i].IANAToken == string(name) {
			return &cal.CalendarProperties[i]
		}
	}
	return nil
}

// Serialize renders the calendar to a string.  Options may be
// WithLineLength, WithNewLine or a *SerializationConfiguration; an invalid
// option yields an empty string, use SerializeTo to observe the error.
func (cal *Calendar) Serialize(ops ...any) string {
	b := &strings.Builder{}
	_ = cal.SerializeTo(b, ops...)
	return b.String()
}

// SerializeTo streams the calendar to w.
func (cal *Calendar) SerializeTo(w io.Writer, ops ...any) error {
	serialConfig, err := parseSerializeOps(ops)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, "BEGIN:VCALENDAR"+serialConfig.NewLine); err != nil {
		return err
	}
	for _, p := range cal.CalendarProperties {
		if err := p.serialize(w, serialConfig); err != nil {
			return err
		}
	}
	for _, c := range cal.Components {
		if err := c.SerializeTo(w, serialConfig); err != nil {
			return err
		}
	}
	_, err = io.WriteString(w, "END:VCALENDAR"+serialConfig.NewLine)
	return err
}
