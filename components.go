package ics

import (
	"encoding/base64"
	"io"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/mo"
)

// Component is a validated BEGIN:X..END:X block.  Concrete types are built
// by their New* constructors; once built they are frozen and their only
// behaviour is serialization.  To determine which kind you hold, type switch
// over *VEvent, *VTodo, *VJournal, *VFreeBusy, *VTimezone and *VAlarm.
type Component interface {
	Properties() []IANAProperty
	SubComponents() []Component
	SerializeTo(w io.Writer, serialConfig *SerializationConfiguration) error
}

var (
	_ Component = (*VEvent)(nil)
	_ Component = (*VTodo)(nil)
	_ Component = (*VJournal)(nil)
	_ Component = (*VFreeBusy)(nil)
	_ Component = (*VTimezone)(nil)
	_ Component = (*VAlarm)(nil)
	_ Component = (*Observance)(nil)
)

type componentBase struct {
	properties []IANAProperty
	components []Component
}

func (cb *componentBase) Properties() []IANAProperty {
	return cb.properties
}

func (cb *componentBase) SubComponents() []Component {
	return cb.components
}

// GetProperty returns the first property with the given name, or nil.
func (cb *componentBase) GetProperty(name Property) *IANAProperty {
	for i := range cb.properties {
		if cb.properties[i].IANAToken == string(name) {
			return &cb.properties[i]
		}
	}
	return nil
}

// GetProperties returns every property with the given name.
func (cb *componentBase) GetProperties(name Property) []*IANAProperty {
	var result []*IANAProperty
	for i := range cb.properties {
		if cb.properties[i].IANAToken == string(name) {
			result = append(result, &cb.properties[i])
		}
	}
	return result
}

func (cb *componentBase) add(name Property, value string, params ...PropertyParameter) {
	cb.properties = append(cb.properties, newProperty(name, value, params...))
}

func (cb *componentBase) serializeThis(writer io.Writer, componentType ComponentType, serialConfig *SerializationConfiguration) error {
	if _, err := io.WriteString(writer, "BEGIN:"+string(componentType)+serialConfig.NewLine); err != nil {
		return err
	}
	for _, p := range cb.properties {
		if err := p.serialize(writer, serialConfig); err != nil {
			return err
		}
	}
	for _, c := range cb.components {
		if err := c.SerializeTo(writer, serialConfig); err != nil {
			return err
		}
	}
	_, err := io.WriteString(writer, "END:"+string(componentType)+serialConfig.NewLine)
	return err
}

func serializeComponent(c Component, ops []any) string {
	serialConfig, err := parseSerializeOps(ops)
	if err != nil {
		return ""
	}
	b := &strings.Builder{}
	_ = c.SerializeTo(b, serialConfig)
	return b.String()
}

func mailtoAddress(s string) string {
	if !strings.HasPrefix(s, "mailto:") && !strings.Contains(s, ":") {
		return "mailto:" + s
	}
	return s
}

func mailtoAddresses(addresses []string) []string {
	r := make([]string, 0, len(addresses))
	for _, a := range addresses {
		r = append(r, mailtoAddress(a))
	}
	return r
}

// Attendee is a validated CAL-ADDRESS for the ATTENDEE property, with any
// number of attached parameters (CN, ROLE, PARTSTAT, RSVP, ...).
type Attendee struct {
	address string
	params  []PropertyParameter
}

// NewAttendee normalises a bare email address to a mailto: URI, the way
// calendar clients expect, and rejects an address that is not a parseable
// URI with *FormatError.
func NewAttendee(address string, params ...PropertyParameter) (Attendee, error) {
	address = mailtoAddress(address)
	if _, err := url.Parse(address); err != nil {
		return Attendee{}, &FormatError{Field: "attendee", Input: address, Err: err}
	}
	return Attendee{address: address, params: params}, nil
}

// Address returns the normalised CAL-ADDRESS, e.g. mailto:a@example.com.
func (a Attendee) Address() string {
	return a.address
}

func (a Attendee) property() IANAProperty {
	return newProperty(PropertyAttendee, a.address, a.params...)
}

// Attachment is an ATTACH value: a URI, or inline binary content carried
// base64-encoded with ENCODING=BASE64;VALUE=BINARY.
type Attachment struct {
	value  string
	params []PropertyParameter
}

func NewURIAttachment(uri string, contentType string) (Attachment, error) {
	if _, err := url.Parse(uri); err != nil {
		return Attachment{}, &FormatError{Field: "attach", Input: uri, Err: err}
	}
	var params []PropertyParameter
	if contentType != "" {
		params = append(params, WithFmtType(contentType))
	}
	return Attachment{value: uri, params: params}, nil
}

func NewBinaryAttachment(data []byte, contentType string) Attachment {
	var params []PropertyParameter
	if contentType != "" {
		params = append(params, WithFmtType(contentType))
	}
	params = append(params,
		WithEncoding("BASE64"),
		WithValue(string(ValueDataTypeBinary)),
	)
	return Attachment{value: base64.StdEncoding.EncodeToString(data), params: params}
}

func (a Attachment) property() IANAProperty {
	return newProperty(PropertyAttach, a.value, a.params...)
}

// TriggerRelation selects which edge of the enclosing component a relative
// trigger counts from.
type TriggerRelation string

const (
	TriggerRelationStart TriggerRelation = "START"
	TriggerRelationEnd   TriggerRelation = "END"
)

// Trigger is the VALARM TRIGGER value: an offset relative to the start or
// end of the enclosing component, or an absolute UTC date-time.
type Trigger struct {
	offset     time.Duration
	related    TriggerRelation
	absolute   time.Time
	isAbsolute bool
	set        bool
}

// TriggerOffset fires d relative to the component start; negative d fires
// before it.
func TriggerOffset(d time.Duration) Trigger {
	return Trigger{offset: d, set: true}
}

// TriggerOffsetFrom is TriggerOffset with an explicit RELATED edge.
func TriggerOffsetFrom(d time.Duration, related TriggerRelation) Trigger {
	return Trigger{offset: d, related: related, set: true}
}

// TriggerAtStart fires at the moment the component starts (PT0S).
func TriggerAtStart() Trigger {
	return TriggerOffset(0)
}

// TriggerAt fires at an absolute moment, rendered as a UTC DATE-TIME.
func TriggerAt(t time.Time) Trigger {
	return Trigger{absolute: t, isAbsolute: true, set: true}
}

func (t Trigger) property() IANAProperty {
	if t.isAbsolute {
		return newProperty(PropertyTrigger, FormatDateTimeUTC(t.absolute), WithValue(string(ValueDataTypeDateTime)))
	}
	var params []PropertyParameter
	if t.related == TriggerRelationEnd {
		params = append(params, &KeyValues{Key: string(ParameterRelated), Value: []string{string(t.related)}})
	}
	return newProperty(PropertyTrigger, FormatDuration(t.offset), params...)
}

// AlarmCadence pairs the DURATION and REPEAT alarm properties, which
// RFC 5545 requires to appear together or not at all.  Modelling them as a
// single optional composite makes the half-present state unrepresentable.
type AlarmCadence struct {
	Interval time.Duration
	Repeat   int
}

// RelatedTo links a component to another by UID (section 3.8.4.5), with an
// optional RELTYPE.  The zero Type means the RFC default (PARENT) and emits
// no parameter.
type RelatedTo struct {
	UID  string
	Type RelationshipType
}

func (r RelatedTo) property() IANAProperty {
	var params []PropertyParameter
	if r.Type != "" {
		params = append(params, WithRelationshipType(r.Type))
	}
	return newProperty(PropertyRelatedTo, ToText(r.UID), params...)
}

// VAlarm is a validated alarm subcomponent.  The three alarm kinds have
// disjoint structural contracts and are built by NewAudioAlarm,
// NewDisplayAlarm and NewEmailAlarm; the kind is fixed at build time.
type VAlarm struct {
	componentBase
	action Action
}

func (alarm *VAlarm) Action() Action {
	return alarm.action
}

func (alarm *VAlarm) SerializeTo(w io.Writer, serialConfig *SerializationConfiguration) error {
	return alarm.serializeThis(w, ComponentVAlarm, serialConfig)
}

func (alarm *VAlarm) Serialize(ops ...any) string {
	return serializeComponent(alarm, ops)
}

// AudioAlarmConfig configures an AUDIO alarm: TRIGGER is required, at most
// one sound attachment is allowed, and attendees have no field at all.
type AudioAlarmConfig struct {
	Trigger    Trigger
	Attachment mo.Option[Attachment]
	Cadence    mo.Option[AlarmCadence]
}

func NewAudioAlarm(cfg AudioAlarmConfig) (*VAlarm, error) {
	if !cfg.Trigger.set {
		return nil, validationErrorf(ComponentVAlarm, "audio alarm requires TRIGGER")
	}
	alarm := &VAlarm{action: ActionAudio}
	alarm.add(PropertyAction, string(ActionAudio))
	alarm.properties = append(alarm.properties, cfg.Trigger.property())
	if attachment, ok := cfg.Attachment.Get(); ok {
		alarm.properties = append(alarm.properties, attachment.property())
	}
	if err := alarm.applyCadence(cfg.Cadence); err != nil {
		return nil, err
	}
	return alarm, nil
}

// DisplayAlarmConfig configures a DISPLAY alarm: DESCRIPTION and TRIGGER
// are required and attachments are forbidden (no field exists for them).
type DisplayAlarmConfig struct {
	Description string
	Trigger     Trigger
	Cadence     mo.Option[AlarmCadence]
}

func NewDisplayAlarm(cfg DisplayAlarmConfig) (*VAlarm, error) {
	if cfg.Description == "" {
		return nil, validationErrorf(ComponentVAlarm, "display alarm requires DESCRIPTION")
	}
	if !cfg.Trigger.set {
		return nil, validationErrorf(ComponentVAlarm, "display alarm requires TRIGGER")
	}
	alarm := &VAlarm{action: ActionDisplay}
	alarm.add(PropertyAction, string(ActionDisplay))
	alarm.add(PropertyDescription, ToText(cfg.Description))
	alarm.properties = append(alarm.properties, cfg.Trigger.property())
	if err := alarm.applyCadence(cfg.Cadence); err != nil {
		return nil, err
	}
	return alarm, nil
}

// EmailAlarmConfig configures an EMAIL alarm: DESCRIPTION (body), TRIGGER,
// SUMMARY (subject) and at least one attendee are required; attachments are
// repeatable.
type EmailAlarmConfig struct {
	Description string
	Trigger     Trigger
	Summary     string
	Attendees   []Attendee
	Attachments []Attachment
	Cadence     mo.Option[AlarmCadence]
}

func NewEmailAlarm(cfg EmailAlarmConfig) (*VAlarm, error) {
	if cfg.Description == "" {
		return nil, validationErrorf(ComponentVAlarm, "email alarm requires DESCRIPTION")
	}
	if !cfg.Trigger.set {
		return nil, validationErrorf(ComponentVAlarm, "email alarm requires TRIGGER")
	}
	if cfg.Summary == "" {
		return nil, validationErrorf(ComponentVAlarm, "email alarm requires SUMMARY")
	}
	if len(cfg.Attendees) == 0 {
		return nil, validationErrorf(ComponentVAlarm, "email alarm requires at least one ATTENDEE")
	}
	alarm := &VAlarm{action: ActionEmail}
	alarm.add(PropertyAction, string(ActionEmail))
	alarm.add(PropertyDescription, ToText(cfg.Description))
	alarm.properties = append(alarm.properties, cfg.Trigger.property())
	alarm.add(PropertySummary, ToText(cfg.Summary))
	for _, attendee := range cfg.Attendees {
		alarm.properties = append(alarm.properties, attendee.property())
	}
	for _, attachment := range cfg.Attachments {
		alarm.properties = append(alarm.properties, attachment.property())
	}
	if err := alarm.applyCadence(cfg.Cadence); err != nil {
		return nil, err
	}
	return alarm, nil
}

func (alarm *VAlarm) applyCadence(cadence mo.Option[AlarmCadence]) error {
	c, ok := cadence.Get()
	if !ok {
		return nil
	}
	if c.Repeat < 0 {
		return rangeError("alarm repeat", c.Repeat, "must not be negative")
	}
	alarm.add(PropertyDuration, FormatDuration(c.Interval))
	alarm.add(PropertyRepeat, strconv.Itoa(c.Repeat))
	return nil
}

// EventConfig collects everything a VEVENT can carry.  Zero time.Time and
// empty string fields mean absent; optional integers use mo.Option so zero
// stays expressible.
type EventConfig struct {
	UID          string // generated when empty
	DtStamp      time.Time
	Start        time.Time // required
	End          time.Time // exclusive with Duration
	AllDay       bool      // render DTSTART/DTEND as DATE values
	Duration     mo.Option[time.Duration]
	Summary      string
	Description  string
	Location     string
	Geo          mo.Option[GeoPosition]
	Class        Classification
	Categories   []string
	Resources    []string
	Priority     mo.Option[int]
	Status       ObjectStatus
	Transparency TimeTransparency
	Sequence     mo.Option[int]
	Created      time.Time
	LastModified time.Time
	URL          string
	Organizer    string
	Attendees    []Attendee
	Attachments  []Attachment
	Contacts     []string
	Comments     []string
	RelatedTo    []RelatedTo
	Rule         *RecurrenceRule
	RDates       []time.Time
	ExDates      []time.Time
	RecurrenceID time.Time
	Alarms       []*VAlarm
}

// VEvent is a validated VEVENT.
type VEvent struct {
	componentBase
}

// NewEvent validates cfg and freezes it into a VEvent.
//
// UID defaults to a fresh UUID and DTSTAMP to the current time.  DTSTART is
// required; DTEND and DURATION are mutually exclusive; PRIORITY must lie in
// 0..9 and SEQUENCE must not be negative.
func NewEvent(cfg EventConfig) (*VEvent, error) {
	if cfg.Start.IsZero() {
		return nil, validationErrorf(ComponentVEvent, "DTSTART is required")
	}
	if _, ok := cfg.Duration.Get(); ok && !cfg.End.IsZero() {
		return nil, validationErrorf(ComponentVEvent, "DTEND and DURATION cannot coexist")
	}
	switch cfg.Status {
	case "", ObjectStatusTentative, ObjectStatusConfirmed, ObjectStatusCancelled:
	default:
		return nil, rangeError("event status", string(cfg.Status), "not a VEVENT status")
	}

	event := &VEvent{}
	event.add(PropertyUid, ToText(defaultUID(cfg.UID)))
	event.add(PropertyDtstamp, FormatDateTimeUTC(defaultDtStamp(cfg.DtStamp)))
	addDateTime(&event.componentBase, PropertyDtstart, cfg.Start, cfg.AllDay)
	if !cfg.End.IsZero() {
		addDateTime(&event.componentBase, PropertyDtend, cfg.End, cfg.AllDay)
	}
	if d, ok := cfg.Duration.Get(); ok {
		event.add(PropertyDuration, FormatDuration(d))
	}
	if cfg.Summary != "" {
		event.add(PropertySummary, ToText(cfg.Summary))
	}
	if cfg.Description != "" {
		event.add(PropertyDescription, ToText(cfg.Description))
	}
	if cfg.Location != "" {
		event.add(PropertyLocation, ToText(cfg.Location))
	}
	if geo, ok := cfg.Geo.Get(); ok {
		event.add(PropertyGeo, geo.String())
	}
	if cfg.Class != "" {
		event.add(PropertyClass, string(cfg.Class))
	}
	if len(cfg.Categories) > 0 {
		event.add(PropertyCategories, textList(cfg.Categories))
	}
	if len(cfg.Resources) > 0 {
		event.add(PropertyResources, textList(cfg.Resources))
	}
	if priority, ok := cfg.Priority.Get(); ok {
		if priority < 0 || priority > 9 {
			return nil, rangeError("event priority", priority, "must be within 0..9")
		}
		event.add(PropertyPriority, strconv.Itoa(priority))
	}
	if cfg.Status != "" {
		event.add(PropertyStatus, string(cfg.Status))
	}
	if cfg.Transparency != "" {
		event.add(PropertyTransp, string(cfg.Transparency))
	}
	if err := addSequence(&event.componentBase, ComponentVEvent, cfg.Sequence); err != nil {
		return nil, err
	}
	addStampTimes(&event.componentBase, cfg.Created, cfg.LastModified)
	if cfg.URL != "" {
		event.add(PropertyUrl, cfg.URL)
	}
	if cfg.Organizer != "" {
		event.add(PropertyOrganizer, mailtoAddress(cfg.Organizer))
	}
	for _, attendee := range cfg.Attendees {
		event.properties = append(event.properties, attendee.property())
	}
	for _, attachment := range cfg.Attachments {
		event.properties = append(event.properties, attachment.property())
	}
	for _, contact := range cfg.Contacts {
		event.add(PropertyContact, ToText(contact))
	}
	for _, comment := range cfg.Comments {
		event.add(PropertyComment, ToText(comment))
	}
	for _, related := range cfg.RelatedTo {
		event.properties = append(event.properties, related.property())
	}
	addRecurrenceSet(&event.componentBase, cfg.Rule, cfg.RDates, cfg.ExDates)
	if !cfg.RecurrenceID.IsZero() {
		event.add(PropertyRecurrenceId, FormatDateTimeUTC(cfg.RecurrenceID))
	}
	for _, alarm := range cfg.Alarms {
		event.components = append(event.components, alarm)
	}
	return event, nil
}

func (event *VEvent) SerializeTo(w io.Writer, serialConfig *SerializationConfiguration) error {
	return event.serializeThis(w, ComponentVEvent, serialConfig)
}

func (event *VEvent) Serialize(ops ...any) string {
	return serializeComponent(event, ops)
}

// TodoConfig collects everything a VTODO can carry.
type TodoConfig struct {
	UID             string
	DtStamp         time.Time
	Start           time.Time
	Due             time.Time // exclusive with Duration
	AllDay          bool
	Duration        mo.Option[time.Duration] // requires Start
	Completed       time.Time
	PercentComplete mo.Option[int]
	Summary         string
	Description     string
	Location        string
	Geo             mo.Option[GeoPosition]
	Class           Classification
	Categories      []string
	Resources       []string
	Priority        mo.Option[int]
	Status          ObjectStatus
	Sequence        mo.Option[int]
	Created         time.Time
	LastModified    time.Time
	URL             string
	Organizer       string
	Attendees       []Attendee
	Attachments     []Attachment
	Contacts        []string
	Comments        []string
	RelatedTo       []RelatedTo
	Rule            *RecurrenceRule
	RDates          []time.Time
	ExDates         []time.Time
	Alarms          []*VAlarm
}

// VTodo is a validated VTODO.
type VTodo struct {
	componentBase
}

// NewTodo validates cfg and freezes it into a VTodo.  DUE and DURATION are
// mutually exclusive, DURATION requires DTSTART, and PERCENT-COMPLETE must
// lie in 0..100.
func NewTodo(cfg TodoConfig) (*VTodo, error) {
	if _, ok := cfg.Duration.Get(); ok {
		if !cfg.Due.IsZero() {
			return nil, validationErrorf(ComponentVTodo, "DUE and DURATION cannot coexist")
		}
		if cfg.Start.IsZero() {
			return nil, validationErrorf(ComponentVTodo, "DURATION requires DTSTART")
		}
	}
	switch cfg.Status {
	case "", ObjectStatusNeedsAction, ObjectStatusCompleted, ObjectStatusInProcess, ObjectStatusCancelled:
	default:
		return nil, rangeError("todo status", string(cfg.Status), "not a VTODO status")
	}

	todo := &VTodo{}
	todo.add(PropertyUid, ToText(defaultUID(cfg.UID)))
	todo.add(PropertyDtstamp, FormatDateTimeUTC(defaultDtStamp(cfg.DtStamp)))
	if !cfg.Start.IsZero() {
		addDateTime(&todo.componentBase, PropertyDtstart, cfg.Start, cfg.AllDay)
	}
	if !cfg.Due.IsZero() {
		addDateTime(&todo.componentBase, PropertyDue, cfg.Due, cfg.AllDay)
	}
	if d, ok := cfg.Duration.Get(); ok {
		todo.add(PropertyDuration, FormatDuration(d))
	}
	if !cfg.Completed.IsZero() {
		todo.add(PropertyCompleted, FormatDateTimeUTC(cfg.Completed))
	}
	if percent, ok := cfg.PercentComplete.Get(); ok {
		if percent < 0 || percent > 100 {
			return nil, rangeError("todo percent-complete", percent, "must be within 0..100")
		}
		todo.add(PropertyPercentComplete, strconv.Itoa(percent))
	}
	if cfg.Summary != "" {
		todo.add(PropertySummary, ToText(cfg.Summary))
	}
	if cfg.Description != "" {
		todo.add(PropertyDescription, ToText(cfg.Description))
	}
	if cfg.Location != "" {
		todo.add(PropertyLocation, ToText(cfg.Location))
	}
	if geo, ok := cfg.Geo.Get(); ok {
		todo.add(PropertyGeo, geo.String())
	}
	if cfg.Class != "" {
		todo.add(PropertyClass, string(cfg.Class))
	}
	if len(cfg.Categories) > 0 {
		todo.add(PropertyCategories, textList(cfg.Categories))
	}
	if len(cfg.Resources) > 0 {
		todo.add(PropertyResources, textList(cfg.Resources))
	}
	if priority, ok := cfg.Priority.Get(); ok {
		if priority < 0 || priority > 9 {
			return nil, rangeError("todo priority", priority, "must be within 0..9")
		}
		todo.add(PropertyPriority, strconv.Itoa(priority))
	}
	if cfg.Status != "" {
		todo.add(PropertyStatus, string(cfg.Status))
	}
	if err := addSequence(&todo.componentBase, ComponentVTodo, cfg.Sequence); err != nil {
		return nil, err
	}
	addStampTimes(&todo.componentBase, cfg.Created, cfg.LastModified)
	if cfg.URL != "" {
		todo.add(PropertyUrl, cfg.URL)
	}
	if cfg.Organizer != "" {
		todo.add(PropertyOrganizer, mailtoAddress(cfg.Organizer))
	}
	for _, attendee := range cfg.Attendees {
		todo.properties = append(todo.properties, attendee.property())
	}
	for _, attachment := range cfg.Attachments {
		todo.properties = append(todo.properties, attachment.property())
	}
	for _, contact := range cfg.Contacts {
		todo.add(PropertyContact, ToText(contact))
	}
	for _, comment := range cfg.Comments {
		todo.add(PropertyComment, ToText(comment))
	}
	for _, related := range cfg.RelatedTo {
		todo.properties = append(todo.properties, related.property())
	}
	addRecurrenceSet(&todo.componentBase, cfg.Rule, cfg.RDates, cfg.ExDates)
	for _, alarm := range cfg.Alarms {
		todo.components = append(todo.components, alarm)
	}
	return todo, nil
}

func (todo *VTodo) SerializeTo(w io.Writer, serialConfig *SerializationConfiguration) error {
	return todo.serializeThis(w, ComponentVTodo, serialConfig)
}

func (todo *VTodo) Serialize(ops ...any) string {
	return serializeComponent(todo, ops)
}

// JournalConfig collects everything a VJOURNAL can carry.  Unlike events
// and todos, a journal entry may carry several DESCRIPTION properties.
type JournalConfig struct {
	UID          string
	DtStamp      time.Time
	Start        time.Time
	AllDay       bool
	Summary      string
	Descriptions []string
	Class        Classification
	Categories   []string
	Status       ObjectStatus
	Sequence     mo.Option[int]
	Created      time.Time
	LastModified time.Time
	URL          string
	Organizer    string
	Attendees    []Attendee
	Attachments  []Attachment
	Contacts     []string
	Comments     []string
	RelatedTo    []RelatedTo
	Rule         *RecurrenceRule
	RDates       []time.Time
	ExDates      []time.Time
}

// VJournal is a validated VJOURNAL.
type VJournal struct {
	componentBase
}

func NewJournal(cfg JournalConfig) (*VJournal, error) {
	switch cfg.Status {
	case "", ObjectStatusDraft, ObjectStatusFinal, ObjectStatusCancelled:
	default:
		return nil, rangeError("journal status", string(cfg.Status), "not a VJOURNAL status")
	}

	journal := &VJournal{}
	journal.add(PropertyUid, ToText(defaultUID(cfg.UID)))
	journal.add(PropertyDtstamp, FormatDateTimeUTC(defaultDtStamp(cfg.DtStamp)))
	if !cfg.Start.IsZero() {
		addDateTime(&journal.componentBase, PropertyDtstart, cfg.Start, cfg.AllDay)
	}
	if cfg.Summary != "" {
		journal.add(PropertySummary, ToText(cfg.Summary))
	}
	for _, description := range cfg.Descriptions {
		journal.add(PropertyDescription, ToText(description))
	}
	if cfg.Class != "" {
		journal.add(PropertyClass, string(cfg.Class))
	}
	if len(cfg.Categories) > 0 {
		journal.add(PropertyCategories, textList(cfg.Categories))
	}
	if cfg.Status != "" {
		journal.add(PropertyStatus, string(cfg.Status))
	}
	if err := addSequence(&journal.componentBase, ComponentVJournal, cfg.Sequence); err != nil {
		return nil, err
	}
	addStampTimes(&journal.componentBase, cfg.Created, cfg.LastModified)
	if cfg.URL != "" {
		journal.add(PropertyUrl, cfg.URL)
	}
	if cfg.Organizer != "" {
		journal.add(PropertyOrganizer, mailtoAddress(cfg.Organizer))
	}
	for _, attendee := range cfg.Attendees {
		journal.properties = append(journal.properties, attendee.property())
	}
	for _, attachment := range cfg.Attachments {
		journal.properties = append(journal.properties, attachment.property())
	}
	for _, contact := range cfg.Contacts {
		journal.add(PropertyContact, ToText(contact))
	}
	for _, comment := range cfg.Comments {
		journal.add(PropertyComment, ToText(comment))
	}
	for _, related := range cfg.RelatedTo {
		journal.properties = append(journal.properties, related.property())
	}
	addRecurrenceSet(&journal.componentBase, cfg.Rule, cfg.RDates, cfg.ExDates)
	return journal, nil
}

func (journal *VJournal) SerializeTo(w io.Writer, serialConfig *SerializationConfiguration) error {
	return journal.serializeThis(w, ComponentVJournal, serialConfig)
}

func (journal *VJournal) Serialize(ops ...any) string {
	return serializeComponent(journal, ops)
}

// FreeBusySlot is one FREEBUSY property: a busy-time classification over
// one or more periods, comma-joined on a single line.
type FreeBusySlot struct {
	Type    FreeBusyTimeType
	Periods []Period
}

// FreeBusyConfig collects everything a VFREEBUSY can carry.  Start and End
// bound the free/busy window and must be supplied together or not at all.
type FreeBusyConfig struct {
	UID       string
	DtStamp   time.Time
	Start     time.Time
	End       time.Time
	Organizer string
	Attendees []Attendee
	URL       string
	Comments  []string
	Slots     []FreeBusySlot
}

// VFreeBusy is a validated VFREEBUSY.
type VFreeBusy struct {
	componentBase
}

func NewFreeBusy(cfg FreeBusyConfig) (*VFreeBusy, error) {
	if cfg.Start.IsZero() != cfg.End.IsZero() {
		return nil, validationErrorf(ComponentVFreeBusy, "DTSTART and DTEND must be supplied together")
	}
	if !cfg.Start.IsZero() && !cfg.End.After(cfg.Start) {
		return nil, validationErrorf(ComponentVFreeBusy, "DTEND must follow DTSTART")
	}
	for _, slot := range cfg.Slots {
		switch slot.Type {
		case "", FreeBusyTimeTypeFree, FreeBusyTimeTypeBusy, FreeBusyTimeTypeBusyUnavailable, FreeBusyTimeTypeBusyTentative:
		default:
			return nil, rangeError("freebusy fbtype", string(slot.Type), "not a free/busy time type")
		}
		if len(slot.Periods) == 0 {
			return nil, validationErrorf(ComponentVFreeBusy, "a FREEBUSY slot needs at least one period")
		}
	}

	fb := &VFreeBusy{}
	fb.add(PropertyUid, ToText(defaultUID(cfg.UID)))
	fb.add(PropertyDtstamp, FormatDateTimeUTC(defaultDtStamp(cfg.DtStamp)))
	if !cfg.Start.IsZero() {
		fb.add(PropertyDtstart, FormatDateTimeUTC(cfg.Start))
		fb.add(PropertyDtend, FormatDateTimeUTC(cfg.End))
	}
	if cfg.Organizer != "" {
		fb.add(PropertyOrganizer, mailtoAddress(cfg.Organizer))
	}
	for _, attendee := range cfg.Attendees {
		fb.properties = append(fb.properties, attendee.property())
	}
	if cfg.URL != "" {
		fb.add(PropertyUrl, cfg.URL)
	}
	for _, comment := range cfg.Comments {
		fb.add(PropertyComment, ToText(comment))
	}
	for _, slot := range cfg.Slots {
		periods := make([]string, 0, len(slot.Periods))
		for _, p := range slot.Periods {
			periods = append(periods, p.String())
		}
		var params []PropertyParameter
		if slot.Type != "" {
			params = append(params, &KeyValues{Key: string(ParameterFbtype), Value: []string{string(slot.Type)}})
		}
		fb.add(PropertyFreebusy, strings.Join(periods, ","), params...)
	}
	return fb, nil
}

func (fb *VFreeBusy) SerializeTo(w io.Writer, serialConfig *SerializationConfiguration) error {
	return fb.serializeThis(w, ComponentVFreeBusy, serialConfig)
}

func (fb *VFreeBusy) Serialize(ops ...any) string {
	return serializeComponent(fb, ops)
}

// ObservanceConfig configures one STANDARD or DAYLIGHT block inside a
// VTIMEZONE.  Start is the local (floating) onset of the observance;
// OffsetFrom and OffsetTo are the offsets in force before and after it.
type ObservanceConfig struct {
	Start      time.Time
	OffsetFrom UTCOffset
	OffsetTo   UTCOffset
	Name       string
	Comment    string
	Rule       *RecurrenceRule
	RDates     []time.Time
}

// Observance is a validated STANDARD or DAYLIGHT subcomponent.
type Observance struct {
	componentBase
	kind ComponentType
}

// NewStandard builds a STANDARD observance.
func NewStandard(cfg ObservanceConfig) (*Observance, error) {
	return newObservance(ComponentStandard, cfg)
}

// NewDaylight builds a DAYLIGHT observance.
func NewDaylight(cfg ObservanceConfig) (*Observance, error) {
	return newObservance(ComponentDaylight, cfg)
}

func newObservance(kind ComponentType, cfg ObservanceConfig) (*Observance, error) {
	if cfg.Start.IsZero() {
		return nil, validationErrorf(kind, "DTSTART is required")
	}
	o := &Observance{kind: kind}
	o.add(PropertyDtstart, FormatDateTimeFloating(cfg.Start))
	o.add(PropertyTzoffsetfrom, cfg.OffsetFrom.String())
	o.add(PropertyTzoffsetto, cfg.OffsetTo.String())
	if cfg.Name != "" {
		o.add(PropertyTzname, ToText(cfg.Name))
	}
	if cfg.Comment != "" {
		o.add(PropertyComment, ToText(cfg.Comment))
	}
	if cfg.Rule != nil {
		o.add(PropertyRrule, cfg.Rule.Value())
	}
	for _, rdate := range cfg.RDates {
		o.add(PropertyRdate, FormatDateTimeFloating(rdate))
	}
	return o, nil
}

func (o *Observance) SerializeTo(w io.Writer, serialConfig *SerializationConfiguration) error {
	return o.serializeThis(w, o.kind, serialConfig)
}

func (o *Observance) Serialize(ops ...any) string {
	return serializeComponent(o, ops)
}

// TimezoneConfig collects a VTIMEZONE: the TZID plus at least one
// observance.
type TimezoneConfig struct {
	TzID         string
	URL          string
	LastModified time.Time
	Observances  []*Observance
}

// VTimezone is a validated VTIMEZONE.
type VTimezone struct {
	componentBase
}

func NewTimezone(cfg TimezoneConfig) (*VTimezone, error) {
	if cfg.TzID == "" {
		return nil, validationErrorf(ComponentVTimezone, "TZID is required")
	}
	if len(cfg.Observances) == 0 {
		return nil, validationErrorf(ComponentVTimezone, "at least one STANDARD or DAYLIGHT observance is required")
	}
	tz := &VTimezone{}
	tz.add(PropertyTzid, ToText(cfg.TzID))
	if !cfg.LastModified.IsZero() {
		tz.add(PropertyLastModified, FormatDateTimeUTC(cfg.LastModified))
	}
	if cfg.URL != "" {
		tz.add(PropertyTzurl, cfg.URL)
	}
	for _, o := range cfg.Observances {
		tz.components = append(tz.components, o)
	}
	return tz, nil
}

func (timezone *VTimezone) SerializeTo(w io.Writer, serialConfig *SerializationConfiguration) error {
	return timezone.serializeThis(w, ComponentVTimezone, serialConfig)
}

func (timezone *VTimezone) Serialize(ops ...any) string {
	return serializeComponent(timezone, ops)
}

func defaultUID(uid string) string {
	if uid == "" {
		return uuid.NewString()
	}
	return uid
}

func defaultDtStamp(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now()
	}
	return t
}

// addDateTime emits a date-time property either as a UTC timestamp or, for
// all-day values, as a DATE with the VALUE=DATE parameter.
func addDateTime(cb *componentBase, name Property, t time.Time, allDay bool) {
	if allDay {
		cb.add(name, FormatDate(t), WithValue(string(ValueDataTypeDate)))
		return
	}
	cb.add(name, FormatDateTimeUTC(t))
}

func addSequence(cb *componentBase, component ComponentType, sequence mo.Option[int]) error {
	seq, ok := sequence.Get()
	if !ok {
		return nil
	}
	if seq < 0 {
		return rangeError(strings.ToLower(string(component))+" sequence", seq, "must not be negative")
	}
	cb.add(PropertySequence, strconv.Itoa(seq))
	return nil
}

func addStampTimes(cb *componentBase, created, lastModified time.Time) {
	if !created.IsZero() {
		cb.add(PropertyCreated, FormatDateTimeUTC(created))
	}
	if !lastModified.IsZero() {
		cb.add(PropertyLastModified, FormatDateTimeUTC(lastModified))
	}
}

func addRecurrenceSet(cb *componentBase, rule *RecurrenceRule, rdates, exdates []time.Time) {
	if rule != nil {
		cb.add(PropertyRrule, rule.Value())
	}
	for _, rdate := range rdates {
		cb.add(PropertyRdate, FormatDateTimeUTC(rdate))
	}
	for _, exdate := range exdates {
		cb.add(PropertyExdate, FormatDateTimeUTC(exdate))
	}
}
