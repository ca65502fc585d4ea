package ics

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serializeProperty(t *testing.T, p BaseProperty) string {
	t.Helper()
	b := &strings.Builder{}
	require.NoError(t, p.serialize(b, defaultSerializationOptions()))
	return b.String()
}

func TestPropertyParameterOrder(t *testing.T) {
	p := newProperty(PropertyAttendee, "mailto:a@example.com",
		WithCN("Alice"),
		WithRole(ParticipationRoleChair),
		WithRSVP(true),
	)
	got := serializeProperty(t, p.BaseProperty)
	assert.Equal(t, "ATTENDEE;CN=Alice;ROLE=CHAIR;RSVP=TRUE:mailto:a@example.com\r\n", got)
}

func TestPropertyParameterReplacement(t *testing.T) {
	p := newProperty(PropertyAttendee, "mailto:a@example.com",
		WithCN("Alice"),
		WithRole(ParticipationRoleChair),
		WithCN("Bob"),
	)
	got := serializeProperty(t, p.BaseProperty)
	// The later CN wins but keeps the original position.
	assert.Equal(t, "ATTENDEE;CN=Bob;ROLE=CHAIR:mailto:a@example.com\r\n", got)
}

func TestPropertyParameterQuoting(t *testing.T) {
	tests := []struct {
		name  string
		param PropertyParameter
		want  string
	}{
		{"uri parameter always quoted", WithAltrep("http://example.com/a"), `SUMMARY;ALTREP="http://example.com/a":v`},
		{"unsafe char forces quoting", WithCN("Doe, John"), `SUMMARY;CN="Doe, John":v`},
		{"embedded dquote dropped", WithCN(`say "hi", please`), `SUMMARY;CN="say hi, please":v`},
		{"safe value left bare", WithCN("Alice"), `SUMMARY;CN=Alice:v`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := newProperty(PropertySummary, "v", tc.param)
			assert.Equal(t, tc.want+"\r\n", serializeProperty(t, p.BaseProperty))
		})
	}
}

func TestPropertyMultiValuedParameter(t *testing.T) {
	p := newProperty(PropertyAttendee, "mailto:group@example.com",
		WithMember("a@example.com", "b@example.com"),
	)
	got := serializeProperty(t, p.BaseProperty)
	assert.Equal(t, `ATTENDEE;MEMBER="mailto:a@example.com","mailto:b@example.com":mailto:group@`+"\r\n"+` example.com`+"\r\n", got)
}

func TestPropertyWithoutValueOmitsColon(t *testing.T) {
	p := BaseProperty{IANAToken: "X-MARKER"}
	assert.Equal(t, "X-MARKER\r\n", serializeProperty(t, p))

	p = BaseProperty{IANAToken: "X-MARKER"}
	p.setParameters([]PropertyParameter{WithValue("BOOLEAN")})
	assert.Equal(t, "X-MARKER;VALUE=BOOLEAN\r\n", serializeProperty(t, p))
}

func TestToText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`back\slash`, `back\\slash`},
		{"line\nbreak", `line\nbreak`},
		{"semi;colon", `semi\;colon`},
		{"comma,separated", `comma\,separated`},
		{"plain", "plain"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, ToText(tc.in))
	}
}

func TestTextList(t *testing.T) {
	assert.Equal(t, `WORK,PERSONAL\,MISC`, textList([]string{"WORK", "PERSONAL,MISC"}))
}

func TestParseLanguage(t *testing.T) {
	tag, err := ParseLanguage("en-US")
	require.NoError(t, err)
	p := newProperty(PropertySummary, "Meeting", WithLanguage(tag))
	assert.Equal(t, "SUMMARY;LANGUAGE=en-US:Meeting\r\n", serializeProperty(t, p.BaseProperty))

	_, err = ParseLanguage("not a tag!!")
	var formatErr *FormatError
	require.ErrorAs(t, err, &formatErr)
}
