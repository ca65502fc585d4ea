package ics

import (
	"golang.org/x/text/language"
)

// PropertyParameter is anything that can contribute a NAME=value parameter
// to a property line.  The enum types in this package implement it directly,
// and the With* helpers wrap free-form values.
type PropertyParameter interface {
	KeyValue(s ...interface{}) (string, []string)
}

type KeyValues struct {
	Key   string
	Value []string
}

func (kv *KeyValues) KeyValue(s ...interface{}) (string, []string) {
	return kv.Key, kv.Value
}

func WithCN(cn string) PropertyParameter {
	return &KeyValues{
		Key:   string(ParameterCn),
		Value: []string{cn},
	}
}

func WithEncoding(encType string) PropertyParameter {
	return &KeyValues{
		Key:   string(ParameterEncoding),
		Value: []string{encType},
	}
}

func WithFmtType(contentType string) PropertyParameter {
	return &KeyValues{
		Key:   string(ParameterFmttype),
		Value: []string{contentType},
	}
}

func WithValue(kind string) PropertyParameter {
	return &KeyValues{
		Key:   string(ParameterValue),
		Value: []string{kind},
	}
}

func WithRSVP(b bool) PropertyParameter {
	v := "FALSE"
	if b {
		v = "TRUE"
	}
	return &KeyValues{
		Key:   string(ParameterRsvp),
		Value: []string{v},
	}
}

func WithTzid(tzid string) PropertyParameter {
	return &KeyValues{
		Key:   string(ParameterTzid),
		Value: []string{tzid},
	}
}

// WithAltrep attaches an ALTREP parameter.  ALTREP values are URIs and are
// always emitted inside double quotes.
func WithAltrep(uri string) PropertyParameter {
	return &KeyValues{
		Key:   string(ParameterAltrep),
		Value: []string{uri},
	}
}

func WithDir(uri string) PropertyParameter {
	return &KeyValues{
		Key:   string(ParameterDir),
		Value: []string{uri},
	}
}

func WithSentBy(address string) PropertyParameter {
	return &KeyValues{
		Key:   string(ParameterSentBy),
		Value: []string{mailtoAddress(address)},
	}
}

// WithMember attaches the group membership list (section 3.2.11).  Each
// address renders as an individually quoted URI, comma-joined:
// MEMBER="mailto:a@example.com","mailto:b@example.com".
func WithMember(addresses ...string) PropertyParameter {
	return &KeyValues{
		Key:   string(ParameterMember),
		Value: mailtoAddresses(addresses),
	}
}

func WithDelegatedTo(addresses ...string) PropertyParameter {
	return &KeyValues{
		Key:   string(ParameterDelegatedTo),
		Value: mailtoAddresses(addresses),
	}
}

func WithDelegatedFrom(addresses ...string) PropertyParameter {
	return &KeyValues{
		Key:   string(ParameterDelegatedFrom),
		Value: mailtoAddresses(addresses),
	}
}

func WithRole(role ParticipationRole) PropertyParameter {
	return &KeyValues{
		Key:   string(ParameterRole),
		Value: []string{string(role)},
	}
}

func WithParticipationStatus(status ParticipationStatus) PropertyParameter {
	return &KeyValues{
		Key:   string(ParameterParticipationStatus),
		Value: []string{string(status)},
	}
}

func WithCutype(cutype CalendarUserType) PropertyParameter {
	return &KeyValues{
		Key:   string(ParameterCutype),
		Value: []string{string(cutype)},
	}
}

func WithRelationshipType(reltype RelationshipType) PropertyParameter {
	return &KeyValues{
		Key:   string(ParameterReltype),
		Value: []string{string(reltype)},
	}
}

func WithRange(rangeValue string) PropertyParameter {
	return &KeyValues{
		Key:   string(ParameterRange),
		Value: []string{rangeValue},
	}
}

// WithLanguage attaches a LANGUAGE parameter (section 3.2.10) carrying an
// already-validated BCP 47 tag.  Use ParseLanguage to obtain one from a raw
// string.
func WithLanguage(tag language.Tag) PropertyParameter {
	return &KeyValues{
		Key:   string(ParameterLanguage),
		Value: []string{tag.String()},
	}
}

// ParseLanguage validates a raw BCP 47 tag for use with WithLanguage.
// A malformed tag is a *FormatError.
func ParseLanguage(s string) (language.Tag, error) {
	tag, err := language.Parse(s)
	if err != nil {
		return language.Tag{}, &FormatError{Field: "language", Input: s, Err: err}
	}
	return tag, nil
}
