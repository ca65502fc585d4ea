package ics

import (
	"io"
	"strings"
)

// BaseProperty is one content line: a property name, its parameters in the
// order the property declared them, and a value.  Parameter order is part of
// each property's contract, so parameters live in a slice rather than a map,
// and at most one parameter of a given kind is retained.
type BaseProperty struct {
	IANAToken  string
	Parameters []KeyValues
	Value      string
}

// IANAProperty is a property belonging to a component.
type IANAProperty struct {
	BaseProperty
}

// CalendarProperty is a property belonging to the VCALENDAR envelope itself.
type CalendarProperty struct {
	BaseProperty
}

func newProperty(name Property, value string, params ...PropertyParameter) IANAProperty {
	r := IANAProperty{
		BaseProperty{
			IANAToken: string(name),
			Value:     value,
		},
	}
	r.setParameters(params)
	return r
}

// setParameters installs params preserving call order.  A later parameter of
// the same kind replaces the earlier one, keeping kinds unique.
func (property *BaseProperty) setParameters(params []PropertyParameter) {
	for _, p := range params {
		if p == nil {
			continue
		}
		k, v := p.KeyValue()
		replaced := false
		for i := range property.Parameters {
			if property.Parameters[i].Key == k {
				property.Parameters[i].Value = v
				replaced = true
				break
			}
		}
		if !replaced {
			property.Parameters = append(property.Parameters, KeyValues{Key: k, Value: v})
		}
	}
}

// serialize composes the content line and hands it to the folder.  The value
// segment, colon included, is omitted entirely for an empty value so that
// marker and parameter-only properties render as bare names.
func (property *BaseProperty) serialize(w io.Writer, serialConfig *SerializationConfiguration) error {
	b := &strings.Builder{}
	b.WriteString(property.IANAToken)
	for _, kv := range property.Parameters {
		b.WriteString(";")
		b.WriteString(kv.Key)
		b.WriteString("=")
		for vi, v := range kv.Value {
			if vi > 0 {
				b.WriteString(",")
			}
			b.WriteString(formatParameterValue(Parameter(kv.Key), v))
		}
	}
	if property.Value != "" {
		b.WriteString(":")
		b.WriteString(property.Value)
	}
	return foldLine(w, b.String(), serialConfig)
}

// formatParameterValue applies the quoting rules of RFC 5545 section 3.2:
// URI-valued parameters always quote, and any value carrying a character
// outside SAFE-CHAR must quote.  A DQUOTE cannot occur even inside a quoted
// string, so embedded quotes are dropped.
func formatParameterValue(param Parameter, v string) string {
	if !param.IsQuoted() && !strings.ContainsAny(v, ";:,\"") {
		return v
	}
	v = strings.ReplaceAll(v, "\"", "")
	return "\"" + v + "\""
}

var textEscaper = strings.NewReplacer(
	`\`, `\\`,
	"\n", `\n`,
	`;`, `\;`,
	`,`, `\,`,
)

// ToText escapes s for use as a TEXT property value (section 3.3.11).
func ToText(s string) string {
	return textEscaper.Replace(s)
}

// textList escapes each element and joins with commas, the shape used by
// CATEGORIES and RESOURCES.
func textList(elems []string) string {
	escaped := make([]string, 0, len(elems))
	for _, e := range elems {
		escaped = append(escaped, ToText(e))
	}
	return strings.Join(escaped, ",")
}
