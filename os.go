package ics

// WithNewLinePlatform selects the running platform's native line terminator
// instead of the CRLF the wire format specifies.  Useful when the output is
// destined for a local text file rather than transport.
func WithNewLinePlatform() WithNewLine {
	return WithNewLine(platformNewLine)
}
