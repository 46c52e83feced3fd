// Package detect identifies the wire format of raw message bytes.
//
// Detection inspects a bounded prefix only: an XML declaration or an
// opening angle bracket selects the ISO 20022 (MX) path, a literal
// "{1:" basic header marker selects the SWIFT MT path. Anything else
// is rejected, so downstream engines never see bytes of an unknown
// shape.
package detect

import (
	"bytes"
	"fmt"

	"github.com/sirosfoundation/go-finmsg/pkg/model"
)

// Format identifies a recognized wire format.
type Format string

const (
	// FormatMX is an ISO 20022 XML document
	FormatMX Format = "MX"
	// FormatMT is a SWIFT MT block/tag message
	FormatMT Format = "MT"
	// FormatUnknown is returned alongside model.ErrUnknownFormat
	FormatUnknown Format = "unknown"
)

// maxSniff bounds how far into the input detection looks after
// leading whitespace is trimmed.
const maxSniff = 512

// utf8BOM is stripped before sniffing; some MX feeds prepend it.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Detect determines the wire format of data from its leading bytes.
// It never reads past maxSniff bytes of the trimmed input and has no
// side effects.
func Detect(data []byte) (Format, error) {
	head := bytes.TrimPrefix(data, utf8BOM)
	head = bytes.TrimLeft(head, " \t\r\n")
	if len(head) > maxSniff {
		head = head[:maxSniff]
	}

	switch {
	case len(head) == 0:
		return FormatUnknown, fmt.Errorf("%w: empty input", model.ErrUnknownFormat)
	case head[0] == '<':
		return FormatMX, nil
	case bytes.HasPrefix(head, []byte("{1:")):
		return FormatMT, nil
	}

	return FormatUnknown, fmt.Errorf("%w: no XML or MT block signature in first %d bytes", model.ErrUnknownFormat, len(head))
}
