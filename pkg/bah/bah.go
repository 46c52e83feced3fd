// Package bah implements the ISO 20022 Business Application Header
// (head.001). Interbank traffic wraps a business Document together
// with an AppHdr in a BusMsg envelope; the header carries the routing
// agents, a business message identifier and the message definition of
// the enclosed Document.
//
// Parsing is namespace-lenient: elements match by local name so that
// head.001.001.02 and .03 headers both decode. Marshalling stamps the
// head.001.001.02 namespace.
//
// Reference: ISO 20022 Business Application Header, head.001.001.02
package bah

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/sirosfoundation/go-finmsg/pkg/model"
)

// NsHead001 is the business application header namespace.
const NsHead001 = "urn:iso:std:iso:20022:tech:xsd:head.001.001.02"

// AppHdr is the business application header of an ISO 20022 message.
type AppHdr struct {
	XMLName     xml.Name `xml:"AppHdr"`
	Xmlns       string   `xml:"xmlns,attr,omitempty"`
	Fr          *Party   `xml:"Fr,omitempty"`
	To          *Party   `xml:"To,omitempty"`
	BizMsgIdr   string   `xml:"BizMsgIdr"`
	MsgDefIdr   string   `xml:"MsgDefIdr"`
	BizSvc      string   `xml:"BizSvc,omitempty"`
	CreDtString string   `xml:"CreDt"`

	creDt time.Time
}

// Party identifies a business-level sender or receiver as a financial
// institution.
type Party struct {
	FIId FIId `xml:"FIId"`
}

// FIId wraps the financial institution identification.
type FIId struct {
	FinInstnId FinInstnId `xml:"FinInstnId"`
}

// FinInstnId carries the institution's BIC and optional name.
type FinInstnId struct {
	BICFI string `xml:"BICFI,omitempty"`
	Nm    string `xml:"Nm,omitempty"`
}

// BIC returns the party's BIC, or "" for a nil or BIC-less party.
func (p *Party) BIC() string {
	if p == nil {
		return ""
	}
	return p.FIId.FinInstnId.BICFI
}

// CreationTime returns the parsed CreDt timestamp.
func (h *AppHdr) CreationTime() time.Time {
	if h.creDt.IsZero() && h.CreDtString != "" {
		t, _ := time.Parse(time.RFC3339, h.CreDtString)
		h.creDt = t
	}
	return h.creDt
}

// SetCreationTime sets the CreDt timestamp.
func (h *AppHdr) SetCreationTime(t time.Time) {
	h.creDt = t
	h.CreDtString = t.UTC().Format(time.RFC3339)
}

// Family derives the canonical message family from the message
// definition identifier, e.g. "pacs.008.001.08" to pacs.008.
func (h *AppHdr) Family() model.Family {
	parts := strings.SplitN(h.MsgDefIdr, ".", 3)
	if len(parts) < 2 {
		return model.FamilyUnknown
	}
	family := model.Family(parts[0] + "." + parts[1])
	if family.IsMX() {
		return family
	}
	return model.FamilyUnknown
}

// Marshal serializes the header to XML bytes, stamping the head.001
// namespace.
func (h *AppHdr) Marshal() ([]byte, error) {
	if h.Xmlns == "" {
		h.Xmlns = NsHead001
	}
	return xml.MarshalIndent(h, "", "  ")
}

// Parse decodes an application header. The root may be the AppHdr
// itself or a BusMsg envelope containing one. Undecodable bytes wrap
// [model.ErrMalformed].
func Parse(data []byte) (*AppHdr, error) {
	var hdr AppHdr
	if err := xml.Unmarshal(data, &hdr); err == nil {
		return &hdr, nil
	}

	var env struct {
		XMLName xml.Name `xml:"BusMsg"`
		AppHdr  AppHdr   `xml:"AppHdr"`
	}
	if err := xml.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: application header: %v", model.ErrMalformed, err)
	}
	return &env.AppHdr, nil
}

// Envelope wraps a header and a marshalled Document in a BusMsg
// element. The document keeps its own namespace declaration; a
// leading XML declaration is dropped in favor of the envelope's.
func Envelope(hdr *AppHdr, document []byte) ([]byte, error) {
	hdrXML, err := hdr.Marshal()
	if err != nil {
		return nil, fmt.Errorf("marshal application header: %w", err)
	}

	doc := bytes.TrimSpace(document)
	if bytes.HasPrefix(doc, []byte("<?xml")) {
		if end := bytes.Index(doc, []byte("?>")); end >= 0 {
			doc = bytes.TrimSpace(doc[end+2:])
		}
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	buf.WriteString("<BusMsg>\n")
	buf.Write(hdrXML)
	buf.WriteByte('\n')
	buf.Write(doc)
	buf.WriteString("\n</BusMsg>\n")
	return buf.Bytes(), nil
}

// Builder provides a fluent interface for creating application
// headers.
type Builder struct {
	hdr *AppHdr
}

// NewBuilder creates a new header builder.
func NewBuilder() *Builder {
	return &Builder{hdr: &AppHdr{Xmlns: NsHead001}}
}

// WithBizMsgIdr sets the business message identifier.
func (b *Builder) WithBizMsgIdr(id string) *Builder {
	b.hdr.BizMsgIdr = id
	return b
}

// WithMessageDefinition sets the message definition identifier of the
// enclosed Document, e.g. "pacs.008.001.08".
func (b *Builder) WithMessageDefinition(id string) *Builder {
	b.hdr.MsgDefIdr = id
	return b
}

// WithFrom sets the sending institution's BIC.
func (b *Builder) WithFrom(bic string) *Builder {
	b.hdr.Fr = &Party{FIId: FIId{FinInstnId: FinInstnId{BICFI: bic}}}
	return b
}

// WithTo sets the receiving institution's BIC.
func (b *Builder) WithTo(bic string) *Builder {
	b.hdr.To = &Party{FIId: FIId{FinInstnId: FinInstnId{BICFI: bic}}}
	return b
}

// WithBizSvc sets the business service, e.g. "swift.cbprplus.02".
func (b *Builder) WithBizSvc(svc string) *Builder {
	b.hdr.BizSvc = svc
	return b
}

// WithCreationTime sets the header creation timestamp.
func (b *Builder) WithCreationTime(t time.Time) *Builder {
	b.hdr.SetCreationTime(t)
	return b
}

// Build validates and returns the header.
func (b *Builder) Build() (*AppHdr, error) {
	if b.hdr.BizMsgIdr == "" {
		return nil, fmt.Errorf("business message identifier is required")
	}
	if b.hdr.MsgDefIdr == "" {
		return nil, fmt.Errorf("message definition identifier is required")
	}
	if b.hdr.Fr.BIC() == "" {
		return nil, fmt.Errorf("sending institution is required")
	}
	if b.hdr.To.BIC() == "" {
		return nil, fmt.Errorf("receiving institution is required")
	}
	if b.hdr.CreDtString == "" {
		b.hdr.SetCreationTime(time.Now().UTC())
	}
	return b.hdr, nil
}
