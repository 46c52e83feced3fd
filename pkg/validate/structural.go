package validate

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/beevik/etree"

	"github.com/sirosfoundation/go-finmsg/pkg/detect"
	"github.com/sirosfoundation/go-finmsg/pkg/mt"
	"github.com/sirosfoundation/go-finmsg/pkg/mx"
	"github.com/sirosfoundation/go-finmsg/pkg/profile"
)

// MaxMessageSize bounds the input accepted by the structural
// validator (10 MB). Statement files beyond this are split upstream.
const MaxMessageSize = 10 * 1024 * 1024

var (
	// bic8 is the 8-character institution+country+location shape
	// checked inside MT header addresses.
	bic8 = regexp.MustCompile(`^[A-Z]{4}[A-Z]{2}[A-Z0-9]{2}$`)

	// headerBlock grabs brace-delimited header blocks even when the
	// full block scan has already failed.
	headerBlock = regexp.MustCompile(`\{([1235]):([^{}]*)\}`)

	// tagLine is the ":NN:" or ":NNa:" shape every Block 4 tag line
	// must open with.
	tagLine = regexp.MustCompile(`^:[0-9]{2}[A-Z]?:`)

	// commaAmount is the SWIFT decimal shape: digits, one comma,
	// optional fraction digits.
	commaAmount = regexp.MustCompile(`^[0-9]+,[0-9]*$`)

	currency3 = regexp.MustCompile(`^[A-Z]{3}$`)
	digits    = regexp.MustCompile(`^[0-9]+$`)
)

// StructuralValidator checks raw message bytes before extraction.
// Violations are collected, never raised; the zero-cost construction
// makes one validator safe to share across goroutines.
type StructuralValidator struct {
	registry *profile.Registry
}

// StructuralOption configures a StructuralValidator.
type StructuralOption func(*StructuralValidator)

// WithRegistry replaces the default structural profile registry.
func WithRegistry(r *profile.Registry) StructuralOption {
	return func(v *StructuralValidator) {
		if r != nil {
			v.registry = r
		}
	}
}

// NewStructural creates a structural validator with the default
// profile registry.
func NewStructural(opts ...StructuralOption) *StructuralValidator {
	v := &StructuralValidator{registry: profile.DefaultRegistry()}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// ValidateSchema checks data against the structural rules of its
// detected format and reports every violation found.
func (v *StructuralValidator) ValidateSchema(data []byte) *Report {
	rep := NewReport()

	if len(data) == 0 {
		rep.add("Input is empty")
		return rep
	}
	if len(data) > MaxMessageSize {
		rep.add("Input of %d bytes exceeds the %d byte limit", len(data), MaxMessageSize)
		return rep
	}

	format, err := detect.Detect(data)
	if err != nil {
		rep.add("Unrecognized message format: neither XML nor MT block signature found")
		return rep
	}

	switch format {
	case detect.FormatMX:
		v.checkMX(data, rep)
	case detect.FormatMT:
		v.checkMT(data, rep)
	}
	return rep
}

func (v *StructuralValidator) checkMX(data []byte, rep *Report) {
	for i, b := range data {
		if b == 0 {
			rep.add("NUL byte at offset %d", i)
			return
		}
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		rep.add("Malformed XML: %v", err)
		return
	}
	root := doc.Root()
	if root == nil {
		rep.add("Malformed XML: no root element")
		return
	}

	scope := root
	switch root.Tag {
	case "BusMsg", "BizMsgEnvlp":
		if docEl := mx.FindFirst(root, "Document"); docEl != nil {
			scope = docEl
		}
	}

	family := mx.FamilyOf(scope)
	prof := v.registry.Find(family)
	if prof == nil {
		// unregistered family: well-formedness is all we can assert
		return
	}
	for _, el := range prof.RequiredElements {
		if mx.FindFirst(scope, el) == nil {
			rep.add("Mandatory element <%s> missing for %s", el, family)
		}
	}
}

func (v *StructuralValidator) checkMT(data []byte, rep *Report) {
	blocks, err := mt.SplitBlocks(data)
	if err != nil {
		if errors.Is(err, mt.ErrUnterminated) {
			rep.add("unterminated block 4")
		} else {
			rep.add("Invalid MT block structure: %v", err)
		}
		blocks = fallbackBlocks(string(data))
	}

	for _, id := range []string{"1", "2", "4"} {
		if _, ok := blocks[id]; !ok {
			rep.add("Mandatory Block %s missing", id)
		}
	}

	if body, ok := blocks["1"]; ok {
		checkBlock1(body, rep)
	}
	if body, ok := blocks["2"]; ok {
		checkBlock2(body, rep)
	}
	if body, ok := blocks["4"]; ok && err == nil {
		checkBlock4(body, rep)
	}
}

// fallbackBlocks recovers what it can from input the block scan
// rejected, so header checks still run alongside the scan error.
func fallbackBlocks(text string) mt.Blocks {
	blocks := make(mt.Blocks)
	for _, m := range headerBlock.FindAllStringSubmatch(text, -1) {
		if _, dup := blocks[m[1]]; !dup {
			blocks[m[1]] = m[2]
		}
	}
	if strings.Contains(text, "{4:") {
		blocks["4"] = ""
	}
	return blocks
}

func checkBlock1(body string, rep *Report) {
	if len(body) < 15 || body[0] != 'F' || !digits.MatchString(body[1:3]) {
		rep.add("Invalid Block 1 structure: '%s'", body)
		return
	}
	bic := body[3:11]
	if !bic8.MatchString(bic) {
		rep.add("Invalid BIC format in Block 1: '%s'", bic)
	}
}

func checkBlock2(body string, rep *Report) {
	if len(body) < 16 || (body[0] != 'I' && body[0] != 'O') || !digits.MatchString(body[1:4]) {
		rep.add("Invalid Block 2 structure: '%s'", body)
		return
	}
	// output headers carry input time and MIR where input headers
	// carry the receiver address, so only the latter is a BIC
	if body[0] == 'I' {
		bic := body[4:12]
		if !bic8.MatchString(bic) {
			rep.add("Invalid BIC format in Block 2: '%s'", bic)
		}
	}
}

func checkBlock4(body string, rep *Report) {
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line == "" || line[0] != ':' {
			continue
		}
		if !tagLine.MatchString(line) {
			rep.add("Malformed tag line in Block 4: '%s'", line)
		}
	}

	seen20 := false
	field32A := ""
	for _, f := range mt.Fields(body) {
		switch f.Tag {
		case "20":
			seen20 = true
		case "32A":
			if field32A == "" {
				field32A = f.Value
			}
		}
	}
	if !seen20 {
		rep.add("Mandatory Field :20: (Sender's Reference) missing")
	}
	if field32A != "" {
		check32A(field32A, rep)
	}
}

// check32A verifies the value date, currency and amount composition
// of field 32A independently, so one bad component does not hide the
// others.
func check32A(value string, rep *Report) {
	if i := strings.IndexByte(value, '\n'); i >= 0 {
		value = value[:i]
	}
	value = strings.TrimSpace(value)

	date := value
	if len(value) >= 6 {
		date = value[:6]
	}
	if !validDate6(date) {
		rep.add("Invalid date in Field 32A: '%s'", date)
	}

	var ccy string
	switch {
	case len(value) >= 9:
		ccy = value[6:9]
	case len(value) > 6:
		ccy = value[6:]
	}
	if !currency3.MatchString(ccy) {
		rep.add("Invalid currency in Field 32A: '%s'", ccy)
	}

	var amount string
	if len(value) > 9 {
		amount = value[9:]
	}
	if !commaAmount.MatchString(amount) {
		rep.add("Invalid amount format in Field 32A: '%s'", amount)
	}
}

// validDate6 checks a YYMMDD value date against the calendar, not
// just its digit shape.
func validDate6(d string) bool {
	if len(d) != 6 || !digits.MatchString(d) {
		return false
	}
	_, err := time.Parse("060102", d)
	return err == nil
}
