package mt

import (
	"fmt"
	"strings"

	"github.com/sirosfoundation/go-finmsg/pkg/model"
)

// families maps the three-digit type from Block 2 onto a canonical
// message family.
var families = map[string]model.Family{
	"101": model.FamilyMT101,
	"103": model.FamilyMT103,
	"202": model.FamilyMT202,
	"942": model.FamilyMT942,
	"950": model.FamilyMT950,
}

// Parse maps raw MT bytes onto the canonical model. It returns an
// error wrapping [model.ErrMalformed] for structural damage or a
// missing :20: sender reference; any other absent field is nil.
func Parse(data []byte) (*model.PaymentMessage, error) {
	detailed, err := ParseDetailed(data)
	if err != nil {
		return nil, err
	}
	return &detailed.PaymentMessage, nil
}

// ParseDetailed maps raw MT bytes onto the canonical model, including
// the :61:/:86: booking entries of interim reports and statements.
func ParseDetailed(data []byte) (*model.DetailedModel, error) {
	blocks, err := SplitBlocks(data)
	if err != nil {
		return nil, err
	}

	msg := &model.DetailedModel{}
	msg.MessageType = model.FamilyUnknown
	msg.RawSource = append([]byte(nil), data...)

	if b1, ok := blocks["1"]; ok {
		if sender := SenderAddress(b1); sender != "" {
			msg.SenderBIC = model.Str(sender)
		}
	}
	if b2, ok := blocks["2"]; ok {
		family, receiver := ApplicationHeader(b2)
		msg.MessageType = family
		if receiver != "" {
			msg.ReceiverBIC = model.Str(receiver)
		}
	}
	if b3, ok := blocks["3"]; ok {
		for _, f := range serviceTags(b3) {
			// tag 121 carries the unique end-to-end transaction reference
			if f.Tag == "121" && f.Value != "" && msg.UETR == nil {
				msg.UETR = model.Str(f.Value)
			}
		}
	}

	var stmtCurrency string
	for _, f := range Fields(blocks["4"]) {
		switch f.Tag {
		case "20":
			if msg.MessageID == "" {
				msg.MessageID = scalar(f.Value)
			}
		case "21":
			setFirst(&msg.EndToEndID, scalar(f.Value))
		case "23B":
			setFirst(&msg.SubType, scalar(f.Value))
		case "25":
			setFirst(&msg.AccountID, scalar(f.Value))
		case "32A":
			if currency, amount, ok := valueDate32A(f.Value); ok && msg.Amount == nil {
				msg.Currency = model.Str(currency)
				msg.Amount = model.Str(amount)
			}
		case "32B":
			if currency, amount, ok := currencyAmount32B(f.Value); ok && msg.Amount == nil {
				msg.Currency = model.Str(currency)
				msg.Amount = model.Str(amount)
			}
		case "50K", "50H":
			name, account := partyLines(f.Value)
			setFirst(&msg.DebtorName, name)
			setFirst(&msg.DebtorAccount, account)
		case "52A":
			name, account := partyLines(f.Value)
			if name == "" {
				name = account
			}
			setFirst(&msg.OrderingInstitution, name)
		case "58A", "59", "59A":
			name, account := partyLines(f.Value)
			setFirst(&msg.CreditorName, name)
			setFirst(&msg.CreditorAccount, account)
		case "60F", "62F":
			if stmtCurrency == "" {
				stmtCurrency = balanceCurrency(f.Value)
			}
		case "34F":
			if v := scalar(f.Value); stmtCurrency == "" && len(v) >= 3 && alpha3(v[:3]) {
				stmtCurrency = v[:3]
			}
		case "61":
			if entry, ok := statementLine(f.Value); ok {
				msg.Entries = append(msg.Entries, entry)
			}
		case "70":
			setFirst(&msg.Remittance, strings.TrimSpace(f.Value))
		case "71A":
			setFirst(&msg.ChargeBearer, scalar(f.Value))
		case "86":
			if n := len(msg.Entries); n > 0 && msg.Entries[n-1].Remittance == nil {
				msg.Entries[n-1].Remittance = model.Str(strings.TrimSpace(f.Value))
			}
		}
	}

	for i := range msg.Entries {
		if msg.Entries[i].Currency == nil && stmtCurrency != "" {
			msg.Entries[i].Currency = model.Str(stmtCurrency)
		}
	}

	if msg.MessageID == "" {
		return nil, fmt.Errorf("%w: no :20: sender reference", model.ErrMalformed)
	}
	return msg, nil
}

// SenderAddress extracts the sender's terminal address from Block 1,
// dropping the trailing session and sequence digits when present.
// Block 1 layout is "F01" followed by the address, a four digit
// session number and a six digit sequence number.
func SenderAddress(block1 string) string {
	const header = "F01"
	if !strings.HasPrefix(block1, header) {
		return ""
	}
	addr := block1[len(header):]
	if n := len(addr); n > 10 && allDigits(addr[n-10:]) {
		addr = addr[:n-10]
	}
	return addr
}

// ApplicationHeader decodes Block 2: a direction letter, the three
// digit message type, then up to twelve characters of counterparty
// terminal address. Unknown types map to [model.FamilyUnknown].
func ApplicationHeader(block2 string) (model.Family, string) {
	if len(block2) < 4 {
		return model.FamilyUnknown, ""
	}
	family, ok := families[block2[1:4]]
	if !ok {
		family = model.FamilyUnknown
	}
	end := 4 + 12
	if end > len(block2) {
		end = len(block2)
	}
	return family, block2[4:end]
}

// valueDate32A decomposes a :32A: value: a six digit YYMMDD date, a
// three letter currency, then a comma-decimal amount. Any part that
// fails its shape fails the whole field.
func valueDate32A(v string) (currency, amount string, ok bool) {
	v = scalar(v)
	if len(v) < 10 || !allDigits(v[:6]) || !alpha3(v[6:9]) {
		return "", "", false
	}
	amount, ok = commaAmount(v[9:])
	if !ok {
		return "", "", false
	}
	return v[6:9], amount, true
}

// currencyAmount32B decomposes a :32B: value: a three letter currency
// followed by a comma-decimal amount.
func currencyAmount32B(v string) (currency, amount string, ok bool) {
	v = scalar(v)
	if len(v) < 4 || !alpha3(v[:3]) {
		return "", "", false
	}
	amount, ok = commaAmount(v[3:])
	if !ok {
		return "", "", false
	}
	return v[:3], amount, true
}

// commaAmount rewrites a SWIFT comma-decimal amount in period form,
// preserving every digit. Amounts never carry a thousands separator.
func commaAmount(v string) (string, bool) {
	if v == "" {
		return "", false
	}
	comma := -1
	for i := 0; i < len(v); i++ {
		switch {
		case v[i] >= '0' && v[i] <= '9':
		case v[i] == ',' && comma < 0 && i > 0:
			comma = i
		default:
			return "", false
		}
	}
	if comma < 0 {
		return v, true
	}
	return v[:comma] + "." + v[comma+1:], true
}

// partyLines splits a party field into name and optional account. An
// account rides on the first line behind a "/"; the name is the next
// line. Trailing address lines are not modeled.
func partyLines(v string) (name, account string) {
	lines := strings.Split(v, "\n")
	if len(lines) > 0 && strings.HasPrefix(lines[0], "/") {
		account = strings.TrimSpace(lines[0][1:])
		lines = lines[1:]
	}
	if len(lines) > 0 {
		name = strings.TrimSpace(lines[0])
	}
	return name, account
}

// statementLine decomposes a :61: line into a booking entry. Layout:
// a six digit value date, an optional four digit entry date, a
// debit/credit mark, a comma-decimal amount, a four character
// transaction type, then the account owner reference. A reference is
// cut at "//"; the account servicer part is not modeled.
func statementLine(v string) (model.Entry, bool) {
	v = scalar(v)
	if len(v) < 7 || !allDigits(v[:6]) {
		return model.Entry{}, false
	}
	bookingDate := isoDate(v[:6])

	i := 6
	if len(v) >= i+4 && allDigits(v[i:i+4]) {
		i += 4
	}

	mark := i
	for i < len(v) && v[i] >= 'A' && v[i] <= 'Z' {
		i++
	}
	if i == mark {
		return model.Entry{}, false
	}
	status := model.EntryDebit
	if strings.ContainsRune(v[mark:i], 'C') {
		status = model.EntryCredit
	}

	start := i
	for i < len(v) && (v[i] == ',' || (v[i] >= '0' && v[i] <= '9')) {
		i++
	}
	amount, ok := commaAmount(v[start:i])
	if !ok {
		return model.Entry{}, false
	}

	// skip the transaction type code, e.g. NTRF
	if len(v) >= i+4 {
		i += 4
	} else {
		i = len(v)
	}
	reference := v[i:]
	if j := strings.Index(reference, "//"); j >= 0 {
		reference = reference[:j]
	}

	entry := model.Entry{
		Amount:      model.Str(amount),
		BookingDate: model.Str(bookingDate),
		Status:      model.Str(status),
	}
	if reference = strings.TrimSpace(reference); reference != "" {
		entry.Reference = model.Str(reference)
	}
	return entry, true
}

// balanceCurrency lifts the currency out of a :60F:/:62F: balance:
// a debit/credit mark, a six digit date, the currency, the amount.
func balanceCurrency(v string) string {
	v = scalar(v)
	if len(v) < 10 || !alpha3(v[7:10]) {
		return ""
	}
	return v[7:10]
}

// isoDate expands a YYMMDD date into ISO 20xx form.
func isoDate(v string) string {
	return "20" + v[:2] + "-" + v[2:4] + "-" + v[4:6]
}

// scalar trims a field value to its first line for tags whose values
// never span lines.
func scalar(v string) string {
	if i := strings.IndexByte(v, '\n'); i >= 0 {
		v = v[:i]
	}
	return strings.TrimSpace(v)
}

// setFirst assigns value unless dst is already populated; repeated
// tags keep their first occurrence.
func setFirst(dst **string, value string) {
	if *dst == nil && value != "" {
		*dst = model.Str(value)
	}
}

func alpha3(s string) bool {
	if len(s) != 3 {
		return false
	}
	for i := 0; i < 3; i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}
