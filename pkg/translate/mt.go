package translate

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirosfoundation/go-finmsg/pkg/model"
)

// terminalLength is the width of a logical terminal address in Blocks
// 1 and 2: an 8 or 11 character BIC padded with X.
const terminalLength = 12

// ToMT renders the message as a SWIFT FIN MT of the requested type.
// Supported types are "103" (single customer credit transfer) and
// "202" (general financial institution transfer); any other type
// wraps [model.ErrUnsupportedTarget].
//
// Blocks 1 and 2 are always emitted, with a missing counterparty
// address padded to an all-X placeholder. Block 3 always carries a
// {121:...} transaction reference, generated fresh when the model has
// none. Block 4 holds the type's tag sequence; a tag whose source
// field is nil is omitted, except :20: and the MT202 :21:, which fall
// back to NONREF, and the MT103 :23B:, which falls back to CRED.
func (t *Translator) ToMT(m *model.PaymentMessage, mtType string) ([]byte, error) {
	switch mtType {
	case "103", "202":
	default:
		return nil, fmt.Errorf("%w: MT%s", model.ErrUnsupportedTarget, mtType)
	}
	if m == nil {
		return nil, errors.New("nil message")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "{1:F01%s0000000000}", terminal(m.SenderBIC))
	fmt.Fprintf(&b, "{2:I%s%sN}", mtType, terminal(m.ReceiverBIC))

	uetr := model.Deref(m.UETR)
	if uetr == "" {
		uetr = GenerateUETR()
	}
	fmt.Fprintf(&b, "{3:{121:%s}}", uetr)

	b.WriteString("{4:")
	reference := m.MessageID
	if reference == "" {
		reference = "NONREF"
	}
	writeTag(&b, "20", reference)

	switch mtType {
	case "103":
		subType := model.Deref(m.SubType)
		if subType == "" {
			subType = "CRED"
		}
		writeTag(&b, "23B", subType)
		writeValueDate(&b, m)
		if party := partyField(m.DebtorAccount, m.DebtorName); party != "" {
			writeTag(&b, "50K", party)
		}
		if m.OrderingInstitution != nil {
			writeTag(&b, "52A", *m.OrderingInstitution)
		}
		if party := partyField(m.CreditorAccount, m.CreditorName); party != "" {
			writeTag(&b, "59", party)
		}
		if m.Remittance != nil {
			writeTag(&b, "70", *m.Remittance)
		}
		if m.ChargeBearer != nil {
			writeTag(&b, "71A", *m.ChargeBearer)
		}

	case "202":
		related := model.Deref(m.EndToEndID)
		if related == "" {
			related = "NONREF"
		}
		writeTag(&b, "21", related)
		writeValueDate(&b, m)
		if m.OrderingInstitution != nil {
			writeTag(&b, "52A", *m.OrderingInstitution)
		}
		if party := partyField(m.CreditorAccount, m.CreditorName); party != "" {
			writeTag(&b, "58A", party)
		}
	}

	b.WriteString("\n-}")
	return []byte(b.String()), nil
}

// writeValueDate derives :32A: from amount, currency and the creation
// time, switching the amount to comma-decimal form with every digit
// preserved. The tag combines three parts, so it is omitted unless
// amount and currency are both set; the date falls back to today.
func writeValueDate(b *strings.Builder, m *model.PaymentMessage) {
	if m.Amount == nil || m.Currency == nil {
		return
	}
	date := time.Now()
	if m.CreatedAt != nil {
		date = *m.CreatedAt
	}
	writeTag(b, "32A", date.Format("060102")+*m.Currency+strings.ReplaceAll(*m.Amount, ".", ","))
}

// writeTag appends one Block 4 field on its own line.
func writeTag(b *strings.Builder, tag, value string) {
	b.WriteString("\n:")
	b.WriteString(tag)
	b.WriteByte(':')
	b.WriteString(value)
}

// partyField renders an account and name as the line pair of a
// :50K:/:59: field, the account prefixed with "/" on its own line.
func partyField(account, name *string) string {
	var lines []string
	if account != nil {
		lines = append(lines, "/"+*account)
	}
	if name != nil {
		lines = append(lines, *name)
	}
	return strings.Join(lines, "\n")
}

// terminal pads a BIC up to a 12 character logical terminal address,
// or an all-X placeholder when the model has none.
func terminal(bic *string) string {
	addr := model.Deref(bic)
	if len(addr) >= terminalLength {
		return addr[:terminalLength]
	}
	return addr + strings.Repeat("X", terminalLength-len(addr))
}
