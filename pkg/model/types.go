package model

import "time"

// Family identifies the message family a payment message belongs to.
// MX families use the ISO 20022 business-area notation; MT families
// use the SWIFT three-digit type.
type Family string

const (
	// FamilyPacs008 is an FI-to-FI customer credit transfer
	FamilyPacs008 Family = "pacs.008"
	// FamilyPain001 is a customer credit transfer initiation
	FamilyPain001 Family = "pain.001"
	// FamilyPain002 is a customer payment status report
	FamilyPain002 Family = "pain.002"
	// FamilyCamt052 is a bank-to-customer account report
	FamilyCamt052 Family = "camt.052"
	// FamilyCamt053 is a bank-to-customer statement
	FamilyCamt053 Family = "camt.053"
	// FamilyCamt054 is a bank-to-customer debit/credit notification
	FamilyCamt054 Family = "camt.054"
	// FamilyCamt056 is an FI-to-FI payment cancellation request
	FamilyCamt056 Family = "camt.056"
	// FamilyCamt029 is a resolution of investigation
	FamilyCamt029 Family = "camt.029"
	// FamilyMT103 is a single customer credit transfer
	FamilyMT103 Family = "MT103"
	// FamilyMT202 is a general financial institution transfer
	FamilyMT202 Family = "MT202"
	// FamilyMT101 is a request for transfer
	FamilyMT101 Family = "MT101"
	// FamilyMT942 is an interim transaction report
	FamilyMT942 Family = "MT942"
	// FamilyMT950 is a statement message
	FamilyMT950 Family = "MT950"
	// FamilyUnknown marks a message whose family could not be determined
	FamilyUnknown Family = "unknown"
)

// IsMX reports whether the family is an ISO 20022 XML family.
func (f Family) IsMX() bool {
	switch f {
	case FamilyPacs008, FamilyPain001, FamilyPain002,
		FamilyCamt052, FamilyCamt053, FamilyCamt054, FamilyCamt056, FamilyCamt029:
		return true
	}
	return false
}

// IsMT reports whether the family is a SWIFT MT block-format family.
func (f Family) IsMT() bool {
	switch f {
	case FamilyMT103, FamilyMT202, FamilyMT101, FamilyMT942, FamilyMT950:
		return true
	}
	return false
}

// Credit/debit indicators carried by statement entries.
const (
	EntryCredit = "CRDT"
	EntryDebit  = "DBIT"
)

// Group status codes reported by payment status messages (pain.002).
const (
	GroupStatusAccepted = "ACSP"
	GroupStatusRejected = "RJCT"
	GroupStatusPending  = "PDNG"
)

// PaymentMessage is the canonical model every supported wire format
// normalizes to. MessageID is the only required field; all other
// scalar fields are nil when absent from the source.
type PaymentMessage struct {
	MessageID           string     `json:"message_id"`
	EndToEndID          *string    `json:"end_to_end_id,omitempty"`
	Amount              *string    `json:"amount,omitempty"`
	Currency            *string    `json:"currency,omitempty"`
	SenderBIC           *string    `json:"sender_bic,omitempty"`
	ReceiverBIC         *string    `json:"receiver_bic,omitempty"`
	OrderingInstitution *string    `json:"ordering_institution,omitempty"`
	DebtorName          *string    `json:"debtor_name,omitempty"`
	DebtorAccount       *string    `json:"debtor_account,omitempty"`
	CreditorName        *string    `json:"creditor_name,omitempty"`
	CreditorAccount     *string    `json:"creditor_account,omitempty"`
	UETR                *string    `json:"uetr,omitempty"`
	SubType             *string    `json:"sub_type,omitempty"`
	Remittance          *string    `json:"remittance,omitempty"`
	ChargeBearer        *string    `json:"charge_bearer,omitempty"`
	CreatedAt           *time.Time `json:"created_at,omitempty"`
	OriginalMessageID   *string    `json:"original_message_id,omitempty"`
	CaseID              *string    `json:"case_id,omitempty"`
	GroupStatus         *string    `json:"group_status,omitempty"`
	MessageType         Family     `json:"message_type"`

	// RawSource retains the original wire bytes for anonymization and
	// round-trip fidelity checks. It is never re-parsed implicitly.
	RawSource []byte `json:"-"`
}

// Entry is one booking line of a statement or notification document.
type Entry struct {
	Reference   *string `json:"reference,omitempty"`
	Amount      *string `json:"amount,omitempty"`
	Currency    *string `json:"currency,omitempty"`
	BookingDate *string `json:"booking_date,omitempty"`
	Status      *string `json:"status,omitempty"`
	Remittance  *string `json:"remittance,omitempty"`
}

// DetailedModel is a PaymentMessage plus the ordered booking lines of
// a statement document. Entry order preserves source document order;
// that ordering is statement chronology and must not be disturbed.
type DetailedModel struct {
	PaymentMessage
	AccountID *string `json:"account_id,omitempty"`
	Entries   []Entry `json:"entries"`
}

// Str returns a pointer to s, for filling optional fields from
// literals.
func Str(s string) *string { return &s }

// Deref returns the value p points to, or the empty string when p is
// nil.
func Deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// Time returns a pointer to t.
func Time(t time.Time) *time.Time { return &t }

// Clone returns a deep copy of the message. Callers that need to
// mutate a parsed message work on a clone; the original stays
// immutable.
func (m *PaymentMessage) Clone() *PaymentMessage {
	if m == nil {
		return nil
	}
	c := *m
	c.EndToEndID = cloneStr(m.EndToEndID)
	c.Amount = cloneStr(m.Amount)
	c.Currency = cloneStr(m.Currency)
	c.SenderBIC = cloneStr(m.SenderBIC)
	c.ReceiverBIC = cloneStr(m.ReceiverBIC)
	c.OrderingInstitution = cloneStr(m.OrderingInstitution)
	c.DebtorName = cloneStr(m.DebtorName)
	c.DebtorAccount = cloneStr(m.DebtorAccount)
	c.CreditorName = cloneStr(m.CreditorName)
	c.CreditorAccount = cloneStr(m.CreditorAccount)
	c.UETR = cloneStr(m.UETR)
	c.SubType = cloneStr(m.SubType)
	c.Remittance = cloneStr(m.Remittance)
	c.ChargeBearer = cloneStr(m.ChargeBearer)
	c.OriginalMessageID = cloneStr(m.OriginalMessageID)
	c.CaseID = cloneStr(m.CaseID)
	c.GroupStatus = cloneStr(m.GroupStatus)
	if m.CreatedAt != nil {
		t := *m.CreatedAt
		c.CreatedAt = &t
	}
	if m.RawSource != nil {
		c.RawSource = make([]byte, len(m.RawSource))
		copy(c.RawSource, m.RawSource)
	}
	return &c
}

func cloneStr(p *string) *string {
	if p == nil {
		return nil
	}
	s := *p
	return &s
}
