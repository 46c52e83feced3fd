package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Builder constructs PaymentMessages in code with the same invariants
// a parser enforces.
type Builder struct {
	msg *PaymentMessage
}

// Option represents a functional option for Builder
type Option func(*Builder)

// New creates a new payment message builder with the given options.
func New(opts ...Option) *Builder {
	b := &Builder{
		msg: &PaymentMessage{
			MessageType: FamilyUnknown,
		},
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// WithMessageID sets the message identifier
func WithMessageID(id string) Option {
	return func(b *Builder) {
		b.msg.MessageID = id
	}
}

// WithEndToEndID sets the end-to-end identifier
func WithEndToEndID(id string) Option {
	return func(b *Builder) {
		b.msg.EndToEndID = Str(id)
	}
}

// WithAmount sets the settlement amount and its currency
func WithAmount(amount, currency string) Option {
	return func(b *Builder) {
		b.msg.Amount = Str(amount)
		if currency != "" {
			b.msg.Currency = Str(currency)
		}
	}
}

// WithAgents sets the sender and receiver institution BICs
func WithAgents(senderBIC, receiverBIC string) Option {
	return func(b *Builder) {
		if senderBIC != "" {
			b.msg.SenderBIC = Str(senderBIC)
		}
		if receiverBIC != "" {
			b.msg.ReceiverBIC = Str(receiverBIC)
		}
	}
}

// WithDebtor sets the debtor name and account
func WithDebtor(name, account string) Option {
	return func(b *Builder) {
		if name != "" {
			b.msg.DebtorName = Str(name)
		}
		if account != "" {
			b.msg.DebtorAccount = Str(account)
		}
	}
}

// WithCreditor sets the creditor name and account
func WithCreditor(name, account string) Option {
	return func(b *Builder) {
		if name != "" {
			b.msg.CreditorName = Str(name)
		}
		if account != "" {
			b.msg.CreditorAccount = Str(account)
		}
	}
}

// WithUETR sets the unique end-to-end transaction reference
func WithUETR(uetr string) Option {
	return func(b *Builder) {
		b.msg.UETR = Str(uetr)
	}
}

// WithType sets the message family
func WithType(f Family) Option {
	return func(b *Builder) {
		b.msg.MessageType = f
	}
}

// WithCreatedAt sets the creation timestamp
func WithCreatedAt(t time.Time) Option {
	return func(b *Builder) {
		b.msg.CreatedAt = Time(t.UTC())
	}
}

// WithRemittance sets the unstructured remittance information
func WithRemittance(info string) Option {
	return func(b *Builder) {
		b.msg.Remittance = Str(info)
	}
}

// WithOriginalMessageID sets the referenced original message
// identifier carried by status and cancellation messages
func WithOriginalMessageID(id string) Option {
	return func(b *Builder) {
		b.msg.OriginalMessageID = Str(id)
	}
}

// WithCaseID sets the investigation case identifier
func WithCaseID(id string) Option {
	return func(b *Builder) {
		b.msg.CaseID = Str(id)
	}
}

// Build validates the configured message and returns it.
func (b *Builder) Build() (*PaymentMessage, error) {
	if b.msg.MessageID == "" {
		return nil, fmt.Errorf("message id is required")
	}
	if b.msg.Amount != nil {
		if _, err := decimal.NewFromString(*b.msg.Amount); err != nil {
			return nil, fmt.Errorf("amount %q is not a valid decimal: %w", *b.msg.Amount, err)
		}
	}
	if b.msg.Currency != nil && !validCurrency(*b.msg.Currency) {
		return nil, fmt.Errorf("currency %q must be three uppercase letters", *b.msg.Currency)
	}

	return b.msg, nil
}

func validCurrency(s string) bool {
	if len(s) != 3 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}
