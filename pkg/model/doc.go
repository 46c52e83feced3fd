// Copyright (c) 2025 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

/*
Package model defines the canonical in-memory representation shared by
every wire format the library understands.

A PaymentMessage carries the fields common to ISO 20022 (MX) documents
and SWIFT MT block messages. Parsers construct it, and the translator,
validators, anonymizer and reconciler consume it without mutating it.

# Null Handling

Optional fields are pointers: a nil pointer means the field was absent
from the source document, which is distinct from a field that was
present but empty. The Str and Deref helpers keep call sites readable:

	m := &model.PaymentMessage{
	    MessageID: "MSG-1",
	    Amount:    model.Str("100.00"),
	    Currency:  model.Str("EUR"),
	}
	fmt.Println(model.Deref(m.Currency)) // "EUR"

Amounts are exact decimal strings with a period separator. They are
never represented as binary floating point anywhere in the library.

# Building Messages

Messages produced in code rather than parsed from bytes use the
functional-options builder:

	m, err := model.New(
	    model.WithMessageID("MSG-1"),
	    model.WithAmount("100.00", "EUR"),
	    model.WithDebtor("ACME GMBH", "DE89370400440532013000"),
	).Build()

Build validates the invariants a parser would enforce: the message ID
is required, amounts must parse as decimals, currencies are three
uppercase letters.

# Detailed Messages

Statement and notification documents (camt.05x, MT942, MT950) carry
booking lines. DetailedModel embeds PaymentMessage and adds the
ordered Entry sequence; entry order always follows source document
order.
*/
package model
