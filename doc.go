// Copyright (c) 2025 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

/*
Package gofinmsg implements dual-format financial message processing:
parsing, validation, translation, anonymization and reconciliation for
ISO 20022 (MX) and SWIFT MT payment messages.

# Overview

go-finmsg normalizes both wire formats into one canonical payment
model. Raw bytes go in, their format is detected from leading bytes,
and the matching engine lifts identifiers, amounts, agents and parties
into a uniform structure. From there the same message can be
validated, rendered in the other format, anonymized for archiving, or
linked to the rest of its payment lifecycle.

# Formats Handled

This library processes the following message families:

  - ISO 20022 Payments Clearing and Settlement: pacs.008
  - ISO 20022 Payments Initiation: pain.001, pain.002
  - ISO 20022 Cash Management: camt.052, camt.053, camt.054, camt.056, camt.029
  - ISO 20022 Business Application Header: head.001
  - SWIFT MT Category 1 and 2: MT101, MT103, MT202
  - SWIFT MT Category 9: MT942, MT950

ISO 20022 message definitions: https://www.iso20022.org/iso-20022-message-definitions

# Package Structure

The library is organized into the following packages:

	github.com/sirosfoundation/go-finmsg/pkg/finmsg      - Main processor API
	github.com/sirosfoundation/go-finmsg/pkg/model       - Canonical payment model and builder
	github.com/sirosfoundation/go-finmsg/pkg/detect      - Wire format detection
	github.com/sirosfoundation/go-finmsg/pkg/mx          - ISO 20022 XML engine
	github.com/sirosfoundation/go-finmsg/pkg/mt          - SWIFT MT block/tag engine
	github.com/sirosfoundation/go-finmsg/pkg/bah         - Business Application Header
	github.com/sirosfoundation/go-finmsg/pkg/translate   - Cross-format translation
	github.com/sirosfoundation/go-finmsg/pkg/validate    - Structural and field validation
	github.com/sirosfoundation/go-finmsg/pkg/anonymize   - PII masking with format preservation
	github.com/sirosfoundation/go-finmsg/pkg/reconcile   - Payment lifecycle linking
	github.com/sirosfoundation/go-finmsg/pkg/profile     - Message family profiles
	github.com/sirosfoundation/go-finmsg/pkg/compression - GZIP input handling

# Quick Start

To parse and translate a message:

	import (
	    "github.com/sirosfoundation/go-finmsg/pkg/finmsg"
	)

	// Create a processor
	p := finmsg.New()

	// Parse raw bytes; MX, MT and gzip input are detected automatically
	msg, err := p.Parse(raw)
	if err != nil {
	    // model.ErrUnknownFormat or model.ErrMalformed
	}

	// Validate
	if rep := p.Validate(msg); !rep.Valid {
	    for _, finding := range rep.Errors {
	        log.Println(finding)
	    }
	}

	// Render in the other format
	mt103, err := p.ToMT(msg, "103")
	pacs008, err := p.ToMX(msg, "pacs.008")

# Validation Model

Validation never panics and never stops at the first problem:

  - Structural validation checks raw bytes against the block or
    element grammar of their detected format
  - Field validation checks BIC shape and country, IBAN Modulo-97
    checksums, UETR syntax, amount and currency formats
  - Both return a Report listing every violation found in one pass;
    absent optional fields are never violations

# Anonymization

The anonymizer masks customer names, postal addresses and account
identifiers in place, preserving message structure:

  - Replacement IBANs keep country and length and carry valid check
    digits, so masked output still parses and validates
  - Aliases are salted digests: the same name maps to the same alias
    across a batch, keeping lifecycles reconcilable after masking
  - Amounts, references and agent BICs are left untouched

# Lifecycle Reconciliation

Related messages are linked by shared correlation keys (UETR,
end-to-end identification, original-message references, investigation
case) into a chronologically ordered lifecycle: initiation, statuses,
bookings, recalls and resolutions.

# License

BSD-2-Clause License
*/
package gofinmsg
