// Copyright (c) 2025 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

// Package finmsg is the front door of the financial message engine.
//
// A Processor bundles format detection, the MX and MT parsing
// engines, validation, translation, anonymization and lifecycle
// reconciliation behind one configured instance:
//
//	p := finmsg.New(
//		finmsg.WithLogger(logger),
//		finmsg.WithSalt("batch-7"),
//	)
//
//	msg, err := p.Parse(raw)
//	if err != nil {
//		// model.ErrUnknownFormat or model.ErrMalformed
//	}
//	if rep := p.Validate(msg); !rep.Valid {
//		for _, e := range rep.Errors {
//			log.Println(e)
//		}
//	}
//	mt103, err := p.ToMT(msg, "103")
//
// Parse accepts ISO 20022 XML, SWIFT MT block text, and either of
// them gzip-compressed; archived statement feeds usually arrive that
// way. The wire format is detected from the leading bytes, never
// declared by the caller.
//
// For quick one-off work the package-level Parse and ParseDetailed
// use a shared default processor.
//
// A Processor carries configuration only, no per-call state, so one
// instance may be shared freely across goroutines.
package finmsg
