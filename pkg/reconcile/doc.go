// Copyright (c) 2025 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

// Package reconcile links parsed payment messages into lifecycles.
//
// A payment rarely lives in one message: an initiation is followed by
// status reports, booking notifications, sometimes a recall and its
// resolution. Each of those arrives as a separate document, often in a
// different format, and carries one or more correlation keys back to
// the rest of the flow. TraceLifecycle stitches them together:
//
//	r := reconcile.New()
//	timeline := r.TraceLifecycle(seed, pool)
//	for _, m := range timeline {
//		fmt.Println(m.MessageID, m.MessageType)
//	}
//
// Correlation keys are consulted strongest first: the UETR, the
// end-to-end identification, an explicit reference to another
// message's identification, and finally a shared investigation case.
// The closure is transitive, so a resolution that only names its case
// still joins a lifecycle seeded from the original transfer.
//
// The reconciler reports observed relationships, not business-rule
// correctness: a duplicate initiation correlates like any other
// message and is included. Amount consistency is a separate question,
// answered by AmountsMatch.
package reconcile
