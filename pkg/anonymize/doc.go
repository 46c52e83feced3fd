// Copyright (c) 2025 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

/*
Package anonymize scrubs personally identifying information from
payment messages while keeping them structurally and checksum valid,
for use in test and non-production environments.

Scrubbing operates on the raw wire bytes, not the canonical model, so
unmodeled structure survives untouched: only the text of recognized
PII nodes is substituted, and every byte outside them is preserved.
Names become deterministic salted aliases (CUST_3A94F2C1 and the
like), postal address components become fixed MASKED placeholders, and
IBAN account numbers are rebuilt with the same country code and
length, an all-digit body derived from the original, and freshly
computed Modulo-97 check digits, so the result still passes
validation. An account that is too short to be an IBAN degrades to an
opaque ACCT_ alias instead.

Aliasing is deterministic per salt: the same value always maps to the
same alias within a batch, preserving referential integrity across
related messages. Amounts, currencies, message identifiers and dates
are never business secrets and are never touched.

	a := anonymize.New(anonymize.WithSalt("batch-7"))
	clean, err := a.Anonymize(raw)
*/
package anonymize
