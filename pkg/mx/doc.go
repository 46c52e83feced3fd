// Copyright (c) 2025 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

/*
Package mx parses ISO 20022 (MX) XML documents into the canonical
model.

# Family Detection

The message family is read from the Document's namespace declaration
first (any namespace URI containing "pacs.008", "camt.053" and so on),
then from the Document's first child local name (FIToFICstmrCdtTrf,
BkToCstmrStmt, ...), and finally from an enclosing application
header's MsgDefIdr. An unrecognized family still parses: a generic
extraction pass lifts the common identifiers, and the family is
reported as unknown.

# Namespace Handling

Element matching is namespace-agnostic by design. ISO 20022 version
bumps change the namespace URI but not the element names; matching on
local names keeps every minor version of a family readable without a
schema registry. [FindFirst] and [FindText] walk descendants in
document order, so a path like ("GrpHdr", "MsgId") skips intermediate
levels.

# Envelopes

A BusMsg envelope or a bare AppHdr root is unwrapped via [bah.Parse].
The enclosed Document wins every field it carries; the header supplies
sender, receiver, message identifier and creation time only as
fallbacks.

# Streaming

[ForEachTransaction] reads batch files with encoding/xml token
streaming instead of a DOM, visiting each CdtTrfTxInf or Ntry in
constant memory. Use it for bulk pain.001/pacs.008 submissions and
large camt statements.
*/
package mx
