// Copyright (c) 2025 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

/*
Package mt parses SWIFT FIN MT messages into the canonical model.

An MT message is a sequence of positional blocks:

	{1:F01BANKUS33AXXX0000000000}{2:I103RECVGB22XXXXN}{3:{121:...}}{4:
	:20:MSG12345
	:32A:231024USD1000,50
	-}

Block 1 carries the sender's logical terminal address, Block 2 the
message type and receiver, Block 3 optional service tags (tag 121 is
the unique end-to-end transaction reference), and Block 4 the ordered
business fields. Block 5 trailers are tolerated and ignored.

# Tokenizing

[SplitBlocks] locates the top-level blocks by literal brace matching.
Block contents are opaque at this level except for Block 3, whose
nested {tag:value} pairs are honored, and Block 4, which runs to its
"-}" terminator line. [Fields] then splits a Block 4 body into tagged
fields in first-occurrence order, folding continuation lines into the
preceding field.

# Mapping

[Parse] maps known tags onto canonical fields: :20: to the message
identifier, :21: to the end-to-end identifier, :23B: to the subtype,
:32A:/:32B: to currency and amount, :50K:/:50H: to the debtor, :58A:
and :59: to the creditor, :70: to remittance and :71A: to charges.
Unknown tags are preserved by [Fields] but do not populate the model.
MT amounts use a comma decimal separator; mapping substitutes a period
while preserving every digit. A malformed :32A: degrades to nil amount
and currency rather than failing the parse.

[ParseDetailed] additionally walks the :61:/:86: statement lines of
interim reports (MT942) and statements (MT950) into booking entries.

# Failure

Only structural damage is fatal: a Block 4 with no terminator or a
brace sequence that is not block grammar wraps [model.ErrMalformed],
as does a message with no :20: field. Every other absence yields a nil
canonical field.

# References

  - SWIFT FIN System Messages, block structure
  - SWIFT Category 1, 2 and 9 Message Reference Guides
*/
package mt
