// Copyright (c) 2025 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

/*
Package translate renders canonical payment messages back into wire
bytes, in either direction: SWIFT FIN MT block text or ISO 20022 MX
documents.

Translation is a projection, not a copy: only fields the target format
can carry are emitted, and a nil optional field is omitted rather than
written empty. Where the target grammar mandates a value the model
lacks, a documented default takes its place: NONREF for a missing
sender or related reference, CRED for a missing MT103 bank operation
code, CLRG for the pacs.008 settlement method, and a freshly generated
UUID for the MT transaction reference in Block 3.

# Round-Trip Contract

For any field representable in both formats, parsing the translated
bytes reproduces the original field value exactly. Amounts switch
decimal separators between the period form of MX and the comma form of
MT with every digit preserved.

	m, _ := mt.Parse(raw)
	xml, _ := translate.New().ToMX(m, "pacs.008")

Unknown target identifiers wrap [model.ErrUnsupportedTarget].
*/
package translate
