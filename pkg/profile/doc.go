// Copyright (c) 2025 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

/*
Package profile provides structural profile configuration for message
validation.

A profile names the elements a message family must carry to be
structurally complete. The registry resolves a detected family to its
profile; families without a registered profile degrade to a
well-formedness check only, so unknown schema versions never hard-fail.

Profiles apply to the XML-based families. The block grammar of the
legacy tag-based formats is fixed and checked directly by the
validator.

# Registry

The default registry covers the common payment, initiation, status and
cash-management families:

	reg := profile.DefaultRegistry()
	p := reg.Find(model.FamilyPacs008)
	// p.RequiredElements == ["GrpHdr", "MsgId", "CdtTrfTxInf"]

Custom profiles replace same-family defaults:

	reg.Register(&profile.Profile{
	    Family:           model.FamilyPacs008,
	    RequiredElements: []string{"GrpHdr", "MsgId", "CdtTrfTxInf", "SttlmInf"},
	})

# YAML Documents

Deployments that tune required elements per counterparty ship profiles
as YAML; the caller owns file I/O and hands the bytes over:

	families:
	  - family: pacs.008
	    required: [GrpHdr, MsgId, CdtTrfTxInf, SttlmInf]
	    description: strict clearing profile
	  - family: pain.001
	    required: [GrpHdr, MsgId, PmtInf]

See [LoadRegistry] for the merge semantics.

# References

  - ISO 20022 Message Definitions: https://www.iso20022.org/iso-20022-message-definitions
*/
package profile
