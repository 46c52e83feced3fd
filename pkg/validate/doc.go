// Copyright (c) 2025 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

/*
Package validate checks financial messages for structural and logical
correctness.

Validation never fails fast: every check runs and every violation
lands in one [Report], so a caller sees the full state of a message
from a single pass. Go errors are reserved for the parsing layer;
content problems are report entries.

# Structural Validation

[StructuralValidator] works on raw bytes before extraction. XML input
must be well formed; when a structural profile is registered for the
detected family, its required elements must be present, and an
unregistered family degrades to the well-formedness check alone. MT
input is checked for mandatory blocks, tag line shape, the Block 4
terminator, header address format and the date/currency/amount
composition of field 32A.

	v := validate.NewStructural()
	report := v.ValidateSchema(raw)
	if !report.Valid {
	    for _, e := range report.Errors {
	        fmt.Println(e)
	    }
	}

# Logical Validation

[LogicalValidator] works on a parsed message: BIC shape and country
code, IBAN Modulo-97 checksums, UETR syntax, amount and currency
format. Account values that do not look like IBANs are skipped, since
proprietary domestic schemes are legal.

# Checksum Helpers

[ValidIBAN] and [ComputeIBANCheckDigits] expose the Modulo-97
machinery for components that rebuild account numbers.

# References

  - ISO 13616 (IBAN): https://www.iso.org/standard/81090.html
  - ISO 9362 (BIC): https://www.iso9362.org/isobic/overview.html
  - SWIFT FIN block structure: https://www.paiementor.com/swift-mt-message-structure-blocks-1-to-5/
*/
package validate
