// Copyright (c) 2025 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

/*
Package compression provides GZIP handling for archived message feeds.

Financial message archives and bulk statement feeds are commonly
delivered GZIP-compressed. This package lets the parse entry points
accept such input transparently and lets callers compress outbound
translations.

# Detection

Sniff before parsing:

	if compression.IsGzip(data) {
	    data, err = compressor.Decompress(data)
	}

# Compression

	compressor := compression.NewCompressor()
	compressed, err := compressor.Compress(mxBytes)

Decompress received payloads:

	decompressed, err := compressor.Decompress(compressed)

# References

  - GZIP RFC 1952: https://datatracker.ietf.org/doc/html/rfc1952
*/
package compression
