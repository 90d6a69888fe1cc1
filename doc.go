// Package mcc decodes MCC ("MacCaption") closed-caption files.
//
// An MCC file is line-oriented text: a fixed header block followed by caption
// lines, each tagged with a timecode and carrying a compact textual encoding
// of raw CEA-608/708 caption packets.
//
// # File Format Overview
//
// The header consists of six fields in a fixed order:
//
//	File Format=MCC V1.0
//	// comment and blank lines may appear here
//	UUID=...
//	Creation Program=...
//	Creation Date=...
//	Creation Time=...
//	Time Code Rate=30DF
//
// Each caption line is a timecode, a tab, and a payload:
//
//	00:00:01:15	T52S0100FAG...
//
// The payload mixes hex byte pairs with escape letters. G through O expand
// to one through nine copies of FA 00 00; P, Q and R expand to FB 80 80,
// FC 80 80 and FD 80 80; S to 96 69; T to 61 01; U to E1 00 00 00; and Z to a
// single 00. The decoder only expands tokens and does not interpret the
// resulting caption bytes.
//
// # Basic Usage
//
//	doc, err := mcc.Load("captions.mcc")
//	if err != nil {
//		return err
//	}
//	fmt.Println(doc.Header.TimeCodeFormat, doc.Header.UUID)
//	for _, l := range doc.Lines {
//		fmt.Println(l.TimeCode, l.Hex())
//	}
//
// Parse decodes text already in memory and Decode reads from an io.Reader.
// Decode and Load transparently expand gzip, Zstandard, LZ4 and single-entry
// ZIP inputs, and convert UTF-16 or BOM-prefixed UTF-8 text.
//
// # Errors
//
// Decoding is all or nothing. Grammar violations are returned as
// *ParseError, which carries the line and column where decoding stopped and
// matches ErrParse with errors.Is. Read failures wrap ErrIO. Resource limits
// (see [Limits]) guard against oversized and decompression-bomb inputs.
package mcc
