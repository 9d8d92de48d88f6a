// Package proto owns the RouterOS API wire primitives.
//
// Ownership boundary:
// - word length-prefix codec
// - sentence framing and incremental stream decode
// - reply sentence parsing
//
// Everything here is a pure function over byte slices and word lists;
// nothing in this package touches a connection.
package proto
