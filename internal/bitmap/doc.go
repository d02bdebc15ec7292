// Package bitmap implements the bit-difference codec: the pure,
// stateless functions that compute, encode, apply, and merge XOR
// differences between fixed-width bitmaps (spec.md §4.1).
//
// A Bitmap is an opaque sequence of exactly Config.Width bytes; a Delta
// is the encoded difference between a Bitmap and some reference Bitmap,
// held either as a sparse ascending list of differing bit positions or
// as a dense verbatim copy of the bitmap it decodes to.
package bitmap
