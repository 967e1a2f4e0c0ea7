// Package strictjson is a validating JSON decoding engine that tracks, for
// every position in the input document, whether that position was actually
// consulted while decoding. From this it derives two orthogonal reports:
// errors (decoding could not produce a value) and warnings (decoding
// succeeded but part of the input was never inspected).
//
// Decoders are pure values built from primitives (String, Int, Bool, ...)
// and combinators (Field, List, OneOf, Map2, AndThen, ...). Running one via
// DecodeBytes yields a four-way Result: invalid input, decode errors,
// success with warnings, or plain success. Strict promotes warnings to
// errors; Strip computes the smallest document that still decodes to the
// same result.
package strictjson
