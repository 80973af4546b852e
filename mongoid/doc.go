// Package mongoid provides helpers for working with Mongo ObjectID values.
//
// The Coerce function converts a 24-character hexadecimal string into a
// primitive.ObjectID and leaves every other value alone. It is applied by the
// mongodb package to the _id field of filters and documents so that callers
// may use plain hex strings as identifiers.
//
// The Identity struct may be embedded in typed documents to carry the Mongo
// _id field and derive an identity filter from it.
package mongoid
