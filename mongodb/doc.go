// Package mongodb provides a reduced, opinionated surface over the official
// Mongo driver for use by data-access layers that only need the basics.
//
// Connect() resolves defaults (localhost:27017), forces acknowledged writes,
// opens and pings the connection and returns a Database handle. The handle
// produces Collection objects by name, optionally ensuring a set of indexes
// on acquisition. Collections expose Find, FindOne, Save, Update, Delete and
// Count, each a thin delegation to the driver after light normalization:
// a top-level _id holding a 24-hex-character string is converted to the
// native ObjectID type before it is sent to the server.
//
// Index builds requested through Database.Collection() are best-effort by
// default: the handle is returned immediately and build failures are not
// observable through this interface. Set Options.AwaitIndexes to wait for
// the builds and surface their errors instead.
//
// Driver errors are wrapped with call context but never reclassified; the
// IsNotFound, IsDuplicate and IsValidationFailure helpers recognize the
// common cases.
//
// The DatabaseTestSuite struct wraps database connect/disconnect for tests
// that hit a live server. Those tests build only with 'go test -tags
// database'; without the tag only unit tests run.
package mongodb
