package mongodb

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrNoDatabaseName is returned by Connect when Options.Database is empty.
	ErrNoDatabaseName = errors.New("no database name")

	// ErrNoCollectionName is returned when a collection name argument is empty.
	ErrNoCollectionName = errors.New("no collection name")

	// ErrNoDocument is returned by write operations given a nil document.
	ErrNoDocument = errors.New("no document")

	// ErrDatabaseClosed is returned by operations on a force-closed handle.
	ErrDatabaseClosed = errors.New("database handle closed")
)

// Functions to check for specific, known errors from the underlying driver.
// Errors are forwarded to the caller untouched; these helpers classify them
// after the fact.

// IsNotFound checks an error condition to see if it matches the underlying
// database "not found" error.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}

	return errors.Is(err, mongo.ErrNoDocuments)
}

// IsDuplicate checks to see if the specified error is for attempting to
// create a duplicate document.
func IsDuplicate(err error) bool {
	return hasWriteErrorCode(err, 11000)
}

// IsValidationFailure checks to see if the specified error is for a schema
// validation failure.
func IsValidationFailure(err error) bool {
	return hasWriteErrorCode(err, 121)
}

func hasWriteErrorCode(err error, code int) bool {
	if err == nil {
		return false
	}

	var e mongo.WriteException
	if errors.As(err, &e) {
		for _, we := range e.WriteErrors {
			if we.Code == code {
				return true
			}
		}
	}

	return false
}
