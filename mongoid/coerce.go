package mongoid

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// hexLength is the length of the hex form of an ObjectID.
const hexLength = 24

// IsHex returns true if s is exactly 24 hexadecimal characters.
// Case is ignored, matching the hex forms accepted by the server.
func IsHex(s string) bool {
	if len(s) != hexLength {
		return false
	}

	for i := 0; i < hexLength; i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}

	return true
}

// Coerce converts a 24-hex-character string into the primitive.ObjectID it
// represents. Any other value, including strings of other lengths, non-hex
// strings and non-string types, is returned unchanged.
func Coerce(value interface{}) interface{} {
	if s, ok := value.(string); ok && IsHex(s) {
		if oid, err := primitive.ObjectIDFromHex(s); err == nil {
			return oid
		}
	}

	return value
}
