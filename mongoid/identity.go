package mongoid

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Identifier provides an interface to items identified by a Mongo ObjectID.
type Identifier interface {
	ID() primitive.ObjectID
	Filter() bson.D
}

// Identity instantiates the Identifier interface.
// Embed it in a document struct to pick up the _id field.
type Identity struct {
	OID primitive.ObjectID `bson:"_id,omitempty"`
}

// ID returns the primitive Mongo ObjectID for an item.
func (id *Identity) ID() primitive.ObjectID {
	return id.OID
}

// Filter returns a Mongo filter object for the item's ID.
func (id *Identity) Filter() bson.D {
	return bson.D{{Key: "_id", Value: id.OID}}
}
