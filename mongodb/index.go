package mongodb

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Index describes a single index to ensure on a collection: an ordered list
// of keys with sort directions plus a uniqueness flag.
type Index struct {
	keys   bson.D
	unique bool
}

// NewIndex creates an index description over the given fields,
// all ascending. Use Desc to add descending keys.
func NewIndex(fields ...string) *Index {
	ix := &Index{}
	return ix.Asc(fields...)
}

// Asc appends ascending keys for the given fields.
func (ix *Index) Asc(fields ...string) *Index {
	for _, field := range fields {
		ix.keys = append(ix.keys, bson.E{Key: field, Value: 1})
	}
	return ix
}

// Desc appends descending keys for the given fields.
func (ix *Index) Desc(fields ...string) *Index {
	for _, field := range fields {
		ix.keys = append(ix.keys, bson.E{Key: field, Value: -1})
	}
	return ix
}

// Unique marks the index as unique.
func (ix *Index) Unique() *Index {
	ix.unique = true
	return ix
}

// Keys returns the ordered key document for the index.
func (ix *Index) Keys() bson.D {
	return ix.keys
}

// IsUnique returns the uniqueness flag.
func (ix *Index) IsUnique() bool {
	return ix.unique
}

// Model returns the driver index model for the description.
func (ix *Index) Model() mongo.IndexModel {
	unique := ix.unique
	return mongo.IndexModel{
		Keys:    ix.keys,
		Options: &options.IndexOptions{Unique: &unique},
	}
}

// ensureIndexes creates each index in order, returning the first error.
// Repeated creation of an existing index is a no-op on the server side.
func (db *Database) ensureIndexes(collection *Collection, indexes []*Index) error {
	for _, ix := range indexes {
		ctx, cancel := db.contextWithTimeout(db.opts.Timeouts.Index)
		_, err := collection.collection.Indexes().CreateOne(ctx, ix.Model())
		cancel()
		if err != nil {
			return fmt.Errorf("create index %v: %w", ix.keys, err)
		}

		db.opts.Logger.Info().
			Str("collection", collection.Name()).
			Msg("Created index")
	}

	return nil
}

// backgroundIndexes ensures indexes without a join point.
// Failures are not observable by the caller, only logged.
func (db *Database) backgroundIndexes(collection *Collection, indexes []*Index) {
	if err := db.ensureIndexes(collection, indexes); err != nil {
		db.opts.Logger.Debug().
			Err(err).
			Str("collection", collection.Name()).
			Msg("Background index build failed")
	}
}
