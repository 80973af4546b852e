package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/easydb/go-mongodb/mongoid"
)

// Document is an arbitrary structured record.
type Document = bson.M

// FindOptions carries the optional parameters of the read operations.
// The zero value (or a nil pointer) means full documents, natural order,
// no paging.
type FindOptions struct {
	// Fields limits the returned documents to the named fields.
	Fields []string

	// Sort order for the result set.
	Sort bson.D

	// Skip the first n matching documents.
	Skip int64

	// Limit the number of returned documents; zero means no limit.
	Limit int64
}

// SaveResult reports the outcome of a Save. Exactly one of the two shapes is
// populated: Document with the saved record (including its generated _id)
// when the save inserted, or the match/modify counts when it overwrote an
// existing record. The asymmetry mirrors the underlying store.
type SaveResult struct {
	Inserted bool
	Document Document
	Matched  int64
	Modified int64
}

// UpdateResult reports how many documents an Update matched and modified.
type UpdateResult struct {
	Matched  int64
	Modified int64
}

// Collection wraps a named collection of an open Database.
// It holds no state of its own; handles are safe for concurrent use to the
// same degree as the underlying driver.
type Collection struct {
	db         *Database
	collection *mongo.Collection
}

// Name returns the collection name.
func (c *Collection) Name() string {
	return c.collection.Name()
}

// Mongo returns the underlying driver collection.
func (c *Collection) Mongo() *mongo.Collection {
	return c.collection
}

// Find executes a filtered read and materializes the full matching result
// set in order. A nil filter matches every document.
func (c *Collection) Find(ctx context.Context, filter Document, opts *FindOptions) ([]Document, error) {
	if err := c.db.check(); err != nil {
		return nil, err
	}

	cursor, err := c.collection.Find(ctx, normalizeID(filter), opts.find())
	if err != nil {
		return nil, fmt.Errorf("find documents: %w", err)
	}

	results := make([]Document, 0)
	if err = cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("read documents: %w", err)
	}

	return results, nil
}

// FindOne returns at most one matching document.
// No match yields (nil, nil) rather than an error.
func (c *Collection) FindOne(ctx context.Context, filter Document, opts *FindOptions) (Document, error) {
	if err := c.db.check(); err != nil {
		return nil, err
	}

	var result Document
	err := c.collection.FindOne(ctx, normalizeID(filter), opts.findOne()).Decode(&result)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find document: %w", err)
	}

	return result, nil
}

// Save performs an upsert by identity. A document without an _id is inserted
// and returned with its generated identifier. A document with an _id fully
// overwrites the record carrying that identifier, or is inserted if none
// exists. See SaveResult for the two result shapes.
func (c *Collection) Save(ctx context.Context, doc Document) (*SaveResult, error) {
	if doc == nil {
		return nil, ErrNoDocument
	}
	if err := c.db.check(); err != nil {
		return nil, err
	}

	doc = normalizeID(doc)

	id, hasID := doc["_id"]
	if !hasID || id == nil {
		result, err := c.collection.InsertOne(ctx, doc)
		if err != nil {
			return nil, fmt.Errorf("insert document: %w", err)
		}

		saved := make(Document, len(doc)+1)
		for k, v := range doc {
			saved[k] = v
		}
		saved["_id"] = result.InsertedID

		return &SaveResult{Inserted: true, Document: saved}, nil
	}

	result, err := c.collection.ReplaceOne(
		ctx, bson.M{"_id": id}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return nil, fmt.Errorf("save document: %w", err)
	}

	if result.UpsertedCount > 0 {
		return &SaveResult{Inserted: true, Document: doc}, nil
	}

	return &SaveResult{Matched: result.MatchedCount, Modified: result.ModifiedCount}, nil
}

// Update replaces one document matching filter with doc in full.
// This is not a partial merge: fields present in the old document but absent
// from doc do not survive. If the filter matches more than one document the
// server chooses which one to replace.
func (c *Collection) Update(ctx context.Context, filter, doc Document) (*UpdateResult, error) {
	if doc == nil {
		return nil, ErrNoDocument
	}
	if err := c.db.check(); err != nil {
		return nil, err
	}

	result, err := c.collection.ReplaceOne(ctx, normalizeID(filter), normalizeID(doc))
	if err != nil {
		return nil, fmt.Errorf("update document: %w", err)
	}

	return &UpdateResult{Matched: result.MatchedCount, Modified: result.ModifiedCount}, nil
}

// Delete removes every document matching filter and returns how many were
// removed. A nil filter removes everything.
func (c *Collection) Delete(ctx context.Context, filter Document) (int64, error) {
	if err := c.db.check(); err != nil {
		return 0, err
	}

	result, err := c.collection.DeleteMany(ctx, normalizeID(filter))
	if err != nil {
		return 0, fmt.Errorf("delete documents: %w", err)
	}

	return result.DeletedCount, nil
}

// Count returns the number of documents matching filter.
// A nil filter counts the whole collection.
func (c *Collection) Count(ctx context.Context, filter Document) (int64, error) {
	if err := c.db.check(); err != nil {
		return 0, err
	}

	count, err := c.collection.CountDocuments(ctx, normalizeID(filter))
	if err != nil {
		return 0, fmt.Errorf("count documents: %w", err)
	}

	return count, nil
}

// Drop the collection.
func (c *Collection) Drop(ctx context.Context) error {
	if err := c.db.check(); err != nil {
		return err
	}

	if err := c.collection.Drop(ctx); err != nil {
		return fmt.Errorf("drop collection: %w", err)
	}

	return nil
}

// normalizeID returns doc with a coercible _id replaced by its ObjectID
// form. The input map is never mutated; a nil doc becomes an empty filter.
func normalizeID(doc Document) Document {
	if doc == nil {
		return Document{}
	}

	id, ok := doc["_id"].(string)
	if !ok || !mongoid.IsHex(id) {
		return doc
	}

	normalized := make(Document, len(doc))
	for k, v := range doc {
		normalized[k] = v
	}
	normalized["_id"] = mongoid.Coerce(id)

	return normalized
}

func (o *FindOptions) find() *options.FindOptions {
	fo := options.Find()
	if o == nil {
		return fo
	}

	if len(o.Fields) > 0 {
		fo.SetProjection(o.projection())
	}
	if o.Sort != nil {
		fo.SetSort(o.Sort)
	}
	if o.Skip > 0 {
		fo.SetSkip(o.Skip)
	}
	if o.Limit > 0 {
		fo.SetLimit(o.Limit)
	}

	return fo
}

func (o *FindOptions) findOne() *options.FindOneOptions {
	fo := options.FindOne()
	if o == nil {
		return fo
	}

	if len(o.Fields) > 0 {
		fo.SetProjection(o.projection())
	}
	if o.Sort != nil {
		fo.SetSort(o.Sort)
	}
	if o.Skip > 0 {
		fo.SetSkip(o.Skip)
	}

	return fo
}

func (o *FindOptions) projection() bson.D {
	projection := make(bson.D, 0, len(o.Fields))
	for _, field := range o.Fields {
		projection = append(projection, bson.E{Key: field, Value: 1})
	}
	return projection
}
