package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
)

// TypedCollection layers decoding into a concrete document type over a
// Collection handle.
type TypedCollection[T any] struct {
	*Collection
}

// NewTypedCollection wraps an existing collection handle.
func NewTypedCollection[T any](collection *Collection) *TypedCollection[T] {
	return &TypedCollection[T]{Collection: collection}
}

// FindOne returns at most one matching item decoded into T.
// No match yields (nil, nil).
func (c *TypedCollection[T]) FindOne(ctx context.Context, filter Document, opts *FindOptions) (*T, error) {
	if err := c.db.check(); err != nil {
		return nil, err
	}

	item := new(T)
	err := c.collection.FindOne(ctx, normalizeID(filter), opts.findOne()).Decode(item)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find item '%v': %w", filter, err)
	}

	return item, nil
}

// Find materializes all matching items decoded into T.
func (c *TypedCollection[T]) Find(ctx context.Context, filter Document, opts *FindOptions) ([]*T, error) {
	results := make([]*T, 0)
	err := c.Iterate(ctx, filter, func(item *T) error {
		results = append(results, item)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return results, nil
}

// Iterate over the matching items, applying the specified function to each.
func (c *TypedCollection[T]) Iterate(ctx context.Context, filter Document, fn func(item *T) error) error {
	if err := c.db.check(); err != nil {
		return err
	}

	cursor, err := c.collection.Find(ctx, normalizeID(filter))
	if err != nil {
		return fmt.Errorf("find items: %w", err)
	}

	for cursor.Next(ctx) {
		item := new(T)
		if err := cursor.Decode(item); err != nil {
			return fmt.Errorf("decode item: %w", err)
		} else if err := fn(item); err != nil {
			return fmt.Errorf("apply function: %w", err)
		}
	}

	return cursor.Err()
}

// Save converts the item into a document and saves it by identity,
// with the same semantics as Collection.Save.
func (c *TypedCollection[T]) Save(ctx context.Context, item *T) (*SaveResult, error) {
	raw, err := bson.Marshal(item)
	if err != nil {
		return nil, fmt.Errorf("marshal item: %w", err)
	}

	var doc Document
	if err = bson.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal item: %w", err)
	}

	return c.Collection.Save(ctx, doc)
}
