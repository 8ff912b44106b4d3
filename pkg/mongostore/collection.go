package mongostore

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ghuser/gardenhub/pkg/kernel"
)

// Collection stores whole documents of type T keyed by a string _id.
// Documents are replaced on save, never patched.
type Collection[T any] struct {
	coll *mongo.Collection
}

// NewCollection binds T to the named collection of db.
func NewCollection[T any](db *mongo.Database, name string) *Collection[T] {
	return &Collection[T]{coll: db.Collection(name)}
}

// FindByID returns (nil, nil) when no document has the id.
func (c *Collection[T]) FindByID(ctx context.Context, id string) (*T, error) {
	var doc T
	err := c.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: find %s: %w", c.coll.Name(), id, err)
	}
	return &doc, nil
}

// FindByCriteria returns one page of documents matching criteria together with
// the total number of matches.
func (c *Collection[T]) FindByCriteria(ctx context.Context, criteria kernel.Criteria) (kernel.PaginatedResult[T], error) {
	criteria, err := criteria.Normalize()
	if err != nil {
		return kernel.PaginatedResult[T]{}, err
	}
	filter, err := BuildFilter(criteria.Filters)
	if err != nil {
		return kernel.PaginatedResult[T]{}, err
	}

	total, err := c.coll.CountDocuments(ctx, filter)
	if err != nil {
		return kernel.PaginatedResult[T]{}, fmt.Errorf("%s: count: %w", c.coll.Name(), err)
	}

	opts := options.Find().
		SetSkip(int64(criteria.Pagination.Offset())).
		SetLimit(int64(criteria.Pagination.PerPage))
	if sort := BuildSort(criteria.Sorts); len(sort) > 0 {
		opts.SetSort(sort)
	}

	cur, err := c.coll.Find(ctx, filter, opts)
	if err != nil {
		return kernel.PaginatedResult[T]{}, fmt.Errorf("%s: find: %w", c.coll.Name(), err)
	}
	var items []T
	if err := cur.All(ctx, &items); err != nil {
		return kernel.PaginatedResult[T]{}, fmt.Errorf("%s: decode: %w", c.coll.Name(), err)
	}
	return kernel.NewPaginatedResult(items, int(total), criteria.Pagination), nil
}

// Count returns the number of documents matching filters.
func (c *Collection[T]) Count(ctx context.Context, filters ...kernel.Filter) (int, error) {
	filter, err := BuildFilter(filters)
	if err != nil {
		return 0, err
	}
	n, err := c.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("%s: count: %w", c.coll.Name(), err)
	}
	return int(n), nil
}

// Save upserts doc under id.
func (c *Collection[T]) Save(ctx context.Context, id string, doc T) error {
	_, err := c.coll.ReplaceOne(ctx, bson.D{{Key: "_id", Value: id}}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("%s: save %s: %w", c.coll.Name(), id, err)
	}
	return nil
}

// Delete removes the document. Deleting a missing id is not an error.
func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	if _, err := c.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}}); err != nil {
		return fmt.Errorf("%s: delete %s: %w", c.coll.Name(), id, err)
	}
	return nil
}
