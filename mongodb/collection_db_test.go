//go:build database

package mongodb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type collectionTestSuite struct {
	DatabaseTestSuite
	collection *Collection
	ctx        context.Context
}

func TestCollectionSuite(t *testing.T) {
	suite.Run(t, new(collectionTestSuite))
}

func (s *collectionTestSuite) SetupTest() {
	s.collection = s.Collection(testCollectionName)
	s.ctx = s.DB().Context()
}

func (s *collectionTestSuite) TestSaveGeneratesID() {
	result, err := s.collection.Save(s.ctx, Document{"name": "pvorb"})
	s.Require().NoError(err)
	s.Require().NotNil(result)
	s.True(result.Inserted)
	s.Require().NotNil(result.Document)

	oid, ok := result.Document["_id"].(primitive.ObjectID)
	s.Require().True(ok, "generated _id is an ObjectID")
	s.Equal("pvorb", result.Document["name"])

	// Round trip through the hex form of the generated identifier.
	found, err := s.collection.FindOne(s.ctx, Document{"_id": oid.Hex()}, nil)
	s.Require().NoError(err)
	s.Require().NotNil(found)
	s.Equal("pvorb", found["name"])

	docs, err := s.collection.Find(s.ctx, Document{"name": "pvorb"}, nil)
	s.Require().NoError(err)
	s.Require().Len(docs, 1)
	s.Equal(oid, docs[0]["_id"])
}

func (s *collectionTestSuite) TestSaveOverwrite() {
	first, err := s.collection.Save(s.ctx, testDoc("one", 1))
	s.Require().NoError(err)
	id := first.Document["_id"].(primitive.ObjectID)

	second, err := s.collection.Save(s.ctx, Document{"_id": id.Hex(), "alpha": "two"})
	s.Require().NoError(err)
	s.False(second.Inserted)
	s.Equal(int64(1), second.Matched)
	s.Equal(int64(1), second.Modified)

	// Full overwrite: bravo from the first save must be gone.
	found, err := s.collection.FindOne(s.ctx, Document{"_id": id}, nil)
	s.Require().NoError(err)
	s.Require().NotNil(found)
	s.Equal("two", found["alpha"])
	s.NotContains(found, "bravo")

	count, err := s.collection.Count(s.ctx, nil)
	s.Require().NoError(err)
	s.Equal(int64(1), count)
}

func (s *collectionTestSuite) TestSaveUpsertByHexID() {
	id := primitive.NewObjectID()
	result, err := s.collection.Save(s.ctx, Document{"_id": id.Hex(), "alpha": "fresh"})
	s.Require().NoError(err)
	s.True(result.Inserted, "no match for the identifier, save inserts")

	// The stored identifier is the native type, not the hex string.
	found, err := s.collection.FindOne(s.ctx, Document{"_id": id}, nil)
	s.Require().NoError(err)
	s.Require().NotNil(found)
	s.Equal(id, found["_id"])
}

func (s *collectionTestSuite) TestFindOneNoMatch() {
	found, err := s.collection.FindOne(s.ctx, Document{"alpha": "missing"}, nil)
	s.NoError(err)
	s.Nil(found)
}

func (s *collectionTestSuite) TestFindSortLimitProjection() {
	for i, alpha := range []string{"charlie", "alpha", "bravo"} {
		_, err := s.collection.Save(s.ctx, testDoc(alpha, i))
		s.Require().NoError(err)
	}

	docs, err := s.collection.Find(s.ctx, nil, &FindOptions{
		Sort:   bson.D{{Key: "alpha", Value: 1}},
		Limit:  2,
		Fields: []string{"alpha"},
	})
	s.Require().NoError(err)
	s.Require().Len(docs, 2)
	s.Equal("alpha", docs[0]["alpha"])
	s.Equal("bravo", docs[1]["alpha"])
	s.NotContains(docs[0], "bravo", "projected out")

	skipped, err := s.collection.Find(s.ctx, nil, &FindOptions{
		Sort: bson.D{{Key: "alpha", Value: 1}},
		Skip: 2,
	})
	s.Require().NoError(err)
	s.Require().Len(skipped, 1)
	s.Equal("charlie", skipped[0]["alpha"])
}

func (s *collectionTestSuite) TestFindEmpty() {
	docs, err := s.collection.Find(s.ctx, Document{"alpha": "missing"}, nil)
	s.NoError(err)
	s.NotNil(docs)
	s.Len(docs, 0)
}

func (s *collectionTestSuite) TestUpdateReplacesWholeDocument() {
	saved, err := s.collection.Save(s.ctx, Document{"alpha": "one", "bravo": 1, "charlie": "keep?"})
	s.Require().NoError(err)
	id := saved.Document["_id"].(primitive.ObjectID)

	result, err := s.collection.Update(s.ctx,
		Document{"alpha": "one"},
		Document{"alpha": "one", "delta": true})
	s.Require().NoError(err)
	s.Equal(int64(1), result.Matched)
	s.Equal(int64(1), result.Modified)

	found, err := s.collection.FindOne(s.ctx, Document{"_id": id.Hex()}, nil)
	s.Require().NoError(err)
	s.Require().NotNil(found)
	s.Equal(true, found["delta"])
	s.NotContains(found, "bravo")
	s.NotContains(found, "charlie")
}

func (s *collectionTestSuite) TestUpdateNoMatch() {
	result, err := s.collection.Update(s.ctx,
		Document{"alpha": "missing"}, Document{"alpha": "missing"})
	s.Require().NoError(err)
	s.Equal(int64(0), result.Matched)
	s.Equal(int64(0), result.Modified)
}

func (s *collectionTestSuite) TestDeleteThenCount() {
	for i := 0; i < 3; i++ {
		_, err := s.collection.Save(s.ctx, testDoc("doomed", i))
		s.Require().NoError(err)
	}
	_, err := s.collection.Save(s.ctx, testDoc("spared", 17))
	s.Require().NoError(err)

	deleted, err := s.collection.Delete(s.ctx, Document{"alpha": "doomed"})
	s.Require().NoError(err)
	s.Equal(int64(3), deleted)

	count, err := s.collection.Count(s.ctx, Document{"alpha": "doomed"})
	s.Require().NoError(err)
	s.Equal(int64(0), count)

	total, err := s.collection.Count(s.ctx, nil)
	s.Require().NoError(err)
	s.Equal(int64(1), total)
}

func (s *collectionTestSuite) TestDeleteByHexID() {
	saved, err := s.collection.Save(s.ctx, testDoc("target", 1))
	s.Require().NoError(err)
	id := saved.Document["_id"].(primitive.ObjectID)

	deleted, err := s.collection.Delete(s.ctx, Document{"_id": id.Hex()})
	s.Require().NoError(err)
	s.Equal(int64(1), deleted)
}

func (s *collectionTestSuite) TestDrop() {
	_, err := s.collection.Save(s.ctx, testDoc("gone", 1))
	s.Require().NoError(err)
	s.Require().NoError(s.collection.Drop(s.ctx))

	count, err := s.collection.Count(s.ctx, nil)
	s.Require().NoError(err)
	s.Equal(int64(0), count)
}
