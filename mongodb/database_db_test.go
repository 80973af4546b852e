//go:build database

package mongodb

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type databaseTestSuite struct {
	DatabaseTestSuite
}

func TestDatabaseSuite(t *testing.T) {
	suite.Run(t, new(databaseTestSuite))
}

func (s *databaseTestSuite) TestPing() {
	s.NoError(s.DB().Ping())
}

func (s *databaseTestSuite) TestName() {
	s.Equal(TestDatabaseName, s.DB().Name())
}

func (s *databaseTestSuite) TestCollectionRequiresName() {
	collection, err := s.DB().Collection("")
	s.Nil(collection)
	s.ErrorIs(err, ErrNoCollectionName)
}

func (s *databaseTestSuite) TestCollectionExists() {
	collection := s.Collection("test-collection-exists")
	_, err := collection.Save(s.DB().Context(), testDoc("alpha", 1))
	s.Require().NoError(err)

	exists, err := s.DB().CollectionExists("test-collection-exists")
	s.NoError(err)
	s.True(exists)

	exists, err = s.DB().CollectionExists("no-such-collection")
	s.NoError(err)
	s.False(exists)
}

func (s *databaseTestSuite) TestCreateCollectionValidator() {
	collection, err := s.DB().CreateCollection(
		nil, "test-collection-validation", testValidatorJSON)
	s.Require().NoError(err)
	s.Require().NotNil(collection)

	ctx := s.DB().Context()
	_, err = collection.Save(ctx, Document{"alpha": "one", "bravo": 1})
	s.NoError(err)
	_, err = collection.Save(ctx, Document{"alpha": 17})
	s.Error(err)
	s.True(IsValidationFailure(err))
}

// TestCloseForce uses its own connection so the suite handle stays usable.
func (s *databaseTestSuite) TestCloseForce() {
	db, err := Connect(NewOptions(TestDatabaseName))
	s.Require().NoError(err)
	s.Require().NoError(db.Close(true))

	s.ErrorIs(db.Ping(), ErrDatabaseClosed)
	_, err = db.Collection("anything")
	s.ErrorIs(err, ErrDatabaseClosed)
	_, err = db.CollectionExists("anything")
	s.ErrorIs(err, ErrDatabaseClosed)
}

var testValidatorJSON = `{
	"$jsonSchema": {
		"bsonType": "object",
		"required": ["alpha", "bravo"],
		"properties": {
			"alpha": {
				"bsonType": "string"
			},
			"bravo": {
				"bsonType": "int"
			}
		}
	}
}`
