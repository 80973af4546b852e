package mongodb

import (
	"github.com/stretchr/testify/suite"
)

// TestDatabaseName is the database used by DatabaseTestSuite.
// It is dropped on suite teardown.
const TestDatabaseName = "db-test"

// DatabaseTestSuite wraps database connect/disconnect for use in tests that
// actually hit a live server. Embed it in a testify suite and gate the test
// file with the database build tag.
type DatabaseTestSuite struct {
	suite.Suite
	db *Database
}

// DB returns the open database handle.
func (s *DatabaseTestSuite) DB() *Database {
	return s.db
}

func (s *DatabaseTestSuite) SetupSuite() {
	s.SetupSuiteOptions(nil)
}

// SetupSuiteOptions connects with the specified options,
// defaulting to TestDatabaseName on localhost.
func (s *DatabaseTestSuite) SetupSuiteOptions(opts *Options) {
	if opts == nil {
		opts = NewOptions(TestDatabaseName)
	}
	if opts.Database == "" {
		opts.Database = TestDatabaseName
	}

	var err error
	s.db, err = Connect(opts)
	s.Require().NoError(err, "connect to mongo")
}

func (s *DatabaseTestSuite) TearDownSuite() {
	s.NoError(s.db.Mongo().Drop(s.db.Context()), "drop test database")
	s.NoError(s.db.Close(false), "disconnect from mongo")
}

// Collection acquires the named collection, emptied of any leftover
// documents, with test checks so that errors blow up the test.
// Indexes are awaited here regardless of Options.AwaitIndexes so that
// following tests see them in place.
func (s *DatabaseTestSuite) Collection(name string, indexes ...*Index) *Collection {
	collection, err := s.db.Collection(name)
	s.Require().NoError(err)
	s.Require().NotNil(collection)
	_, err = collection.Delete(s.db.Context(), nil)
	s.Require().NoError(err)
	s.Require().NoError(s.db.ensureIndexes(collection, indexes))
	return collection
}
