package mongodb

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
)

// Database encapsulates an open connection to a named database.
// The handle must not be used after Close.
type Database struct {
	client   *mongo.Client
	database *mongo.Database
	opts     Options
	closed   int32
}

// Connect opens a connection to the database named in opts and returns a
// Database handle. Host and port default to localhost:27017; the database
// name is required. Every write issued through the handle is acknowledged:
// a W(1) write concern is installed on the client before connecting.
// Driver errors are returned wrapped but otherwise untouched.
func Connect(opts *Options) (*Database, error) {
	if opts == nil {
		opts = &Options{}
	}
	if opts.Database == "" {
		return nil, ErrNoDatabaseName
	}

	opts.fill()

	clientOpts := opts.ClientOptions
	if clientOpts == nil {
		clientOpts = options.Client()
	}
	if clientOpts.GetURI() == "" {
		clientOpts.ApplyURI(opts.BuildURI())
	}
	clientOpts.SetWriteConcern(writeconcern.New(writeconcern.W(1)))

	ctx, cancel := context.WithTimeout(opts.Ctx, opts.Timeouts.Connect)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("unable to connect mongo server: %w", err)
	}

	db := &Database{
		client:   client,
		database: client.Database(opts.Database),
		opts:     *opts,
	}

	if err = db.Ping(); err != nil {
		_ = db.Close(false)
		return nil, err
	}

	db.opts.Logger.Info().Str("database", db.database.Name()).Msg("Connected")

	return db, nil
}

// MustConnect connects to the database or panics on error.
func MustConnect(opts *Options) *Database {
	db, err := Connect(opts)
	if err != nil {
		panic(err)
	}

	return db
}

// Close disconnects from the server.
// With force set the handle is poisoned as well: any further operation
// through it returns ErrDatabaseClosed instead of reaching the driver.
// Closing is one-directional; there is no reopen.
func (db *Database) Close(force bool) error {
	if force {
		atomic.StoreInt32(&db.closed, 1)
	}

	ctx, cancel := db.contextWithTimeout(db.opts.Timeouts.Disconnect)
	defer cancel()
	if err := db.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("unable to disconnect mongo server: %w", err)
	}

	return nil
}

// Ping executes a ping against the server to verify the connection is up.
func (db *Database) Ping() error {
	if err := db.check(); err != nil {
		return err
	}

	ctx, cancel := db.contextWithTimeout(db.opts.Timeouts.Ping)
	defer cancel()
	if err := db.client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("unable to ping mongo server: %w", err)
	}

	return nil
}

// Client returns the underlying driver client.
func (db *Database) Client() *mongo.Client {
	return db.client
}

// Mongo returns the underlying driver database.
func (db *Database) Mongo() *mongo.Database {
	return db.database
}

// Name returns the database name.
func (db *Database) Name() string {
	return db.database.Name()
}

// Context returns the base context for the handle.
func (db *Database) Context() context.Context {
	return db.opts.Ctx
}

// Collection resolves the named collection and returns a handle for it.
// The collection need not exist beforehand; the server creates it on first
// write. Requested indexes are ensured best-effort in the background and the
// handle is returned immediately; build failures are logged at debug level
// and otherwise discarded. With Options.AwaitIndexes set the builds are
// awaited instead and the first failure is returned.
func (db *Database) Collection(name string, indexes ...*Index) (*Collection, error) {
	if name == "" {
		return nil, ErrNoCollectionName
	}
	if err := db.check(); err != nil {
		return nil, err
	}

	collection := &Collection{
		db:         db,
		collection: db.database.Collection(name),
	}

	if len(indexes) > 0 {
		if db.opts.AwaitIndexes {
			if err := db.ensureIndexes(collection, indexes); err != nil {
				return nil, err
			}
		} else {
			go db.backgroundIndexes(collection, indexes)
		}
	}

	return collection, nil
}

// CollectionExists checks to see if a specific collection already exists.
func (db *Database) CollectionExists(name string) (bool, error) {
	if name == "" {
		return false, ErrNoCollectionName
	}
	if err := db.check(); err != nil {
		return false, err
	}

	ctx, cancel := db.contextWithTimeout(db.opts.Timeouts.Collection)
	defer cancel()
	names, err := db.database.ListCollectionNames(ctx, bson.M{"name": name})
	if err != nil {
		return false, fmt.Errorf("getting collection names: %w", err)
	}

	for _, collName := range names {
		if collName == name {
			return true, nil
		}
	}

	return false, nil
}

// CreateCollection explicitly creates the named collection, optionally with
// a JSON schema validator, and ensures any requested indexes before
// returning. A NamespaceExists error from the server is tolerated so the
// call is safe to repeat.
func (db *Database) CreateCollection(
	ctx context.Context, name string, validatorJSON string, indexes ...*Index) (*Collection, error) {
	if name == "" {
		return nil, ErrNoCollectionName
	}
	if err := db.check(); err != nil {
		return nil, err
	}

	opts := make([]*options.CreateCollectionOptions, 0)
	if validatorJSON != "" {
		var validator interface{}
		if err := bson.UnmarshalExtJSON([]byte(validatorJSON), false, &validator); err != nil {
			return nil, fmt.Errorf("unmarshal validator for collection: %w", err)
		}
		opts = append(opts, &options.CreateCollectionOptions{Validator: validator})
	}

	if ctx == nil {
		ctx = db.Context()
	}
	createCtx, cancel := context.WithTimeout(ctx, db.opts.Timeouts.Collection)
	defer cancel()
	if err := db.database.CreateCollection(createCtx, name, opts...); err != nil {
		if cmdErr, ok := err.(mongo.CommandError); !ok || !cmdErr.HasErrorLabel("NamespaceExists") {
			return nil, fmt.Errorf("create collection: %w", err)
		}
	}

	collection := &Collection{
		db:         db,
		collection: db.database.Collection(name),
	}
	db.opts.Logger.Info().Str("collection", name).Msg("Created collection")

	if err := db.ensureIndexes(collection, indexes); err != nil {
		return nil, err
	}

	return collection, nil
}

func (db *Database) check() error {
	if atomic.LoadInt32(&db.closed) != 0 {
		return ErrDatabaseClosed
	}

	return nil
}

func (db *Database) contextWithTimeout(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(db.opts.Ctx, timeout)
}
