package mongodb

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// DefaultHost is the host used when Options.Host and Options.URI are empty.
	DefaultHost = "localhost"

	// DefaultPort is the port used when Options.Port is zero.
	DefaultPort = 27017

	// DefaultConnectTimeout is the default timeout for the initial connect.
	DefaultConnectTimeout = 10 * time.Second

	// DefaultDisconnectTimeout is the default timeout for the disconnect.
	DefaultDisconnectTimeout = 10 * time.Second

	// DefaultPingTimeout is the default timeout for the ping to make sure the connection is up.
	DefaultPingTimeout = 2 * time.Second

	// DefaultCollectionTimeout is the default timeout for collection access.
	DefaultCollectionTimeout = time.Second

	// DefaultIndexTimeout is the default timeout for index builds.
	DefaultIndexTimeout = 5 * time.Second
)

// Options configures a connection. Optional behavior is expressed through
// named fields rather than call-site argument shapes; zero values are filled
// in by Connect.
type Options struct {
	// URI is a full mongodb:// connection string.
	// When set it takes precedence over the Host/Port/credential fields.
	URI string

	// Host of the Mongo server, DefaultHost if empty.
	Host string

	// Port of the Mongo server, DefaultPort if zero.
	Port int

	// Database is the name of the target database. Required.
	Database string

	// Username and Password are optional credentials added to the URI.
	Username string
	Password string

	// AuthSource names the database to authenticate against, if not admin.
	AuthSource string

	// ReplicaSet names the replica set to connect to, if any.
	ReplicaSet string

	// Direct forces a direct connection to the named host.
	Direct bool

	// AwaitIndexes makes Database.Collection wait for requested index builds
	// and return their errors. By default builds are issued in the background
	// and failures are not observable through this interface.
	AwaitIndexes bool

	// Ctx is the base context for calls to Mongo, context.Background() if nil.
	Ctx context.Context

	// Logger for informational events. Discards everything if left unset.
	Logger *zerolog.Logger

	// ClientOptions are forwarded to the driver after the URI and write
	// concern are applied. Escape hatch for pool sizes, TLS and the rest.
	ClientOptions *options.ClientOptions

	Timeouts
}

// Timeouts for the individual phases of database access.
type Timeouts struct {
	// Timeout for the initial connect.
	Connect time.Duration

	// Timeout for the disconnect.
	Disconnect time.Duration

	// Timeout for the ping to make sure the connection is up.
	Ping time.Duration

	// Timeout for collection access.
	Collection time.Duration

	// Timeout for index builds.
	Index time.Duration
}

// NewOptions returns an Options object for the named database
// with all defaults filled in.
func NewOptions(database string) *Options {
	opts := &Options{Database: database}
	opts.fill()
	return opts
}

// AddFlags binds the connection fields to flags in the specified FlagSet.
// Flag names are prefixed with namePrefix.
func (o *Options) AddFlags(fs *pflag.FlagSet, namePrefix string) {
	fs.StringVar(&o.URI, namePrefix+"uri", o.URI, "Mongo URI (mongodb://...)")
	fs.StringVar(&o.Host, namePrefix+"host", o.Host, "Mongo host")
	fs.IntVar(&o.Port, namePrefix+"port", o.Port, "Mongo port")
	fs.StringVar(&o.Database, namePrefix+"database", o.Database, "Mongo database name")
	fs.StringVar(&o.Username, namePrefix+"username", o.Username, "Mongo username")
	fs.StringVar(&o.Password, namePrefix+"password", o.Password, "Mongo password")
	fs.StringVar(&o.AuthSource, namePrefix+"auth-source", o.AuthSource, "Mongo authentication database")
	fs.StringVar(&o.ReplicaSet, namePrefix+"replica-set", o.ReplicaSet, "Mongo replica set name")
	fs.BoolVar(&o.Direct, namePrefix+"direct", o.Direct, "Force a direct connection")
}

// BuildURI assembles a mongodb:// URI from the connection fields.
// If Options.URI is set it is returned as-is.
func (o *Options) BuildURI() string {
	if o.URI != "" {
		return o.URI
	}

	var uri strings.Builder
	uri.WriteString("mongodb://")

	if o.Username != "" {
		uri.WriteString(url.QueryEscape(o.Username))
		if o.Password != "" {
			uri.WriteString(":")
			uri.WriteString(url.QueryEscape(o.Password))
		}
		uri.WriteString("@")
	}

	host := o.Host
	if host == "" {
		host = DefaultHost
	}
	uri.WriteString(host)

	port := o.Port
	if port == 0 {
		port = DefaultPort
	}
	uri.WriteString(fmt.Sprintf(":%d", port))

	uri.WriteString("/")
	uri.WriteString(o.Database)

	params := url.Values{}
	if o.AuthSource != "" && o.AuthSource != "admin" {
		params.Add("authSource", o.AuthSource)
	}
	if o.ReplicaSet != "" {
		params.Add("replicaSet", o.ReplicaSet)
	}
	if o.Direct {
		params.Add("directConnection", "true")
	}
	if len(params) > 0 {
		uri.WriteString("?")
		uri.WriteString(params.Encode())
	}

	return uri.String()
}

// fill resolves defaults exactly once, at connection construction.
func (o *Options) fill() {
	if o.Host == "" {
		o.Host = DefaultHost
	}

	if o.Port == 0 {
		o.Port = DefaultPort
	}

	if o.Ctx == nil {
		o.Ctx = context.Background()
	}

	if o.Logger == nil {
		nop := zerolog.Nop()
		o.Logger = &nop
	}

	if o.Timeouts.Connect == 0 {
		o.Timeouts.Connect = DefaultConnectTimeout
	}

	if o.Timeouts.Disconnect == 0 {
		o.Timeouts.Disconnect = DefaultDisconnectTimeout
	}

	if o.Timeouts.Ping == 0 {
		o.Timeouts.Ping = DefaultPingTimeout
	}

	if o.Timeouts.Collection == 0 {
		o.Timeouts.Collection = DefaultCollectionTimeout
	}

	if o.Timeouts.Index == 0 {
		o.Timeouts.Index = DefaultIndexTimeout
	}
}
