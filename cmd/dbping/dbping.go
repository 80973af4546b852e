// Command dbping checks connectivity to a Mongo database.
//
//	dbping --database <name> [--host <host>] [--port <port>]
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/easydb/go-mongodb/mongodb"
)

func main() {
	opts := mongodb.NewOptions("")
	opts.AddFlags(pflag.CommandLine, "")
	pflag.Parse()

	if opts.Database == "" {
		fmt.Fprintln(os.Stderr, "usage: dbping --database <name> [--host <host>] [--port <port>]")
		os.Exit(1)
	}

	db, err := mongodb.Connect(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to connect to %s: %s\n", opts.Database, err)
		os.Exit(1)
	}

	fmt.Printf("Connected to %s at %s:%d\n", db.Name(), opts.Host, opts.Port)

	if err := db.Close(false); err != nil {
		fmt.Fprintf(os.Stderr, "Unable to disconnect from %s: %s\n", opts.Database, err)
		os.Exit(1)
	}
}
