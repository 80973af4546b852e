//go:build database

package mongodb

import (
	"github.com/easydb/go-mongodb/mongoid"
)

const testCollectionName = "test-collection"

type testItem struct {
	mongoid.Identity `bson:",inline"`
	Alpha            string `bson:"alpha"`
	Bravo            int    `bson:"bravo"`
	Charlie          string `bson:"charlie,omitempty"`
}

func testDoc(alpha string, bravo int) Document {
	return Document{"alpha": alpha, "bravo": bravo}
}
