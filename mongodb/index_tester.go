package mongodb

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// IndexTester verifies that a collection carries exactly the expected
// indexes in addition to the implicit _id index.
type IndexTester []indexDatum

type indexDatum struct {
	Name   string
	Key    map[string]int32
	Unique bool
}

func NewIndexTester() IndexTester {
	return make(IndexTester, 0, 2)
}

func (it IndexTester) TestIndexes(t *testing.T, collection *Collection, indexes ...*Index) {
	ctx := context.Background()
	cursor, err := collection.Mongo().Indexes().List(ctx)
	require.NoError(t, err)
	err = cursor.All(ctx, &it)
	require.NoError(t, err)
	assert.Len(t, it, len(indexes)+1)
	it.hasIndexNamed(t, "_id_", NewIndex("_id"))
	for _, index := range indexes {
		names := make([]string, 0, len(index.keys))
		for _, key := range index.keys {
			direction := "1"
			if v, ok := key.Value.(int); ok && v < 0 {
				direction = "-1"
			}
			names = append(names, key.Key+"_"+direction)
		}
		it.hasIndexNamed(t, strings.Join(names, "_"), index)
	}
}

func (it IndexTester) hasIndexNamed(t *testing.T, name string, index *Index) {
	for _, data := range it {
		if data.Name == name {
			assert.Equal(t, index.unique, data.Unique, "check unique for index %s", name)
			keyMap := make(map[string]int32, len(index.keys))
			for _, key := range index.keys {
				direction := int32(1)
				if v, ok := key.Value.(int); ok && v < 0 {
					direction = -1
				}
				keyMap[key.Key] = direction
			}
			assert.Equal(t, keyMap, data.Key, "check keys for index %s", name)
			return
		}
	}

	names := make([]string, 0, len(it))
	for _, data := range it {
		names = append(names, data.Name)
	}
	assert.Fail(t, "missing index", "no index %s (%s)", name, strings.Join(names, ", "))
}
