package mongodb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestNewIndex(t *testing.T) {
	index := NewIndex("alpha", "bravo")
	assert.Equal(t, bson.D{
		{Key: "alpha", Value: 1},
		{Key: "bravo", Value: 1},
	}, index.Keys())
	assert.False(t, index.IsUnique())
}

func TestIndexDirectionsAndUnique(t *testing.T) {
	index := NewIndex("alpha").Desc("created").Unique()
	assert.Equal(t, bson.D{
		{Key: "alpha", Value: 1},
		{Key: "created", Value: -1},
	}, index.Keys())
	assert.True(t, index.IsUnique())
}

func TestIndexModel(t *testing.T) {
	index := NewIndex("alpha").Unique()
	model := index.Model()
	assert.Equal(t, index.Keys(), model.Keys)
	require.NotNil(t, model.Options)
	require.NotNil(t, model.Options.Unique)
	assert.True(t, *model.Options.Unique)

	// The model's uniqueness flag must not alias the description.
	plain := NewIndex("bravo").Model()
	require.NotNil(t, plain.Options.Unique)
	assert.False(t, *plain.Options.Unique)
}
