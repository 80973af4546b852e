package mongodb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMustConnectPanics(t *testing.T) {
	assert.Panics(t, func() {
		_ = MustConnect(&Options{})
	})
}
