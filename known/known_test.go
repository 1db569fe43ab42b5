package known_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/paritytech/bcts-sub004/known"
)

func TestDefaultsRegistered(t *testing.T) {
	known.Reset()
	name, ok := known.Name(known.IsA)
	assert.True(t, ok)
	assert.Equal(t, "isA", name)
}

func TestRegisterOverridesAndStringFallsBack(t *testing.T) {
	known.Reset()
	defer known.Reset()

	known.Register(known.Value(9001), "custom")
	name, ok := known.Name(known.Value(9001))
	assert.True(t, ok)
	assert.Equal(t, "custom", name)

	assert.Equal(t, "custom", known.Value(9001).String())
	assert.Equal(t, "known(424242)", known.Value(424242).String())
}
