package util

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewULID_SortsInCreationOrder(t *testing.T) {
	ids := make([]string, 200)
	for i := range ids {
		ids[i] = NewULID()
	}
	assert.True(t, sort.StringsAreSorted(ids))
	for _, id := range ids {
		assert.True(t, IsValidULID(id), id)
	}
}

func TestIsValidULID(t *testing.T) {
	assert.True(t, IsValidULID("01ARZ3NDEKTSV4RRFFQ69G5FAV"))
	assert.False(t, IsValidULID(""))
	assert.False(t, IsValidULID("not-a-ulid"))
	assert.False(t, IsValidULID("01ARZ3NDEKTSV4RRFFQ69G5FA"))
}
