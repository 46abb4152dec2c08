package handle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type stateTag struct{}

func TestHandledVec_InsertGet(t *testing.T) {
	assert := assert.New(t)

	var v HandledVec[stateTag, string]
	h1 := v.Insert("first")
	h2 := v.Insert("second")

	assert.Equal("first", v.Get(h1))
	assert.Equal("second", v.Get(h2))
	assert.Equal(2, v.Len())
	assert.NotEqual(h1, h2)
}

func TestHandledVec_SetOverwrites(t *testing.T) {
	assert := assert.New(t)

	var v HandledVec[stateTag, int]
	h := v.Insert(1)
	v.Set(h, 42)

	assert.Equal(42, v.Get(h))
}

func TestHandleMap_GetMissing(t *testing.T) {
	assert := assert.New(t)

	var m HandleMap[stateTag, string]
	var v HandledVec[stateTag, int]
	h := v.Insert(0)

	_, ok := m.Get(h)
	assert.False(ok)
	assert.False(m.Has(h))
}

func TestHandleMap_SetGet(t *testing.T) {
	assert := assert.New(t)

	var m HandleMap[stateTag, string]
	var v HandledVec[stateTag, int]
	h1 := v.Insert(0)
	h2 := v.Insert(1)

	m.Set(h2, "second")

	_, ok := m.Get(h1)
	assert.False(ok)

	val, ok := m.Get(h2)
	assert.True(ok)
	assert.Equal("second", val)
	assert.Equal([]Handle[stateTag]{h2}, m.Keys())
}

func TestMock_DistinctFromExisting(t *testing.T) {
	assert := assert.New(t)

	var v HandledVec[stateTag, int]
	h1 := v.Insert(0)
	h2 := v.Insert(1)

	mock := Mock(v.Handles())

	assert.NotEqual(h1, mock)
	assert.NotEqual(h2, mock)
}

func TestMock_EmptyExisting(t *testing.T) {
	assert := assert.New(t)

	mock := Mock([]Handle[stateTag]{})
	assert.Equal(0, mock.Index())
}
