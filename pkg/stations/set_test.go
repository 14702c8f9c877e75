package stations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetAddFirstWins(t *testing.T) {
	set := NewSet()

	require.True(t, set.Add(Station{Name: "加水站A", Notes: "first"}))
	require.False(t, set.Add(Station{Name: "加水站A", Notes: "second"}))

	got, ok := set.Get("加水站A")
	require.True(t, ok)
	assert.Equal(t, "first", got.Notes)
	assert.Equal(t, 1, set.Len())
}

func TestSetPutLastWins(t *testing.T) {
	set := NewSet()

	set.Put(Station{Name: "醫療站B", RemoteID: "1"})
	set.Put(Station{Name: "醫療站B", RemoteID: "2"})

	got, ok := set.Get("醫療站B")
	require.True(t, ok)
	assert.Equal(t, "2", got.RemoteID)
	assert.Equal(t, 1, set.Len())
}

func TestSetPreservesInsertionOrder(t *testing.T) {
	set := NewSet()
	names := []string{"丙站", "甲站", "乙站"}
	for _, name := range names {
		set.Add(Station{Name: name})
	}

	listed := set.List()
	require.Len(t, listed, 3)
	for i, name := range names {
		assert.Equal(t, name, listed[i].Name)
	}
}

func TestSetGetMissing(t *testing.T) {
	set := NewSet()
	_, ok := set.Get("nope")
	assert.False(t, ok)
}

func TestCoordinatesEqual(t *testing.T) {
	a := &Coordinates{Lat: 23.5, Lng: 121.4}
	b := &Coordinates{Lat: 23.5, Lng: 121.4}
	c := &Coordinates{Lat: 23.5, Lng: 121.5}

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(nil))
	assert.True(t, (*Coordinates)(nil).Equal(nil))
}

func TestStationField(t *testing.T) {
	s := Station{Fields: map[string]any{"phone": "03-1234567"}}
	assert.Equal(t, "03-1234567", s.Field("phone"))
	assert.Nil(t, s.Field("address"))

	var empty Station
	assert.Nil(t, empty.Field("anything"))
}
