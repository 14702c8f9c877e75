package source

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guangfu250923/fieldsync/pkg/placemarks"
	"github.com/guangfu250923/fieldsync/pkg/resources"
	"github.com/guangfu250923/fieldsync/pkg/stations"
)

func ptr(v float64) *float64 { return &v }

func waterResource() *resources.Resource {
	return &resources.Resource{
		Type:   resources.Water,
		Filter: resources.Filter{NameContains: "加水站"},
	}
}

func TestNormalizeFiltersAndConverts(t *testing.T) {
	logger := zerolog.Nop()
	pms := []placemarks.Placemark{
		{Folder: "加水站", Name: "佛祖街加水站", Description: "飲用水", Latitude: ptr(23.65), Longitude: ptr(121.42)},
		{Folder: "醫療站", Name: "醫療站A", Latitude: ptr(23.66), Longitude: ptr(121.43)},
		{Folder: "其他", Name: "巷口加水站", Description: "nan", Latitude: ptr(23.67), Longitude: ptr(121.44)},
	}

	set := Normalize(pms, waterResource(), &logger)
	require.Equal(t, 2, set.Len())

	first, ok := set.Get("佛祖街加水站")
	require.True(t, ok)
	assert.Equal(t, "飲用水", first.Notes)
	assert.Equal(t, stations.FieldSource, first.Source)
	require.NotNil(t, first.Coordinates)
	assert.InDelta(t, 23.65, first.Coordinates.Lat, 1e-9)

	// Sentinel descriptions collapse to empty notes.
	second, ok := set.Get("巷口加水站")
	require.True(t, ok)
	assert.Empty(t, second.Notes)
}

func TestNormalizeDropsRecordsWithoutCoordinates(t *testing.T) {
	logger := zerolog.Nop()
	pms := []placemarks.Placemark{
		{Name: "無座標加水站", Latitude: ptr(23.6)},
		{Name: "另一加水站", Longitude: ptr(121.4)},
	}

	set := Normalize(pms, waterResource(), &logger)
	assert.Equal(t, 0, set.Len())
}

func TestNormalizeFirstDuplicateWins(t *testing.T) {
	logger := zerolog.Nop()
	pms := []placemarks.Placemark{
		{Name: "重複加水站", Description: "第一筆", Latitude: ptr(23.6), Longitude: ptr(121.4)},
		{Name: "重複加水站", Description: "第二筆", Latitude: ptr(23.7), Longitude: ptr(121.5)},
	}

	set := Normalize(pms, waterResource(), &logger)
	require.Equal(t, 1, set.Len())

	got, ok := set.Get("重複加水站")
	require.True(t, ok)
	assert.Equal(t, "第一筆", got.Notes)
	assert.InDelta(t, 23.6, got.Coordinates.Lat, 1e-9)
}

func TestNormalizePreservesInputOrder(t *testing.T) {
	logger := zerolog.Nop()
	pms := []placemarks.Placemark{
		{Name: "丙加水站", Latitude: ptr(1), Longitude: ptr(2)},
		{Name: "甲加水站", Latitude: ptr(3), Longitude: ptr(4)},
		{Name: "乙加水站", Latitude: ptr(5), Longitude: ptr(6)},
	}

	set := Normalize(pms, waterResource(), &logger)
	listed := set.List()
	require.Len(t, listed, 3)
	assert.Equal(t, "丙加水站", listed[0].Name)
	assert.Equal(t, "甲加水站", listed[1].Name)
	assert.Equal(t, "乙加水站", listed[2].Name)
}
