package remote

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guangfu250923/fieldsync/pkg/errors"
	"github.com/guangfu250923/fieldsync/pkg/resources"
)

func testResource() *resources.Resource {
	return &resources.Resource{Type: resources.Water, Path: "water_refill_stations"}
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	logger := zerolog.Nop()
	client := New(WithBaseURL(server.URL), WithLogger(&logger))
	return client, server
}

func TestFetchStationsMemberWrapper(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/water_refill_stations", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		_, _ = w.Write([]byte(`{"totalItems": 2, "member": [
			{"id": 7, "name": "佛祖街加水站", "notes": "舊備註", "coordinates": {"lat": 23.65, "lng": 121.42}},
			{"id": "8", "name": "巷口加水站", "coordinates": {"latitude": 23.66, "longitude": 121.43}}
		]}`))
	})

	set, err := client.FetchStations(context.Background(), testResource())
	require.NoError(t, err)
	require.Equal(t, 2, set.Len())

	first, ok := set.Get("佛祖街加水站")
	require.True(t, ok)
	assert.Equal(t, "7", first.RemoteID)
	assert.Equal(t, "舊備註", first.Field("notes"))
	require.NotNil(t, first.Coordinates)
	assert.InDelta(t, 23.65, first.Coordinates.Lat, 1e-9)

	// latitude/longitude aliases and string IDs both normalize.
	second, ok := set.Get("巷口加水站")
	require.True(t, ok)
	assert.Equal(t, "8", second.RemoteID)
	require.NotNil(t, second.Coordinates)
	assert.InDelta(t, 121.43, second.Coordinates.Lng, 1e-9)
}

func TestFetchStationsBareArray(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"id": 1, "name": "醫療站A"}]`))
	})

	set, err := client.FetchStations(context.Background(), testResource())
	require.NoError(t, err)
	assert.Equal(t, 1, set.Len())
}

func TestFetchStationsSingleObject(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"id": 3, "name": "唯一站點"}`))
	})

	set, err := client.FetchStations(context.Background(), testResource())
	require.NoError(t, err)
	require.Equal(t, 1, set.Len())

	got, ok := set.Get("唯一站點")
	require.True(t, ok)
	assert.Equal(t, "3", got.RemoteID)
}

func TestFetchStationsCoordinateStringFallback(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[
			{"id": 1, "name": "字串座標", "coordinates": "23.65, 121.42"},
			{"id": 2, "name": "壞座標", "coordinates": "somewhere"}
		]`))
	})

	set, err := client.FetchStations(context.Background(), testResource())
	require.NoError(t, err)

	parsed, _ := set.Get("字串座標")
	require.NotNil(t, parsed.Coordinates)
	assert.InDelta(t, 121.42, parsed.Coordinates.Lng, 1e-9)

	bad, _ := set.Get("壞座標")
	assert.Nil(t, bad.Coordinates)
}

func TestFetchStationsLastDuplicateWins(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[
			{"id": 1, "name": "重複站", "notes": "第一筆"},
			{"id": 2, "name": "重複站", "notes": "第二筆"}
		]`))
	})

	set, err := client.FetchStations(context.Background(), testResource())
	require.NoError(t, err)
	require.Equal(t, 1, set.Len())

	got, _ := set.Get("重複站")
	assert.Equal(t, "2", got.RemoteID)
	assert.Equal(t, "第二筆", got.Field("notes"))
}

func TestFetchStationsServiceListEncoded(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"id": 1, "name": "醫療站A", "services": ["外科", "內科"]}]`))
	})

	set, err := client.FetchStations(context.Background(), testResource())
	require.NoError(t, err)

	got, _ := set.Get("醫療站A")
	assert.Equal(t, `["外科","內科"]`, got.Field("services"))
}

func TestFetchStationsDescriptionFallback(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[
			{"id": 1, "name": "只有描述", "description": "舊欄位"},
			{"id": 2, "name": "兩者皆有", "notes": "新欄位", "description": "舊欄位"}
		]`))
	})

	set, err := client.FetchStations(context.Background(), testResource())
	require.NoError(t, err)

	onlyDesc, _ := set.Get("只有描述")
	assert.Equal(t, "舊欄位", onlyDesc.Field("notes"))

	both, _ := set.Get("兩者皆有")
	assert.Equal(t, "新欄位", both.Field("notes"))
}

func TestFetchStationsErrorStatusDegradesToEmpty(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	set, err := client.FetchStations(context.Background(), testResource())
	require.Error(t, err)
	assert.Equal(t, 0, set.Len())

	var apiErr *errors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.ErrorIs(t, err, errors.ErrUnavailable)
}

func TestFetchStationsMalformedBodyDegradesToEmpty(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`not json at all`))
	})

	set, err := client.FetchStations(context.Background(), testResource())
	require.Error(t, err)
	assert.Equal(t, 0, set.Len())
}

func TestFetchStationsConnectionRefused(t *testing.T) {
	logger := zerolog.Nop()
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client := New(WithBaseURL(url), WithLogger(&logger))
	set, err := client.FetchStations(context.Background(), testResource())
	require.Error(t, err)
	assert.Equal(t, 0, set.Len())
}

func TestDecodeCollectionUnrecognizedShape(t *testing.T) {
	_, err := decodeCollection([]byte(`"just a string"`))
	require.Error(t, err)
	var parseErr *errors.ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestDecodeCollectionMemberNotCollection(t *testing.T) {
	_, err := decodeCollection([]byte(`{"member": "oops"}`))
	require.Error(t, err)
}
