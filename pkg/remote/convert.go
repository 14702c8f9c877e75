package remote

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/guangfu250923/fieldsync/pkg/resources"
	"github.com/guangfu250923/fieldsync/pkg/stations"
)

// convert maps one raw remote record to a canonical station. Field mapping
// is mechanical: unknown or missing remote fields stay absent; defaults
// belong to creation payload construction, not here.
func (c *Client) convert(raw item, res *resources.Resource) stations.Station {
	s := stations.Station{
		Name:     textValue(raw["name"]),
		RemoteID: idValue(raw["id"]),
		Fields:   make(map[string]any, len(raw)),
	}

	s.Coordinates = c.flattenCoordinates(raw["coordinates"], res)

	for key, value := range raw {
		switch key {
		case "id", "name", "coordinates":
			continue
		}
		// Array values (medical service lists) are carried as their JSON
		// encoding so the tabular snapshot has a single-cell representation.
		if list, ok := value.([]any); ok {
			encoded, err := json.Marshal(list)
			if err == nil {
				value = string(encoded)
			}
		}
		s.Fields[key] = value
	}

	// The remote stores free text under notes or, in older records,
	// description; notes wins when both are present.
	if stations.IsBlank(s.Fields["notes"]) && !stations.IsBlank(s.Fields["description"]) {
		s.Fields["notes"] = s.Fields["description"]
	}

	return s
}

// flattenCoordinates accepts the two remote coordinate representations: a
// structured {lat,lng} object (latitude/longitude aliases included) or a
// delimited "lat,lng" string. Unparseable coordinates yield nil rather than
// failing the fetch.
func (c *Client) flattenCoordinates(v any, res *resources.Resource) *stations.Coordinates {
	switch coords := v.(type) {
	case map[string]any:
		lat, okLat := numberValue(firstOf(coords, "lat", "latitude"))
		lng, okLng := numberValue(firstOf(coords, "lng", "longitude"))
		if okLat && okLng {
			return &stations.Coordinates{Lat: lat, Lng: lng}
		}
	case string:
		parts := strings.SplitN(coords, ",", 2)
		if len(parts) == 2 {
			lat, errLat := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
			lng, errLng := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
			if errLat == nil && errLng == nil {
				return &stations.Coordinates{Lat: lat, Lng: lng}
			}
		}
		c.logger.Warn().
			Str("resource", string(res.Type)).
			Str("coordinates", coords).
			Msg("unparseable coordinate string")
	}
	return nil
}

func firstOf(m map[string]any, keys ...string) any {
	for _, key := range keys {
		if v, ok := m[key]; ok && v != nil {
			return v
		}
	}
	return nil
}

func textValue(v any) string {
	s, _ := v.(string)
	return s
}

// idValue normalizes a remote identifier, which arrives as a JSON string or
// number, to the string embedded in update URLs.
func idValue(v any) string {
	switch id := v.(type) {
	case string:
		return id
	case json.Number:
		return id.String()
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64)
	}
	return ""
}

// numberValue coerces the remote's numeric spellings (number or numeric
// string) to a float.
func numberValue(v any) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case float64:
		return n, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	}
	return 0, false
}
