// Package stations defines the canonical station model shared by every
// resource pipeline. Both the field-collected source and the remote datastore
// are normalized into Station values before reconciliation; nothing downstream
// ever sees a raw placemark or a raw API record.
package stations

// FieldSource tags where a station record came from.
const FieldSource = "地圖一"

// Coordinates is a WGS84 latitude/longitude pair. A station either has both
// values or a nil *Coordinates; a half-filled pair never exists.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Equal reports whether two coordinate pairs are identical.
func (c *Coordinates) Equal(other *Coordinates) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c.Lat == other.Lat && c.Lng == other.Lng
}

// Station is the canonical, resource-agnostic record.
//
// Name is the matching identity: the source data carries no stable external
// identifier, so reconciliation keys on it. RemoteID is set only on records
// obtained from the remote side and is required to target an update. Fields
// holds the resource-specific attribute bag (address, operating hours,
// service flags) as the remote reported it; missing remote fields are simply
// absent, never defaulted.
type Station struct {
	Name        string
	RemoteID    string
	Coordinates *Coordinates
	Notes       string
	Source      string
	Fields      map[string]any
}

// Field returns the named resource-specific attribute, or nil when the remote
// never reported it.
func (s *Station) Field(name string) any {
	if s.Fields == nil {
		return nil
	}
	return s.Fields[name]
}
