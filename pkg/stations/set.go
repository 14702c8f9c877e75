package stations

// Set is an ordered, name-unique collection of stations. Insertion order is
// preserved because it later becomes the iteration order for operation
// emission; two runs over the same input must plan in the same order.
type Set struct {
	stations []Station
	index    map[string]int
}

// NewSet returns an empty set.
func NewSet() *Set {
	return &Set{index: make(map[string]int)}
}

// Add inserts a station unless its name is already present. The first
// occurrence wins; later duplicates are dropped, not merged, because
// field-collected data has no disambiguation key. Returns false when the
// station was rejected as a duplicate.
func (s *Set) Add(station Station) bool {
	if _, exists := s.index[station.Name]; exists {
		return false
	}
	s.index[station.Name] = len(s.stations)
	s.stations = append(s.stations, station)
	return true
}

// Put inserts or replaces by name, last occurrence winning. Remote data is
// assumed already deduplicated upstream, so a replacement simply takes the
// newer record.
func (s *Set) Put(station Station) {
	if i, exists := s.index[station.Name]; exists {
		s.stations[i] = station
		return
	}
	s.index[station.Name] = len(s.stations)
	s.stations = append(s.stations, station)
}

// Get returns the station with the given name.
func (s *Set) Get(name string) (Station, bool) {
	i, exists := s.index[name]
	if !exists {
		return Station{}, false
	}
	return s.stations[i], true
}

// List returns the stations in insertion order. The returned slice is the
// set's backing storage; callers must not mutate it.
func (s *Set) List() []Station {
	return s.stations
}

// Len returns the number of stations in the set.
func (s *Set) Len() int {
	return len(s.stations)
}
