// Package placemarks reads the flattened geospatial export that feeds the
// pipeline. A placemark is one named, located entry from a field-collected
// map; the upstream extraction step has already walked the export's folder
// hierarchy into a flat tabular file with fixed columns.
package placemarks

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/guangfu250923/fieldsync/pkg/errors"
)

// Placemark is a single raw record from the export. Latitude and Longitude
// are nil when the column was blank or unparseable; everything downstream
// treats that as "no coordinates".
type Placemark struct {
	Folder      string
	Name        string
	Description string
	StyleURL    string
	Latitude    *float64
	Longitude   *float64
}

// Coordinates returns the coordinate pair when both halves are present.
func (p Placemark) Coordinates() (lat, lng float64, ok bool) {
	if p.Latitude == nil || p.Longitude == nil {
		return 0, 0, false
	}
	return *p.Latitude, *p.Longitude, true
}

// columns is the fixed header of the export file.
var columns = []string{"folder", "name", "description", "style_url", "latitude", "longitude"}

// ReadFile reads all placemarks from the export file in file order. An
// unreadable, headerless, or empty file is fatal to the whole run; it is the
// only input the pipeline cannot degrade around.
func ReadFile(path string) ([]Placemark, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapParse("csv", path, err)
	}
	defer func() { _ = f.Close() }()

	return Read(f, path)
}

// Read parses placemark records from r. The name parameter is used in error
// messages only.
func Read(r io.Reader, name string) ([]Placemark, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, errors.WrapParse("csv", name, err)
	}

	index := make(map[string]int, len(header))
	for i, col := range header {
		index[strings.TrimSpace(col)] = i
	}
	for _, col := range columns {
		if _, ok := index[col]; !ok {
			return nil, &errors.ParseError{Format: "csv", File: name, Message: "missing column " + col}
		}
	}

	field := func(record []string, col string) string {
		i := index[col]
		if i >= len(record) {
			return ""
		}
		return record[i]
	}

	var out []Placemark
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.WrapParse("csv", name, err)
		}
		out = append(out, Placemark{
			Folder:      field(record, "folder"),
			Name:        field(record, "name"),
			Description: field(record, "description"),
			StyleURL:    field(record, "style_url"),
			Latitude:    parseCoord(field(record, "latitude")),
			Longitude:   parseCoord(field(record, "longitude")),
		})
	}

	if len(out) == 0 {
		return nil, &errors.ParseError{Format: "csv", File: name, Message: "no placemark records", Err: errors.ErrNoData}
	}
	return out, nil
}

func parseCoord(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "nan") {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

// Summary aggregates what the reader found, for run diagnostics.
type Summary struct {
	Total         int
	WithCoords    int
	WithoutCoords int
	MissingNames  []string
}

// Summarize counts placemarks with and without coordinates and collects the
// names of the located-nowhere entries.
func Summarize(placemarks []Placemark) Summary {
	s := Summary{Total: len(placemarks)}
	for _, p := range placemarks {
		if _, _, ok := p.Coordinates(); ok {
			s.WithCoords++
			continue
		}
		s.WithoutCoords++
		s.MissingNames = append(s.MissingNames, p.Name)
	}
	return s
}
