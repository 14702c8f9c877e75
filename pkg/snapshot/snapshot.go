// Package snapshot writes the flat tabular dumps of each pipeline's two
// canonical station sets. The dumps are working artifacts for humans
// reviewing a run, not inputs to anything; their loss affects nothing else.
package snapshot

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/guangfu250923/fieldsync/internal/atomicfile"
	"github.com/guangfu250923/fieldsync/pkg/errors"
	"github.com/guangfu250923/fieldsync/pkg/stations"
)

// sourceColumns is the fixed header of source-derived dumps.
var sourceColumns = []string{"name", "notes", "info_source", "lat", "lng"}

// WriteSource dumps a source-derived station set. An empty set writes
// nothing and reports ErrNoData so the caller can log and move on.
func WriteSource(path string, set *stations.Set) error {
	if set.Len() == 0 {
		return errors.ErrNoData
	}

	err := atomicfile.Write(path, func(w io.Writer) error {
		cw := csv.NewWriter(w)
		if err := cw.Write(sourceColumns); err != nil {
			return err
		}
		for _, s := range set.List() {
			record := []string{s.Name, s.Notes, s.Source, coord(s.Coordinates, true), coord(s.Coordinates, false)}
			if err := cw.Write(record); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	})
	return errors.WrapPersistence(path, err)
}

// WriteDB dumps a remote-derived station set using the resource's declared
// column order. Absent remote fields become empty cells.
func WriteDB(path string, set *stations.Set, columns []string) error {
	if set.Len() == 0 {
		return errors.ErrNoData
	}

	err := atomicfile.Write(path, func(w io.Writer) error {
		cw := csv.NewWriter(w)
		if err := cw.Write(columns); err != nil {
			return err
		}
		for _, s := range set.List() {
			record := make([]string, len(columns))
			for i, col := range columns {
				record[i] = cell(s, col)
			}
			if err := cw.Write(record); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	})
	return errors.WrapPersistence(path, err)
}

func cell(s stations.Station, column string) string {
	switch column {
	case "id":
		return s.RemoteID
	case "name":
		return s.Name
	case "lat":
		return coord(s.Coordinates, true)
	case "lng":
		return coord(s.Coordinates, false)
	}
	return stringify(s.Field(column))
}

func stringify(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case bool:
		return strconv.FormatBool(value)
	case json.Number:
		return value.String()
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	}
	return fmt.Sprint(v)
}

func coord(c *stations.Coordinates, lat bool) string {
	if c == nil {
		return ""
	}
	if lat {
		return strconv.FormatFloat(c.Lat, 'f', -1, 64)
	}
	return strconv.FormatFloat(c.Lng, 'f', -1, 64)
}
