package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"otodomcrawler/internal/listing"
)

// Flatten collapses a nested record into a single level. Nested map keys
// are joined with underscores and list elements contribute their index
// as a key segment, so {"a": {"b": 1}} becomes {"a_b": 1}.
func Flatten(record map[string]interface{}) map[string]interface{} {
	out := map[string]interface{}{}
	flattenInto(out, "", record)
	return out
}

func flattenInto(out map[string]interface{}, prefix string, v interface{}) {
	switch x := v.(type) {
	case map[string]interface{}:
		for key, val := range x {
			flattenInto(out, prefix+key+"_", val)
		}
	case []interface{}:
		for i, val := range x {
			flattenInto(out, prefix+strconv.Itoa(i)+"_", val)
		}
	default:
		out[strings.TrimSuffix(prefix, "_")] = v
	}
}

func flatRecords(listings []listing.Listing) []map[string]interface{} {
	records := make([]map[string]interface{}, 0, len(listings))
	for _, lst := range listings {
		records = append(records, Flatten(lst.Record()))
	}
	return records
}

// Header returns the sorted union of keys across all flattened records,
// so every run with the same data yields the same column order.
func Header(records []map[string]interface{}) []string {
	seen := map[string]struct{}{}
	for _, rec := range records {
		for key := range rec {
			seen[key] = struct{}{}
		}
	}
	header := make([]string, 0, len(seen))
	for key := range seen {
		header = append(header, key)
	}
	sort.Strings(header)
	return header
}

// WriteCSV writes the listings as one flat CSV table. Columns a record
// has no value for stay empty.
func WriteCSV(w io.Writer, listings []listing.Listing) error {
	records := flatRecords(listings)
	header := Header(records)

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	row := make([]string, len(header))
	for _, rec := range records {
		for i, key := range header {
			row[i] = formatCell(rec[key])
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSON writes the listings as an indented JSON array of flattened
// records.
func WriteJSON(w io.Writer, listings []listing.Listing) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	enc.SetEscapeHTML(false)
	return enc.Encode(flatRecords(listings))
}

// WriteCSVFile writes the listings to a CSV file, replacing it when it
// already exists.
func WriteCSVFile(path string, listings []listing.Listing) error {
	return writeFile(path, listings, WriteCSV)
}

// WriteJSONFile writes the listings to a JSON file, replacing it when it
// already exists.
func WriteJSONFile(path string, listings []listing.Listing) error {
	return writeFile(path, listings, WriteJSON)
}

func writeFile(path string, listings []listing.Listing, write func(io.Writer, []listing.Listing) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("can't create %s: %w", path, err)
	}
	if err := write(f, listings); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func formatCell(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}
