// Package export turns uniform records into CSV downloads.
package export

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"github.com/atlasiq/atlasiq-gateway/internal/domain/entity"
)

// Record is one CSV row. Keys fixes the column order.
type Record interface {
	Keys() []string
	Value(key string) (interface{}, bool)
}

// Write serializes records as CSV. The header is the key set of the first
// record; every row is written in that column order and keys a record lacks
// are left empty. A field is quoted only when it contains a comma or a
// double quote, with embedded quotes doubled. Empty input writes nothing.
func Write(w io.Writer, records []Record) error {
	if len(records) == 0 {
		return nil
	}

	header := records[0].Keys()
	bw := bufio.NewWriter(w)

	writeLine(bw, header)

	line := make([]string, len(header))
	for _, rec := range records {
		for j, key := range header {
			v, ok := rec.Value(key)
			if !ok {
				line[j] = ""
				continue
			}
			line[j] = FormatValue(v)
		}
		writeLine(bw, line)
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}

func writeLine(bw *bufio.Writer, fields []string) {
	for i, field := range fields {
		if i > 0 {
			bw.WriteByte(',')
		}
		bw.WriteString(quote(field))
	}
	bw.WriteByte('\n')
}

func quote(field string) string {
	if !strings.ContainsAny(field, `,"`) {
		return field
	}
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}

// SaveFile writes records to dir/name and returns the path. Nothing is
// created for empty input and the returned path is "".
func SaveFile(dir, name string, records []Record) (string, error) {
	if len(records) == 0 {
		return "", nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create export file: %w", err)
	}

	if err := Write(f, records); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close export file: %w", err)
	}
	return path, nil
}

// FileName is the download name for an indicator series
func FileName(indicator string, startYear, endYear int) string {
	return fmt.Sprintf("%s_%d_%d.csv", indicator, startYear, endYear)
}

// SeriesRecords exposes a series' observations as entity, year, value
// records in backend order. Every record has the same keys.
func SeriesRecords(s *entity.Series) ([]Record, error) {
	if s == nil {
		return nil, nil
	}
	return StructRecords(s.Observations)
}

// FormatValue renders a cell. Floats use the shortest exact form.
func FormatValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case bool:
		return strconv.FormatBool(val)
	case fmt.Stringer:
		return val.String()
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return ""
		}
		return FormatValue(rv.Elem().Interface())
	}
	return fmt.Sprint(v)
}

type structRecord struct {
	keys   []string
	values map[string]interface{}
}

func (r structRecord) Keys() []string { return r.keys }

func (r structRecord) Value(key string) (interface{}, bool) {
	v, ok := r.values[key]
	return v, ok
}

// StructRecords exposes a slice of structs (or struct pointers) as records.
// Keys are the JSON tag names in field order; untagged exported fields use
// their Go name and `json:"-"` fields are skipped.
func StructRecords(items interface{}) ([]Record, error) {
	rv := reflect.ValueOf(items)
	if rv.Kind() != reflect.Slice {
		return nil, fmt.Errorf("export: expected a slice, got %T", items)
	}

	out := make([]Record, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		elem := rv.Index(i)
		if elem.Kind() == reflect.Ptr {
			if elem.IsNil() {
				continue
			}
			elem = elem.Elem()
		}
		if elem.Kind() != reflect.Struct {
			return nil, fmt.Errorf("export: element %d is %s, not a struct", i, elem.Kind())
		}
		out = append(out, toRecord(elem))
	}
	return out, nil
}

func toRecord(v reflect.Value) structRecord {
	t := v.Type()
	rec := structRecord{values: make(map[string]interface{}, t.NumField())}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		name := field.Name
		if tag, ok := field.Tag.Lookup("json"); ok {
			tagName, _, _ := strings.Cut(tag, ",")
			if tagName == "-" {
				continue
			}
			if tagName != "" {
				name = tagName
			}
		}

		rec.keys = append(rec.keys, name)
		rec.values[name] = v.Field(i).Interface()
	}
	return rec
}
