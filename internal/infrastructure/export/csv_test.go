package export

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/atlasiq/atlasiq-gateway/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapRecord struct {
	keys   []string
	values map[string]interface{}
}

func (r mapRecord) Keys() []string { return r.keys }

func (r mapRecord) Value(key string) (interface{}, bool) {
	v, ok := r.values[key]
	return v, ok
}

func TestWriteQuotesCommas(t *testing.T) {
	var buf bytes.Buffer
	records := []Record{mapRecord{
		keys:   []string{"a", "b"},
		values: map[string]interface{}{"a": 1, "b": "x,y"},
	}}

	require.NoError(t, Write(&buf, records))
	assert.Equal(t, "a,b\n1,\"x,y\"\n", buf.String())
}

func TestWriteDoublesQuotes(t *testing.T) {
	var buf bytes.Buffer
	records := []Record{mapRecord{
		keys:   []string{"name"},
		values: map[string]interface{}{"name": `ASML "Holding"`},
	}}

	require.NoError(t, Write(&buf, records))
	assert.Equal(t, "name\n\"ASML \"\"Holding\"\"\"\n", buf.String())
}

func TestWriteEmptyIsNoop(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, nil))
	assert.Zero(t, buf.Len())
}

func TestWriteUsesFirstRecordHeader(t *testing.T) {
	var buf bytes.Buffer
	records := []Record{
		mapRecord{keys: []string{"year", "NLD"}, values: map[string]interface{}{"year": 2020, "NLD": 1.5}},
		mapRecord{keys: []string{"year", "BEL", "NLD"}, values: map[string]interface{}{"year": 2021, "BEL": 0.9}},
	}

	require.NoError(t, Write(&buf, records))
	assert.Equal(t, "year,NLD\n2020,1.5\n2021,\n", buf.String())
}

func TestWriteQuotesOnlyCommasAndQuotes(t *testing.T) {
	var buf bytes.Buffer
	records := []Record{mapRecord{
		keys:   []string{"rate, name", "note"},
		values: map[string]interface{}{"rate, name": " deposit facility", "note": "line\nbreak"},
	}}

	require.NoError(t, Write(&buf, records))
	assert.Equal(t, "\"rate, name\",note\n deposit facility,line\nbreak\n", buf.String())
}

func TestSeriesRecordsKeepLaterEntities(t *testing.T) {
	s := &entity.Series{Observations: []entity.Observation{
		{Entity: "NLD", Year: 2020, Value: 1.5},
		{Entity: "NLD", Year: 2021, Value: 2},
		{Entity: "BEL", Year: 2021, Value: 0.9},
	}}

	records, err := SeriesRecords(s)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, records))
	assert.Equal(t, "entity,year,value\nNLD,2020,1.5\nNLD,2021,2\nBEL,2021,0.9\n", buf.String())

	records, err = SeriesRecords(&entity.Series{})
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestStructRecords(t *testing.T) {
	points := []entity.MacroDataPoint{
		{Country: "NLD", Year: 2022, Value: 4.3, Indicator: "gdp_growth", Unit: "percent, annual"},
	}

	records, err := StructRecords(points)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "country", records[0].Keys()[0])

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, records))
	assert.Contains(t, buf.String(), `"percent, annual"`)
	assert.Contains(t, buf.String(), "4.3")

	_, err = StructRecords("not a slice")
	assert.Error(t, err)
}

func TestSaveFile(t *testing.T) {
	dir := t.TempDir()

	path, err := SaveFile(dir, FileName("gdp", 2015, 2023), nil)
	require.NoError(t, err)
	assert.Empty(t, path)
	_, statErr := os.Stat(filepath.Join(dir, "gdp_2015_2023.csv"))
	assert.True(t, os.IsNotExist(statErr), "no file for empty input")

	records, err := SeriesRecords(&entity.Series{Observations: []entity.Observation{{Entity: "DEU", Year: 2015, Value: 1.2}}})
	require.NoError(t, err)
	path, err = SaveFile(filepath.Join(dir, "out"), FileName("gdp", 2015, 2023), records)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "out", "gdp_2015_2023.csv"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "entity,year,value\nDEU,2015,1.2\n", string(data))
}

func TestFormatValue(t *testing.T) {
	v := 3.25
	var missing *float64
	assert.Equal(t, "3.25", FormatValue(&v))
	assert.Equal(t, "", FormatValue(missing))
	assert.Equal(t, "", FormatValue(nil))
	assert.Equal(t, "0.1", FormatValue(0.1))
	assert.Equal(t, "true", FormatValue(true))
}
