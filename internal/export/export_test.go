package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"
	"time"

	"dramactl/internal/importer"
	"dramactl/internal/record"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sample() []record.Record {
	return []record.Record{
		{
			ID:          1,
			Title:       "死神与少年",
			Author:      "ささきの茶釜",
			Translator:  "就是很一般",
			Tags:        []string{"小町", "a&b"},
			Status:      record.StatusTranslated,
			OriginalURL: "https://www.youtube.com/x",
			DateAdded:   "2023-06-18",
		},
		{ID: 2, Title: "t, with comma", Tags: []string{}, Status: record.StatusDomestic},
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatJSON, sample()))

	assert.Contains(t, buf.String(), `"status": "translated"`)
	assert.Contains(t, buf.String(), `"a&b"`)

	var back []record.Record
	require.NoError(t, json.Unmarshal(buf.Bytes(), &back))
	assert.Equal(t, sample(), back)
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatYAML, sample()))
	assert.Contains(t, buf.String(), "status: domestic")

	var back []map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &back))
	require.Len(t, back, 2)
	assert.Equal(t, "死神与少年", back[0]["title"])
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatCSV, sample()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, csvHeader, rows[0])
	assert.Equal(t, "小町|a&b", rows[1][4])
	assert.Equal(t, "t, with comma", rows[2][1])
	assert.Equal(t, "domestic", rows[2][5])
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("YML")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)
	_, err = ParseFormat("xml")
	assert.Error(t, err)
}

func TestRecordJSON_ImportsBack(t *testing.T) {
	r := sample()[0]
	text, err := RecordJSON(r)
	require.NoError(t, err)

	back, err := importer.Parse(text, time.Now())
	require.NoError(t, err)
	require.Len(t, back, 1)

	back[0].ID = r.ID
	assert.Equal(t, r, back[0])
}
