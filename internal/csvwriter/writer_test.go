package csvwriter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calflora/geophytes/internal/types"
)

var testRecords = []types.GeophyteRecord{
	{
		Family:     "Iridaceae",
		Genus:      "Iris",
		Species:    "Iris douglasiana",
		CommonName: "Douglas Iris",
		URL:        "https://calscape.org/Iris-douglasiana",
	},
	{
		Family:     "Iridaceae",
		Genus:      "Iris",
		Species:    "Iris douglasiana 'Canyon Snow'",
		CommonName: "Canyon Snow Iris",
		URL:        "https://calscape.org/Iris-douglasiana-Canyon-Snow",
	},
	{
		Family:     "Liliaceae",
		Genus:      "Calochortus",
		Species:    "Calochortus albus",
		CommonName: "Fairy Lantern",
		URL:        "https://calscape.org/Calochortus-albus",
	},
}

func TestGenerate(t *testing.T) {
	data, rows, err := Generate(testRecords, DefaultGenerateOptions())
	require.NoError(t, err)

	assert.Equal(t, 3, rows)
	assert.Equal(t,
		"family,genus,species,common_name,url\n"+
			"Iridaceae,Iris,Iris douglasiana,Douglas Iris,https://calscape.org/Iris-douglasiana\n"+
			"Iridaceae,Iris,Iris douglasiana 'Canyon Snow',Canyon Snow Iris,https://calscape.org/Iris-douglasiana-Canyon-Snow\n"+
			"Liliaceae,Calochortus,Calochortus albus,Fairy Lantern,https://calscape.org/Calochortus-albus\n",
		string(data))
}

func TestGenerateExcludeCultivars(t *testing.T) {
	data, rows, err := Generate(testRecords, GenerateOptions{ExcludeCultivars: true})
	require.NoError(t, err)

	assert.Equal(t, 2, rows)
	assert.NotContains(t, string(data), "Canyon Snow")
}

func TestGenerateQuotesFieldsWithCommas(t *testing.T) {
	records := []types.GeophyteRecord{{
		Family:     "Liliaceae",
		Genus:      "Fritillaria",
		Species:    "Fritillaria affinis",
		CommonName: "Checker Lily, Mission Bells",
		URL:        "https://calscape.org/Fritillaria-affinis",
	}}

	data, rows, err := Generate(records, DefaultGenerateOptions())
	require.NoError(t, err)
	assert.Equal(t, 1, rows)
	assert.Contains(t, string(data), `"Checker Lily, Mission Bells"`)
}

func TestGenerateEmpty(t *testing.T) {
	data, rows, err := Generate(nil, DefaultGenerateOptions())
	require.NoError(t, err)
	assert.Zero(t, rows)
	assert.Nil(t, data)
}

func TestWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "geophytes.csv")

	rows, err := Write(path, testRecords, DefaultGenerateOptions())
	require.NoError(t, err)
	assert.Equal(t, 3, rows)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Calochortus albus")
}

func TestWriteEmptyCreatesNoFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "geophytes.csv")

	rows, err := Write(path, nil, DefaultGenerateOptions())
	require.NoError(t, err)
	assert.Zero(t, rows)

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestWriteAllCultivarsExcludedCreatesNoFile(t *testing.T) {
	records := []types.GeophyteRecord{{
		Family:  "Iridaceae",
		Genus:   "Iris",
		Species: "Iris 'Canyon Snow'",
	}}
	path := filepath.Join(t.TempDir(), "geophytes.csv")

	rows, err := Write(path, records, GenerateOptions{ExcludeCultivars: true})
	require.NoError(t, err)
	assert.Zero(t, rows)

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}
