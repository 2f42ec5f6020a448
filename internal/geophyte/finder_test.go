package geophyte

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calflora/geophytes/internal/calscape"
	"github.com/calflora/geophytes/internal/config"
	"github.com/calflora/geophytes/internal/inat"
	"github.com/calflora/geophytes/internal/types"
)

// nopLogger silences finder output in tests.
type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func plant(name, common string) types.Plant {
	return types.Plant{
		BotanicalName: name,
		CommonName:    common,
		URL:           "https://calscape.org/" + name,
	}
}

func testTaxonomy() *inat.Taxonomy {
	return inat.NewTaxonomy(map[string]string{
		"Calochortus": "Liliaceae",
		"Fritillaria": "Liliaceae",
		"Iris":        "Iridaceae",
		"Brodiaea":    "Asparagaceae",
		"Triteleia":   "Asparagaceae",
		"Quercus":     "Fagaceae",
		"Allium":      "Amaryllidaceae",
	})
}

func run(t *testing.T, plants *calscape.PlantList, criteria config.Criteria) Result {
	t.Helper()
	finder := New(plants, testTaxonomy(), criteria)
	finder.SetLogger(nopLogger{})
	return finder.Run()
}

func TestRunFamilyCriteria(t *testing.T) {
	plants := calscape.NewPlantList(
		plant("Calochortus albus", "Fairy Lantern"),
		plant("Iris douglasiana", "Douglas Iris"),
		plant("Quercus agrifolia", "Coast Live Oak"),
	)

	result := run(t, plants, config.Criteria{Families: []string{"Liliaceae", "Iridaceae"}})

	require.Len(t, result.Records, 2)
	assert.Equal(t, "Iris douglasiana", result.Records[0].Species)
	assert.Equal(t, "Calochortus albus", result.Records[1].Species)
	assert.Equal(t, 2, result.Stats.Geophytes)
	assert.Equal(t, 2, result.Stats.Families)
	assert.Equal(t, 3, result.Stats.PlantsScanned)
}

func TestRunGenusCriteria(t *testing.T) {
	plants := calscape.NewPlantList(
		plant("Brodiaea californica", "California Brodiaea"),
		plant("Triteleia laxa", "Ithuriel's Spear"),
		plant("Quercus agrifolia", "Coast Live Oak"),
	)

	// Asparagaceae as a whole is not a geophyte family; only the listed
	// Brodiaeoideae genera qualify.
	result := run(t, plants, config.Criteria{Genera: []string{"Brodiaea", "Triteleia"}})

	require.Len(t, result.Records, 2)
	for _, record := range result.Records {
		assert.Equal(t, "Asparagaceae", record.Family)
	}
}

func TestRunAbsentCriteriaGenusIsNoOp(t *testing.T) {
	plants := calscape.NewPlantList(plant("Quercus agrifolia", "Coast Live Oak"))

	result := run(t, plants, config.Criteria{Genera: []string{"Bessera", "Dandya"}})

	assert.Empty(t, result.Records)
	assert.Equal(t, 0, result.Stats.Geophytes)
}

func TestRunOverlappingCriteriaDeduplicates(t *testing.T) {
	plants := calscape.NewPlantList(plant("Calochortus albus", "Fairy Lantern"))

	result := run(t, plants, config.Criteria{
		Families: []string{"Liliaceae"},
		Genera:   []string{"Calochortus"},
	})

	require.Len(t, result.Records, 1)
	assert.Equal(t, 1, result.Stats.Geophytes)
}

func TestRunCultivarsFollowParentGenus(t *testing.T) {
	plants := calscape.NewPlantList(
		plant("Iris douglasiana", "Douglas Iris"),
		plant("Iris douglasiana 'Canyon Snow'", "Canyon Snow Iris"),
	)

	result := run(t, plants, config.Criteria{Families: []string{"Iridaceae"}})

	require.Len(t, result.Records, 2)
	assert.Equal(t, 2, result.Stats.Geophytes)
	assert.Equal(t, 1, result.Stats.SpeciesOnly)
	assert.Equal(t, 1, result.Stats.Genera)
}

func TestRunUnknownGenusFiledUnderUnknownFamily(t *testing.T) {
	plants := calscape.NewPlantList(plant("Bloomeria crocea", "Common Goldenstar"))

	// Bloomeria is in the criteria but absent from the test taxonomy.
	result := run(t, plants, config.Criteria{Genera: []string{"Bloomeria"}})

	require.Len(t, result.Records, 1)
	assert.Equal(t, UnknownFamily, result.Records[0].Family)
	assert.Equal(t, []string{"Bloomeria"}, result.Stats.UnknownFamilyGenera)
}

func TestRunRecordOrderIsDeterministic(t *testing.T) {
	plants := calscape.NewPlantList(
		plant("Fritillaria affinis", "Checker Lily"),
		plant("Calochortus albus", "Fairy Lantern"),
		plant("Calochortus amabilis", "Diogenes' Lantern"),
		plant("Iris douglasiana", "Douglas Iris"),
	)

	result := run(t, plants, config.Criteria{Families: []string{"Liliaceae", "Iridaceae"}})

	var got []string
	for _, record := range result.Records {
		got = append(got, record.Family+"/"+record.Species)
	}
	assert.Equal(t, []string{
		"Iridaceae/Iris douglasiana",
		"Liliaceae/Calochortus albus",
		"Liliaceae/Calochortus amabilis",
		"Liliaceae/Fritillaria affinis",
	}, got)
}

func TestRunRecordsCarryCommonNameAndURL(t *testing.T) {
	plants := calscape.NewPlantList(plant("Allium unifolium", "One-leaf Onion"))

	result := run(t, plants, config.Criteria{Genera: []string{"Allium"}})

	require.Len(t, result.Records, 1)
	record := result.Records[0]
	assert.Equal(t, "Amaryllidaceae", record.Family)
	assert.Equal(t, "Allium", record.Genus)
	assert.Equal(t, "One-leaf Onion", record.CommonName)
	assert.Equal(t, "https://calscape.org/Allium unifolium", record.URL)
}

func TestDefaultCriteriaMatchTheRundelLists(t *testing.T) {
	criteria := config.DefaultCriteria()

	assert.Contains(t, criteria.Families, "Liliaceae")
	assert.Contains(t, criteria.Families, "Iridaceae")
	assert.Contains(t, criteria.Families, "Tecophilaeaceae")
	assert.Contains(t, criteria.Genera, "Brodiaea")
	assert.Contains(t, criteria.Genera, "Chlorogalum")
	assert.Contains(t, criteria.Genera, "Allium")
}

func TestStatsSummary(t *testing.T) {
	stats := Stats{Geophytes: 12, SpeciesOnly: 10, Genera: 5, Families: 3}
	assert.Equal(t,
		"Found 12 geophytes, 10 excluding cultivars\n5 genera across 3 families",
		stats.Summary())
}
