package validation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/calflora/geophytes/internal/config"
)

// writeInputs creates a minimal valid export/taxa pair and returns a
// config pointing at them.
func writeInputs(t *testing.T) *config.MainConfig {
	t.Helper()
	dir := t.TempDir()

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetCellValue(sheet, "A6", "Botanical Name"))
	require.NoError(t, f.SetCellValue(sheet, "B6", "Common Name"))
	require.NoError(t, f.SetCellValue(sheet, "C6", "Plant Url"))
	require.NoError(t, f.SetCellValue(sheet, "A7", "Iris douglasiana"))
	xlsxPath := filepath.Join(dir, "export.xlsx")
	require.NoError(t, f.SaveAs(xlsxPath))
	require.NoError(t, f.Close())

	taxaPath := filepath.Join(dir, "taxa.csv")
	taxa := "kingdom,taxonRank,family,scientificName\n" +
		"Plantae,genus,Iridaceae,Iris\n" +
		"Plantae,genus,Liliaceae,Calochortus\n"
	require.NoError(t, os.WriteFile(taxaPath, []byte(taxa), 0644))

	cfg := &config.MainConfig{
		CalscapePath: xlsxPath,
		TaxaPath:     taxaPath,
		Calscape: config.CalscapeSettings{
			HeaderRow:           6,
			BotanicalNameHeader: "Botanical Name",
			CommonNameHeader:    "Common Name",
			URLHeader:           "Plant Url",
		},
	}
	return cfg
}

func TestValidateRunAllGood(t *testing.T) {
	cfg := writeInputs(t)
	criteria := config.Criteria{Families: []string{"Iridaceae"}}

	result := ValidateRun(cfg, criteria)

	assert.True(t, result.IsValid())
	assert.Zero(t, result.ErrorCount)
	assert.Zero(t, result.WarningCount)
}

func TestValidateRunMissingPaths(t *testing.T) {
	cfg := &config.MainConfig{}
	result := ValidateRun(cfg, config.DefaultCriteria())

	assert.False(t, result.IsValid())
	assert.Equal(t, 2, result.ErrorCount)
}

func TestValidateRunMissingFiles(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.MainConfig{
		CalscapePath: filepath.Join(dir, "nope.xlsx"),
		TaxaPath:     filepath.Join(dir, "nope.csv"),
	}

	result := ValidateRun(cfg, config.DefaultCriteria())

	assert.False(t, result.IsValid())
	assert.Equal(t, 2, result.ErrorCount)
}

func TestValidateRunBadCriteria(t *testing.T) {
	cfg := writeInputs(t)

	result := ValidateRun(cfg, config.Criteria{})

	assert.False(t, result.IsValid())
	require.NotEmpty(t, result.Problems)
	assert.Equal(t, "criteria", result.Problems[0].Source)
}

func TestValidateRunWarnsOnUnknownCriteriaFamily(t *testing.T) {
	cfg := writeInputs(t)
	criteria := config.Criteria{Families: []string{"Iridaceae", "Tecophilaeaceae"}}

	result := ValidateRun(cfg, criteria)

	assert.True(t, result.IsValid())
	assert.Equal(t, 1, result.WarningCount)
	found := false
	for _, problem := range result.Problems {
		if problem.Severity == SeverityWarning {
			assert.Contains(t, problem.Message, "Tecophilaeaceae")
			found = true
		}
	}
	assert.True(t, found)
}

func TestValidateRunBadExportHeaders(t *testing.T) {
	cfg := writeInputs(t)
	cfg.Calscape.BotanicalNameHeader = "Scientific Name"

	result := ValidateRun(cfg, config.Criteria{Families: []string{"Iridaceae"}})

	assert.False(t, result.IsValid())
}

func TestValidationErrorString(t *testing.T) {
	err := &ValidationError{
		Severity: SeverityError,
		Source:   "taxa",
		Message:  "missing column",
	}
	assert.Equal(t, "[ERROR] taxa: missing column", err.Error())
}
