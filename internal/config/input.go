package config

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rgehrsitz/claimtrend/internal/calculation"
	"github.com/rgehrsitz/claimtrend/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Column names of the claims CSV, in their canonical order
var RecordColumns = []string{
	"Year", "Total Claims", "High-Cost", "Non-Recurring", "Members", "Average Age", "Inflation", "Weight",
}

// InputParser handles parsing of claims data, scenario and aging table files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadRecordsFromFile loads and validates claims records from a CSV file
func (ip *InputParser) LoadRecordsFromFile(filename string) ([]domain.ClaimsRecord, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	defer f.Close()

	records, err := ip.ParseRecords(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return records, nil
}

// ParseRecords decodes claims CSV with a header row. Columns are matched by name
// (case, spaces, hyphens and underscores ignored) so their order is free.
func (ip *InputParser) ParseRecords(r io.Reader) ([]domain.ClaimsRecord, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: file is empty", calculation.ErrMalformedRecordSequence)
		}
		return nil, fmt.Errorf("failed to parse CSV header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[normalizeColumn(name)] = i
	}
	columns := make([]int, len(RecordColumns))
	for i, name := range RecordColumns {
		col, ok := index[normalizeColumn(name)]
		if !ok {
			return nil, fmt.Errorf("%w: missing column %q", calculation.ErrMalformedRecordSequence, name)
		}
		columns[i] = col
	}

	var records []domain.ClaimsRecord
	for row := 1; ; row++ {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse CSV row %d: %w", row, err)
		}
		if isBlankRow(fields) {
			continue
		}

		rec, err := parseRecordRow(fields, columns)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", calculation.ErrMalformedRecordSequence, row, err)
		}
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no data rows", calculation.ErrMalformedRecordSequence)
	}

	if err := ip.ValidateRecords(records); err != nil {
		return nil, err
	}
	return records, nil
}

func parseRecordRow(fields []string, columns []int) (domain.ClaimsRecord, error) {
	values := make([]decimal.Decimal, len(columns))
	for i, col := range columns {
		if col >= len(fields) {
			return domain.ClaimsRecord{}, fmt.Errorf("column %q is missing", RecordColumns[i])
		}
		v, err := parseNumber(fields[col])
		if err != nil {
			return domain.ClaimsRecord{}, fmt.Errorf("column %q: %v", RecordColumns[i], err)
		}
		values[i] = v
	}

	year, members := values[0], values[4]
	if !year.Equal(year.Truncate(0)) {
		return domain.ClaimsRecord{}, fmt.Errorf("column %q: %s is not a whole year", RecordColumns[0], year)
	}
	if !members.Equal(members.Truncate(0)) {
		return domain.ClaimsRecord{}, fmt.Errorf("column %q: %s is not a whole member count", RecordColumns[4], members)
	}

	return domain.ClaimsRecord{
		Year:         int(year.IntPart()),
		TotalClaims:  values[1],
		HighCost:     values[2],
		NonRecurring: values[3],
		Members:      int(members.IntPart()),
		AverageAge:   values[5],
		Inflation:    values[6],
		Weight:       values[7],
	}, nil
}

// parseNumber accepts plain numbers plus thousands separators, a leading $ and
// a trailing % (which divides by 100).
func parseNumber(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, fmt.Errorf("value is blank")
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimPrefix(s, "$")

	percent := strings.HasSuffix(s, "%")
	s = strings.TrimSuffix(s, "%")

	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%q is not a number", raw)
	}
	if percent {
		d = d.Div(decimal.NewFromInt(100))
	}
	return d, nil
}

func normalizeColumn(name string) string {
	r := strings.NewReplacer(" ", "", "-", "", "_", "", "\ufeff", "")
	return strings.ToLower(r.Replace(strings.TrimSpace(name)))
}

func isBlankRow(fields []string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// ValidateRecords checks every record against the schema constraints
func (ip *InputParser) ValidateRecords(records []domain.ClaimsRecord) error {
	if len(records) == 0 {
		return fmt.Errorf("%w: no records", calculation.ErrMalformedRecordSequence)
	}
	for i := range records {
		if err := validate.Struct(records[i]); err != nil {
			return fmt.Errorf("%w: record %d (year %d): %s",
				calculation.ErrMalformedRecordSequence, i, records[i].Year, describeValidation(err))
		}
	}
	return nil
}

// LoadScenariosFromFile loads and validates a YAML scenario set
func (ip *InputParser) LoadScenariosFromFile(filename string) ([]domain.ScenarioConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.ParseScenarios(data)
}

// ParseScenarios decodes and validates a YAML scenario set
func (ip *InputParser) ParseScenarios(data []byte) ([]domain.ScenarioConfig, error) {
	var file domain.ScenarioFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := ip.ValidateScenarios(file.Scenarios); err != nil {
		return nil, fmt.Errorf("scenario validation failed: %w", err)
	}
	return file.Scenarios, nil
}

// ValidateScenarios validates a scenario list
func (ip *InputParser) ValidateScenarios(scenarios []domain.ScenarioConfig) error {
	if len(scenarios) == 0 {
		return fmt.Errorf("no scenarios provided")
	}

	seen := make(map[string]bool, len(scenarios))
	for i, sc := range scenarios {
		if err := validate.Struct(sc); err != nil {
			return fmt.Errorf("scenario %d: %s", i, describeValidation(err))
		}
		if seen[sc.Name] {
			return fmt.Errorf("scenario %d: duplicate name %q", i, sc.Name)
		}
		seen[sc.Name] = true
		if sc.InflationAdjustment.LessThanOrEqual(decimal.NewFromInt(-1)) {
			return fmt.Errorf("scenario %d (%s): inflation adjustment must be greater than -100%%", i, sc.Name)
		}
	}
	return nil
}

// LoadAgingFactorsFromFile loads a custom aging curve from YAML
func (ip *InputParser) LoadAgingFactorsFromFile(filename string) (*calculation.AgingFactorTable, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.ParseAgingFactors(data)
}

// ParseAgingFactors decodes and validates a YAML aging curve
func (ip *InputParser) ParseAgingFactors(data []byte) (*calculation.AgingFactorTable, error) {
	var file domain.AgingFactorFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	table, err := calculation.NewAgingFactorTable(file.AgingFactors)
	if err != nil {
		return nil, fmt.Errorf("aging table validation failed: %w", err)
	}
	return table, nil
}

// MarshalScenarios renders a scenario set as YAML
func MarshalScenarios(scenarios []domain.ScenarioConfig) ([]byte, error) {
	return yaml.Marshal(domain.ScenarioFile{Scenarios: scenarios})
}
