package output

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/rgehrsitz/claimtrend/internal/calculation"
	"github.com/rgehrsitz/claimtrend/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Report is everything an export needs: the historical input and every scenario run
type Report struct {
	Records     []domain.ClaimsRecord
	Runs        []calculation.ScenarioRun
	GeneratedAt time.Time
}

// NewReport bundles records and runs stamped with the current time
func NewReport(records []domain.ClaimsRecord, runs []calculation.ScenarioRun) *Report {
	return &Report{Records: records, Runs: runs, GeneratedAt: time.Now()}
}

// Formatter renders a report into bytes
type Formatter interface {
	Name() string
	Format(report *Report) ([]byte, error)
}

// FormatterFunc adapts a function to the Formatter interface
type FormatterFunc struct {
	ID string
	F  func(report *Report) ([]byte, error)
}

func (f FormatterFunc) Name() string { return f.ID }

func (f FormatterFunc) Format(report *Report) ([]byte, error) { return f.F(report) }

var formatters = map[string]Formatter{
	"processed-csv": ProcessedCSV{},
	"forward-csv":   ForwardCSV{},
	"yaml":          YAMLFormatter{},
}

var formatAliases = map[string]string{
	"processed": "processed-csv",
	"csv":       "processed-csv",
	"forward":   "forward-csv",
	"yml":       "yaml",
}

// GetFormatterByName returns the formatter registered under name or alias, or nil
func GetFormatterByName(name string) Formatter {
	if canonical, ok := formatAliases[name]; ok {
		name = canonical
	}
	return formatters[name]
}

// AvailableFormatterNames lists the canonical formatter names
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(formatters))
	for name := range formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases lists the accepted aliases
func AvailableFormatAliases() []string {
	aliases := make([]string, 0, len(formatAliases))
	for alias := range formatAliases {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)
	return aliases
}

// WriteFormatted writes the report to a timestamped file in the working directory
func WriteFormatted(f Formatter, report *Report, ext string) (string, error) {
	stamp := report.GeneratedAt
	if stamp.IsZero() {
		stamp = time.Now()
	}
	filename := fmt.Sprintf("claims_projection_%s.%s", stamp.Format("20060102_150405"), ext)
	if err := WriteFile(f, report, filename); err != nil {
		return "", err
	}
	return filename, nil
}

// WriteFile writes the formatted report to path
func WriteFile(f Formatter, report *Report, path string) error {
	data, err := f.Format(report)
	if err != nil {
		return fmt.Errorf("failed to format %s report: %w", f.Name(), err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// YAMLFormatter dumps successful scenario results as YAML
type YAMLFormatter struct{}

func (y YAMLFormatter) Name() string { return "yaml" }

type yamlScenario struct {
	Name                 string     `yaml:"name"`
	InflationAdjustment  string     `yaml:"inflation_adjustment"`
	AgeIncrement         string     `yaml:"age_increment"`
	ProjectedAge         string     `yaml:"projected_age,omitempty"`
	WeightedBaselinePMPM string     `yaml:"weighted_baseline_pmpm,omitempty"`
	WeightedBaselinePMPY string     `yaml:"weighted_baseline_pmpy,omitempty"`
	Forward              []yamlYear `yaml:"forward,omitempty"`
	Error                string     `yaml:"error,omitempty"`
}

type yamlYear struct {
	Year                 int    `yaml:"year"`
	ProjectedAge         string `yaml:"projected_age"`
	RiskTrend            string `yaml:"risk_trend,omitempty"`
	InflationFactor      string `yaml:"inflation_factor,omitempty"`
	PMPM                 string `yaml:"pmpm"`
	PMPY                 string `yaml:"pmpy"`
	ProjectedTotalClaims string `yaml:"projected_total_claims"`
}

func (y YAMLFormatter) Format(report *Report) ([]byte, error) {
	doc := struct {
		GeneratedAt string         `yaml:"generated_at"`
		Records     int            `yaml:"records"`
		Scenarios   []yamlScenario `yaml:"scenarios"`
	}{
		GeneratedAt: report.GeneratedAt.Format(time.RFC3339),
		Records:     len(report.Records),
	}

	for _, run := range report.Runs {
		sc := yamlScenario{
			Name:                run.Config.Name,
			InflationAdjustment: run.Config.InflationAdjustment.String(),
			AgeIncrement:        string(run.Config.AgeIncrement),
		}
		if run.Err != nil {
			sc.Error = run.Err.Error()
			doc.Scenarios = append(doc.Scenarios, sc)
			continue
		}
		sc.ProjectedAge = run.Result.ProjectedAge.String()
		sc.WeightedBaselinePMPM = run.Result.WeightedBaselinePMPM.StringFixed(2)
		sc.WeightedBaselinePMPY = run.Result.WeightedBaselinePMPY.StringFixed(2)
		for _, fy := range run.Result.Forward {
			sc.Forward = append(sc.Forward, yamlYear{
				Year:                 fy.Year,
				ProjectedAge:         fy.ProjectedAge.String(),
				RiskTrend:            optionalDecimal(fy.RiskTrend),
				InflationFactor:      optionalDecimal(fy.InflationFactor),
				PMPM:                 fy.PMPM.StringFixed(2),
				PMPY:                 fy.PMPY.StringFixed(2),
				ProjectedTotalClaims: fy.ProjectedTotalClaims.StringFixed(2),
			})
		}
		doc.Scenarios = append(doc.Scenarios, sc)
	}

	return yaml.Marshal(doc)
}

// FormatCurrency formats a decimal as currency
func FormatCurrency(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(2)
}

// FormatPercentage formats a rate (0.05) as a percentage (5.00%)
func FormatPercentage(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).StringFixed(2) + "%"
}
