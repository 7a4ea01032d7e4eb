package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/shopspring/decimal"
)

// ProcessedCSV writes the per-record trending detail, one row per scenario and
// historical year. Failed scenarios are omitted.
type ProcessedCSV struct{}

func (p ProcessedCSV) Name() string { return "processed-csv" }

func (p ProcessedCSV) Format(report *Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{
		"Scenario", "Year", "Total Claims", "High-Cost", "Non-Recurring", "Members", "Average Age",
		"Inflation", "Weight", "Adjusted Claims", "Medical Trend to PY", "Member Risk Trend to PY",
		"Combined Trend Factor", "Projected Trended Claims", "Projected PMPM", "Projected PMPY",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, run := range report.Runs {
		if run.Err != nil || run.Result == nil {
			continue
		}
		for i, pr := range run.Result.Records {
			if i >= len(report.Records) {
				break
			}
			rec := report.Records[i]
			row := []string{
				run.Config.Name,
				strconv.Itoa(pr.Year),
				rec.TotalClaims.StringFixed(2),
				rec.HighCost.StringFixed(2),
				rec.NonRecurring.StringFixed(2),
				strconv.Itoa(rec.Members),
				rec.AverageAge.String(),
				rec.Inflation.String(),
				rec.Weight.String(),
				pr.AdjustedClaims.StringFixed(2),
				pr.MedicalTrendToPY.String(),
				pr.MemberRiskTrendToPY.String(),
				pr.CombinedTrendFactor.String(),
				pr.ProjectedTrendedClaims.StringFixed(2),
				pr.ProjectedPMPM.StringFixed(2),
				pr.ProjectedPMPY.StringFixed(2),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ForwardCSV writes one row per scenario and forward year, with the failure
// message for scenarios that could not be projected.
type ForwardCSV struct{}

func (f ForwardCSV) Name() string { return "forward-csv" }

func (f ForwardCSV) Format(report *Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{
		"Scenario", "Year", "Projected Age", "Risk Trend", "Inflation Factor", "PMPM", "PMPY",
		"Projected Total Claims", "Error",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, run := range report.Runs {
		if run.Err != nil || run.Result == nil {
			msg := "no result"
			if run.Err != nil {
				msg = run.Err.Error()
			}
			if err := w.Write([]string{run.Config.Name, "", "", "", "", "", "", "", msg}); err != nil {
				return nil, err
			}
			continue
		}
		for _, fy := range run.Result.Forward {
			row := []string{
				run.Config.Name,
				strconv.Itoa(fy.Year),
				fy.ProjectedAge.String(),
				optionalDecimal(fy.RiskTrend),
				optionalDecimal(fy.InflationFactor),
				fy.PMPM.StringFixed(2),
				fy.PMPY.StringFixed(2),
				fy.ProjectedTotalClaims.StringFixed(2),
				"",
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func optionalDecimal(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.String()
}
