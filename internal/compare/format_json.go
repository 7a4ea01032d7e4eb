package compare

import (
	"fmt"
	"sort"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

// JSONFormatter formats comparison results as JSON
type JSONFormatter struct {
	Pretty bool // If true, format with indentation
}

// comparisonDocument is the JSON shape: the comparison set plus a cost ranking
type comparisonDocument struct {
	*ComparisonSet
	ScenarioCount int              `json:"scenarioCount"`
	Ranking       []rankedScenario `json:"ranking"`
}

type rankedScenario struct {
	Rank             int             `json:"rank"`
	ScenarioName     string          `json:"scenarioName"`
	FinalYear        int             `json:"finalYear"`
	FinalPMPM        decimal.Decimal `json:"finalPMPM"`
	FinalTotalClaims decimal.Decimal `json:"finalTotalClaims"`
}

// Format generates JSON output for comparison results. Ranking lists the projected
// scenarios cheapest final-year PMPM first; failed scenarios are not ranked.
func (jf *JSONFormatter) Format(compSet *ComparisonSet) (string, error) {
	results := compSet.Results()
	doc := comparisonDocument{
		ComparisonSet: compSet,
		ScenarioCount: len(results) + len(compSet.Failed),
		Ranking:       make([]rankedScenario, 0, len(results)),
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].FinalPMPM.LessThan(results[j].FinalPMPM)
	})
	for i, r := range results {
		doc.Ranking = append(doc.Ranking, rankedScenario{
			Rank:             i + 1,
			ScenarioName:     r.ScenarioName,
			FinalYear:        r.FinalYear,
			FinalPMPM:        r.FinalPMPM,
			FinalTotalClaims: r.FinalTotalClaims,
		})
	}

	var data []byte
	var err error
	if jf.Pretty {
		data, err = json.MarshalIndent(doc, "", "  ")
	} else {
		data, err = json.Marshal(doc)
	}
	if err != nil {
		return "", fmt.Errorf("failed to marshal comparison: %w", err)
	}

	return string(data), nil
}
