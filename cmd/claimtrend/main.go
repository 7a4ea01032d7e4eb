package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"strings"

	"github.com/rgehrsitz/claimtrend/internal/breakeven"
	"github.com/rgehrsitz/claimtrend/internal/calculation"
	"github.com/rgehrsitz/claimtrend/internal/compare"
	"github.com/rgehrsitz/claimtrend/internal/config"
	"github.com/rgehrsitz/claimtrend/internal/domain"
	"github.com/rgehrsitz/claimtrend/internal/output"
	"github.com/rgehrsitz/claimtrend/internal/transform"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// simpleCLILogger implements calculation.Logger using the standard log package
type simpleCLILogger struct{}

func (simpleCLILogger) Debugf(format string, args ...any) { log.Printf("DEBUG: "+format, args...) }
func (simpleCLILogger) Infof(format string, args ...any)  { log.Printf("INFO: "+format, args...) }
func (simpleCLILogger) Warnf(format string, args ...any)  { log.Printf("WARN: "+format, args...) }
func (simpleCLILogger) Errorf(format string, args ...any) { log.Printf("ERROR: "+format, args...) }

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "claimtrend %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.Main.Path + " " + bi.Main.Version
	}
	return ""
}

func newRootCmd(settings config.Settings) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "claimtrend",
		Short:         "Medical claims PMPM/PMPY trend projector",
		Long:          "Projects per-member claims cost from historical policy years and compares inflation and member-aging scenarios",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(projectCmd(settings))
	rootCmd.AddCommand(validateCmd(settings))
	rootCmd.AddCommand(budgetCmd(settings))
	rootCmd.AddCommand(sensitivityCmd(settings))
	rootCmd.AddCommand(agingCmd(settings))
	rootCmd.AddCommand(scenariosCmd())
	rootCmd.AddCommand(versionCmd())
	return rootCmd
}

func projectCmd(settings config.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project [records.csv]",
		Short: "Project PMPM/PMPY for every scenario",
		Long: `Trend historical claims to the first projected policy year, weight them into a
baseline PMPM and project the baseline forward for each scenario.

Examples:
  claimtrend project claims.csv
  claimtrend project claims.csv --scenarios scenarios.yaml --base "Scenario 2 - Lower Inflation, Static Age"
  claimtrend project claims.csv --format csv --export processed_claims.csv
  claimtrend project claims.csv --what-if "shift_inflation:by=0.005" --what-if "set_age_increment:strategy=static;rename:name=Frozen"
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			recordsPath := args[0]
			parser := config.NewInputParser()

			records, err := parser.LoadRecordsFromFile(recordsPath)
			if err != nil {
				return err
			}

			scenarios, err := loadScenarios(cmd, parser)
			if err != nil {
				return err
			}

			engine, err := newEngine(cmd, parser)
			if err != nil {
				return err
			}

			baseScenarioName, _ := cmd.Flags().GetString("base")
			whatIfs, _ := cmd.Flags().GetStringArray("what-if")
			scenarios, err = appendWhatIfs(scenarios, baseScenarioName, whatIfs)
			if err != nil {
				return err
			}

			compSet, err := compare.NewCompareEngine(engine).Compare(records, scenarios, compare.CompareOptions{
				BaseScenarioName: baseScenarioName,
				RecordsPath:      recordsPath,
			})
			if err != nil {
				return err
			}

			outputFormat, _ := cmd.Flags().GetString("format")
			rendered, err := renderComparison(compSet, outputFormat)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), rendered)

			exportPath, _ := cmd.Flags().GetString("export")
			if exportPath != "" {
				exportFormat, _ := cmd.Flags().GetString("export-format")
				f := output.GetFormatterByName(exportFormat)
				if f == nil {
					return fmt.Errorf("unknown export format %q (available: %s)",
						exportFormat, strings.Join(output.AvailableFormatterNames(), ", "))
				}
				if err := output.WriteFile(f, output.NewReport(records, compSet.Runs), exportPath); err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Exported %s data to %s\n", f.Name(), exportPath)
			}
			return nil
		},
	}

	addInputFlags(cmd, settings)
	cmd.Flags().StringP("format", "f", settings.Format, "Output format: table, csv, json")
	cmd.Flags().StringP("base", "b", "", "Base scenario name (defaults to the first scenario)")
	cmd.Flags().StringArray("what-if", nil, "Derive an extra scenario from the base: 'name:key=value[;name:key=value]' using "+
		strings.Join(transform.NewTransformRegistry().List(), ", "))
	cmd.Flags().StringP("export", "e", "", "Write processed per-record data to this file")
	cmd.Flags().String("export-format", "processed-csv", "Export format: "+strings.Join(output.AvailableFormatterNames(), ", "))
	cmd.Flags().Bool("debug", settings.Debug, "Log detailed calculations to stderr")
	return cmd
}

func validateCmd(settings config.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [records.csv]",
		Short: "Validate a claims data file and optional scenario/aging files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parser := config.NewInputParser()

			records, err := parser.LoadRecordsFromFile(args[0])
			if err != nil {
				return err
			}
			scenarios, err := loadScenarios(cmd, parser)
			if err != nil {
				return err
			}
			if _, err := newEngine(cmd, parser); err != nil {
				return err
			}

			first, last := records[0], records[len(records)-1]
			fmt.Fprintf(cmd.OutOrStdout(), "Claims data is valid: %d records (%d-%d), %d scenarios\n",
				len(records), first.Year, last.Year, len(scenarios))
			return nil
		},
	}
	addInputFlags(cmd, settings)
	return cmd
}

func budgetCmd(settings config.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budget [records.csv] [target]",
		Short: "Solve for the inflation adjustment that meets a final-year budget",
		Long: `Find the inflation adjustment at which a scenario's final projected year
reaches the target PMPM (or total claims with --target total).

Examples:
  claimtrend budget claims.csv 90
  claimtrend budget claims.csv 1300000 --target total --scenario "Scenario 2 - Lower Inflation, Static Age"
`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			parser := config.NewInputParser()

			records, err := parser.LoadRecordsFromFile(args[0])
			if err != nil {
				return err
			}
			targetValue, err := decimal.NewFromString(strings.TrimPrefix(args[1], "$"))
			if err != nil {
				return fmt.Errorf("invalid target %q: %w", args[1], err)
			}

			targetName, _ := cmd.Flags().GetString("target")
			target, err := breakeven.ParseBudgetTarget(targetName)
			if err != nil {
				return err
			}

			scenarios, err := loadScenarios(cmd, parser)
			if err != nil {
				return err
			}
			scenarioName, _ := cmd.Flags().GetString("scenario")
			base, err := findScenario(scenarios, scenarioName)
			if err != nil {
				return err
			}

			engine, err := newEngine(cmd, parser)
			if err != nil {
				return err
			}

			constraints := breakeven.DefaultConstraints()
			if cmd.Flags().Changed("min-adjustment") {
				v, _ := cmd.Flags().GetFloat64("min-adjustment")
				constraints.MinAdjustment = decimal.NewFromFloat(v)
			}
			if cmd.Flags().Changed("max-adjustment") {
				v, _ := cmd.Flags().GetFloat64("max-adjustment")
				constraints.MaxAdjustment = decimal.NewFromFloat(v)
			}

			result, err := breakeven.NewDefaultSolver(engine).Solve(context.Background(), breakeven.SolveRequest{
				Records:      records,
				BaseScenario: base,
				Target:       target,
				TargetValue:  targetValue,
				Constraints:  constraints,
			})
			if err != nil {
				return err
			}

			outputFormat, _ := cmd.Flags().GetString("format")
			switch outputFormat {
			case "table", "":
				fmt.Fprint(cmd.OutOrStdout(), (&breakeven.TableFormatter{}).Format(result))
			case "json":
				out, err := (&breakeven.JSONFormatter{Pretty: true}).Format(result)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), out)
			default:
				return fmt.Errorf("unsupported format %q (use table or json)", outputFormat)
			}
			return nil
		},
	}

	addInputFlags(cmd, settings)
	cmd.Flags().String("target", string(breakeven.TargetFinalPMPM), "Budget target: pmpm or total")
	cmd.Flags().String("scenario", "", "Scenario to solve (defaults to the first scenario)")
	cmd.Flags().Float64("min-adjustment", -0.05, "Lowest inflation adjustment to try")
	cmd.Flags().Float64("max-adjustment", 0.10, "Highest inflation adjustment to try")
	cmd.Flags().StringP("format", "f", "table", "Output format: table, json")
	cmd.Flags().Bool("debug", settings.Debug, "Log detailed calculations to stderr")
	return cmd
}

func sensitivityCmd(settings config.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sensitivity [records.csv]",
		Short: "Sweep the inflation adjustment around a scenario",
		Long: `Re-run a scenario with offsets added to its inflation adjustment and report
the final projected PMPM at each step. With --matrix the sweep is repeated for
every age increment strategy.

Examples:
  claimtrend sensitivity claims.csv
  claimtrend sensitivity claims.csv --min -0.03 --max 0.03 --steps 7 --matrix
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parser := config.NewInputParser()

			records, err := parser.LoadRecordsFromFile(args[0])
			if err != nil {
				return err
			}
			scenarios, err := loadScenarios(cmd, parser)
			if err != nil {
				return err
			}
			scenarioName, _ := cmd.Flags().GetString("scenario")
			base, err := findScenario(scenarios, scenarioName)
			if err != nil {
				return err
			}
			engine, err := newEngine(cmd, parser)
			if err != nil {
				return err
			}

			param := domain.DefaultInflationSweep()
			minValue, _ := cmd.Flags().GetFloat64("min")
			maxValue, _ := cmd.Flags().GetFloat64("max")
			param.MinValue = decimal.NewFromFloat(minValue)
			param.MaxValue = decimal.NewFromFloat(maxValue)
			param.Steps, _ = cmd.Flags().GetInt("steps")

			analyzer := calculation.NewSensitivityAnalyzer(engine)
			if matrix, _ := cmd.Flags().GetBool("matrix"); matrix {
				result, err := analyzer.AnalyzeMatrix(cmd.Context(), records, base, param, nil)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), output.SensitivityMatrixTable(result))
				return nil
			}

			result, err := analyzer.AnalyzeInflation(cmd.Context(), records, base, param)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), output.SensitivityTable(result))
			return nil
		},
	}

	addInputFlags(cmd, settings)
	cmd.Flags().String("scenario", "", "Scenario to sweep (defaults to the first scenario)")
	cmd.Flags().Float64("min", -0.02, "Smallest offset added to the scenario's inflation adjustment")
	cmd.Flags().Float64("max", 0.02, "Largest offset added to the scenario's inflation adjustment")
	cmd.Flags().Int("steps", 5, "Number of evenly spaced offsets")
	cmd.Flags().Bool("matrix", false, "Repeat the sweep for every age increment strategy")
	cmd.Flags().Bool("debug", settings.Debug, "Log detailed calculations to stderr")
	return cmd
}

func agingCmd(settings config.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "aging [age...]",
		Short: "Print aging factors (whole table when no ages are given)",
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := loadAgingTable(cmd, config.NewInputParser())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-6s %s\n", "Age", "Factor")
			if len(args) == 0 {
				for _, age := range table.Ages() {
					f, err := table.Lookup(decimal.NewFromInt(int64(age)))
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "%-6d %s\n", age, f)
				}
				return nil
			}

			for _, arg := range args {
				age, err := decimal.NewFromString(arg)
				if err != nil {
					return fmt.Errorf("invalid age %q: %w", arg, err)
				}
				f, err := table.Lookup(age)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%-6s %s\n", age, f)
			}
			return nil
		},
	}
	cmd.Flags().String("aging-table", settings.AgingTableFile, "YAML file with a custom aging factor table")
	return cmd
}

func scenariosCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scenarios",
		Short: "Print the default scenario set as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := config.MarshalScenarios(domain.DefaultScenarios())
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func addInputFlags(cmd *cobra.Command, settings config.Settings) {
	cmd.Flags().StringP("scenarios", "s", settings.ScenariosFile, "YAML scenario file (defaults to the built-in three scenarios)")
	cmd.Flags().String("aging-table", settings.AgingTableFile, "YAML file with a custom aging factor table")
}

func loadScenarios(cmd *cobra.Command, parser *config.InputParser) ([]domain.ScenarioConfig, error) {
	path, _ := cmd.Flags().GetString("scenarios")
	if path == "" {
		return domain.DefaultScenarios(), nil
	}
	return parser.LoadScenariosFromFile(path)
}

func findScenario(scenarios []domain.ScenarioConfig, name string) (domain.ScenarioConfig, error) {
	if name == "" {
		return scenarios[0], nil
	}
	for _, sc := range scenarios {
		if sc.Name == name {
			return sc, nil
		}
	}
	return domain.ScenarioConfig{}, fmt.Errorf("scenario %s not found", name)
}

// appendWhatIfs derives one scenario per transform chain from the base scenario
func appendWhatIfs(scenarios []domain.ScenarioConfig, baseName string, chains []string) ([]domain.ScenarioConfig, error) {
	if len(chains) == 0 {
		return scenarios, nil
	}

	base, err := findScenario(scenarios, baseName)
	if err != nil {
		return nil, fmt.Errorf("base %w", err)
	}

	registry := transform.NewTransformRegistry()
	for _, chain := range chains {
		transforms, err := registry.ParseChain(chain)
		if err != nil {
			return nil, fmt.Errorf("invalid --what-if %q: %w", chain, err)
		}
		derived, err := transform.Derive(base, transforms)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, derived)
	}

	if err := config.NewInputParser().ValidateScenarios(scenarios); err != nil {
		return nil, err
	}
	return scenarios, nil
}

func loadAgingTable(cmd *cobra.Command, parser *config.InputParser) (*calculation.AgingFactorTable, error) {
	path, _ := cmd.Flags().GetString("aging-table")
	if path == "" {
		return calculation.DefaultAgingFactorTable(), nil
	}
	return parser.LoadAgingFactorsFromFile(path)
}

func newEngine(cmd *cobra.Command, parser *config.InputParser) (*calculation.CalculationEngine, error) {
	table, err := loadAgingTable(cmd, parser)
	if err != nil {
		return nil, err
	}
	engine := calculation.NewCalculationEngineWithTable(table)
	if cmd.Flags().Lookup("debug") != nil {
		debugMode, _ := cmd.Flags().GetBool("debug")
		if debugMode {
			engine.SetLogger(simpleCLILogger{})
		}
		engine.Debug = debugMode
	}
	return engine, nil
}

func renderComparison(compSet *compare.ComparisonSet, format string) (string, error) {
	switch format {
	case "table", "":
		return (&compare.TableFormatter{}).Format(compSet), nil
	case "csv":
		return (&compare.CSVFormatter{}).Format(compSet)
	case "json":
		out, err := (&compare.JSONFormatter{Pretty: true}).Format(compSet)
		if err != nil {
			return "", err
		}
		return out + "\n", nil
	default:
		return "", fmt.Errorf("unsupported format %q (use table, csv or json)", format)
	}
}

func main() {
	settings, err := config.LoadSettings(".env")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := newRootCmd(settings).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
