package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime/debug"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/retireplan/spendgo/internal/calculation"
	"github.com/retireplan/spendgo/internal/compare"
	"github.com/retireplan/spendgo/internal/config"
	"github.com/retireplan/spendgo/internal/domain"
	"github.com/retireplan/spendgo/internal/output"
	"github.com/retireplan/spendgo/internal/server"
	"github.com/retireplan/spendgo/internal/store"
	"github.com/retireplan/spendgo/internal/transform"
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
			fmt.Fprintf(os.Stdout, "spendgo %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(os.Stdout, info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

// fileExists checks if a file exists
func fileExists(filename string) bool {
	_, err := os.Stat(filename)
	return !os.IsNotExist(err)
}

var rootCmd = &cobra.Command{
	Use:   "spendgo",
	Short: "Retirement spending planner CLI",
	Long:  "Projects phased retirement spending (GoGo, SlowGo, NoGo) with inflation and survivor adjustments",
}

var projectCmd = &cobra.Command{
	Use:     "project [plan-file]",
	Aliases: []string{"calculate"},
	Short:   "Project spending schedules for every scenario in a plan",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		plan := mustLoadPlan(args[0])
		engine := newEngine(cmd)

		set, err := engine.RunScenarios(context.Background(), plan.ScenarioValues())
		if err != nil {
			log.Fatal(err)
		}

		format, _ := cmd.Flags().GetString("format")
		outputPath, _ := cmd.Flags().GetString("output")

		if outputPath != "" {
			if err := output.WriteReportFile(set, format, outputPath); err != nil {
				log.Fatal(err)
			}
			fmt.Printf("Report written to %s\n", outputPath)
			return
		}

		if err := output.GenerateReport(set, format); err != nil {
			log.Fatal(err)
		}
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [plan-file]",
	Short: "Validate a spending plan file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		plan := mustLoadPlan(args[0])
		fmt.Printf("Plan file %s is valid (%d scenarios)\n", args[0], len(plan.ToScenarios()))
	},
}

var compareCmd = &cobra.Command{
	Use:   "compare [plan-file]",
	Short: "Compare the base scenario against built-in strategy templates",
	Long: `Compare a base spending scenario against template-derived alternatives
or ad-hoc transform specs.

Examples:
  spendgo compare plan.yaml --with lean_nogo,flat_phases
  spendgo compare plan.yaml --base lean --with high_inflation --format csv
  spendgo compare plan.yaml --transform "set_phase_percent:phase=nogo,percent=55"
  spendgo compare --list-templates
`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		listTemplates, _ := cmd.Flags().GetBool("list-templates")
		if listTemplates {
			registry := transform.CreateBuiltInTemplates()
			fmt.Print(transform.GetTemplateHelp(registry))
			return
		}

		if len(args) == 0 {
			log.Fatal("plan file required for comparison (use --list-templates to see available templates)")
		}
		plan := mustLoadPlan(args[0])

		baseName, _ := cmd.Flags().GetString("base")
		templatesStr, _ := cmd.Flags().GetString("with")
		transformSpecs, _ := cmd.Flags().GetStringArray("transform")
		format, _ := cmd.Flags().GetString("format")
		compact, _ := cmd.Flags().GetBool("compact")

		if templatesStr == "" && len(transformSpecs) == 0 {
			log.Fatal("--with or --transform is required to specify alternatives (or use --list-templates)")
		}
		templateNames := transform.ParseTemplateList(templatesStr)
		if templatesStr != "" && len(templateNames) == 0 {
			log.Fatal("no valid templates specified in --with flag")
		}

		engine := newEngine(cmd)
		compareEngine := compare.NewCompareEngine(engine)

		compSet, err := compareEngine.Compare(context.Background(), plan.ScenarioValues(), compare.CompareOptions{
			BaseScenarioName: baseName,
			Templates:        templateNames,
			Transforms:       transformSpecs,
		})
		if err != nil {
			log.Fatalf("Comparison failed: %v", err)
		}
		compSet.PlanPath = args[0]

		switch strings.ToLower(format) {
		case "csv":
			out, err := (&compare.CSVFormatter{}).Format(compSet)
			if err != nil {
				log.Fatalf("Failed to format CSV: %v", err)
			}
			fmt.Print(out)

		case "json":
			out, err := (&compare.JSONFormatter{Pretty: true}).Format(compSet)
			if err != nil {
				log.Fatalf("Failed to format JSON: %v", err)
			}
			fmt.Print(out)

		case "table", "console", "":
			formatter := &compare.TableFormatter{}
			if compact {
				fmt.Print(formatter.FormatCompact(compSet))
			} else {
				fmt.Print(formatter.Format(compSet))
			}

		default:
			log.Fatalf("Unknown output format: %s (valid: table, csv, json)", format)
		}
	},
}

var sensitivityCmd = &cobra.Command{
	Use:   "sensitivity [plan-file]",
	Short: "Sweep plan parameters and measure the outlay swing",
	Long: `Sweep one parameter (or cross two) across a range and re-project the
scenario at every step.

Parameter specs take the form name, name:min-max, or name:min-max:steps.

Examples:
  spendgo sensitivity plan.yaml --param inflation_rate
  spendgo sensitivity plan.yaml --param inflation_rate:0.01-0.05:5 --format csv
  spendgo sensitivity plan.yaml --param inflation_rate --param nogo_percent:50-90:5
`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		listParams, _ := cmd.Flags().GetBool("list-params")
		if listParams {
			fmt.Println("Sweepable parameters:")
			for _, p := range domain.GetCommonParameters() {
				fmt.Printf("  %-18s %s (default range %s to %s, %d steps)\n",
					p.Name, p.Description, p.MinValue.String(), p.MaxValue.String(), p.Steps)
			}
			return
		}

		if len(args) == 0 {
			log.Fatal("plan file required (use --list-params to see sweepable parameters)")
		}
		plan := mustLoadPlan(args[0])

		scenarioName, _ := cmd.Flags().GetString("scenario")
		scenario := mustFindScenario(plan, scenarioName)

		paramSpecs, _ := cmd.Flags().GetStringArray("param")
		if len(paramSpecs) == 0 {
			paramSpecs = []string{"inflation_rate"}
		}
		if len(paramSpecs) > 2 {
			log.Fatal("at most two --param sweeps are supported")
		}

		params := make([]domain.SensitivityParameter, len(paramSpecs))
		for i, spec := range paramSpecs {
			p, err := parseParameterSpec(spec, scenario)
			if err != nil {
				log.Fatal(err)
			}
			params[i] = p
		}

		analyzer := calculation.NewSensitivityAnalyzer()

		var analysis interface{}
		var err error
		if len(params) == 2 {
			analysis, err = analyzer.AnalyzeParameterMatrix(context.Background(), scenario, params[0], params[1])
		} else {
			analysis, err = analyzer.AnalyzeSingleParameter(context.Background(), scenario, params[0])
		}
		if err != nil {
			log.Fatalf("Sensitivity analysis failed: %v", err)
		}

		format, _ := cmd.Flags().GetString("format")
		formatter, err := output.NewSensitivityFormatter(format)
		if err != nil {
			log.Fatal(err)
		}
		out, err := formatter.FormatSensitivityAnalysis(analysis)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Print(out)
	},
}

var survivorCmd = &cobra.Command{
	Use:   "survivor [plan-file]",
	Short: "Analyze the spending impact of a survivor event",
	Long: `Project a scenario with and without a survivor event and report the
lifetime reduction.

Examples:
  spendgo survivor plan.yaml --offset 10
  spendgo survivor plan.yaml --scenario lean --offset 15 --percent 65 --format json
`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		plan := mustLoadPlan(args[0])

		scenarioName, _ := cmd.Flags().GetString("scenario")
		scenario := mustFindScenario(plan, scenarioName)

		analysisConfig := domain.DefaultSurvivorAnalysisConfig()
		if cmd.Flags().Changed("offset") {
			offset, _ := cmd.Flags().GetInt("offset")
			analysisConfig.DeathYearOffset = offset
		} else if scenario.Survivor != nil {
			analysisConfig.DeathYearOffset = scenario.Survivor.DeathYearOffset
		}
		if cmd.Flags().Changed("percent") {
			pctStr, _ := cmd.Flags().GetString("percent")
			pct, err := decimal.NewFromString(pctStr)
			if err != nil {
				log.Fatalf("Invalid --percent value %q: %v", pctStr, err)
			}
			analysisConfig.SurvivorPercent = &pct
		}
		if cmd.Flags().Changed("years") {
			years, _ := cmd.Flags().GetInt("years")
			analysisConfig.AnalysisYears = years
		}

		engine := newEngine(cmd)
		analyzer := calculation.NewSurvivorAnalyzer(engine)
		analysis, err := analyzer.AnalyzeSurvivorImpact(context.Background(), scenario, analysisConfig)
		if err != nil {
			log.Fatalf("Survivor analysis failed: %v", err)
		}

		format, _ := cmd.Flags().GetString("format")
		formatter := output.SurvivorConsoleFormatter{}
		switch strings.ToLower(format) {
		case "json":
			out, err := formatter.FormatSurvivorImpactAnalysisJSON(analysis)
			if err != nil {
				log.Fatal(err)
			}
			fmt.Println(out)

		case "console", "":
			out, err := formatter.FormatSurvivorImpactAnalysis(analysis)
			if err != nil {
				log.Fatal(err)
			}
			fmt.Print(out)

		default:
			log.Fatalf("Unknown output format: %s (valid: console, json)", format)
		}
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the projection HTTP API",
	Long: `Serve the projection API over HTTP. Schedules saved through the API
live in memory unless --redis points at a Redis instance.

Examples:
  spendgo serve --addr :8080
  spendgo serve --addr :8080 --redis localhost:6379 --redis-ttl 24h
`,
	Run: func(cmd *cobra.Command, args []string) {
		addr, _ := cmd.Flags().GetString("addr")
		redisAddr, _ := cmd.Flags().GetString("redis")
		redisTTL, _ := cmd.Flags().GetDuration("redis-ttl")

		var scheduleStore store.ScheduleStore
		if redisAddr != "" {
			rs := store.NewRedisStore(redisAddr, redisTTL)
			pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			err := rs.Ping(pingCtx)
			cancel()
			if err != nil {
				log.Fatalf("Redis at %s is not reachable: %v", redisAddr, err)
			}
			defer rs.Close()
			scheduleStore = rs
			log.Printf("INFO: schedules stored in redis at %s", redisAddr)
		} else {
			scheduleStore = store.NewMemoryStore()
			log.Printf("INFO: schedules stored in memory")
		}

		srv := server.New(scheduleStore, simpleCLILogger{})

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			errCh <- srv.ListenAndServe(addr)
		}()
		log.Printf("INFO: listening on %s", addr)

		select {
		case err := <-errCh:
			if err != nil {
				log.Fatalf("Server failed: %v", err)
			}
		case <-ctx.Done():
			log.Printf("INFO: shutting down")
			if err := srv.Shutdown(); err != nil {
				log.Printf("WARN: shutdown: %v", err)
			}
		}
	},
}

var initCmd = &cobra.Command{
	Use:   "init [output-file]",
	Short: "Write a starter spending plan",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path := "spending_plan.yaml"
		if len(args) > 0 {
			path = args[0]
		}
		if fileExists(path) {
			log.Fatalf("%s already exists, not overwriting", path)
		}
		if err := os.WriteFile(path, []byte(config.SamplePlanYAML), 0o644); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("Wrote starter plan to %s\n", path)
		fmt.Printf("Edit it, then run: spendgo project %s\n", path)
	},
}

// mustLoadPlan parses and validates the plan file, exiting on failure
func mustLoadPlan(path string) *config.PlanFile {
	parser := config.NewInputParser()
	plan, err := parser.LoadFromFile(path)
	if err != nil {
		log.Fatal(err)
	}
	return plan
}

// newEngine builds the calculation engine, honoring the --debug flag
func newEngine(cmd *cobra.Command) *calculation.CalculationEngine {
	engine := calculation.NewCalculationEngine()
	if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
		engine.SetLogger(simpleCLILogger{})
		engine.Debug = true
	}
	return engine
}

// mustFindScenario resolves a scenario by name; an empty name picks the
// first (base) scenario
func mustFindScenario(plan *config.PlanFile, name string) *domain.Scenario {
	scenarios := plan.ToScenarios()
	if len(scenarios) == 0 {
		log.Fatal("plan defines no scenarios")
	}
	if name == "" {
		return scenarios[0]
	}
	for _, s := range scenarios {
		if s.Name == name {
			return s
		}
	}
	names := make([]string, len(scenarios))
	for i, s := range scenarios {
		names[i] = s.Name
	}
	log.Fatalf("scenario %q not found (available: %s)", name, strings.Join(names, ", "))
	return nil
}

// parseParameterSpec parses "name", "name:min-max", or "name:min-max:steps"
// into a sweep definition. Known parameters carry default ranges; unknown
// ones need an explicit range. The base value is seeded from the scenario.
func parseParameterSpec(spec string, scenario *domain.Scenario) (domain.SensitivityParameter, error) {
	parts := strings.Split(spec, ":")
	name := strings.TrimSpace(parts[0])

	var param domain.SensitivityParameter
	found := false
	for _, p := range domain.GetCommonParameters() {
		if p.Name == name {
			param = p
			found = true
			break
		}
	}
	if !found {
		param = domain.SensitivityParameter{Name: name, Steps: 5, Unit: inferParameterUnit(name)}
	}

	if len(parts) > 1 && parts[1] != "" {
		lo, hi, ok := strings.Cut(parts[1], "-")
		if !ok {
			return param, fmt.Errorf("parameter range %q must look like min-max", parts[1])
		}
		minValue, err := decimal.NewFromString(strings.TrimSpace(lo))
		if err != nil {
			return param, fmt.Errorf("parameter %s: bad range minimum %q", name, lo)
		}
		maxValue, err := decimal.NewFromString(strings.TrimSpace(hi))
		if err != nil {
			return param, fmt.Errorf("parameter %s: bad range maximum %q", name, hi)
		}
		param.MinValue = minValue
		param.MaxValue = maxValue
	}

	if len(parts) > 2 && parts[2] != "" {
		steps, err := strconv.Atoi(parts[2])
		if err != nil || steps < 2 {
			return param, fmt.Errorf("parameter %s: steps must be an integer of at least 2", name)
		}
		param.Steps = steps
	}

	if !found && param.MinValue.IsZero() && param.MaxValue.IsZero() {
		return param, fmt.Errorf("parameter %q needs an explicit range, e.g. %s:0.01-0.05:5", name, name)
	}

	if base, ok := scenarioParameterValue(scenario, name); ok {
		param.BaseValue = base
	}
	return param, nil
}

// scenarioParameterValue reads the scenario's current value for a
// sweepable parameter
func scenarioParameterValue(scenario *domain.Scenario, name string) (decimal.Decimal, bool) {
	switch name {
	case "inflation_rate":
		return scenario.Config.InflationRate, true
	case "target_spend":
		return scenario.Config.TargetSpend, true
	case "gogo_percent":
		return scenario.Config.GoGoPercent, true
	case "slow_percent":
		return scenario.Config.SlowGoPercent, true
	case "nogo_percent":
		return scenario.Config.NoGoPercent, true
	case "survivor_percent":
		return scenario.Config.SurvivorPercent, true
	case "gogo_years":
		return decimal.NewFromInt(int64(scenario.Config.GoGoYears)), true
	case "slow_years":
		return decimal.NewFromInt(int64(scenario.Config.SlowGoYears)), true
	case "horizon_years":
		return decimal.NewFromInt(int64(scenario.HorizonYears)), true
	}
	return decimal.Zero, false
}

// inferParameterUnit guesses the display unit from the parameter name
func inferParameterUnit(name string) string {
	switch {
	case strings.HasSuffix(name, "_rate"):
		return "rate"
	case strings.HasSuffix(name, "_percent"):
		return "percent"
	case strings.HasSuffix(name, "_years"):
		return "years"
	case strings.HasSuffix(name, "_spend"):
		return "dollars"
	default:
		return ""
	}
}

func init() {
	projectCmd.Flags().StringP("format", "f", "console", "Output format (console, console-lite, csv, detailed-csv, json, html)")
	projectCmd.Flags().StringP("output", "o", "", "Report path (file formats default to a timestamped file in the working directory)")
	projectCmd.Flags().Bool("debug", false, "Enable debug output for detailed calculations")

	compareCmd.Flags().String("base", "", "Base scenario name to compare against (default: first scenario)")
	compareCmd.Flags().String("with", "", "Comma-separated list of templates to compare")
	compareCmd.Flags().StringArray("transform", nil, "Ad-hoc transform spec, repeatable (name:key=value,...)")
	compareCmd.Flags().StringP("format", "f", "table", "Output format (table, csv, json)")
	compareCmd.Flags().Bool("compact", false, "One-line-per-scenario table output")
	compareCmd.Flags().Bool("list-templates", false, "List all available scenario templates")
	compareCmd.Flags().Bool("debug", false, "Enable debug output for detailed calculations")

	sensitivityCmd.Flags().StringArray("param", nil, "Parameter sweep spec, repeatable (name[:min-max[:steps]])")
	sensitivityCmd.Flags().String("scenario", "", "Scenario to sweep (default: first scenario)")
	sensitivityCmd.Flags().StringP("format", "f", "console", "Output format (console, csv, json)")
	sensitivityCmd.Flags().Bool("list-params", false, "List sweepable parameters")

	survivorCmd.Flags().String("scenario", "", "Scenario to analyze (default: first scenario)")
	survivorCmd.Flags().Int("offset", 0, "Death year offset from the start of retirement")
	survivorCmd.Flags().String("percent", "", "Survivor spending percent override")
	survivorCmd.Flags().Int("years", 0, "Cap on post-event years to report")
	survivorCmd.Flags().StringP("format", "f", "console", "Output format (console, json)")
	survivorCmd.Flags().Bool("debug", false, "Enable debug output for detailed calculations")

	serveCmd.Flags().String("addr", ":8080", "Listen address")
	serveCmd.Flags().String("redis", "", "Redis address for schedule storage (empty: in-memory)")
	serveCmd.Flags().Duration("redis-ttl", 0, "Expiry for schedules stored in Redis (0: keep forever)")

	rootCmd.AddCommand(projectCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(sensitivityCmd)
	rootCmd.AddCommand(survivorCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
