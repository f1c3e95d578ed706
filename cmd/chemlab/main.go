package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/avelar/chemlab/internal/config"
	"github.com/avelar/chemlab/internal/experiment"
	"github.com/avelar/chemlab/internal/metrics"
	"github.com/avelar/chemlab/internal/session"
	"github.com/avelar/chemlab/internal/storage"
	"github.com/avelar/chemlab/internal/tui"
)

var (
	dataDir    string
	configFile string
	preset     string
	expFile    string
	tickSecs   float64
	maxTime    float64
	noSave     bool
	exportOut  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "chemlab",
		Short: "virtual chemistry lab",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return tui.RunInteractive(cfg)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "", "data directory (default .chemlab)")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "realtime", "pace preset")

	runCmd := &cobra.Command{
		Use:   "run [experiment]",
		Short: "run an experiment headless on autopilot",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runExperiment,
	}
	runCmd.Flags().StringVar(&expFile, "file", "", "load experiment from a yaml/json fixture")
	runCmd.Flags().Float64Var(&tickSecs, "tick", 0, "tick length in seconds")
	runCmd.Flags().Float64Var(&maxTime, "max-time", 0, "simulated time budget in seconds")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not record the run")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a recorded run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "print run metadata as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "print run readings as csv",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "print full run data as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVar(&exportOut, "out", "", "write to a file instead of stdout")

	experimentsCmd := &cobra.Command{
		Use:   "experiments",
		Short: "list available experiments",
		RunE:  listExperiments,
	}

	stepsCmd := &cobra.Command{
		Use:   "steps [experiment]",
		Short: "print an experiment's procedure",
		Args:  cobra.ExactArgs(1),
		RunE:  showSteps,
	}

	validateCmd := &cobra.Command{
		Use:   "validate [file]",
		Short: "validate an experiment fixture",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			exp, err := experiment.LoadFile(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("ok: %s (%d steps, %d chemicals)\n", exp.ID, len(exp.Steps), len(exp.Chemicals))
			return nil
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list pace presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				fmt.Printf("  %-10s %gx\n", name, config.Presets[name])
			}
			return nil
		},
	}

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "interactive lab bench",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return tui.RunInteractive(cfg)
		},
	}

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportCmd, exportCSVCmd, exportJSONCmd,
		experimentsCmd, stepsCmd, validateCmd, presetsCmd, tuiCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves the effective config: defaults, then the config file,
// then the pace preset scaled on top, then environment, then flags.
func loadConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if preset != "" {
		if err := config.ApplyPreset(cfg, preset); err != nil {
			return nil, fmt.Errorf("%w (available: %v)", err, config.ListPresets())
		}
	}

	if err := cfg.FromEnv(); err != nil {
		return nil, err
	}

	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if tickSecs > 0 {
		cfg.Tick = tickSecs
	}
	if maxTime > 0 {
		cfg.MaxTime = maxTime
	}
	return cfg, nil
}

func resolveExperiment(args []string) (*experiment.Experiment, error) {
	if expFile != "" {
		return experiment.LoadFile(expFile)
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("experiment name or --file required")
	}
	return experiment.NewRegistry().Get(args[0])
}

func runExperiment(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	exp, err := resolveExperiment(args)
	if err != nil {
		return err
	}

	sessCfg := session.Config{
		Tick:    cfg.Tick,
		MaxTime: cfg.MaxTime,
		Ambient: cfg.Ambient,
		Rates:   cfg.LabRates(),
	}
	sess, err := session.New(exp, sessCfg, session.NewAutopilot())
	if err != nil {
		return err
	}

	sess.AddGauge(metrics.NewPeakTemperature())
	sess.AddGauge(metrics.NewTimeInBand(exp.Reaction.MinTemp, exp.Reaction.MaxTemp))
	sess.AddGauge(metrics.NewHeaterDuty())
	sess.AddGauge(metrics.NewTimeToReaction())

	fmt.Printf("running %s on autopilot...\n", exp.ID)
	start := time.Now()

	result, err := sess.Run(context.Background())
	if err != nil {
		return err
	}

	elapsed := time.Since(start)
	fmt.Printf("completed in %v (%.1fs simulated)\n", elapsed, result.Duration)
	fmt.Printf("steps: %d/%d  complete: %v\n", result.StepsDone, len(exp.Steps), result.Completed)

	fmt.Println("\ngauges:")
	for name, val := range result.Gauges {
		fmt.Printf("  %s: %.3f\n", name, val)
	}

	if noSave {
		return nil
	}

	st := storage.New(cfg.DataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(cfg.Tick, result)
	if err != nil {
		return err
	}
	fmt.Printf("\nrun id: %s\n", runID)
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	runs, err := storage.New(cfg.DataDir).List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tEXPERIMENT\tTIME\tDURATION\tSTEPS\tCOMPLETE")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.1fs\t%d\t%v\n",
			run.ID,
			run.Experiment,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.StepsDone,
			run.Completed,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	st := storage.New(cfg.DataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	readings, err := st.LoadReadings(args[0])
	if err != nil {
		return err
	}
	if len(readings.Times) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\nexperiment: %s\nsamples: %d\n\n", meta.ID, meta.Experiment, len(readings.Times))

	series := []struct {
		name string
		data []float64
	}{
		{"temperature (°C)", readings.Temps},
		{"reaction (%)", readings.Reaction},
		{"crystals (%)", readings.Crystal},
	}
	for _, s := range series {
		if allZero(s.data) {
			continue
		}
		graph := asciigraph.Plot(s.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(s.name),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func allZero(data []float64) bool {
	for _, v := range data {
		if v != 0 {
			return false
		}
	}
	return true
}

func exportRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	meta, err := storage.New(cfg.DataDir).Load(args[0])
	if err != nil {
		return err
	}
	return printMetadata(os.Stdout, meta)
}

// printMetadata emits the run's metadata document on its own, without the
// reading series that export-json carries.
func printMetadata(w io.Writer, meta *storage.RunMetadata) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	readings, err := storage.New(cfg.DataDir).LoadReadings(args[0])
	if err != nil {
		return err
	}
	if len(readings.Times) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write([]string{"time", "temperature", "target", "reaction", "crystal", "stirring", "step"}); err != nil {
		return err
	}
	for i := range readings.Times {
		row := []string{
			strconv.FormatFloat(readings.Times[i], 'f', 3, 64),
			strconv.FormatFloat(readings.Temps[i], 'f', 3, 64),
			strconv.FormatFloat(readings.Targets[i], 'f', 3, 64),
			strconv.FormatFloat(readings.Reaction[i], 'f', 3, 64),
			strconv.FormatFloat(readings.Crystal[i], 'f', 3, 64),
			strconv.Itoa(readings.Stirring[i]),
			strconv.Itoa(readings.Steps[i]),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	st := storage.New(cfg.DataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	readings, err := st.LoadReadings(args[0])
	if err != nil {
		return err
	}
	if exportOut != "" {
		return storage.ExportJSONFile(exportOut, meta, readings)
	}
	return storage.ExportJSON(os.Stdout, meta, readings)
}

func listExperiments(cmd *cobra.Command, args []string) error {
	registry := experiment.NewRegistry()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tSTEPS\tCHEMICALS")
	for _, id := range registry.List() {
		exp, err := registry.Get(id)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\n", exp.ID, exp.Title, len(exp.Steps), len(exp.Chemicals))
	}
	return w.Flush()
}

func showSteps(cmd *cobra.Command, args []string) error {
	exp, err := experiment.NewRegistry().Get(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("%s\n%s\n\n", exp.Title, exp.Description)
	for i, step := range exp.Steps {
		fmt.Printf("%d. %s\n   %s\n", i+1, step.Title, step.Instructions)
		if step.Safety != "" {
			fmt.Printf("   ⚠ %s\n", step.Safety)
		}
		for _, c := range step.Conditions {
			fmt.Printf("   - %s\n", c.Describe(exp))
		}
		fmt.Println()
	}
	if len(exp.Safety) > 0 {
		fmt.Println("safety:")
		for _, note := range exp.Safety {
			fmt.Printf("  ⚠ %s\n", note)
		}
	}
	return nil
}
