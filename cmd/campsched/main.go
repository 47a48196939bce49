// Command campsched turns a YAML camp-schedule config into a solved,
// validated Excel report via three subcommands: generate, validate, init.
package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/xuri/excelize/v2"

	"github.com/campsched/campsched/internal/camperrors"
	"github.com/campsched/campsched/internal/config"
	"github.com/campsched/campsched/internal/excel"
	"github.com/campsched/campsched/internal/extractor"
	"github.com/campsched/campsched/internal/log"
	"github.com/campsched/campsched/internal/model"
	"github.com/campsched/campsched/internal/solver"
	"github.com/campsched/campsched/internal/strategy"
	"github.com/campsched/campsched/internal/validator"
)

func main() {
	root := &cobra.Command{
		Use:   "campsched",
		Short: "Solve and report a camp activity schedule",
	}
	root.PersistentFlags().Bool("prod", false, "use JSON production logging instead of console development logging")

	root.AddCommand(newGenerateCmd())
	root.AddCommand(newValidateCmd())
	root.AddCommand(newInitCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗", err)
		os.Exit(1)
	}
}

func initLogging(cmd *cobra.Command) error {
	prod, _ := cmd.Flags().GetBool("prod")
	return log.Init(prod)
}

func newGenerateCmd() *cobra.Command {
	var output string
	var strategyName string

	cmd := &cobra.Command{
		Use:   "generate <config.yaml>",
		Short: "Solve a camp schedule and write an Excel report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := initLogging(cmd); err != nil {
				return fmt.Errorf("init logging: %w", err)
			}
			return runGenerate(args[0], output, strategyName)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "schedule.xlsx", "output workbook path")
	cmd.Flags().StringVar(&strategyName, "strategy", "", "variable posting order strategy (lexicographic|scarce_first)")
	return cmd
}

func runGenerate(configPath, output, strategyName string) error {
	cd, err := config.LoadFromFile(configPath)
	if err != nil {
		return describeErr(err)
	}

	strat, err := strategy.Get(strategyName)
	if err != nil {
		return err
	}

	v := model.BuildVariables(cd, strat)
	model.PostConstraints(v, cd)
	model.PostObjective(v, cd)

	result, err := solver.Solve(v, solver.Options{
		TimeLimit:  time.Duration(cd.SolverTimeLimitSeconds) * time.Second,
		RandomSeed: 1,
	})
	if err != nil {
		return describeErr(err)
	}

	entries := extractor.Extract(v, cd, result.Response)

	f, err := excel.Generate(cd, entries)
	if err != nil {
		return fmt.Errorf("generating report: %w", err)
	}
	if err := f.SaveAs(output); err != nil {
		return fmt.Errorf("saving %s: %w", output, err)
	}

	fmt.Printf("solved (%s, %s) -> %s\n", result.Status, result.Elapsed, output)

	violations := validator.Validate(cd, entries)
	reportViolations(violations)
	return nil
}

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <config.yaml> <schedule.xlsx>",
		Short: "Recheck a saved report against its config",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := initLogging(cmd); err != nil {
				return fmt.Errorf("init logging: %w", err)
			}
			return runValidate(args[0], args[1])
		},
	}
	return cmd
}

func runValidate(configPath, reportPath string) error {
	cd, err := config.LoadFromFile(configPath)
	if err != nil {
		return describeErr(err)
	}

	f, err := excelize.OpenFile(reportPath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", reportPath, err)
	}
	defer f.Close()

	entries, err := excel.ReadEntries(f)
	if err != nil {
		return fmt.Errorf("reading %s: %w", reportPath, err)
	}

	violations := validator.Validate(cd, entries)
	reportViolations(violations)
	if len(violations) > 0 {
		return fmt.Errorf("%d violation(s) found", len(violations))
	}
	return nil
}

func reportViolations(violations []validator.Violation) {
	if len(violations) == 0 {
		fmt.Println("✓ no violations found")
		return
	}
	for _, v := range violations {
		mark := "⚠"
		if v.Type == "error" {
			mark = "✗"
		}
		fmt.Printf("%s %s\n", mark, v.Message)
	}
}

func describeErr(err error) error {
	var invalid *camperrors.InputInvalidError
	var infeasible *camperrors.ModelInfeasibleError
	var timeout *camperrors.TimeoutError
	switch {
	case errors.As(err, &invalid):
		return fmt.Errorf("invalid config: %w", err)
	case errors.As(err, &infeasible):
		return fmt.Errorf("no schedule exists for this config: %w", err)
	case errors.As(err, &timeout):
		return fmt.Errorf("solver timed out: %w", err)
	default:
		return err
	}
}

func newInitCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter config.yaml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "config.yaml", "path to write")
	return cmd
}

func runInit(output string) error {
	if _, err := os.Stat(output); err == nil {
		return fmt.Errorf("%s already exists", output)
	}
	if err := os.WriteFile(output, []byte(configTemplate), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", output, err)
	}
	fmt.Println("wrote", output)
	return nil
}

const configTemplate = `# campsched starter config. See SPEC_FULL.md §3 for the config sections.
staff:
  - {id: 1, name: "Alex Morgan"}
  - {id: 2, name: "Jordan Lee"}

activities:
  - {id: 1, name: "waterfront", category: fixed, duration: 1, min_staff: 2, max_staff: 3}
  - {id: 2, name: "waterskiing", category: fixed, duration: 1, min_staff: 1, max_staff: 2}
  - {id: 3, name: "golf", category: sport, duration: 1, min_staff: 1, max_staff: 2}
  - {id: 4, name: "tennis", category: sport, duration: 1, min_staff: 1, max_staff: 2}
  - {id: 5, name: "driving range", category: sport, duration: 2, min_staff: 1, max_staff: 2}
  - {id: 6, name: "arts", category: creative, duration: 1, min_staff: 1, max_staff: 2}

locations:
  - {id: 1, name: "Waterfront Dock"}
  - {id: 2, name: "Ski Cove"}
  - {id: 3, name: "Golf Course"}
  - {id: 4, name: "Tennis Courts"}
  - {id: 5, name: "Arts Cabin"}
  - {id: 6, name: "driving range"}

location_options:
  - {activity_id: 1, location_id: 1}
  - {activity_id: 2, location_id: 2}
  - {activity_id: 3, location_id: 3}
  - {activity_id: 4, location_id: 4}
  - {activity_id: 5, location_id: 6}
  - {activity_id: 6, location_id: 5}

groups:
  - {id: 1}
  - {id: 2}

leads:
  - {staff_id: 1, activity_id: 1}
  - {staff_id: 1, activity_id: 2}
  - {staff_id: 2, activity_id: 3}
  - {staff_id: 2, activity_id: 4}

assists: []

off_days: []

trips: []

waterfront_pattern:
  - group_id: 1
    slots: ["Monday/1", "Wednesday/1", "Friday/1", "Saturday/1"]
  - group_id: 2
    slots: ["Tuesday/1", "Thursday/1", "Friday/2", "Saturday/2"]

weights:
  staff_repetition: 0.25
  group_category: 0.75
  group_weekly: 0.75
  staff_unbalance: 0.75

solver:
  time_limit_seconds: 60
`
