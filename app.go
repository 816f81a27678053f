package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/memmaker/paperfold/config"
	"github.com/memmaker/paperfold/engine/lock"
	"github.com/memmaker/paperfold/engine/util"
	"github.com/memmaker/paperfold/fold"
	"github.com/memmaker/paperfold/level"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"
)

var version = "dev"

// app holds what the commands share. Fold checks are handed to call so they run on
// the main thread, the way a game loop would run them.
type app struct {
	out  io.Writer
	call func(func())
	cfg  *config.Config

	configPath string
	logLevel   string
	logFormat  string
}

func newApp(out io.Writer, call func(func())) *app {
	if call == nil {
		call = func(f func()) { f() }
	}
	return &app{out: out, call: call}
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "paperfold",
		Short: "Check paper folds in puzzle levels",
		Long: `paperfold loads a level (glTF or gzip NBT) and decides for each of its folds
whether it can be played: NONE, KINKED, PAPERCLIP, COLLISION or NOCHECK.`,
		Version:           version,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "YAML config file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "override log.level")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "override log.format (console or json)")
	root.SetOut(a.out)

	root.AddCommand(a.checkCommand(), a.foldsCommand(), a.convertCommand())
	return root
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if a.logFormat != "" {
		cfg.Log.Format = a.logFormat
	}
	color := term.IsTerminal(int(os.Stderr.Fd()))
	logger, err := util.NewLogger(cfg.Log.Level, cfg.Log.Format, color)
	if err != nil {
		return err
	}
	util.SetLogger(logger)
	a.cfg = cfg
	util.LogSystemInfo("config loaded", zap.String("path", a.configPath), zap.Int("samples", cfg.Fold.Samples))
	return nil
}

type checkResult struct {
	Level  string           `json:"level"`
	Fold   string           `json:"fold"`
	Result fold.FailureType `json:"result"`
	Reason string           `json:"reason,omitempty"`
	Micros int64            `json:"micros"`
}

func (a *app) checkCommand() *cobra.Command {
	var asJSON, strict, timings bool
	cmd := &cobra.Command{
		Use:   "check <level> [fold...]",
		Short: "Check the folds of a level",
		Long: `Check every fold of a level, or only the named ones.

Examples:
  paperfold check levels/hinge.gltf
  paperfold check --json levels/hinge.nbt lift tuck`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lvl, err := level.Load(args[0], a.cfg.LevelOptions())
			if err != nil {
				return err
			}
			checkerConfig, err := a.cfg.Checker()
			if err != nil {
				return err
			}
			checker := fold.NewChecker(lvl.Sheet, lock.Shared(), checkerConfig)

			names := args[1:]
			if len(names) == 0 {
				names = lvl.FoldNames()
			}
			rejected := 0
			for _, name := range names {
				fd, err := lvl.Fold(name)
				if err != nil {
					return err
				}
				var report fold.Report
				a.call(func() {
					report = checker.Check(fd)
				})
				if report.Result != fold.NONE {
					rejected++
				}
				result := checkResult{
					Level:  lvl.Name,
					Fold:   name,
					Result: report.Result,
					Reason: report.Reason(),
					Micros: report.Duration.Microseconds(),
				}
				if err = a.printResult(result, asJSON); err != nil {
					return err
				}
			}
			if timings {
				fmt.Fprint(a.out, checker.Timer().String())
			}
			if strict && rejected > 0 {
				return errors.Errorf("%d of %d folds rejected", rejected, len(names))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print one JSON object per fold")
	cmd.Flags().BoolVar(&strict, "strict", false, "fail when any fold is rejected")
	cmd.Flags().BoolVar(&timings, "timings", false, "print phase timings")
	return cmd
}

func (a *app) printResult(result checkResult, asJSON bool) error {
	if asJSON {
		return json.NewEncoder(a.out).Encode(result)
	}
	line := fmt.Sprintf("%-16s %-10s", result.Fold, result.Result)
	if result.Reason != "" {
		line += " " + result.Reason
	}
	_, err := fmt.Fprintln(a.out, strings.TrimRight(line, " "))
	return err
}

func (a *app) foldsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "folds <level>",
		Short: "List the folds a level defines",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lvl, err := level.Load(args[0], a.cfg.LevelOptions())
			if err != nil {
				return err
			}
			for _, name := range lvl.FoldNames() {
				fd, err := lvl.Fold(name)
				if err != nil {
					return err
				}
				var squares []string
				for _, square := range fd.FoldObjects.FoldSquares {
					squares = append(squares, square.Name)
				}
				fmt.Fprintf(a.out, "%-16s %7.1f° around %v through %v moving %s\n",
					name, fd.Degrees, fd.Axis, fd.Center, strings.Join(squares, ","))
			}
			return nil
		},
	}
}

func (a *app) convertCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "convert <in> <out>",
		Short: "Convert a level between glTF and NBT",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			desc, err := level.ReadDescription(args[0])
			if err != nil {
				return err
			}
			if _, err = level.Build(desc, a.cfg.LevelOptions()); err != nil {
				return errors.Wrapf(err, "%s is not a valid level", args[0])
			}
			if err = level.WriteDescription(args[1], desc); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "wrote %s\n", args[1])
			return nil
		},
	}
}
