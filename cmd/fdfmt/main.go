// Command fdfmt formats FD design files: parsing, running the
// deduplicate/hoist/sort transform passes, and re-emitting canonical text.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/flowdesign/fd/format"
	"github.com/flowdesign/fd/internal/config"
	"github.com/flowdesign/fd/internal/logging"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

func main() {
	app := &cli.Command{
		Name:  "fdfmt",
		Usage: "format FD design files",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "load configuration from `FILE` (YAML)"},
			&cli.BoolFlag{Name: "write", Aliases: []string{"w"}, Usage: "write result back to the source file instead of stdout"},
			&cli.BoolFlag{Name: "no-hoist", Usage: "disable the hoist-shared-styles pass regardless of config"},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "enable debug logging"},
		},
		ArgsUsage: "FILE...",
		Action:    run,
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "fdfmt: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	level := logging.LevelNone
	if cmd.Bool("debug") {
		level = logging.LevelDebug
	}
	log, err := logging.New(logging.Config{Level: level})
	if err != nil {
		return fmt.Errorf("preparing logger: %w", err)
	}
	defer log.Sync()

	cfg := config.Default()
	if path := cmd.String("config"); path != "" {
		cfg, err = config.Load(path)
		if err != nil {
			return err
		}
	}
	fcfg := cfg.ToFormatConfig()
	if cmd.Bool("no-hoist") {
		fcfg.HoistStyles = false
	}

	if cmd.Args().Len() == 0 {
		return cli.Exit("at least one FILE argument is required", 1)
	}

	var errs error
	for _, path := range cmd.Args().Slice() {
		if err := formatFile(path, fcfg, cmd.Bool("write"), log); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", path, err))
		}
	}
	return errs
}

func formatFile(path string, fcfg format.Config, write bool, log *zap.Logger) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	out, err := format.Pipeline(string(data), fcfg)
	if err != nil {
		return err
	}

	if write {
		if out == string(data) {
			log.Debug("already formatted", zap.String("path", path))
			return nil
		}
		log.Info("formatted", zap.String("path", path))
		return os.WriteFile(path, []byte(out), 0o644)
	}

	fmt.Print(out)
	return nil
}
