// Command fdspec renders the resolved form of an FD design file back to
// canonical text, and manages the engine's YAML configuration.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/flowdesign/fd/emitter"
	"github.com/flowdesign/fd/internal/config"
	"github.com/flowdesign/fd/layout"
	"github.com/flowdesign/fd/parser"
	"github.com/flowdesign/fd/resolve"
	cli "github.com/urfave/cli/v3"
)

func main() {
	app := &cli.Command{
		Name:  "fdspec",
		Usage: "render and configure FD design documents",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "load configuration from `FILE` (YAML)"},
		},
		ArgsUsage: "FILE",
		Action:    emit,
		Commands: []*cli.Command{
			{
				Name:      "config",
				Usage:     "dump default or actual configuration (YAML)",
				ArgsUsage: "DESTINATION",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "default", Usage: "output the engine's built-in default configuration"},
					&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "load configuration from `FILE` (YAML)"},
				},
				Action: dumpConfig,
			},
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "fdspec: %v\n", err)
		os.Exit(1)
	}
}

func emit(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 1 {
		return cli.Exit("exactly one FILE argument is required", 1)
	}
	path := cmd.Args().Get(0)

	cfg := config.Default()
	if cfgPath := cmd.String("config"); cfgPath != "" {
		var err error
		cfg, err = config.Load(cfgPath)
		if err != nil {
			return err
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	g, err := parser.Parse(string(data))
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := resolve.Imports(g, localLoader{}); err != nil {
		return fmt.Errorf("resolving imports in %s: %w", path, err)
	}
	layout.Resolve(g, cfg.ToViewport())

	fmt.Print(emitter.Emit(g))
	return nil
}

// localLoader resolves import paths relative to the current working
// directory, since fdspec operates on a single standalone file.
type localLoader struct{}

func (localLoader) Load(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func dumpConfig(ctx context.Context, cmd *cli.Command) error {
	cfg := config.Default()
	if !cmd.Bool("default") {
		if cfgPath := cmd.String("config"); cfgPath != "" {
			var err error
			cfg, err = config.Load(cfgPath)
			if err != nil {
				return err
			}
		}
	}

	data, err := cfg.ToYAML()
	if err != nil {
		return fmt.Errorf("marshalling configuration: %w", err)
	}

	dest := cmd.Args().Get(0)
	if dest == "" {
		fmt.Print(string(data))
		return nil
	}
	return os.WriteFile(dest, data, 0o644)
}
