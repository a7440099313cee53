// Command fdview parses an FD design file, resolves its imports and
// layout, and reports lint diagnostics and resolved node bounds.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/flowdesign/fd/id"
	"github.com/flowdesign/fd/internal/config"
	"github.com/flowdesign/fd/layout"
	"github.com/flowdesign/fd/lint"
	"github.com/flowdesign/fd/model"
	"github.com/flowdesign/fd/parser"
	"github.com/flowdesign/fd/resolve"
	cli "github.com/urfave/cli/v3"
)

func main() {
	app := &cli.Command{
		Name:      "fdview",
		Usage:     "inspect a resolved FD document: bounds and lint diagnostics",
		ArgsUsage: "FILE",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "load configuration from `FILE` (YAML)"},
			&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "suppress the bounds summary, printing only diagnostics"},
		},
		Action: run,
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "fdview: %v\n", err)
		os.Exit(1)
	}
}

// diskLoader resolves import paths relative to the importing file's
// directory, matching how the parser treats import declarations.
type diskLoader struct {
	dir string
}

func (l diskLoader) Load(path string) (string, error) {
	data, err := os.ReadFile(filepath.Join(l.dir, path))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func run(ctx context.Context, cmd *cli.Command) error {
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

	if err := resolve.Imports(g, diskLoader{dir: filepath.Dir(path)}); err != nil {
		return fmt.Errorf("resolving imports in %s: %w", path, err)
	}

	layout.Resolve(g, cfg.ToViewport())

	diags := lint.Document(g)
	sort.Slice(diags, func(i, j int) bool { return diags[i].Severity < diags[j].Severity })
	hasWarning := false
	for _, d := range diags {
		sev := "warning"
		if d.Severity == lint.SeverityInfo {
			sev = "info"
		}
		if override, ok := cfg.LintSeverity[d.Rule]; ok {
			sev = override
		}
		if sev == "warning" {
			hasWarning = true
		}
		fmt.Printf("%s: [%s] %s (%s)\n", sev, d.Rule, d.Message, d.NodeID)
	}

	if !cmd.Bool("quiet") {
		printBounds(g)
	}

	if hasWarning {
		return cli.Exit("", 1)
	}
	return nil
}

func printBounds(g *model.SceneGraph) {
	var ids []id.NodeId
	for _, nid := range g.Roots() {
		collectIDs(g, nid, &ids)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, nid := range ids {
		n, ok := g.GetByID(nid)
		if !ok {
			continue
		}
		b := n.Bounds
		fmt.Printf("%s: x=%.1f y=%.1f w=%.1f h=%.1f\n", nid, b.X, b.Y, b.W, b.H)
	}
}

func collectIDs(g *model.SceneGraph, nid id.NodeId, out *[]id.NodeId) {
	*out = append(*out, nid)
	for _, child := range g.Children(nid) {
		collectIDs(g, child, out)
	}
}
