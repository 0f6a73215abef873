// Package main is the xamlport command line: converts WPF-flavored
// XAML documents into Avalonia XAML, one file at a time or as a
// directory batch, and reports every fidelity gap the rules found.
package main

import (
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/urfave/cli/v2"

	"xamlport"
	"xamlport/dom"
	"xamlport/engine"
	"xamlport/mapping"
	"xamlport/options"
)

func main() {
	log.SetFlags(0)

	app := &cli.App{
		Name:  "xamlport",
		Usage: "convert WPF XAML documents into Avalonia XAML",
		Commands: []*cli.Command{
			convertCommand(),
			checkCommand(),
			rulesCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func configFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "mapping",
			Aliases: []string{"m"},
			Usage:   "mapping YAML overlaid on the built-in table",
		},
		&cli.StringFlag{
			Name:  "catalog",
			Usage: "type catalog YAML replacing the built-in one",
		},
		&cli.StringFlag{
			Name:  "mode",
			Value: "hybrid",
			Usage: "transformation strategy: structural, typed, or hybrid",
		},
	}
}

func newConverter(c *cli.Context, skipComments bool) (*xamlport.Converter, error) {
	mode, err := options.ParseMode(c.String("mode"))
	if err != nil {
		return nil, err
	}

	opts := xamlport.Options{
		Mode:         mode,
		CatalogFile:  c.String("catalog"),
		SkipComments: skipComments,
	}

	if path := c.String("mapping"); path != "" {
		overlay, err := mapping.LoadFile(path)
		if err != nil {
			return nil, err
		}

		opts.Mappings = overlay
	}

	return xamlport.New(opts)
}

func convertCommand() *cli.Command {
	return &cli.Command{
		Name:      "convert",
		Usage:     "convert a document, or every document under a directory",
		ArgsUsage: "<file.xaml | directory>",
		Flags: append(configFlags(),
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "output file (single input) or directory (directory input); defaults to stdout / .axaml siblings",
			},
			&cli.BoolFlag{
				Name:  "no-comments",
				Usage: "drop diagnostic comments from the output",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "log per-document rule statistics",
			},
		),
		Action: runConvert,
	}
}

func runConvert(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("convert expects exactly one file or directory argument", 2)
	}

	conv, err := newConverter(c, c.Bool("no-comments"))
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}

	target := c.Args().First()

	info, err := os.Stat(target)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}

	if info.IsDir() {
		return convertDir(c, conv, target)
	}

	return convertFile(c, conv, target)
}

func convertFile(c *cli.Context, conv *xamlport.Converter, path string) error {
	res, err := convertOne(conv, path, c.String("out"))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	report(path, res, c.Bool("verbose"))

	if res.Diagnostics.HasErrors() {
		return cli.Exit("conversion finished with errors", 1)
	}

	return nil
}

// convertDir converts every .xaml document under dir, one worker per
// document. Output lands next to the sources as .axaml unless --out
// names a directory to mirror the tree into.
func convertDir(c *cli.Context, conv *xamlport.Converter, dir string) error {
	outDir := c.String("out")
	if outDir == "" {
		outDir = dir
	}

	var docs []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".xaml") {
			docs = append(docs, path)
		}

		return nil
	})
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}

	if len(docs) == 0 {
		return cli.Exit(fmt.Sprintf("no .xaml documents under %s", dir), 2)
	}

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		failed int
	)

	for _, path := range docs {
		wg.Add(1)

		go func(path string) {
			defer wg.Done()

			rel, err := filepath.Rel(dir, path)
			if err != nil {
				rel = filepath.Base(path)
			}

			out := filepath.Join(outDir, strings.TrimSuffix(rel, filepath.Ext(rel))+".axaml")

			res, err := convertOne(conv, path, out)

			mu.Lock()
			defer mu.Unlock()

			if err != nil {
				log.Printf("%s: %v", path, err)
				failed++

				return
			}

			report(path, res, c.Bool("verbose"))

			if res.Diagnostics.HasErrors() {
				failed++

				return
			}

			log.Printf("%s -> %s", path, out)
		}(path)
	}

	wg.Wait()

	if failed > 0 {
		return cli.Exit(fmt.Sprintf("%d of %d documents failed", failed, len(docs)), 1)
	}

	log.Printf("converted %d documents", len(docs))

	return nil
}

// convertOne converts a single file to out, stdout when out is empty.
func convertOne(conv *xamlport.Converter, path, out string) (*xamlport.Result, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	res, err := conv.Convert(src, path)
	if err != nil {
		return nil, err
	}

	if out == "" {
		_, err = os.Stdout.Write(res.Output)
		return res, err
	}

	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return nil, err
	}

	return res, os.WriteFile(out, res.Output, 0o644)
}

func report(path string, res *xamlport.Result, verbose bool) {
	for _, d := range res.Diagnostics.All() {
		if d.Severity == dom.SeverityInfo && !verbose {
			continue
		}

		log.Print(d.String())
	}

	if verbose {
		log.Printf("%s: %s", path, res.Stats.Summary())
	}
}

func checkCommand() *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "run the conversion stages and report findings without writing output",
		ArgsUsage: "<file.xaml ...>",
		Flags:     configFlags(),
		Action:    runCheck,
	}
}

func runCheck(c *cli.Context) error {
	if c.NArg() == 0 {
		return cli.Exit("check expects at least one file argument", 2)
	}

	conv, err := newConverter(c, false)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}

	failed := 0

	for _, path := range c.Args().Slice() {
		src, err := os.ReadFile(path)
		if err != nil {
			return cli.Exit(err.Error(), 2)
		}

		res, err := conv.Check(src, path)
		if err != nil {
			log.Printf("%s: %v", path, err)
			failed++

			continue
		}

		for _, d := range res.Diagnostics.All() {
			fmt.Println(d.String())
		}

		if res.Diagnostics.HasErrors() {
			failed++
		}
	}

	if failed > 0 {
		return cli.Exit(fmt.Sprintf("%d document(s) with errors", failed), 1)
	}

	return nil
}

func rulesCommand() *cli.Command {
	return &cli.Command{
		Name:   "rules",
		Usage:  "list the registered rules per dispatch category",
		Action: runRules,
	}
}

func runRules(*cli.Context) error {
	conv, err := xamlport.New(xamlport.Options{})
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}

	reg := conv.Rules()

	sections := []struct {
		name  string
		rules []engine.Rule
	}{
		{"element", asRules(reg.ElementRules())},
		{"property", asRules(reg.PropertyRules())},
		{"extension", asRules(reg.ExtensionRules())},
		{"restructure", asRules(reg.RestructureRules())},
		{"cleanup", asRules(reg.CleanupRules())},
	}

	for _, s := range sections {
		fmt.Printf("%s:\n", s.name)

		for _, r := range s.rules {
			typed := ""
			if tr, ok := r.(engine.TypedRule); ok && tr.NeedsTypedView() {
				typed = "  (typed)"
			}

			fmt.Printf("  %3d  %s%s\n", r.Priority(), r.Name(), typed)
		}
	}

	return nil
}

func asRules[R engine.Rule](rules []R) []engine.Rule {
	out := make([]engine.Rule, len(rules))
	for i, r := range rules {
		out[i] = r
	}

	return out
}
