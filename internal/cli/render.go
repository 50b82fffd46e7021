package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/alpsviz/pkg/errors"
	"github.com/matzehuels/alpsviz/pkg/pipeline"
	"github.com/matzehuels/alpsviz/pkg/watch"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output  string   // output file (single format) or base path
	formats string   // comma separated: dot, svg, png, json
	label   string   // label strategy: id, title, both
	andTags []string // highlight descriptors carrying all of these tags
	orTags  []string // highlight descriptors carrying any of these tags
	color   string   // highlight color
	docExt  string   // extension of documentation page links
	watch   bool     // re-render when a profile file changes
	noCache bool     // bypass the artifact cache
	config  string   // config file, defaults to alpsviz.toml next to the profile
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <profile>",
		Short: "Render an ALPS profile as a state diagram",
		Long: `Render an ALPS profile as an application state diagram.

The profile may be JSON, XML or YAML and may reference descriptors in other
local files. Output files are named after the profile unless --output is set:
blog.json renders to blog.dot and blog.svg by default.`,
		Example: `  alpsviz render blog.json
  alpsviz render blog.xml -f svg,png --label both
  alpsviz render blog.yaml --or-tag collection --color blue
  alpsviz render blog.json -f dot -o - | dot -Tpdf > blog.pdf
  alpsviz render blog.json --watch`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format), base path, or - for stdout")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): dot, svg, png, json (default dot,svg)")
	cmd.Flags().StringVar(&opts.label, "label", "", "label strategy: id (default), title, both")
	cmd.Flags().StringSliceVar(&opts.andTags, "and-tag", nil, "highlight descriptors with all of these tags")
	cmd.Flags().StringSliceVar(&opts.orTags, "or-tag", nil, "highlight descriptors with any of these tags")
	cmd.Flags().StringVar(&opts.color, "color", "", "highlight color (default red when tags are set)")
	cmd.Flags().StringVar(&opts.docExt, "doc-ext", "", "extension of linked documentation pages (default html)")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "re-render whenever a profile file changes")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().StringVar(&opts.config, "config", "", "config file (default alpsviz.toml next to the profile)")

	return cmd
}

// runRender resolves the configuration and renders once, or keeps rendering
// in watch mode until the context is cancelled.
func (c *CLI) runRender(cmd *cobra.Command, input string, ropts renderOpts) error {
	ctx := cmd.Context()
	changed := cmd.Flags().Changed

	cfg, err := loadConfig(ropts.config, input)
	if err != nil {
		return err
	}
	if cfg.path != "" {
		loggerFromContext(ctx).Debug("loaded config", "path", cfg.path)
	}

	opts := pipeline.Options{
		Input:   input,
		Label:   ropts.label,
		AndTags: ropts.andTags,
		OrTags:  ropts.orTags,
		Color:   ropts.color,
		DocExt:  ropts.docExt,
		Formats: pipeline.ParseFormats(ropts.formats),
	}
	cfg.apply(&opts, changed)
	output := cfg.output(ropts.output, changed)

	if output == "-" {
		if ropts.watch {
			return errors.New(errors.ErrCodeInvalidInput, "--watch cannot write to stdout")
		}
		switch len(opts.Formats) {
		case 0:
			opts.Formats = []string{pipeline.FormatDOT}
		case 1:
		default:
			return errors.New(errors.ErrCodeInvalidInput, "stdout output needs exactly one format")
		}
	}

	runner, err := c.newRunner(ropts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	t := &renderTarget{cmd: cmd, runner: runner, opts: opts, output: output}
	if !ropts.watch {
		_, err := t.render(ctx)
		return err
	}
	return t.watch(ctx)
}

// renderTarget is one configured render, repeated on every change in watch
// mode.
type renderTarget struct {
	cmd    *cobra.Command
	runner *pipeline.Runner
	opts   pipeline.Options
	output string
}

// render runs the pipeline and writes every artifact.
func (t *renderTarget) render(ctx context.Context) (*pipeline.Result, error) {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	result, err := t.runner.Execute(ctx, t.opts)
	if err != nil {
		return nil, err
	}

	if t.output == "-" {
		_, err := t.cmd.OutOrStdout().Write(result.Artifacts[result.Formats[0]])
		return result, err
	}

	var written []string
	for _, format := range result.Formats {
		path := outputPath(format, t.opts.Input, t.output, len(result.Formats))
		if err := writeFile(path, result.Artifacts[format]); err != nil {
			return nil, err
		}
		written = append(written, path)
	}

	prog.done(fmt.Sprintf("Rendered %s", filepath.Base(t.opts.Input)))
	printStats(result.Stats, result.CacheInfo.RenderHit)
	for _, path := range written {
		printFile(path)
	}
	return result, nil
}

// watch renders, then re-renders whenever one of the resolved files changes.
// The watched set follows the files the latest successful render read.
func (t *renderTarget) watch(ctx context.Context) error {
	logger := loggerFromContext(ctx)

	files := []string{t.opts.Input}
	if result, err := t.render(ctx); err != nil {
		printError("%s", errors.UserMessage(err))
	} else {
		files = result.Files
	}

	var w *watch.Watcher
	handler := func(changes []watch.Change) {
		for _, ch := range changes {
			logger.Debug("file changed", "path", ch.Path, "op", ch.Op)
		}
		result, err := t.render(ctx)
		if err != nil {
			if ctx.Err() == nil {
				printError("%s", errors.UserMessage(err))
			}
			return
		}
		if err := w.SetFiles(result.Files); err != nil {
			logger.Warn("update watched files", "err", err)
		}
	}

	w, err := watch.New(files, handler, &watch.Options{
		OnError: func(err error) { logger.Warn("watch error", "err", err) },
	})
	if err != nil {
		return err
	}
	defer w.Close()

	printInfo("Watching %d file(s) for changes, press Ctrl+C to stop", w.Files())
	return w.Run(ctx)
}

// outputPath returns where one format is written. A single format goes to
// output verbatim when it is set; otherwise files are named base.format.
// JSON is written as base.profile.json so it never overwrites a JSON profile.
func outputPath(format, input, output string, formats int) string {
	if output != "" && formats == 1 {
		return output
	}
	base := basePath(output, input)
	if format == pipeline.FormatJSON {
		return base + ".profile.json"
	}
	return base + "." + format
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .dot, ...), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
