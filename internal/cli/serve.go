package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/alpsviz/pkg/cache"
	"github.com/matzehuels/alpsviz/pkg/observability"
	"github.com/matzehuels/alpsviz/pkg/pipeline"
	"github.com/matzehuels/alpsviz/pkg/server"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr    string // listen address
	redis   string // Redis URL for the artifact cache; local file cache when empty
	noCache bool   // disable the artifact cache
	config  string // config file, defaults to alpsviz.toml next to the profile
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{addr: defaultAddr}

	cmd := &cobra.Command{
		Use:   "serve <profile>",
		Short: "Serve live diagrams of an ALPS profile over HTTP",
		Long: `Serve live diagrams of an ALPS profile over HTTP.

Every request re-reads the profile, so reloading the page shows the current
state of the files. Rendered SVG and PNG output is cached by content, locally
or in Redis when --redis is set.

Endpoints: /diagram.svg, /diagram.png, /diagram.dot, /profile.json, /healthz.
Query parameters: label, and, or, color.`,
		Example: `  alpsviz serve blog.json
  alpsviz serve blog.json --addr :9000 --redis redis://localhost:6379/0`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.redis, "redis", "", "Redis URL for the artifact cache (redis://host:port/db)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().StringVar(&opts.config, "config", "", "config file (default alpsviz.toml next to the profile)")

	return cmd
}

func (c *CLI) runServe(cmd *cobra.Command, input string, sopts serveOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	changed := cmd.Flags().Changed

	cfg, err := loadConfig(sopts.config, input)
	if err != nil {
		return err
	}
	var defaults pipeline.Options
	cfg.apply(&defaults, changed)
	addr := cfg.serveAddr(sopts.addr, changed)
	redisURL := cfg.serveRedis(sopts.redis, changed)

	abs, err := filepath.Abs(input)
	if err != nil {
		return err
	}

	var (
		runner  *pipeline.Runner
		backend string
	)
	switch {
	case redisURL != "" && !sopts.noCache:
		rc, err := cache.NewRedisCache(ctx, redisURL)
		if err != nil {
			return err
		}
		keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "serve:"+cache.Hash([]byte(abs))[:12]+":")
		runner = pipeline.NewRunner(rc, keyer, c.Logger)
		backend = "redis"
	default:
		runner, err = c.newRunner(sopts.noCache)
		if err != nil {
			return err
		}
		backend = "file"
		if sopts.noCache {
			backend = "off"
		}
	}
	defer runner.Close()

	observability.SetHTTPHooks(&logHooks{logger: c.Logger})

	srv := server.New(server.Config{
		Input:    abs,
		Runner:   runner,
		Defaults: defaults,
		Logger:   logger,
	})

	printSuccess("Serving %s", StyleTitle.Render(filepath.Base(input)))
	printKeyValue("Diagram", StyleLink.Render("http://"+displayAddr(addr)+"/diagram.svg"))
	printKeyValue("Cache", backend)

	return srv.ListenAndServe(ctx, addr)
}

// displayAddr turns a bare ":port" listen address into a browsable host.
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
