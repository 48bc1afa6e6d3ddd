package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"quill/pkg/config"
	"quill/pkg/observability"
	"quill/pkg/resource"
	stdnet "quill/std/net"
)

// cli carries state shared by every subcommand once PersistentPreRunE has run.
type cli struct {
	configPath string
	logLevel   string

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:           "quill",
		Short:         "A small web browser: fetch a page, lay out its text and draw it.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.initialize()
		},
	}
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "config file (default is ./quill.yaml)")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(
		c.newFetchCmd(),
		c.newTokensCmd(),
		c.newLayoutCmd(),
		c.newRenderCmd(),
		c.newViewCmd(),
	)
	return root
}

func (c *cli) initialize() error {
	v, err := config.New(c.configPath)
	if err != nil {
		return err
	}
	if c.logLevel != "" {
		v.Set("logger.level", c.logLevel)
	}
	cfg, err := config.FromViper(v)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	observability.InitializeLogger(cfg.Logger)
	c.cfg = cfg
	c.logger = observability.GetLogger()
	return nil
}

func (c *cli) client() *stdnet.Client {
	return stdnet.NewClient(c.cfg.Network.Timeout, c.logger)
}

// fetcher reads local files and network pages, caching the latter when
// network.cache_ttl is set.
func (c *cli) fetcher() resource.Fetcher {
	var f resource.Fetcher = resource.NewFetcher(c.client())
	if c.cfg.Network.CacheTTL > 0 {
		f = resource.NewCachingFetcher(f, c.cfg.Network.CacheTTL)
	}
	return f
}

func (c *cli) renderer(f resource.Fetcher) *resource.QuillRenderer {
	r := resource.NewQuillRenderer(f, c.cfg.Fonts)
	r.SetLogger(c.logger)
	return r
}
