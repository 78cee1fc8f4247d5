package main

import (
	"io"
	"net/http"
	"os"

	"github.com/lodthe/docker-tags/internal/catalog"
	"github.com/lodthe/docker-tags/internal/config"
	"github.com/lodthe/docker-tags/internal/discovery"
	"github.com/lodthe/docker-tags/internal/plugin"
	"github.com/lodthe/docker-tags/internal/tagstable"
	"github.com/lodthe/docker-tags/pkg/dockerhub"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type app struct {
	out io.Writer

	configPath  string
	catalogPath string
	proxyURL    string

	cfg      *config.Config
	logger   zerolog.Logger
	entities *catalog.Catalog
	plugin   *plugin.Plugin
}

type tableFlags struct {
	heading   string
	columns   []string
	page      int
	pageSize  int
	noCount   bool
	extension string
}

func (f *tableFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.heading, "heading", "", "table heading")
	cmd.Flags().StringSliceVar(&f.columns, "columns", nil, "columns to show: name, username, status, architecture")
	cmd.Flags().IntVar(&f.page, "page", -1, "zero-based page to show")
	cmd.Flags().IntVar(&f.pageSize, "page-size", 0, "rows per page")
	cmd.Flags().BoolVar(&f.noCount, "no-count", false, "hide the tag count in the heading")
	cmd.Flags().StringVar(&f.extension, "extension", plugin.ExtensionTagsTable, "table extension to mount")
}

// options applies the flags on top of the configured table options.
func (f *tableFlags) options(base tagstable.Options) tagstable.Options {
	override := tagstable.Options{
		Heading:  f.heading,
		PageSize: f.pageSize,
	}
	if len(f.columns) > 0 {
		override.Columns = make([]tagstable.Column, 0, len(f.columns))
		for _, c := range f.columns {
			override.Columns = append(override.Columns, tagstable.Column(c))
		}
	}
	if f.noCount {
		show := false
		override.ShowCountInHeading = &show
	}

	return base.Merge(override)
}

func (f *tableFlags) query(c *tagstable.Controller) tagstable.Query {
	q := c.InitialQuery()
	if f.page >= 0 {
		q.Page = f.page
	}

	return q
}

func newRootCmd(out io.Writer) *cobra.Command {
	a := &app{out: out}

	root := &cobra.Command{
		Use:           "docker-tags",
		Short:         "Show Docker Hub tags of catalog entities",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init()
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", config.PathFromEnv(), "path to the config file")
	root.PersistentFlags().StringVar(&a.catalogPath, "catalog", "", "path to the catalog file, overrides the config")
	root.PersistentFlags().StringVar(&a.proxyURL, "proxy-url", "", "registry proxy base url, overrides the config")

	root.AddCommand(newShowCmd(a))
	root.AddCommand(newListCmd(a))

	return root
}

func (a *app) init() error {
	cfg := config.Default()
	if _, err := os.Stat(a.configPath); err == nil {
		cfg, err = config.Load(a.configPath)
		if err != nil {
			return err
		}
	}
	if a.catalogPath != "" {
		cfg.CatalogPath = a.catalogPath
	}
	if a.proxyURL != "" {
		cfg.Registry.DiscoveryBaseURL = a.proxyURL
	}

	a.cfg = cfg
	a.logger = cfg.Logger()

	entities, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return errors.Wrapf(err, "catalog %s cannot be loaded", cfg.CatalogPath)
	}
	a.entities = entities

	a.plugin = plugin.New(plugin.Deps{
		Logger:    a.logger,
		Discovery: discovery.NewStatic(cfg.Registry.DiscoveryBaseURL),
		Fetcher:   dockerhub.NewHTTPFetcher(cfg.Registry.MaxRPS, &http.Client{Timeout: cfg.Registry.RequestTimeout}),
	})

	return nil
}
