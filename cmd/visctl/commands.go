package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"visrender/internal/artifacts"
	"visrender/internal/assets"
	"visrender/internal/charts"
	"visrender/internal/config"
	"visrender/internal/pages"
	"visrender/internal/storage"
)

var inputFlag = &cli.StringFlag{
	Name:    "input",
	Aliases: []string{"i"},
	Value:   "-",
	Usage:   "chart options JSON file, - for stdin",
}

var outputFlag = &cli.StringFlag{
	Name:     "output",
	Aliases:  []string{"o"},
	Required: true,
	Usage:    "file to write, - for stdout",
}

var renderCommand = &cli.Command{
	Name:      "render",
	Usage:     "render chart options to a PNG file",
	ArgsUsage: " ",
	Flags: []cli.Flag{
		inputFlag,
		outputFlag,
		&cli.IntFlag{
			Name:  "width",
			Value: charts.DefaultWidth,
			Usage: "default image width when the options carry none",
		},
		&cli.IntFlag{
			Name:  "height",
			Value: charts.DefaultHeight,
			Usage: "default image height when the options carry none",
		},
	},
	Action: renderPNG,
}

var renderHTMLCommand = &cli.Command{
	Name:      "render-html",
	Usage:     "render chart options to an HTML page",
	ArgsUsage: " ",
	Flags: []cli.Flag{
		inputFlag,
		outputFlag,
		&cli.StringFlag{
			Name:  "renderer",
			Value: config.HTMLRendererGPTVis,
			Usage: "page flavour, gptvis or echarts",
		},
	},
	Action: renderHTML,
}

var sweepCommand = &cli.Command{
	Name:  "sweep",
	Usage: "delete expired artifacts from the configured storage once",
	Flags: []cli.Flag{
		&cli.DurationFlag{
			Name:  "retention",
			Usage: "override RETENTION for this run",
		},
	},
	Action: sweep,
}

var fetchRuntimeCommand = &cli.Command{
	Name:  "fetch-runtime",
	Usage: "download the gpt-vis runtime script into the configured storage",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "url",
			Usage: "override GPTVIS_RUNTIME_URL for this run",
		},
	},
	Action: fetchRuntime,
}

func readOptions(c *cli.Context) (charts.Options, error) {
	var (
		data []byte
		err  error
	)
	if path := c.String(inputFlag.Name); path == "-" {
		data, err = io.ReadAll(c.App.Reader)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read chart options: %w", err)
	}
	return charts.ParseOptions(data)
}

func writeOutput(c *cli.Context, data []byte) error {
	path := c.String(outputFlag.Name)
	if path == "-" {
		_, err := c.App.Writer.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	fmt.Fprintf(c.App.ErrWriter, "wrote %s (%d bytes)\n", path, len(data))
	return nil
}

func renderPNG(c *cli.Context) error {
	opts, err := readOptions(c)
	if err != nil {
		return err
	}

	renderer := charts.NewGoChartRenderer(c.Int("width"), c.Int("height"))
	image, err := renderer.RenderPNG(c.Context, opts)
	if err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return writeOutput(c, image)
}

func renderHTML(c *cli.Context) error {
	opts, err := readOptions(c)
	if err != nil {
		return err
	}

	builder, err := pages.NewPageBuilder(c.String("renderer"))
	if err != nil {
		return err
	}
	page, err := builder.BuildHTML(c.Context, opts)
	if err != nil {
		return fmt.Errorf("failed to render HTML chart: %w", err)
	}
	return writeOutput(c, []byte(page))
}

func openStorage(c *cli.Context) (*config.Config, storage.StorageClient, error) {
	cfg, err := config.Load(c.Context)
	if err != nil {
		return nil, nil, err
	}
	store, err := storage.NewStorageClient(c.Context, cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, store, nil
}

func sweep(c *cli.Context) error {
	cfg, store, err := openStorage(c)
	if err != nil {
		return err
	}
	defer store.Close()

	retention := cfg.Retention
	if c.IsSet("retention") {
		retention = c.Duration("retention")
	}
	if retention <= 0 {
		return errors.New("retention is not set; use RETENTION or --retention")
	}

	removed, err := artifacts.NewSweeper(store, retention, cfg.CleanupInterval).SweepOnce(c.Context)
	fmt.Fprintf(c.App.Writer, "removed %d expired artifacts from %s\n", removed, store.Location())
	return err
}

func fetchRuntime(c *cli.Context) error {
	cfg, store, err := openStorage(c)
	if err != nil {
		return err
	}
	defer store.Close()

	url := cfg.GPTVisRuntimeURL
	if c.IsSet("url") {
		url = c.String("url")
	}
	if url == "" {
		return errors.New("no runtime URL; use GPTVIS_RUNTIME_URL or --url")
	}

	downloaded, err := assets.NewFetcher(store).EnsureRuntime(c.Context, url)
	if err != nil {
		return err
	}
	if !downloaded {
		fmt.Fprintf(c.App.Writer, "%s already present in %s\n", pages.RuntimeScript, store.Location())
		return nil
	}
	fmt.Fprintf(c.App.Writer, "installed %s into %s\n", pages.RuntimeScript, store.Location())
	return nil
}
