// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/poiesic/appsearch"
	"github.com/poiesic/appsearch/config"
	"github.com/poiesic/appsearch/core"
	"github.com/urfave/cli/v2"
)

func dbFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "db",
		Aliases: []string{"d"},
		Usage:   "Path to BadgerDB database directory (overrides storage.path)",
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "appsearch",
		Usage: "Search a launcher apps catalog by title",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to TOML configuration file",
				Value:   "appsearch.toml",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "seed",
				Usage:  "Load the sample apps catalog",
				Action: seedCommand,
				Flags:  []cli.Flag{dbFlag()},
			},
			{
				Name:   "add",
				Usage:  "Add an app to the catalog",
				Action: addCommand,
				Flags: []cli.Flag{
					dbFlag(),
					&cli.StringFlag{
						Name:     "package",
						Aliases:  []string{"p"},
						Usage:    "Package name of the app",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "activity",
						Usage: "Launch activity within the package",
						Value: ".MainActivity",
					},
					&cli.StringFlag{
						Name:     "title",
						Aliases:  []string{"t"},
						Usage:    "Display title",
						Required: true,
					},
				},
			},
			{
				Name:   "rename",
				Usage:  "Change the title of an app",
				Action: renameCommand,
				Flags: []cli.Flag{
					dbFlag(),
					&cli.StringFlag{
						Name:     "package",
						Aliases:  []string{"p"},
						Usage:    "Package name of the app",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "activity",
						Usage: "Launch activity within the package",
						Value: ".MainActivity",
					},
					&cli.StringFlag{
						Name:     "title",
						Aliases:  []string{"t"},
						Usage:    "New display title",
						Required: true,
					},
				},
			},
			{
				Name:   "remove",
				Usage:  "Remove every app of a package",
				Action: removeCommand,
				Flags: []cli.Flag{
					dbFlag(),
					&cli.StringFlag{
						Name:     "package",
						Aliases:  []string{"p"},
						Usage:    "Package name to remove",
						Required: true,
					},
				},
			},
			{
				Name:   "list",
				Usage:  "List the catalog in order",
				Action: listCommand,
				Flags:  []cli.Flag{dbFlag()},
			},
			{
				Name:      "search",
				Usage:     "Search the catalog",
				ArgsUsage: "<query...>",
				Action:    searchCommand,
				Flags: []cli.Flag{
					dbFlag(),
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of apps to show (overrides search.max_results)",
					},
				},
			},
		},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// loadConfig reads the configuration and applies command-line overrides.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}
	if db := c.String("db"); db != "" {
		cfg.Storage.Path = db
		cfg.Storage.InMemory = false
	}
	if c.IsSet("limit") {
		cfg.Search.MaxResults = c.Int("limit")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func openLauncher(ctx context.Context, c *cli.Context) (*appsearch.Launcher, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}
	slog.Debug("opening catalog", "path", cfg.Storage.Path, "in_memory", cfg.Storage.InMemory)
	return appsearch.NewLauncher(ctx, appsearch.WithConfig(cfg), appsearch.WithLogger(slog.Default()))
}

func seedCommand(c *cli.Context) error {
	ctx := context.Background()
	l, err := openLauncher(ctx, c)
	if err != nil {
		return err
	}
	defer l.Close()

	existing, err := l.Apps(ctx)
	if err != nil {
		return err
	}
	known := make(map[core.ID]bool, len(existing))
	for _, app := range existing {
		known[app.Id] = true
	}

	var missing []*core.AppInfo
	for _, app := range sampleApps() {
		if !known[core.IDFromComponent(app.Package, app.Activity)] {
			missing = append(missing, app)
		}
	}
	if len(missing) > 0 {
		if err := l.AddApps(ctx, missing...); err != nil {
			return fmt.Errorf("seeding catalog: %w", err)
		}
	}

	slog.Info("seeded catalog", "added", len(missing), "total", len(existing)+len(missing))
	fmt.Fprintf(c.App.Writer, "added %d apps\n", len(missing))
	return nil
}

func addCommand(c *cli.Context) error {
	ctx := context.Background()
	l, err := openLauncher(ctx, c)
	if err != nil {
		return err
	}
	defer l.Close()

	app := &core.AppInfo{
		Title:    c.String("title"),
		Package:  c.String("package"),
		Activity: c.String("activity"),
	}
	if err := l.AddApps(ctx, app); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "added %s (%016x)\n", app.ComponentName(), uint64(app.Id))
	return nil
}

func renameCommand(c *cli.Context) error {
	ctx := context.Background()
	l, err := openLauncher(ctx, c)
	if err != nil {
		return err
	}
	defer l.Close()

	id := core.IDFromComponent(c.String("package"), c.String("activity"))
	if err := l.UpdateTitle(ctx, id, c.String("title")); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "renamed %s/%s to %q\n", c.String("package"), c.String("activity"), c.String("title"))
	return nil
}

func removeCommand(c *cli.Context) error {
	ctx := context.Background()
	l, err := openLauncher(ctx, c)
	if err != nil {
		return err
	}
	defer l.Close()

	removed, err := l.RemovePackage(ctx, c.String("package"))
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "removed %d apps\n", removed)
	return nil
}

func listCommand(c *cli.Context) error {
	ctx := context.Background()
	l, err := openLauncher(ctx, c)
	if err != nil {
		return err
	}
	defer l.Close()

	apps, err := l.Apps(ctx)
	if err != nil {
		return err
	}
	for _, app := range apps {
		fmt.Fprintf(c.App.Writer, "%4d  %-24s %s\n", app.Order, app.Title, app.ComponentName())
	}
	return nil
}

func searchCommand(c *cli.Context) error {
	query := strings.Join(c.Args().Slice(), " ")

	ctx := context.Background()
	l, err := openLauncher(ctx, c)
	if err != nil {
		return err
	}
	defer l.Close()

	items, err := l.Search(ctx, query)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Fprintf(c.App.Writer, "no apps match %q\n", query)
		return nil
	}
	printItems(c, items)
	return nil
}

func printItems(c *cli.Context, items []core.AdapterItem) {
	for _, item := range items {
		switch item.Kind {
		case core.KindSearchTitle:
			fmt.Fprintf(c.App.Writer, "== %s ==\n", item.Section.Title)
		case core.KindApp:
			fmt.Fprintf(c.App.Writer, "%d. %s (%s)\n", item.RankInSection+1, item.App.Title, item.App.ComponentName())
		}
	}
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
