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
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/poiesic/searchlight"
	"github.com/poiesic/searchlight/ai"
	"github.com/poiesic/searchlight/core"
	"github.com/urfave/cli/v2"
)

func main() {
	dbFlag := &cli.StringFlag{
		Name:     "db",
		Aliases:  []string{"d"},
		Usage:    "Path to the search database directory",
		Required: true,
	}
	embeddingFlags := []cli.Flag{
		&cli.StringFlag{
			Name:  "embedding-host",
			Usage: "Embedding service host URL (omit to use the built-in hash embedder)",
		},
		&cli.StringFlag{
			Name:  "embedding-model",
			Usage: "Embedding model name",
		},
	}

	app := &cli.App{
		Name:  "searchlight",
		Usage: "Embedded search engine for content management",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "index",
				Usage:     "Index content under an id (content from the argument or stdin)",
				ArgsUsage: "[content]",
				Action:    indexCommand,
				Flags: append([]cli.Flag{
					dbFlag,
					&cli.StringFlag{
						Name:     "id",
						Usage:    "Content identifier",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "type",
						Usage: "Content type (document, media, comment)",
						Value: "document",
					},
					&cli.StringFlag{
						Name:  "title",
						Usage: "Content title",
					},
					&cli.StringFlag{
						Name:  "author",
						Usage: "Content author",
					},
					&cli.StringSliceFlag{
						Name:  "tag",
						Usage: "Content tag (repeatable)",
					},
					&cli.StringFlag{
						Name:  "category",
						Usage: "Content category",
					},
				}, embeddingFlags...),
			},
			{
				Name:   "remove",
				Usage:  "Remove content from the index",
				Action: removeCommand,
				Flags: []cli.Flag{
					dbFlag,
					&cli.StringFlag{
						Name:     "id",
						Usage:    "Content identifier",
						Required: true,
					},
				},
			},
			{
				Name:      "search",
				Usage:     "Search indexed content",
				ArgsUsage: "<query>",
				Action:    searchCommand,
				Flags: append([]cli.Flag{
					dbFlag,
					&cli.BoolFlag{
						Name:  "semantic",
						Usage: "Rank by embedding similarity instead of keywords",
					},
					&cli.BoolFlag{
						Name:  "fuzzy",
						Usage: "Tolerate close-but-misspelled terms",
					},
					&cli.BoolFlag{
						Name:  "case-sensitive",
						Usage: "Match term case exactly",
					},
					&cli.BoolFlag{
						Name:  "whole-words",
						Usage: "Match whole words only",
					},
					&cli.StringSliceFlag{
						Name:  "type",
						Usage: "Restrict to a content type (repeatable)",
					},
					&cli.StringSliceFlag{
						Name:  "author",
						Usage: "Restrict to an author (repeatable)",
					},
					&cli.StringSliceFlag{
						Name:  "tag",
						Usage: "Restrict to a tag (repeatable)",
					},
					&cli.StringSliceFlag{
						Name:  "category",
						Usage: "Restrict to a category (repeatable)",
					},
					&cli.TimestampFlag{
						Name:   "after",
						Usage:  "Only content created on or after this date",
						Layout: time.DateOnly,
					},
					&cli.TimestampFlag{
						Name:   "before",
						Usage:  "Only content created on or before this date",
						Layout: time.DateOnly,
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of results to print",
						Value: 10,
					},
				}, embeddingFlags...),
			},
			{
				Name:   "stats",
				Usage:  "Print index statistics",
				Action: statsCommand,
				Flags:  []cli.Flag{dbFlag},
			},
			{
				Name:   "analytics",
				Usage:  "Print search usage analytics",
				Action: analyticsCommand,
				Flags: []cli.Flag{
					dbFlag,
					&cli.BoolFlag{
						Name:  "clear",
						Usage: "Reset analytics after printing",
					},
				},
			},
			{
				Name:      "reindex",
				Usage:     "Clear the index and re-index the given files",
				ArgsUsage: "<file>...",
				Action:    reindexCommand,
				Flags: append([]cli.Flag{
					dbFlag,
					&cli.StringFlag{
						Name:  "type",
						Usage: "Content type for the re-indexed files (document, media, comment)",
						Value: "document",
					},
				}, embeddingFlags...),
			},
			{
				Name:   "clear",
				Usage:  "Remove all content from the index",
				Action: clearCommand,
				Flags:  []cli.Flag{dbFlag},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// openEngine builds an engine from the command's flags. The embedding flags
// are optional; without them the engine uses the hash embedder and stays
// fully offline.
func openEngine(c *cli.Context) (*searchlight.Engine, error) {
	opts := []searchlight.EngineOption{
		searchlight.WithLogger(slog.Default()),
	}

	if host := c.String("embedding-host"); host != "" {
		model := c.String("embedding-model")
		if model == "" {
			return nil, fmt.Errorf("embedding-model is required with embedding-host")
		}
		aiConfig := ai.NewConfig(
			ai.WithEmbeddingHost(host),
			ai.WithEmbeddingModel(model),
		)
		if err := aiConfig.Validate(); err != nil {
			return nil, fmt.Errorf("invalid embedding configuration: %w", err)
		}
		opts = append(opts, searchlight.WithEmbeddingService(aiConfig))
	}

	engine, err := searchlight.New(c.String("db"), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return engine, nil
}

func indexCommand(c *cli.Context) error {
	ctx := context.Background()

	contentType, err := core.ParseContentType(c.String("type"))
	if err != nil {
		return fmt.Errorf("invalid content type %q: must be one of document, media, comment", c.String("type"))
	}

	content := strings.TrimSpace(c.Args().First())
	if content == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read content from stdin: %w", err)
		}
		content = strings.TrimSpace(string(data))
	}
	if content == "" {
		return fmt.Errorf("content is required (argument or stdin)")
	}

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	meta := core.Metadata{
		Title:    c.String("title"),
		Author:   c.String("author"),
		Tags:     c.StringSlice("tag"),
		Category: c.String("category"),
	}
	if err := engine.IndexContent(ctx, c.String("id"), contentType, content, meta); err != nil {
		return fmt.Errorf("indexing failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Indexed %q (%s, %d bytes)\n", c.String("id"), contentType, len(content))
	return nil
}

func removeCommand(c *cli.Context) error {
	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	engine.RemoveFromIndex(context.Background(), c.String("id"))
	fmt.Fprintf(os.Stderr, "Removed %q\n", c.String("id"))
	return nil
}

func searchCommand(c *cli.Context) error {
	queryText := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if queryText == "" {
		return fmt.Errorf("query is required")
	}

	types := make([]core.ContentType, 0, len(c.StringSlice("type")))
	for _, name := range c.StringSlice("type") {
		contentType, err := core.ParseContentType(name)
		if err != nil {
			return fmt.Errorf("invalid content type %q: must be one of document, media, comment", name)
		}
		types = append(types, contentType)
	}

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	query := &core.SearchQuery{
		Text: queryText,
		Options: core.SearchOptions{
			Fuzzy:         c.Bool("fuzzy"),
			Semantic:      c.Bool("semantic"),
			CaseSensitive: c.Bool("case-sensitive"),
			WholeWords:    c.Bool("whole-words"),
		},
		Filters: core.SearchFilters{
			Types:      types,
			DateStart:  c.Timestamp("after"),
			DateEnd:    c.Timestamp("before"),
			Authors:    c.StringSlice("author"),
			Tags:       c.StringSlice("tag"),
			Categories: c.StringSlice("category"),
		},
	}

	results := engine.Search(context.Background(), query)
	if len(results) == 0 {
		fmt.Println("No results.")
		return nil
	}

	limit := c.Int("limit")
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}

	for i, result := range results {
		fmt.Printf("%2d. %s (%s, score %.1f)\n", i+1, result.Title, result.ID, result.Score)
		fmt.Printf("    %s\n", result.Excerpt)
	}
	return nil
}

func reindexCommand(c *cli.Context) error {
	ctx := context.Background()

	paths := c.Args().Slice()
	if len(paths) == 0 {
		return fmt.Errorf("at least one file is required")
	}

	contentType, err := core.ParseContentType(c.String("type"))
	if err != nil {
		return fmt.Errorf("invalid content type %q: must be one of document, media, comment", c.String("type"))
	}

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	err = engine.ReindexAll(ctx, func(ctx context.Context) error {
		for _, path := range paths {
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", path, err)
			}
			meta := core.Metadata{Title: filepath.Base(path)}
			if err := engine.IndexContent(ctx, path, contentType, string(data), meta); err != nil {
				return fmt.Errorf("failed to index %s: %w", path, err)
			}
			fmt.Fprintf(os.Stderr, "Indexed %s (%d bytes)\n", path, len(data))
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("reindexing failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Reindexed %d files\n", len(paths))
	return nil
}

func statsCommand(c *cli.Context) error {
	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	stats := engine.IndexStats()
	fmt.Printf("Total items:  %d\n", stats.TotalItems)
	for contentType, count := range stats.CountsByType {
		fmt.Printf("  %-10s  %d\n", contentType, count)
	}
	if !stats.LastIndexed.IsZero() {
		fmt.Printf("Last indexed: %s\n", stats.LastIndexed.Format(time.RFC3339))
	}
	return nil
}

func analyticsCommand(c *cli.Context) error {
	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	analytics := engine.SearchAnalytics()
	fmt.Printf("Total searches:     %d\n", analytics.TotalSearches)
	fmt.Printf("Average response:   %.2f ms\n", analytics.AverageResponseTime)

	if len(analytics.PopularQueries) > 0 {
		fmt.Println("Popular queries:")
		for _, qc := range analytics.PopularQueries {
			fmt.Printf("  %4d  %s\n", qc.Count, qc.Query)
		}
	}
	if len(analytics.NoResultsQueries) > 0 {
		fmt.Println("Queries with no results:")
		for _, query := range analytics.NoResultsQueries {
			fmt.Printf("  %s\n", query)
		}
	}

	if c.Bool("clear") {
		engine.ClearAnalytics(context.Background())
		fmt.Fprintln(os.Stderr, "Analytics cleared.")
	}
	return nil
}

func clearCommand(c *cli.Context) error {
	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	engine.ClearIndex(context.Background())
	fmt.Fprintln(os.Stderr, "Index cleared.")
	return nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

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

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
