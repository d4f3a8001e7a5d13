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

	"github.com/poiesic/persearch"
	"github.com/poiesic/persearch/core"
	"github.com/poiesic/persearch/ingestion"
	"github.com/urfave/cli/v2"
)

// commonFlags are shared by every command that touches the session database
// or the search index.
func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			Aliases: []string{"d"},
			Usage:   "Path to BadgerDB session database directory",
			Value:   "./session_db",
		},
		&cli.StringFlag{
			Name:  "es",
			Usage: "Search index base URL",
			Value: "http://localhost:9200",
		},
		&cli.StringFlag{
			Name:  "index",
			Usage: "Index name to query and seed",
			Value: persearch.DefaultIndex,
		},
	}
}

func main() {
	app := &cli.App{
		Name:  "persearch",
		Usage: "Personalized search over a crawled document index",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before:   setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "login",
				Usage:  "Start an authenticated session",
				Action: loginCommand,
				Flags: append(commonFlags(),
					&cli.StringFlag{
						Name:     "user",
						Aliases:  []string{"u"},
						Usage:    "Username to log in as",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "name",
						Usage: "Display name (defaults to the username)",
					},
				),
			},
			{
				Name:   "logout",
				Usage:  "End the current session",
				Action: logoutCommand,
				Flags:  commonFlags(),
			},
			{
				Name:      "search",
				Usage:     "Run a full-text search, re-ranked by the current profile",
				Action:    searchCommand,
				ArgsUsage: "QUERY",
				Flags: append(commonFlags(),
					&cli.IntFlag{
						Name:  "size",
						Usage: "Maximum number of results to fetch",
						Value: 20,
					},
				),
			},
			{
				Name:   "recommend",
				Usage:  "Show recommendations for the current session",
				Action: recommendCommand,
				Flags: append(commonFlags(),
					&cli.IntFlag{
						Name:    "count",
						Aliases: []string{"n"},
						Usage:   "Maximum number of recommendations to show",
						Value:   10,
					},
				),
			},
			{
				Name:   "click",
				Usage:  "Record a result click for the current user",
				Action: clickCommand,
				Flags: append(commonFlags(),
					&cli.StringFlag{
						Name:     "user",
						Aliases:  []string{"u"},
						Usage:    "Username the click belongs to",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "doc",
						Usage:    "Document ID that was clicked",
						Required: true,
					},
				),
			},
			{
				Name:   "history",
				Usage:  "Show a user's recorded search history and clicks",
				Action: historyCommand,
				Flags: append(commonFlags(),
					&cli.StringFlag{
						Name:     "user",
						Aliases:  []string{"u"},
						Usage:    "Username to inspect",
						Required: true,
					},
				),
			},
			{
				Name:   "seed",
				Usage:  "Create the index if needed and load a crawl feed into it",
				Action: seedCommand,
				Flags: append(commonFlags(),
					&cli.StringFlag{
						Name:     "feed",
						Usage:    "Path to the crawler's JSON feed",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Number of concurrent indexing workers",
						Value: 4,
					},
				),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func openClient(c *cli.Context) (*persearch.Client, error) {
	client, err := persearch.NewClient(context.Background(), c.String("db"), c.String("es"),
		persearch.WithIndex(c.String("index")))
	if err != nil {
		return nil, fmt.Errorf("failed to open client: %w", err)
	}
	return client, nil
}

func loginCommand(c *cli.Context) error {
	client, err := openClient(c)
	if err != nil {
		return err
	}
	defer client.Close()

	username := c.String("user")
	displayName := c.String("name")
	if displayName == "" {
		displayName = username
	}

	client.ProfileStore().Login(context.Background(), core.User{
		Username:    username,
		DisplayName: displayName,
	})

	fmt.Printf("Logged in as %s\n", username)
	return nil
}

func logoutCommand(c *cli.Context) error {
	client, err := openClient(c)
	if err != nil {
		return err
	}
	defer client.Close()

	store := client.ProfileStore()
	user, ok := store.CurrentUser()
	if !ok {
		fmt.Println("No active session")
		return nil
	}

	store.Logout(context.Background())
	fmt.Printf("Logged out %s\n", user.Username)
	return nil
}

func searchCommand(c *cli.Context) error {
	text := strings.Join(c.Args().Slice(), " ")
	if text == "" {
		return fmt.Errorf("search query is required")
	}

	client, err := openClient(c)
	if err != nil {
		return err
	}
	defer client.Close()

	svc, err := client.NewRecommendService()
	if err != nil {
		return err
	}

	docs, err := svc.Search(context.Background(), text, c.Int("size"))
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if len(docs) == 0 {
		fmt.Println("No results")
		return nil
	}

	for i, doc := range docs {
		fmt.Printf("%2d. %s (%s)\n", i+1, doc.Title, doc.ID)
		if doc.Description != "" {
			fmt.Printf("    %s\n", doc.Description)
		}
		fmt.Printf("    %s\n", doc.HTMLFilename)
	}
	return nil
}

func recommendCommand(c *cli.Context) error {
	client, err := openClient(c)
	if err != nil {
		return err
	}
	defer client.Close()

	svc, err := client.NewRecommendService()
	if err != nil {
		return err
	}

	recs, err := svc.Recommend(context.Background(), c.Int("count"))
	if err != nil {
		return fmt.Errorf("recommendation failed: %w", err)
	}

	if len(recs) == 0 {
		fmt.Println("No recommendations")
		return nil
	}

	for i, rec := range recs {
		fmt.Printf("%2d. %s (%s)\n", i+1, rec.Title, rec.ID)
		if rec.Description != "" {
			fmt.Printf("    %s\n", rec.Description)
		}
		fmt.Printf("    %s\n", rec.Link)
	}
	return nil
}

func clickCommand(c *cli.Context) error {
	client, err := openClient(c)
	if err != nil {
		return err
	}
	defer client.Close()

	err = client.ProfileStore().RecordClick(context.Background(), c.String("user"), c.String("doc"))
	if err != nil {
		return fmt.Errorf("click rejected: %w", err)
	}

	fmt.Printf("Recorded click on %s for %s\n", c.String("doc"), c.String("user"))
	return nil
}

func historyCommand(c *cli.Context) error {
	client, err := openClient(c)
	if err != nil {
		return err
	}
	defer client.Close()

	store := client.ProfileStore()
	username := c.String("user")

	history := store.History(username)
	fmt.Printf("Search history for %s:\n", username)
	if len(history) == 0 {
		fmt.Println("  (empty)")
	}
	for i, term := range history {
		fmt.Printf("  %2d. %s\n", i+1, term)
	}

	clicks := store.Clicks(username)
	fmt.Printf("Clicked documents:\n")
	if len(clicks) == 0 {
		fmt.Println("  (none)")
	}
	for docID, count := range clicks {
		fmt.Printf("  %s: %d\n", docID, count)
	}
	return nil
}

func seedCommand(c *cli.Context) error {
	client, err := openClient(c)
	if err != nil {
		return err
	}
	defer client.Close()

	pipeline, err := client.NewIngestionPipeline(ingestion.WithPoolSize(c.Int("workers")))
	if err != nil {
		return err
	}
	defer pipeline.Release()

	ctx := context.Background()
	if err := pipeline.EnsureIndex(ctx); err != nil {
		return fmt.Errorf("failed to ensure index: %w", err)
	}

	report, err := pipeline.IndexFeed(ctx, c.String("feed"))
	if err != nil {
		return fmt.Errorf("failed to index feed: %w", err)
	}

	fmt.Printf("Indexed %d documents (%d failed)\n", report.Indexed, report.Failed)
	return nil
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
