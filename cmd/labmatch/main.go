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
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// corpusFlags locate the corpus and the embedding service. Unset flags
// leave the value from the config file or environment in place.
func corpusFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "excel-path",
			Usage: "Workbook holding the reference terminology table (overrides EXCEL_PATH)",
		},
		&cli.StringFlag{
			Name:  "mapping-file",
			Usage: "Workbook holding the exact-match mapping table (overrides MAPPING_FILE)",
		},
		&cli.StringFlag{
			Name:  "cache-dir",
			Usage: "Vector cache directory (overrides CACHE_DIR)",
		},
		&cli.StringFlag{
			Name:  "codelist",
			Usage: "Keep only reference rows of this codelist, e.g. \"Laboratory Test Code\"",
		},
		&cli.StringFlag{
			Name:  "embedding-host",
			Usage: "Embedding service host URL",
		},
		&cli.StringFlag{
			Name:  "embedding-model",
			Usage: "Embedding model name",
		},
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "labmatch",
		Usage: "Resolve lab test names to standardized terminology codes",
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
				Usage:   "YAML or TOML config file",
			},
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "Environment file loaded before reading the environment",
				Value: ".env",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "search",
				Usage:     "Find the terminology entries matching a lab test name",
				ArgsUsage: "<query>",
				Action:    searchCommand,
				Flags: append(corpusFlags(),
					&cli.IntFlag{
						Name:    "top-k",
						Aliases: []string{"k"},
						Usage:   "Number of semantic results (0 uses the configured default)",
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Output format: table, markdown or json (default table on a terminal, markdown otherwise)",
					},
					&cli.BoolFlag{
						Name:  "translate",
						Usage: "Append translations to English display text",
					},
					&cli.BoolFlag{
						Name:  "trace",
						Usage: "Log every search stage at debug level",
					},
				),
			},
			{
				Name:   "build-cache",
				Usage:  "Compute the field vectors of the reference table and store them",
				Action: buildCacheCommand,
				Flags: append(corpusFlags(),
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Recompute even when a fresh cache entry exists",
					},
				),
			},
			{
				Name:  "cache",
				Usage: "Manage the vector cache",
				Subcommands: []*cli.Command{
					{
						Name:   "list",
						Usage:  "List cached vector sets",
						Action: cacheListCommand,
						Flags:  corpusFlags(),
					},
					{
						Name:   "clear",
						Usage:  "Remove cached vector sets",
						Action: cacheClearCommand,
						Flags: append(corpusFlags(),
							&cli.StringFlag{
								Name:  "fingerprint",
								Usage: "Remove only the entry with this fingerprint (hex)",
							},
						),
					},
				},
			},
			{
				Name:   "serve",
				Usage:  "Serve the matcher as an MCP tool over stdio",
				Action: serveCommand,
				Flags:  corpusFlags(),
			},
		},
	}
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
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

	// stdout carries results and the MCP transport
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
