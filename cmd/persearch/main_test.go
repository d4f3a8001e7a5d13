package main

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestCommonFlags(t *testing.T) {
	flags := commonFlags()

	findString := func(name string) *cli.StringFlag {
		for _, flag := range flags {
			if f, ok := flag.(*cli.StringFlag); ok && f.Name == name {
				return f
			}
		}
		return nil
	}

	t.Run("db has a default path", func(t *testing.T) {
		f := findString("db")
		require.NotNil(t, f)
		assert.Equal(t, "./session_db", f.Value)
		assert.Contains(t, f.Aliases, "d")
	})

	t.Run("es has a default url", func(t *testing.T) {
		f := findString("es")
		require.NotNil(t, f)
		assert.Equal(t, "http://localhost:9200", f.Value)
	})

	t.Run("index defaults to nku_index", func(t *testing.T) {
		f := findString("index")
		require.NotNil(t, f)
		assert.Equal(t, "nku_index", f.Value)
	})
}

func TestClickCommandFlags(t *testing.T) {
	app := &cli.App{
		Name: "persearch",
		Commands: []*cli.Command{
			{
				Name:   "click",
				Action: clickCommand,
				Flags: append(commonFlags(),
					&cli.StringFlag{
						Name:     "user",
						Aliases:  []string{"u"},
						Required: true,
					},
					&cli.StringFlag{
						Name:     "doc",
						Required: true,
					},
				),
			},
		},
	}

	t.Run("user is required", func(t *testing.T) {
		err := app.Run([]string{"persearch", "click", "--doc", "abc123"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "user")
	})

	t.Run("doc is required", func(t *testing.T) {
		err := app.Run([]string{"persearch", "click", "--user", "alice"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "doc")
	})
}

func TestSetupLogger(t *testing.T) {
	t.Run("valid log levels", func(t *testing.T) {
		testCases := []struct {
			input    string
			expected slog.Level
		}{
			{"debug", slog.LevelDebug},
			{"info", slog.LevelInfo},
			{"warn", slog.LevelWarn},
			{"error", slog.LevelError},
		}

		for _, tc := range testCases {
			t.Run(tc.input, func(t *testing.T) {
				app := &cli.App{
					Name: "test",
					Flags: []cli.Flag{
						&cli.StringFlag{
							Name:  "log-level",
							Value: tc.input,
						},
					},
					Before: setupLogger,
					Action: func(c *cli.Context) error {
						return nil
					},
				}

				err := app.Run([]string{"test", "--log-level", tc.input})
				require.NoError(t, err)
			})
		}
	})

	t.Run("case insensitive log levels", func(t *testing.T) {
		for _, tc := range []string{"DEBUG", "Info", "WaRn", "ERROR"} {
			t.Run(tc, func(t *testing.T) {
				app := &cli.App{
					Name: "test",
					Flags: []cli.Flag{
						&cli.StringFlag{
							Name:  "log-level",
							Value: "info",
						},
					},
					Before: setupLogger,
					Action: func(c *cli.Context) error {
						return nil
					},
				}

				err := app.Run([]string{"test", "--log-level", tc})
				require.NoError(t, err)
			})
		}
	})

	t.Run("invalid log level returns error", func(t *testing.T) {
		app := &cli.App{
			Name: "test",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "log-level",
					Value: "info",
				},
			},
			Before: setupLogger,
			Action: func(c *cli.Context) error {
				return nil
			},
		}

		err := app.Run([]string{"test", "--log-level", "invalid"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
	})
}
