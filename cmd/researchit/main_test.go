package main

import (
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestSetupLogger(t *testing.T) {
	original := slog.Default()
	defer slog.SetDefault(original)

	newApp := func() *cli.App {
		return &cli.App{
			Name:   "researchit",
			Before: setupLogger,
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "log-level",
					Value: "info",
				},
			},
			Action: func(c *cli.Context) error { return nil },
		}
	}

	t.Run("accepts valid levels", func(t *testing.T) {
		for _, level := range []string{"debug", "info", "warn", "error", "DEBUG"} {
			err := newApp().Run([]string{"researchit", "--log-level", level})
			assert.NoError(t, err, "level %q", level)
		}
	})

	t.Run("rejects invalid level", func(t *testing.T) {
		err := newApp().Run([]string{"researchit", "--log-level", "loud"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
	})
}

func TestIngestCommandRequiresFiles(t *testing.T) {
	app := &cli.App{
		Name: "researchit",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "db", Value: os.TempDir()},
		},
		Commands: []*cli.Command{
			{
				Name:   "ingest",
				Action: ingestCommand,
			},
		},
	}

	err := app.Run([]string{"researchit", "ingest"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one file is required")
}

func TestAskCommandRequiresQuestion(t *testing.T) {
	app := &cli.App{
		Name: "researchit",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "db", Value: os.TempDir()},
		},
		Commands: []*cli.Command{
			{
				Name:   "ask",
				Action: askCommand,
			},
		},
	}

	err := app.Run([]string{"researchit", "ask"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "a question is required")
}
