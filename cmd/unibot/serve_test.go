package main_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	main "github.com/MuhammadAbbas01/unibot/cmd/unibot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServeCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("shuts down when the context ends", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    ctx,
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Logger: slog.New(slog.DiscardHandler),
		}

		err := (&main.ServeCmd{Addr: "127.0.0.1:0", MaxPages: 10}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Listening on http://127.0.0.1:")
		assert.Contains(t, stdout.String(), "No knowledge base yet")
	})

	t.Run("fails on a bad address", func(t *testing.T) {
		t.Parallel()

		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: &bytes.Buffer{},
			Logger: slog.New(slog.DiscardHandler),
		}

		err := (&main.ServeCmd{Addr: "not-an-address"}).Run(deps)

		assert.Error(t, err)
	})
}
