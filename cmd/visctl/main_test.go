package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"visrender/internal/artifacts"
	"visrender/internal/logger"
	"visrender/internal/storage"
)

const pieOptions = `{"type":"pie","data":[{"category":"a","value":1},{"category":"b","value":3}]}`

func runApp(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Reader = strings.NewReader(stdin)
	app.Writer = &out
	app.ErrWriter = &out
	t.Cleanup(func() { logger.GetGlobalLogger().SetOutput(os.Stdout) })
	err := app.RunContext(context.Background(), append([]string{"visctl"}, args...))
	return out.String(), err
}

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "pie.json")
	output := filepath.Join(dir, "pie.png")
	require.NoError(t, os.WriteFile(input, []byte(pieOptions), 0o644))

	out, err := runApp(t, "", "render", "--input", input, "--output", output)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote "+output)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")))
}

func TestRenderCommandStdin(t *testing.T) {
	out, err := runApp(t, pieOptions, "render", "-o", "-")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "\x89PNG"))
}

func TestRenderCommandLogsToErrWriter(t *testing.T) {
	var stdout, stderr bytes.Buffer
	app := newApp()
	app.Reader = strings.NewReader(pieOptions)
	app.Writer = &stdout
	app.ErrWriter = &stderr
	t.Cleanup(func() {
		logger.GetGlobalLogger().SetOutput(os.Stdout)
		logger.GetGlobalLogger().SetLevel(logger.INFO)
	})

	err := app.RunContext(context.Background(), []string{"visctl", "--log-level", "debug", "render", "-o", "-"})
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(stdout.Bytes(), []byte("\x89PNG")))
	assert.NotContains(t, stdout.String(), "Chart rendered")
	assert.Contains(t, stderr.String(), "Chart rendered")
}

func TestRenderCommandErrors(t *testing.T) {
	_, err := runApp(t, "", "render", "-o", "-")
	assert.Error(t, err)

	_, err = runApp(t, `{"type":"unknown","data":[1]}`, "render", "-o", "-")
	assert.ErrorContains(t, err, "failed to render chart")
}

func TestRenderHTMLCommand(t *testing.T) {
	out, err := runApp(t, pieOptions, "render-html", "-o", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "gpt-vis.min.js")

	out, err = runApp(t, pieOptions, "render-html", "-o", "-", "--renderer", "echarts")
	require.NoError(t, err)
	assert.Contains(t, out, "echarts.init")

	_, err = runApp(t, pieOptions, "render-html", "-o", "-", "--renderer", "d3")
	assert.Error(t, err)
}

func TestSweepCommand(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "images")
	t.Setenv("STORAGE_BACKEND", "local")
	t.Setenv("IMAGES_DIR", dir)
	t.Setenv("RETENTION", "0s")

	store, err := storage.NewLocalStorageClient(dir)
	require.NoError(t, err)

	ctx := context.Background()
	oldName := artifacts.NewName(artifacts.ExtPNG)
	newName := artifacts.NewName(artifacts.ExtHTML)
	require.NoError(t, store.StoreFile(ctx, oldName, []byte("old")))
	require.NoError(t, store.StoreFile(ctx, newName, []byte("new")))
	past := time.Now().Add(-3 * time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(dir, oldName), past, past))

	_, err = runApp(t, "", "sweep")
	assert.ErrorContains(t, err, "retention is not set")

	out, err := runApp(t, "", "sweep", "--retention", "1h")
	require.NoError(t, err)
	assert.Contains(t, out, "removed 1 expired artifacts")

	exists, err := store.FileExists(ctx, oldName)
	require.NoError(t, err)
	assert.False(t, exists)
	exists, err = store.FileExists(ctx, newName)
	require.NoError(t, err)
	assert.True(t, exists)
}
