package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/shrishtravels/routegen/pkg/routegen/builder"
	"github.com/shrishtravels/routegen/pkg/routegen/source"
)

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

func runBuild(dir string) error {
	RootCmd.SetArgs([]string{BuildCmdName, "--site-dir", dir, "--log-level", "error", "--static-pages", "index.html"})
	return RootCmd.ExecuteContext(context.Background())
}

func TestBuildCommand(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"assets/data/routes.json": `[{"Origin": "Chennai", "Destination": "Thanjavur", "Price_Sedan": "5200"}]`,
		"route_template.html":     `<!--HEADER--><h1>{origin} to {destination}</h1><b>{price_sedan}</b><!--FOOTER-->`,
		"components/_header.html": `<a href="index.html">Home</a>`,
		"components/_footer.html": `<footer></footer>`,
		"templates/index.html":    `<!--HEADER--><main></main>`,
	})

	require.NoError(t, runBuild(dir))

	page, err := os.ReadFile(filepath.Join(dir, "routes", "chennai-to-thanjavur.html"))
	require.NoError(t, err)
	assert.Equal(t, `<a href="../index.html">Home</a><h1>Chennai to Thanjavur</h1><b>5200</b><footer></footer>`, string(page))
	assert.FileExists(t, filepath.Join(dir, "index.html"))
	assert.FileExists(t, filepath.Join(dir, "sitemap.xml"))
}

func TestBuildCommandFailsWithoutData(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"route_template.html": `<h1>{origin}</h1>`,
	})

	err := runBuild(dir)
	assert.ErrorIs(t, err, source.ErrDataSourceUnavailable)
}

func TestWarnFailuresSummarizes(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	log := zap.New(core)

	report := &builder.Report{
		BuildID: "build-1",
		Routes: []builder.Outcome{
			{Slug: "chennai-to-ooty"},
			{Index: 1, Err: errors.New("missing origin and destination")},
			{Index: 2, Slug: "chennai-to-vellore", Err: builder.ErrWriteFailure},
		},
		Pages: []builder.Outcome{{Slug: "index.html"}},
	}
	warnFailures(log, report)

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "build finished with failures", entries[0].Message)
	fields := entries[0].ContextMap()
	assert.EqualValues(t, 2, fields["failed"])
	assert.EqualValues(t, 1, fields["succeeded"])
	assert.Equal(t, "build-1", fields["build_id"])
}

func TestWarnFailuresQuietOnSuccess(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	warnFailures(zap.New(core), &builder.Report{Routes: []builder.Outcome{{Slug: "chennai-to-ooty"}}})
	assert.Zero(t, logs.Len())
}
