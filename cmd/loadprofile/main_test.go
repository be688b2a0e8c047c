package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `"01/08/2024","07:00",2
"01/08/2024","18:00",0.5
"02/08/2024","07:00",3
"02/08/2024","18:00",0.5
`

func writeInput(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "meter.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_RangeReport(t *testing.T) {
	t.Parallel()

	in := writeInput(t, sample)
	code, out, _ := runCLI(t, "-f", in, "-r", "07:00-17:00")

	require.Equal(t, 0, code)
	assert.Equal(t, "07:00-17:00\t5kWh, 2.626NIS\nThe rest:\t1kWh, 0.5252NIS\n", out)
}

func TestRun_RangeReportWithWindowAndTariff(t *testing.T) {
	t.Parallel()

	in := writeInput(t, sample)
	code, out, _ := runCLI(t,
		"-input-file", in,
		"-from", "20240801T120000",
		"-time-range", "07:00-17:00",
		"-tariff", "1",
		"-currency", "EUR",
	)

	require.Equal(t, 0, code)
	assert.Equal(t, "07:00-17:00\t3kWh, 3EUR\nThe rest:\t1kWh, 1EUR\n", out)
}

func TestRun_ChartWritesArtifactAndEchoesSeries(t *testing.T) {
	t.Parallel()

	in := writeInput(t, sample)
	code, out, _ := runCLI(t, "-f", in)

	require.Equal(t, 0, code)
	assert.Equal(t, "07:00\t5\n18:00\t1\n", out)

	html, err := os.ReadFile(strings.TrimSuffix(in, ".csv") + ".html")
	require.NoError(t, err)
	assert.Contains(t, string(html), "uPlot")
}

func TestRun_ChartOutputOverride(t *testing.T) {
	t.Parallel()

	in := writeInput(t, sample)
	dst := filepath.Join(t.TempDir(), "profile.xlsx")
	code, _, _ := runCLI(t, "-f", in, "-format", "xlsx", "-o", dst)

	require.Equal(t, 0, code)
	info, err := os.Stat(dst)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestRun_BadTimeRangeIsFatal(t *testing.T) {
	t.Parallel()

	in := writeInput(t, sample)
	code, out, errOut := runCLI(t, "-f", in, "-r", "07:00")

	assert.Equal(t, 1, code)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "wrong time range format")
}

func TestRun_BadWindowIsFatal(t *testing.T) {
	t.Parallel()

	in := writeInput(t, sample)
	code, out, _ := runCLI(t, "-f", in, "-from", "yesterday", "-r", "07:00-17:00")

	assert.Equal(t, 1, code)
	assert.Empty(t, out)
}

func TestRun_MissingInputFile(t *testing.T) {
	t.Parallel()

	code, out, errOut := runCLI(t, "-f", filepath.Join(t.TempDir(), "nope.csv"), "-r", "07:00-17:00")

	assert.Equal(t, 1, code)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "open csv")
}

func TestRun_NoInputFlag(t *testing.T) {
	t.Parallel()

	code, _, errOut := runCLI(t)

	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "input file not specified")
}

func TestRun_Help(t *testing.T) {
	t.Parallel()

	code, _, errOut := runCLI(t, "-h")

	assert.Equal(t, 0, code)
	assert.Contains(t, errOut, "Usage: loadprofile")
}

func TestRun_InvalidRowsAreSkipped(t *testing.T) {
	t.Parallel()

	in := writeInput(t, sample+"garbage\n\"03/08/2024\",\"7h\",1\n")
	code, out, errOut := runCLI(t, "-f", in, "-r", "07:00-17:00")

	require.Equal(t, 0, code)
	assert.Equal(t, "07:00-17:00\t5kWh, 2.626NIS\nThe rest:\t1kWh, 0.5252NIS\n", out)
	assert.Equal(t, 2, strings.Count(errOut, "invalid row"))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("stdout closed") }

func TestRun_FailedEchoRemovesArtifact(t *testing.T) {
	t.Parallel()

	in := writeInput(t, sample)
	dst := filepath.Join(t.TempDir(), "profile.html")
	var stderr bytes.Buffer
	code := run(context.Background(), []string{"-f", in, "-o", dst}, failingWriter{}, &stderr)

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "write series")
	_, err := os.Stat(dst)
	assert.True(t, os.IsNotExist(err), "artifact must not be left behind")
}
