package store

import (
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func traceEntry(step int, lambda float64) TraceEntry {
	return TraceEntry{
		Step:         step,
		SafetyLambda: lambda,
		Objective:    0.5 / float64(step+1),
		MinMargin:    -0.1 * float64(3-step),
		Status:       "VIOLATED",
		Converged:    true,
		Timestamp:    time.Now(),
		X:            []float64{0.9 - 0.1*float64(step)},
	}
}

func TestTraceWriteReadRoundtrip(t *testing.T) {
	dir := t.TempDir()

	writer, err := NewTraceWriter(dir, "run-1", false)
	require.NoError(t, err)

	for step := 0; step < 3; step++ {
		require.NoError(t, writer.Write(traceEntry(step, 1e3*float64(step+1))))
	}
	require.NoError(t, writer.Close())

	reader, err := NewTraceReader(dir, "run-1")
	require.NoError(t, err)
	defer reader.Close()

	entries, err := reader.ReadAll()
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, 0, entries[0].Step)
	assert.Equal(t, 2, entries[2].Step)
	assert.InDelta(t, 3e3, entries[2].SafetyLambda, 1e-9)
	require.Len(t, entries[2].X, 1)
	assert.InDelta(t, 0.7, entries[2].X[0], 1e-12)
}

func TestTraceReaderSequential(t *testing.T) {
	dir := t.TempDir()

	writer, err := NewTraceWriter(dir, "run-1", false)
	require.NoError(t, err)
	require.NoError(t, writer.Write(traceEntry(0, 1e6)))
	require.NoError(t, writer.Close())

	reader, err := NewTraceReader(dir, "run-1")
	require.NoError(t, err)
	defer reader.Close()

	entry, err := reader.Read()
	require.NoError(t, err)
	assert.Equal(t, 0, entry.Step)

	_, err = reader.Read()
	assert.Equal(t, io.EOF, err)
}

func TestTraceAppendMode(t *testing.T) {
	dir := t.TempDir()

	writer, err := NewTraceWriter(dir, "run-1", false)
	require.NoError(t, err)
	require.NoError(t, writer.Write(traceEntry(0, 1e6)))
	require.NoError(t, writer.Close())

	appender, err := NewTraceWriter(dir, "run-1", true)
	require.NoError(t, err)
	require.NoError(t, appender.Write(traceEntry(1, 2e6)))
	require.NoError(t, appender.Close())

	reader, err := NewTraceReader(dir, "run-1")
	require.NoError(t, err)
	defer reader.Close()

	entries, err := reader.ReadAll()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, 1, entries[1].Step)
}

func TestTraceTruncateMode(t *testing.T) {
	dir := t.TempDir()

	writer, err := NewTraceWriter(dir, "run-1", false)
	require.NoError(t, err)
	require.NoError(t, writer.Write(traceEntry(0, 1e6)))
	require.NoError(t, writer.Close())

	// Reopening without append starts the trace over.
	writer, err = NewTraceWriter(dir, "run-1", false)
	require.NoError(t, err)
	require.NoError(t, writer.Write(traceEntry(5, 1e6)))
	require.NoError(t, writer.Close())

	reader, err := NewTraceReader(dir, "run-1")
	require.NoError(t, err)
	defer reader.Close()

	entries, err := reader.ReadAll()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 5, entries[0].Step)
}

func TestTraceReaderMissingRun(t *testing.T) {
	_, err := NewTraceReader(t.TempDir(), "absent")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestTraceFlushMakesEntriesVisible(t *testing.T) {
	dir := t.TempDir()

	writer, err := NewTraceWriter(dir, "run-1", false)
	require.NoError(t, err)
	defer writer.Close()

	require.NoError(t, writer.Write(traceEntry(0, 1e6)))
	require.NoError(t, writer.Flush())

	reader, err := NewTraceReader(dir, "run-1")
	require.NoError(t, err)
	defer reader.Close()

	entries, err := reader.ReadAll()
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
