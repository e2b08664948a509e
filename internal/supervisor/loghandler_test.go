package supervisor

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogHandlerWritesPrintLinesAndClosesOnEnd(t *testing.T) {
	dir := t.TempDir()
	ref := fakeApplicationRef{id: NewID()}
	wrapped := workingDirRef{fakeApplicationRef: ref, dir: dir}

	h := NewLogHandler()
	ctx := context.Background()

	require.NoError(t, h.HandleAsync(ctx, &Event{App: wrapped, Kind: KindStart}))
	require.NoError(t, h.HandleAsync(ctx, &Event{App: wrapped, Kind: KindPrint, Line: Line{Stream: StreamOut, Text: "hello\n"}}))
	require.NoError(t, h.HandleAsync(ctx, &Event{App: wrapped, Kind: KindEnd, Result: &Result{Success: true}}))

	data, err := os.ReadFile(filepath.Join(dir, LogFileName))
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(data))
}

func TestLogHandlerOpensEarlyOnPrintBeforeStart(t *testing.T) {
	dir := t.TempDir()
	ref := fakeApplicationRef{id: NewID()}
	wrapped := workingDirRef{fakeApplicationRef: ref, dir: dir}

	h := NewLogHandler()
	ctx := context.Background()

	require.NoError(t, h.HandleAsync(ctx, &Event{App: wrapped, Kind: KindPrint, Line: Line{Stream: StreamOut, Text: "early\n"}}))
	require.NoError(t, h.HandleAsync(ctx, &Event{App: wrapped, Kind: KindEnd, Result: &Result{Success: true}}))

	data, err := os.ReadFile(filepath.Join(dir, LogFileName))
	require.NoError(t, err)
	assert.Equal(t, "early\n", string(data))
}

// workingDirRef overrides fakeApplicationRef's empty WorkingDir with a
// real temp directory, since LogHandler needs somewhere to write.
type workingDirRef struct {
	fakeApplicationRef
	dir string
}

func (w workingDirRef) WorkingDir() string { return w.dir }
