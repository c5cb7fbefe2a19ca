package share

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"fabrica-backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubSharer struct {
	err   error
	calls int
}

func (s *stubSharer) Share(context.Context, string) error {
	s.calls++
	return s.err
}

func writeDoc(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Reporte_Fabrica_2024_03_101500.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.3"), 0o644))
	return path
}

func TestFileSharer_CopiesDocument(t *testing.T) {
	src := writeDoc(t)
	dir := filepath.Join(t.TempDir(), "export")

	err := FileSharer{Dir: dir}.Share(context.Background(), src)
	require.NoError(t, err)

	b, err := os.ReadFile(filepath.Join(dir, filepath.Base(src)))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.3", string(b))
}

func TestFileSharer_MissingSource(t *testing.T) {
	err := FileSharer{Dir: t.TempDir()}.Share(context.Background(), "/no/such/file.pdf")
	assert.ErrorIs(t, err, ErrShareFailure)
}

func TestCommandSharer(t *testing.T) {
	if _, err := exec.LookPath("true"); err != nil {
		t.Skip("true not available")
	}
	src := writeDoc(t)

	assert.NoError(t, CommandSharer{Command: "true"}.Share(context.Background(), src))

	err := CommandSharer{Command: "false"}.Share(context.Background(), src)
	assert.ErrorIs(t, err, ErrShareFailure)

	err = CommandSharer{Command: "definitely-not-an-opener"}.Share(context.Background(), src)
	assert.ErrorIs(t, err, ErrShareFailure)
}

func TestFallback(t *testing.T) {
	ctx := context.Background()

	primary := &stubSharer{}
	secondary := &stubSharer{}
	require.NoError(t, Fallback{Primary: primary, Secondary: secondary}.Share(ctx, "x"))
	assert.Equal(t, 1, primary.calls)
	assert.Zero(t, secondary.calls)

	primary = &stubSharer{err: ErrShareFailure}
	require.NoError(t, Fallback{Primary: primary, Secondary: secondary}.Share(ctx, "x"))
	assert.Equal(t, 1, secondary.calls)

	secondary = &stubSharer{err: errors.New("disk full")}
	err := Fallback{Primary: primary, Secondary: secondary}.Share(ctx, "x")
	assert.ErrorIs(t, err, ErrShareFailure)
}

func TestNew_Selection(t *testing.T) {
	log := zap.NewNop()
	base := config.Config{ReportDir: "/tmp/reports"}

	cfg := base
	cfg.ShareMode = "none"
	assert.IsType(t, NopSharer{}, New(&cfg, log))

	cfg = base
	cfg.ShareMode = "file"
	fs, ok := New(&cfg, log).(FileSharer)
	require.True(t, ok)
	assert.Equal(t, filepath.Join("/tmp/reports", "compartidos"), fs.Dir)

	cfg = base
	cfg.ShareMode = "command"
	cfg.ShareCommand = "gio open"
	cs, ok := New(&cfg, log).(CommandSharer)
	require.True(t, ok)
	assert.Equal(t, "gio", cs.Command)
	assert.Equal(t, []string{"open"}, cs.Args)

	orig := lookPath
	t.Cleanup(func() { lookPath = orig })

	cfg = base
	cfg.ShareMode = "auto"
	cfg.ShareDir = "/tmp/out"
	lookPath = func(string) (string, error) { return "", exec.ErrNotFound }
	fs, ok = New(&cfg, log).(FileSharer)
	require.True(t, ok)
	assert.Equal(t, "/tmp/out", fs.Dir)

	lookPath = func(file string) (string, error) { return "/usr/bin/" + file, nil }
	fb, ok := New(&cfg, log).(Fallback)
	require.True(t, ok)
	assert.IsType(t, CommandSharer{}, fb.Primary)
	assert.IsType(t, FileSharer{}, fb.Secondary)
}
