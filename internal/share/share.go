// Package share hands generated documents to whatever the host offers for
// passing files on: a desktop opener, an export directory, or nothing.
package share

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"fabrica-backend/internal/config"

	"go.uber.org/zap"
)

var ErrShareFailure = errors.New("share failed")

type Sharer interface {
	Share(ctx context.Context, path string) error
}

// CommandSharer runs an external program with the file path as last argument.
type CommandSharer struct {
	Command string
	Args    []string
	Log     *zap.Logger
}

func (c CommandSharer) Share(ctx context.Context, path string) error {
	args := append(append([]string{}, c.Args...), path)
	out, err := exec.CommandContext(ctx, c.Command, args...).CombinedOutput()
	if err != nil {
		msg := strings.TrimSpace(string(out))
		if msg != "" {
			return fmt.Errorf("%w: %s: %v: %s", ErrShareFailure, c.Command, err, msg)
		}
		return fmt.Errorf("%w: %s: %v", ErrShareFailure, c.Command, err)
	}
	logger(c.Log).Info("document shared", zap.String("command", c.Command), zap.String("path", path))
	return nil
}

// FileSharer copies the document into an export directory.
type FileSharer struct {
	Dir string
	Log *zap.Logger
}

func (f FileSharer) Share(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrShareFailure, err)
	}
	if err := os.MkdirAll(f.Dir, 0o755); err != nil {
		return fmt.Errorf("%w: create %s: %v", ErrShareFailure, f.Dir, err)
	}

	dst := filepath.Join(f.Dir, filepath.Base(path))
	if err := copyFile(path, dst); err != nil {
		return fmt.Errorf("%w: %v", ErrShareFailure, err)
	}
	logger(f.Log).Info("document exported", zap.String("path", dst))
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// NopSharer is used when sharing is switched off.
type NopSharer struct {
	Log *zap.Logger
}

func (n NopSharer) Share(_ context.Context, path string) error {
	logger(n.Log).Debug("sharing disabled", zap.String("path", path))
	return nil
}

// Fallback tries Primary and falls back to Secondary when it fails.
type Fallback struct {
	Primary   Sharer
	Secondary Sharer
	Log       *zap.Logger
}

func (f Fallback) Share(ctx context.Context, path string) error {
	err := f.Primary.Share(ctx, path)
	if err == nil {
		return nil
	}
	logger(f.Log).Warn("primary share failed, using fallback", zap.Error(err))

	if err2 := f.Secondary.Share(ctx, path); err2 != nil {
		return fmt.Errorf("%w: %w", ErrShareFailure, errors.Join(err, err2))
	}
	return nil
}

var lookPath = exec.LookPath

// New picks the sharing mechanism once, from configuration and what the
// host has installed.
func New(cfg *config.Config, log *zap.Logger) Sharer {
	exportDir := cfg.ShareDir
	if exportDir == "" {
		exportDir = filepath.Join(cfg.ReportDir, "compartidos")
	}
	file := FileSharer{Dir: exportDir, Log: log}

	switch cfg.ShareMode {
	case "none":
		return NopSharer{Log: log}
	case "file":
		return file
	case "command":
		return commandFromLine(cfg.ShareCommand, log)
	}

	// auto
	line := cfg.ShareCommand
	if line == "" {
		line = defaultOpener()
	}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return file
	}
	if _, err := lookPath(fields[0]); err != nil {
		log.Info("no document opener found, exporting to directory",
			zap.String("opener", fields[0]),
			zap.String("dir", exportDir),
		)
		return file
	}
	return Fallback{Primary: commandFromLine(line, log), Secondary: file, Log: log}
}

func commandFromLine(line string, log *zap.Logger) CommandSharer {
	fields := strings.Fields(line)
	c := CommandSharer{Log: log}
	if len(fields) > 0 {
		c.Command = fields[0]
		c.Args = fields[1:]
	}
	return c
}

func defaultOpener() string {
	switch runtime.GOOS {
	case "darwin":
		return "open"
	case "windows":
		return "explorer"
	}
	return "xdg-open"
}

func logger(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}
