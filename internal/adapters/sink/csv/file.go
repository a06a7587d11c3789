package csv

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bnema/clockify-timesheet/internal/domain"
	"github.com/bnema/clockify-timesheet/internal/ports"
)

const (
	sheetFileMode   = 0o644
	sheetDirMode    = 0o755
	tempFilePattern = ".timesheet-*.csv.tmp"
)

// FileSink writes the sheet to Path. The file only appears once it is
// complete.
type FileSink struct {
	Path    string
	Options Options
}

var _ ports.Sink = (*FileSink)(nil)

func (s *FileSink) Write(ctx context.Context, rows []domain.ConsolidatedRow) error {
	var buf bytes.Buffer
	if err := NewWriter(&buf, s.Options).Write(ctx, rows); err != nil {
		return err
	}

	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, sheetDirMode); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	tempFile, err := os.CreateTemp(dir, tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp time sheet: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(buf.Bytes()); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp time sheet: %w", err)
	}
	if err := tempFile.Chmod(sheetFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp time sheet: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp time sheet: %w", err)
	}
	if err := os.Rename(tempName, s.Path); err != nil {
		return fmt.Errorf("replace time sheet %s: %w", s.Path, err)
	}

	cleanup = false
	return nil
}
