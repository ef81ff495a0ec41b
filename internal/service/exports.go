package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/jask/tickerdeck/internal/database/repository"
)

var ErrNotFound = errors.New("export not found")

const exportPrefix = "financial_data_"

// ExportFile is a CSV export present in the data directory.
type ExportFile struct {
	Name       string    `json:"name"`
	Size       int64     `json:"size"`
	Modified   time.Time `json:"modified"`
	Rows       int       `json:"rows,omitempty"`
	Indicators []string  `json:"indicators,omitempty"`
}

// Exports lists export CSVs in the data directory, newest first, with the
// recorded metadata when there is any.
func (c *Collector) Exports(ctx context.Context) ([]ExportFile, error) {
	entries, err := os.ReadDir(c.DataDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	records := make(map[string]repository.Export)
	if c.Records != nil {
		list, err := c.Records.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("list exports: %w", err)
		}
		for _, e := range list {
			records[e.Filename] = e
		}
	}
	var out []ExportFile
	for _, de := range entries {
		if de.IsDir() || !strings.HasPrefix(de.Name(), exportPrefix) || !strings.EqualFold(filepath.Ext(de.Name()), ".csv") {
			continue
		}
		info, err := de.Info()
		if err != nil {
			continue
		}
		f := ExportFile{Name: de.Name(), Size: info.Size(), Modified: info.ModTime()}
		if r, ok := records[de.Name()]; ok {
			f.Rows = r.Rows
			f.Indicators = r.Indicators
		}
		out = append(out, f)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Modified.Equal(out[j].Modified) {
			return out[i].Name < out[j].Name
		}
		return out[i].Modified.After(out[j].Modified)
	})
	return out, nil
}

// DeleteResult reports a DeleteExports run.
type DeleteResult struct {
	Deleted int      `json:"deleted_count"`
	Errors  []string `json:"errors,omitempty"`
}

// DeleteExports removes every export file and its record. Failures on one
// file do not stop the rest.
func (c *Collector) DeleteExports(ctx context.Context) (DeleteResult, error) {
	files, err := c.Exports(ctx)
	if err != nil {
		return DeleteResult{}, err
	}
	var res DeleteResult
	var merr *multierror.Error
	for _, f := range files {
		if err := os.Remove(filepath.Join(c.DataDir, f.Name)); err != nil {
			merr = multierror.Append(merr, fmt.Errorf("%s: %w", f.Name, err))
			continue
		}
		res.Deleted++
		if c.Records != nil {
			if err := c.Records.Delete(ctx, f.Name); err != nil {
				merr = multierror.Append(merr, fmt.Errorf("%s record: %w", f.Name, err))
			}
		}
	}
	if merr != nil {
		for _, e := range merr.Errors {
			res.Errors = append(res.Errors, e.Error())
		}
	}
	return res, nil
}

// OpenExport returns the path of an export by bare file name.
func (c *Collector) OpenExport(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", fmt.Errorf("%w: bad file name %q", ErrInvalidRequest, name)
	}
	path := filepath.Join(c.DataDir, name)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return path, nil
}
