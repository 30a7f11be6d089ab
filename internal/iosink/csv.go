package iosink

import (
	"context"
	"encoding/csv"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gnames/consetl/pkg/config"
	"github.com/gnames/consetl/pkg/etl"
	"github.com/gnames/consetl/pkg/sink"
	"github.com/gnames/gnsys"
)

type csvSink struct {
	peoplePath string
	acqPath    string
}

// NewCSV creates a sink that writes people and acquisition facts into
// two CSV files in the output directory.
func NewCSV(cfg *config.Config) sink.Sink {
	return &csvSink{
		peoplePath: cfg.OutputPath(cfg.Output.PeopleFile),
		acqPath:    cfg.OutputPath(cfg.Output.AcquisitionsFile),
	}
}

func (s *csvSink) Name() string {
	return "csv"
}

// Write saves both tables into temporary files and moves them to their
// final names only after both were written.
func (s *csvSink) Write(_ context.Context, res *etl.Result) error {
	peopleTmp, err := writeTemp(
		s.peoplePath, etl.PeopleHeader, PeopleRecords(res.People),
	)
	if err != nil {
		return err
	}
	defer os.Remove(peopleTmp)

	acqTmp, err := writeTemp(
		s.acqPath, etl.AcquisitionHeader, AcquisitionRecords(res.Acquisitions),
	)
	if err != nil {
		return err
	}
	defer os.Remove(acqTmp)

	if err = s.replace(peopleTmp, acqTmp); err != nil {
		return err
	}

	slog.Info("Saved CSV files",
		"people", s.peoplePath,
		"acquisitions", s.acqPath,
	)
	return nil
}

// replace moves both temporary files to their final names. If the second
// move fails, the previous people file is put back.
func (s *csvSink) replace(peopleTmp, acqTmp string) error {
	backup, err := backupFile(s.peoplePath)
	if err != nil {
		return WriteError(s.peoplePath, err)
	}

	restore := func() {
		if backup == "" {
			os.Remove(s.peoplePath)
			return
		}
		if err := os.Rename(backup, s.peoplePath); err != nil {
			slog.Error("Cannot restore previous file",
				"path", s.peoplePath, "backup", backup, "error", err)
		}
	}

	if err = os.Rename(peopleTmp, s.peoplePath); err != nil {
		restore()
		return WriteError(s.peoplePath, err)
	}
	if err = os.Rename(acqTmp, s.acqPath); err != nil {
		restore()
		return WriteError(s.acqPath, err)
	}

	if backup != "" {
		os.Remove(backup)
	}
	return nil
}

// backupFile moves an existing file to a temporary name next to it.
// It returns an empty name when there is nothing to back up.
func backupFile(path string) (string, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}

	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".bak.*")
	if err != nil {
		return "", err
	}
	backup := f.Name()
	f.Close()

	if err = os.Rename(path, backup); err != nil {
		os.Remove(backup)
		return "", err
	}
	return backup, nil
}

// writeTemp writes records into a temporary file next to path and
// returns the name of the temporary file.
func writeTemp(path string, header []string, records [][]string) (string, error) {
	dir := filepath.Dir(path)
	if err := gnsys.MakeDir(dir); err != nil {
		return "", WriteError(path, err)
	}

	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return "", WriteError(path, err)
	}
	tmp := f.Name()

	w := csv.NewWriter(f)
	if err = f.Chmod(0644); err == nil {
		err = w.Write(header)
	}
	if err == nil {
		err = w.WriteAll(records)
	}
	if err != nil {
		f.Close()
		os.Remove(tmp)
		return "", WriteError(path, err)
	}

	if err = f.Close(); err != nil {
		os.Remove(tmp)
		return "", WriteError(path, err)
	}
	return tmp, nil
}
