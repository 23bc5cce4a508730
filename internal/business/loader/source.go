package loader

import (
	"archive/zip"
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/incomemap/dashboard/apps/api/pkg/model"
	"github.com/incomemap/dashboard/apps/api/pkg/util"
)

// Source supplies the income dataset.
type Source interface {
	Load(ctx context.Context) ([]model.IncomeRecord, LoadStats, error)
	Describe() string
}

var zipMagic = []byte("PK\x03\x04")

// FileSource reads a local CSV file or a ZIP archive holding one.
type FileSource struct {
	Path    string
	Options Options
}

func (s FileSource) Describe() string { return "file " + s.Path }

func (s FileSource) Load(ctx context.Context) ([]model.IncomeRecord, LoadStats, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, LoadStats{}, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	head := make([]byte, len(zipMagic))
	n, _ := io.ReadFull(f, head)
	if n == len(zipMagic) && bytes.Equal(head, zipMagic) {
		info, err := f.Stat()
		if err != nil {
			return nil, LoadStats{}, fmt.Errorf("stat dataset: %w", err)
		}
		return parseZIP(f, info.Size(), s.Options)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, LoadStats{}, fmt.Errorf("rewind dataset: %w", err)
	}
	return ParseCSV(bufio.NewReader(f), s.Options)
}

// parseZIP parses the first CSV entry of an archive.
func parseZIP(r io.ReaderAt, size int64, opts Options) ([]model.IncomeRecord, LoadStats, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, LoadStats{}, fmt.Errorf("open zip: %w", err)
	}
	for _, entry := range zr.File {
		if entry.FileInfo().IsDir() || !strings.EqualFold(filepath.Ext(entry.Name), ".csv") {
			continue
		}
		rc, err := entry.Open()
		if err != nil {
			return nil, LoadStats{}, fmt.Errorf("open zip entry %s: %w", entry.Name, err)
		}
		defer rc.Close()
		log.Printf("loader: reading %s from archive", entry.Name)
		return ParseCSV(bufio.NewReader(rc), opts)
	}
	return nil, LoadStats{}, fmt.Errorf("zip archive contains no csv file")
}

// HTTPSource downloads the dataset to a temporary file and parses it like FileSource.
// The downloaded file is removed once parsed.
type HTTPSource struct {
	Fetcher Fetcher
	URL     string
	Options Options
	TempDir string
}

func (s HTTPSource) Describe() string { return "url " + s.URL }

func (s HTTPSource) Load(ctx context.Context) ([]model.IncomeRecord, LoadStats, error) {
	body, err := s.Fetcher.Fetch(ctx, s.URL)
	if err != nil {
		return nil, LoadStats{}, fmt.Errorf("download dataset: %w", err)
	}
	defer body.Close()

	tmp, err := os.CreateTemp(s.TempDir, "income_dataset_*")
	if err != nil {
		return nil, LoadStats{}, fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	written, err := io.Copy(tmp, body)
	if err != nil {
		return nil, LoadStats{}, fmt.Errorf("save dataset: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, LoadStats{}, fmt.Errorf("close temp file: %w", err)
	}
	log.Printf("loader: downloaded %d bytes from %s", written, s.URL)

	return FileSource{Path: tmp.Name(), Options: s.Options}.Load(ctx)
}

// RecordStreamer is implemented by the Firestore record repository.
type RecordStreamer interface {
	StreamAll(ctx context.Context, fn func(model.IncomeRecord) error) error
}

// FirestoreSource reads records previously imported into Firestore.
type FirestoreSource struct {
	Records RecordStreamer
}

func (s FirestoreSource) Describe() string { return "firestore" }

func (s FirestoreSource) Load(ctx context.Context) ([]model.IncomeRecord, LoadStats, error) {
	var stats LoadStats
	var records []model.IncomeRecord
	err := s.Records.StreamAll(ctx, func(r model.IncomeRecord) error {
		stats.Read++
		records = append(records, util.CleanRecord(r))
		stats.Loaded++
		return nil
	})
	if err != nil {
		return nil, stats, fmt.Errorf("stream income records: %w", err)
	}
	return records, stats, nil
}
