package loader

import (
	"testing"

	"github.com/incomemap/dashboard/apps/api/internal/platform/config"
)

func TestNewSource(t *testing.T) {
	src, err := NewSource(config.Config{DatasetSource: config.SourceFile, DatasetPath: "a.csv", DatasetStrict: true}, nil)
	if err != nil {
		t.Fatalf("file: %v", err)
	}
	fs, ok := src.(FileSource)
	if !ok || fs.Path != "a.csv" || !fs.Options.Strict {
		t.Errorf("file source = %#v", src)
	}

	src, err = NewSource(config.Config{DatasetSource: config.SourceURL, DatasetURL: "https://example.com/x.zip"}, nil)
	if err != nil {
		t.Fatalf("url: %v", err)
	}
	if hs, ok := src.(HTTPSource); !ok || hs.URL != "https://example.com/x.zip" {
		t.Errorf("url source = %#v", src)
	}

	src, err = NewSource(config.Config{
		DatasetSource:  config.SourceKaggle,
		KaggleDataset:  "owner/name",
		KaggleFile:     "f.csv",
		KaggleUsername: "u",
		KaggleKey:      "k",
	}, nil)
	if err != nil {
		t.Fatalf("kaggle: %v", err)
	}
	hs, ok := src.(HTTPSource)
	if !ok || hs.URL != KaggleBaseURL+"/datasets/download/owner/name/f.csv" {
		t.Errorf("kaggle source = %#v", src)
	}
	if f, ok := hs.Fetcher.(*HTTPFetcher); !ok || f.username != "u" || f.key != "k" {
		t.Errorf("kaggle fetcher should carry credentials: %#v", hs.Fetcher)
	}

	if _, err := NewSource(config.Config{DatasetSource: config.SourceKaggle, KaggleDataset: "bad"}, nil); err == nil {
		t.Errorf("expected error for malformed kaggle dataset")
	}
	if _, err := NewSource(config.Config{DatasetSource: config.SourceFirestore}, nil); err == nil {
		t.Errorf("expected error for firestore without repository")
	}
	if src, err := NewSource(config.Config{DatasetSource: config.SourceFirestore}, mockStreamer{}); err != nil || src.Describe() != "firestore" {
		t.Errorf("firestore: %v %v", src, err)
	}
	if _, err := NewSource(config.Config{DatasetSource: "ftp"}, nil); err == nil {
		t.Errorf("expected error for unknown source")
	}
}
