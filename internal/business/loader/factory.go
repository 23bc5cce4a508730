package loader

import (
	"errors"
	"fmt"

	"github.com/incomemap/dashboard/apps/api/internal/platform/config"
)

// NewSource builds the Source selected by cfg.DatasetSource. records is only used for
// the firestore source and may be nil otherwise.
func NewSource(cfg config.Config, records RecordStreamer) (Source, error) {
	opts := Options{Strict: cfg.DatasetStrict}
	switch cfg.DatasetSource {
	case config.SourceFile:
		return FileSource{Path: cfg.DatasetPath, Options: opts}, nil
	case config.SourceURL:
		return HTTPSource{
			Fetcher: NewHTTPFetcher(nil, cfg.DownloadTimeout),
			URL:     cfg.DatasetURL,
			Options: opts,
		}, nil
	case config.SourceKaggle:
		url, err := KaggleFileURL(KaggleBaseURL, cfg.KaggleDataset, cfg.KaggleFile)
		if err != nil {
			return nil, err
		}
		return HTTPSource{
			Fetcher: NewHTTPFetcher(nil, cfg.DownloadTimeout).WithBasicAuth(cfg.KaggleUsername, cfg.KaggleKey),
			URL:     url,
			Options: opts,
		}, nil
	case config.SourceFirestore:
		if records == nil {
			return nil, errors.New("firestore source needs a record repository")
		}
		return FirestoreSource{Records: records}, nil
	}
	return nil, fmt.Errorf("unknown dataset source %q", cfg.DatasetSource)
}
