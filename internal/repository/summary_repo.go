package repository

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/incomemap/dashboard/apps/api/pkg/model"
)

// SummaryRepository manages the system/income_summary singleton document.
type SummaryRepository struct {
	client *firestore.Client
}

func NewSummaryRepository(client *firestore.Client) *SummaryRepository {
	return &SummaryRepository{client: client}
}

func (r *SummaryRepository) SaveSummary(ctx context.Context, summary model.DatasetSummary) error {
	summary.LastUpdated = time.Now().UTC()
	ref := r.client.Collection("system").Doc("income_summary")
	if _, err := ref.Set(ctx, summary); err != nil {
		return fmt.Errorf("save income summary: %w", err)
	}
	return nil
}

func (r *SummaryRepository) GetSummary(ctx context.Context) (model.DatasetSummary, error) {
	ref := r.client.Collection("system").Doc("income_summary")
	snap, err := ref.Get(ctx)
	if err != nil {
		return model.DatasetSummary{}, fmt.Errorf("get income summary: %w", err)
	}
	var summary model.DatasetSummary
	if err := snap.DataTo(&summary); err != nil {
		return model.DatasetSummary{}, fmt.Errorf("decode income summary: %w", err)
	}
	return summary, nil
}
