package repository

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/incomemap/dashboard/apps/api/pkg/model"
)

// RunRepository manages import run lifecycle records.
type RunRepository struct {
	client *firestore.Client
}

func NewRunRepository(client *firestore.Client) *RunRepository {
	return &RunRepository{client: client}
}

// SaveRun creates or replaces the run document.
func (r *RunRepository) SaveRun(ctx context.Context, run model.ImportRun) error {
	if run.RunID == "" {
		return fmt.Errorf("runId is required")
	}
	ref := r.client.Collection("import_runs").Doc(run.RunID)
	if _, err := ref.Set(ctx, run); err != nil {
		return fmt.Errorf("save run %s: %w", run.RunID, err)
	}
	return nil
}
