package repository

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/incomemap/dashboard/apps/api/pkg/model"
	"github.com/incomemap/dashboard/apps/api/pkg/util"
	"google.golang.org/api/iterator"
)

const recordsCollection = "income_records"

// RecordRepository handles Firestore read/write for income records.
type RecordRepository struct {
	client *firestore.Client
}

func NewRecordRepository(client *firestore.Client) *RecordRepository {
	return &RecordRepository{client: client}
}

// StreamAll calls fn for every stored record, stopping at the first error fn returns.
func (r *RecordRepository) StreamAll(ctx context.Context, fn func(model.IncomeRecord) error) error {
	iter := r.client.Collection(recordsCollection).Documents(ctx)
	defer iter.Stop()
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			return nil
		}
		if err != nil {
			return fmt.Errorf("iterate income records: %w", err)
		}
		var rec model.IncomeRecord
		if err := doc.DataTo(&rec); err != nil {
			return fmt.Errorf("decode income record %s: %w", doc.Ref.ID, err)
		}
		if err := fn(rec); err != nil {
			return err
		}
	}
}

// BatchUpsert writes records in batches to reduce round trips.
// Records that hash to the same document ID overwrite each other; the last one wins.
func (r *RecordRepository) BatchUpsert(ctx context.Context, records []model.IncomeRecord) error {
	if len(records) == 0 {
		return nil
	}
	const batchSize = 400

	for start := 0; start < len(records); start += batchSize {
		end := start + batchSize
		if end > len(records) {
			end = len(records)
		}
		batch := r.client.Batch()
		for _, rec := range records[start:end] {
			ref := r.client.Collection(recordsCollection).Doc(util.HashRecordKey(rec))
			batch.Set(ref, rec)
		}
		if _, err := batch.Commit(ctx); err != nil {
			return fmt.Errorf("commit batch [%d:%d]: %w", start, end, err)
		}
	}
	return nil
}

// Get returns the record stored under id.
func (r *RecordRepository) Get(ctx context.Context, id string) (model.IncomeRecord, error) {
	snap, err := r.client.Collection(recordsCollection).Doc(id).Get(ctx)
	if err != nil {
		return model.IncomeRecord{}, fmt.Errorf("get income record %s: %w", id, err)
	}
	var rec model.IncomeRecord
	if err := snap.DataTo(&rec); err != nil {
		return model.IncomeRecord{}, fmt.Errorf("decode income record %s: %w", id, err)
	}
	return rec, nil
}
