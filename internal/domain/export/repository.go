package export

import (
	"context"
	"time"
)

type ExportRepository interface {
	// ListRecords returns rows with from <= work_date <= to ordered by work date then staff name.
	// A nil storeID covers every store.
	ListRecords(ctx context.Context, from, to time.Time, storeID *string) ([]Record, error)
}
