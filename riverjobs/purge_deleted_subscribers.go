package riverjobs

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/riverqueue/river"

	core "github.com/JNZader/portfolio-2025-sub001/core"
)

type PurgeDeletedSubscribersArgs struct {
	RetentionDays int `json:"retention_days,omitempty"`
	BatchSize     int `json:"batch_size,omitempty"`
}

func (PurgeDeletedSubscribersArgs) Kind() string { return "privacykit_purge_deleted_subscribers" }

func (args PurgeDeletedSubscribersArgs) InsertOpts() river.InsertOpts {
	return river.InsertOpts{
		Queue: river.QueueDefault,
		UniqueOpts: river.UniqueOpts{
			ByArgs:   true,
			ByPeriod: 24 * time.Hour,
			ByQueue:  true,
		},
	}
}

type BeforeSubscriberHardDeleteFunc func(ctx context.Context, id uuid.UUID) error

// PurgeDeletedSubscribersWorker hard-deletes subscriber rows that were
// soft-deleted more than RetentionDays ago.
//
// The host application may provide an optional hook to remove related
// app-domain data (comment authorship, analytics rows, etc.) before the
// subscriber row itself goes away.
type PurgeDeletedSubscribersWorker struct {
	river.WorkerDefaults[PurgeDeletedSubscribersArgs]
	svc    *core.Service
	before BeforeSubscriberHardDeleteFunc
}

func NewPurgeDeletedSubscribersWorker(svc *core.Service, before BeforeSubscriberHardDeleteFunc) *PurgeDeletedSubscribersWorker {
	return &PurgeDeletedSubscribersWorker{svc: svc, before: before}
}

func (w *PurgeDeletedSubscribersWorker) Timeout(*river.Job[PurgeDeletedSubscribersArgs]) time.Duration {
	return 10 * time.Minute
}

func (w *PurgeDeletedSubscribersWorker) Work(ctx context.Context, job *river.Job[PurgeDeletedSubscribersArgs]) error {
	if w == nil || w.svc == nil {
		return errors.New("privacykit purge: service not configured")
	}
	retention := job.Args.RetentionDays
	if retention <= 0 {
		retention = 30
	}
	batch := job.Args.BatchSize
	if batch <= 0 {
		batch = 500
	}

	cutoff := time.Now().AddDate(0, 0, -retention)
	ids, err := w.svc.ListSubscribersDeletedBefore(ctx, cutoff, batch)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if w.before != nil {
			if err := w.before(ctx, id); err != nil {
				return err
			}
		}
		if err := w.svc.HardDeleteSubscriber(ctx, id); err != nil {
			return err
		}
	}
	return nil
}
