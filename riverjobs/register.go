package riverjobs

import (
	"fmt"

	"github.com/riverqueue/river"
	"github.com/robfig/cron/v3"

	core "github.com/JNZader/portfolio-2025-sub001/core"
)

// RegisterPurgeDeletedSubscribersWorker registers the purge worker into a
// River workers registry.
func RegisterPurgeDeletedSubscribersWorker(ws *river.Workers, svc *core.Service, before BeforeSubscriberHardDeleteFunc) {
	river.AddWorker(ws, NewPurgeDeletedSubscribersWorker(svc, before))
}

// AddPurgeDeletedSubscribersPeriodicJob adds a periodic job that enqueues the
// purge job on a cron schedule.
//
// Example cron: "0 4 * * *" (daily at 4 AM).
func AddPurgeDeletedSubscribersPeriodicJob[T any](client *river.Client[T], cronSpec string, args PurgeDeletedSubscribersArgs, runOnStart bool) error {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	schedule, err := parser.Parse(cronSpec)
	if err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", cronSpec, err)
	}
	opts := args.InsertOpts()
	_ = client.PeriodicJobs().Add(
		river.NewPeriodicJob(
			schedule,
			func() (river.JobArgs, *river.InsertOpts) { return args, &opts },
			&river.PeriodicJobOpts{RunOnStart: runOnStart},
		),
	)
	return nil
}
