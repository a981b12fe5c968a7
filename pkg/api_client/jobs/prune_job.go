package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultPruneSpec is the cron schedule for expiring stored diagrams.
const DefaultPruneSpec = "@every 1m"

// Pruner verwijdert verlopen entries; DiagramStore voldoet hieraan
type Pruner interface {
	Prune(now time.Time) int
}

// SchedulePrune zet een cron job op die verlopen diagrammen opruimt.
// De job stopt zodra ctx afloopt.
func SchedulePrune(ctx context.Context, spec string, store Pruner, log *zap.Logger) (*cron.Cron, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if spec == "" {
		spec = DefaultPruneSpec
	}
	cronLog := cron.PrintfLogger(zap.NewStdLog(log.Named("cron")))
	c := cron.New(cron.WithChain(
		cron.Recover(cronLog),
		cron.SkipIfStillRunning(cronLog),
	))

	if _, err := c.AddFunc(spec, pruneFunc(store, log, time.Now)); err != nil {
		return nil, err
	}

	c.Start()
	go func() {
		<-ctx.Done()
		<-c.Stop().Done()
	}()
	return c, nil
}

func pruneFunc(store Pruner, log *zap.Logger, now func() time.Time) func() {
	return func() {
		if removed := store.Prune(now()); removed > 0 {
			log.Info("expired diagrams removed", zap.Int("removed", removed))
		}
	}
}
