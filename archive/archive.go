package archive

import (
	"context"
	"fmt"
	"time"

	"github.com/MixinNetwork/launchpad/chain"
	"github.com/avast/retry-go/v4"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

var (
	RtyAttNum = uint(5)
	RtyAtt    = retry.Attempts(RtyAttNum)
	RtyDel    = retry.Delay(time.Millisecond * 400)
	RtyErr    = retry.LastErrorOnly(true)
)

// Archive mirrors committed events into postgres for querying by module,
// name or account.
type Archive struct {
	db  *gorm.DB
	log *zap.Logger
}

// ConnectToDatabase opens a postgres session. It fails when the server
// cannot be reached.
func ConnectToDatabase(connString string, gormLogLevel logger.LogLevel) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  connString,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(gormLogLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initalize db session, ensure db server is running & check conn string: %w", err)
	}
	return db, nil
}

func New(db *gorm.DB, log *zap.Logger) *Archive {
	return &Archive{db: db, log: log.With(zap.String("service", "archive"))}
}

func (a *Archive) MigrateSchema() error {
	return a.db.AutoMigrate(&EventRecord{})
}

// Record stores events, retrying transient database failures.
func (a *Archive) Record(ctx context.Context, events []*chain.Event) error {
	if len(events) == 0 {
		return nil
	}
	records := make([]*EventRecord, 0, len(events))
	for _, evt := range events {
		r, err := NewEventRecord(evt)
		if err != nil {
			return err
		}
		records = append(records, r)
	}

	return retry.Do(func() error {
		return a.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&records).Error
	}, retry.Context(ctx), RtyAtt, RtyDel, RtyErr, retry.DelayType(retry.BackOffDelay), retry.OnRetry(func(n uint, err error) {
		a.log.Info("Failed to record events",
			zap.Uint64("block", events[0].Block),
			zap.Uint("attempt", n),
			zap.Error(err))
	}))
}

// ListEvents returns the latest events, newest first. Empty filters match
// everything.
func (a *Archive) ListEvents(ctx context.Context, module, name, account string, limit int) ([]*chain.Event, error) {
	q := a.db.WithContext(ctx).Model(&EventRecord{})
	if module != "" {
		q = q.Where("module = ?", module)
	}
	if name != "" {
		q = q.Where("name = ?", name)
	}
	if account != "" {
		q = q.Where("account = ?", account)
	}
	var records []*EventRecord
	err := q.Order("block DESC, index DESC").Limit(limit).Find(&records).Error
	if err != nil {
		return nil, err
	}
	events := make([]*chain.Event, 0, len(records))
	for _, r := range records {
		evt, err := r.Event()
		if err != nil {
			return nil, err
		}
		events = append(events, evt)
	}
	return events, nil
}
