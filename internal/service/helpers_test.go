package service_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/rumeysaaltintas35-ui/tenis-app/internal/cache"
	"github.com/rumeysaaltintas35-ui/tenis-app/internal/models"
	"github.com/rumeysaaltintas35-ui/tenis-app/internal/repository"
	"github.com/rumeysaaltintas35-ui/tenis-app/internal/service"
	"github.com/rumeysaaltintas35-ui/tenis-app/internal/sheets"
)

const testDocument = "CourtMaster_DB"

var (
	admin = service.Actor{SessionID: "test-session", Role: service.RoleAdmin}
	guest = service.Actor{}
)

// countingOpener wraps the real client and counts store reads per table.
type countingOpener struct {
	inner sheets.Opener

	mu    sync.Mutex
	reads map[string]int
	down  bool
}

func (o *countingOpener) Open(ctx context.Context, name string) (sheets.Store, error) {
	o.mu.Lock()
	down := o.down
	o.mu.Unlock()
	if down {
		return nil, errors.New("store unreachable")
	}

	store, err := o.inner.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	return &countingStore{Store: store, parent: o}, nil
}

func (o *countingOpener) readsOf(title string) int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.reads[title]
}

func (o *countingOpener) setDown(down bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.down = down
}

type countingStore struct {
	sheets.Store
	parent *countingOpener
}

func (s *countingStore) ReadTable(ctx context.Context, title string, columns []string) (sheets.RawTable, error) {
	s.parent.mu.Lock()
	s.parent.reads[title]++
	s.parent.mu.Unlock()
	return s.Store.ReadTable(ctx, title, columns)
}

type stack struct {
	opener   *countingOpener
	redis    *miniredis.Miniredis
	tables   service.TableService
	students service.StudentService
	ledger   service.LedgerService
	activity service.ActivityService
	court    service.CourtService
	schedule service.ScheduleService
	admin    service.AdminService
	now      time.Time
}

func newStack(t *testing.T) *stack {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Spreadsheet{}, &models.Worksheet{}, &models.WorksheetRow{}))

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	logger := zerolog.New(io.Discard)
	opener := &countingOpener{
		inner: sheets.NewClient(repository.NewSpreadsheetRepository(db), logger),
		reads: map[string]int{},
	}

	now := time.Date(2024, time.March, 15, 10, 30, 0, 0, time.UTC)
	clock := service.Clock(func() time.Time { return now })
	validate := validator.New(validator.WithRequiredStructEnabled())

	tables := service.NewTableService(opener, testDocument, cache.NewRedisTableCache(client), 10*time.Second, logger)
	ledger := service.NewLedgerService(tables, validate, clock, logger)
	activity := service.NewActivityService(tables, ledger, validate, clock, logger)
	schedule := service.NewScheduleService(tables, validate, 8, 22, logger)

	return &stack{
		opener:   opener,
		redis:    mr,
		tables:   tables,
		students: service.NewStudentService(tables, activity, ledger, validate, clock, logger),
		ledger:   ledger,
		activity: activity,
		court:    service.NewCourtService(tables, logger),
		schedule: schedule,
		admin:    service.NewAdminService(tables, schedule, logger),
		now:      now,
	}
}

func isValidation(err error) bool {
	var verrs validator.ValidationErrors
	return errors.As(err, &verrs)
}
