package etl

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/ougirez/carbon4c/internal/config"
	"github.com/ougirez/carbon4c/internal/domain/dto"
	"github.com/ougirez/carbon4c/internal/pkg/logger"
	"github.com/ougirez/carbon4c/internal/pkg/observability"
	"github.com/ougirez/carbon4c/internal/pkg/store"
	"golang.org/x/sync/errgroup"

	_ "modernc.org/sqlite"
)

var (
	ErrInvalidIdentifier = errors.New("invalid sql identifier")
	ErrNoSources         = errors.New("no etl sources configured")
)

var identifierRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Report summarises one consolidation run.
type Report struct {
	RunID  string            `json:"run_id"`
	Loaded map[string]int    `json:"loaded"`
	Failed map[string]string `json:"failed,omitempty"`
}

type Service struct {
	store       store.Store
	table       config.SourceTable
	concurrency int
}

func NewETLService(store store.Store, table config.SourceTable, concurrency int) *Service {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Service{store: store, table: table, concurrency: concurrency}
}

// Run loads every source into the warehouse as plant-level records. A source
// whose rows fail validation is skipped entirely and reported in Failed;
// warehouse write errors abort the run.
func (s *Service) Run(ctx context.Context, sources []config.SourceEntry) (*Report, error) {
	if len(sources) == 0 {
		return nil, ErrNoSources
	}

	query, err := s.selectQuery()
	if err != nil {
		return nil, err
	}

	report := &Report{
		RunID:  uuid.NewString(),
		Loaded: make(map[string]int, len(sources)),
		Failed: make(map[string]string),
	}
	reportMx := sync.Mutex{}

	ctx = logger.WithBatchID(ctx, report.RunID)
	started := time.Now()
	defer func() { observability.ETLDuration.Observe(time.Since(started).Seconds()) }()

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(s.concurrency)

	for _, src := range sources {
		src := src
		eg.Go(func() error {
			batch, err := extract(egCtx, src, query, fmt.Sprintf("%s#%s", src.Path, report.RunID))
			if err != nil {
				if egCtx.Err() != nil {
					return egCtx.Err()
				}
				logger.Errorf(egCtx, "extract, plant-%s: %s", src.PlantCode, err.Error())
				observability.ETLSourceFailures.WithLabelValues(src.PlantCode).Inc()

				reportMx.Lock()
				defer reportMx.Unlock()
				report.Failed[src.PlantCode] = err.Error()
				return nil
			}

			if err := s.load(egCtx, src, batch); err != nil {
				return fmt.Errorf("load, plant-%s: %w", src.PlantCode, err)
			}

			observability.ETLRowsLoaded.WithLabelValues(src.PlantCode).Add(float64(batch.Len()))
			logger.Infof(egCtx, "loaded %d records for plant %s", batch.Len(), src.PlantCode)

			reportMx.Lock()
			defer reportMx.Unlock()
			report.Loaded[src.PlantCode] = batch.Len()
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return report, fmt.Errorf("err in goroutine: %w", err)
	}

	return report, nil
}

func (s *Service) selectQuery() (string, error) {
	for _, ident := range []string{s.table.Name, s.table.IndicatorColumn, s.table.YearColumn, s.table.MonthColumn, s.table.ValueColumn} {
		if !identifierRe.MatchString(ident) {
			return "", fmt.Errorf("%w: %q", ErrInvalidIdentifier, ident)
		}
	}

	return fmt.Sprintf(`SELECT %s, %s, %s, %s FROM %s`,
		s.table.IndicatorColumn, s.table.YearColumn, s.table.MonthColumn, s.table.ValueColumn, s.table.Name), nil
}

func (s *Service) load(ctx context.Context, src config.SourceEntry, batch *dto.PlantBatch) error {
	company, err := s.store.UpsertCompany(ctx, src.CompanyCode, src.CompanyName)
	if err != nil {
		return fmt.Errorf("store.UpsertCompany: %w", err)
	}

	if _, err := s.store.UpsertPlant(ctx, company.ID, src.PlantCode, src.PlantName); err != nil {
		return fmt.Errorf("store.UpsertPlant: %w", err)
	}

	if err := s.store.UpsertRecords(ctx, batch.Records()); err != nil {
		return fmt.Errorf("store.UpsertRecords: %w", err)
	}

	return nil
}

// extract reads one plant database opened read-only. NULL months are annual
// records; NULL values are absent data and skipped.
func extract(ctx context.Context, src config.SourceEntry, query, source string) (*dto.PlantBatch, error) {
	db, err := openSource(ctx, src.Path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", src.Path, err)
	}
	defer rows.Close()

	batch := dto.NewPlantBatch(src.PlantCode, source)
	for rows.Next() {
		var (
			code  string
			year  int
			month sql.NullInt64
			value sql.NullFloat64
		)
		if err := rows.Scan(&code, &year, &month, &value); err != nil {
			return nil, fmt.Errorf("scan %s: %w", src.Path, err)
		}
		if !value.Valid {
			continue
		}

		if err := batch.PutData(code, year, int(month.Int64), value.Float64); err != nil {
			return nil, fmt.Errorf("batch.PutData, file-%s: %w", src.Path, err)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows %s: %w", src.Path, err)
	}

	return batch, nil
}

func openSource(ctx context.Context, path string) (*sql.DB, error) {
	dsn := "file:" + (&url.URL{Path: path}).EscapedPath() + "?mode=ro"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	err = backoff.Retry(
		func() error { return db.PingContext(ctx) },
		backoff.WithContext(
			backoff.WithMaxRetries(backoff.NewConstantBackOff(50*time.Millisecond), 3),
			ctx,
		),
	)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", path, err)
	}

	return db, nil
}
