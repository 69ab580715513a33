package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/rumeysaaltintas35-ui/tenis-app/internal/cache"
	"github.com/rumeysaaltintas35-ui/tenis-app/internal/observability"
	"github.com/rumeysaaltintas35-ui/tenis-app/internal/sheets"
)

// TableService reads worksheets through the cache and writes them to the store.
// Every successful write flushes the whole document cache.
type TableService interface {
	Load(ctx context.Context, schema sheets.Schema) sheets.Table
	Replace(ctx context.Context, schema sheets.Schema, basis sheets.Table, rows [][]string) error
	Append(ctx context.Context, schema sheets.Schema, row []string) error
	Recreate(ctx context.Context, schema sheets.Schema, seed [][]string) error
	Flush(ctx context.Context)
}

type tableService struct {
	opener   sheets.Opener
	document string
	cache    cache.TableCache
	cacheTTL time.Duration
	logger   zerolog.Logger
	tracer   trace.Tracer
}

// NewTableService builds the cached table accessor for one document.
func NewTableService(opener sheets.Opener, document string, tableCache cache.TableCache, ttl time.Duration, logger zerolog.Logger) TableService {
	return &tableService{
		opener:   opener,
		document: document,
		cache:    tableCache,
		cacheTTL: ttl,
		logger:   logger.With().Str("component", "table_service").Str("document", document).Logger(),
		tracer:   otel.Tracer("github.com/rumeysaaltintas35-ui/tenis-app/internal/service/tables"),
	}
}

// Load returns the normalized table. Store failures yield an empty, degraded
// table instead of an error.
func (s *tableService) Load(ctx context.Context, schema sheets.Schema) sheets.Table {
	ctx, span := s.tracer.Start(ctx, "tables.load", trace.WithAttributes(attribute.String("table", schema.Title)))
	defer span.End()

	key := cache.Key(s.document, schema)
	if s.cache != nil {
		raw, ok, err := s.cache.Get(ctx, key)
		switch {
		case err != nil:
			s.logger.Warn().Err(err).Str("table", schema.Title).Msg("failed to read table cache")
			span.RecordError(err)
		case ok:
			observability.TableCacheResults().WithLabelValues(schema.Title, "hit").Inc()
			span.SetAttributes(attribute.Bool("tables.cache_hit", true))
			return s.normalize(raw, schema)
		}
	}
	observability.TableCacheResults().WithLabelValues(schema.Title, "miss").Inc()
	span.SetAttributes(attribute.Bool("tables.cache_hit", false))

	store, err := s.opener.Open(ctx, s.document)
	if err != nil {
		return s.degrade(span, schema, err)
	}

	start := time.Now()
	raw, err := store.ReadTable(ctx, schema.Title, schema.Columns)
	observability.StoreLatency().WithLabelValues("read", schema.Title).Observe(time.Since(start).Seconds())
	if err != nil {
		return s.degrade(span, schema, err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, raw, s.cacheTTL); err != nil {
			s.logger.Warn().Err(err).Str("table", schema.Title).Msg("failed to store table cache")
		}
	}

	return s.normalize(raw, schema)
}

// Replace overwrites the table with rows, provided it is still at the
// revision basis was read at.
func (s *tableService) Replace(ctx context.Context, schema sheets.Schema, basis sheets.Table, rows [][]string) error {
	ctx, span := s.tracer.Start(ctx, "tables.replace", trace.WithAttributes(
		attribute.String("table", schema.Title),
		attribute.Int("rows", len(rows)),
		attribute.Int64("revision", basis.Revision),
	))
	defer span.End()

	if basis.Degraded {
		span.SetStatus(codes.Error, "degraded_basis")
		return fmt.Errorf("replace %s: %w", schema.Title, ErrTableUnavailable)
	}

	store, err := s.opener.Open(ctx, s.document)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("open document: %w", err)
	}

	start := time.Now()
	_, err = store.WriteTable(ctx, schema.Title, schema.Columns, rows, basis.Revision)
	observability.StoreLatency().WithLabelValues("write", schema.Title).Observe(time.Since(start).Seconds())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "write_failed")
		if errors.Is(err, sheets.ErrRevisionConflict) {
			s.logger.Warn().Err(err).Str("table", schema.Title).Msg("table changed since it was read")
			s.Flush(ctx)
		}
		return err
	}

	s.Flush(ctx)
	return nil
}

func (s *tableService) Append(ctx context.Context, schema sheets.Schema, row []string) error {
	ctx, span := s.tracer.Start(ctx, "tables.append", trace.WithAttributes(attribute.String("table", schema.Title)))
	defer span.End()

	store, err := s.opener.Open(ctx, s.document)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("open document: %w", err)
	}

	start := time.Now()
	_, err = store.AppendRow(ctx, schema.Title, schema.Columns, row)
	observability.StoreLatency().WithLabelValues("append", schema.Title).Observe(time.Since(start).Seconds())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "append_failed")
		return err
	}

	s.Flush(ctx)
	return nil
}

// Recreate drops the table and creates it again with only its header and seed rows.
func (s *tableService) Recreate(ctx context.Context, schema sheets.Schema, seed [][]string) error {
	ctx, span := s.tracer.Start(ctx, "tables.recreate", trace.WithAttributes(attribute.String("table", schema.Title)))
	defer span.End()
	defer s.Flush(ctx)

	store, err := s.opener.Open(ctx, s.document)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("open document: %w", err)
	}

	if err := store.DeleteTable(ctx, schema.Title); err != nil {
		span.RecordError(err)
		return err
	}
	if err := store.CreateTable(ctx, schema.Title, schema.Columns); err != nil {
		span.RecordError(err)
		return err
	}
	if len(seed) > 0 {
		if _, err := store.WriteTable(ctx, schema.Title, schema.Columns, seed, -1); err != nil {
			span.RecordError(err)
			return err
		}
	}
	return nil
}

// Flush drops every cached table of the document.
func (s *tableService) Flush(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Flush(ctx, cache.Prefix(s.document)); err != nil {
		s.logger.Warn().Err(err).Msg("failed to flush table cache")
	}
}

func (s *tableService) normalize(raw sheets.RawTable, schema sheets.Schema) sheets.Table {
	table := sheets.Normalize(raw, schema)
	for _, warning := range table.Warnings {
		s.logger.Warn().
			Str("table", schema.Title).
			Int("row", warning.Row).
			Str("column", warning.Column).
			Str("value", warning.Value).
			Msg("unparsable number counted as zero")
	}
	return table
}

func (s *tableService) degrade(span trace.Span, schema sheets.Schema, err error) sheets.Table {
	s.logger.Warn().Err(err).Str("table", schema.Title).Msg("table read failed, serving empty table")
	span.RecordError(err)
	span.SetStatus(codes.Error, "read_failed")

	table := sheets.Empty(schema)
	table.Degraded = true
	table.Revision = -1
	return table
}
