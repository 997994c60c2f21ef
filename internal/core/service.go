package core

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/JonMunkholm/tabscope/internal/chart"
	"github.com/JonMunkholm/tabscope/internal/config"
	"github.com/JonMunkholm/tabscope/internal/logging"
	"github.com/google/uuid"
)

// Service runs the upload, statistics and visualization pipeline for each
// session. It is safe for concurrent use.
type Service struct {
	cfg      *config.Config
	sessions *SessionStore

	uploadLimiter *Limiter
	chartLimiter  *Limiter
}

// Status is a point-in-time view of the service for health checks.
type Status struct {
	Sessions      int `json:"sessions"`
	UploadsActive int `json:"uploads_active"`
	ChartsActive  int `json:"charts_active"`
}

// NewService creates a new Service instance.
func NewService(cfg *config.Config) *Service {
	return &Service{
		cfg:           cfg,
		sessions:      NewSessionStore(),
		uploadLimiter: NewLimiter(cfg.Upload.MaxConcurrent, cfg.Upload.MaxWaitTime, ErrTooManyUploads),
		chartLimiter:  NewLimiter(cfg.Chart.MaxConcurrent, cfg.Upload.MaxWaitTime, ErrTooManyCharts),
	}
}

// Upload parses r as the session's new dataset, cleans it and stores it,
// replacing whatever the session held. size is the declared byte size, or
// a negative value when unknown.
//
// Returns ErrTooManyUploads if the concurrent upload limit is reached and
// no slot becomes available in time. On any failure the session keeps its
// previous dataset.
func (s *Service) Upload(ctx context.Context, sessionID, fileName string, r io.Reader, size int64) (*Preview, error) {
	if r == nil || fileName == "" {
		return nil, ErrNoFile
	}
	if size > s.cfg.Upload.MaxFileSize {
		return nil, fmt.Errorf("%w: %d bytes (limit %d)", ErrFileTooLarge, size, s.cfg.Upload.MaxFileSize)
	}

	if err := s.uploadLimiter.Acquire(ctx); err != nil {
		return nil, err
	}
	defer s.uploadLimiter.Release()

	uploadID := uuid.New().String()
	logger := logging.WithFields(ctx,
		"session_id", sessionID,
		"upload_id", uploadID,
		"file", fileName,
	)
	start := time.Now()

	table, info, err := LoadFile(fileName, r)
	if err != nil {
		logger.Warn("upload rejected", "error", err, "bytes", info.Bytes)
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	Clean(table)

	d := &Dataset{
		Table:    table,
		FileName: fileName,
		Format:   info.Format,
		Bytes:    info.Bytes,
		LoadedAt: time.Now(),
	}
	s.sessions.Put(sessionID, d)

	logger.Info("upload loaded",
		"format", info.Format,
		"rows", table.NumRows(),
		"columns", table.NumColumns(),
		"numeric_columns", len(table.NumericColumns()),
		"bytes", info.Bytes,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return NewPreview(d, s.cfg.Upload.PreviewRows), nil
}

// Dataset returns the session's current dataset or ErrNoDataLoaded.
func (s *Service) Dataset(sessionID string) (*Dataset, error) {
	d, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, ErrNoDataLoaded
	}
	return d, nil
}

// HasData reports whether the session has uploaded a dataset.
func (s *Service) HasData(sessionID string) bool {
	return s.sessions.Has(sessionID)
}

// Preview returns the head of the session's dataset.
func (s *Service) Preview(sessionID string) (*Preview, error) {
	d, err := s.Dataset(sessionID)
	if err != nil {
		return nil, err
	}
	return NewPreview(d, s.cfg.Upload.PreviewRows), nil
}

// NumericColumns lists the numeric column names of the session's dataset,
// the valid axis choices for charts.
func (s *Service) NumericColumns(sessionID string) ([]string, error) {
	d, err := s.Dataset(sessionID)
	if err != nil {
		return nil, err
	}
	return d.Table.NumericNames(), nil
}

// Statistic computes one aggregate over the session's numeric columns.
func (s *Service) Statistic(ctx context.Context, sessionID, kind string) (*Statistic, error) {
	d, err := s.Dataset(sessionID)
	if err != nil {
		return nil, err
	}
	res, err := ComputeStatistic(d.Table, kind)
	if err != nil {
		return nil, err
	}
	logging.WithFields(ctx, "session_id", sessionID).Debug("statistic computed",
		"kind", res.Kind,
		"columns", len(res.Values),
	)
	return res, nil
}

// Summary computes every statistic over the session's numeric columns.
func (s *Service) Summary(ctx context.Context, sessionID string) (*Summary, error) {
	d, err := s.Dataset(sessionID)
	if err != nil {
		return nil, err
	}
	return Summarize(d.Table)
}

// Visualize draws the requested chart from the session's dataset. Rendering
// is bounded by the chart limiter; ErrTooManyCharts is returned when no slot
// frees up in time.
func (s *Service) Visualize(ctx context.Context, sessionID string, req ChartRequest) (*Chart, error) {
	d, err := s.Dataset(sessionID)
	if err != nil {
		return nil, err
	}
	if _, err := ResolveChart(req.Choice); err != nil {
		return nil, err
	}

	var out *Chart
	start := time.Now()
	err = s.chartLimiter.Do(ctx, func() error {
		var err error
		out, err = Visualize(d.Table, req, s.RenderSettings())
		return err
	})
	if err != nil {
		return nil, err
	}

	logging.WithFields(ctx, "session_id", sessionID).Debug("chart rendered",
		"kind", out.Kind,
		"x", req.X,
		"y", req.Y,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return out, nil
}

// RenderSettings returns the chart settings derived from configuration.
func (s *Service) RenderSettings() RenderSettings {
	return RenderSettings{
		Options: chart.Options{
			Width:  s.cfg.Chart.Width,
			Height: s.cfg.Chart.Height,
		},
		Bins:       s.cfg.Chart.HistogramBins,
		KDEPoints:  s.cfg.Chart.KDEPoints,
		AssetsHost: s.cfg.Chart.EChartsAssetsHost,
	}
}

// Status reports session and limiter occupancy.
func (s *Service) Status() Status {
	return Status{
		Sessions:      s.sessions.Len(),
		UploadsActive: s.uploadLimiter.Active(),
		ChartsActive:  s.chartLimiter.Active(),
	}
}

// WaitForUploads blocks until in-flight uploads finish or ctx is done.
func (s *Service) WaitForUploads(ctx context.Context) error {
	return s.uploadLimiter.WaitForDrain(ctx)
}
