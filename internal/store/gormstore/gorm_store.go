package gormstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"sift/internal/store"
	storemodel "sift/internal/store/model"

	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type insightModel = storemodel.InsightModel

// GormStore implements store.InsightStore on Gorm + SQLite. The unique
// (symbol, date) index backs up the pipeline's gate check; the gate is
// still consulted first so a second run issues no remote calls.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(path string) (*GormStore, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("gorm store: insight db path is empty")
	}
	if err := ensureDir(path); err != nil {
		return nil, err
	}
	// mattn/go-sqlite3 connection-string pragmas
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL&cache=shared", path)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&insightModel{}); err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// SQLite + WAL: the run loop writes while the HTTP API reads.
	sqlDB.SetMaxOpenConns(2)
	sqlDB.SetMaxIdleConns(2)
	return &GormStore{db: db}, nil
}

var _ store.InsightStore = (*GormStore)(nil)

func (s *GormStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *GormStore) HasInsight(ctx context.Context, symbol, date string) (bool, error) {
	if s == nil || s.db == nil {
		return false, fmt.Errorf("gorm store not initialized")
	}
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	date = strings.TrimSpace(date)
	if symbol == "" || date == "" {
		return false, fmt.Errorf("symbol and date are required")
	}
	var m insightModel
	err := s.db.WithContext(ctx).
		Where("symbol = ? AND date = ?", symbol, date).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *GormStore) InsertInsight(ctx context.Context, rec store.InsightRecord) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("gorm store not initialized")
	}
	rec.Symbol = strings.ToUpper(strings.TrimSpace(rec.Symbol))
	rec.Date = strings.TrimSpace(rec.Date)
	if rec.Symbol == "" || rec.Date == "" {
		return fmt.Errorf("symbol and date are required")
	}
	created := rec.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}
	m := insightModel{
		Symbol:        rec.Symbol,
		Date:          rec.Date,
		Score:         rec.Score,
		Insight:       rec.Insight,
		CreatedAtUnix: created.Unix(),
	}
	if len(rec.Metrics) > 0 {
		m.MetricsJSON = datatypes.JSON(rec.Metrics)
	}
	return s.db.WithContext(ctx).Create(&m).Error
}

func (s *GormStore) ListInsights(ctx context.Context, date string, minScore int) ([]store.InsightRecord, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("gorm store not initialized")
	}
	date = strings.TrimSpace(date)
	if date == "" {
		return nil, fmt.Errorf("date is required")
	}
	var models []insightModel
	err := s.db.WithContext(ctx).
		Where("date = ? AND score >= ?", date, minScore).
		Order("score DESC, symbol ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	out := make([]store.InsightRecord, 0, len(models))
	for _, m := range models {
		out = append(out, store.InsightRecord{
			Symbol:    m.Symbol,
			Date:      m.Date,
			Score:     m.Score,
			Insight:   m.Insight,
			Metrics:   []byte(m.MetricsJSON),
			CreatedAt: time.Unix(m.CreatedAtUnix, 0).UTC(),
		})
	}
	return out, nil
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
