// Package store persists fired alerts to MySQL for later review and
// reporting. The store is optional; when no database is configured the
// service runs without it.
package store

import (
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/kurthamm/flighttrak-enhanced/internal"
)

// AlertRecord is one fired alert, proximity or emergency.
type AlertRecord struct {
	ID           uint      `gorm:"primaryKey"`
	Kind         string    `gorm:"index;size:16"`
	Hex          string    `gorm:"index;size:8"`
	Callsign     string    `gorm:"size:16"`
	SquawkCode   string    `gorm:"size:4"`
	Owner        string    `gorm:"size:128"`
	TailNumber   string    `gorm:"size:16"`
	ClosestMiles float64
	Direction    string `gorm:"size:4"`
	Detail       string `gorm:"size:512"`
	FiredAt      time.Time
}

const (
	KindProximity = "proximity"
	KindEmergency = "emergency"
)

// Store wraps the database handle.
type Store struct {
	db     *gorm.DB
	logger *slog.Logger
}

// Connect opens the MySQL database and migrates the alert table.
func Connect(user, pass, hostname, port, database string, log *slog.Logger) (*Store, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True", user, pass, hostname, port, database)
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("store: connect %s/%s: %w", hostname, database, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("store: database handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(10)

	if err := db.AutoMigrate(&AlertRecord{}); err != nil {
		return nil, fmt.Errorf("store: migrate: %w", err)
	}

	return &Store{db: db, logger: log}, nil
}

// Proximity records a fired proximity alert.
func (s *Store) Proximity(alert internal.ProximityAlert) {
	record := AlertRecord{
		Kind:         KindProximity,
		Hex:          alert.Hex,
		Callsign:     alert.Closest.Callsign(),
		Owner:        alert.Owner,
		TailNumber:   alert.TailNumber,
		ClosestMiles: alert.ClosestMiles,
		Direction:    alert.Direction,
		Detail:       alert.Description,
		FiredAt:      alert.FiredAt,
	}
	if err := s.db.Create(&record).Error; err != nil {
		s.logger.Error("failed to record proximity alert", "hex", alert.Hex, "error", err)
	}
}

// Emergency records a fired emergency alert.
func (s *Store) Emergency(alert internal.EmergencyAlert) {
	record := AlertRecord{
		Kind:       KindEmergency,
		Hex:        alert.Hex,
		Callsign:   alert.Snapshot.Callsign(),
		SquawkCode: alert.Code,
		Detail:     alert.Description,
		FiredAt:    alert.FiredAt,
	}
	if err := s.db.Create(&record).Error; err != nil {
		s.logger.Error("failed to record emergency alert", "hex", alert.Hex, "error", err)
	}
}

// Recent returns the newest alerts up to limit, newest first.
func (s *Store) Recent(limit int) ([]AlertRecord, error) {
	var records []AlertRecord
	err := s.db.Order("fired_at desc").Limit(limit).Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("store: query recent alerts: %w", err)
	}
	return records, nil
}

// CullOlderThan deletes alerts fired before the cutoff and returns the
// number removed. Run daily from the scheduler.
func (s *Store) CullOlderThan(cutoff time.Time) (int64, error) {
	result := s.db.Where("fired_at < ?", cutoff).Delete(&AlertRecord{})
	if result.Error != nil {
		return 0, fmt.Errorf("store: cull alerts: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// Close releases the connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
