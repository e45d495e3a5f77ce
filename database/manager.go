/*
 * Copyright 2026 strata-db.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package database

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/mysqldialect"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
	"github.com/uptrace/bun/extra/bundebug"
)

type connectionManager struct {
	config          *ConnectionConfig
	db              *bun.DB
	sqlDB           *sql.DB
	logger          Logger
	mu              sync.RWMutex
	connected       bool
	lastError       error
	reconnectTries  int
	stopHealthCheck chan struct{}
	healthCheckOnce sync.Once
}

// NewManager returns a Manager backed by Bun. A nil config selects the
// defaults.
func NewManager(config *ConnectionConfig) Manager {
	if config == nil {
		config = DefaultConnectionConfig()
	}
	return &connectionManager{
		config:          config,
		stopHealthCheck: make(chan struct{}),
	}
}

func (m *connectionManager) Connect(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.connected && m.db != nil {
		return nil
	}

	sqlDB, db, err := m.open()
	if err != nil {
		m.lastError = err
		return fmt.Errorf("failed to open database connection: %w", err)
	}
	m.sqlDB, m.db = sqlDB, db

	m.sqlDB.SetMaxIdleConns(m.config.MaxIdleConns)
	m.sqlDB.SetMaxOpenConns(m.config.MaxOpenConns)
	m.sqlDB.SetConnMaxLifetime(m.config.ConnMaxLifetime)
	m.sqlDB.SetConnMaxIdleTime(m.config.ConnMaxIdleTime)

	pingCtx, cancel := context.WithTimeout(ctx, m.config.ConnectTimeout)
	defer cancel()
	if err := m.db.PingContext(pingCtx); err != nil {
		m.lastError = err
		return fmt.Errorf("database connection test failed: %w", err)
	}

	m.connected = true
	m.lastError = nil
	m.reconnectTries = 0

	if m.config.HealthCheckInterval > 0 {
		m.startHealthCheck()
	}

	if m.logger != nil {
		m.logger.Info("database connected", "type", m.config.Type, "host", m.config.Host)
	}
	return nil
}

func (m *connectionManager) open() (*sql.DB, *bun.DB, error) {
	if m.config.ConnectTimeout <= 0 {
		m.config.ConnectTimeout = 30 * time.Second
	}

	var sqlDB *sql.DB
	var db *bun.DB
	var err error

	switch m.config.Type {
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local&timeout=%s&readTimeout=%s&writeTimeout=%s",
			m.config.Username, m.config.Password, m.config.Host, m.config.Port, m.config.DBName,
			m.config.ConnectTimeout, m.config.ReadTimeout, m.config.WriteTimeout)
		if sqlDB, err = sql.Open("mysql", dsn); err == nil {
			db = bun.NewDB(sqlDB, mysqldialect.New())
		}
	case "postgres", "postgresql":
		sslMode := m.config.SSLMode
		if sslMode == "" {
			sslMode = "disable"
		}
		dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s&connect_timeout=%d",
			m.config.Username, m.config.Password, m.config.Host, m.config.Port, m.config.DBName,
			sslMode, int(m.config.ConnectTimeout.Seconds()))
		if sqlDB, err = sql.Open("postgres", dsn); err == nil {
			db = bun.NewDB(sqlDB, pgdialect.New())
		}
	case "sqlite", "sqlite3":
		dsn := m.config.DBName
		if dsn == "" {
			dsn = "file::memory:?cache=shared"
		}
		if sqlDB, err = sql.Open(sqliteshim.ShimName, dsn); err == nil {
			db = bun.NewDB(sqlDB, sqlitedialect.New())
		}
	default:
		return nil, nil, fmt.Errorf("unsupported database type: %s", m.config.Type)
	}
	if err != nil {
		return nil, nil, err
	}

	if m.config.EnableQueryLog {
		db.AddQueryHook(bundebug.NewQueryHook(
			bundebug.WithVerbose(true),
			bundebug.FromEnv(queryLogEnv),
		))
	}
	if m.config.SlowQueryTime > 0 {
		db.AddQueryHook(&SlowQueryHook{
			slowTime: m.config.SlowQueryTime,
			logger:   m.logger,
		})
	}

	return sqlDB, db, nil
}

func (m *connectionManager) Disconnect() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	select {
	case m.stopHealthCheck <- struct{}{}:
	default:
	}

	if m.db == nil {
		return nil
	}
	err := m.db.Close()
	m.db = nil
	m.sqlDB = nil
	m.connected = false

	if m.logger != nil {
		if err != nil {
			m.logger.Error("failed to close database connection", "error", err)
		} else {
			m.logger.Info("database connection closed")
		}
	}
	return err
}

func (m *connectionManager) Reconnect(ctx context.Context) error {
	if m.logger != nil {
		m.logger.Info("reconnecting to the database")
	}
	if err := m.Disconnect(); err != nil && m.logger != nil {
		m.logger.Warn("error disconnecting existing connection", "error", err)
	}
	return m.Connect(ctx)
}

func (m *connectionManager) Ping(ctx context.Context) error {
	m.mu.RLock()
	db := m.db
	m.mu.RUnlock()

	if db == nil {
		return fmt.Errorf("database not connected")
	}
	return db.PingContext(ctx)
}

func (m *connectionManager) GetDB() *bun.DB {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.db
}

func (m *connectionManager) GetSQLDB() *sql.DB {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sqlDB
}

func (m *connectionManager) HealthCheck(ctx context.Context) *HealthStatus {
	m.mu.Lock()
	defer m.mu.Unlock()

	start := time.Now()
	status := &HealthStatus{
		LastCheckTime: start,
		Connected:     m.connected,
	}

	if m.db == nil {
		status.LastError = "database not initialized"
		return status
	}

	pingCtx, cancel := context.WithTimeout(ctx, time.Second*5)
	defer cancel()

	err := m.db.PingContext(pingCtx)
	status.ResponseTime = time.Since(start)

	if err != nil {
		status.Connected = false
		status.LastError = err.Error()
		m.lastError = err
	} else {
		status.Healthy = true
		status.Connected = true
		m.lastError = nil
	}

	if m.sqlDB != nil {
		stats := m.sqlDB.Stats()
		status.ActiveConns = stats.InUse
		status.IdleConns = stats.Idle
		status.MaxOpenConns = stats.MaxOpenConnections
	}
	return status
}

func (m *connectionManager) startHealthCheck() {
	m.healthCheckOnce.Do(func() {
		go func() {
			ticker := time.NewTicker(m.config.HealthCheckInterval)
			defer ticker.Stop()

			for {
				select {
				case <-ticker.C:
					ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
					status := m.HealthCheck(ctx)
					cancel()
					if !status.Healthy && m.config.EnableReconnect {
						m.handleReconnect()
					}
				case <-m.stopHealthCheck:
					return
				}
			}
		}()
	})
}

func (m *connectionManager) handleReconnect() {
	if m.reconnectTries >= m.config.MaxReconnectTries {
		if m.logger != nil {
			m.logger.Error("max reconnect attempts reached", "tries", m.reconnectTries)
		}
		return
	}
	m.reconnectTries++
	if m.logger != nil {
		m.logger.Info("starting database reconnect", "try", m.reconnectTries)
	}

	time.Sleep(m.config.ReconnectInterval)

	ctx, cancel := context.WithTimeout(context.Background(), m.config.ConnectTimeout)
	defer cancel()

	if err := m.Reconnect(ctx); err != nil {
		if m.logger != nil {
			m.logger.Error("reconnect failed", "error", err, "try", m.reconnectTries)
		}
		return
	}
	m.reconnectTries = 0
	if m.logger != nil {
		m.logger.Info("reconnect succeeded")
	}
}

func (m *connectionManager) GetStats() *DBStats {
	m.mu.RLock()
	sqlDB := m.sqlDB
	m.mu.RUnlock()

	if sqlDB == nil {
		return &DBStats{}
	}
	stats := sqlDB.Stats()
	return &DBStats{
		MaxOpenConns:      stats.MaxOpenConnections,
		OpenConns:         stats.OpenConnections,
		InUse:             stats.InUse,
		Idle:              stats.Idle,
		WaitCount:         stats.WaitCount,
		WaitDuration:      stats.WaitDuration,
		MaxIdleClosed:     stats.MaxIdleClosed,
		MaxIdleTimeClosed: stats.MaxIdleTimeClosed,
		MaxLifetimeClosed: stats.MaxLifetimeClosed,
	}
}

func (m *connectionManager) SetLogger(logger Logger) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logger = logger
}
