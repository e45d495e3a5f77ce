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

	"github.com/uptrace/bun"
)

var (
	globalFactory *Factory
	// DB is the global Bun handle set by InitDB.
	DB *bun.DB
)

// GetDB returns the global Bun database instance.
func GetDB() *bun.DB {
	if globalFactory != nil {
		return globalFactory.GetDB()
	}
	return DB
}

// GetManager returns the global database manager, or nil before InitDB.
func GetManager() Manager {
	if globalFactory != nil {
		return globalFactory.GetManager()
	}
	return nil
}

// GetFactory returns the global database factory.
func GetFactory() *Factory {
	return globalFactory
}

// InitDB connects the global database from the given configuration and
// registers all known models on the resulting Bun handle.
func InitDB(cfg *Config) (*bun.DB, error) {
	globalFactory = NewFactory()
	manager, err := globalFactory.CreateFromConfig(&cfg.Connection)
	if err != nil {
		return nil, err
	}
	if err := globalFactory.Initialize(context.Background()); err != nil {
		return nil, err
	}

	DB = manager.GetDB()
	DB.RegisterModel(RegisteredModelInstances()...)
	return DB, nil
}

// CloseDB closes the global database connection.
func CloseDB() error {
	if globalFactory != nil {
		return globalFactory.Close()
	}
	return nil
}

// GetHealthStatus returns the current global database health status.
func GetHealthStatus(ctx context.Context) *HealthStatus {
	if globalFactory != nil {
		return globalFactory.GetHealthStatus(ctx)
	}
	return &HealthStatus{LastError: "database not initialized"}
}

// GetDatabaseStats returns global pool statistics.
func GetDatabaseStats() *DBStats {
	if globalFactory != nil {
		return globalFactory.GetStats()
	}
	return &DBStats{}
}
