// Package database 按驱动名打开 gorm 连接
package database

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	_ "modernc.org/sqlite" // 纯 Go 驱动，注册名 "sqlite"
)

var ErrUnsupportedDriver = errors.New("unsupported db driver")

type Opts struct {
	Driver             string // postgres / mysql / sqlite
	DSN                string
	Username           string // 仅 mysql URL 形式 DSN 使用
	Password           string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	LogLevel           string      // silent / error / warn / info
	Log                *zap.Logger // 可选；设置后 SQL 日志走 zap
}

const slowSQL = 200 * time.Millisecond

func NewGorm(o Opts) (*gorm.DB, error) {
	dial, err := dialector(o)
	if err != nil {
		return nil, err
	}
	db, err := gorm.Open(dial, &gorm.Config{Logger: sqlLogger(o)})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", o.Driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	open, idle := o.MaxOpenConns, o.MaxIdleConns
	if o.Driver == "sqlite" {
		// :memory: 每个连接是一份独立的库
		open, idle = 1, 1
	}
	sqlDB.SetMaxOpenConns(open)
	sqlDB.SetMaxIdleConns(idle)
	sqlDB.SetConnMaxLifetime(time.Duration(o.ConnMaxLifetimeMin) * time.Minute)

	return db.Session(&gorm.Session{
		PrepareStmt:            o.Driver != "sqlite",
		SkipDefaultTransaction: true,
	}), nil
}

func dialector(o Opts) (gorm.Dialector, error) {
	switch o.Driver {
	case "postgres":
		return postgres.Open(o.DSN), nil
	case "mysql":
		dsn := normalizeMySQLDSN(o.DSN, o.Username, o.Password)
		if o.Log != nil {
			o.Log.Info("mysql dsn", zap.String("dsn", maskDSN(dsn)))
		}
		return mysql.Open(dsn), nil
	case "sqlite":
		dsn := o.DSN
		if dsn == "" {
			dsn = ":memory:"
		}
		return sqlite.New(sqlite.Config{DriverName: "sqlite", DSN: dsn}), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, o.Driver)
}

func sqlLogger(o Opts) gormlogger.Interface {
	lvl := gormlogger.Warn
	switch o.LogLevel {
	case "silent":
		lvl = gormlogger.Silent
	case "error":
		lvl = gormlogger.Error
	case "info":
		lvl = gormlogger.Info
	}
	if o.Log == nil {
		return gormlogger.Default.LogMode(lvl)
	}
	return gormlogger.New(zapPrintf{o.Log.Named("gorm").Sugar()}, gormlogger.Config{
		SlowThreshold:             slowSQL,
		LogLevel:                  lvl,
		IgnoreRecordNotFoundError: true,
	})
}

// zapPrintf 适配 gormlogger.Writer
type zapPrintf struct{ s *zap.SugaredLogger }

func (w zapPrintf) Printf(format string, args ...any) { w.s.Infof(format, args...) }
