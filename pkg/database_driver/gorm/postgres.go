package gorm

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB struct
type DB struct {
	Postgres *gorm.DB
}

// ErrMissingConnectionInfo is returned when neither host, port nor database is set
var ErrMissingConnectionInfo = errors.New("cannot establish the connection")

// dsn builds a libpq key/value connection string
func dsn(host, port, username, pass, dbname string, sslmode bool) string {
	mode := "disable"
	if sslmode {
		mode = "require"
	}
	return fmt.Sprintf("host=%v user=%v password=%v dbname=%v port=%v sslmode=%v connect_timeout=0",
		host, username, pass, dbname, port, mode)
}

// ConnectToPostgreSQL func
func ConnectToPostgreSQL(host, port, username, pass, dbname string, sslmode bool) (*DB, error) {
	if host == "" && port == "" && dbname == "" {
		return nil, ErrMissingConnectionInfo
	}

	pg, err := gorm.Open(postgres.Open(dsn(host, port, username, pass, dbname, sslmode)), &gorm.Config{
		DryRun: false,
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		logrus.Error(err)
		return nil, err
	}

	sqlDB, err := pg.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(2 * time.Hour)

	logrus.Infof("Connected to postgres %s:%s/%s", host, port, dbname)
	return &DB{Postgres: pg}, nil
}

// DisconnectPostgres func
func DisconnectPostgres(db *gorm.DB) {
	sqlDb, err := db.DB()
	if err != nil {
		logrus.Error(err)
		return
	}
	if err = sqlDb.Close(); err != nil {
		logrus.Error(err)
		return
	}
	logrus.Println("Connected with postgres has closed")
}
