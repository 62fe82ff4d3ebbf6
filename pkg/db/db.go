package db

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	_ "github.com/lib/pq"
)

const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite3"
)

type DBConfig struct {
	DSN             string
	Dialect         string
	Timeout         int
	MaxOpenConns    int
	MaxIdleConns    int
	IdleConnTimeout int
}

type DBConfigYaml struct {
	Host            string `yaml:"host"`
	Port            string `yaml:"port"`
	DBName          string `yaml:"db_name"`
	Username        string `yaml:"username"`
	Password        string `yaml:"password"`
	SSLMode         string `yaml:"ssl_mode"`
	Timeout         int    `yaml:"timeout"`
	MaxOpenConns    int    `yaml:"max_open_conns"`
	MaxIdleConns    int    `yaml:"max_idle_conns"`
	IdleConnTimeout int    `yaml:"idle_conn_timeout"`
}

func (c DBConfigYaml) ToDBConfig() DBConfig {
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return DBConfig{
		DSN: fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			c.Host, c.Port, c.Username, c.Password, c.DBName, sslMode),
		Dialect:         DialectPostgres,
		Timeout:         c.Timeout,
		MaxOpenConns:    c.MaxOpenConns,
		MaxIdleConns:    c.MaxIdleConns,
		IdleConnTimeout: c.IdleConnTimeout,
	}
}

// Connect opens the relational store and verifies the connection.
func Connect(config DBConfig) (*sqlx.DB, error) {
	driver := config.Dialect
	if driver == DialectSQLite {
		driver = "sqlite"
	}
	dbClient, err := sqlx.Connect(driver, config.DSN)
	if err != nil {
		return nil, err
	}
	if config.MaxOpenConns > 0 {
		dbClient.SetMaxOpenConns(config.MaxOpenConns)
	}
	if config.MaxIdleConns > 0 {
		dbClient.SetMaxIdleConns(config.MaxIdleConns)
	}
	if config.IdleConnTimeout > 0 {
		dbClient.SetConnMaxIdleTime(time.Duration(config.IdleConnTimeout) * time.Second)
	}
	return dbClient, nil
}
