// pkg/db/mysql.go
// MySQL connection helper (database/sql).

package db

import (
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"

	"circuitsense/internal/config"
)

func NewMySQL(cfg *config.Config) (*sql.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true",
		cfg.MySQL.User, cfg.MySQL.Password, cfg.MySQL.Host, cfg.MySQL.Port, cfg.MySQL.DB)

	conn, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}
	conn.SetMaxOpenConns(cfg.MySQL.MaxOpen)
	conn.SetMaxIdleConns(cfg.MySQL.MaxIdle)
	return conn, nil
}
