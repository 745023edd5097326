package infra_pg_init

import (
	"embed"
	"fmt"
	"log"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/squabble-app/squabble/server/internal/config"
)

//go:embed schema.sql
var embeddedSchema embed.FS

func MustEstablishConn(cfg config.Postgres) *sqlx.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host,
		cfg.Port,
		cfg.User,
		cfg.Password,
		cfg.DBName,
		cfg.SSLMode,
	)
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		log.Fatal(err)
	}

	return db
}

func MustInitSchema(db *sqlx.DB) {
	b, err := embeddedSchema.ReadFile("schema.sql")
	if err != nil {
		log.Fatal(err)
	}

	if _, err := db.Exec(strings.TrimSpace(string(b))); err != nil {
		log.Fatal("schema init failed: ", err)
	}
}
