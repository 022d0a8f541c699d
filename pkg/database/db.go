package database

import (
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// APIKey represents the api_keys table
type APIKey struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	Key        string     `gorm:"unique;not null" json:"key"`
	Name       string     `gorm:"not null" json:"name"`
	KeyPreview string     `json:"key_preview"`
	RateLimit  int        `gorm:"default:10000" json:"rate_limit"`
	CreatedAt  time.Time  `json:"created_at"`
	LastUsed   *time.Time `json:"last_used"`
}

// APIUsage records per-key per-day request and instance-size counters.
type APIUsage struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	KeyID           uint   `gorm:"uniqueIndex:idx_key_date;not null" json:"key_id"`
	Date            string `gorm:"uniqueIndex:idx_key_date;not null" json:"date"`
	RequestCount    int    `gorm:"default:0" json:"request_count"`
	TotalPlayers    int    `gorm:"default:0" json:"total_players"`
	TotalCharacters int    `gorm:"default:0" json:"total_characters"`
}

// MasterUser represents the master_users table
type MasterUser struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"unique;not null" json:"username"`
	PasswordHash string    `gorm:"not null" json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

// CastRecord persists one solved casting request so results can be fetched
// again by ID. Document and Result hold the raw JSON payloads.
type CastRecord struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	KeyName     string    `gorm:"index" json:"key_name"`
	Scoring     string    `json:"scoring"`
	Solver      string    `json:"solver"`
	PlayerCount int       `json:"player_count"`
	TotalScore  int       `json:"total_score"`
	Document    string    `json:"document"`
	Result      string    `json:"result"`
	CreatedAt   time.Time `json:"created_at"`
}

// InitDB opens Postgres when DATABASE_URL is set, SQLite otherwise, and
// migrates the schema.
func InitDB() (*gorm.DB, error) {
	var db *gorm.DB
	var err error

	dsn := os.Getenv("DATABASE_URL")
	if dsn != "" {
		db, err = gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	} else {
		dbPath := os.Getenv("DATA_PATH")
		if dbPath == "" {
			dbPath = "casting_api.db"
		}
		db, err = gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	}

	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&APIKey{}, &APIUsage{}, &MasterUser{}, &CastRecord{}); err != nil {
		return nil, err
	}
	return db, nil
}
