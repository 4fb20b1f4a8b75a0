package db

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

func NewDB(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	level := gormlogger.Warn
	if cfg.IsProduction() {
		level = gormlogger.Error
	}

	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
		Logger:      gormlogger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Info("database ready")
	return db, nil
}

// Guardas definitivas de concorrência. Os use cases checam antes, mas
// quem garante é o banco.
var constraints = []string{
	`CREATE EXTENSION IF NOT EXISTS btree_gist`,
	`DO $$
	BEGIN
		IF NOT EXISTS (
			SELECT 1 FROM pg_constraint WHERE conname = 'appointments_no_overlap'
		) THEN
			ALTER TABLE appointments
			ADD CONSTRAINT appointments_no_overlap
			EXCLUDE USING gist (
				professional_id WITH =,
				tstzrange(start_time, end_time, '[)') WITH &&
			) WHERE (status <> 'cancelled');
		END IF;
	END $$`,
	`CREATE UNIQUE INDEX IF NOT EXISTS cash_sessions_one_open_per_salon
		ON cash_sessions (salon_id) WHERE status = 'open'`,
	`ALTER TABLE cash_movements DROP CONSTRAINT IF EXISTS cash_movements_amount_positive`,
	`ALTER TABLE cash_movements ADD CONSTRAINT cash_movements_amount_positive CHECK (amount > 0)`,
	`ALTER TABLE cash_sessions DROP CONSTRAINT IF EXISTS cash_sessions_balances_non_negative`,
	`ALTER TABLE cash_sessions ADD CONSTRAINT cash_sessions_balances_non_negative
		CHECK (opening_balance >= 0 AND (informed_balance IS NULL OR informed_balance >= 0))`,
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Salon{},
		&models.Client{},
		&models.Service{},
		&models.Professional{},
		&models.WorkingInterval{},
		&models.Appointment{},
		&models.AppointmentService{},
		&models.CashSession{},
		&models.CashMovement{},
		&models.Comanda{},
		&models.ComandaItem{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	for _, stmt := range constraints {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migrate constraints: %w", err)
		}
	}

	if err := db.Exec(`
		UPDATE salons
		SET timezone = ?
		WHERE timezone IS NULL OR timezone = ''
	`, timezone.DefaultTimezone).Error; err != nil {
		return fmt.Errorf("backfill salon timezone: %w", err)
	}

	return nil
}
