package db

import (
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/lmiguelviana/pet-connect-sub000/internal/config"
	"github.com/lmiguelviana/pet-connect-sub000/internal/models"
)

func NewDB(cfg *config.Config, log *zap.Logger) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatal("failed to connect database", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal("failed to get sql.DB", zap.Error(err))
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.Petshop{},
		&models.User{},
		&models.Client{},
		&models.Pet{},
		&models.Service{},
		&models.Appointment{},
		&models.Account{},
		&models.Category{},
		&models.Transaction{},
		&models.Transfer{},
		&models.AuditLog{},
	); err != nil {
		log.Fatal("failed to migrate", zap.Error(err))
	}

	db.Exec(`
        UPDATE petshops
        SET timezone = 'America/Sao_Paulo'
        WHERE timezone IS NULL OR timezone = ''
    `)

	// Trava de segurança contra corrida de agendamento: dois inserts
	// simultâneos no mesmo horário falham em 23505 mesmo que a checagem
	// de conflito tenha passado nos dois.
	db.Exec(`
        CREATE UNIQUE INDEX IF NOT EXISTS uidx_appointments_slot
        ON appointments (petshop_id, start_time)
        WHERE status NOT IN ('cancelled', 'no_show')
    `)

	return db
}
