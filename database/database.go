package database

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"worldpav/models"
)

var DB *gorm.DB

// Init opens the connection pool and, when migrate is set, brings the schema
// up to date and seeds a default admin.
func Init(dsn string, migrate bool) error {
	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.New(gormLog{}, logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return err
	}

	if !migrate {
		return nil
	}

	err = DB.AutoMigrate(&models.User{}, &models.Team{}, &models.Worker{}, &models.OvertimeEntry{})
	if err != nil {
		return err
	}

	return seedDefaultAdmin()
}

func seedDefaultAdmin() error {
	var count int64
	DB.Model(&models.User{}).Where("username = ?", "admin").Count(&count)
	if count > 0 {
		return nil
	}

	admin := models.User{
		CompanyID: uuid.New(),
		Username:  "admin",
		FullName:  "Administrator",
		Role:      models.RoleAdmin,
	}

	result := DB.Create(&admin)
	if result.Error != nil {
		return result.Error
	}

	log.Info().Str("company_id", admin.CompanyID.String()).Msg("default admin user created (username: admin)")
	return nil
}

// gormLog routes gorm's slow-query and error lines through zerolog. gorm only
// prints at warn level or above with the config used in Init.
type gormLog struct{}

func (gormLog) Printf(format string, args ...interface{}) {
	log.Warn().Str("component", "gorm").Msgf(format, args...)
}

func GetDB() *gorm.DB {
	return DB
}

// FindUser loads a user by id.
func FindUser(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := DB.First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func FindUserByUsername(username string) (*models.User, error) {
	var user models.User
	err := DB.Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.New("user not found: " + username)
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Ping checks that the pool can reach the server.
func Ping(ctx context.Context) error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
