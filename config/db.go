package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"frontdesk-backend/models"
	"frontdesk-backend/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "Local")
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode()), nil
}

func resolveMySQLDSN() (string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	user := utils.EnvOrDefault("DB_USER", "root")
	pass := utils.EnvOrDefault("DB_PASS", "")
	host := utils.EnvOrDefault("DB_HOST", "127.0.0.1")
	port := utils.EnvOrDefault("DB_PORT", "3306")
	dbName := utils.EnvOrDefault("DB_NAME", "frontdesk_db")

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, dbName,
	), nil
}

// SeedDatabase ensures the single-row settings record, a default admin and
// the initial room inventory exist.
func SeedDatabase() {
	var adminCount int64
	DB.Model(&models.Admin{}).Count(&adminCount)
	if adminCount == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte(utils.EnvOrDefault("ADMIN_PASSWORD", "admin123")), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("warning: failed to hash default admin password: %v", err)
		} else {
			admin := models.Admin{
				FullName: "Front Desk Admin",
				Username: utils.EnvOrDefault("ADMIN_USERNAME", "admin@frontdesk.local"),
				Password: string(hash),
			}
			if err := DB.Create(&admin).Error; err != nil {
				log.Printf("warning: failed to create default admin: %v", err)
			} else {
				log.Println("Default admin seeded")
			}
		}
	}

	var settingCount int64
	DB.Model(&models.HotelSetting{}).Count(&settingCount)
	if settingCount == 0 {
		set := models.HotelSetting{
			HotelName:     utils.EnvOrDefault("HOTEL_NAME", "Hotel"),
			Currency:      "PKR",
			CurrencyLabel: "Rs",
			Locale:        "en-PK",
			TaxRate:       0,
		}
		if err := DB.Create(&set).Error; err != nil {
			log.Printf("warning: failed to seed hotel settings: %v", err)
		} else {
			log.Println("Hotel settings seeded")
		}
	}

	// Optional: ROOMS="101:3500,102:3500,201:5000" seeds the inventory.
	var roomCount int64
	DB.Model(&models.Room{}).Count(&roomCount)
	if roomCount == 0 {
		raw := strings.TrimSpace(os.Getenv("ROOMS"))
		if raw != "" {
			for _, part := range strings.Split(raw, ",") {
				part = strings.TrimSpace(part)
				if part == "" {
					continue
				}
				number := part
				rate := 0.0
				if i := strings.IndexByte(part, ':'); i >= 0 {
					number = strings.TrimSpace(part[:i])
					fmt.Sscanf(strings.TrimSpace(part[i+1:]), "%f", &rate)
				}
				room := models.Room{Number: number, Rate: rate, Status: models.RoomVacant}
				if err := DB.Create(&room).Error; err != nil {
					log.Printf("warning: failed to seed room %s: %v", number, err)
				}
			}
			log.Println("Rooms seeded")
		}
	}
}

func ConnectDatabase() error {
	dsn, err := resolveMySQLDSN()
	if err != nil {
		return err
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: newLogger})
	if err != nil {
		return err
	}

	DB = db

	if err := DB.AutoMigrate(
		&models.Admin{},
		&models.HotelSetting{},
		&models.Room{},
		&models.Guest{},
		&models.StaySnapshot{},
		&models.Order{},
		&models.Payment{},
		&models.CustomItem{},
		&models.Expense{},
		&models.PreferredRate{},
	); err != nil {
		return err
	}

	SeedDatabase()
	return nil
}
