package configs

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port        string `envconfig:"PORT" default:"8000"`
	DBSource    string `envconfig:"DB_SOURCE" default:"orders.db"`
	JWTSecret   string `envconfig:"JWT_SECRET" default:"changeme"`
	JWTTTLHours int    `envconfig:"JWT_TTL_HOURS" default:"168"`

	// seed admin ครั้งแรก (ว่าง = ข้าม)
	AdminEmail    string `envconfig:"ADMIN_EMAIL"`
	AdminPassword string `envconfig:"ADMIN_PASSWORD"`
}

func LoadConfig() (*Config, error) {
	// .env เป็น optional; ใน prod ใช้ env ตรง ๆ
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) JWTTTL() time.Duration {
	return time.Duration(c.JWTTTLHours) * time.Hour
}
