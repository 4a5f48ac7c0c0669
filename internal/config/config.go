package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App struct {
		Port string `mapstructure:"port"`
		Env  string `mapstructure:"env"`
	} `mapstructure:"app"`
	DB struct {
		DSN      string `mapstructure:"dsn"`
		Host     string `mapstructure:"host"`
		User     string `mapstructure:"user"`
		Password string `mapstructure:"password"`
		Name     string `mapstructure:"name"`
	} `mapstructure:"db"`
	Uploads struct {
		Dir string `mapstructure:"dir"`
	} `mapstructure:"uploads"`
	Redis struct {
		Addr     string `mapstructure:"addr"`
		Password string `mapstructure:"password"`
	} `mapstructure:"redis"`
	Kafka struct {
		Brokers []string `mapstructure:"brokers"`
	} `mapstructure:"kafka"`
}

// DatabaseDSN prefers an explicit DB_DSN; otherwise it is assembled from the
// individual host/user/password/name settings.
func (c Config) DatabaseDSN() string {
	if c.DB.DSN != "" {
		return c.DB.DSN
	}
	return fmt.Sprintf("postgres://%s:%s@%s:5432/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Name)
}

func LoadConfig() (cfg Config, err error) {

	err = godotenv.Load()
	if err != nil {
		log.Println("warning: .env file not found, use default.")
	}

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Development defaults, overridden by environment.
	viper.SetDefault("app.port", "3000")
	viper.SetDefault("app.env", "development")
	viper.SetDefault("db.host", "localhost")
	viper.SetDefault("db.user", "postgres")
	viper.SetDefault("db.password", "postgres")
	viper.SetDefault("db.name", "portfolio_db")
	viper.SetDefault("uploads.dir", "./uploads")

	viper.BindEnv("app.port", "PORT")
	viper.BindEnv("app.env", "APP_ENV")
	viper.BindEnv("db.dsn", "DB_DSN")
	viper.BindEnv("db.host", "DB_HOST")
	viper.BindEnv("db.user", "DB_USER")
	viper.BindEnv("db.password", "DB_PASSWORD")
	viper.BindEnv("db.name", "DB_NAME")
	viper.BindEnv("uploads.dir", "UPLOADS_DIR")
	viper.BindEnv("redis.addr", "REDIS_ADDR")
	viper.BindEnv("redis.password", "REDIS_PASSWORD")
	viper.BindEnv("kafka.brokers", "KAFKA_BROKERS")

	err = viper.Unmarshal(&cfg)
	return
}
