package utils

import (
	"os"
	"reflect"

	"github.com/gofiber/fiber/v2/log"
	"gopkg.in/yaml.v2"
)

type Config struct {
	// Server configuration
	AppPort string `yaml:"APP_PORT"`
	AppURL  string `yaml:"APP_URL"`

	// Database configuration
	DBDriver   string `yaml:"DB_DRIVER"`
	DBUser     string `yaml:"DB_USER"`
	DBName     string `yaml:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST"`
	DBPath     string `yaml:"DB_PATH"`

	// JWT configuration
	JWTSecret string `yaml:"JWT_SECRET"`
	JWTIssuer string `yaml:"JWT_ISSUER"`

	// Seeded administrator
	AdminEmail    string `yaml:"ADMIN_EMAIL"`
	AdminPassword string `yaml:"ADMIN_PASSWORD"`

	// Mailing configuration
	SMTPHost         string `yaml:"SMTP_HOST"`
	SMTPPort         string `yaml:"SMTP_PORT"`
	SMTPSenderName   string `yaml:"SMTP_SENDER_NAME"`
	SMTPAuthEmail    string `yaml:"SMTP_AUTH_EMAIL"`
	SMTPAuthPassword string `yaml:"SMTP_AUTH_PASSWORD"`

	// AWS S3 configuration
	AWSS3Bucket  string `yaml:"AWS_S3_BUCKET"`
	AWSS3Region  string `yaml:"AWS_S3_REGION"`
	AWSAccessKey string `yaml:"AWS_ACCESS_KEY"`
	AWSSecretKey string `yaml:"AWS_SECRET_KEY"`
}

var config Config

var defaults = map[string]string{
	"APP_PORT":       "8080",
	"APP_URL":        "http://localhost:8080",
	"DB_DRIVER":      "postgres",
	"DB_PATH":        "recipes.db",
	"JWT_ISSUER":     "RecipeWebsite",
	"ADMIN_EMAIL":    "admin@recipeapp.local",
	"ADMIN_PASSWORD": "Admin123!",
}

// LoadConfig reads config.yaml from the working directory. A missing file is
// not fatal: environment variables and defaults still apply.
func LoadConfig() {
	LoadConfigFrom("config.yaml")
}

func LoadConfigFrom(path string) {
	config = Config{}

	file, err := os.ReadFile(path)
	if err != nil {
		log.Warnf("error reading YAML file: %s", err)
		return
	}

	err = yaml.Unmarshal(file, &config)
	if err != nil {
		log.Errorf("error parsing YAML file: %s", err)
		return
	}
}

// SetConfig overrides a single key in the loaded configuration.
func SetConfig(key, value string) {
	if field, ok := fieldByKey(key); ok {
		field.SetString(value)
	}
}

// GetConfig returns the value for key. Environment variables take precedence
// over config.yaml, which takes precedence over built-in defaults.
func GetConfig(key string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	if field, ok := fieldByKey(key); ok && field.String() != "" {
		return field.String()
	}
	return defaults[key]
}

func fieldByKey(key string) (reflect.Value, bool) {
	v := reflect.ValueOf(&config).Elem()
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		if t.Field(i).Tag.Get("yaml") == key {
			return v.Field(i), true
		}
	}
	return reflect.Value{}, false
}
