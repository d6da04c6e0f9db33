package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

type Config struct {
	HTTPPort string

	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSslMode     string
	DBLockTimeout time.Duration
	TxTimeout     time.Duration

	ChallengeTTL           time.Duration
	ResetGrantTTL          time.Duration
	ChallengeMaxAttempts   int
	ChallengeAttemptWindow time.Duration
	BcryptCost             int

	JWTSecret string

	RedisAddr     string
	RedisPassword string

	AMQPURL   string
	PushQueue string

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	SMTPFrom     string

	LogLevel  string
	LogFormat string

	SweepSchedule    string
	ReminderSchedule string
}

// LoadConfig reads the configuration through getenv, usually os.Getenv.
// Unset keys take their defaults; malformed numbers and durations fail.
func LoadConfig(getenv func(string) string) (Config, error) {
	var errList []error
	duration := func(key string) time.Duration {
		raw := getenv(key)
		if raw == "" {
			return 0
		}
		d, err := time.ParseDuration(raw)
		if err != nil {
			errList = append(errList, fmt.Errorf("%s: %w", key, err))
		}
		return d
	}
	integer := func(key string) int {
		raw := getenv(key)
		if raw == "" {
			return 0
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			errList = append(errList, fmt.Errorf("%s: %w", key, err))
		}
		return n
	}

	cfg := Config{
		HTTPPort:               getenv("HTTP_PORT"),
		DBHost:                 getenv("DB_HOST"),
		DBPort:                 getenv("DB_PORT"),
		DBUser:                 getenv("DB_USER"),
		DBPassword:             getenv("DB_PASSWORD"),
		DBName:                 getenv("DB_NAME"),
		DBSslMode:              getenv("DB_SSLMODE"),
		DBLockTimeout:          duration("DB_LOCK_TIMEOUT"),
		TxTimeout:              duration("TX_TIMEOUT"),
		ChallengeTTL:           duration("CHALLENGE_TTL"),
		ResetGrantTTL:          duration("RESET_GRANT_TTL"),
		ChallengeMaxAttempts:   integer("CHALLENGE_MAX_ATTEMPTS"),
		ChallengeAttemptWindow: duration("CHALLENGE_ATTEMPT_WINDOW"),
		BcryptCost:             integer("BCRYPT_COST"),
		JWTSecret:              getenv("JWT_SECRET"),
		RedisAddr:              getenv("REDIS_ADDR"),
		RedisPassword:          getenv("REDIS_PASSWORD"),
		AMQPURL:                getenv("AMQP_URL"),
		PushQueue:              getenv("PUSH_QUEUE"),
		SMTPHost:               getenv("SMTP_HOST"),
		SMTPPort:               integer("SMTP_PORT"),
		SMTPUser:               getenv("SMTP_USER"),
		SMTPPassword:           getenv("SMTP_PASSWORD"),
		SMTPFrom:               getenv("SMTP_FROM"),
		LogLevel:               getenv("LOG_LEVEL"),
		LogFormat:              getenv("LOG_FORMAT"),
		SweepSchedule:          getenv("SWEEP_SCHEDULE"),
		ReminderSchedule:       getenv("REMINDER_SCHEDULE"),
	}
	if err := errors.Join(errList...); err != nil {
		return Config{}, err
	}

	cfg = cfg.withDefaults()
	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET is required")
	}
	return cfg, nil
}

func (c Config) withDefaults() Config {
	setString(&c.HTTPPort, "8080")
	setString(&c.DBHost, "localhost")
	setString(&c.DBPort, "5432")
	setString(&c.DBSslMode, "disable")
	setDuration(&c.DBLockTimeout, 2*time.Second)
	setDuration(&c.TxTimeout, 5*time.Second)
	setDuration(&c.ChallengeTTL, 15*time.Minute)
	setDuration(&c.ResetGrantTTL, 15*time.Minute)
	setInt(&c.ChallengeMaxAttempts, 5)
	setDuration(&c.ChallengeAttemptWindow, 15*time.Minute)
	setString(&c.PushQueue, "routehub.push")
	setInt(&c.SMTPPort, 587)
	setString(&c.SMTPFrom, "noreply@routehub.local")
	setString(&c.LogLevel, "info")
	setString(&c.LogFormat, "text")
	setString(&c.SweepSchedule, "0 * * * * *")
	setString(&c.ReminderSchedule, "0 */10 * * * *")
	return c
}

// DSN is the libpq connection string for both GORM and the migrator.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func setString(v *string, def string) {
	if *v == "" {
		*v = def
	}
}

func setDuration(v *time.Duration, def time.Duration) {
	if *v <= 0 {
		*v = def
	}
}

func setInt(v *int, def int) {
	if *v <= 0 {
		*v = def
	}
}
