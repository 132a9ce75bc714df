package config

import (
	"fmt"
	"time"
)

type Configs struct {
	Env string

	Database  DatabaseConfigs
	ApiServer ServerConfigs
	Redis     RedisConfigs
	Kafka     KafkaConfigs
	Lottery   LotteryConfigs
}

type DatabaseConfigs struct {
	Host     string
	Port     string
	Database string
	User     string
	Password string
	LogLevel string
}

func (d *DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type ServerConfigs struct {
	Host string
	Port string
	Cert string
	Key  string
}

type RedisConfigs struct {
	Addr string
}

type KafkaConfigs struct {
	Addr string
}

type LotteryConfigs struct {
	// Timezone is the civil timezone every extraction time is interpreted in.
	Timezone string

	// CutoffWindow is how long before an extraction time sales close for that
	// draw.
	CutoffWindow time.Duration

	// SuspiciousMargin is the minimum distance from the draw under which an
	// accepted bet is logged as suspicious.
	SuspiciousMargin time.Duration

	// CancelGracePeriod is how long after issuance a ticket can be cancelled
	// without approval.
	CancelGracePeriod time.Duration

	AvailabilityTTL time.Duration

	DefaultCommissionRate   float64
	DefaultMultiplier       float64
	DefaultLiabilityCeiling float64

	// DefaultExtractionTimes is assumed when a game has no configured slots.
	DefaultExtractionTimes []string

	SignatureSecret string

	// GameSeedFile optionally points to a TOML file of games inserted at
	// startup.
	GameSeedFile string
}
