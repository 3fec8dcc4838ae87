package storage

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config captures how the blog connects to its content repository.
type Config struct {
	Driver       string `json:"driver" yaml:"driver" env:"DRIVER"`
	DSN          string `json:"dsn" yaml:"dsn" env:"DSN"`
	MaxOpenConns int    `json:"max_open_conns,omitempty" yaml:"max_open_conns" env:"MAX_OPEN_CONNS"`
	// Debug logs every query through the storage logger.
	Debug bool `json:"debug,omitempty" yaml:"debug" env:"DEBUG"`
}
