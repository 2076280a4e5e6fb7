package store

const (
	// DriverSQLite is the embedded single-file medium (default).
	DriverSQLite = "sqlite"
	// DriverMySQL is the server deployment medium.
	DriverMySQL = "mysql"
)

// Config holds configuration for the store medium.
type Config struct {
	// Driver is the storage driver (sqlite, mysql).
	Driver string `mapstructure:"driver" default:"sqlite"`
	// Path is the database file path (sqlite only). ":memory:" is allowed.
	Path string `mapstructure:"path" default:"pharmacy.db"`
	// Host is the database host (mysql only).
	Host string `mapstructure:"host" default:"localhost"`
	// Port is the database port (mysql only).
	Port int `mapstructure:"port" default:"3306"`
	// User is the database user (mysql only).
	User string `mapstructure:"user" default:"root"`
	// Password is the database password (mysql only).
	Password string `mapstructure:"password" default:""`
	// Name is the database name (mysql only).
	Name string `mapstructure:"name" default:"pharmacy"`
	// TimeoutSeconds is the connection/IO timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

// IsValidDriver checks if the configured driver is supported.
func (c Config) IsValidDriver() bool {
	switch c.Driver {
	case DriverSQLite, DriverMySQL:
		return true
	default:
		return false
	}
}
