package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/gophtasks/internal/flagx"
	"github.com/dmitrijs2005/gophtasks/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Durations accept
// either "5s"-style strings or integer nanoseconds.
type JsonConfig struct {
	HTTPAddr         string         `json:"http_address"`
	GRPCAddr         string         `json:"grpc_address"`
	DatabaseDSN      *string        `json:"database_dsn"`
	DBMaxConns       int            `json:"db_max_conns"`
	DBConnectTimeout timex.Duration `json:"db_connect_timeout"`
	RequestTimeout   timex.Duration `json:"request_timeout"`
	PasswordCost     int            `json:"password_cost"`
	LogLevel         string         `json:"log_level"`
}

// parseJson overlays values from the file named by -c/-config. Fields left
// out of the file keep their current value; database_dsn may be set to ""
// explicitly to force in-memory stores.
//
// A missing flag is not an error. An unreadable file or invalid JSON panics.
func parseJson(config *Config, args []string) {
	path := flagx.ConfigFile(args)
	if path == "" {
		return
	}

	file, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.HTTPAddr != "" {
		config.HTTPAddr = c.HTTPAddr
	}
	if c.GRPCAddr != "" {
		config.GRPCAddr = c.GRPCAddr
	}
	if c.DatabaseDSN != nil {
		config.DatabaseDSN = *c.DatabaseDSN
	}
	if c.DBMaxConns != 0 {
		config.DBMaxConns = c.DBMaxConns
	}
	if c.DBConnectTimeout.Duration != 0 {
		config.DBConnectTimeout = c.DBConnectTimeout.Duration
	}
	if c.RequestTimeout.Duration != 0 {
		config.RequestTimeout = c.RequestTimeout.Duration
	}
	if c.PasswordCost != 0 {
		config.PasswordCost = c.PasswordCost
	}
	if c.LogLevel != "" {
		config.LogLevel = c.LogLevel
	}
}
