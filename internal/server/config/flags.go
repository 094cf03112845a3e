package config

import (
	"flag"
	"time"

	"github.com/dmitrijs2005/gophtasks/internal/flagx"
)

// parseFlags overlays command-line flags.
//
// Supported flags:
//
//	-a string   REST API bind address (e.g. ":3000")
//	-g string   gRPC health bind address
//	-d string   PostgreSQL DSN ("" for in-memory stores)
//	-m int      maximum open database connections
//	-t int      database connect timeout, seconds
//	-r int      request timeout, seconds
//	-p int      bcrypt cost
//	-l string   log level
//
// Only these flags are picked out of args, so -c/-config and anything else
// meant for other layers is ignored here.
func parseFlags(config *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-a", "-g", "-d", "-m", "-t", "-r", "-p", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "address and port of the REST API")
	fs.StringVar(&config.GRPCAddr, "g", config.GRPCAddr, "address and port of the gRPC health endpoint")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.IntVar(&config.DBMaxConns, "m", config.DBMaxConns, "maximum open database connections")

	connectTimeout := fs.Int("t", int(config.DBConnectTimeout.Seconds()), "database connect timeout (in seconds)")
	requestTimeout := fs.Int("r", int(config.RequestTimeout.Seconds()), "request timeout (in seconds)")

	fs.IntVar(&config.PasswordCost, "p", config.PasswordCost, "bcrypt cost")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			config.DBConnectTimeout = time.Duration(*connectTimeout) * time.Second
		case "r":
			config.RequestTimeout = time.Duration(*requestTimeout) * time.Second
		}
	})
}
