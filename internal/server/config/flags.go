package config

import (
	"flag"
	"os"
	"time"

	"github.com/omkar-28/authd/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":5000")
//	-g string   gRPC health bind address (empty disables)
//	-d string   database DSN
//	-n string   database name
//	-s string   JWT HMAC secret key
//	-m string   mode: development or production
//	-u string   client base URL for reset links
//	-t int      session validity, minutes
//
// Arguments are filtered with flagx.FilterArgs first, so flags owned by
// other loaders (-c) do not make parsing fail.
func parseFlags(config *Config) error {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-g", "-d", "-n", "-s", "-m", "-u", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run HTTP server")
	fs.StringVar(&config.EndpointAddrGRPC, "g", config.EndpointAddrGRPC, "address and port to run gRPC health server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.DatabaseName, "n", config.DatabaseName, "database name")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.StringVar(&config.Mode, "m", config.Mode, "mode (development|production)")
	fs.StringVar(&config.ClientURL, "u", config.ClientURL, "client base URL")

	sessionValidity := fs.Int("t", int(config.SessionValidityDuration.Minutes()), "session_validity_duration (in minutes)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	config.SessionValidityDuration = time.Duration(*sessionValidity) * time.Minute
	return nil
}
