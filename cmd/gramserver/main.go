/*
Gramserver starts the run server and begins listening for HTTP requests.

Usage:

	gramserver [flags]
	gramserver [flags] -l [[ADDRESS]:PORT]

By default it listens on localhost:8080 and persists run history in memory
only. This can be changed with the --listen/-l and --db flags (or their
corresponding environment variables).

If a token secret is not given, one is generated at random and seeded from
the system's CSPRNG. As a consequence, in this mode of operation the one
bearer token issued at startup becomes invalid as soon as the server shuts
down. This is suitable for local testing, but a secret must be supplied via
flag, environment variable, or config file for anything else.

The flags are:

	-v, --version
		Give the current version of the run server and then exit.

	-l, --listen LISTEN_ADDRESS
		Listen on the given address. Must be in BIND_ADDRESS:PORT or :PORT
		format. If not given, defaults to the value of environment variable
		GRAM_LISTEN_ADDRESS, and if that is not given, to localhost:8080.

	-s, --secret TOKEN_SECRET
		Use the provided secret for signing the bearer token. If there are
		fewer than 32 bytes in the secret, it is repeated until it is. The
		maximum size is 64 bytes. If not given, defaults to the value of
		environment variable GRAM_TOKEN_SECRET. If no secret is available, a
		random one is generated and the single issued token is printed once
		at startup.

	--db DRIVER[:PARAMS]
		Use the given DB connection string. DRIVER must be one of: inmem,
		sqlite. inmem takes no further params. sqlite needs the path to the
		data directory, e.g. sqlite:path/to/data. If not given, defaults to
		the value of environment variable GRAM_DATABASE, and if that is not
		given, to inmem.

	-c, --config FILE
		Load defaults from a TOML settings file before applying flags and
		environment variables.
*/
package main

import (
	"crypto/rand"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
	"github.com/wespiper/ufr-ds/internal/config"
	"github.com/wespiper/ufr-ds/internal/version"
	"github.com/wespiper/ufr-ds/server"
)

const (
	EnvListen = "GRAM_LISTEN_ADDRESS"
	EnvSecret = "GRAM_TOKEN_SECRET"
	EnvDB     = "GRAM_DATABASE"
)

var (
	flagVersion    = pflag.BoolP("version", "v", false, "Give the current version of the run server and then exit.")
	flagListen     = pflag.StringP("listen", "l", "", "Listen on the given address.")
	flagSecret     = pflag.StringP("secret", "s", "", "Use the given secret for token generation.")
	flagDB         = pflag.String("db", "", "Use the given DB connection string.")
	flagConfigFile = pflag.StringP("config", "c", "", "Load defaults from a TOML settings file.")
)

func main() {
	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s (gram v%s)\n", version.ServerCurrent, version.Current)
		return
	}

	args := pflag.Args()
	if len(args) > 0 {
		fmt.Fprintf(os.Stderr, "Too many arguments\nDo -h for help.\n")
		os.Exit(1)
	}

	var fileCfg config.Server
	if *flagConfigFile != "" {
		f, err := config.LoadIfExists(*flagConfigFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Could not load config file: %s\n", err.Error())
			os.Exit(1)
		}
		fileCfg = f.Server
	}

	addr, port, err := resolveListenAddr(fileCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\nDo -h for help.\n", err.Error())
		os.Exit(1)
	}

	dbCfg, err := resolveDatabase(fileCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\nDo -h for help.\n", err.Error())
		os.Exit(1)
	}

	secret, generated, err := resolveSecret(fileCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err.Error())
		os.Exit(1)
	}
	if generated {
		log.Printf("WARN  Using generated token secret; the bearer token issued will become invalid at shutdown")
	}

	srv, err := server.New(server.Config{TokenSecret: secret, DB: dbCfg})
	if err != nil {
		log.Fatalf("FATAL could not start server: %s", err.Error())
	}
	log.Printf("DEBUG Server initialized")

	tok, err := server.IssueToken(secret)
	if err != nil {
		log.Fatalf("FATAL could not issue bearer token: %s", err.Error())
	}
	log.Printf("INFO  Bearer token for this run: %s", tok)

	log.Printf("INFO  Starting run server %s...", version.ServerCurrent)
	srv.ServeForever(addr, port)
}

func resolveListenAddr(fileCfg config.Server) (string, int, error) {
	listenAddr := os.Getenv(EnvListen)
	if fileCfg.ListenAddress != "" {
		listenAddr = fileCfg.ListenAddress
	}
	if pflag.Lookup("listen").Changed {
		listenAddr = *flagListen
	}
	if listenAddr == "" {
		return "localhost", 8080, nil
	}

	bindParts := strings.SplitN(listenAddr, ":", 2)
	if len(bindParts) != 2 {
		return "", 0, fmt.Errorf("listen address is not in ADDRESS:PORT or :PORT format")
	}

	port, err := strconv.Atoi(bindParts[1])
	if err != nil {
		return "", 0, fmt.Errorf("%q is not a valid port number", bindParts[1])
	}

	return bindParts[0], port, nil
}

func resolveDatabase(fileCfg config.Server) (server.Database, error) {
	connStr := os.Getenv(EnvDB)
	if fileCfg.Database != "" {
		connStr = fileCfg.Database
	}
	if pflag.Lookup("db").Changed {
		connStr = *flagDB
	}
	if connStr == "" {
		return server.Database{Type: server.DatabaseInMemory}, nil
	}

	db, err := server.ParseDBConnString(connStr)
	if err != nil {
		return server.Database{}, err
	}
	if db.Type == server.DatabaseSQLite && fileCfg.DataDir != "" && db.DataDir == "" {
		db.DataDir = fileCfg.DataDir
	}
	return db, nil
}

func resolveSecret(fileCfg config.Server) (secret []byte, generated bool, err error) {
	secStr := os.Getenv(EnvSecret)
	if fileCfg.Secret != "" {
		secStr = fileCfg.Secret
	}
	if pflag.Lookup("secret").Changed {
		secStr = *flagSecret
	}

	if secStr == "" {
		secret = make([]byte, 64)
		if _, err := rand.Read(secret); err != nil {
			return nil, false, fmt.Errorf("could not generate token secret: %w", err)
		}
		return secret, true, nil
	}

	secret = []byte(secStr)
	for len(secret) < server.MinSecretSize {
		doubled := make([]byte, len(secret)*2)
		copy(doubled, secret)
		copy(doubled[len(secret):], secret)
		secret = doubled
	}
	if len(secret) > server.MaxSecretSize {
		return nil, false, fmt.Errorf("token secret is %d bytes, but it must be <= %d bytes", len(secret), server.MaxSecretSize)
	}

	return secret, false, nil
}
