/*
 * Copyright (c) 2026 nasacj.
 * See the LICENSE file for more information.
 */

// woody-resolve resolves the transport endpoint of an XMPP service
// domain and prints the connection settings a client would use.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/go-kit/log/level"

	"github.com/nasacj/woody/config"
	"github.com/nasacj/woody/connection"
	"github.com/nasacj/woody/dnsutil"
	"github.com/nasacj/woody/log"
	"github.com/nasacj/woody/version"
)

const resolveTimeout = time.Second * 10

func main() {
	var configFile string
	var domain string
	var logLevel string
	var logFormat string
	var showVersion bool

	flag.StringVar(&configFile, "config", "", "configuration file path")
	flag.StringVar(&domain, "domain", "", "XMPP service domain to resolve")
	flag.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error, off)")
	flag.StringVar(&logFormat, "log-format", "logfmt", "log format (logfmt, json)")
	flag.BoolVar(&showVersion, "version", false, "print version and exit")
	flag.Parse()

	if showVersion {
		fmt.Printf("woody-resolve %s\n", version.Version)
		return
	}
	var cfg *config.Config
	if len(configFile) > 0 {
		var err error
		cfg, err = config.Load(configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "woody-resolve: %v\n", err)
			os.Exit(1)
		}
		if len(cfg.Logger.Level) > 0 {
			logLevel = cfg.Logger.Level
		}
		if len(cfg.Logger.Format) > 0 {
			logFormat = cfg.Logger.Format
		}
	}
	logger := log.New(logLevel, logFormat)

	ctx, cancel := context.WithTimeout(context.Background(), resolveTimeout)
	defer cancel()

	resolver := connection.WithResolver(dnsutil.New(logger))

	var settings *connection.Settings
	var err error
	if cfg != nil {
		settings, err = cfg.Connection.Settings(ctx, resolver)
	} else {
		settings, err = connection.New(ctx, domain, resolver)
	}
	if err != nil {
		level.Error(logger).Log("msg", "failed to build connection settings", "err", err)
		os.Exit(1)
	}
	level.Info(logger).Log(
		"service_name", settings.ServiceName(),
		"host", settings.Host(),
		"port", settings.Port(),
		"security_mode", settings.SecurityMode(),
		"sasl", settings.SASLEnabled(),
		"compression", settings.CompressionEnabled(),
		"proxy", settings.Proxy().Type,
		"truststore", settings.TrustStorePath(),
	)
}
