// Package main provides the flight tracking and alerting application.
package main

import (
	"fmt"
	"os"

	"github.com/common-nighthawk/go-figure"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/kurthamm/flighttrak-enhanced/internal"
	"github.com/kurthamm/flighttrak-enhanced/tickerapp"
	"github.com/kurthamm/flighttrak-enhanced/tuiapp"
)

const (
	// thisAppName is the name of this application as shown on notifications.
	thisAppName = "flighttrak"
)

func main() {
	var argIsUseTicker bool
	var argConfigPath string
	var argLatLon []float64

	setupCommandLineFlags(&argIsUseTicker, &argConfigPath, &argLatLon)

	// Parse all arguments provided to the program on launch.
	pflag.Parse()

	if argIsUseTicker {
		figure.NewFigure(thisAppName, "", false).Print()
	}

	// Secrets (SMTP password, database credentials) come from .env when present.
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			fmt.Fprintf(os.Stderr, "error loading .env file: %v\n", err)
		}
	}

	cfg, err := internal.LoadConfig(argConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "unable to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Command line location overrides the config file; validation runs after
	// so -l alone can supply the home coordinates.
	if argLatLon[0] != 0 || argLatLon[1] != 0 {
		cfg.Home.Lat = argLatLon[0]
		cfg.Home.Lon = argLatLon[1]
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	watchlist, err := internal.LoadWatchlist(cfg.Files.Watchlist)
	if err != nil {
		fmt.Fprintf(os.Stderr, "unable to load watchlist %s: %v\n", cfg.Files.Watchlist, err)
		os.Exit(1)
	}

	if argIsUseTicker {
		logger := internal.NewLogger(cfg.Files.LogFile, cfg.LogLevel)
		if err := tickerapp.Run(thisAppName, cfg, watchlist, logger); err != nil {
			logger.Error("monitor exited with error", "error", err)
			os.Exit(1)
		}
	} else {
		if err := tuiapp.Run(thisAppName, cfg, watchlist); err != nil {
			os.Exit(1)
		}
	}
}

func setupCommandLineFlags(argIsUseTicker *bool, argConfigPath *string, argLatLon *[]float64) {
	// Whether to launch the Ticker or TUI app.
	pflag.BoolVarP(
		argIsUseTicker,
		"ticker",
		"t",
		false,
		"print monitoring information on the command line without TUI")
	pflag.Lookup("ticker").NoOptDefVal = "true"

	pflag.StringVarP(
		argConfigPath,
		"config",
		"c",
		"config.yaml",
		"path to the YAML configuration file")

	// Home location override, provided as lat,lon coordinates.
	pflag.Float64SliceVarP(
		argLatLon,
		"latlon",
		"l",
		[]float64{0, 0},
		"override the home location alerts are measured from")
}
