// Starts the fleetboard monitoring gateway for the rental platform's
// admin API.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"time"

	"github.com/movaro/fleetboard/server"
	"github.com/movaro/fleetboard/server/telemetry"
)

func readConfig(filename string) server.Config {
	var cfg server.Config
	b, err := os.ReadFile(filename)
	if err != nil {
		telemetry.Error(err, "opening config [%s]", filename)
	} else {
		c, err := server.ReadConfig(b)
		if err != nil {
			telemetry.Error(err, "parsing config [%s]", filename)
		}
		cfg = c
	}
	cfg.ApplyEnv()
	return cfg
}

func main() {
	configFile := flag.String("config", "config.json", "config json file")
	apiURL := flag.String("api", "", "admin API base url")
	tokenDB := flag.String("tokens", "", "credential store path")
	feedURL := flag.String("feed", "", "status page feed url")
	port := flag.Int("port", 0, "listen port")

	flag.Parse()

	telemetry.Log("starting fleetboard")

	cfg := readConfig(*configFile)
	if *apiURL != "" {
		cfg.API.BaseURL = *apiURL
	}
	if *tokenDB != "" {
		cfg.API.TokenDB = *tokenDB
	}
	if *feedURL != "" {
		cfg.Status.FeedURL = *feedURL
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}

	svc, err := server.NewService(cfg)
	if err != nil {
		telemetry.Error(err, "configuring service")
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	svc.Start(ctx)

	// Wait for ^C
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)

	<-c
	telemetry.Log("stopping fleetboard")
	cancel()

	// Shut down the service
	stopCtx, stopCancel := context.WithTimeout(context.Background(), time.Second*30)
	defer stopCancel()
	svc.Stop(stopCtx)
	telemetry.Log("stopped fleetboard cleanly")
}
