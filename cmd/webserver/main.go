package main

import (
	"flag"
	"log"
	"net/http"

	"github.com/joho/godotenv"

	app "github.com/eivissacopter/battdash/web/run"
)

func main() {
	configPath := flag.String("config", "battdash.yaml", "Path to configuration file")
	listenAddr := flag.String("listen", "", "Address to listen on (overrides config)")
	flag.Parse()

	// Local overrides like BATTDASH_TELEMETRY_BASEURL live in .env
	if err := godotenv.Load(); err == nil {
		log.Printf("Loaded environment from .env")
	}

	webapp := app.WebApp{
		ConfigPath: *configPath,
	}
	webapp.ReloadConfiguration()
	webapp.InitTemplates()

	addr := webapp.GetListenAddr()
	if *listenAddr != "" {
		addr = *listenAddr
	}

	log.Printf("Starting server on %s", addr)
	if err := http.ListenAndServe(addr, webapp.GetRouter()); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
