package main

import (
	"flag"
	"log"

	"github.com/eivissacopter/battdash/app"
)

func main() {
	configPath := flag.String("config", "battdash.yaml", "Path to configuration file")
	warm := flag.Bool("warm", false, "Pre-compute metadata summaries for all crawled files")
	flag.Parse()

	if err := app.Run(*configPath, *warm); err != nil {
		log.Fatalf("error: %v", err)
	}
}
