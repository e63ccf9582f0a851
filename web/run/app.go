package webapp

import (
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"os"
	"path"
	"strings"
	"time"

	"github.com/eivissacopter/battdash/app"
	"github.com/eivissacopter/battdash/models"
	"github.com/eivissacopter/battdash/web"
)

type WebApp struct {
	Router        http.Handler
	TemplateCache map[string]*template.Template
	AppConfig     *models.AppConfig
	ConfigPath    string

	Crawl     *app.CrawlCache
	Fleet     *app.FleetCache
	Store     *app.MetaStore
	Extractor *app.Extractor
	Loader    *app.SeriesLoader
}

func (webapp *WebApp) ReloadConfiguration() {
	configPath := webapp.ConfigPath
	if configPath == "" {
		configPath = "battdash.yaml"
	}
	cfg, err := app.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	webapp.AppConfig = cfg
	if err := webapp.InitPipeline(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to init pipeline: %v\n", err)
		os.Exit(1)
	}

	log.Printf("Configuration loaded: telemetry %s, fleet sheet configured: %v",
		cfg.Telemetry.BaseURL, cfg.Fleet.SheetURL != "")
}

// InitPipeline wires the crawl cache, fleet cache, metadata store and
// series loader from AppConfig.
func (webapp *WebApp) InitPipeline() error {
	cfg := webapp.AppConfig
	ttl := time.Duration(cfg.Telemetry.CrawlTTL) * time.Second

	webapp.Crawl = app.NewCrawlCache(app.NewCrawler(cfg.Telemetry.BaseURL, cfg.Telemetry.MaxDepth), ttl)
	webapp.Fleet = app.NewFleetCache(app.NewFleetLoader(cfg.Fleet.SheetURL), ttl)

	store, err := app.OpenMetaStore(cfg.Telemetry.CacheDBPath)
	if err != nil {
		return err
	}
	webapp.Store = store
	webapp.Extractor = app.NewExtractor(store)
	webapp.Loader = app.NewSeriesLoader()
	return nil
}

func (webapp *WebApp) GetListenAddr() string {
	port := 8080
	if webapp.AppConfig != nil && webapp.AppConfig.Server.Port > 0 {
		port = webapp.AppConfig.Server.Port
	}
	return fmt.Sprintf(":%d", port)
}

func (webapp *WebApp) GetRouter() http.Handler {
	return router(webapp)
}

func (webapp *WebApp) InitTemplates() {
	webapp.TemplateCache = make(map[string]*template.Template)

	funcMap := template.FuncMap{
		"fmtFloat": fmtFloat,
		"fmtPtr":   fmtPtr,
		"join":     strings.Join,
		"contains": containsString,
	}

	pages, err := fs.Glob(web.Templates, "templates/*.html")
	if err != nil {
		log.Fatalf("failed to glob templates: %v", err)
	}

	for _, page := range pages {
		name := path.Base(page)
		if name == "layout.html" {
			continue
		}

		var ts *template.Template

		// Error template is standalone (no layout)
		if name == "error.html" {
			ts, err = template.New(name).Funcs(funcMap).ParseFS(web.Templates, page)
		} else {
			ts, err = template.New(name).Funcs(funcMap).ParseFS(web.Templates, page, "templates/layout.html")
		}

		if err != nil {
			log.Fatalf("failed to parse template %s: %v", name, err)
		}
		webapp.TemplateCache[name] = ts
	}
}
