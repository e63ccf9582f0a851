package webapp

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/eivissacopter/battdash/web"
)

func router(webapp *WebApp) http.Handler {
	r := chi.NewRouter()

	r.Get("/", webapp.dashboard())
	r.Get("/performance", webapp.performance())
	r.Get("/chart/degradation", webapp.degradationChart())
	r.Get("/chart/degradation.png", webapp.degradationPNG())
	r.Get("/chart/performance", webapp.performanceChart())
	r.Get("/refresh", webapp.refresh())

	// Serve embedded assets
	assetsFS, _ := fs.Sub(web.Assets, "assets")
	fileServer := http.FileServer(http.FS(assetsFS))
	r.Handle("/assets/*", http.StripPrefix("/assets/", fileServer))

	r.NotFound(webapp.notFoundHandler())

	return r
}
