// Package swaggerkit provides helpers to mount Swagger UI and JSON spec
package swaggerkit

import (
	"net/http"

	phttp "facilities/internal/platform/net/http"
	"facilities/internal/services/api/docs"

	httpSwagger "github.com/swaggo/http-swagger"
)

// DocsPath is where the UI and the decorated doc.json are served
const DocsPath = "/api/docs"

// Mount serves the swagger UI when enabled. The UI always reads doc.json from
// this server so module mutators apply
func Mount(r phttp.Router, enabled bool) {
	if !enabled {
		return
	}
	specURL := DocsPath + "/doc.json"
	r.Get(DocsPath, func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, DocsPath+"/", http.StatusPermanentRedirect)
	})
	r.Get(specURL, serveDocJSON())
	r.Handle(DocsPath+"/*", httpSwagger.Handler(
		httpSwagger.InstanceName(docs.SwaggerInfo.InfoInstanceName),
		httpSwagger.URL(specURL),
		httpSwagger.DocExpansion("list"),
	))
}
