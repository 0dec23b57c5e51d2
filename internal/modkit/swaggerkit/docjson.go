package swaggerkit

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"facilities/internal/platform/config"
	perr "facilities/internal/platform/errors"
	"facilities/internal/services/api/docs"
)

// SpecMutator lets modules tweak the parsed swagger spec before it is served
type SpecMutator func(map[string]any)

var mutators []SpecMutator

// docReader is a test seam over the generated template
var docReader = func() string { return docs.SwaggerInfo.ReadDoc() }

// Register adds a spec mutator. Modules call it while they are built
func Register(m SpecMutator) {
	if m != nil {
		mutators = append(mutators, m)
	}
}

const (
	oasVersion = "3.0.3"
	errSchema  = "swaggerkit.ErrorResponse"
)

// serveDocJSON lifts the generated swagger 2 doc to OAS3 and decorates it
// with the error envelope every route can return
func serveDocJSON() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var spec map[string]any
		if err := json.Unmarshal([]byte(docReader()), &spec); err != nil {
			http.Error(w, "spec parse error", http.StatusInternalServerError)
			return
		}

		liftOAS3(spec, "/api/v1")
		suffixTitle(spec, config.New().Prefix("CORE_API_").MayString("DOCS_TITLE_SUFFIX", ""))

		section(section(spec, "components"), "schemas")[errSchema] = errorSchema()
		eachOperation(spec, func(op map[string]any) {
			res := section(op, "responses")
			setDefault(res, perr.ErrorCodePanic, "panic recovered")
			setDefault(res, perr.ErrorCodeValidation, "facilities: at least 1 required")
			if sec, ok := op["security"].([]any); ok && len(sec) > 0 {
				setDefault(res, perr.ErrorCodeUnauthorized, "invalid bearer token")
			}
		})

		for _, m := range mutators {
			m(spec)
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(spec)
	}
}

// liftOAS3 rewrites a swagger 2 document in place. The UI bundled with
// http-swagger cannot render 3.1 so that is pinned down too
func liftOAS3(spec map[string]any, baseURL string) {
	delete(spec, "swagger")
	for _, k := range []string{"host", "basePath", "schemes"} {
		delete(spec, k)
	}
	spec["openapi"] = oasVersion

	comps := section(spec, "components")
	if defs, ok := spec["definitions"].(map[string]any); ok {
		schemas := section(comps, "schemas")
		for k, v := range defs {
			schemas[k] = v
		}
		delete(spec, "definitions")
	}
	if sd, ok := spec["securityDefinitions"].(map[string]any); ok {
		comps["securitySchemes"] = sd
		delete(spec, "securityDefinitions")
	}
	if _, ok := spec["servers"]; !ok {
		spec["servers"] = []any{map[string]any{"url": baseURL}}
	}

	eachOperation(spec, func(op map[string]any) {
		produces := "application/json"
		if p, ok := op["produces"].([]any); ok && len(p) > 0 {
			if s, ok := p[0].(string); ok {
				produces = s
			}
		}
		delete(op, "produces")
		delete(op, "consumes")
		res, _ := op["responses"].(map[string]any)
		for _, v := range res {
			resp, ok := v.(map[string]any)
			if !ok {
				continue
			}
			if schema, ok := resp["schema"]; ok {
				resp["content"] = map[string]any{produces: map[string]any{"schema": schema}}
				delete(resp, "schema")
			}
		}
	})
	rewriteRefs(spec)
}

// rewriteRefs points swagger 2 definition refs at components
func rewriteRefs(node any) {
	switch n := node.(type) {
	case map[string]any:
		for k, v := range n {
			if s, ok := v.(string); ok && k == "$ref" {
				n[k] = strings.Replace(s, "#/definitions/", "#/components/schemas/", 1)
				continue
			}
			rewriteRefs(v)
		}
	case []any:
		for _, v := range n {
			rewriteRefs(v)
		}
	}
}

func suffixTitle(spec map[string]any, suffix string) {
	if suffix == "" {
		return
	}
	if info, ok := spec["info"].(map[string]any); ok {
		if title, ok := info["title"].(string); ok {
			info["title"] = title + " " + suffix
		}
	}
}

// section returns m[key] as an object, creating it when absent
func section(m map[string]any, key string) map[string]any {
	if v, ok := m[key].(map[string]any); ok {
		return v
	}
	v := map[string]any{}
	m[key] = v
	return v
}

var methods = []string{"get", "put", "post", "delete", "patch", "head", "options"}

func eachOperation(spec map[string]any, fn func(op map[string]any)) {
	paths, _ := spec["paths"].(map[string]any)
	for _, p := range paths {
		item, ok := p.(map[string]any)
		if !ok {
			continue
		}
		for _, m := range methods {
			if op, ok := item[m].(map[string]any); ok {
				fn(op)
			}
		}
	}
}

// setDefault documents code under its http status unless the operation already does
func setDefault(responses map[string]any, code perr.ErrorCode, example string) {
	status := perr.HTTPStatusCode(code)
	desc := http.StatusText(status)
	sk := strconv.Itoa(status)
	if _, ok := responses[sk]; ok {
		return
	}
	responses[sk] = map[string]any{
		"description": desc,
		"content": map[string]any{
			"application/json": map[string]any{
				"schema": map[string]any{"$ref": "#/components/schemas/" + errSchema},
				"example": map[string]any{
					"status_code": status,
					"status":      desc,
					"code":        int(code),
					"error":       example,
					"request_id":  "api-1/abc-000001",
				},
			},
		},
	}
}

func errorSchema() map[string]any {
	prop := func(typ string) map[string]any { return map[string]any{"type": typ} }
	return map[string]any{
		"type":        "object",
		"description": "Error envelope returned by every route",
		"properties": map[string]any{
			"status_code": prop("integer"),
			"status":      prop("string"),
			"code":        prop("integer"),
			"error":       prop("string"),
			"field":       prop("string"),
			"request_id":  prop("string"),
		},
		"required": []any{"status_code", "status", "code"},
	}
}
