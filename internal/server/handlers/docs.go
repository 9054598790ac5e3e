package handlers

import (
	"net/http"

	"github.com/swaggo/swag"
)

// HandleSwaggerDoc serves the OpenAPI document registered with swag by the docs package.
func HandleSwaggerDoc(instanceName string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, err := swag.ReadDoc(instanceName)
		if err != nil {
			http.Error(w, "API documentation not available", http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(doc))
	}
}
