package handler

import "net/http"

type rootResponse struct {
	Message string `json:"message"`
}

// Root is the liveness endpoint on GET /.
func Root() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			writeError(w, http.StatusNotFound, "not found")
			return
		}
		writeJSON(w, http.StatusOK, rootResponse{Message: "Grammar Check API is running!"})
	}
}
