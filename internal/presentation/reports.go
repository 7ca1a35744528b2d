package presentation

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// MountReports exposes the generated report files under /reports/ so the
// spreadsheets can be downloaded straight from the service.
func MountReports(r chi.Router, dir string) {
	r.Mount("/reports", http.StripPrefix("/reports", http.FileServer(http.Dir(dir))))
}
