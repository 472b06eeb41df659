package http

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"healthyledger/internal/core"
	"healthyledger/internal/export"
	applog "healthyledger/internal/log"
)

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	s.serveExport(w, r, export.ContentTypeCSV, export.CSVFilename, export.WriteCSV)
}

func (s *Server) handleExportXLSX(w http.ResponseWriter, r *http.Request) {
	s.serveExport(w, r, export.ContentTypeXLSX, export.XLSXFilename, export.WriteXLSX)
}

// serveExport sends the session ledger as an attachment. The file is built
// in memory so a failure can still become a 500.
func (s *Server) serveExport(w http.ResponseWriter, r *http.Request, contentType string,
	filename func(string) string, write func(io.Writer, core.Ledger) error) {
	sess := s.session(w, r)
	if !sess.HasUser() {
		http.Error(w, "no user selected", http.StatusBadRequest)
		return
	}
	var buf bytes.Buffer
	if err := write(&buf, sess.Ledger); err != nil {
		applog.FromContext(r.Context()).WithComponent(applog.ComponentExport).ErrorContext(r.Context(), "Export failed",
			applog.NewFields().WithUser(sess.User).WithError(err).WithOperation(applog.OpExport).ToSlice()...)
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename(sess.User)))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
