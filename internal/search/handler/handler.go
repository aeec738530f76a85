package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"parts-finder/internal/config"
	"parts-finder/internal/fileio"
	"parts-finder/internal/search/model"
	"parts-finder/internal/search/service"
	"parts-finder/internal/search/store"
)

type uploadResponse struct {
	Code         string   `json:"code"`
	Message      string   `json:"message"`
	FileID       string   `json:"fileId"`
	OriginalName string   `json:"originalName"`
	Rows         int      `json:"rows"`
	Headers      []string `json:"headers"`
}

// Upload parses the multipart "file" field and publishes the dataset.
// With a "fileId" form value the dataset of that id is replaced instead.
func Upload(cfg config.Config, logger zerolog.Logger, st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log := requestLogger(logger, r)

		if err := r.ParseMultipartForm(int64(cfg.MaxUploadMB) << 20); err != nil {
			if ae := toAPIError(err); ae.Code == "FILE_TOO_LARGE" {
				writeError(w, log, ae)
				return
			}
			writeError(w, log, badRequest("FILE_REQUIRED", "No file uploaded"))
			return
		}
		defer r.MultipartForm.RemoveAll()

		file, hdr, err := r.FormFile("file")
		if err != nil {
			writeError(w, log, badRequest("FILE_REQUIRED", "No file uploaded"))
			return
		}
		defer file.Close()

		if limit := int64(cfg.MaxUploadMB) << 20; limit > 0 && hdr.Size > limit {
			writeError(w, log, &apiError{http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE",
				fmt.Sprintf("File exceeds %d MB", cfg.MaxUploadMB)})
			return
		}

		if !fileio.Supported(hdr.Filename) {
			writeError(w, log, badRequest("INVALID_FILE_TYPE", "Only Excel files (.xlsx, .xls) or CSV are allowed"))
			return
		}

		ds, err := fileio.ReadDataset(file, hdr.Filename, service.HeaderClassifier{})
		if err != nil {
			writeError(w, log, err)
			return
		}

		var u store.Upload
		if id := strings.TrimSpace(r.FormValue("fileId")); id != "" {
			u, err = st.Replace(id, hdr.Filename, ds)
			if err != nil {
				writeError(w, log, err)
				return
			}
		} else {
			u = st.Put(hdr.Filename, ds)
		}

		log.Info().
			Str("file_id", u.ID).
			Str("name", hdr.Filename).
			Int("rows", len(ds.Rows)).
			Int("cols", len(ds.Columns)).
			Dur("elapsed", time.Since(start)).
			Msg("upload parsed")

		writeJSON(w, log, http.StatusOK, uploadResponse{
			Code:         "FILE_UPLOADED",
			Message:      "File uploaded successfully",
			FileID:       u.ID,
			OriginalName: u.OriginalName,
			Rows:         len(ds.Rows),
			Headers:      ds.Columns.Headers(),
		})
	}
}

type queryRequest struct {
	FileID      string   `json:"fileId"`
	SearchField string   `json:"searchField"`
	SearchTerms []string `json:"searchTerms"`
	MatchMode   string   `json:"matchMode"`
}

func (q queryRequest) validate() error {
	switch {
	case strings.TrimSpace(q.FileID) == "":
		return badRequest("FILE_ID_REQUIRED", "File ID is required")
	case strings.TrimSpace(q.SearchField) == "":
		return badRequest("SEARCH_FIELD_REQUIRED", "Search field is required")
	case len(q.SearchTerms) == 0:
		return badRequest("SEARCH_TERMS_REQUIRED", "Search terms array is required")
	}
	return nil
}

type queryResponse struct {
	Code string `json:"code"`
	*model.Outcome
}

// Query runs a search and returns the outcome as JSON.
func Query(cfg config.Config, logger zerolog.Logger, s *store.Searcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := requestLogger(logger, r)

		var req queryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, log, badRequest("INVALID_JSON", "Request body must be JSON"))
			return
		}
		if err := req.validate(); err != nil {
			writeError(w, log, err)
			return
		}

		o, err := runSearch(log, s, req, modeFrom(req.MatchMode, cfg.MatchMode))
		if err != nil {
			writeError(w, log, err)
			return
		}
		writeJSON(w, log, http.StatusOK, queryResponse{Code: "SEARCH_COMPLETED", Outcome: o})
	}
}

// Export runs the same search as Query and streams the matches as xlsx.
func Export(cfg config.Config, logger zerolog.Logger, s *store.Searcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := requestLogger(logger, r)
		qv := r.URL.Query()

		req := queryRequest{
			FileID:      qv.Get("fileId"),
			SearchField: qv.Get("searchField"),
			SearchTerms: queryTerms(qv["searchTerms"]),
			MatchMode:   qv.Get("matchMode"),
		}
		if err := req.validate(); err != nil {
			writeError(w, log, err)
			return
		}

		o, err := runSearch(log, s, req, modeFrom(req.MatchMode, cfg.MatchMode))
		if err != nil {
			writeError(w, log, err)
			return
		}
		if len(o.Rows) == 0 {
			writeError(w, log, &apiError{http.StatusNotFound, "NO_RESULTS", "No results to export"})
			return
		}

		var buf bytes.Buffer
		if err := fileio.WriteXLSX(&buf, o.Headers, o.Rows); err != nil {
			writeError(w, log, fmt.Errorf("export: %w", err))
			return
		}

		name := "search_results_" + time.Now().Format("2006-01-02") + ".xlsx"
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
		w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
		w.WriteHeader(http.StatusOK)
		if _, err := buf.WriteTo(w); err != nil {
			log.Error().Err(err).Msg("write export")
			return
		}
		log.Info().Int("rows", len(o.Rows)).Str("file", name).Msg("export sent")
	}
}

func runSearch(log zerolog.Logger, s *store.Searcher, req queryRequest, mode model.Mode) (*model.Outcome, error) {
	start := time.Now()
	o, cached, err := s.Search(req.FileID, req.SearchField, req.SearchTerms, model.Options{Mode: mode})
	if err != nil {
		return nil, err
	}
	log.Info().
		Str("file_id", req.FileID).
		Str("field", req.SearchField).
		Str("mode", string(mode)).
		Int("matched", len(o.MatchedQueries)).
		Int("unmatched", len(o.UnmatchedQueries)).
		Int("rows", len(o.Rows)).
		Bool("cached", cached).
		Dur("elapsed", time.Since(start)).
		Msg("search done")
	log.Debug().Interface("tiers", o.Tiers).Msg("search tiers")
	return o, nil
}
