package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/banshee-data/apt.report/internal/httputil"
	"github.com/banshee-data/apt.report/internal/spectrum"
)

// maxImportBytes caps the size of a fetched range set document.
const maxImportBytes = 1 << 20

// ImportRangesRequest is the POST /api/ranges/import body. The URL
// must serve a JSON range set; Name overrides the document's own name
// when set.
type ImportRangesRequest struct {
	URL  string `json:"url"`
	Name string `json:"name,omitempty"`
}

// importRanges fetches a range set from a remote URL and stores it.
// Shared range sets are commonly published alongside instrument
// calibration data; this saves pasting them by hand.
func (s *Server) importRanges(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodPost {
		httputil.MethodNotAllowed(w)
		return
	}
	if s.db == nil {
		httputil.WriteJSONError(w, http.StatusServiceUnavailable, "Persistence not configured")
		return
	}

	var req ImportRangesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.BadRequest(w, fmt.Sprintf("Invalid JSON body: %v", err))
		return
	}
	if req.URL == "" {
		httputil.BadRequest(w, "url is required")
		return
	}

	resp, err := s.http.Get(req.URL)
	if err != nil {
		httputil.WriteJSONError(w, http.StatusBadGateway, fmt.Sprintf("Fetch failed: %v", err))
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		httputil.WriteJSONError(w, http.StatusBadGateway,
			fmt.Sprintf("Fetch failed: remote returned %d", resp.StatusCode))
		return
	}

	var rs spectrum.RangeSet
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxImportBytes)).Decode(&rs); err != nil {
		httputil.BadRequest(w, fmt.Sprintf("Invalid range set document: %v", err))
		return
	}
	if req.Name != "" {
		rs.Name = req.Name
	}
	if rs.Name == "" {
		httputil.BadRequest(w, "range set has no name; provide one in the request")
		return
	}
	if err := s.db.SaveRangeSet(&rs); err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}

	httputil.WriteJSONOK(w, map[string]any{
		"saved":  rs.Name,
		"ranges": len(rs.Ranges),
	})
}
