package server

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/jonathan/factcheck-agent/internal/extract"
	"github.com/jonathan/factcheck-agent/internal/provider"
	"github.com/jonathan/factcheck-agent/internal/report"
	"github.com/jonathan/factcheck-agent/internal/types"
)

// ReportRequest represents the request body for /factcheck/report.
type ReportRequest struct {
	Claim        string         `json:"claim"`
	Verdict      string         `json:"verdict"`
	Explanation  string         `json:"explanation"`
	Sources      []types.Source `json:"sources"`
	ArticleTitle string         `json:"articleTitle,omitempty"`
}

// handleFactCheck orchestrates a single fact-check request: validate input,
// extract article content when a URL was given, then run the provider chain.
func (s *Server) handleFactCheck(w http.ResponseWriter, r *http.Request) {
	var req types.FactCheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	if err := req.Validate(); err != nil {
		log.Printf("request rejected: %v", err)
		s.errorResponse(w, HTTPStatus(err), ClientMessage(err))
		return
	}

	ctx := r.Context()
	content := req.Claim
	var reqCtx provider.ReqContext

	if req.URL != "" {
		opts := extract.DefaultOptions()
		opts.Timeout = s.cfg.FetchTimeout()
		opts.UseBrowser = s.cfg.UseBrowser

		article, err := s.extractArticle(ctx, req.URL, opts)
		if err != nil {
			log.Printf("extraction failed: %v", err)
			s.errorResponse(w, HTTPStatus(err), ClientMessage(err))
			return
		}
		content = article.Content
		reqCtx = provider.ReqContext{SourceURL: req.URL, ArticleTitle: article.Title}
	}

	if strings.TrimSpace(content) == "" {
		s.errorResponse(w, http.StatusBadRequest, msgNoContent)
		return
	}

	result, err := s.checker.Check(ctx, content, reqCtx)
	if err != nil {
		log.Printf("fact check failed: %v", err)
		s.errorResponse(w, HTTPStatus(err), ClientMessage(err))
		return
	}

	s.jsonResponse(w, http.StatusOK, result)
}

// handleReport renders a fact-check result as a downloadable PDF.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	var req ReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, msgInvalidBody)
		return
	}
	if strings.TrimSpace(req.Claim) == "" || strings.TrimSpace(req.Verdict) == "" {
		s.errorResponse(w, http.StatusBadRequest, "claim and verdict are required")
		return
	}

	pdf, err := report.Generate(&report.Data{
		Claim:        req.Claim,
		Verdict:      req.Verdict,
		Explanation:  req.Explanation,
		Sources:      req.Sources,
		ArticleTitle: req.ArticleTitle,
	})
	if err != nil {
		log.Printf("report generation failed: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, msgInternal)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="FactCheckAI_Report.pdf"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdf); err != nil {
		log.Printf("Error writing PDF response: %v", err)
	}
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}
