// internal/server/handlers.go
package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"venture-agents/internal/agents/support"
	"venture-agents/internal/agents/video"
	"venture-agents/internal/capability/commerce"
	"venture-agents/internal/models"
	"venture-agents/internal/store"
)

const oauthStateCookie = "shopify_oauth_state"

// ==========================
// Health and catalog
// ==========================

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": s.cfg.AppName,
		"version": s.cfg.Version,
	})
}

func (s *Server) handleAgents(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.catalog)
}

// ==========================
// Idea-driven tasks
// ==========================

func decodeIdea(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req models.IdeaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return "", false
	}
	idea := strings.TrimSpace(req.Idea)
	if idea == "" {
		writeBadRequest(w, "idea must not be empty")
		return "", false
	}
	return idea, true
}

func (s *Server) handleBranding(w http.ResponseWriter, r *http.Request) {
	idea, ok := decodeIdea(w, r)
	if !ok {
		return
	}

	output, err := s.tasks.Branding.Run(r.Context(), idea)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, models.BrandingResponse{
		BrandName: output.BrandName,
		Tagline:   output.Tagline,
		LogoRef:   output.LogoRef,
	})
}

func (s *Server) handleLegalDocs(w http.ResponseWriter, r *http.Request) {
	idea, ok := decodeIdea(w, r)
	if !ok {
		return
	}

	output, err := s.tasks.LegalDocs.Run(r.Context(), idea)
	if err != nil {
		writeError(w, err)
		return
	}

	response := models.LegalDocsResponse{Documents: make([]models.LegalDocument, 0, len(output.Documents))}
	for _, doc := range output.Documents {
		response.Documents = append(response.Documents, models.LegalDocument{
			DocType:      doc.DocType,
			Title:        doc.Title,
			Summary:      doc.Summary,
			Placeholders: doc.Placeholders,
			DefaultsUsed: doc.DefaultsUsed,
			Content:      doc.Content,
		})
	}
	writeJSON(w, http.StatusOK, response)
}

func (s *Server) handleResearch(w http.ResponseWriter, r *http.Request) {
	idea, ok := decodeIdea(w, r)
	if !ok {
		return
	}

	output, err := s.tasks.Research.Run(r.Context(), idea)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, models.ResearchResponse{
		TargetCustomerProfile: models.TargetCustomerProfile(output.TargetCustomerProfile),
		MarketPositioning:     models.MarketPositioning(output.MarketPositioning),
		BrandingProtocol:      models.BrandingProtocol(output.BrandingProtocol),
	})
}

// ==========================
// Async video
// ==========================

func (s *Server) handleVideoStart(w http.ResponseWriter, r *http.Request) {
	var req models.VideoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.BrandName) == "" {
		writeBadRequest(w, "brand_name must not be empty")
		return
	}

	job, err := s.tasks.Video.Start(r.Context(), video.Request{
		BrandName: req.BrandName,
		Tagline:   req.Tagline,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusAccepted, videoJobResponse(job))
}

func (s *Server) handleVideoStatus(w http.ResponseWriter, r *http.Request) {
	jobID := r.PathValue("id")

	job, err := s.tasks.Video.Status(r.Context(), jobID)
	if err != nil {
		writeError(w, err)
		return
	}
	if job == nil {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{
			Code:    "JOB_NOT_FOUND",
			Message: "no such video job",
		})
		return
	}

	writeJSON(w, http.StatusOK, videoJobResponse(job))
}

func videoJobResponse(job *store.VideoJob) models.VideoJobResponse {
	return models.VideoJobResponse{
		JobID:    job.ID,
		Status:   job.Status,
		AssetRef: job.AssetRef,
		Error:    job.Error,
	}
}

// ==========================
// Support webhook
// ==========================

func (s *Server) handleEmailWebhook(w http.ResponseWriter, r *http.Request) {
	var payload models.InboundEmail
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if payload.Message.From == "" {
		writeBadRequest(w, "message.from_ must not be empty")
		return
	}

	if _, err := s.tasks.Support.Run(r.Context(), support.Inbound{
		Subject: payload.Message.Subject,
		From:    payload.Message.From,
		Body:    payload.Message.Text,
	}); err != nil {
		writeError(w, err)
		return
	}

	// The reply goes out through the mail capability; the webhook caller
	// only needs the acknowledgement.
	w.WriteHeader(http.StatusNoContent)
}

// ==========================
// Commerce OAuth
// ==========================

func (s *Server) handleAuthStart(w http.ResponseWriter, r *http.Request) {
	shop := commerce.NormalizeShop(r.URL.Query().Get("shop"))
	if shop == "" {
		writeBadRequest(w, "shop parameter is required")
		return
	}

	state := uuid.New().String()
	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Path:     "/auth",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})

	redirectURI := s.cfg.CallbackBaseURL + "/auth/callback"
	http.Redirect(w, r, s.commerce.AuthorizeURL(shop, redirectURI, state), http.StatusFound)
}

func (s *Server) handleAuthCallback(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	cookie, err := r.Cookie(oauthStateCookie)
	if err != nil || cookie.Value == "" || cookie.Value != query.Get("state") {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{
			Code:    "COMMERCE_AUTH_FAILED",
			Message: "state mismatch",
		})
		return
	}

	if !s.commerce.VerifyHMAC(query) {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{
			Code:    "COMMERCE_AUTH_FAILED",
			Message: "hmac verification failed",
		})
		return
	}

	shop := commerce.NormalizeShop(query.Get("shop"))
	token, exchangeErr := s.commerce.ExchangeCode(r.Context(), shop, query.Get("code"))
	if exchangeErr != nil {
		writeError(w, exchangeErr)
		return
	}

	s.logger.Info("shop authorized", map[string]interface{}{
		"shop":   shop,
		"scopes": token.Scopes,
	})

	writeJSON(w, http.StatusOK, map[string]string{
		"shop":   token.Shop,
		"scopes": strings.Join(token.Scopes, ","),
		"status": "authorized",
	})
}
