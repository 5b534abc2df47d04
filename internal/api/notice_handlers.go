package api

import (
	"encoding/json"
	"net/http"
	"serwer-zdjec/internal/database"
	"strings"
)

type CreateNoticeRequest struct {
	Title string  `json:"title"`
	Body  *string `json:"body"`
}

type CreateNoticeResponse struct {
	Success  bool  `json:"success"`
	NoticeID int64 `json:"notice_id"`
}

// @Summary      Create a notice
// @Description  Inserts an announcement. Requires the admin flag.
// @Tags         notices
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Success      201  {object}  CreateNoticeResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /notices [post]
func (s *Server) CreateNoticeHandler(w http.ResponseWriter, r *http.Request) {
	identity := GetIdentityFromContext(r.Context())

	isAdmin, err := s.store.IsAdmin(r.Context(), identity.UID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to check permission")
		return
	}
	if !isAdmin {
		writeError(w, http.StatusForbidden, "Admin access required")
		return
	}

	var req CreateNoticeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if strings.TrimSpace(req.Title) == "" {
		writeError(w, http.StatusBadRequest, "Notice title cannot be empty")
		return
	}

	notice, err := s.store.CreateNotice(r.Context(), database.CreateNoticeParams{
		AuthorUID: identity.UID,
		Title:     req.Title,
		Body:      req.Body,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create notice")
		return
	}

	writeJSON(w, http.StatusCreated, CreateNoticeResponse{
		Success:  true,
		NoticeID: notice.ID,
	})
}
