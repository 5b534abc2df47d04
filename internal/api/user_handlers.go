package api

import (
	"encoding/json"
	"net/http"
	"serwer-zdjec/internal/database"
	"strings"
)

type RegisterUserRequest struct {
	DisplayName *string `json:"display_name"`
	FolderName  *string `json:"folder_name"`
}

type RegisterUserResponse struct {
	Success     bool   `json:"success"`
	UserID      int64  `json:"user_id"`
	FirebaseUID string `json:"firebase_uid"`
	Message     string `json:"message"`
}

// @Summary      Register or update a user
// @Description  Upserts the profile row keyed by the verified subject id. The first call creates the row, later calls update it in place.
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        registerRequest  body      RegisterUserRequest  true  "Profile fields"
// @Success      200  {object}  RegisterUserResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /users [post]
func (s *Server) RegisterUserHandler(w http.ResponseWriter, r *http.Request) {
	identity := GetIdentityFromContext(r.Context())

	var req RegisterUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	displayName := "No Name"
	if req.DisplayName != nil && strings.TrimSpace(*req.DisplayName) != "" {
		displayName = *req.DisplayName
	}

	params := database.UpsertUserParams{
		FirebaseUID: identity.UID,
		DisplayName: &displayName,
		FolderName:  req.FolderName,
	}

	result, err := s.store.UpsertUser(r.Context(), params)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to register user")
		return
	}

	message := "User updated successfully"
	if result.Inserted {
		message = "User registered successfully"
	}

	writeJSON(w, http.StatusOK, RegisterUserResponse{
		Success:     true,
		UserID:      result.UserID,
		FirebaseUID: identity.UID,
		Message:     message,
	})
}

type IsAdminResponse struct {
	IsAdmin bool    `json:"is_admin"`
	UID     string  `json:"uid,omitempty"`
	Email   *string `json:"email,omitempty"`
	Error   string  `json:"error,omitempty"`
}

// @Summary      Check admin permission
// @Description  Verifies the bearer credential and reports whether the subject has the admin flag.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  IsAdminResponse
// @Failure      401  {object}  IsAdminResponse
// @Router       /users/is_admin [get]
func (s *Server) IsAdminHandler(w http.ResponseWriter, r *http.Request) {
	// Endpoint weryfikuje token samodzielnie — odpowiedź błędu ma inny
	// kształt niż pozostałe ({is_admin, error}).
	credential := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")

	identity, err := s.verifier.Verify(r.Context(), credential)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, IsAdminResponse{IsAdmin: false, Error: "Unauthorized"})
		return
	}

	isAdmin, err := s.store.IsAdmin(r.Context(), identity.UID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, IsAdminResponse{IsAdmin: false, Error: "Failed to check permission"})
		return
	}

	writeJSON(w, http.StatusOK, IsAdminResponse{
		IsAdmin: isAdmin,
		UID:     identity.UID,
		Email:   identity.Email,
	})
}
