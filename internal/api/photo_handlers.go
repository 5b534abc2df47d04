package api

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"serwer-zdjec/internal/database"
	"serwer-zdjec/internal/models"
	"strconv"
	"strings"
	"time"

	"github.com/jaevor/go-nanoid"
)

const maxPhotoSizeBytes = 10 << 20 // 10 MiB

var allowedPhotoTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
}

var takenAtFormats = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
}

func parseTakenAt(raw string) (time.Time, error) {
	for _, format := range takenAtFormats {
		if t, err := time.Parse(format, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid taken_at value: %q", raw)
}

type ListPhotosResponse struct {
	Success bool           `json:"success"`
	Count   int            `json:"count"`
	Photos  []models.Photo `json:"photos"`
}

// @Summary      List photos
// @Description  Lists photos, optionally narrowed to a bounding box around lat/lng and to a single owner. Ordered by capture time descending.
// @Tags         photos
// @Produce      json
// @Param        lat      query  number  false  "Latitude of the search center"
// @Param        lng      query  number  false  "Longitude of the search center"
// @Param        radius   query  number  false  "Search radius in km (default 10)"
// @Param        user_id  query  string  false  "Narrow results to one owner"
// @Param        limit    query  int     false  "Maximum number of rows (default 100)"
// @Success      200  {object}  ListPhotosResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /photos [get]
func (s *Server) ListPhotosHandler(w http.ResponseWriter, r *http.Request) {
	var filter database.PhotoFilter

	// lat/lng trafiają do filtra tylko gdy parametr jest obecny —
	// 0.0 to poprawna współrzędna, nie brak filtra.
	if raw := r.URL.Query().Get("lat"); raw != "" {
		lat, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid 'lat' parameter")
			return
		}
		filter.Lat = &lat
	}

	if raw := r.URL.Query().Get("lng"); raw != "" {
		lng, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid 'lng' parameter")
			return
		}
		filter.Lng = &lng
	}

	if raw := r.URL.Query().Get("radius"); raw != "" {
		radius, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid 'radius' parameter")
			return
		}
		filter.RadiusKm = radius
	}

	if raw := r.URL.Query().Get("user_id"); raw != "" {
		filter.UserID = &raw
	}

	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid 'limit' parameter")
			return
		}
		filter.Limit = limit
	}

	photos, err := s.store.ListPhotos(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list photos")
		return
	}

	for i := range photos {
		photos[i].URL = s.photoURL(photos[i].UserID, photos[i].Filename)
	}

	writeJSON(w, http.StatusOK, ListPhotosResponse{
		Success: true,
		Count:   len(photos),
		Photos:  photos,
	})
}

type UploadPhotoResponse struct {
	Success     bool      `json:"success"`
	PhotoID     int64     `json:"photo_id"`
	URL         string    `json:"url"`
	TakenAt     time.Time `json:"taken_at"`
	Latitude    *float64  `json:"latitude,omitempty"`
	Longitude   *float64  `json:"longitude,omitempty"`
	Title       *string   `json:"title,omitempty"`
	Category    *string   `json:"category,omitempty"`
	Description *string   `json:"description,omitempty"`
	Message     string    `json:"message"`
}

// @Summary      Upload a photo
// @Description  Accepts a multipart photo with optional metadata, stores the blob under a capture-date-derived path and inserts a metadata row.
// @Tags         photos
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        photo        formData  file    true   "Photo file (jpeg or png, max 10 MiB)"
// @Param        latitude     formData  number  false  "Capture latitude"
// @Param        longitude    formData  number  false  "Capture longitude"
// @Param        taken_at     formData  string  false  "Capture timestamp (defaults to server time)"
// @Param        title        formData  string  false  "Title"
// @Param        category     formData  string  false  "Category"
// @Param        description  formData  string  false  "Description"
// @Success      200  {object}  UploadPhotoResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /photos [post]
func (s *Server) UploadPhotoHandler(w http.ResponseWriter, r *http.Request) {
	identity := GetIdentityFromContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, maxPhotoSizeBytes+(2<<20))

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "Error parsing multipart form")
		return
	}

	file, handler, err := r.FormFile("photo")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No photo uploaded")
		return
	}
	defer file.Close()

	mimeType := handler.Header.Get("Content-Type")
	if !allowedPhotoTypes[mimeType] {
		writeError(w, http.StatusBadRequest, "Invalid file type. Only JPG and PNG allowed.")
		return
	}

	if handler.Size > maxPhotoSizeBytes {
		writeError(w, http.StatusBadRequest, "File too large. Maximum 10MB.")
		return
	}

	var latitude, longitude *float64
	if raw := r.FormValue("latitude"); raw != "" {
		lat, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid 'latitude' value")
			return
		}
		latitude = &lat
	}
	if raw := r.FormValue("longitude"); raw != "" {
		lng, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid 'longitude' value")
			return
		}
		longitude = &lng
	}

	// Starszy wariant wymagał lokalizacji; wybór dokonuje konfiguracja.
	if s.config.Upload.RequireLocation && (latitude == nil || longitude == nil) {
		writeError(w, http.StatusBadRequest, "Location data required")
		return
	}

	takenAt := time.Now()
	if raw := r.FormValue("taken_at"); raw != "" {
		takenAt, err = parseTakenAt(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid 'taken_at' value")
			return
		}
	}

	var title, category, description *string
	if v := r.FormValue("title"); v != "" {
		title = &v
	}
	if v := r.FormValue("category"); v != "" {
		category = &v
	}
	if v := r.FormValue("description"); v != "" {
		description = &v
	}

	ext := strings.ToLower(filepath.Ext(handler.Filename))
	if ext == "" {
		if mimeType == "image/png" {
			ext = ".png"
		} else {
			ext = ".jpg"
		}
	}

	generateToken, err := nanoid.Standard(21)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to initialize token generator")
		return
	}

	relPath := fmt.Sprintf("%04d/%02d/%02d/%s%s",
		takenAt.Year(), takenAt.Month(), takenAt.Day(), generateToken(), ext)

	if err := s.storage.Save(identity.UID, relPath, file); err != nil {
		log.Printf("Nie udało się zapisać pliku %s/%s: %v", identity.UID, relPath, err)
		writeError(w, http.StatusInternalServerError, "Failed to save photo")
		return
	}

	params := database.CreatePhotoParams{
		UserID:      identity.UID,
		Filename:    relPath,
		Latitude:    latitude,
		Longitude:   longitude,
		TakenAt:     takenAt,
		Title:       title,
		Category:    category,
		Description: description,
	}

	photo, err := s.store.CreatePhoto(r.Context(), params)
	if err != nil {
		// Wiersz nie powstał — sprzątamy blob, żeby nie osierocić pliku.
		if delErr := s.storage.Delete(identity.UID, relPath); delErr != nil {
			log.Printf("Nie udało się usunąć osieroconego pliku %s/%s: %v", identity.UID, relPath, delErr)
		}
		if errors.Is(err, database.ErrDuplicateFilename) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to create photo record")
		return
	}

	if err := s.store.LogEvent(r.Context(), identity.UID, "photo_uploaded", map[string]interface{}{
		"photo_id": photo.ID,
		"filename": photo.Filename,
	}); err != nil {
		log.Printf("Failed to log photo_uploaded event: %v", err)
	}

	writeJSON(w, http.StatusOK, UploadPhotoResponse{
		Success:     true,
		PhotoID:     photo.ID,
		URL:         s.photoURL(photo.UserID, photo.Filename),
		TakenAt:     photo.TakenAt,
		Latitude:    photo.Latitude,
		Longitude:   photo.Longitude,
		Title:       photo.Title,
		Category:    photo.Category,
		Description: photo.Description,
		Message:     "Photo uploaded successfully",
	})
}
