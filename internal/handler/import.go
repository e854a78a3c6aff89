package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/oxtailbadger/mise/internal/importer"
)

type ImportHandler struct {
	importer *importer.Client
	logger   *slog.Logger
}

func NewImportHandler(client *importer.Client, logger *slog.Logger) *ImportHandler {
	return &ImportHandler{importer: client, logger: logger}
}

type importRequest struct {
	Type      string `json:"type"`
	URL       string `json:"url"`
	Text      string `json:"text"`
	ImageData string `json:"image_data"`
	MediaType string `json:"media_type"`
}

// Import handles POST /api/recipes/import, extracting a structured recipe
// from a URL, pasted text, or a photo. The result is returned for review
// and saved through the normal recipe create endpoint.
func (h *ImportHandler) Import(w http.ResponseWriter, r *http.Request) {
	if !h.importer.Configured() {
		writeError(w, http.StatusServiceUnavailable, "recipe import is not configured")
		return
	}

	var req importRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	ctx := r.Context()
	switch req.Type {
	case "url":
		if strings.TrimSpace(req.URL) == "" {
			writeError(w, http.StatusBadRequest, "url is required")
			return
		}
		recipe, err := h.importer.ParseFromURL(ctx, req.URL)
		if err != nil {
			h.logger.Error("import from url", "url", req.URL, "error", err)
			writeError(w, http.StatusBadGateway, "failed to import recipe from url")
			return
		}
		writeJSON(w, http.StatusOK, recipe)

	case "text":
		if strings.TrimSpace(req.Text) == "" {
			writeError(w, http.StatusBadRequest, "text is required")
			return
		}
		recipe, err := h.importer.ParseFromText(ctx, req.Text)
		if err != nil {
			h.logger.Error("import from text", "error", err)
			writeError(w, http.StatusBadGateway, "failed to import recipe from text")
			return
		}
		writeJSON(w, http.StatusOK, recipe)

	case "image":
		if req.ImageData == "" {
			writeError(w, http.StatusBadRequest, "image_data is required")
			return
		}
		if !importer.AllowedImageType(req.MediaType) {
			writeError(w, http.StatusBadRequest, "unsupported image type")
			return
		}
		recipe, err := h.importer.ParseFromImage(ctx, req.ImageData, req.MediaType)
		if err != nil {
			h.logger.Error("import from image", "error", err)
			writeError(w, http.StatusBadGateway, "failed to import recipe from image")
			return
		}
		writeJSON(w, http.StatusOK, recipe)

	default:
		writeError(w, http.StatusBadRequest, "type must be \"url\", \"text\", or \"image\"")
	}
}
