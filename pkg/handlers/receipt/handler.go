package receipt

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/de-tools/carbon-atlas/pkg/models/api"
	"github.com/de-tools/carbon-atlas/pkg/services/analysis"
	"github.com/de-tools/carbon-atlas/pkg/services/carbon"
	"github.com/rs/zerolog"
)

const maxReceiptSize = 1 << 20 // 1MB of receipt text is plenty

type Handler struct {
	svc analysis.Service
}

func NewHandler(svc analysis.Service) *Handler {
	return &Handler{svc: svc}
}

// AnalyzeReceipt accepts raw receipt text, either as the request body or as
// a multipart "file" field, and returns the full analysis including the raw
// text echoed back.
func (h *Handler) AnalyzeReceipt(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	text, err := readReceiptText(r)
	if err != nil {
		logger.Error().Err(err).Msg("failed to read receipt text")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(text) == "" {
		http.Error(w, "empty receipt text", http.StatusBadRequest)
		return
	}

	report := h.svc.AnalyzeText(text)

	writeJSON(w, logger, api.NewAnalysisReport(report, true))
}

// EstimateItem analyzes a single item without a surrounding receipt. The
// quantity is optional; leaving it out exercises the assumed-1-unit path.
func (h *Handler) EstimateItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	var req api.EstimateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		http.Error(w, "item name is required", http.StatusBadRequest)
		return
	}

	item := h.svc.EstimateItem(carbon.ItemRequest{
		Name:     req.Name,
		Quantity: req.Quantity,
		Price:    req.Price,
		Category: req.Category,
	})

	writeJSON(w, logger, api.NewItem(item))
}

// ListCategories reports the factor table categories available for explicit
// categorization.
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())
	writeJSON(w, logger, api.CategoryList{Categories: h.svc.Categories()})
}

func readReceiptText(r *http.Request) (string, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		file, _, err := r.FormFile("file")
		if err != nil {
			return "", fmt.Errorf("missing file field: %w", err)
		}
		defer file.Close()

		data, err := io.ReadAll(io.LimitReader(file, maxReceiptSize))
		if err != nil {
			return "", fmt.Errorf("failed to read uploaded file: %w", err)
		}
		return string(data), nil
	}

	data, err := io.ReadAll(io.LimitReader(r.Body, maxReceiptSize))
	if err != nil {
		return "", fmt.Errorf("failed to read request body: %w", err)
	}
	return string(data), nil
}

func writeJSON(w http.ResponseWriter, logger *zerolog.Logger, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error().Err(err).Msg("failed to encode response")
	}
}
