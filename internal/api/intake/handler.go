package intake

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/careerforge/interview-backend/internal/entity"
	"github.com/careerforge/interview-backend/internal/pkg/logger"
	"github.com/careerforge/interview-backend/internal/pkg/response"
	"github.com/careerforge/interview-backend/internal/pkg/resume"
	"github.com/careerforge/interview-backend/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Handler parses candidate intake material (resume PDFs, pasted job
// descriptions) into interview configuration context.
type Handler struct {
	validator *validator.Validator
}

func NewHandler(validator *validator.Validator) *Handler {
	return &Handler{validator: validator}
}

// ParseResume handles POST /api/resume/parse
func (h *Handler) ParseResume(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ParseResume")

	if err := r.ParseMultipartForm(16 << 20); err != nil {
		ctxzap.Error(ctx, "failed to parse multipart form", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	_, header, err := r.FormFile("file")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "resume file is required")
		return
	}

	if err := h.validator.ValidateResumeFile(header); err != nil {
		ctxzap.Error(ctx, "resume file rejected", zap.Error(err))
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	file, err := header.Open()
	if err != nil {
		response.Error(w, http.StatusBadRequest, "could not read resume file")
		return
	}
	defer file.Close()

	pdfContent, err := io.ReadAll(file)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "could not read resume file")
		return
	}

	data, err := resume.Parse(pdfContent)
	if err != nil {
		ctxzap.Error(ctx, "failed to parse resume", zap.Error(err))
		response.Error(w, http.StatusUnprocessableEntity, "could not extract text from resume")
		return
	}

	ctxzap.Info(ctx, "resume parsed",
		zap.Int("skills", len(data.Skills)),
		zap.Int("text_length", len(data.RawText)),
	)

	response.Success(w, map[string]any{
		"resume":  data,
		"context": data.Context(),
	})
}

// ParseJobDescription handles POST /api/jd/parse
func (h *Handler) ParseJobDescription(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ParseJobDescription")

	var req entity.ParseJobDescriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	parsed := resume.ParseJobDescription(req.Text)

	ctxzap.Info(ctx, "job description parsed",
		zap.String("experience_level", parsed.ExperienceLevel),
		zap.Int("skills", len(parsed.Skills)),
	)

	response.Success(w, map[string]any{
		"job_description": parsed,
		"context":         parsed.Context(),
	})
}

// RegisterRoutes registers intake routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/api/resume/parse", h.ParseResume)
	r.Post("/api/jd/parse", h.ParseJobDescription)
}
