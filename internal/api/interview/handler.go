package interview

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/careerforge/interview-backend/internal/entity"
	"github.com/careerforge/interview-backend/internal/pkg/formatter"
	"github.com/careerforge/interview-backend/internal/pkg/logger"
	"github.com/careerforge/interview-backend/internal/pkg/response"
	"github.com/careerforge/interview-backend/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 200
)

type Handler struct {
	usecase   InterviewUsecase
	validator *validator.Validator
	formats   *formatter.Factory
}

func NewHandler(usecase InterviewUsecase, validator *validator.Validator) *Handler {
	return &Handler{
		usecase:   usecase,
		validator: validator,
		formats:   formatter.NewFactory(),
	}
}

// StartInterview handles POST /api/interview/start
func (h *Handler) StartInterview(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "StartInterview")

	var req entity.StartInterviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.usecase.StartSession(ctx, &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Created(w, resp)
}

// GetSession handles GET /api/interview/{id}
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	ctx := logger.WithSession(logger.WithAction(r.Context(), "GetSession"), sessionID)

	session, err := h.usecase.GetSession(ctx, sessionID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, session)
}

// SubmitAnswer handles POST /api/interview/{id}/answer
func (h *Handler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	ctx := logger.WithSession(logger.WithAction(r.Context(), "SubmitAnswer"), sessionID)

	var req entity.SubmitAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.usecase.SubmitAnswer(ctx, sessionID, &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, resp)
}

// SubmitAudioAnswer handles POST /api/interview/{id}/answer/audio
func (h *Handler) SubmitAudioAnswer(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	ctx := logger.WithSession(logger.WithAction(r.Context(), "SubmitAudioAnswer"), sessionID)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		ctxzap.Error(ctx, "failed to parse multipart form", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	_, header, err := r.FormFile("file")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "audio file is required")
		return
	}

	if err := h.validator.ValidateAudioFile(header); err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	file, err := header.Open()
	if err != nil {
		ctxzap.Error(ctx, "failed to open audio file", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "could not read audio file")
		return
	}
	defer file.Close()

	audioData, err := io.ReadAll(file)
	if err != nil {
		ctxzap.Error(ctx, "failed to read audio file", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "could not read audio file")
		return
	}

	var durationSeconds float64
	if raw := r.FormValue("duration_seconds"); raw != "" {
		durationSeconds, err = strconv.ParseFloat(raw, 64)
		if err != nil || durationSeconds < 0 {
			response.Error(w, http.StatusBadRequest, "invalid duration_seconds")
			return
		}
	}

	resp, err := h.usecase.SubmitAudioAnswer(ctx, sessionID, audioData, header.Filename, durationSeconds)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, resp)
}

// CancelSession handles POST /api/interview/{id}/cancel
func (h *Handler) CancelSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	ctx := logger.WithSession(logger.WithAction(r.Context(), "CancelSession"), sessionID)

	if err := h.usecase.CancelSession(ctx, sessionID); err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, map[string]string{
		"message": "session cancelled successfully",
	})
}

// GetFeedback handles GET /api/interview/{id}/feedback
func (h *Handler) GetFeedback(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	ctx := logger.WithSession(logger.WithAction(r.Context(), "GetFeedback"), sessionID)

	formatParam := r.URL.Query().Get("format")
	if formatParam == "" {
		formatParam = string(entity.FormatJSON)
	}

	format := entity.ReportFormat(formatParam)
	if err := format.Validate(); err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	report, err := h.usecase.GetOrCreateReport(ctx, sessionID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	if format == entity.FormatJSON {
		response.Success(w, report)
		return
	}

	fmtr, err := h.formats.Create(format)
	if err != nil {
		ctxzap.Error(ctx, "format not implemented", zap.Error(err))
		response.Error(w, http.StatusNotImplemented, "format not implemented")
		return
	}

	rendered, err := fmtr.Format(report)
	if err != nil {
		ctxzap.Error(ctx, "failed to format report", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "failed to format report")
		return
	}

	response.Attachment(w, fmtr.ContentType(), "feedback-"+sessionID+fmtr.FileExtension(), rendered)
}

// History handles GET /api/interview/history
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "History")

	limit := queryInt(r, "limit", defaultHistoryLimit)
	if limit < 1 || limit > maxHistoryLimit {
		limit = defaultHistoryLimit
	}
	offset := queryInt(r, "offset", 0)
	if offset < 0 {
		offset = 0
	}

	records, err := h.usecase.History(ctx, limit, offset)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, map[string]any{
		"interviews": records,
		"count":      len(records),
	})
}

// Dashboard handles GET /api/interview/dashboard
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "Dashboard")

	stats, err := h.usecase.Dashboard(ctx)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, stats)
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func (h *Handler) handleUsecaseError(ctx context.Context, w http.ResponseWriter, err error) {
	ctxzap.Error(ctx, "request failed", zap.Error(err))

	switch {
	case errors.Is(err, entity.ErrSessionNotFound):
		response.Error(w, http.StatusNotFound, "session not found")
	case errors.Is(err, entity.ErrSessionCompleted):
		response.Error(w, http.StatusConflict, "session already completed")
	case errors.Is(err, entity.ErrSessionStateUnavailable):
		response.Error(w, http.StatusConflict, "session state unavailable")
	case errors.Is(err, entity.ErrMissingField),
		errors.Is(err, entity.ErrInvalidParameter),
		errors.Is(err, entity.ErrInvalidFormat):
		response.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, entity.ErrInvalidFile),
		errors.Is(err, entity.ErrInvalidExtension),
		errors.Is(err, entity.ErrFileTooLarge):
		response.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, entity.ErrGenerationTimeout):
		response.Error(w, http.StatusGatewayTimeout, "generation timed out")
	case errors.Is(err, entity.ErrGenerationFailure):
		response.Error(w, http.StatusBadGateway, "generation failed")
	default:
		response.Error(w, http.StatusInternalServerError, "internal server error")
	}
}
