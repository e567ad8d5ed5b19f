package validator

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/careerforge/interview-backend/internal/entity"
)

const (
	minQuestions = 3
	maxQuestions = 15
)

// ValidateStartInterview validates StartInterviewRequest and applies
// defaults for omitted fields. The question budget is bounded so a single
// session can neither degenerate into one question nor run unbounded.
func (v *Validator) ValidateStartInterview(req *entity.StartInterviewRequest) error {
	if req.Config.Role == "" {
		return fmt.Errorf("%w: config.role", entity.ErrMissingField)
	}

	if req.Config.ExperienceLevel == "" {
		req.Config.ExperienceLevel = entity.LevelMid
	}
	if err := req.Config.ExperienceLevel.Validate(); err != nil {
		return fmt.Errorf("%w: %v", entity.ErrInvalidParameter, err)
	}

	if req.Config.MaxQuestions == 0 {
		req.Config.MaxQuestions = v.defaultMaxQuestions
	}
	if req.Config.MaxQuestions < minQuestions || req.Config.MaxQuestions > maxQuestions {
		return fmt.Errorf("%w: max_questions must be between %d and %d, got %d",
			entity.ErrInvalidParameter, minQuestions, maxQuestions, req.Config.MaxQuestions)
	}

	if req.Config.TimePerQuestion < 0 {
		return fmt.Errorf("%w: time_per_question must not be negative", entity.ErrInvalidParameter)
	}

	return nil
}

// ValidateSubmitAnswer validates answer submission
func (v *Validator) ValidateSubmitAnswer(req *entity.SubmitAnswerRequest) error {
	if req.Answer == "" {
		return fmt.Errorf("%w: answer", entity.ErrMissingField)
	}
	if req.DurationSeconds < 0 {
		return fmt.Errorf("%w: duration_seconds must not be negative", entity.ErrInvalidParameter)
	}

	return nil
}

// ValidateAudioFile validates audio answer uploads (WAV format only)
func (v *Validator) ValidateAudioFile(file *multipart.FileHeader) error {
	if file == nil {
		return fmt.Errorf("%w: audio file", entity.ErrMissingField)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".wav" {
		return fmt.Errorf("%w: %s (only .wav files are allowed)", entity.ErrInvalidExtension, ext)
	}

	if file.Size > v.cfg.MaxAudioFileSize {
		return fmt.Errorf("%w: file '%s' is %d bytes (max %d)",
			entity.ErrFileTooLarge, file.Filename, file.Size, v.cfg.MaxAudioFileSize)
	}

	return nil
}

// ValidateResumeFile validates resume uploads (PDF format only)
func (v *Validator) ValidateResumeFile(file *multipart.FileHeader) error {
	if file == nil {
		return fmt.Errorf("%w: resume file", entity.ErrMissingField)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".pdf" {
		return fmt.Errorf("%w: %s (only .pdf files are allowed)", entity.ErrInvalidExtension, ext)
	}

	if file.Size > v.cfg.MaxResumeFileSize {
		return fmt.Errorf("%w: file '%s' is %d bytes (max %d)",
			entity.ErrFileTooLarge, file.Filename, file.Size, v.cfg.MaxResumeFileSize)
	}

	return nil
}
