package validator

import (
	"github.com/careerforge/interview-backend/internal/config"
)

// Validator validates API requests and uploaded files
type Validator struct {
	cfg                 config.UploadConfig
	defaultMaxQuestions int
}

func New(cfg config.UploadConfig, defaultMaxQuestions int) *Validator {
	return &Validator{
		cfg:                 cfg,
		defaultMaxQuestions: defaultMaxQuestions,
	}
}
