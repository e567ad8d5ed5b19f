package validator

import (
	"errors"
	"testing"

	"github.com/careerforge/interview-backend/internal/config"
	"github.com/careerforge/interview-backend/internal/entity"
)

func newTestValidator() *Validator {
	return New(config.UploadConfig{
		MaxAudioFileSize:  1 << 20,
		MaxResumeFileSize: 1 << 20,
	}, 5)
}

func TestValidateStartInterview_Defaults(t *testing.T) {
	v := newTestValidator()

	req := &entity.StartInterviewRequest{
		Config: entity.InterviewConfig{Role: "Backend Engineer"},
	}
	if err := v.ValidateStartInterview(req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Config.MaxQuestions != 5 {
		t.Errorf("MaxQuestions = %d, want default 5", req.Config.MaxQuestions)
	}
	if req.Config.ExperienceLevel != entity.LevelMid {
		t.Errorf("ExperienceLevel = %q, want default %q", req.Config.ExperienceLevel, entity.LevelMid)
	}
}

func TestValidateStartInterview_Errors(t *testing.T) {
	v := newTestValidator()

	tests := []struct {
		name string
		req  entity.StartInterviewRequest
		want error
	}{
		{
			"missing role",
			entity.StartInterviewRequest{},
			entity.ErrMissingField,
		},
		{
			"budget too small",
			entity.StartInterviewRequest{Config: entity.InterviewConfig{Role: "SRE", MaxQuestions: 2}},
			entity.ErrInvalidParameter,
		},
		{
			"budget too large",
			entity.StartInterviewRequest{Config: entity.InterviewConfig{Role: "SRE", MaxQuestions: 16}},
			entity.ErrInvalidParameter,
		},
		{
			"unknown level",
			entity.StartInterviewRequest{Config: entity.InterviewConfig{Role: "SRE", ExperienceLevel: "Guru"}},
			entity.ErrInvalidParameter,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateStartInterview(&tt.req)
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestValidateSubmitAnswer(t *testing.T) {
	v := newTestValidator()

	if err := v.ValidateSubmitAnswer(&entity.SubmitAnswerRequest{Answer: "ok"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := v.ValidateSubmitAnswer(&entity.SubmitAnswerRequest{}); !errors.Is(err, entity.ErrMissingField) {
		t.Errorf("empty answer error = %v, want ErrMissingField", err)
	}
	if err := v.ValidateSubmitAnswer(&entity.SubmitAnswerRequest{Answer: "ok", DurationSeconds: -1}); !errors.Is(err, entity.ErrInvalidParameter) {
		t.Errorf("negative duration error = %v, want ErrInvalidParameter", err)
	}
}
