package planner

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/praxable/praxable-cli/internal/api"
	apperrors "github.com/praxable/praxable-cli/internal/errors"
	"github.com/praxable/praxable-cli/internal/logger"
	"github.com/praxable/praxable-cli/internal/models"
	"github.com/praxable/praxable-cli/internal/validation"
)

// Generator is the plan-generation half of the backend.
type Generator interface {
	GeneratePlan(ctx context.Context, userInput string, coreValues []string) (*models.PlannerResponse, error)
	GeneratePlanWithAudio(ctx context.Context, audio *api.AudioFile, userInput string, coreValues []string) (*models.PlannerResponse, error)
}

// Generate asks the backend for a plan from text input.
func Generate(ctx context.Context, g Generator, userInput string, coreValues []string) (*models.PlannerResponse, error) {
	input := validation.SanitizeText(userInput)
	if input == "" {
		return nil, apperrors.FieldValidation("user_input", "describe your day or attach a recording")
	}

	plan, err := g.GeneratePlan(ctx, input, coreValues)
	if err != nil {
		return nil, err
	}
	logger.Debug("Plan generated", "tasks", len(plan.Tasks))
	return plan, nil
}

// GenerateWithAudio uploads the recording at audioPath with the text input.
// Either may be empty, not both.
func GenerateWithAudio(ctx context.Context, g Generator, audioPath, userInput string, coreValues []string) (*models.PlannerResponse, error) {
	input := validation.SanitizeText(userInput)
	if audioPath == "" {
		if input == "" {
			return nil, apperrors.FieldValidation("user_input", "describe your day or attach a recording")
		}
		return g.GeneratePlanWithAudio(ctx, nil, input, coreValues)
	}

	f, err := os.Open(audioPath)
	if err != nil {
		return nil, fmt.Errorf("opening recording: %w", err)
	}
	defer f.Close()

	audio := &api.AudioFile{
		Name:        filepath.Base(audioPath),
		ContentType: audioContentType(audioPath),
		Data:        f,
	}
	plan, err := g.GeneratePlanWithAudio(ctx, audio, input, coreValues)
	if err != nil {
		return nil, err
	}
	logger.Debug("Plan generated from recording", "file", audio.Name, "tasks", len(plan.Tasks))
	return plan, nil
}

func audioContentType(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".wav":
		return "audio/wav"
	case ".m4a":
		return "audio/mp4"
	}
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
