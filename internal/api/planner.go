package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"

	"github.com/praxable/praxable-cli/internal/models"
	"github.com/praxable/praxable-cli/internal/validation"
)

// AudioFile is a recording uploaded alongside a plan request.
type AudioFile struct {
	Name        string
	ContentType string
	Data        io.Reader
}

// GeneratePlan asks the backend to turn free-form text into candidate tasks.
func (c *Client) GeneratePlan(ctx context.Context, userInput string, coreValues []string) (*models.PlannerResponse, error) {
	resp, err := c.Post(ctx, "/planner/generate", models.PlannerRequest{
		UserInput:  userInput,
		CoreValues: nonNil(coreValues),
	})
	if err != nil {
		return nil, err
	}
	return decodePlan(resp)
}

// GeneratePlanWithAudio is GeneratePlan with an optional recording, sent as
// multipart/form-data. A nil audio omits the audio_file part.
func (c *Client) GeneratePlanWithAudio(ctx context.Context, audio *AudioFile, userInput string, coreValues []string) (*models.PlannerResponse, error) {
	const path = "/planner/generate_with_audio"

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	if audio != nil {
		name := audio.Name
		if name == "" {
			name = "recording.wav"
		}
		contentType := audio.ContentType
		if contentType == "" {
			contentType = "audio/wav"
		}
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="audio_file"; filename=%q`, name))
		h.Set("Content-Type", contentType)
		part, err := mw.CreatePart(h)
		if err != nil {
			return nil, fmt.Errorf("creating audio part: %w", err)
		}
		if _, err := io.Copy(part, audio.Data); err != nil {
			return nil, fmt.Errorf("copying audio: %w", err)
		}
	}

	if err := mw.WriteField("user_input", userInput); err != nil {
		return nil, fmt.Errorf("writing user_input: %w", err)
	}
	values, err := json.Marshal(nonNil(coreValues))
	if err != nil {
		return nil, fmt.Errorf("marshaling core_values: %w", err)
	}
	if err := mw.WriteField("core_values", string(values)); err != nil {
		return nil, fmt.Errorf("writing core_values: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("closing multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.send(req, path)
	if err != nil {
		return nil, err
	}
	return decodePlan(resp)
}

func decodePlan(resp []byte) (*models.PlannerResponse, error) {
	var plan models.PlannerResponse
	if err := decode(resp, &plan); err != nil {
		return nil, err
	}
	if err := validation.Struct(plan); err != nil {
		return nil, fmt.Errorf("invalid plan: %w", err)
	}
	return &plan, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
