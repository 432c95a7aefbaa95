package http

import (
	"errors"
	"net/http"

	"github.com/OFTGNOV/Sa-helper-bot/internal/agent/generation"
	"github.com/OFTGNOV/Sa-helper-bot/internal/agent/model"
	errx "github.com/OFTGNOV/Sa-helper-bot/internal/core/error"
)

const (
	emptyMessageMessage    = "Please type a message"
	invalidFeedbackMessage = "Feedback must be either positive or negative"
	invalidSettingsMessage = "Invalid API settings"
	invalidSectionMessage  = "Invalid knowledge section"
	invalidPatternsMessage = "Refusal patterns must be a list of phrases"
	notConfiguredMessage   = "The Gemini API is not configured. Add an API key and enable it first."
	apiTimeoutMessage      = "The Gemini API did not respond in time"
	apiFailedMessage       = "The Gemini API returned an error"
	apiEmptyMessage        = "The Gemini API returned an empty response"
)

func mapError(err error) error {
	switch {
	case errors.Is(err, model.ErrEmptyInput):
		return errx.BadRequest(err, emptyMessageMessage)
	case errors.Is(err, model.ErrInvalidFeedback):
		return errx.BadRequest(err, invalidFeedbackMessage)
	case errors.Is(err, model.ErrInvalidSettings):
		return errx.BadRequest(err, invalidSettingsMessage)
	case errors.Is(err, model.ErrInvalidSection):
		return errx.BadRequest(err, invalidSectionMessage)
	case errors.Is(err, model.ErrNotConfigured):
		return errx.BadRequest(err, notConfiguredMessage)
	case errors.Is(err, generation.ErrTimeout):
		return errx.New(err, http.StatusGatewayTimeout, apiTimeoutMessage)
	case errors.Is(err, generation.ErrEmptyResponse):
		return errx.New(err, http.StatusBadGateway, apiEmptyMessage)
	case errors.Is(err, generation.ErrAPI):
		return errx.New(err, http.StatusBadGateway, apiFailedMessage)
	default:
		return err
	}
}
