package discord

import (
	"errors"
	"net/http"
	"testing"

	"raidtrack/core/reconcile"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
)

func restError(status, code int) *discordgo.RESTError {
	return &discordgo.RESTError{
		Response: &http.Response{StatusCode: status},
		Message:  &discordgo.APIErrorMessage{Code: code},
	}
}

func TestIsNotFound(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"UnknownMessage", restError(http.StatusNotFound, codeUnknownMessage), true},
		{"UnknownEvent", restError(http.StatusBadRequest, codeUnknownScheduledEvent), true},
		{"UnknownChannelCode", restError(http.StatusForbidden, codeUnknownChannel), true},
		{"PlainNotFound", restError(http.StatusNotFound, 0), true},
		{"Forbidden", restError(http.StatusForbidden, 50001), false},
		{"RateLimited", restError(http.StatusTooManyRequests, 0), false},
		{"NotRESTError", errors.New("boom"), false},
		{"Nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsNotFound(tt.err))
		})
	}
}

func TestTranslate(t *testing.T) {
	assert.NoError(t, translate(nil, "x"))
	assert.ErrorIs(t, translate(restError(http.StatusNotFound, codeUnknownMessage), "edit"), reconcile.ErrNotFound)

	transient := restError(http.StatusInternalServerError, 0)
	err := translate(transient, "edit")
	assert.NotErrorIs(t, err, reconcile.ErrNotFound)
	assert.ErrorIs(t, err, transient)
}

func TestNewSession(t *testing.T) {
	_, err := NewSession(Config{})
	assert.Error(t, err)

	s, err := NewSession(Config{Token: "abc"})
	assert.NoError(t, err)
	assert.Equal(t, "Bot abc", s.Token)
	assert.Equal(t, discordgo.IntentsGuilds, s.Identify.Intents)
}
