package facades

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTelegramFacade_SendMessage(t *testing.T) {
	var gotPath string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(map[string]any{"ok": true})
	}))
	defer srv.Close()

	f := NewTelegramFacade("bot-token", WithTelegramBaseURL(srv.URL))

	err := f.SendMessage(context.Background(), "12345", "help!")
	assert.NoError(t, err)
	assert.Equal(t, "/botbot-token/sendMessage", gotPath)
	assert.Equal(t, "12345", gotBody["chat_id"])
	assert.Equal(t, "help!", gotBody["text"])
}

func TestTelegramFacade_SendLocation(t *testing.T) {
	var gotPath string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(map[string]any{"ok": true})
	}))
	defer srv.Close()

	f := NewTelegramFacade("bot-token", WithTelegramBaseURL(srv.URL))

	err := f.SendLocation(context.Background(), "12345", 51.5, -0.12)
	assert.NoError(t, err)
	assert.Equal(t, "/botbot-token/sendLocation", gotPath)
	assert.InDelta(t, 51.5, gotBody["latitude"].(float64), 0.001)
	assert.InDelta(t, -0.12, gotBody["longitude"].(float64), 0.001)
}

func TestTelegramFacade_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{"ok": false, "description": "chat not found"})
	}))
	defer srv.Close()

	f := NewTelegramFacade("bot-token", WithTelegramBaseURL(srv.URL))

	err := f.SendMessage(context.Background(), "missing", "help!")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "chat not found")
}

func TestTelegramFacade_OKFalseWithoutDescription(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"ok": false})
	}))
	defer srv.Close()

	f := NewTelegramFacade("bot-token", WithTelegramBaseURL(srv.URL))

	err := f.SendMessage(context.Background(), "12345", "help!")
	assert.Error(t, err)
}

func TestTelegramFacade_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // closed on purpose

	f := NewTelegramFacade("bot-token", WithTelegramBaseURL(srv.URL))

	err := f.SendMessage(context.Background(), "12345", "help!")
	assert.Error(t, err)
}
