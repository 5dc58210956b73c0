package whatsapp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSend_PostsMessage(t *testing.T) {
	var gotPath, gotAuth, gotKey string
	var gotBody Message
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotKey = r.Header.Get("Idempotency-Key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte(`{"id":"msg-1","status":"queued"}`))
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL+"/", "secret", srv.Client())
	require.NoError(t, err)

	accepted, err := client.Send(context.Background(), "5511987654321", Message{Text: "Seu pedido saiu para entrega", Reference: "o-1"}, WithIdempotencyKey("o-1-delivery"))
	require.NoError(t, err)
	assert.Equal(t, "msg-1", accepted.ID)
	assert.Equal(t, "/v1/messages/5511987654321", gotPath)
	assert.Equal(t, "Bearer secret", gotAuth)
	assert.Equal(t, "o-1-delivery", gotKey)
	assert.Equal(t, "o-1", gotBody.Reference)
}

func TestSend_ErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"invalid phone"}`))
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL, "", nil)
	require.NoError(t, err)

	_, err = client.Send(context.Background(), "55", Message{Text: "oi"})
	require.ErrorContains(t, err, "invalid phone")
}

func TestNewClient_RequiresURL(t *testing.T) {
	_, err := NewClient(" ", "", nil)
	require.Error(t, err)
}
