package services

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCRMClientSendLead(t *testing.T) {
	fixed := time.Unix(1700000000, 0)
	lead := CRMLead{ID: "lead-1", Source: "modal", Name: "Sneha", Phone: "9876543210"}

	t.Run("Signed Post", func(t *testing.T) {
		var got CRMLead
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, _ := io.ReadAll(r.Body)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			assert.Equal(t, "1700000000", r.Header.Get("X-Webhook-Timestamp"))
			assert.Equal(t, SignWebhook("s3cret", "1700000000", body), r.Header.Get("X-Webhook-Signature"))
			require.NoError(t, json.Unmarshal(body, &got))
			w.WriteHeader(http.StatusAccepted)
		}))
		defer server.Close()

		c := NewCRMClient(server.URL, "s3cret")
		c.Now = func() time.Time { return fixed }

		assert.NoError(t, c.SendLead(context.Background(), lead))
		assert.Equal(t, "Sneha", got.Name)
		assert.Equal(t, "modal", got.Source)
	})

	t.Run("Unsigned When No Secret", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Empty(t, r.Header.Get("X-Webhook-Signature"))
		}))
		defer server.Close()

		assert.NoError(t, NewCRMClient(server.URL, "").SendLead(context.Background(), lead))
	})

	t.Run("Non 2xx", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", http.StatusBadGateway)
		}))
		defer server.Close()

		err := NewCRMClient(server.URL, "").SendLead(context.Background(), lead)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "502")
	})

	t.Run("Missing URL", func(t *testing.T) {
		err := NewCRMClient("", "").SendLead(context.Background(), lead)
		assert.Error(t, err)
	})

	t.Run("Nil Client", func(t *testing.T) {
		var c *CRMClient
		assert.Error(t, c.SendLead(context.Background(), lead))
	})
}
