package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/pilgrim_path/internal/config"
	"github.com/shenikar/pilgrim_path/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWorker(cfg *config.Config) (*Worker, *[]time.Duration) {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	w := NewWorker(nil, logger, cfg)
	var delays []time.Duration
	w.sleep = func(_ context.Context, d time.Duration) bool {
		delays = append(delays, d)
		return true
	}
	return w, &delays
}

func testPayload(t *testing.T) (EscalationEvent, string) {
	t.Helper()
	inc := &models.Incident{
		ID:          uuid.New(),
		Title:       "Stampede risk at ghat",
		Category:    models.CategoryCrowding,
		Priority:    models.PriorityCritical,
		IsEmergency: true,
		Location:    models.Location{Coordinates: models.Point{77.2090, 28.6139}, Sector: "A"},
	}
	event := NewEscalationEvent(inc)
	raw, err := json.Marshal(event)
	require.NoError(t, err)
	return event, string(raw)
}

func TestDeliver_SignsPayload(t *testing.T) {
	event, raw := testPayload(t)
	var gotSig, gotBody string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSig = r.Header.Get(signatureHeader)
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	w, delays := newTestWorker(&config.Config{
		WebhookURL:        srv.URL,
		WebhookSecret:     "s3cret",
		WebhookTimeout:    time.Second,
		WebhookMaxRetries: 3,
		WebhookBaseDelay:  time.Second,
	})

	ok := w.deliver(context.Background(), event, raw)

	require.True(t, ok)
	assert.Equal(t, raw, gotBody)
	assert.Equal(t, generateHMACSHA256(raw, "s3cret"), gotSig)
	assert.Empty(t, *delays)
}

func TestDeliver_RetriesWithBackoff(t *testing.T) {
	event, raw := testPayload(t)
	var calls int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	w, delays := newTestWorker(&config.Config{
		WebhookURL:        srv.URL,
		WebhookTimeout:    time.Second,
		WebhookMaxRetries: 3,
		WebhookBaseDelay:  100 * time.Millisecond,
	})

	ok := w.deliver(context.Background(), event, raw)

	require.True(t, ok)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	assert.Equal(t, []time.Duration{100 * time.Millisecond, 200 * time.Millisecond}, *delays)
}

func TestDeliver_GivesUpAfterMaxRetries(t *testing.T) {
	event, raw := testPayload(t)
	var calls int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	w, _ := newTestWorker(&config.Config{
		WebhookURL:        srv.URL,
		WebhookTimeout:    time.Second,
		WebhookMaxRetries: 2,
		WebhookBaseDelay:  time.Millisecond,
	})

	assert.False(t, w.deliver(context.Background(), event, raw))
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestDeliver_SkipsWithoutURL(t *testing.T) {
	event, raw := testPayload(t)
	w, _ := newTestWorker(&config.Config{WebhookMaxRetries: 3})

	assert.False(t, w.deliver(context.Background(), event, raw))
}

func TestNewEscalationEvent(t *testing.T) {
	event, _ := testPayload(t)

	assert.Equal(t, 77.2090, event.Longitude)
	assert.Equal(t, 28.6139, event.Latitude)
	assert.Equal(t, "A", event.Sector)
	assert.True(t, event.IsEmergency)
}
