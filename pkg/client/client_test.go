package client_test

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EckmanTechLLC/flux-go/pkg/client"
	"github.com/EckmanTechLLC/flux-go/pkg/event"
	"github.com/EckmanTechLLC/flux-go/pkg/property"
)

func newClient(t *testing.T, baseURL string) *client.Client {
	t.Helper()
	c, err := client.New(baseURL, client.Config{})
	require.NoError(t, err)
	return c
}

func TestNew_MissingBaseURL(t *testing.T) {
	_, err := client.New("", client.Config{})
	assert.ErrorIs(t, err, client.ErrMissingBaseURL)
}

func TestClient_Publish(t *testing.T) {
	var received struct {
		Stream    string `json:"stream"`
		Source    string `json:"source"`
		Timestamp int64  `json:"timestamp"`
		Payload   struct {
			EntityID   string         `json:"entity_id"`
			Properties map[string]any `json:"properties"`
		} `json:"payload"`
		Key string `json:"key"`
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/events", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"eventId": "evt-123",
			"stream":  "telemetry",
		})
	}))
	defer server.Close()

	evt, err := event.Build("telemetry", "test-rig", "sensor-1",
		property.Map{"t": property.Number(22.5), "online": property.Bool(true)},
		event.WithKey("sensor-1"))
	require.NoError(t, err)

	ack, err := newClient(t, server.URL).Publish(context.Background(), evt)
	require.NoError(t, err)
	assert.Equal(t, "evt-123", ack.EventID)
	assert.Equal(t, "telemetry", ack.Stream)

	assert.Equal(t, "telemetry", received.Stream)
	assert.Equal(t, "test-rig", received.Source)
	assert.Equal(t, "sensor-1", received.Payload.EntityID)
	assert.Equal(t, "sensor-1", received.Key)
	assert.NotZero(t, received.Timestamp)
	assert.Equal(t, map[string]any{"t": 22.5, "online": true}, received.Payload.Properties)
}

func TestClient_PublishServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"error":"unknown stream","stream":"bogus"}`))
	}))
	defer server.Close()

	evt, err := event.Build("bogus", "test-rig", "sensor-1", nil)
	require.NoError(t, err)

	_, err = newClient(t, server.URL).Publish(context.Background(), evt)
	var srvErr *client.ServerError
	require.ErrorAs(t, err, &srvErr)
	assert.Equal(t, http.StatusUnprocessableEntity, srvErr.Status)
	assert.JSONEq(t, `{"error":"unknown stream","stream":"bogus"}`, srvErr.Detail)
	assert.Contains(t, srvErr.Detail, "\n", "JSON detail should be indented")
}

func TestClient_Entity(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/api/state/entities/sensor-1", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "sensor-1",
			"properties": {"t": 22.5, "status": "ok"},
			"lastUpdated": "2024-06-01T12:30:45.123456Z"
		}`))
	}))
	defer server.Close()

	entity, err := newClient(t, server.URL).Entity(context.Background(), "sensor-1")
	require.NoError(t, err)
	assert.Equal(t, "sensor-1", entity.ID)
	assert.Equal(t, "2024-06-01T12:30:45.123456Z", entity.LastUpdated)
	assert.True(t, entity.Properties.Equal(property.Map{
		"t":      property.Number(22.5),
		"status": property.String("ok"),
	}), "properties = %v", entity.Properties)
}

func TestClient_EntityNamespacedID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Namespaced IDs pass through without escaping.
		require.Equal(t, "/api/state/entities/building-a/sensor-1", r.URL.Path)
		w.Write([]byte(`{"id":"building-a/sensor-1","properties":{},"lastUpdated":""}`))
	}))
	defer server.Close()

	entity, err := newClient(t, server.URL).Entity(context.Background(), "building-a/sensor-1")
	require.NoError(t, err)
	assert.Equal(t, "building-a/sensor-1", entity.ID)
}

func TestClient_EntityNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
	}))
	defer server.Close()

	_, err := newClient(t, server.URL).Entity(context.Background(), "ghost")
	require.ErrorIs(t, err, client.ErrNotFound)
	assert.Contains(t, err.Error(), "ghost")
}

func TestClient_EntityEmptyID(t *testing.T) {
	_, err := newClient(t, "http://localhost:3000").Entity(context.Background(), "")
	assert.ErrorIs(t, err, client.ErrEmptyEntityID)
}

func TestClient_Entities(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/state/entities", r.URL.Path)
		w.Write([]byte(`[
			{"id":"sensor-1","properties":{"t":22.5},"lastUpdated":"2024-06-01T12:00:00Z"},
			{"id":"sensor-2","properties":{"t":19},"lastUpdated":"2024-06-01T12:01:00Z"}
		]`))
	}))
	defer server.Close()

	entities, err := newClient(t, server.URL).Entities(context.Background())
	require.NoError(t, err)
	require.Len(t, entities, 2)
	assert.Equal(t, "sensor-1", entities[0].ID)
	assert.Equal(t, "sensor-2", entities[1].ID)
}

func TestClient_Unreachable(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	listener.Close()

	_, err = newClient(t, "http://"+addr).Entities(context.Background())
	assert.ErrorIs(t, err, client.ErrUnreachable)
}

func TestClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer server.Close()
	defer close(release)

	c, err := client.New(server.URL, client.Config{Timeout: 50 * time.Millisecond})
	require.NoError(t, err)

	_, err = c.Entities(context.Background())
	assert.ErrorIs(t, err, client.ErrTimeout)
}

func TestClient_ContextDeadline(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer server.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := newClient(t, server.URL).Entities(ctx)
	assert.ErrorIs(t, err, client.ErrTimeout)
}

func TestServerError_TextDetail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream exploded"))
	}))
	defer server.Close()

	_, err := newClient(t, server.URL).Entities(context.Background())
	var srvErr *client.ServerError
	require.ErrorAs(t, err, &srvErr)
	assert.Equal(t, http.StatusBadGateway, srvErr.Status)
	assert.Equal(t, "upstream exploded", srvErr.Detail)
	assert.Contains(t, srvErr.Error(), "502")
}

func TestServerError_EmptyBody(t *testing.T) {
	err := &client.ServerError{Status: http.StatusInternalServerError}
	assert.Equal(t, "server error: status 500", err.Error())
}

func TestClient_TrailingSlashBaseURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/state/entities", r.URL.Path)
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	entities, err := newClient(t, server.URL+"/").Entities(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entities)
}
