package log

import (
	"bytes"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func frameEvent(sessionID string, dir Direction, payload string) Event {
	return Event{
		Timestamp: time.Now(),
		SessionID: sessionID,
		Direction: dir,
		Layer:     LayerTransport,
		Category:  CategoryFrame,
		Frame:     NewFrameEvent([]byte(payload)),
	}
}

func TestEncodeDecodeEvent(t *testing.T) {
	in := Event{
		Timestamp: time.Date(2024, 1, 1, 0, 0, 0, 123456789, time.UTC),
		SessionID: "sess-1",
		Layer:     LayerSession,
		Category:  CategoryState,
		Target:    "http://localhost:3000",
		StateChange: &StateChangeEvent{
			OldState: "CONNECTING",
			NewState: "SUBSCRIBING",
			Reason:   "connected",
		},
	}

	data, err := EncodeEvent(in)
	if err != nil {
		t.Fatalf("EncodeEvent error: %v", err)
	}
	out, err := DecodeEvent(data)
	if err != nil {
		t.Fatalf("DecodeEvent error: %v", err)
	}

	if !out.Timestamp.Equal(in.Timestamp) {
		t.Errorf("Timestamp = %v, want %v", out.Timestamp, in.Timestamp)
	}
	if out.SessionID != in.SessionID || out.Category != in.Category {
		t.Errorf("decoded = %+v", out)
	}
	if out.StateChange == nil || out.StateChange.NewState != "SUBSCRIBING" {
		t.Errorf("StateChange = %+v", out.StateChange)
	}
}

func TestNewFrameEvent_Truncation(t *testing.T) {
	small := NewFrameEvent([]byte("frame"))
	if small.Truncated || small.Size != 5 || string(small.Payload) != "frame" {
		t.Errorf("small frame = %+v", small)
	}

	big := NewFrameEvent(bytes.Repeat([]byte("x"), MaxPayloadCapture+100))
	if !big.Truncated {
		t.Error("oversized payload not flagged as truncated")
	}
	if big.Size != MaxPayloadCapture+100 {
		t.Errorf("Size = %d, want the original size", big.Size)
	}
	if len(big.Payload) != MaxPayloadCapture {
		t.Errorf("captured payload = %d bytes, want %d", len(big.Payload), MaxPayloadCapture)
	}
}

func TestFileLoggerRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.fluxlog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger error: %v", err)
	}
	logger.Log(frameEvent("a", DirectionOut, `{"type":"subscribe"}`))
	logger.Log(frameEvent("a", DirectionIn, `{"type":"snapshot"}`))
	logger.Log(frameEvent("b", DirectionIn, `{"type":"update"}`))
	if err := logger.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}

	// Logging after close is ignored, and Close is idempotent.
	logger.Log(frameEvent("a", DirectionIn, "late"))
	if err := logger.Close(); err != nil {
		t.Errorf("second Close error: %v", err)
	}

	reader, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader error: %v", err)
	}
	defer reader.Close()

	events, err := reader.All()
	if err != nil {
		t.Fatalf("All error: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("read %d events, want 3", len(events))
	}
	if string(events[0].Frame.Payload) != `{"type":"subscribe"}` {
		t.Errorf("first payload = %s", events[0].Frame.Payload)
	}
}

func TestFilteredReader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.fluxlog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger error: %v", err)
	}
	logger.Log(frameEvent("a", DirectionOut, "out"))
	logger.Log(frameEvent("a", DirectionIn, "in-1"))
	logger.Log(frameEvent("b", DirectionIn, "in-2"))
	logger.Close()

	in := DirectionIn
	reader, err := NewFilteredReader(path, Filter{SessionID: "a", Direction: &in})
	if err != nil {
		t.Fatalf("NewFilteredReader error: %v", err)
	}
	defer reader.Close()

	events, err := reader.All()
	if err != nil {
		t.Fatalf("All error: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("read %d events, want 1", len(events))
	}
	if string(events[0].Frame.Payload) != "in-1" {
		t.Errorf("payload = %s, want in-1", events[0].Frame.Payload)
	}

	if _, err := reader.Next(); err != io.EOF {
		t.Errorf("Next after All = %v, want io.EOF", err)
	}
}

func TestSlogAdapter(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewSlogAdapter(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})))

	event := frameEvent("sess-42", DirectionIn, `{"type":"update"}`)
	event.Frame.Kind = "UPDATE"
	adapter.Log(event)

	out := buf.String()
	for _, want := range []string{"session_id=sess-42", "category=FRAME", "direction=IN", "frame_kind=UPDATE"} {
		if !strings.Contains(out, want) {
			t.Errorf("slog output missing %q: %s", want, out)
		}
	}
}

func TestMultiLogger(t *testing.T) {
	var got []Event
	capture := loggerFunc(func(e Event) { got = append(got, e) })

	multi := NewMultiLogger(NoopLogger{}, capture, capture)
	multi.Log(frameEvent("a", DirectionIn, "x"))

	if len(got) != 2 {
		t.Errorf("captured %d events, want 2", len(got))
	}
}

// loggerFunc adapts a function to the Logger interface for tests.
type loggerFunc func(Event)

func (f loggerFunc) Log(e Event) { f(e) }
