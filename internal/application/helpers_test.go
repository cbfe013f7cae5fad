package application

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/linskybing/formbuilder-go/pkg/apperr"
	"github.com/linskybing/formbuilder-go/pkg/jsonval"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type auditEvent struct {
	Level    string
	Category string
	Message  string
	Fields   any
}

// fakeAuditor records events synchronously.
type fakeAuditor struct {
	mu     sync.Mutex
	events []auditEvent
}

func (a *fakeAuditor) record(level, category, message string, fields any) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, auditEvent{Level: level, Category: category, Message: message, Fields: fields})
}

func (a *fakeAuditor) Info(_ context.Context, category, message string, fields any) {
	a.record("INFO", category, message, fields)
}

func (a *fakeAuditor) Warning(_ context.Context, category, message string, fields any) {
	a.record("WARNING", category, message, fields)
}

func (a *fakeAuditor) Error(_ context.Context, category, message string, fields any) {
	a.record("ERROR", category, message, fields)
}

func (a *fakeAuditor) messages(level string) []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	var out []string
	for _, e := range a.events {
		if e.Level == level {
			out = append(out, e.Message)
		}
	}
	return out
}

func (a *fakeAuditor) byLevel(level string) []auditEvent {
	a.mu.Lock()
	defer a.mu.Unlock()
	var out []auditEvent
	for _, e := range a.events {
		if e.Level == level {
			out = append(out, e)
		}
	}
	return out
}

type fakeStore struct {
	objects map[string][]byte
	putErr  error
}

func (s *fakeStore) PutObject(_ context.Context, name string, data []byte, _ string) error {
	if s.putErr != nil {
		return s.putErr
	}
	if s.objects == nil {
		s.objects = map[string][]byte{}
	}
	s.objects[name] = data
	return nil
}

func (s *fakeStore) PresignedGetURL(_ context.Context, name string) (string, error) {
	return "https://storage.local/" + name, nil
}

func ptrString(s string) *string { return &s }

func ptrFloat(f float64) *float64 { return &f }

func jsonValue(t *testing.T, raw string) *jsonval.Value {
	t.Helper()
	v, err := jsonval.Parse([]byte(raw))
	require.NoError(t, err)
	return &v
}

func rawPatch(t *testing.T, raw string) map[string]json.RawMessage {
	t.Helper()
	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(raw), &m))
	return m
}

func assertKind(t *testing.T, err error, kind apperr.Kind) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, kind, apperr.KindOf(err), "error: %v", err)
}
