package logstream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/linskybing/formbuilder-go/internal/domain/syslog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterMatch(t *testing.T) {
	e := syslog.Entry{Level: syslog.LevelError, Category: "FORM_BUILDER"}

	assert.True(t, Filter{}.Match(e))
	assert.True(t, Filter{Level: syslog.LevelError}.Match(e))
	assert.True(t, Filter{Category: "form_builder"}.Match(e))
	assert.False(t, Filter{Level: syslog.LevelInfo}.Match(e))
	assert.False(t, Filter{Category: "WIDGET_LIBRARY"}.Match(e))
}

func TestPublishWithoutSubscribers(t *testing.T) {
	h := NewHub(nil)
	h.Publish(syslog.Entry{ID: 1})
	assert.Equal(t, 0, h.Subscribers())
}

func TestPublishDropsWhenSubscriberIsFull(t *testing.T) {
	h := NewHub(nil)
	sub := h.subscribe(Filter{})
	defer h.unsubscribe(sub)

	for i := 0; i < sendBuffer+10; i++ {
		h.Publish(syslog.Entry{ID: uint(i)})
	}
	assert.Len(t, sub.send, sendBuffer)
}

func TestServeStreamsMatchingEntries(t *testing.T) {
	h := NewHub(nil)
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		h.Serve(context.Background(), conn, Filter{Level: syslog.LevelError})
	}))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return h.Subscribers() == 1 }, time.Second, 10*time.Millisecond)

	h.Publish(syslog.Entry{ID: 1, Level: syslog.LevelInfo, Message: "skip"})
	h.Publish(syslog.Entry{ID: 2, Level: syslog.LevelError, Message: "keep"})

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var batch []syslog.Entry
	require.NoError(t, json.Unmarshal(data, &batch))
	require.Len(t, batch, 1)
	assert.Equal(t, uint(2), batch[0].ID)

	conn.Close()
	assert.Eventually(t, func() bool { return h.Subscribers() == 0 }, 2*time.Second, 10*time.Millisecond)
}
