package revenue

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroadcastHookFiltersBySession(t *testing.T) {
	hook := NewBroadcastHook()
	defer hook.Close()

	all, cancelAll := hook.Subscribe()
	defer cancelAll()
	one, cancelOne := hook.SubscribeSession("a")
	defer cancelOne()
	assert.Equal(t, 2, hook.Subscribers())

	ctx := context.Background()
	require.NoError(t, hook.SessionUpdated(ctx, SessionEvent{SessionID: "b", Kind: "revenue.table.sort"}))
	require.NoError(t, hook.SessionUpdated(ctx, SessionEvent{SessionID: "a", Kind: "revenue.menu.toggle"}))

	assert.Equal(t, "b", (<-all).SessionID)
	assert.Equal(t, "a", (<-all).SessionID)
	event := <-one
	assert.Equal(t, "revenue.menu.toggle", event.Kind)
	assert.Empty(t, one)
}

func TestBroadcastHookDropsWhenSubscriberIsFull(t *testing.T) {
	hook := NewBroadcastHook()
	defer hook.Close()
	events, cancel := hook.Subscribe()
	defer cancel()

	for i := 0; i < subscriberBuffer+5; i++ {
		require.NoError(t, hook.SessionUpdated(context.Background(), SessionEvent{SessionID: "a"}))
	}
	assert.Len(t, events, subscriberBuffer)
}

func TestBroadcastHookCancelAndClose(t *testing.T) {
	hook := NewBroadcastHook()
	events, cancel := hook.Subscribe()
	cancel()
	cancel()
	_, ok := <-events
	assert.False(t, ok)
	assert.Zero(t, hook.Subscribers())

	open, _ := hook.Subscribe()
	hook.Close()
	_, ok = <-open
	assert.False(t, ok)

	late, lateCancel := hook.Subscribe()
	defer lateCancel()
	_, ok = <-late
	assert.False(t, ok)
	assert.NoError(t, hook.SessionUpdated(context.Background(), SessionEvent{SessionID: "a"}))
}

func TestBroadcastHookServeSSE(t *testing.T) {
	hook := NewBroadcastHook()
	defer hook.Close()
	server := httptest.NewServer(http.HandlerFunc(hook.ServeSSE))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL+"?session=a", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	require.Eventually(t, func() bool { return hook.Subscribers() == 1 }, time.Second, 5*time.Millisecond)
	require.NoError(t, hook.SessionUpdated(ctx, SessionEvent{SessionID: "b", Kind: "skipped"}))
	require.NoError(t, hook.SessionUpdated(ctx, SessionEvent{SessionID: "a", Kind: "revenue.forecast.tab"}))

	reader := bufio.NewReader(resp.Body)
	line, err := reader.ReadString('\n')
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(line, "data: "), line)

	var event SessionEvent
	require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &event))
	assert.Equal(t, "a", event.SessionID)
	assert.Equal(t, "revenue.forecast.tab", event.Kind)
}

func TestBroadcastHookServeWebSocket(t *testing.T) {
	hook := NewBroadcastHook()
	defer hook.Close()
	server := httptest.NewServer(http.HandlerFunc(hook.ServeWebSocket))
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "?session=a"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hook.Subscribers() == 1 }, time.Second, 5*time.Millisecond)
	require.NoError(t, hook.SessionUpdated(context.Background(), SessionEvent{
		SessionID: "a",
		Kind:      "revenue.gap.frame",
		Widgets:   []string{WidgetGap},
	}))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var event SessionEvent
	require.NoError(t, conn.ReadJSON(&event))
	assert.Equal(t, "revenue.gap.frame", event.Kind)
	assert.Equal(t, []string{WidgetGap}, event.Widgets)
}
