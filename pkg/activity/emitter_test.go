package activity

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingHook struct {
	events []Event
}

func (h *recordingHook) Notify(_ context.Context, evt Event) error {
	h.events = append(h.events, evt)
	return nil
}

func TestEmitterDefaultsChannelAndEmits(t *testing.T) {
	hook := &recordingHook{}
	em := NewEmitter(Hooks{hook}, Config{Enabled: true})
	require.True(t, em.Enabled())

	err := em.Emit(context.Background(), Event{
		Verb:       "revenue.table.sort",
		ObjectType: "session",
		ObjectID:   "s-1",
	})
	require.NoError(t, err)
	require.Len(t, hook.events, 1)
	assert.Equal(t, "dashboard", hook.events[0].Channel)
	assert.False(t, hook.events[0].OccurredAt.IsZero())
}

func TestEmitterKeepsExplicitChannel(t *testing.T) {
	hook := &recordingHook{}
	em := NewEmitter(Hooks{hook}, Config{Enabled: true, Channel: "revenue"})
	require.NoError(t, em.Emit(context.Background(), Event{Verb: "v", ObjectType: "o", Channel: "cli"}))
	assert.Equal(t, "cli", hook.events[0].Channel)

	require.NoError(t, em.Emit(context.Background(), Event{Verb: "v", ObjectType: "o"}))
	assert.Equal(t, "revenue", hook.events[1].Channel)
}

func TestEmitterDisabledWithoutHooks(t *testing.T) {
	em := NewEmitter(nil, Config{Enabled: true})
	assert.False(t, em.Enabled())
	assert.NoError(t, em.Emit(context.Background(), Event{Verb: "v", ObjectType: "o"}))

	var nilEmitter *Emitter
	assert.False(t, nilEmitter.Enabled())
}

func TestEmitterDisabledByConfig(t *testing.T) {
	hook := &recordingHook{}
	em := NewEmitter(Hooks{hook}, Config{})
	require.NoError(t, em.Emit(context.Background(), Event{Verb: "v", ObjectType: "o"}))
	assert.Empty(t, hook.events)
}

func TestHooksJoinErrors(t *testing.T) {
	boom := errors.New("boom")
	capture := &CaptureHook{}
	hooks := Hooks{
		HookFunc(func(context.Context, Event) error { return boom }),
		nil,
		capture,
	}
	err := hooks.Notify(context.Background(), Event{Verb: "v", ObjectType: "o"})
	assert.ErrorIs(t, err, boom)
	assert.Len(t, capture.Snapshot(), 1)
}
