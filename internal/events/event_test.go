package events

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetCustomEmitter(t *testing.T) {
	t.Cleanup(func() { SetCustomEmitter(nil) })

	var names []string
	var payloads []any
	SetCustomEmitter(func(ctx context.Context, name string, payload any) {
		names = append(names, name)
		payloads = append(payloads, payload)
	})

	Emit(context.Background(), StoreChanged, NewStoreEvent("addMessage"))

	require.Len(t, names, 1)
	assert.Equal(t, StoreChanged, names[0])
	evt, ok := payloads[0].(StoreEvent)
	require.True(t, ok)
	assert.Equal(t, "addMessage", evt.Action)
	assert.NotEmpty(t, evt.ID)
}

func TestChatEventConstructors(t *testing.T) {
	assert.Equal(t, EventInfo, NewInfo("thinking", true).Type)
	assert.True(t, NewInfo("thinking", true).Processing)
	assert.Equal(t, EventWarn, NewWarn("slow", true).Type)
	assert.False(t, NewError("boom").Processing)
	assert.Equal(t, EventSuccess, NewSuccess("done").Type)
}
