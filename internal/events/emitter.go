package events

import (
	"context"

	"github.com/wailsapp/wails/v2/pkg/runtime"
)

// Emit delivers an event to the frontend. It is a no-op until
// EnableRuntimeEmitter is called from the Wails startup hook.
var Emit = func(ctx context.Context, name string, payload any) {}

func EnableRuntimeEmitter() {
	Emit = func(ctx context.Context, name string, payload any) {
		if ctx == nil {
			return
		}
		runtime.EventsEmit(ctx, name, payload)
		if evt, ok := payload.(ChatEvent); ok {
			logChatEvent(ctx, evt)
		}
	}
}

func SetCustomEmitter(f func(ctx context.Context, name string, payload any)) {
	if f == nil {
		Emit = func(context.Context, string, any) {}
		return
	}
	Emit = f
}
