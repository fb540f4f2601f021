package network

import (
	"context"
	"fmt"

	protocol "birds/pkg/shared/network"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
)

// Watch connects to a spectator feed and calls fn for every event until
// ctx is done or the game closes the feed.
func Watch(ctx context.Context, url string, fn func(protocol.Event)) error {
	c, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		return fmt.Errorf("network: dial %s: %w", url, err)
	}
	defer c.CloseNow()

	for {
		var ev protocol.Event
		if err := wsjson.Read(ctx, c, &ev); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				return nil
			}
			return fmt.Errorf("network: read: %w", err)
		}
		fn(ev)
	}
}
