package mcp

import (
	"context"
	"os"
	"time"

	"github.com/narendrapsgim/rasa/internal/logging"
)

const watchInterval = 2 * time.Second

// WatchParent monitors for parent process death in a background goroutine
// and calls cancelFn when the parent PID changes, so a disconnected editor
// does not leave a zombie server behind.
//
// It must NOT read from stdin: the MCP SDK's StdioTransport owns stdin
// exclusively, and stealing bytes would corrupt the JSON-RPC stream.
// The goroutine exits when ctx is canceled or parent death is detected.
func WatchParent(ctx context.Context, cancelFn context.CancelFunc) {
	ppid := os.Getppid()
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-time.After(watchInterval):
				if os.Getppid() != ppid {
					logging.New("mcp").Warn("parent process died, shutting down",
						"was_pid", ppid)
					cancelFn()
					return
				}
			}
		}
	}()
}
