package ipc

import (
	"log/slog"
	"net"
)

// Client delivers control messages to the running instance, one
// connection per message. Delivery is best effort: a dropped volume
// update or filter change is logged and swallowed, never escalated —
// control traffic must not crash or stall the event loop.
type Client struct {
	socketPath string
	logger     *slog.Logger
}

// NewClient returns a client for the control socket at path.
func NewClient(path string, logger *slog.Logger) *Client {
	return &Client{socketPath: path, logger: logger}
}

// Send connects, writes one encoded message, and closes. Failures are
// logged at Warn; the returned error exists for tests and callers are
// free to ignore it.
func (c *Client) Send(msg Message) error {
	data, err := msg.Encode()
	if err != nil {
		c.logger.Warn("ipc error", "err", err)
		return err
	}

	conn, err := net.Dial("unix", c.socketPath)
	if err != nil {
		c.logger.Warn("ipc error", "err", err)
		return err
	}
	defer conn.Close()

	if _, err := conn.Write(data); err != nil {
		c.logger.Warn("ipc error", "err", err)
		return err
	}
	return nil
}
