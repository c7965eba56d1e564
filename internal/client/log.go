package client

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"blueiris-cli/pkg/models"
)

// UpdateLog refreshes the cached server log.
func (c *BlueIrisClient) UpdateLog(ctx context.Context) error {
	if err := c.ensureSession(ctx); err != nil {
		return err
	}

	result := c.Execute(ctx, "log", nil)
	if !result.OK() {
		return fmt.Errorf("log: %w", ErrCommandFailed)
	}

	entries, err := decodeRecords[models.LogEntry](result.Data)
	if err != nil {
		c.logger.Error("failed to parse log", zap.Error(err))
		return fmt.Errorf("failed to parse log: %w", err)
	}

	c.mu.Lock()
	c.log.set(entries)
	c.mu.Unlock()
	return nil
}

// Log returns the cached log entries, fetching them on first use.
func (c *BlueIrisClient) Log(ctx context.Context) ([]models.LogEntry, error) {
	return load(c, &c.log, func() error { return c.UpdateLog(ctx) })
}
