package client

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"blueiris-cli/pkg/models"
)

// FetchAlerts queries the alert list for one camera, or for all cameras
// with models.CameraIndex. An unknown camera falls back to all cameras.
// The result is not cached.
func (c *BlueIrisClient) FetchAlerts(ctx context.Context, camera string) ([]models.Alert, error) {
	if err := c.ensureSession(ctx); err != nil {
		return nil, err
	}
	if !models.IsGroupCode(camera) && !c.IsValidCamera(ctx, camera) {
		camera = models.CameraIndex
	}

	result := c.Execute(ctx, "alertlist", map[string]interface{}{
		"camera": camera,
		"reset":  false,
	})
	if !result.OK() {
		return nil, fmt.Errorf("alertlist: %w", ErrCommandFailed)
	}

	alerts, err := decodeRecords[models.Alert](result.Data)
	if err != nil {
		c.logger.Error("failed to parse alertlist", zap.Error(err))
		return nil, fmt.Errorf("failed to parse alertlist: %w", err)
	}
	return alerts, nil
}

// UpdateAlertlist refreshes the cached alerts for all cameras.
func (c *BlueIrisClient) UpdateAlertlist(ctx context.Context) error {
	alerts, err := c.FetchAlerts(ctx, models.CameraIndex)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.alerts.set(alerts)
	c.mu.Unlock()
	return nil
}

// Alerts returns the cached alerts, fetching them on first use.
func (c *BlueIrisClient) Alerts(ctx context.Context) ([]models.Alert, error) {
	return load(c, &c.alerts, func() error { return c.UpdateAlertlist(ctx) })
}
