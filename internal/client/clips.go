package client

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"blueiris-cli/pkg/models"
)

// FetchClips queries the clip list for one camera, or for all cameras with
// models.CameraIndex. An unknown camera falls back to all cameras. The
// result is not cached.
func (c *BlueIrisClient) FetchClips(ctx context.Context, camera string) ([]models.Clip, error) {
	if err := c.ensureSession(ctx); err != nil {
		return nil, err
	}
	if !models.IsGroupCode(camera) && !c.IsValidCamera(ctx, camera) {
		camera = models.CameraIndex
	}

	result := c.Execute(ctx, "cliplist", map[string]interface{}{"camera": camera})
	if !result.OK() {
		return nil, fmt.Errorf("cliplist: %w", ErrCommandFailed)
	}

	clips, err := decodeRecords[models.Clip](result.Data)
	if err != nil {
		c.logger.Error("failed to parse cliplist", zap.Error(err))
		return nil, fmt.Errorf("failed to parse cliplist: %w", err)
	}
	return clips, nil
}

// UpdateCliplist refreshes the cached clips for all cameras.
func (c *BlueIrisClient) UpdateCliplist(ctx context.Context) error {
	clips, err := c.FetchClips(ctx, models.CameraIndex)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.clips.set(clips)
	c.mu.Unlock()
	return nil
}

// Clips returns the cached clips, fetching them on first use.
func (c *BlueIrisClient) Clips(ctx context.Context) ([]models.Clip, error) {
	return load(c, &c.clips, func() error { return c.UpdateCliplist(ctx) })
}
