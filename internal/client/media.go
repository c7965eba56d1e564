package client

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"go.uber.org/zap"
)

// GetSnapshot downloads the current JPEG frame of a camera.
func (c *BlueIrisClient) GetSnapshot(ctx context.Context, camera string) ([]byte, error) {
	if err := c.ensureSession(ctx); err != nil {
		return nil, err
	}
	if !c.IsValidCamera(ctx, camera) {
		return nil, fmt.Errorf("camera %q: %w", camera, ErrInvalidArgument)
	}

	c.mu.Lock()
	session := c.session
	c.mu.Unlock()

	resp, err := c.HTTP.R().
		SetContext(ctx).
		SetHeader("Accept", "image/jpeg").
		SetQueryParam("session", session).
		Get("/image/" + url.PathEscape(camera))
	if err != nil {
		c.logger.Error("snapshot request failed", zap.String("camera", camera), zap.Error(err))
		return nil, err
	}

	if !resp.IsSuccess() {
		return nil, fmt.Errorf("failed to get snapshot: %d %s", resp.StatusCode(), resp.Status())
	}
	if len(resp.Body()) == 0 {
		return nil, errors.New("response body is empty")
	}

	if c.Config.Debug {
		c.logger.Debug("received snapshot",
			zap.String("camera", camera),
			zap.String("contentType", resp.Header().Get("Content-Type")),
			zap.Int("size", len(resp.Body())))
	}
	return resp.Body(), nil
}
