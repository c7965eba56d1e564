package client

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"blueiris-cli/pkg/models"
)

// UpdateCamlist fetches the camera list.
func (c *BlueIrisClient) UpdateCamlist(ctx context.Context) error {
	if err := c.ensureSession(ctx); err != nil {
		return err
	}

	result := c.Execute(ctx, "camlist", nil)
	if !result.OK() {
		return fmt.Errorf("camlist: %w", ErrCommandFailed)
	}

	cameras, err := decodeRecords[models.CameraOption](result.Data)
	if err != nil {
		c.logger.Error("failed to parse camlist", zap.Error(err))
		return fmt.Errorf("failed to parse camlist: %w", err)
	}

	c.mu.Lock()
	c.cameras.set(cameras)
	c.mu.Unlock()
	return nil
}

// CameraConfigs returns the cached camlist records.
func (c *BlueIrisClient) CameraConfigs(ctx context.Context) ([]models.CameraOption, error) {
	return load(c, &c.cameras, func() error { return c.UpdateCamlist(ctx) })
}

// Cameras maps each camera short code to its display name.
func (c *BlueIrisClient) Cameras(ctx context.Context) (map[string]string, error) {
	options, err := c.CameraConfigs(ctx)
	if err != nil {
		return nil, err
	}

	cameras := make(map[string]string, len(options))
	for _, cam := range options {
		if cam.Code == "" {
			continue
		}
		cameras[cam.Code] = cam.DisplayName
	}
	return cameras, nil
}

// IsValidCamera reports whether code is one of the known camera codes.
func (c *BlueIrisClient) IsValidCamera(ctx context.Context, code string) bool {
	cameras, err := c.Cameras(ctx)
	if err != nil {
		c.logger.Error("unable to validate camera", zap.String("camera", code), zap.Error(err))
		return false
	}
	if _, ok := cameras[code]; !ok {
		valid := make([]string, 0, len(cameras))
		for k := range cameras {
			valid = append(valid, k)
		}
		sort.Strings(valid)
		c.logger.Error("invalid camera provided",
			zap.String("camera", code),
			zap.Strings("valid", valid))
		return false
	}
	return true
}

// PTZ sends a pan/tilt/zoom or preset command to a camera.
func (c *BlueIrisClient) PTZ(ctx context.Context, camera string, command models.PTZCommand) error {
	if !command.Valid() {
		c.logger.Error("invalid PTZ command", zap.Int("button", int(command)))
		return fmt.Errorf("ptz button %d: %w", int(command), ErrInvalidArgument)
	}
	if !c.IsValidCamera(ctx, camera) {
		return fmt.Errorf("camera %q: %w", camera, ErrInvalidArgument)
	}

	result := c.Execute(ctx, "ptz", map[string]interface{}{
		"camera": camera,
		"button": int(command),
		"updown": 0,
	})
	if !result.OK() {
		return fmt.Errorf("ptz %s on %s: %w", command, camera, ErrCommandFailed)
	}
	return nil
}

// CameraReset restarts a camera's connection.
func (c *BlueIrisClient) CameraReset(ctx context.Context, camera string) error {
	return c.camconfig(ctx, camera, "reset", true)
}

// CameraEnable enables a camera.
func (c *BlueIrisClient) CameraEnable(ctx context.Context, camera string) error {
	return c.camconfig(ctx, camera, "enable", true)
}

// CameraDisable disables a camera.
func (c *BlueIrisClient) CameraDisable(ctx context.Context, camera string) error {
	return c.camconfig(ctx, camera, "enable", false)
}

func (c *BlueIrisClient) camconfig(ctx context.Context, camera, key string, value bool) error {
	if !c.IsValidCamera(ctx, camera) {
		return fmt.Errorf("camera %q: %w", camera, ErrInvalidArgument)
	}

	result := c.Execute(ctx, "camconfig", map[string]interface{}{
		"camera": camera,
		key:      value,
	})
	if !result.OK() {
		return fmt.Errorf("camconfig %s=%t on %s: %w", key, value, camera, ErrCommandFailed)
	}
	return nil
}
