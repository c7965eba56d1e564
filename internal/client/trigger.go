package client

import (
	"context"
	"fmt"
)

// Trigger fires a manual trigger on a camera, as if it had detected motion.
func (c *BlueIrisClient) Trigger(ctx context.Context, camera string) error {
	if !c.IsValidCamera(ctx, camera) {
		return fmt.Errorf("camera %q: %w", camera, ErrInvalidArgument)
	}

	result := c.Execute(ctx, "trigger", map[string]interface{}{"camera": camera})
	if !result.OK() {
		return fmt.Errorf("trigger %s: %w", camera, ErrCommandFailed)
	}
	return nil
}
