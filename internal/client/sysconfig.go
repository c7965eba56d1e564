package client

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"blueiris-cli/pkg/models"
)

func (c *BlueIrisClient) requireAdmin(ctx context.Context, command string) error {
	if err := c.ensureSession(ctx); err != nil {
		return err
	}
	if info, _ := c.Info(); !info.Admin {
		c.logger.Error("command requires admin access, current user is not admin",
			zap.String("cmd", command),
			zap.String("user", c.Config.Username))
		return fmt.Errorf("%s: %w", command, ErrPermission)
	}
	return nil
}

// UpdateSysconfig fetches the global configuration. Admin only.
func (c *BlueIrisClient) UpdateSysconfig(ctx context.Context) error {
	if err := c.requireAdmin(ctx, "sysconfig"); err != nil {
		return err
	}

	result := c.Execute(ctx, "sysconfig", nil)
	return c.storeSysconfig(result, true)
}

// Sysconfig returns the cached global configuration.
func (c *BlueIrisClient) Sysconfig(ctx context.Context) (models.Sysconfig, error) {
	return load(c, &c.sysconfig, func() error { return c.UpdateSysconfig(ctx) })
}

// SetSysconfig enables or disables global archiving and the global schedule.
// A nil value leaves the setting unchanged.
func (c *BlueIrisClient) SetSysconfig(ctx context.Context, archive, schedule *bool) error {
	if archive == nil && schedule == nil {
		c.logger.Error("sysconfig called without any setting")
		return fmt.Errorf("sysconfig: nothing to set: %w", ErrInvalidArgument)
	}
	if err := c.requireAdmin(ctx, "sysconfig"); err != nil {
		return err
	}

	params := make(map[string]interface{})
	if archive != nil {
		params["archive"] = *archive
	}
	if schedule != nil {
		params["schedule"] = *schedule
	}

	result := c.Execute(ctx, "sysconfig", params)
	return c.storeSysconfig(result, false)
}

// storeSysconfig caches the configuration carried by result. read marks a
// plain fetch, which must carry data.
func (c *BlueIrisClient) storeSysconfig(result Result, read bool) error {
	if !result.OK() {
		return fmt.Errorf("sysconfig: %w", ErrCommandFailed)
	}
	if result.Kind != ResultData {
		if read {
			c.logger.Error("sysconfig response contained no data")
			return fmt.Errorf("sysconfig: %w", ErrNoData)
		}
		return nil
	}

	var sysconfig models.Sysconfig
	if err := result.Decode(&sysconfig); err != nil {
		c.logger.Error("failed to parse sysconfig", zap.Error(err))
		return fmt.Errorf("failed to parse sysconfig: %w", err)
	}

	c.mu.Lock()
	c.sysconfig.set(sysconfig)
	c.mu.Unlock()
	return nil
}

// UpdateAllInformation refreshes every cached collection the current user
// may read. Sysconfig is skipped for non-admin users.
func (c *BlueIrisClient) UpdateAllInformation(ctx context.Context) error {
	if err := c.ensureSession(ctx); err != nil {
		return err
	}

	errs := []error{
		c.UpdateStatus(ctx),
		c.UpdateCamlist(ctx),
		c.UpdateCliplist(ctx),
		c.UpdateAlertlist(ctx),
		c.UpdateLog(ctx),
	}
	if info, _ := c.Info(); info.Admin {
		errs = append(errs, c.UpdateSysconfig(ctx))
	}
	return errors.Join(errs...)
}
