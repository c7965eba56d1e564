package client

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"blueiris-cli/pkg/models"
)

// UpdateStatus fetches a fresh status snapshot.
func (c *BlueIrisClient) UpdateStatus(ctx context.Context) error {
	return c.sendStatus(ctx, nil)
}

// Status returns the cached status snapshot, fetching it on first use.
func (c *BlueIrisClient) Status(ctx context.Context) (models.Status, error) {
	return load(c, &c.status, func() error { return c.UpdateStatus(ctx) })
}

// Signal returns the traffic-light state from the cached status.
func (c *BlueIrisClient) Signal(ctx context.Context) (models.Signal, error) {
	status, err := c.Status(ctx)
	if err != nil {
		return 0, err
	}
	return status.Signal, nil
}

// Profile resolves the active profile index to its name. An index of -1, or
// one the profile list does not cover, resolves to models.UndefinedProfile.
func (c *BlueIrisClient) Profile(ctx context.Context) (string, error) {
	status, err := c.Status(ctx)
	if err != nil {
		return "", err
	}

	info, _ := c.Info()
	return resolveProfile(c.logger, status.Profile, info.Profiles), nil
}

func resolveProfile(logger *zap.Logger, id int, profiles []string) string {
	if id == -1 {
		return models.UndefinedProfile
	}
	if id < 0 || id >= len(profiles) {
		logger.Warn("status reported an unknown profile",
			zap.Int("profile", id),
			zap.Int("known", len(profiles)))
		return models.UndefinedProfile
	}
	return profiles[id]
}

// SetSignal changes the traffic-light state.
func (c *BlueIrisClient) SetSignal(ctx context.Context, signal models.Signal) error {
	if !signal.Valid() {
		c.logger.Error("invalid signal", zap.Int("signal", int(signal)))
		return fmt.Errorf("signal %d: %w", int(signal), ErrInvalidArgument)
	}
	return c.sendStatus(ctx, map[string]interface{}{"signal": int(signal)})
}

// SetSchedule switches to the named schedule.
func (c *BlueIrisClient) SetSchedule(ctx context.Context, schedule string) error {
	if err := c.ensureSession(ctx); err != nil {
		return err
	}

	info, _ := c.Info()
	if indexOf(info.Schedules, schedule) < 0 {
		c.logger.Error("invalid schedule",
			zap.String("schedule", schedule),
			zap.Strings("valid", info.Schedules))
		return fmt.Errorf("schedule %q: %w", schedule, ErrInvalidArgument)
	}
	return c.sendStatus(ctx, map[string]interface{}{"schedule": schedule})
}

// SetProfile activates the named profile.
func (c *BlueIrisClient) SetProfile(ctx context.Context, profile string) error {
	if err := c.ensureSession(ctx); err != nil {
		return err
	}

	info, _ := c.Info()
	id := indexOf(info.Profiles, profile)
	if id < 0 {
		c.logger.Error("invalid profile",
			zap.String("profile", profile),
			zap.Strings("valid", info.Profiles))
		return fmt.Errorf("profile %q: %w", profile, ErrInvalidArgument)
	}
	return c.sendStatus(ctx, map[string]interface{}{"profile": id})
}

// ToggleScheduleHold flips the schedule between run and hold.
func (c *BlueIrisClient) ToggleScheduleHold(ctx context.Context) error {
	return c.sendStatus(ctx, map[string]interface{}{"profile": -1})
}

// Pause pauses or resumes the active profile.
func (c *BlueIrisClient) Pause(ctx context.Context, pause models.PauseConfig) error {
	if !pause.Valid() {
		c.logger.Error("invalid pause setting", zap.Int("pause", int(pause)))
		return fmt.Errorf("pause %d: %w", int(pause), ErrInvalidArgument)
	}
	return c.sendStatus(ctx, map[string]interface{}{"pause": int(pause)})
}

// sendStatus issues a status command and, when the server answers with a
// snapshot, replaces the cached one wholesale.
func (c *BlueIrisClient) sendStatus(ctx context.Context, params map[string]interface{}) error {
	if err := c.ensureSession(ctx); err != nil {
		return err
	}

	result := c.Execute(ctx, "status", params)
	if !result.OK() {
		return fmt.Errorf("status: %w", ErrCommandFailed)
	}
	if result.Kind != ResultData {
		// A change may be acknowledged without a snapshot; a plain read may not.
		if params == nil {
			c.logger.Error("status response contained no data")
			return fmt.Errorf("status: %w", ErrNoData)
		}
		return nil
	}

	var status models.Status
	if err := result.Decode(&status); err != nil {
		c.logger.Error("failed to parse status", zap.Error(err))
		return fmt.Errorf("failed to parse status: %w", err)
	}
	if c.Config.Debug {
		c.logger.Debug("status",
			zap.Stringer("signal", status.Signal),
			zap.Int("profile", status.Profile),
			zap.String("schedule", status.Schedule))
	}

	c.mu.Lock()
	c.status.set(status)
	c.mu.Unlock()
	return nil
}

func indexOf(list []string, v string) int {
	for i, item := range list {
		if item == v {
			return i
		}
	}
	return -1
}
