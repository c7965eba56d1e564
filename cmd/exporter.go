package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/avast/retry-go"
	"github.com/carlmjohnson/flowmatic"
	"github.com/kardianos/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"blueiris-cli/internal/client"
	"blueiris-cli/internal/config"
	"blueiris-cli/pkg/models"
)

// Variables to hold flag values
var (
	expListen     string
	serviceAction string // "install", "uninstall", "start", "stop"
)

// --- SERVICE WRAPPER ---

// program implements the kardianos/service interface
type program struct {
	server *http.Server
	api    *client.BlueIrisClient
	logger *zap.Logger
	cancel context.CancelFunc
}

func (p *program) Start(s service.Service) error {
	// Start should not block. Do the actual work async.
	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	go p.run(ctx)
	return nil
}

func (p *program) run(ctx context.Context) {
	// A failed first login is not fatal, the collector retries on every scrape.
	if err := p.api.Login(ctx); err != nil {
		p.logger.Warn("initial login failed", zap.Error(err))
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(NewBlueIrisCollector(ctx, p.api, p.logger))

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{
		ErrorLog: zap.NewStdLog(p.logger),
	})

	mux := http.NewServeMux()
	mux.Handle("/metrics", handler)

	p.server = &http.Server{
		Addr:    expListen,
		Handler: mux,
	}

	p.logger.Info("exporter listening", zap.String("addr", expListen))

	if err := p.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		p.logger.Error("http server error", zap.Error(err))
	}
}

func (p *program) Stop(s service.Service) error {
	p.logger.Info("stopping exporter")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if p.server != nil {
		if err := p.server.Shutdown(ctx); err != nil {
			p.logger.Warn("server forced to shutdown", zap.Error(err))
		}
	}
	if p.api.LoggedIn() {
		_ = p.api.Logout(ctx)
	}
	if p.cancel != nil {
		p.cancel()
	}
	return nil
}

// --- COLLECTOR ---

var (
	upDesc = prometheus.NewDesc(
		"blueiris_up", "Was the last scrape successful.", nil, nil,
	)
	scrapeDurationDesc = prometheus.NewDesc(
		"blueiris_scrape_duration_seconds", "Time taken to scrape the JSON interface.", nil, nil,
	)
	signalDesc = prometheus.NewDesc(
		"blueiris_signal", "Traffic-light signal (0=red, 1=green, 2=yellow).", nil, nil,
	)
	scheduleLockDesc = prometheus.NewDesc(
		"blueiris_schedule_lock", "Schedule lock (0=run, 1=temporary hold, 2=hold).", nil, nil,
	)
	profileDesc = prometheus.NewDesc(
		"blueiris_profile_active", "Active profile, 1 for the current one.", []string{"profile"}, nil,
	)
	camerasDesc = prometheus.NewDesc(
		"blueiris_cameras_total", "Cameras grouped by state.", []string{"state"}, nil,
	)
	cameraFPSDesc = prometheus.NewDesc(
		"blueiris_camera_fps", "Current frame rate per camera.", []string{"camera", "name"}, nil,
	)
	alertsDesc = prometheus.NewDesc(
		"blueiris_alerts_total", "Alerts per camera.", []string{"camera"}, nil,
	)
	clipsDesc = prometheus.NewDesc(
		"blueiris_clips_total", "Clips per camera.", []string{"camera"}, nil,
	)
	logEntriesDesc = prometheus.NewDesc(
		"blueiris_log_entries_total", "Server log entries by severity.", []string{"severity"}, nil,
	)
)

type BlueIrisCollector struct {
	ctx    context.Context
	client *client.BlueIrisClient
	logger *zap.Logger
	mu     sync.Mutex
}

func NewBlueIrisCollector(ctx context.Context, api *client.BlueIrisClient, logger *zap.Logger) *BlueIrisCollector {
	return &BlueIrisCollector{ctx: ctx, client: api, logger: logger}
}

func (c *BlueIrisCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- upDesc
	ch <- scrapeDurationDesc
	ch <- signalDesc
	ch <- scheduleLockDesc
	ch <- profileDesc
	ch <- camerasDesc
	ch <- cameraFPSDesc
	ch <- alertsDesc
	ch <- clipsDesc
	ch <- logEntriesDesc
}

func (c *BlueIrisCollector) Collect(ch chan<- prometheus.Metric) {
	c.mu.Lock()
	defer c.mu.Unlock()
	start := time.Now()

	success := 1.0
	if err := c.refresh(); err != nil {
		success = 0.0
		c.logger.Error("scrape failed", zap.Error(err))
	}

	c.collectStatus(ch)
	c.collectCameras(ch)
	c.collectRecords(ch)

	ch <- prometheus.MustNewConstMetric(upDesc, prometheus.GaugeValue, success)
	ch <- prometheus.MustNewConstMetric(scrapeDurationDesc, prometheus.GaugeValue, time.Since(start).Seconds())
}

// refresh reloads every collection in parallel. A stale session shows up as
// failed commands, so one failed round triggers a fresh login and a retry.
func (c *BlueIrisCollector) refresh() error {
	ctx := c.ctx
	return retry.Do(
		func() error {
			if !c.client.LoggedIn() {
				if err := c.client.Login(ctx); err != nil {
					return err
				}
			}
			return flowmatic.Do(
				func() error { return c.client.UpdateStatus(ctx) },
				func() error { return c.client.UpdateCamlist(ctx) },
				func() error { return c.client.UpdateAlertlist(ctx) },
				func() error { return c.client.UpdateCliplist(ctx) },
				func() error { return c.client.UpdateLog(ctx) },
			)
		},
		retry.Context(ctx),
		retry.Attempts(2),
		retry.Delay(time.Second),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return errors.Is(err, client.ErrCommandFailed) || errors.Is(err, client.ErrNotLoggedIn)
		}),
		retry.OnRetry(func(n uint, err error) {
			c.logger.Warn("scrape failed, logging in again", zap.Uint("attempt", n+1), zap.Error(err))
			if err := c.client.Login(ctx); err != nil {
				c.logger.Error("re-login failed", zap.Error(err))
			}
		}),
	)
}

func (c *BlueIrisCollector) collectStatus(ch chan<- prometheus.Metric) {
	status, err := c.client.Status(c.ctx)
	if err != nil {
		return
	}
	ch <- prometheus.MustNewConstMetric(signalDesc, prometheus.GaugeValue, float64(status.Signal))
	ch <- prometheus.MustNewConstMetric(scheduleLockDesc, prometheus.GaugeValue, float64(status.Lock))

	if profile, err := c.client.Profile(c.ctx); err == nil {
		ch <- prometheus.MustNewConstMetric(profileDesc, prometheus.GaugeValue, 1, profile)
	}
}

func (c *BlueIrisCollector) collectCameras(ch chan<- prometheus.Metric) {
	cameras, err := c.client.CameraConfigs(c.ctx)
	if err != nil {
		return
	}

	states := map[string]float64{"online": 0, "offline": 0, "disabled": 0}
	for _, cam := range cameras {
		if cam.IsGroup() {
			continue
		}
		switch {
		case !cam.Enabled:
			states["disabled"]++
		case cam.Online:
			states["online"]++
		default:
			states["offline"]++
		}
		ch <- prometheus.MustNewConstMetric(cameraFPSDesc, prometheus.GaugeValue, cam.FPS, cam.Code, cam.DisplayName)
	}
	for st, cnt := range states {
		ch <- prometheus.MustNewConstMetric(camerasDesc, prometheus.GaugeValue, cnt, st)
	}
}

func (c *BlueIrisCollector) collectRecords(ch chan<- prometheus.Metric) {
	if alerts, err := c.client.Alerts(c.ctx); err == nil {
		for camera, list := range models.GroupAlertsByCamera(alerts) {
			ch <- prometheus.MustNewConstMetric(alertsDesc, prometheus.GaugeValue, float64(len(list)), camera)
		}
	}

	if clips, err := c.client.Clips(c.ctx); err == nil {
		for camera, list := range models.GroupClipsByCamera(clips) {
			ch <- prometheus.MustNewConstMetric(clipsDesc, prometheus.GaugeValue, float64(len(list)), camera)
		}
	}

	if entries, err := c.client.Log(c.ctx); err == nil {
		counts := make(map[models.LogSeverity]float64)
		for _, e := range entries {
			counts[e.Severity]++
		}
		for severity, cnt := range counts {
			ch <- prometheus.MustNewConstMetric(logEntriesDesc, prometheus.GaugeValue, cnt, severity.String())
		}
	}
}

// --- COMMAND ---

var exporterCmd = &cobra.Command{
	Use:   "exporter",
	Short: "Start Prometheus Exporter service",
	Long: `Starts a long-running HTTP server that exposes Blue Iris metrics.
Uses the server saved by 'blueiris-cli login' (or BLUEIRIS_* environment
variables). Can be installed as a system service.`,
	Run: func(cmd *cobra.Command, args []string) {
		settings, err := config.Load()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		logger := newLogger(settings)
		defer func() { _ = logger.Sync() }()

		svcArgs := []string{"exporter", "--listen", expListen}
		if cfgFile != "" {
			svcArgs = append(svcArgs, "--config", cfgFile)
		}
		svcConfig := &service.Config{
			Name:        "blueiris-exporter",
			DisplayName: "Blue Iris Prometheus Exporter",
			Description: "Exposes Blue Iris status, camera and alert metrics to Prometheus",
			Arguments:   svcArgs,
		}

		prg := &program{
			api:    client.New(clientConfig(settings), client.WithLogger(logger)),
			logger: logger,
		}

		s, err := service.New(prg, svcConfig)
		if err != nil {
			logger.Fatal("failed to create service", zap.Error(err))
		}

		// Handle Service Control Actions (Install, Start, Stop, Uninstall)
		if serviceAction != "" {
			if serviceAction == "install" && settings.BaseURL == "" {
				logger.Fatal("no server configured, run 'blueiris-cli login --save-password' before installing the service")
			}

			if err := service.Control(s, serviceAction); err != nil {
				logger.Fatal("service action failed", zap.String("action", serviceAction), zap.Error(err))
			}
			fmt.Printf("Service action '%s' completed successfully.\n", serviceAction)
			return
		}

		if settings.BaseURL == "" {
			logger.Fatal("no server configured, run 'blueiris-cli login' first")
		}

		// Blocks until the service manager (or an interrupt) stops it.
		if err = s.Run(); err != nil {
			logger.Error("service exited", zap.Error(err))
		}
	},
}

func init() {
	rootCmd.AddCommand(exporterCmd)
	exporterCmd.Flags().StringVar(&expListen, "listen", ":9810", "Address to listen on")
	exporterCmd.Flags().StringVar(&serviceAction, "service", "", "Service action: install, uninstall, start, stop")
}
