package client_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"blueiris-cli/internal/client"
	"blueiris-cli/pkg/models"
)

var _ = Describe("Cached accessors and commands", func() {
	var (
		ctx     context.Context
		server  *fakeServer
		logs    *observer.ObservedLogs
		subject *client.BlueIrisClient
	)

	BeforeEach(func() {
		ctx = context.Background()
		server = newFakeServer()

		var core zapcore.Core
		core, logs = observer.New(zapcore.InfoLevel)
		subject = client.New(client.ClientConfig{
			BaseURL:  server.URL,
			Username: testUser,
			Password: testPassword,
		}, client.WithLogger(zap.New(core)))
	})

	AfterEach(func() {
		server.Close()
	})

	It("logs in on first access", func() {
		_, err := subject.Status(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(subject.LoggedIn()).To(BeTrue())
		Expect(server.count("login")).To(Equal(2))
	})

	Describe("Cameras", func() {
		BeforeEach(func() {
			Expect(subject.Login(ctx)).To(Succeed())
		})

		It("maps camera codes to display names", func() {
			cameras, err := subject.Cameras(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(cameras).To(Equal(map[string]string{
				"Index":  "All cameras",
				"front":  "Front Door",
				"garage": "Garage",
			}))
		})

		It("keeps the full camera records", func() {
			configs, err := subject.CameraConfigs(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(configs).To(HaveLen(3))
			Expect(configs[0].IsGroup()).To(BeTrue())
			Expect(configs[1].Online).To(BeTrue())
			Expect(configs[1].FPS).To(BeNumerically("==", 15))
			Expect(configs[2].PTZ).To(BeTrue())
		})

		It("fetches the list only once until refreshed", func() {
			_, err := subject.Cameras(ctx)
			Expect(err).NotTo(HaveOccurred())
			_, err = subject.Cameras(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(server.count("camlist")).To(Equal(1))

			Expect(subject.UpdateCamlist(ctx)).To(Succeed())
			_, err = subject.Cameras(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(server.count("camlist")).To(Equal(2))
		})

		It("caches a legitimately empty list", func() {
			server.respond("camlist", map[string]interface{}{"result": "success", "data": []interface{}{}})

			cameras, err := subject.Cameras(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(cameras).To(BeEmpty())

			_, _ = subject.Cameras(ctx)
			Expect(server.count("camlist")).To(Equal(1))
		})

		It("fetches again after Invalidate", func() {
			_, err := subject.Cameras(ctx)
			Expect(err).NotTo(HaveOccurred())
			_, err = subject.Status(ctx)
			Expect(err).NotTo(HaveOccurred())

			subject.Invalidate()

			_, _ = subject.Cameras(ctx)
			_, _ = subject.Status(ctx)
			Expect(server.count("camlist")).To(Equal(2))
			Expect(server.count("status")).To(Equal(2))
		})
	})

	DescribeTable(
		"collections are fetched once per refresh cycle",
		func(cmd string, read func(*client.BlueIrisClient) error, refresh func(*client.BlueIrisClient) error) {
			Expect(subject.Login(ctx)).To(Succeed())
			server.respond(cmd, map[string]interface{}{"result": "success", "data": []interface{}{}})

			Expect(read(subject)).To(Succeed())
			Expect(read(subject)).To(Succeed())
			Expect(server.count(cmd)).To(Equal(1))

			Expect(refresh(subject)).To(Succeed())
			Expect(read(subject)).To(Succeed())
			Expect(server.count(cmd)).To(Equal(2))
		},
		Entry("alerts", "alertlist",
			func(c *client.BlueIrisClient) error { _, err := c.Alerts(context.Background()); return err },
			func(c *client.BlueIrisClient) error { return c.UpdateAlertlist(context.Background()) }),
		Entry("clips", "cliplist",
			func(c *client.BlueIrisClient) error { _, err := c.Clips(context.Background()); return err },
			func(c *client.BlueIrisClient) error { return c.UpdateCliplist(context.Background()) }),
		Entry("log", "log",
			func(c *client.BlueIrisClient) error { _, err := c.Log(context.Background()); return err },
			func(c *client.BlueIrisClient) error { return c.UpdateLog(context.Background()) }),
	)

	Describe("Alerts, clips and log", func() {
		BeforeEach(func() {
			Expect(subject.Login(ctx)).To(Succeed())
		})

		It("queries alerts for all cameras", func() {
			server.respond("alertlist", map[string]interface{}{
				"result": "success",
				"data": []map[string]interface{}{
					{"camera": "front", "path": "@1234.bvr", "date": 1700000000, "zones": "3"},
					{"camera": "garage", "path": "@1235.bvr", "date": 1700000100},
				},
			})

			alerts, err := subject.Alerts(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(alerts).To(HaveLen(2))
			Expect(alerts[0].Camera).To(Equal("front"))
			Expect(alerts[0].Date).To(Equal(int64(1700000000)))
			Expect(alerts[0].Zones).To(Equal(3))

			req := server.last("alertlist")
			Expect(req).To(HaveKeyWithValue("camera", models.CameraIndex))
			Expect(req).To(HaveKeyWithValue("reset", false))

			grouped := models.GroupAlertsByCamera(alerts)
			Expect(grouped).To(HaveKey("front"))
			Expect(grouped["garage"]).To(HaveLen(1))
		})

		DescribeTable(
			"falls back to all cameras for an unknown camera",
			func(cmd string, fetch func(*client.BlueIrisClient, string) error) {
				Expect(fetch(subject, "attic")).To(Succeed())
				Expect(server.last(cmd)).To(HaveKeyWithValue("camera", models.CameraIndex))
				Expect(logs.FilterMessage("invalid camera provided").Len()).To(Equal(1))

				Expect(fetch(subject, "front")).To(Succeed())
				Expect(server.last(cmd)).To(HaveKeyWithValue("camera", "front"))
			},
			Entry("alerts", "alertlist", func(c *client.BlueIrisClient, camera string) error {
				_, err := c.FetchAlerts(context.Background(), camera)
				return err
			}),
			Entry("clips", "cliplist", func(c *client.BlueIrisClient, camera string) error {
				_, err := c.FetchClips(context.Background(), camera)
				return err
			}),
		)

		It("queries clips for all cameras", func() {
			server.respond("cliplist", map[string]interface{}{
				"result": "success",
				"data": []map[string]interface{}{
					{"camera": "front", "path": "@99.bvr", "msec": 12000, "filesize": "12 MB"},
				},
			})

			clips, err := subject.Clips(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(clips).To(HaveLen(1))
			Expect(clips[0].Msec).To(Equal(int64(12000)))
			Expect(clips[0].FileSize).To(Equal("12 MB"))
			Expect(server.last("cliplist")).To(HaveKeyWithValue("camera", models.CameraIndex))
		})

		It("decodes log severities", func() {
			server.respond("log", map[string]interface{}{
				"result": "success",
				"data": []map[string]interface{}{
					{"date": 1700000000, "level": 2, "obj": "front", "msg": "Signal: network retry"},
					{"date": 1700000001, "level": "1", "obj": "System", "msg": "Low disk"},
				},
			})

			entries, err := subject.Log(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(entries).To(HaveLen(2))
			Expect(entries[0].Severity).To(Equal(models.SeverityError))
			Expect(entries[1].Severity).To(Equal(models.SeverityWarning))
			Expect(entries[1].Message).To(Equal("Low disk"))
		})

		It("does not cache a failed fetch", func() {
			server.respond("log", map[string]interface{}{"result": "fail"})

			_, err := subject.Log(ctx)
			Expect(errors.Is(err, client.ErrCommandFailed)).To(BeTrue())

			_, _ = subject.Log(ctx)
			Expect(server.count("log")).To(Equal(2))
		})
	})

	Describe("Status", func() {
		BeforeEach(func() {
			Expect(subject.Login(ctx)).To(Succeed())
		})

		It("decodes the snapshot", func() {
			status, err := subject.Status(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(status.Signal).To(Equal(models.SignalGreen))
			Expect(status.Profile).To(Equal(2))
			Expect(status.Lock).To(Equal(models.ScheduleRun))
			Expect(status.Schedule).To(Equal("Default"))
		})

		It("resolves the profile name", func() {
			Expect(subject.Profile(ctx)).To(Equal("Night"))
		})

		It("resolves profile -1 to Undefined", func() {
			server.respond("status", map[string]interface{}{
				"result": "success",
				"data":   map[string]interface{}{"profile": "-1"},
			})

			Expect(subject.Profile(ctx)).To(Equal(models.UndefinedProfile))
		})

		It("resolves an unknown profile index to Undefined", func() {
			server.respond("status", map[string]interface{}{
				"result": "success",
				"data":   map[string]interface{}{"profile": 9},
			})

			Expect(subject.Profile(ctx)).To(Equal(models.UndefinedProfile))
		})

		It("reports a read without a snapshot instead of a zero status", func() {
			server.respond("status", map[string]interface{}{"result": "success"})

			_, err := subject.Status(ctx)
			Expect(errors.Is(err, client.ErrNoData)).To(BeTrue())

			_, err = subject.Profile(ctx)
			Expect(errors.Is(err, client.ErrNoData)).To(BeTrue())
			Expect(logs.FilterMessage("status response contained no data").Len()).To(Equal(2))
		})

		It("accepts a change acknowledged without a snapshot", func() {
			server.respond("status", map[string]interface{}{"result": "success"})

			Expect(subject.SetSignal(ctx, models.SignalYellow)).To(Succeed())
		})

		It("fetches once until refreshed", func() {
			_, _ = subject.Status(ctx)
			_, _ = subject.Signal(ctx)
			Expect(server.count("status")).To(Equal(1))

			Expect(subject.UpdateStatus(ctx)).To(Succeed())
			Expect(server.count("status")).To(Equal(2))
		})
	})

	Describe("SetSignal", func() {
		BeforeEach(func() {
			Expect(subject.Login(ctx)).To(Succeed())
		})

		DescribeTable(
			"sends exactly one status command with the ordinal",
			func(signal models.Signal, ordinal float64) {
				Expect(subject.SetSignal(ctx, signal)).To(Succeed())

				Expect(server.count("status")).To(Equal(1))
				Expect(server.last("status")).To(HaveKeyWithValue("signal", ordinal))

				status, err := subject.Status(ctx)
				Expect(err).NotTo(HaveOccurred())
				Expect(status.Signal).To(Equal(signal))
				Expect(server.count("status")).To(Equal(1))
			},
			Entry("red", models.SignalRed, 0.0),
			Entry("green", models.SignalGreen, 1.0),
			Entry("yellow", models.SignalYellow, 2.0),
		)

		DescribeTable(
			"rejects signals outside the enumeration",
			func(signal models.Signal) {
				err := subject.SetSignal(ctx, signal)

				Expect(errors.Is(err, client.ErrInvalidArgument)).To(BeTrue())
				Expect(server.count("status")).To(Equal(0))
				Expect(logs.FilterMessage("invalid signal").Len()).To(Equal(1))
			},
			Entry("negative", models.Signal(-1)),
			Entry("too large", models.Signal(3)),
		)
	})

	Describe("Schedules and profiles", func() {
		BeforeEach(func() {
			Expect(subject.Login(ctx)).To(Succeed())
		})

		It("sets a known schedule", func() {
			Expect(subject.SetSchedule(ctx, "Vacation")).To(Succeed())
			Expect(server.last("status")).To(HaveKeyWithValue("schedule", "Vacation"))
		})

		It("rejects an unknown schedule", func() {
			err := subject.SetSchedule(ctx, "Weekend")

			Expect(errors.Is(err, client.ErrInvalidArgument)).To(BeTrue())
			Expect(server.count("status")).To(Equal(0))
			Expect(logs.FilterMessage("invalid schedule").Len()).To(Equal(1))
		})

		It("sets a known profile by index", func() {
			Expect(subject.SetProfile(ctx, "Day")).To(Succeed())
			Expect(server.last("status")).To(HaveKeyWithValue("profile", 1.0))
		})

		It("rejects an unknown profile", func() {
			err := subject.SetProfile(ctx, "Away")

			Expect(errors.Is(err, client.ErrInvalidArgument)).To(BeTrue())
			Expect(server.count("status")).To(Equal(0))
			Expect(logs.FilterMessage("invalid profile").Len()).To(Equal(1))
		})

		It("toggles the schedule hold", func() {
			Expect(subject.ToggleScheduleHold(ctx)).To(Succeed())
			Expect(server.last("status")).To(HaveKeyWithValue("profile", -1.0))
		})

		It("pauses the profile", func() {
			Expect(subject.Pause(ctx, models.Pause1Hour)).To(Succeed())
			Expect(server.last("status")).To(HaveKeyWithValue("pause", 3.0))
		})

		It("rejects an unknown pause setting", func() {
			err := subject.Pause(ctx, models.PauseConfig(7))

			Expect(errors.Is(err, client.ErrInvalidArgument)).To(BeTrue())
			Expect(server.count("status")).To(Equal(0))
		})
	})

	Describe("Camera commands", func() {
		BeforeEach(func() {
			Expect(subject.Login(ctx)).To(Succeed())
		})

		It("sends PTZ commands to a known camera", func() {
			Expect(subject.PTZ(ctx, "garage", models.PTZPreset(3))).To(Succeed())

			req := server.last("ptz")
			Expect(req).To(HaveKeyWithValue("camera", "garage"))
			Expect(req).To(HaveKeyWithValue("button", 103.0))
			Expect(req).To(HaveKeyWithValue("updown", 0.0))
		})

		It("rejects PTZ commands for an unknown camera", func() {
			err := subject.PTZ(ctx, "attic", models.PTZHome)

			Expect(errors.Is(err, client.ErrInvalidArgument)).To(BeTrue())
			Expect(server.count("ptz")).To(Equal(0))
			Expect(logs.FilterMessage("invalid camera provided").Len()).To(Equal(1))
		})

		It("rejects unknown PTZ buttons without contacting the server", func() {
			err := subject.PTZ(ctx, "garage", models.PTZCommand(42))

			Expect(errors.Is(err, client.ErrInvalidArgument)).To(BeTrue())
			Expect(server.count("ptz")).To(Equal(0))
			Expect(server.count("camlist")).To(Equal(0))
		})

		It("triggers a known camera", func() {
			Expect(subject.Trigger(ctx, "front")).To(Succeed())
			Expect(server.last("trigger")).To(HaveKeyWithValue("camera", "front"))
		})

		It("does not trigger an unknown camera", func() {
			Expect(subject.Trigger(ctx, "attic")).To(HaveOccurred())
			Expect(server.count("trigger")).To(Equal(0))
		})

		It("reports a command the server rejects", func() {
			server.respond("trigger", map[string]interface{}{"result": "fail"})

			err := subject.Trigger(ctx, "front")
			Expect(errors.Is(err, client.ErrCommandFailed)).To(BeTrue())
		})

		DescribeTable(
			"camconfig",
			func(call func(*client.BlueIrisClient) error, key string, value bool) {
				Expect(call(subject)).To(Succeed())

				req := server.last("camconfig")
				Expect(req).To(HaveKeyWithValue("camera", "front"))
				Expect(req).To(HaveKeyWithValue(key, value))
			},
			Entry("reset", func(c *client.BlueIrisClient) error { return c.CameraReset(context.Background(), "front") }, "reset", true),
			Entry("enable", func(c *client.BlueIrisClient) error { return c.CameraEnable(context.Background(), "front") }, "enable", true),
			Entry("disable", func(c *client.BlueIrisClient) error { return c.CameraDisable(context.Background(), "front") }, "enable", false),
		)
	})

	Describe("GetSnapshot", func() {
		It("downloads a frame with the session attached", func() {
			frame, err := subject.GetSnapshot(ctx, "front")
			Expect(err).NotTo(HaveOccurred())
			Expect(frame).To(Equal(jpegFrame))
		})

		It("refuses an unknown camera", func() {
			_, err := subject.GetSnapshot(ctx, "attic")
			Expect(errors.Is(err, client.ErrInvalidArgument)).To(BeTrue())
		})
	})

	Describe("Sysconfig", func() {
		It("reads the configuration as admin", func() {
			Expect(subject.Login(ctx)).To(Succeed())
			server.respond("sysconfig", map[string]interface{}{
				"result": "success",
				"data":   map[string]interface{}{"archive": true, "schedule": false},
			})

			cfg, err := subject.Sysconfig(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Archive).To(BeTrue())
			Expect(cfg.Schedule).To(BeFalse())
		})

		It("reports a read without data instead of a zero configuration", func() {
			Expect(subject.Login(ctx)).To(Succeed())
			server.respond("sysconfig", map[string]interface{}{"result": "success"})

			_, err := subject.Sysconfig(ctx)
			Expect(errors.Is(err, client.ErrNoData)).To(BeTrue())
		})

		It("only sends the settings given", func() {
			Expect(subject.Login(ctx)).To(Succeed())
			enabled := true

			Expect(subject.SetSysconfig(ctx, nil, &enabled)).To(Succeed())

			req := server.last("sysconfig")
			Expect(req).To(HaveKeyWithValue("schedule", true))
			Expect(req).NotTo(HaveKey("archive"))
		})

		It("is refused for non-admin users", func() {
			server.handle("login", func(req map[string]interface{}) reply {
				if req["session"] == nil {
					return reply{body: map[string]interface{}{"session": testSession}}
				}
				return reply{body: map[string]interface{}{
					"result": "success",
					"data":   map[string]interface{}{"system name": "Home", "admin": false},
				}}
			})
			Expect(subject.Login(ctx)).To(Succeed())

			err := subject.UpdateSysconfig(ctx)
			Expect(errors.Is(err, client.ErrPermission)).To(BeTrue())
			Expect(server.count("sysconfig")).To(Equal(0))

			Expect(subject.UpdateAllInformation(ctx)).To(Succeed())
			Expect(server.count("sysconfig")).To(Equal(0))
		})
	})
})
