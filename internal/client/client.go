package client

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/motemen/go-loghttp"
	"go.uber.org/zap"

	"blueiris-cli/internal/auth"
	"blueiris-cli/pkg/models"
)

// All commands are posted to this path.
const jsonPath = "/json"

const (
	resultSuccess = "success"
	resultFail    = "fail"
)

type BlueIrisClient struct {
	HTTP   *resty.Client
	Config ClientConfig

	logger *zap.Logger

	mu       sync.Mutex
	session  string
	response string
	loggedIn bool
	info     models.SessionInfo

	status    cached[models.Status]
	cameras   cached[[]models.CameraOption]
	alerts    cached[[]models.Alert]
	clips     cached[[]models.Clip]
	log       cached[[]models.LogEntry]
	sysconfig cached[models.Sysconfig]
}

type ClientConfig struct {
	BaseURL  string // protocol://host[:port]
	Username string
	Password string
	Insecure bool          // skip TLS verification (self-signed certs)
	Timeout  time.Duration // zero means no timeout
	Debug    bool          // log every command, response and HTTP round trip
}

// BaseURL joins the parts of a server address the way the web UI expects.
func BaseURL(protocol, host, port string) string {
	if protocol == "" {
		protocol = "http"
	}
	host = strings.TrimRight(host, "/")
	if port != "" {
		host = fmt.Sprintf("%s:%s", host, port)
	}
	return fmt.Sprintf("%s://%s", protocol, host)
}

type Option func(c *BlueIrisClient)

func WithLogger(logger *zap.Logger) Option {
	return func(c *BlueIrisClient) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func New(cfg ClientConfig, opts ...Option) *BlueIrisClient {
	c := &BlueIrisClient{
		Config: cfg,
		logger: zap.NewNop(),
	}
	for _, o := range opts {
		o(c)
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.Insecure {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	var roundTripper http.RoundTripper = transport
	if cfg.Debug {
		roundTripper = &loghttp.Transport{
			Transport: transport,
			LogRequest: func(req *http.Request) {
				c.logger.Debug("http request",
					zap.String("method", req.Method),
					zap.String("url", req.URL.String()))
			},
			LogResponse: func(resp *http.Response) {
				c.logger.Debug("http response",
					zap.String("url", resp.Request.URL.String()),
					zap.Int("status", resp.StatusCode))
			},
		}
	}

	r := resty.New()
	r.SetTransport(roundTripper)
	r.SetBaseURL(strings.TrimRight(cfg.BaseURL, "/"))
	r.SetHeader("Content-Type", "application/json")
	r.SetHeader("Accept", "application/json")
	r.SetJSONMarshaler(jsonAPI.Marshal)
	r.SetJSONUnmarshaler(jsonAPI.Unmarshal)
	if cfg.Timeout > 0 {
		r.SetTimeout(cfg.Timeout)
	}

	c.HTTP = r
	return c
}

// Login performs the two step handshake. The first request obtains a session
// token, the second proves knowledge of the password by sending the hash of
// user, token and password. On failure the client stays unauthenticated and
// the error is returned for information; callers may keep using the client.
func (c *BlueIrisClient) Login(ctx context.Context) error {
	envelope, err := c.post(ctx, map[string]interface{}{"cmd": "login"})
	if err != nil {
		c.logger.Error("unsuccessful login request", zap.Error(err))
		return fmt.Errorf("login failed: %w", err)
	}

	var session string
	if raw, ok := envelope["session"]; ok {
		_ = jsonAPI.Unmarshal(raw, &session)
	}
	if session == "" {
		c.logger.Error("login response contained no session")
		return ErrNoSession
	}

	response := auth.GenerateResponse(c.Config.Username, session, c.Config.Password)
	if c.Config.Debug {
		c.logger.Debug("generated login response", zap.String("session", session))
	}

	c.mu.Lock()
	c.session = session
	c.response = response
	c.loggedIn = false
	c.mu.Unlock()

	result := c.Execute(ctx, "login", nil)
	if !result.OK() {
		c.logger.Error("login rejected",
			zap.String("user", c.Config.Username),
			zap.String("result", result.Status),
			zap.Stringer("kind", result.Kind))
		return fmt.Errorf("login rejected for user %q: %w", c.Config.Username, ErrNotLoggedIn)
	}

	info := models.SessionInfo{
		SystemName: models.UnknownName,
		Version:    models.UnknownName,
	}
	if result.Kind == ResultData {
		if err := decodeInto(result.Data, &info); err != nil {
			c.logger.Error("failed to parse login response", zap.Error(err))
			return fmt.Errorf("failed to parse login response: %w", err)
		}
	}

	c.mu.Lock()
	c.info = info
	c.loggedIn = true
	c.mu.Unlock()

	c.logger.Info("connected",
		zap.String("system", info.SystemName),
		zap.String("version", info.Version))
	if c.Config.Debug {
		c.logger.Debug("session info",
			zap.Strings("profiles", info.Profiles),
			zap.Strings("schedules", info.Schedules),
			zap.Bool("admin", info.Admin),
			zap.Bool("ptz", info.PTZAllowed),
			zap.Bool("clips", info.ClipsAllowed))
	}
	return nil
}

// Logout ends the session on the server. The token is kept but no longer
// considered authenticated.
func (c *BlueIrisClient) Logout(ctx context.Context) error {
	result := c.Execute(ctx, "logout", nil)

	c.mu.Lock()
	c.loggedIn = false
	c.mu.Unlock()

	if !result.OK() {
		return fmt.Errorf("logout: %w", ErrCommandFailed)
	}
	return nil
}

// LoggedIn reports whether the last login handshake succeeded.
func (c *BlueIrisClient) LoggedIn() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loggedIn
}

// Info returns the attributes captured by the last successful login.
func (c *BlueIrisClient) Info() (models.SessionInfo, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.info, c.loggedIn
}

func (c *BlueIrisClient) ensureSession(ctx context.Context) error {
	if c.LoggedIn() {
		return nil
	}
	return c.Login(ctx)
}

// Execute sends a command with the current session credentials. Transport
// failures are logged and reported as ResultEmpty, never as an error.
func (c *BlueIrisClient) Execute(ctx context.Context, command string, params map[string]interface{}) Result {
	c.mu.Lock()
	args := map[string]interface{}{
		"session":  c.session,
		"response": c.response,
		"cmd":      command,
	}
	c.mu.Unlock()
	for k, v := range params {
		args[k] = v
	}

	if c.Config.Debug {
		c.logger.Debug("sending command", zap.String("cmd", command), zap.Any("params", params))
	}

	envelope, err := c.post(ctx, args)
	if err != nil {
		c.logger.Error("unsuccessful response", zap.String("cmd", command), zap.Error(err))
		return Result{Kind: ResultEmpty}
	}

	result := parseEnvelope(envelope)
	if c.Config.Debug {
		c.logger.Debug("command response",
			zap.String("cmd", command),
			zap.String("result", result.Status),
			zap.Stringer("kind", result.Kind),
			zap.ByteString("data", result.Data))
	}
	if result.Kind == ResultError {
		c.logger.Error("no data in response", zap.String("cmd", command), zap.String("result", result.Status))
	}
	return result
}

func (c *BlueIrisClient) post(ctx context.Context, body map[string]interface{}) (map[string]json.RawMessage, error) {
	resp, err := c.HTTP.R().
		SetContext(ctx).
		SetBody(body).
		Post(jsonPath)
	if err != nil {
		return nil, err
	}

	if !resp.IsSuccess() {
		return nil, fmt.Errorf("unsuccessful response %d: %s", resp.StatusCode(), resp.String())
	}

	var envelope map[string]json.RawMessage
	if err := jsonAPI.Unmarshal(resp.Body(), &envelope); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return envelope, nil
}

func parseEnvelope(envelope map[string]json.RawMessage) Result {
	var status string
	if raw, ok := envelope["result"]; ok {
		_ = jsonAPI.Unmarshal(raw, &status)
	}

	if data, ok := envelope["data"]; ok {
		return Result{Kind: ResultData, Status: status, Data: data}
	}
	if status == resultSuccess {
		return Result{Kind: ResultNoContent, Status: status}
	}
	return Result{Kind: ResultError, Status: status}
}
