// Package salt shells out to the salt command line to apply states and run
// execution-module functions on minions.
package salt

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/balajiramachandran-seagate/cortx-prvsnr/pkg/config"
	prvsnrerrors "github.com/balajiramachandran-seagate/cortx-prvsnr/pkg/errors"
)

// DefaultRunTimeout bounds a single salt invocation. State application can
// pull packages, so the bound is generous.
const DefaultRunTimeout = 10 * time.Minute

// Runner executes a command and returns its combined output. It exists so
// tests can substitute the salt binaries.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (string, error)
}

// ExecRunner runs commands through os/exec.
type ExecRunner struct{}

// Run executes the command and returns its combined output.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	return string(out), err
}

// Client applies salt states and runs salt functions against minion targets.
type Client struct {
	runner  Runner
	timeout time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithRunner substitutes the command runner.
func WithRunner(r Runner) Option {
	return func(c *Client) {
		c.runner = r
	}
}

// WithTimeout overrides the per-invocation timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// NewClient creates a salt client with production defaults.
func NewClient(opts ...Option) *Client {
	c := &Client{
		runner:  ExecRunner{},
		timeout: DefaultRunTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// LocalMinionID returns the identity of the minion on this host, falling back
// to the hostname when the minion id file is absent.
func LocalMinionID() (string, error) {
	data, err := os.ReadFile(config.MinionIDFile)
	if err == nil {
		if id := strings.TrimSpace(string(data)); id != "" {
			return id, nil
		}
	}
	host, err := os.Hostname()
	if err != nil {
		return "", fmt.Errorf("failed to determine local minion id: %w", err)
	}
	return host, nil
}

// ApplyState applies a salt state on the targeted minions. An empty target
// applies the state locally through salt-call.
func (c *Client) ApplyState(ctx context.Context, state, target string) error {
	jid := uuid.New().String()
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var (
		out string
		err error
	)
	if target == "" {
		out, err = c.runner.Run(ctx, "salt-call", "--local", "state.apply", state)
	} else {
		out, err = c.runner.Run(ctx, "salt", target, "state.apply", state)
	}

	stateApplyDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		stateApplyTotal.WithLabelValues(outcomeError).Inc()
		slog.Error("state apply failed",
			"state", state, "target", target, "jid", jid, "error", err.Error())
		return prvsnrerrors.Wrap(prvsnrerrors.ErrCodeSaltFailure,
			fmt.Sprintf("failed to apply state %q on %q: %s", state, target, firstLine(out)), err)
	}

	stateApplyTotal.WithLabelValues(outcomeSuccess).Inc()
	slog.Debug("state applied",
		"state", state, "target", target, "jid", jid,
		"duration", time.Since(start).String())
	return nil
}

// FunctionRun runs an execution-module function on the targeted minions and
// returns its raw output. An empty target runs locally through salt-call.
func (c *Client) FunctionRun(ctx context.Context, fun, target string, funArgs ...string) (string, error) {
	jid := uuid.New().String()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	args := []string{}
	name := "salt"
	if target == "" {
		name = "salt-call"
		args = append(args, "--local", "--out=newline_values_only", fun)
	} else {
		args = append(args, "--out=newline_values_only", target, fun)
	}
	args = append(args, funArgs...)

	out, err := c.runner.Run(ctx, name, args...)
	if err != nil {
		functionRunTotal.WithLabelValues(outcomeError).Inc()
		return "", prvsnrerrors.Wrap(prvsnrerrors.ErrCodeSaltFailure,
			fmt.Sprintf("function %q failed on %q: %s", fun, target, firstLine(out)), err)
	}

	functionRunTotal.WithLabelValues(outcomeSuccess).Inc()
	slog.Debug("function run", "fun", fun, "target", target, "jid", jid)
	return strings.TrimSpace(out), nil
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return s[:idx]
	}
	return s
}
