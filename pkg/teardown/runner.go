package teardown

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	prvsnrerrors "github.com/balajiramachandran-seagate/cortx-prvsnr/pkg/errors"
)

// LocalNode is the node name addressing the host the tool runs on.
const LocalNode = "local"

// NodeRunner executes a shell command on a node.
type NodeRunner interface {
	Run(ctx context.Context, node, cmd string) (string, error)
}

// ServiceStopper is an optional NodeRunner upgrade for runners that can stop
// and disable services without shelling out to systemctl.
type ServiceStopper interface {
	StopServices(ctx context.Context, node string, services []string) error
}

// StepResult records the outcome of one step on one node.
type StepResult struct {
	Step   string
	Output string
	Err    error
}

// NodeReport collects step results for one node.
type NodeReport struct {
	Node  string
	Steps []StepResult
}

// Failed reports whether any step on this node failed.
func (r *NodeReport) Failed() bool {
	for _, s := range r.Steps {
		if s.Err != nil {
			return true
		}
	}
	return false
}

// Runner executes a teardown plan across nodes.
type Runner struct {
	runner   NodeRunner
	failFast bool
	limiter  *rate.Limiter
}

// Option configures a Runner.
type Option func(*Runner)

// WithNodeRunner substitutes the command runner.
func WithNodeRunner(r NodeRunner) Option {
	return func(t *Runner) {
		t.runner = r
	}
}

// WithFailFast makes a node stop at its first failed step. Other nodes keep
// going either way; teardown is per-node independent.
func WithFailFast(v bool) Option {
	return func(t *Runner) {
		t.failFast = v
	}
}

// WithDestructiveRate throttles destructive steps across all nodes to r per
// second.
func WithDestructiveRate(r rate.Limit, burst int) Option {
	return func(t *Runner) {
		t.limiter = rate.NewLimiter(r, burst)
	}
}

// New creates a teardown runner. Without options it executes locally with no
// throttle and runs every step regardless of failures.
func New(opts ...Option) *Runner {
	t := &Runner{
		runner: &LocalRunner{},
		// One destructive operation per second is plenty: each one is a
		// package removal or a storage wipe, not a hot path.
		limiter: rate.NewLimiter(1, 1),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Execute runs the plan on every node concurrently and returns one report
// per node, in the order the nodes were given. A failure on one node never
// interrupts the others; the aggregated error names every failed node.
func (t *Runner) Execute(ctx context.Context, nodes []string, plan []Step) ([]*NodeReport, error) {
	if len(nodes) == 0 {
		return nil, prvsnrerrors.New(prvsnrerrors.ErrCodeInvalidRequest, "no nodes to tear down")
	}

	reports := make([]*NodeReport, len(nodes))

	var g errgroup.Group
	for i, node := range nodes {
		g.Go(func() error {
			reports[i] = t.executeNode(ctx, node, plan)
			return nil
		})
	}
	_ = g.Wait()

	var failed []string
	for _, report := range reports {
		if report.Failed() {
			failed = append(failed, report.Node)
		}
	}
	if len(failed) > 0 {
		return reports, prvsnrerrors.Newf(prvsnrerrors.ErrCodeTeardown,
			"teardown failed on nodes: %s", strings.Join(failed, ", "))
	}
	return reports, nil
}

func (t *Runner) executeNode(ctx context.Context, node string, plan []Step) *NodeReport {
	report := &NodeReport{Node: node}

	for _, step := range plan {
		start := time.Now()
		result := t.executeStep(ctx, node, step)
		report.Steps = append(report.Steps, result)

		status := outcomeSuccess
		if result.Err != nil {
			status = outcomeError
		}
		stepTotal.WithLabelValues(step.Name, status).Inc()
		stepDuration.WithLabelValues(step.Name).Observe(time.Since(start).Seconds())

		if result.Err != nil {
			slog.Error("teardown step failed",
				"node", node, "step", step.Name, "error", result.Err.Error())
			if t.failFast {
				break
			}
			continue
		}
		slog.Debug("teardown step done", "node", node, "step", step.Name)
	}

	return report
}

func (t *Runner) executeStep(ctx context.Context, node string, step Step) StepResult {
	result := StepResult{Step: step.Name}

	if step.Destructive && t.limiter != nil {
		if err := t.limiter.Wait(ctx); err != nil {
			result.Err = err
			return result
		}
	}

	if len(step.Services) > 0 {
		if err := t.stopServices(ctx, node, step.Services); err != nil {
			result.Err = err
			return result
		}
	}

	var outputs []string
	for _, cmd := range step.Cmds {
		out, err := t.runner.Run(ctx, node, cmd)
		if out != "" {
			outputs = append(outputs, out)
		}
		if err != nil {
			result.Output = strings.Join(outputs, "\n")
			result.Err = err
			return result
		}
	}
	result.Output = strings.Join(outputs, "\n")
	return result
}

func (t *Runner) stopServices(ctx context.Context, node string, services []string) error {
	if stopper, ok := t.runner.(ServiceStopper); ok {
		return stopper.StopServices(ctx, node, services)
	}
	for _, svc := range services {
		// Stopping an inactive or absent unit is not a failure.
		cmd := fmt.Sprintf("systemctl stop %s; systemctl disable %s; true", svc, svc)
		if _, err := t.runner.Run(ctx, node, cmd); err != nil {
			return err
		}
	}
	return nil
}

// UnitManager stops and disables systemd units, satisfied by
// systemd.Manager.
type UnitManager interface {
	StopUnit(ctx context.Context, unit string) error
	DisableUnit(ctx context.Context, unit string) error
}

// LocalRunner executes teardown steps on the host itself. When a unit
// manager is attached, service steps go through the systemd API instead of
// shelling out.
type LocalRunner struct {
	Units UnitManager
}

// Run executes cmd through the local shell.
func (l *LocalRunner) Run(ctx context.Context, _ string, cmd string) (string, error) {
	out, err := exec.CommandContext(ctx, "sh", "-c", cmd).CombinedOutput()
	if err != nil {
		return string(out), fmt.Errorf("command %q failed: %w", cmd, err)
	}
	return string(out), nil
}

// StopServices implements ServiceStopper.
func (l *LocalRunner) StopServices(ctx context.Context, node string, services []string) error {
	if l.Units == nil {
		for _, svc := range services {
			cmd := fmt.Sprintf("systemctl stop %s; systemctl disable %s; true", svc, svc)
			if _, err := l.Run(ctx, node, cmd); err != nil {
				return err
			}
		}
		return nil
	}

	for _, svc := range services {
		if err := l.Units.StopUnit(ctx, svc); err != nil {
			return err
		}
		if err := l.Units.DisableUnit(ctx, svc); err != nil {
			return err
		}
	}
	return nil
}
