package teardown

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"golang.org/x/crypto/ssh"
)

// SSHConfig carries the connection settings for remote teardown.
type SSHConfig struct {
	User    string
	KeyPath string
	Port    int
}

// SSHRunner executes commands on nodes over SSH, keeping one pooled
// connection per node.
type SSHRunner struct {
	cfg SSHConfig

	mu    sync.Mutex
	conns map[string]*ssh.Client
}

// NewSSHRunner creates a runner for the given connection settings.
func NewSSHRunner(cfg SSHConfig) *SSHRunner {
	if cfg.Port == 0 {
		cfg.Port = 22
	}
	return &SSHRunner{cfg: cfg, conns: make(map[string]*ssh.Client)}
}

// Run executes cmd on node and returns its combined output.
func (r *SSHRunner) Run(ctx context.Context, node, cmd string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	conn, err := r.conn(node)
	if err != nil {
		return "", err
	}

	session, err := conn.NewSession()
	if err != nil {
		return "", fmt.Errorf("failed to create session on %s: %w", node, err)
	}
	defer session.Close()

	var out bytes.Buffer
	session.Stdout = &out
	session.Stderr = &out

	if err := session.Run(cmd); err != nil {
		slog.Debug("remote command failed", "node", node, "cmd", cmd, "output", out.String())
		return out.String(), fmt.Errorf("command failed on %s: %w", node, err)
	}
	return out.String(), nil
}

// Close shuts down all pooled connections.
func (r *SSHRunner) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for node, conn := range r.conns {
		_ = conn.Close()
		delete(r.conns, node)
	}
}

// conn returns the pooled connection for node, dialing and verifying a new
// one when the pooled connection has gone stale.
func (r *SSHRunner) conn(node string) (*ssh.Client, error) {
	r.mu.Lock()
	conn := r.conns[node]
	r.mu.Unlock()

	if conn != nil {
		session, err := conn.NewSession()
		if err == nil {
			session.Close()
			return conn, nil
		}
		_ = conn.Close()
		r.mu.Lock()
		delete(r.conns, node)
		r.mu.Unlock()
	}

	conn, err := r.dial(node)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.conns[node] = conn
	r.mu.Unlock()
	return conn, nil
}

func (r *SSHRunner) dial(node string) (*ssh.Client, error) {
	auth, err := publicKey(r.cfg.KeyPath)
	if err != nil {
		return nil, err
	}

	cfg := &ssh.ClientConfig{
		User:            r.cfg.User,
		Auth:            []ssh.AuthMethod{auth},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
	}

	conn, err := ssh.Dial("tcp", fmt.Sprintf("%s:%d", node, r.cfg.Port), cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to dial %s: %w", node, err)
	}
	return conn, nil
}

func publicKey(path string) (ssh.AuthMethod, error) {
	key, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read private key: %w", err)
	}
	signer, err := ssh.ParsePrivateKey(key)
	if err != nil {
		return nil, fmt.Errorf("unable to parse private key: %w", err)
	}
	return ssh.PublicKeys(signer), nil
}
