// Package tunnel opens an SSH local-forward to a sensor host, so the aids
// client can reach a detection API that only listens on the sensor's
// loopback. The API client then targets the tunnel's local address.
package tunnel

import (
	stderrors "errors"
	"fmt"
	"io"
	"net"
	"sync"
	"time"

	"golang.org/x/crypto/ssh"

	"github.com/Mehak261124/AI-IDS/internal/errors"
	"github.com/Mehak261124/AI-IDS/internal/logger"
)

// DialTimeout bounds the TCP connect to the SSH host.
const DialTimeout = 10 * time.Second

// Tunnel is one open local-forward. Connections accepted on the local
// listener are copied to Remote through the SSH connection.
type Tunnel struct {
	// Host is the SSH destination the tunnel was opened through.
	Host string

	// Remote is the forwarded address, as seen from the SSH host.
	Remote string

	client   *ssh.Client
	listener net.Listener
	log      logger.Logger

	closeOnce sync.Once
	closed    chan struct{}
}

// Open dials host over SSH and starts forwarding a local listener to
// remote. The host can be an ~/.ssh/config alias, a hostname, user@host,
// or host:port; connection settings are resolved from ~/.ssh/config the
// same way the ssh command would. Failure to establish the tunnel is an
// error, never a silent fallback to a direct connection.
func Open(host, remote string, log logger.Logger) (*Tunnel, error) {
	if log == nil {
		log = logger.NewEnvLogger("[tunnel]")
	}

	settings := resolveSettings(host)
	config, err := buildClientConfig(settings)
	if err != nil {
		return nil, err
	}

	address := settings.address()
	conn, err := net.DialTimeout("tcp", address, DialTimeout)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrTunnel,
			fmt.Sprintf("Can't reach the sensor host '%s' at %s", host, address),
			"Check the host is up and the tunnel.host setting in .aids.yaml")
	}

	sshConn, chans, reqs, err := ssh.NewClientConn(conn, address, config)
	if err != nil {
		conn.Close()
		suggestion := "Try connecting manually first: ssh " + host
		if isAuthError(err) {
			suggestion = "Auth failed. Check your keys are loaded: ssh-add -l"
		}
		return nil, errors.WrapWithCode(err, errors.ErrTunnel,
			fmt.Sprintf("SSH handshake with '%s' didn't go through", host),
			suggestion)
	}
	client := ssh.NewClient(sshConn, chans, reqs)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		client.Close()
		return nil, errors.WrapWithCode(err, errors.ErrTunnel,
			"Couldn't open a local port for the tunnel",
			"Check local firewall or port-exhaustion issues")
	}

	t := &Tunnel{
		Host:     host,
		Remote:   remote,
		client:   client,
		listener: listener,
		log:      log,
		closed:   make(chan struct{}),
	}

	log.Info("tunnel open: %s -> %s via %s", t.LocalAddr(), remote, host)
	go t.serve()
	return t, nil
}

// LocalAddr returns the local end of the tunnel, e.g. 127.0.0.1:53712.
func (t *Tunnel) LocalAddr() string {
	if t.listener == nil {
		return ""
	}
	return t.listener.Addr().String()
}

// URL returns the local end as an http base URL for the API client.
func (t *Tunnel) URL() string {
	return "http://" + t.LocalAddr()
}

// Close tears the tunnel down. Safe to call more than once; later calls
// are no-ops.
func (t *Tunnel) Close() error {
	var err error
	t.closeOnce.Do(func() {
		if t.closed != nil {
			close(t.closed)
		}
		if t.listener != nil {
			err = t.listener.Close()
		}
		if t.client != nil {
			if cerr := t.client.Close(); err == nil {
				err = cerr
			}
		}
	})
	return err
}

// serve accepts local connections and forwards each through the SSH
// connection until the tunnel closes.
func (t *Tunnel) serve() {
	for {
		local, err := t.listener.Accept()
		if err != nil {
			select {
			case <-t.closed:
				return
			default:
			}
			t.log.Warn("tunnel accept failed: %v", err)
			return
		}
		go t.forward(local)
	}
}

// forward copies one local connection to the remote address both ways.
func (t *Tunnel) forward(local net.Conn) {
	defer local.Close()

	remote, err := t.client.Dial("tcp", t.Remote)
	if err != nil {
		t.log.Warn("tunnel dial %s failed: %v", t.Remote, err)
		return
	}
	defer remote.Close()

	done := make(chan struct{}, 2)
	go func() {
		io.Copy(remote, local) //nolint:errcheck
		done <- struct{}{}
	}()
	go func() {
		io.Copy(local, remote) //nolint:errcheck
		done <- struct{}{}
	}()

	select {
	case <-done:
	case <-t.closed:
	}
}

// isAuthError reports whether err looks like an SSH authentication failure.
func isAuthError(err error) bool {
	if err == nil {
		return false
	}
	var authErr *ssh.ServerAuthError
	return stderrors.As(err, &authErr)
}
