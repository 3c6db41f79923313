package tunnel

import (
	"bytes"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"

	"github.com/kevinburke/ssh_config"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/agent"
	"golang.org/x/crypto/ssh/knownhosts"

	"github.com/Mehak261124/AI-IDS/internal/errors"
)

// StrictHostKeyChecking controls host key verification. When true, host
// keys are verified against ~/.ssh/known_hosts. Disable only for
// throwaway lab setups.
var StrictHostKeyChecking = true

// settings holds the resolved SSH connection parameters for one host.
type settings struct {
	hostname     string
	port         string
	user         string
	identityFile string
}

func (s *settings) address() string {
	return net.JoinHostPort(s.hostname, s.port)
}

// resolveSettings parses the host string and layers in values from
// ~/.ssh/config. Explicit user@ and :port parts of the host string win
// over the config file.
func resolveSettings(host string) *settings {
	s := &settings{port: "22", user: currentUser()}

	if at := strings.Index(host, "@"); at != -1 {
		s.user = host[:at]
		host = host[at+1:]
	}

	if colon := strings.LastIndex(host, ":"); colon != -1 {
		port := host[colon+1:]
		if port != "" && strings.IndexFunc(port, func(r rune) bool { return r < '0' || r > '9' }) == -1 {
			s.port = port
			host = host[:colon]
		}
	}
	s.hostname = host

	cfg := loadSSHConfig()
	if cfg == nil {
		return s
	}

	if hostname, _ := cfg.Get(host, "HostName"); hostname != "" {
		s.hostname = hostname
	}
	if port, _ := cfg.Get(host, "Port"); port != "" {
		s.port = port
	}
	if user, _ := cfg.Get(host, "User"); user != "" {
		s.user = user
	}
	if identity, _ := cfg.Get(host, "IdentityFile"); identity != "" {
		s.identityFile = expandTilde(identity)
	}

	return s
}

// loadSSHConfig parses ~/.ssh/config, tolerating its absence. Content from
// the first Match directive onward is dropped; the ssh_config library
// can't parse Match blocks.
func loadSSHConfig() *ssh_config.Config {
	content, err := os.ReadFile(filepath.Join(homeDir(), ".ssh", "config"))
	if err != nil {
		return nil
	}

	lines := strings.Split(string(content), "\n")
	for i, line := range lines {
		if strings.HasPrefix(strings.ToLower(strings.TrimSpace(line)), "match ") {
			lines = lines[:i]
			break
		}
	}

	cfg, err := ssh_config.Decode(bytes.NewReader([]byte(strings.Join(lines, "\n"))))
	if err != nil {
		return nil
	}
	return cfg
}

// buildClientConfig assembles auth methods (agent first, then key files)
// and the host key policy.
func buildClientConfig(s *settings) (*ssh.ClientConfig, error) {
	var methods []ssh.AuthMethod

	if agentAuth := sshAgentAuth(); agentAuth != nil {
		methods = append(methods, agentAuth)
	}

	keyPaths := []string{
		s.identityFile,
		filepath.Join(homeDir(), ".ssh", "id_ed25519"),
		filepath.Join(homeDir(), ".ssh", "id_rsa"),
		filepath.Join(homeDir(), ".ssh", "id_ecdsa"),
	}
	seen := map[string]bool{}
	for _, path := range keyPaths {
		if path == "" || seen[path] {
			continue
		}
		seen[path] = true
		if auth := keyFileAuth(path); auth != nil {
			methods = append(methods, auth)
		}
	}

	if len(methods) == 0 {
		return nil, errors.New(errors.ErrTunnel,
			"No SSH auth methods available for the tunnel",
			"Load a key into the agent (ssh-add) or configure an IdentityFile for the host")
	}

	hostKeyCallback := ssh.InsecureIgnoreHostKey() //nolint:gosec // only when checking is explicitly disabled
	if StrictHostKeyChecking {
		callback, err := knownHostsCallback()
		if err != nil {
			return nil, errors.WrapWithCode(err, errors.ErrTunnel,
				"Couldn't load ~/.ssh/known_hosts",
				"Check the file exists and is readable")
		}
		hostKeyCallback = callback
	}

	return &ssh.ClientConfig{
		User:            s.user,
		Auth:            methods,
		HostKeyCallback: hostKeyCallback,
		Timeout:         DialTimeout,
	}, nil
}

// sshAgentAuth returns agent-backed auth when an agent is running and has
// keys loaded, else nil.
func sshAgentAuth() ssh.AuthMethod {
	socket := os.Getenv("SSH_AUTH_SOCK")
	if socket == "" {
		return nil
	}

	conn, err := net.Dial("unix", socket)
	if err != nil {
		return nil
	}
	client := agent.NewClient(conn)

	signers, err := client.Signers()
	if err != nil || len(signers) == 0 {
		conn.Close()
		return nil
	}
	return ssh.PublicKeysCallback(client.Signers)
}

// keyFileAuth loads an unencrypted private key file, returning nil when
// the file is missing or needs a passphrase.
func keyFileAuth(path string) ssh.AuthMethod {
	key, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	signer, err := ssh.ParsePrivateKey(key)
	if err != nil {
		return nil
	}
	return ssh.PublicKeys(signer)
}

// knownHostsCallback builds the host key verifier, creating an empty
// known_hosts when none exists so first-time setups don't error out.
func knownHostsCallback() (ssh.HostKeyCallback, error) {
	path := filepath.Join(homeDir(), ".ssh", "known_hosts")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, fmt.Errorf("create .ssh directory: %w", err)
		}
		if err := os.WriteFile(path, nil, 0o600); err != nil {
			return nil, fmt.Errorf("create known_hosts: %w", err)
		}
	}
	return knownhosts.New(path)
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return os.Getenv("HOME")
	}
	return home
}

func currentUser() string {
	if user := os.Getenv("USER"); user != "" {
		return user
	}
	return "root"
}

func expandTilde(path string) string {
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(homeDir(), path[2:])
	}
	return path
}
