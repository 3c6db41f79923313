// Package api is the HTTP client for the AI-IDS detection server. It wraps
// the capture-control and prediction endpoints behind typed methods and
// normalizes transport failures into structured errors.
package api

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Mehak261124/AI-IDS/internal/errors"
	"github.com/Mehak261124/AI-IDS/internal/logger"
	jsoniter "github.com/json-iterator/go"
)

// json handles the large all_flows payloads. Drop-in for encoding/json.
var json = jsoniter.ConfigCompatibleWithStandardLibrary

const userAgent = "aids-cli"

// allowedUploads are the file types the server's /predict endpoint accepts.
var allowedUploads = map[string]bool{
	".pcap":   true,
	".pcapng": true,
	".csv":    true,
}

// Options configures a Client.
type Options struct {
	// Timeout bounds status and control requests. Zero means 30s.
	Timeout time.Duration

	// Logger receives request traces. Nil means the env-gated default.
	Logger logger.Logger
}

// Client talks to one detection server.
type Client struct {
	base string
	http *http.Client

	// stream has no client timeout; uploads and downloads are bounded by
	// their request context instead.
	stream *http.Client

	log logger.Logger
}

// New creates a client for the server at base, e.g. http://127.0.0.1:8000.
// A trailing slash on base is tolerated.
func New(base string, opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = logger.NewEnvLogger("[api]")
	}

	return &Client{
		base:   strings.TrimRight(base, "/"),
		http:   &http.Client{Timeout: opts.Timeout},
		stream: &http.Client{},
		log:    opts.Logger,
	}
}

// Base returns the server base URL the client was built with.
func (c *Client) Base() string {
	return c.base
}

// ack is the body of the server's control-endpoint responses.
type ack struct {
	Status string `json:"status"`
}

// StartLive asks the server to begin a capture session. Starting an
// already-running session is a server-side no-op and not an error.
func (c *Client) StartLive(ctx context.Context) error {
	var a ack
	if err := c.do(ctx, http.MethodPost, "/start_live", &a); err != nil {
		return errors.WrapWithCode(err, errors.ErrAPI,
			"Couldn't start live capture",
			"Check the server is reachable: aids status")
	}
	c.log.Debug("start_live: %s", a.Status)
	return nil
}

// StopLive asks the server to end the capture session. The server keeps
// classifying the in-flight window briefly after acknowledging.
func (c *Client) StopLive(ctx context.Context) error {
	var a ack
	if err := c.do(ctx, http.MethodPost, "/stop_live", &a); err != nil {
		return errors.WrapWithCode(err, errors.ErrAPI,
			"Couldn't stop live capture",
			"Check the server is reachable: aids status")
	}
	c.log.Debug("stop_live: %s", a.Status)
	return nil
}

// LiveStatus fetches the current capture snapshot.
func (c *Client) LiveStatus(ctx context.Context) (LiveStatus, error) {
	var status LiveStatus
	if err := c.do(ctx, http.MethodGet, "/live_status", &status); err != nil {
		return LiveStatus{}, errors.Wrap(err, "Status fetch failed")
	}
	return status, nil
}

// Health checks whether the server is up.
func (c *Client) Health(ctx context.Context) (Health, error) {
	var h Health
	if err := c.do(ctx, http.MethodGet, "/health", &h); err != nil {
		return Health{}, errors.WrapWithCode(err, errors.ErrAPI,
			"Detection server is not responding",
			"Check the server address in .aids.yaml and that the API is running")
	}
	return h, nil
}

// Predict uploads a capture file for classification. Only .pcap, .pcapng,
// and .csv files are accepted. The upload is streamed, so large captures
// don't buffer in memory, and it runs until done or the context ends.
func (c *Client) Predict(ctx context.Context, path string) (*PredictResult, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !allowedUploads[ext] {
		return nil, errors.New(errors.ErrInput,
			fmt.Sprintf("Unsupported file type '%s'", ext),
			"Provide a .pcap, .pcapng, or .csv file")
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrInput,
			"Can't read "+path,
			"Check the file exists and is readable")
	}
	defer f.Close()

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		part, err := mw.CreateFormFile("file", filepath.Base(path))
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, f); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(mw.Close())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/predict", pr)
	if err != nil {
		return nil, errors.Wrap(err, "Couldn't build upload request")
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	c.log.Debug("POST /predict (%s)", filepath.Base(path))
	resp, err := c.stream.Do(req)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrAPI,
			"Upload failed",
			"Check the server is reachable: aids status")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.New(errors.ErrAPI,
			fmt.Sprintf("Server rejected %s", filepath.Base(path)),
			serverDetail(resp))
	}

	var result PredictResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, errors.Wrap(err, "Couldn't parse prediction response")
	}
	return &result, nil
}

// DownloadURL returns the URL serving the named result artifact.
func (c *Client) DownloadURL(name string) string {
	return c.base + "/download/" + url.PathEscape(name)
}

// Download fetches a result artifact into dir and returns the saved path
// and byte count. The file keeps its server-side name.
func (c *Client) Download(ctx context.Context, name, dir string) (string, int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.DownloadURL(name), nil)
	if err != nil {
		return "", 0, errors.Wrap(err, "Couldn't build download request")
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.stream.Do(req)
	if err != nil {
		return "", 0, errors.WrapWithCode(err, errors.ErrDownload,
			"Couldn't download "+name,
			"Check the server is reachable: aids status")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", 0, errors.New(errors.ErrDownload,
			fmt.Sprintf("'%s' isn't available on the server", name),
			"Results are written when a capture session completes - run 'aids live' first")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", 0, errors.New(errors.ErrDownload,
			fmt.Sprintf("Download of '%s' failed", name),
			serverDetail(resp))
	}

	// Keep the basename only so a hostile name can't escape dir
	target := filepath.Join(dir, filepath.Base(name))
	out, err := os.Create(target)
	if err != nil {
		return "", 0, errors.WrapWithCode(err, errors.ErrDownload,
			"Couldn't write "+target,
			"Check the download directory exists and is writable")
	}

	n, err := io.Copy(out, resp.Body)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(target)
		return "", 0, errors.WrapWithCode(err, errors.ErrDownload,
			"Download of "+name+" was interrupted",
			"Try again - partial files are removed")
	}

	c.log.Debug("downloaded %s (%d bytes)", target, n)
	return target, n, nil
}

// do issues a request and decodes the JSON response into out when out is
// non-nil. Non-2xx responses become errors carrying the server's detail.
func (c *Client) do(ctx context.Context, method, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	c.log.Debug("%s %s -> %d", method, path, resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, serverDetail(resp))
	}

	if out == nil {
		_, err = io.Copy(io.Discard, resp.Body)
		return err
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// serverDetail pulls the "detail" message FastAPI-style servers put in
// error bodies, falling back to the HTTP status text.
func serverDetail(resp *http.Response) string {
	var body struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&body); err == nil && body.Detail != "" {
		return body.Detail
	}
	return http.StatusText(resp.StatusCode)
}
