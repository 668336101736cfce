package archive

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/alexisbeaulieu97/themeable/internal/logger"
	"github.com/alexisbeaulieu97/themeable/internal/pathseg"
	apperrors "github.com/alexisbeaulieu97/themeable/pkg/errors"
)

const (
	zipSourceName  = "zip"
	zipRetryCount  = 1
	userAgent      = "themeable"
	maxArchiveSize = 256 << 20
)

var retryDelay = 250 * time.Millisecond

// ZipSource downloads "<BaseURL>/<version>.zip" over HTTP.
type ZipSource struct {
	BaseURL string
	Client  *http.Client
	Log     *logger.Logger
}

// NewZipSource creates a ZipSource with a client bounded by timeout.
func NewZipSource(baseURL string, timeout time.Duration, log *logger.Logger) *ZipSource {
	return &ZipSource{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: timeout},
		Log:     log,
	}
}

// Name identifies the source kind.
func (s *ZipSource) Name() string {
	return zipSourceName
}

// URL returns the archive location for version.
func (s *ZipSource) URL(version string) string {
	return strings.TrimRight(s.BaseURL, "/") + "/" + version + ".zip"
}

// Fetch downloads and indexes the archive for version.
func (s *ZipSource) Fetch(ctx context.Context, version string) (*Index, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	url := s.URL(version)
	log := s.Log.With("url", url)
	log.Info("downloading source archive")

	data, err := s.download(ctx, url)
	if err != nil {
		return nil, apperrors.NewFetchError(zipSourceName, version, err)
	}

	idx, err := ReadZip(data)
	if err != nil {
		return nil, apperrors.NewFetchError(zipSourceName, version, err)
	}
	log.WithFields(map[string]any{"files": idx.Len(), "bytes": len(data)}).Debug("archive indexed")
	return idx, nil
}

func (s *ZipSource) download(ctx context.Context, url string) ([]byte, error) {
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	for attempt := 0; attempt <= zipRetryCount; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("User-Agent", userAgent)

		resp, err := client.Do(req)
		if err != nil {
			if shouldRetry(err, 0, attempt) {
				s.Log.Warn("archive download failed, retrying")
				time.Sleep(retryDelay)
				continue
			}
			return nil, fmt.Errorf("download archive: %w", err)
		}

		if resp.StatusCode != http.StatusOK {
			status := resp.StatusCode
			statusText := resp.Status
			_ = resp.Body.Close()
			if shouldRetry(nil, status, attempt) {
				s.Log.Warn("archive download returned server error, retrying")
				time.Sleep(retryDelay)
				continue
			}
			return nil, fmt.Errorf("download archive: unexpected status %s", statusText)
		}

		data, err := io.ReadAll(io.LimitReader(resp.Body, maxArchiveSize+1))
		_ = resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("read archive body: %w", err)
		}
		if len(data) > maxArchiveSize {
			return nil, fmt.Errorf("archive exceeds %d bytes", maxArchiveSize)
		}
		return data, nil
	}

	return nil, errors.New("download archive: retry budget exhausted")
}

func shouldRetry(err error, statusCode int, attempt int) bool {
	if attempt >= zipRetryCount {
		return false
	}
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return false
		}
		var netErr net.Error
		return errors.As(err, &netErr)
	}
	return statusCode >= 500 && statusCode <= 599
}

// ReadZip indexes a zip archive. When every entry sits below one top-level
// directory, as in GitHub source archives, that directory is stripped.
func ReadZip(data []byte) (*Index, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open zip: %w", err)
	}

	files := make(map[string][]byte)
	for _, entry := range reader.File {
		if entry.FileInfo().IsDir() {
			continue
		}
		content, err := readZipEntry(entry)
		if err != nil {
			return nil, err
		}
		files[entry.Name] = content
	}

	return NewIndex(stripCommonRoot(files)), nil
}

func readZipEntry(entry *zip.File) ([]byte, error) {
	rc, err := entry.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", entry.Name, err)
	}
	defer rc.Close()

	content, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", entry.Name, err)
	}
	return content, nil
}

func stripCommonRoot(files map[string][]byte) map[string][]byte {
	root := ""
	for name := range files {
		p := pathseg.Parse(name)
		if p.Len() < 2 {
			return files
		}
		if root == "" {
			root = p.Segment(0)
			continue
		}
		if p.Segment(0) != root {
			return files
		}
	}
	if root == "" {
		return files
	}

	parent := pathseg.Parse(root)
	stripped := make(map[string][]byte, len(files))
	for name, content := range files {
		stripped[pathseg.Parse(name).Rel(parent).String()] = content
	}
	return stripped
}
