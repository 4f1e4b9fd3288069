package download

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"
)

const bufSize = 32 * 1024

// UnknownLengthProgress is reported once bytes arrive for a response
// without Content-Length
const UnknownLengthProgress = 0.1

var (
	ErrUnexpectedStatus = errors.New("unexpected status")
	ErrImageTooLarge    = errors.New("image too large")
)

// Client starts image transfers
type Client struct {
	http     *http.Client
	maxBytes int64
}

// NewClient creates a client. Bodies over maxBytes are rejected; 0 means no limit.
func NewClient(httpClient *http.Client, maxBytes int64) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		http:     httpClient,
		maxBytes: maxBytes,
	}
}

// Transfer is a single GET running in the background
type Transfer struct {
	url   string
	read  atomic.Int64
	total atomic.Int64 // -1 while unknown
	done  chan struct{}
	data  []byte
	err   error
}

// Start issues the GET in a new goroutine and returns immediately
func (c *Client) Start(ctx context.Context, url string) *Transfer {
	t := &Transfer{
		url:  url,
		done: make(chan struct{}),
	}
	t.total.Store(-1)

	go func() {
		defer close(t.done)
		t.data, t.err = c.fetch(ctx, t)
	}()

	return t
}

// Done is closed once the transfer finished, successfully or not
func (t *Transfer) Done() <-chan struct{} {
	return t.done
}

// Progress returns the transfer fraction in [0, 1]. Without a known length it
// is 0 until the first bytes arrive and UnknownLengthProgress after that.
// It is 1 once the transfer is done.
func (t *Transfer) Progress() float64 {
	select {
	case <-t.done:
		return 1
	default:
	}
	read := t.read.Load()
	total := t.total.Load()
	if total <= 0 {
		if read > 0 {
			return UnknownLengthProgress
		}
		return 0
	}
	return min(float64(read)/float64(total), 1)
}

// Result waits for the transfer and returns the body or the transport error
func (t *Transfer) Result() ([]byte, error) {
	<-t.done
	return t.data, t.err
}

func (c *Client) fetch(ctx context.Context, t *Transfer) ([]byte, error) {
	log := slog.With("op", "fetch", "url", t.url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.url, nil)
	if err != nil {
		log.Debug("create request failed", "error", err)
		return nil, fmt.Errorf("invalid url: %w", err)
	}
	req.Header.Set("Accept", "image/*")

	resp, err := c.http.Do(req)
	if err != nil {
		log.Debug("request failed", "error", err)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Debug("unexpected status", "status", resp.StatusCode)
		return nil, fmt.Errorf("%w: %s", ErrUnexpectedStatus, resp.Status)
	}

	if resp.ContentLength > 0 {
		if c.maxBytes > 0 && resp.ContentLength > c.maxBytes {
			return nil, fmt.Errorf("%w: %d bytes", ErrImageTooLarge, resp.ContentLength)
		}
		t.total.Store(resp.ContentLength)
	}

	var body bytes.Buffer
	if resp.ContentLength > 0 {
		body.Grow(int(resp.ContentLength))
	}

	buf := make([]byte, bufSize)
	for {
		n, readErr := resp.Body.Read(buf)
		if n > 0 {
			body.Write(buf[:n])
			read := t.read.Add(int64(n))
			if c.maxBytes > 0 && read > c.maxBytes {
				return nil, fmt.Errorf("%w: over %d bytes", ErrImageTooLarge, c.maxBytes)
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			log.Debug("read failed", "error", readErr)
			return nil, readErr
		}
	}

	data := body.Bytes()
	fileType, err := getFileTypeBySignature(data[:min(magicLen, len(data))])
	if err != nil {
		log.Debug("blocked by real file type", "contentType", resp.Header.Get("Content-Type"))
		return nil, err
	}

	log.Debug("success", "bytes", len(data), "realType", fileType.MIMEType)
	return data, nil
}
