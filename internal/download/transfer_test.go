package download

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/nalgeon/be"
)

func TestTransfer_Success(t *testing.T) {
	payload := testPNG(t, 64, 64)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(payload)
	}))
	defer server.Close()

	tr := NewClient(server.Client(), 0).Start(context.Background(), server.URL+"/img.png")
	data, err := tr.Result()

	be.Err(t, err, nil)
	be.True(t, bytes.Equal(data, payload))
	be.Equal(t, tr.Progress(), 1.0)
}

func TestTransfer_ProgressFraction(t *testing.T) {
	payload := testPNG(t, 128, 128)
	half := len(payload) / 2
	release := make(chan struct{})

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", strconv.Itoa(len(payload)))
		w.Write(payload[:half])
		w.(http.Flusher).Flush()
		<-release
		w.Write(payload[half:])
	}))
	defer server.Close()
	defer close(release)

	tr := NewClient(server.Client(), 0).Start(context.Background(), server.URL)

	want := float64(half) / float64(len(payload))
	deadline := time.Now().Add(5 * time.Second)
	for tr.Progress() != want && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	be.Equal(t, tr.Progress(), want)

	select {
	case <-tr.Done():
		t.Fatal("transfer finished before the rest of the body was sent")
	default:
	}
}

func TestTransfer_ProgressUnknownLength(t *testing.T) {
	payload := testPNG(t, 128, 128)
	half := len(payload) / 2
	release := make(chan struct{})

	// no Content-Length: the body is sent chunked
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(payload[:half])
		w.(http.Flusher).Flush()
		<-release
		w.Write(payload[half:])
	}))
	defer server.Close()
	defer close(release)

	tr := NewClient(server.Client(), 0).Start(context.Background(), server.URL)

	deadline := time.Now().Add(5 * time.Second)
	for tr.Progress() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	be.Equal(t, tr.Progress(), UnknownLengthProgress)
}

func TestTransfer_UnexpectedStatus(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	_, err := NewClient(server.Client(), 0).Start(context.Background(), server.URL).Result()
	be.Err(t, err, ErrUnexpectedStatus)
	be.Err(t, err, "404 Not Found")
}

func TestTransfer_NotAnImage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write([]byte("<html>nope</html>"))
	}))
	defer server.Close()

	_, err := NewClient(server.Client(), 0).Start(context.Background(), server.URL).Result()
	be.Err(t, err, ErrUnknownFileType)
}

func TestTransfer_TooLarge(t *testing.T) {
	payload := testPNG(t, 64, 64)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(payload)
	}))
	defer server.Close()

	_, err := NewClient(server.Client(), 100).Start(context.Background(), server.URL).Result()
	be.Err(t, err, ErrImageTooLarge)
}

func TestTransfer_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	tr := NewClient(nil, 0).Start(context.Background(), url)
	_, err := tr.Result()
	be.Err(t, err)
	be.True(t, !errors.Is(err, ErrUnexpectedStatus))
}

func TestTransfer_InvalidURL(t *testing.T) {
	_, err := NewClient(nil, 0).Start(context.Background(), "http://bad host/x.png").Result()
	be.Err(t, err)
}
