package download

// Package download implements the download-compress-save pipeline: an HTTP
// transfer whose fraction is polled while it runs, re-encoding through the
// compress package, the file write and the status toasts shown by the UI.
