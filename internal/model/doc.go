package model

// Package model defines the data structures shared by the pipeline and the UI:
// the download job, its status enum and the size report produced by the
// compressor. Nothing here is persisted.
