package platform

// Package platform contains OS and filesystem glue: destination folders,
// output file naming, writes, folder listings and revealing files in the
// system file manager.
