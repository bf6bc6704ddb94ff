// Package formatter renders records into bytes for the console and file
// sinks. Text produces single human-readable lines, JSON produces one JSON
// object per line. Both share a buffer pool and build output without
// reflection.
package formatter
