// Package probe shells out to ffprobe to read container-level metadata from
// source recordings. Only format fields are requested; the collector and
// processor use the duration to bound segment timestamps.
package probe
