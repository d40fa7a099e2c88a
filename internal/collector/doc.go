// Package collector implements the interactive stage: it walks a directory
// of raw recordings, previews them through the configured player, prompts an
// operator for titles, speakers, and cut points, and appends one CSV row per
// confirmed segment. The CSV it produces is the processor's only input.
package collector
