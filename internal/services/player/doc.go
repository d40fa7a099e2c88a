// Package player starts and stops the external preview player used during
// collect sessions. The player's output is discarded; the operator decides
// when to stop listening, so playback has no timeout of its own.
package player
