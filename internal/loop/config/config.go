// Package config centralizes all tunable flight parameters.
package config

import "time"

// MaxTermWidth caps the render area in terminal columns. The world is
// square, so the render area is at most MaxTermWidth x MaxTermWidth/2 cells.
const MaxTermWidth = 200

// Frame pacing
const (
	TargetFPS       = 60
	TargetFrameTime = time.Second / TargetFPS

	// MaxFrameDelta bounds the time fed to the physics after a stall
	// (suspended terminal, slow link) so the ship does not jump.
	MaxFrameDelta = 250 * time.Millisecond
)

// InactivityDisconnectUser is the default idle timeout for SSH sessions.
// A warning is shown once three quarters of it have passed.
const InactivityDisconnectUser = 120 * time.Second
