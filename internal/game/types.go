package game

import (
	"chosenoffset.com/lucid/internal/engine/camera"
	"chosenoffset.com/lucid/internal/render/texture"
)

const (
	// PlayerMaxHealth is the player's starting health.
	PlayerMaxHealth = 100
	// HitRadius is how close a projectile must pass to hit its target.
	HitRadius = 0.5
	// HurtFlash is how long the screen stays tinted after the player is hit.
	HurtFlash = 0.3
	// MessageDuration is how long on-screen messages last, in seconds.
	MessageDuration = 3.0
)

// Screen is the top-level mode the game is in.
type Screen int

const (
	ScreenMainMenu Screen = iota
	ScreenPlaying
	ScreenPaused
	ScreenGameOver
)

func (s Screen) String() string {
	switch s {
	case ScreenMainMenu:
		return "main_menu"
	case ScreenPlaying:
		return "playing"
	case ScreenPaused:
		return "paused"
	case ScreenGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Player is the state of the viewer that is not part of the camera.
type Player struct {
	Health    int
	MaxHealth int
	// Hurt counts down after taking damage, in seconds.
	Hurt float64
}

// Message represents an on-screen message that fades over time.
type Message struct {
	Text     string
	TimeLeft float64 // Seconds remaining
	MaxTime  float64 // Initial duration
}

// Input is one tick's worth of player intent, independent of the backend.
type Input struct {
	Forward     bool
	Back        bool
	StrafeLeft  bool
	StrafeRight bool
	TurnLeft    bool
	TurnRight   bool
	Fire        bool
	Pause       bool
	Confirm     bool
	Quit        bool
	// Turn is an extra rotation in radians, positive to the left (mouse look).
	Turn float64
}

// Moving reports whether any movement key is held.
func (in Input) Moving() bool {
	return in.Forward || in.Back || in.StrafeLeft || in.StrafeRight
}

// Stats are the running totals of a session.
type Stats struct {
	ShotsFired  int
	Kills       int
	KillsByKind map[string]int
	DamageTaken int
	Elapsed     float64
}

// Assets are the texture handles a session draws with.
type Assets struct {
	// Walls maps wall code N to Walls[N-1].
	Walls      []texture.ID
	WeaponIdle texture.ID
	WeaponFire texture.ID
	GunnerIdle texture.ID
	GunnerFire texture.ID
	BruteIdle  texture.ID
	Projectile texture.ID
}

// Options tune player movement.
type Options struct {
	MoveSpeed float64 // map units per second
	TurnSpeed float64 // radians per second
	// FootstepInterval is the minimum time between footstep sounds.
	FootstepInterval float64
	FOV              float64
}

// DefaultOptions returns the stock movement settings.
func DefaultOptions() Options {
	return Options{
		MoveSpeed:        2.5,
		TurnSpeed:        2.0,
		FootstepInterval: 0.5,
		FOV:              camera.DefaultFOV,
	}
}
