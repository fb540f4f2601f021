package config

const (
	// Window
	Title = "Angry Birds"

	// Keybindings
	ActionSelectRed    = "SelectRed"
	ActionSelectYellow = "SelectYellow"
	ActionSelectBlue   = "SelectBlue"
	ActionBoost        = "Boost"
	ActionSplit        = "Split"
	ActionQuit         = "Quit"

	// Files
	LocalConfigPath = "configs/birds.yaml"
	DefaultDBPath   = "~/.birds/scores.db"

	// Spectator feed
	SpectatePath = "/ws"
)
