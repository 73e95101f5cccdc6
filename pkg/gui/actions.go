package gui

// Action is a label shown on a button or modal.
type Action string

const (
	ActionNewGame       Action = "New Game"
	ActionFlip          Action = "Flip"
	ActionExit          Action = "Exit"
	ActionNewGamePrompt Action = "New Game?"
	ActionNewGameAccept Action = "Yes!"
	ActionNewGameReject Action = "No~"
	ActionClose         Action = "Close"
)

func labels(actions ...Action) []string {
	out := make([]string, len(actions))
	for i, a := range actions {
		out[i] = string(a)
	}
	return out
}
