package gui

import (
	"fmt"
	"strings"

	"github.com/rivo/tview"

	"github.com/qnkhuat/tuichess/pkg/board"
)

// StatusView shows whose turn it is, check, the result and the last
// message.
type StatusView struct {
	*tview.TextView
	theme Theme
}

func NewStatusView(theme Theme) *StatusView {
	s := &StatusView{
		TextView: tview.NewTextView(),
		theme:    theme,
	}
	s.SetDynamicColors(true).
		SetTextColor(theme.Status)
	return s
}

// Refresh rewrites the status from b's current state and msg.
func (s *StatusView) Refresh(b *board.Board, msg string) {
	var lines []string
	if o := b.Outcome(); o != nil {
		lines = append(lines, "[::b]"+o.String()+"[::-]")
	} else {
		line := fmt.Sprintf("%s to move", b.Rules().SideToMove().Name())
		if b.Rules().IsCheck() {
			line += " [red::b]Check![-::-]"
		}
		lines = append(lines, line)
	}
	switch st := b.State(); st.Phase {
	case board.PieceSelected:
		lines = append(lines, fmt.Sprintf("Selected %s, %d moves", st.Selected, st.Destinations.Len()))
	case board.AwaitingPromotion:
		lines = append(lines, fmt.Sprintf("Promote on %s", st.Pending.To))
	}
	if msg != "" {
		lines = append(lines, tview.Escape(msg))
	}
	s.SetText(strings.Join(lines, "\n"))
}
