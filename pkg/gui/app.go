// Package gui puts a board.Board on the terminal with tview: the board view,
// the promotion overlay, the move input, the move table and the status bar.
package gui

import (
	"fmt"

	petname "github.com/dustinkirkland/golang-petname"
	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"github.com/notnil/chess"
	"github.com/rivo/tview"
	"go.uber.org/zap"

	"github.com/qnkhuat/tuichess/pkg/board"
)

const (
	pageGame      = "game"
	pagePromotion = "promotion"
	pageModal     = "modal"

	sideWidth = 28
)

// Options configures an App.
type Options struct {
	Theme       Theme
	Glyphs      GlyphSet
	Orientation board.Orientation
	Mouse       bool
	// NewRules returns the position every game, the first included, starts
	// from.
	NewRules func() (board.Rules, error)
	Log      *zap.SugaredLogger
}

// App is the whole terminal application.
type App struct {
	App       *tview.Application
	Pages     *tview.Pages
	Layout    *tview.Grid
	Board     *board.Board
	View      *BoardView
	Promotion *PromotionView
	Input     *MoveInput
	Moves     *MoveTable
	Status    *StatusView

	// Name is the petname of the current game, ID the uuid of the session.
	Name string
	ID   string

	opts  Options
	log   *zap.SugaredLogger
	msg   string
	modal *tview.Modal
}

func NewApp(opts Options) (*App, error) {
	if opts.Log == nil {
		opts.Log = zap.NewNop().Sugar()
	}
	if opts.Glyphs.CellWidth == 0 {
		opts.Glyphs = UnicodeGlyphs
	}
	r, err := opts.NewRules()
	if err != nil {
		return nil, err
	}

	a := &App{
		App:  tview.NewApplication(),
		ID:   uuid.NewString(),
		opts: opts,
	}
	a.log = opts.Log.With("session", a.ID)
	a.Board = board.NewBoard(r, opts.Orientation, a.log.Named("board"))
	a.View = NewBoardView(a.Board, opts.Theme, opts.Glyphs)
	a.Promotion = NewPromotionView(opts.Theme)
	a.Input = NewMoveInput(a.Board, opts.Theme)
	a.Moves = NewMoveTable(opts.Theme)
	a.Status = NewStatusView(opts.Theme)

	a.Board.
		SetMovePlayedFunc(a.movePlayed).
		SetGameOverFunc(a.gameOver).
		SetPromotionFunc(a.showPromotion)
	a.View.SetChangedFunc(a.refresh)
	a.Input.SetSubmittedFunc(a.submitted)
	a.Promotion.
		SetChosenFunc(a.choosePromotion).
		SetCancelledFunc(a.cancelPromotion)

	a.Layout = a.layout()
	a.Pages = tview.NewPages().
		AddPage(pageGame, a.Layout, true, true)
	a.View.SetInputCapture(a.boardKeys)
	a.App.SetInputCapture(a.globalKeys)
	a.App.SetMouseCapture(a.modalMouse)

	a.rename()
	a.refresh()
	return a, nil
}

func (a *App) layout() *tview.Grid {
	bw, bh := a.View.Size()
	a.View.SetBorder(true)

	newGameBtn := tview.NewButton(string(ActionNewGame)).SetSelectedFunc(a.confirmNewGame)
	flipBtn := tview.NewButton(string(ActionFlip)).SetSelectedFunc(a.Flip)
	exitBtn := tview.NewButton(string(ActionExit)).SetSelectedFunc(a.App.Stop)

	a.Status.SetBorder(true).SetTitle(" Status ").SetTitleAlign(tview.AlignLeft)

	side := tview.NewGrid().
		SetRows(1, 5, -1, 1).
		SetColumns(-1, -1, -1).
		SetGap(0, 1).
		AddItem(newGameBtn, 0, 0, 1, 1, 0, 0, false).
		AddItem(flipBtn, 0, 1, 1, 1, 0, 0, false).
		AddItem(exitBtn, 0, 2, 1, 1, 0, 0, false).
		AddItem(a.Status, 1, 0, 1, 3, 0, 0, false).
		AddItem(a.Moves, 2, 0, 1, 3, 0, 0, false).
		AddItem(a.Input, 3, 0, 1, 3, 0, 0, false)

	return tview.NewGrid().
		SetRows(-1, bh+2, -1).
		SetColumns(-1, bw+2, sideWidth, -1).
		AddItem(a.View, 1, 1, 1, 1, 0, 0, true).
		AddItem(side, 1, 2, 1, 1, 0, 0, false)
}

// Run starts the event loop and blocks until the user quits.
func (a *App) Run() error {
	return a.App.SetRoot(a.Pages, true).
		EnableMouse(a.opts.Mouse).
		SetFocus(a.View).
		Run()
}

// Flip turns the board around. A waiting promotion list moves with its
// destination square.
func (a *App) Flip() {
	a.Board.Flip()
	a.msg = ""
	a.log.Debugw("board flipped", "orientation", a.Board.Orientation().String())
	if p := a.Board.State().Pending; p != nil && a.Pages.HasPage(pagePromotion) {
		x, y, _, h := a.View.CellRect(p.To)
		a.Promotion.Present(*p, a.Board.Orientation(), x, y, h)
	}
	a.refresh()
}

// NewGame starts over from the configured position.
func (a *App) NewGame() error {
	r, err := a.opts.NewRules()
	if err != nil {
		return err
	}
	a.closePage(pagePromotion)
	a.Board.Reset(r)
	a.Moves.Reset()
	a.Input.SetText("")
	a.msg = ""
	a.rename()
	a.refresh()
	return nil
}

func (a *App) rename() {
	a.Name = petname.Generate(2, "-")
	a.View.SetTitle(fmt.Sprintf(" %s ", a.Name))
	a.log.Infow("new game", "name", a.Name)
}

func (a *App) refresh() {
	a.Status.Refresh(a.Board, a.msg)
}

func (a *App) movePlayed(ev board.MovePlayed) {
	history := a.Board.History()
	if len(history) > 0 {
		a.Moves.AddMove(history[len(history)-1])
	}
	a.msg = ""
	a.refresh()
}

func (a *App) gameOver(ev board.GameOver) {
	a.refresh()
	a.showModal(ev.Outcome.String(), []Action{ActionNewGame, ActionClose}, func(action Action) {
		if action == ActionNewGame {
			a.startNewGame()
		}
	})
}

func (a *App) confirmNewGame() {
	a.showModal(string(ActionNewGamePrompt), []Action{ActionNewGameAccept, ActionNewGameReject}, func(action Action) {
		if action == ActionNewGameAccept {
			a.startNewGame()
		}
	})
}

func (a *App) startNewGame() {
	if err := a.NewGame(); err != nil {
		a.log.Errorw("failed to start a new game", "error", err)
		a.msg = err.Error()
		a.refresh()
	}
}

func (a *App) submitted(text string, res board.InputResult) {
	switch res {
	case board.InputAccepted:
		return
	case board.InputInvalid:
		a.msg = fmt.Sprintf("not a move: %s", text)
	case board.InputIllegal:
		a.msg = fmt.Sprintf("illegal move: %s", text)
	case board.InputRejected:
		if a.Board.Finished() {
			a.msg = "the game is over"
		} else {
			a.msg = "choose a promotion piece first"
		}
	}
	a.refresh()
}

func (a *App) showPromotion(p board.PendingPromotion) {
	x, y, _, h := a.View.CellRect(p.To)
	a.Promotion.Present(p, a.Board.Orientation(), x, y, h)
	a.Pages.AddPage(pagePromotion, a.Promotion, true, true)
	a.App.SetFocus(a.Promotion)
	a.refresh()
}

func (a *App) choosePromotion(kind chess.PieceType) {
	a.closePage(pagePromotion)
	if err := a.Board.ChoosePromotion(kind); err != nil {
		a.log.Warnw("promotion choice dropped", "piece", kind.String(), "error", err)
	}
	a.refresh()
}

func (a *App) cancelPromotion() {
	a.closePage(pagePromotion)
	a.Board.CancelPromotion()
	a.refresh()
}

func (a *App) showModal(text string, actions []Action, done func(Action)) {
	modal := tview.NewModal().
		SetText(text).
		AddButtons(labels(actions...)).
		SetDoneFunc(func(_ int, label string) {
			a.closePage(pageModal)
			done(Action(label))
		})
	a.closePage(pageModal)
	a.modal = modal
	a.Pages.AddPage(pageModal, modal, false, true)
	a.App.SetFocus(modal)
}

func (a *App) closePage(name string) {
	if !a.Pages.HasPage(name) {
		return
	}
	if name == pageModal {
		a.modal = nil
	}
	a.Pages.RemovePage(name)
	a.App.SetFocus(a.View)
}

// modalMouse drops mouse events outside an open modal so the board below
// cannot be played.
func (a *App) modalMouse(event *tcell.EventMouse, action tview.MouseAction) (*tcell.EventMouse, tview.MouseAction) {
	if a.modal == nil || event == nil {
		return event, action
	}
	if !a.modal.InRect(event.Position()) {
		return nil, action
	}
	return event, action
}

// overlayShown reports whether a modal or the promotion list owns the input.
func (a *App) overlayShown() bool {
	return a.Pages.HasPage(pageModal) || a.Pages.HasPage(pagePromotion)
}

func (a *App) globalKeys(event *tcell.EventKey) *tcell.EventKey {
	if a.overlayShown() {
		return event
	}
	switch event.Key() {
	case tcell.KeyTab, tcell.KeyBacktab:
		if a.Input.HasFocus() {
			a.App.SetFocus(a.View)
		} else {
			a.App.SetFocus(a.Input)
		}
		return nil
	case tcell.KeyCtrlF:
		a.Flip()
		return nil
	case tcell.KeyCtrlN:
		a.confirmNewGame()
		return nil
	}
	return event
}

func (a *App) boardKeys(event *tcell.EventKey) *tcell.EventKey {
	if event.Key() != tcell.KeyRune {
		return event
	}
	switch event.Rune() {
	case 'f':
		a.Flip()
	case 'n':
		a.confirmNewGame()
	case 'q':
		a.App.Stop()
	case 'i', '/':
		a.App.SetFocus(a.Input)
	default:
		return event
	}
	return nil
}
