package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/katalvlaran/pathviz/controller"
	"github.com/katalvlaran/pathviz/grid"
	"github.com/katalvlaran/pathviz/search"
)

const (
	gridTop       = 1 // row 0 holds the title
	cellWidth     = 2
	costCellWidth = 5
	speedStep     = 5
	weightStep    = 0.5
)

const helpLine = "space start/pause  c cancel  w clear walls  a algorithm  +/- weight  " +
	"d diagonal  x corners  f frontier  [ ] speed  g costs  q quit"

var (
	styleClear   = tcell.StyleDefault
	styleWall    = tcell.StyleDefault.Background(tcell.ColorGray).Foreground(tcell.ColorWhite)
	styleSource  = tcell.StyleDefault.Background(tcell.ColorBlue).Foreground(tcell.ColorWhite).Bold(true)
	styleGoal    = tcell.StyleDefault.Background(tcell.ColorRed).Foreground(tcell.ColorWhite).Bold(true)
	stylePath    = tcell.StyleDefault.Background(tcell.ColorYellow).Foreground(tcell.ColorBlack)
	styleSettled = tcell.StyleDefault.Background(tcell.ColorTeal).Foreground(tcell.ColorBlack)
	styleOpen    = tcell.StyleDefault.Background(tcell.ColorGreen).Foreground(tcell.ColorBlack)
	styleTitle   = tcell.StyleDefault.Reverse(true)
	styleError   = tcell.StyleDefault.Foreground(tcell.ColorRed)
)

// dragMode is decided by the first cell under a mouse press and kept until
// the button is released.
type dragMode int

const (
	dragNone dragMode = iota
	dragPaint
	dragErase
	dragSource
	dragGoal
)

// viewer owns the screen and translates input into controller commands.
// All methods run on the goroutine that calls run.
type viewer struct {
	screen tcell.Screen
	ctl    *controller.Controller
	logger *slog.Logger

	weight       float64 // remembered A* weight, kept while Dijkstra is selected
	showCosts    bool
	drag         dragMode
	message      string
	failed       bool // message is an error
	speedChanged bool
}

func newViewer(screen tcell.Screen, ctl *controller.Controller, weight float64, logger *slog.Logger) *viewer {
	if a := ctl.Settings().Algorithm; a.Kind() == search.KindWeightedAStar {
		weight = a.Weight()
	}
	return &viewer{
		screen: screen,
		ctl:    ctl,
		logger: logger,
		weight: weight,
	}
}

// run drives the controller at its configured pace until the user quits or
// ctx is done.
func (v *viewer) run(ctx context.Context) error {
	v.screen.EnableMouse(tcell.MouseDragEvents)
	v.screen.Clear()

	ticker := time.NewTicker(v.ctl.Settings().TickInterval())
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	quit := make(chan struct{})
	defer close(quit)
	go v.screen.ChannelEvents(events, quit)

	v.draw()
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !v.handleEvent(ev) {
				return nil
			}
			if v.speedChanged {
				ticker.Reset(v.ctl.Settings().TickInterval())
				v.speedChanged = false
			}
			v.draw()

		case <-ticker.C:
			if v.ctl.State() != controller.StateRunning {
				continue
			}
			v.tick()
			v.draw()
		}
	}
}

// tick advances the run by one action and reports the outcome when it ends.
func (v *viewer) tick() {
	res, err := v.ctl.Tick()
	if err != nil {
		v.logger.Error("Run aborted", slog.String("error", err.Error()))
		v.report(err, "")
		return
	}
	switch res.Action {
	case controller.ActionReconstruct:
		path, _ := v.ctl.Path()
		v.report(nil, fmt.Sprintf("path found: %d cells, cost %s", path.Len(), formatCost(path.Cost)))
	case controller.ActionExhausted:
		v.report(nil, "no path")
		_ = v.screen.Beep()
	}
}

// handleEvent applies one input event. It returns false when the user quits.
func (v *viewer) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return v.handleKey(ev)
	case *tcell.EventMouse:
		v.handleMouse(ev)
	case *tcell.EventResize:
		v.screen.Sync()
	}
	return true
}

func (v *viewer) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyRune:
	default:
		return true
	}

	switch ev.Rune() {
	case 'q':
		return false
	case ' ':
		v.startOrPause()
	case 'c':
		v.ctl.Cancel()
		v.report(nil, "cleared")
	case 'w':
		n, err := v.ctl.ClearWalls()
		v.report(err, fmt.Sprintf("%d walls cleared", n))
	case 'a':
		v.reconfigure(func(s *controller.Settings) {
			if s.Algorithm.Kind() == search.KindWeightedAStar {
				s.Algorithm = search.UniformCost()
			} else {
				s.Algorithm = search.WeightedAStar(v.weight)
			}
		})
	case '+', '=':
		v.adjustWeight(weightStep)
	case '-':
		v.adjustWeight(-weightStep)
	case 'd':
		v.reconfigure(func(s *controller.Settings) { s.AllowDiagonal = !s.AllowDiagonal })
	case 'x':
		if !v.ctl.Settings().AllowDiagonal {
			v.report(nil, "corner cutting needs diagonal moves")
			break
		}
		v.reconfigure(func(s *controller.Settings) { s.AllowCornerCutting = !s.AllowCornerCutting })
	case 'f':
		v.reconfigure(func(s *controller.Settings) {
			if s.Frontier == search.FrontierList {
				s.Frontier = search.FrontierHeap
			} else {
				s.Frontier = search.FrontierList
			}
		})
	case ']':
		v.adjustSpeed(speedStep)
	case '[':
		v.adjustSpeed(-speedStep)
	case 'g':
		v.showCosts = !v.showCosts
	}
	return true
}

// startOrPause starts a run from Idle or Finished and toggles pause otherwise.
func (v *viewer) startOrPause() {
	if v.ctl.State().IsActive() {
		err := v.ctl.PauseToggle()
		v.report(err, string(v.ctl.State()))
		return
	}
	err := v.ctl.Start()
	v.report(err, "running")
}

func (v *viewer) reconfigure(edit func(*controller.Settings)) {
	s := v.ctl.Settings()
	edit(&s)
	if err := v.ctl.Configure(s); err != nil {
		v.report(err, "")
		return
	}
	v.report(nil, describe(s))
}

func (v *viewer) adjustWeight(delta float64) {
	next := v.weight + delta
	if next < 0 || next > controller.MaxWeight {
		return
	}
	if v.ctl.Settings().Algorithm.Kind() != search.KindWeightedAStar {
		v.weight = next
		v.report(nil, fmt.Sprintf("A* weight %g (select A* with 'a')", next))
		return
	}
	s := v.ctl.Settings()
	s.Algorithm = search.WeightedAStar(next)
	if err := v.ctl.Configure(s); err != nil {
		v.report(err, "")
		return
	}
	v.weight = next
	v.report(nil, describe(s))
}

func (v *viewer) adjustSpeed(delta int) {
	sps := v.ctl.Settings().StepsPerSecond + delta
	if sps < controller.MinStepsPerSecond {
		sps = controller.MinStepsPerSecond
	}
	if sps > controller.MaxStepsPerSecond {
		sps = controller.MaxStepsPerSecond
	}
	if sps == v.ctl.Settings().StepsPerSecond {
		return
	}
	if err := v.ctl.SetStepsPerSecond(sps); err != nil {
		v.report(err, "")
		return
	}
	v.speedChanged = true
	v.report(nil, fmt.Sprintf("%d steps/s", sps))
}

// handleMouse paints, erases or drags endpoints while button 1 is held.
func (v *viewer) handleMouse(ev *tcell.EventMouse) {
	if ev.Buttons()&tcell.Button1 == 0 {
		v.drag = dragNone
		return
	}
	at, ok := v.cellAt(ev.Position())
	if !ok {
		return
	}
	cell, err := v.ctl.Cell(at)
	if err != nil {
		return
	}

	if v.drag == dragNone {
		switch cell.Kind {
		case grid.Source:
			v.drag = dragSource
		case grid.Goal:
			v.drag = dragGoal
		case grid.Blocked:
			v.drag = dragErase
		default:
			v.drag = dragPaint
		}
	}

	switch v.drag {
	case dragSource:
		err = v.ctl.PlaceSource(at)
	case dragGoal:
		err = v.ctl.PlaceGoal(at)
	case dragPaint:
		if cell.Kind == grid.Clear {
			err = v.ctl.SetCellKind(at, grid.Blocked)
		}
	case dragErase:
		if cell.Kind == grid.Blocked {
			err = v.ctl.SetCellKind(at, grid.Clear)
		}
	}

	// Dragging an endpoint across walls or the other endpoint just leaves it behind.
	if errors.Is(err, grid.ErrBlockedTarget) || errors.Is(err, controller.ErrOccupied) {
		return
	}
	if err != nil {
		v.report(err, "")
	}
}

// cellAt maps a screen position to a grid cell.
func (v *viewer) cellAt(x, y int) (grid.Coord, bool) {
	if x < 0 || y < gridTop {
		return grid.Coord{}, false
	}
	c := grid.Coord{X: x / v.cellWidth(), Y: y - gridTop}
	if c.X >= v.ctl.Width() || c.Y >= v.ctl.Height() {
		return grid.Coord{}, false
	}
	return c, true
}

func (v *viewer) cellWidth() int {
	if v.showCosts {
		return costCellWidth
	}
	return cellWidth
}

func (v *viewer) report(err error, ok string) {
	if err != nil {
		if errors.Is(err, controller.ErrRunActive) {
			v.message = "cancel the run (c) before editing"
		} else {
			v.message = err.Error()
		}
		v.failed = true
		return
	}
	v.message = ok
	v.failed = false
}

// draw repaints the whole screen from a fresh snapshot.
func (v *viewer) draw() {
	v.screen.Clear()
	snap := v.ctl.Snapshot()
	w := v.cellWidth()

	drawText(v.screen, 0, 0, fmt.Sprintf(" pathviz  %s ", describe(snap.Settings)), styleTitle)

	for y := 0; y < snap.Height; y++ {
		for x := 0; x < snap.Width; x++ {
			cv := snap.At(grid.Coord{X: x, Y: y})
			var text string
			switch {
			case v.showCosts && cv.Kind == grid.Clear:
				text = costLabel(cv, w)
			default:
				text = fmt.Sprintf("%-*c", w, cellGlyph(cv))
			}
			drawText(v.screen, x*w, gridTop+y, text, cellStyle(cv))
		}
	}

	row := gridTop + snap.Height + 1
	status := fmt.Sprintf("%s  steps %d  settled %d  open %d  %d steps/s",
		snap.State, snap.Steps, snap.Settled, snap.OpenLen, snap.Settings.StepsPerSecond)
	if snap.RunID != "" {
		status += "  run " + snap.RunID
	}
	drawText(v.screen, 0, row, status, tcell.StyleDefault)
	if v.message != "" {
		st := tcell.StyleDefault
		if v.failed {
			st = styleError
		}
		drawText(v.screen, 0, row+1, v.message, st)
	}
	drawText(v.screen, 0, row+2, helpLine, tcell.StyleDefault.Dim(true))

	v.screen.Show()
}

func cellStyle(cv controller.CellView) tcell.Style {
	switch {
	case cv.Kind == grid.Source:
		return styleSource
	case cv.Kind == grid.Goal:
		return styleGoal
	case cv.Kind == grid.Blocked:
		return styleWall
	case cv.OnPath:
		return stylePath
	case cv.Settled:
		return styleSettled
	case cv.Open:
		return styleOpen
	default:
		return styleClear
	}
}

// describe is the one-line settings summary used in the title and messages.
func describe(s controller.Settings) string {
	moves := "4-way"
	if s.AllowDiagonal {
		moves = "8-way"
		if s.AllowCornerCutting {
			moves += " corner-cutting"
		}
	}
	return fmt.Sprintf("%s  %s  %s frontier", s.Algorithm, moves, s.Frontier)
}

func drawText(s tcell.Screen, x, y int, text string, style tcell.Style) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}
