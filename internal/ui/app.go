// Package ui provides the terminal presentation layer. It consumes view
// models produced on the task loop and never reads the stores directly.
package ui

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/polyscope/dashboard/internal/control"
	"github.com/polyscope/dashboard/internal/runtime"
	"github.com/polyscope/dashboard/internal/store"
	"github.com/polyscope/dashboard/internal/view"
)

// Page names.
const (
	PageHFT     = "hft"
	PageInsider = "insider"
)

// App is the main TUI application with one page per dashboard module.
type App struct {
	app    *tview.Application
	pages  *tview.Pages
	notice *tview.TextView

	hft     *HFTPage
	insider *InsiderPage

	stores     *store.Stores
	loader     *control.Loader
	dispatcher *control.Dispatcher
	loop       *runtime.Loop

	active atomic.Value // current page name
	ctx    context.Context
	cancel context.CancelFunc
}

// NewApp creates the TUI application.
func NewApp(stores *store.Stores, loader *control.Loader, dispatcher *control.Dispatcher, loop *runtime.Loop) *App {
	ctx, cancel := context.WithCancel(context.Background())

	a := &App{
		app:        tview.NewApplication(),
		pages:      tview.NewPages(),
		stores:     stores,
		loader:     loader,
		dispatcher: dispatcher,
		loop:       loop,
		ctx:        ctx,
		cancel:     cancel,
	}
	a.active.Store(PageHFT)

	a.hft = NewHFTPage(a)
	a.insider = NewInsiderPage(a)

	a.notice = tview.NewTextView().SetDynamicColors(true)
	a.notice.SetBorder(true).SetTitle(" Messages ")

	a.pages.AddPage(PageHFT, a.hft.Root(), true, true)
	a.pages.AddPage(PageInsider, a.insider.Root(), true, false)

	layout := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(a.pages, 0, 1, true).
		AddItem(a.notice, 3, 0, false)

	a.app.SetRoot(layout, true)
	a.setupKeyboard()

	return a
}

// setupKeyboard configures global shortcuts.
func (a *App) setupKeyboard() {
	a.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyCtrlC:
			a.Stop()
			return nil
		case tcell.KeyRune:
			switch event.Rune() {
			case 'q', 'Q':
				a.Stop()
				return nil
			case '1':
				a.switchTo(PageHFT)
				return nil
			case '2':
				a.switchTo(PageInsider)
				return nil
			case 'R':
				a.reloadActive()
				return nil
			}
		}
		return event
	})
}

// switchTo activates a page and triggers its module load.
func (a *App) switchTo(page string) {
	a.active.Store(page)
	a.pages.SwitchToPage(page)
	a.reloadActive()
}

// reloadActive refetches every domain of the visible module.
func (a *App) reloadActive() {
	switch a.ActivePage() {
	case PageHFT:
		a.loader.LoadHFTModule(a.ctx)
	case PageInsider:
		a.loader.LoadInsiderModule(a.ctx)
	}
}

// ActivePage returns the currently visible page name. Safe from any
// goroutine; the pollers use it as their visibility gate.
func (a *App) ActivePage() string {
	return a.active.Load().(string)
}

// Run starts the TUI (blocking).
func (a *App) Run() error {
	if err := a.app.Run(); err != nil {
		return fmt.Errorf("app run failed: %w", err)
	}
	return nil
}

// Stop gracefully stops the application.
func (a *App) Stop() {
	a.cancel()
	a.app.Stop()
}

// Render projects the changed domain into a view model and queues the
// widget update. Must be called on the task loop so the store read is
// serialized with mutations; the queued closure touches widgets only.
func (a *App) Render(domain store.Domain) {
	switch domain {
	case store.DomainHFTStats:
		model := view.ScannerStatus(a.stores.HFTStats.Get())
		a.app.QueueUpdateDraw(func() { a.hft.ApplyStatus(model) })
	case store.DomainWallets:
		model := view.Wallets(a.stores.Wallets.List())
		a.app.QueueUpdateDraw(func() { a.hft.ApplyWallets(model) })
	case store.DomainMarkets:
		model := view.Markets(a.stores.Markets.List())
		a.app.QueueUpdateDraw(func() { a.hft.ApplyMarkets(model) })
	case store.DomainSignals:
		model := view.Signals(a.stores.Signals.List())
		a.app.QueueUpdateDraw(func() { a.hft.ApplySignals(model) })
	case store.DomainInsiderStats:
		model := view.InsiderStatus(a.stores.InsiderStats.Get())
		a.app.QueueUpdateDraw(func() { a.insider.ApplyStatus(model) })
	case store.DomainAlerts:
		model := view.Alerts(a.stores.Alerts.List())
		a.app.QueueUpdateDraw(func() { a.insider.ApplyAlerts(model) })
	case store.DomainSavedWallets:
		model := view.SavedWallets(a.stores.SavedWallets.List())
		a.app.QueueUpdateDraw(func() { a.insider.ApplySaved(model) })
	case store.DomainTriggerConfig:
		model := view.TriggerConfig(a.stores.TriggerConfig.Get())
		a.app.QueueUpdateDraw(func() { a.insider.ApplyConfig(model) })
	}
}

// ShowNotice surfaces a command result in the message bar. Called on the
// task loop via the dispatcher's notice hook.
func (a *App) ShowNotice(severity control.Severity, message string) {
	color := "green"
	if severity == control.NoticeError {
		color = "red"
	}
	a.app.QueueUpdateDraw(func() {
		a.notice.SetText(fmt.Sprintf("[%s]%s[-]", color, tview.Escape(message)))
	})
}

// queueUI runs fn on the UI thread. Used by done-callbacks, which arrive
// on the task loop.
func (a *App) queueUI(fn func()) {
	a.app.QueueUpdateDraw(fn)
}
