// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/agtMorpheus/cautious-potato-sub004/internal/service"
	"github.com/agtMorpheus/cautious-potato-sub004/models"
)

// writeClipboard is replaced in tests.
var writeClipboard = clipboard.WriteAll

const mainHotKeys = "s: sync │ f: full sync │ r: retry │ x: clear queue │ m: mode │ o: sync on save\n" +
	"n: new │ e: edit title │ c: copy id │ ↑/↓: nav. │ l: logout │ q: quit"

type editorMode int

const (
	editorNone editorMode = iota
	editorNew
	editorTitle
)

// statusFeed forwards engine status events into the Bubble Tea loop.
type statusFeed struct {
	events      chan models.StatusEvent
	done        chan struct{}
	once        sync.Once
	unsubscribe func()
}

func subscribeStatus(engine service.SyncEngine) *statusFeed {
	f := &statusFeed{
		events: make(chan models.StatusEvent, 16),
		done:   make(chan struct{}),
	}
	f.unsubscribe = engine.Subscribe(func(event models.StatusEvent) {
		select {
		case f.events <- event:
		case <-f.done:
		default:
			// full buffer: the snapshot is re-read when a run completes
		}
	})
	return f
}

func (f *statusFeed) wait() tea.Cmd {
	return func() tea.Msg {
		select {
		case event := <-f.events:
			return statusChangedMsg{event: event}
		case <-f.done:
			return nil
		}
	}
}

func (f *statusFeed) close() {
	f.once.Do(func() {
		f.unsubscribe()
		close(f.done)
	})
}

type mainLoopModel struct {
	ctx       context.Context
	engine    service.SyncEngine
	contracts service.ClientContractService
	settings  service.SyncSettings
	user      models.User
	feed      *statusFeed

	items   []models.Contract
	idx     int
	loading bool
	running int
	status  models.StatusEvent
	spinner spinner.Model
	notice  string
	errMsg  string

	editor  textinput.Model
	editing editorMode

	logout bool
}

func newMainLoopModel(ctx context.Context, services *service.ClientServices, user models.User) mainLoopModel {
	s := spinner.New()
	s.Spinner = spinner.Dot

	return mainLoopModel{
		ctx:       ctx,
		engine:    services.Engine,
		contracts: services.ContractService,
		settings:  services.Settings,
		user:      user,
		feed:      subscribeStatus(services.Engine),
		loading:   true,
		status:    services.Engine.Status(),
		spinner:   s,
	}
}

func (m mainLoopModel) Init() tea.Cmd {
	return tea.Batch(m.cmdLoadContracts(), m.feed.wait(), m.spinner.Tick)
}

func (m mainLoopModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case statusChangedMsg:
		m.status = msg.event
		return m, m.feed.wait()
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case contractsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		m.items = msg.items
		if m.idx >= len(m.items) {
			m.idx = len(m.items) - 1
		}
		if m.idx < 0 {
			m.idx = 0
		}
		return m, nil
	case syncDoneMsg:
		if m.running > 0 {
			m.running--
		}
		m.status = m.engine.Status()
		m.notice = resultNotice(msg.result)
		m.errMsg = ""
		m.loading = true
		return m, m.cmdLoadContracts()
	case contractSavedMsg:
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		m.editing = editorNone
		m.errMsg = ""
		m.notice = fmt.Sprintf("Saved %q", msg.contract.Title)
		m.status = m.engine.Status()
		m.loading = true
		return m, m.cmdLoadContracts()
	case settingsChangedMsg:
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.notice = msg.notice
		return m, nil
	case queueClearedMsg:
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.notice = "Retry queue cleared"
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.editing != editorNone {
			var cmd tea.Cmd
			m.editor, cmd = m.editor.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	if keyMsg.String() == "ctrl+c" {
		m.feed.close()
		return m, tea.Quit
	}

	if m.editing != editorNone {
		return m.updateEditor(keyMsg)
	}

	switch {
	case key.Matches(keyMsg, keys.quit):
		m.feed.close()
		return m, tea.Quit
	case key.Matches(keyMsg, keys.logout):
		m.logout = true
		m.feed.close()
		return m, tea.Quit
	case key.Matches(keyMsg, keys.up):
		if m.idx > 0 {
			m.idx--
		}
	case key.Matches(keyMsg, keys.down):
		if m.idx < len(m.items)-1 {
			m.idx++
		}
	case key.Matches(keyMsg, keys.sync):
		return m.startRun(m.cmdSync(false))
	case key.Matches(keyMsg, keys.forceSync):
		return m.startRun(m.cmdSync(true))
	case key.Matches(keyMsg, keys.retry):
		return m.startRun(m.cmdRetry())
	case key.Matches(keyMsg, keys.clearQueue):
		return m, m.cmdClearQueue()
	case key.Matches(keyMsg, keys.toggleMode):
		return m, m.cmdToggleMode()
	case key.Matches(keyMsg, keys.toggleSave):
		return m, m.cmdToggleSyncOnSave()
	case key.Matches(keyMsg, keys.newItem):
		return m.startEditor(editorNew, "")
	case key.Matches(keyMsg, keys.edit):
		item, ok := m.current()
		if !ok {
			m.notice = "No contracts"
			return m, nil
		}
		return m.startEditor(editorTitle, item.Title)
	case key.Matches(keyMsg, keys.copy):
		item, ok := m.current()
		if !ok {
			m.notice = "Nothing to copy"
			return m, nil
		}
		if err := writeClipboard(item.ID); err != nil {
			m.errMsg = fmt.Sprintf("Copy failed: %v", err)
			return m, nil
		}
		m.notice = "Copied " + item.ID
	}

	return m, nil
}

// startRun marks a sync or retry as running. Overlapping requests are still
// dispatched: the engine coalesces syncs and rejects a concurrent retry.
func (m mainLoopModel) startRun(cmd tea.Cmd) (tea.Model, tea.Cmd) {
	m.running++
	m.errMsg = ""
	m.notice = ""
	return m, cmd
}

func (m mainLoopModel) startEditor(mode editorMode, value string) (tea.Model, tea.Cmd) {
	input := textinput.New()
	input.Placeholder = "title"
	input.CharLimit = 200
	input.Width = 48
	input.SetValue(value)
	input.Focus()

	m.editor = input
	m.editing = mode
	m.errMsg = ""
	return m, textinput.Blink
}

func (m mainLoopModel) updateEditor(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(keyMsg, keys.esc):
		m.editing = editorNone
		m.errMsg = ""
		return m, nil
	case key.Matches(keyMsg, keys.enter):
		title := strings.TrimSpace(m.editor.Value())
		if title == "" {
			m.errMsg = "Title is required"
			return m, nil
		}

		if m.editing == editorNew {
			return m, m.cmdCreate(models.Contract{Title: title})
		}

		item, ok := m.current()
		if !ok {
			m.editing = editorNone
			return m, nil
		}
		item.Title = title
		return m, m.cmdUpdate(item)
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(keyMsg)
	return m, cmd
}

func (m mainLoopModel) View() string {
	if m.editing != editorNone {
		title := "NEW CONTRACT"
		if m.editing == editorTitle {
			title = "EDIT TITLE"
		}

		out := "Title  │ [" + m.editor.View() + "]\n"
		if m.errMsg != "" {
			out += "\n" + errorStyle.Render("Error: "+m.errMsg) + "\n"
		}
		return renderPage(title, strings.TrimRight(out, "\n"), "esc: back │ enter: save")
	}

	var b strings.Builder

	if m.user.Login != "" {
		b.WriteString("Signed in as " + m.user.Login + "\n")
	} else {
		b.WriteString("Not signed in\n")
	}

	cfg := m.settings.Get()
	b.WriteString(fmt.Sprintf("Mode: %s │ sync on save: %s │ last sync: %s\n",
		cfg.StorageMode, onOff(cfg.SyncOnSave), lastSyncLabel(cfg.LastSyncTimestamp)))

	b.WriteString("Status: ")
	if m.running > 0 || m.status.Status == models.StatusSyncing {
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
	}
	b.WriteString(statusStyle(m.status.Status).Render(string(m.status.Status)))
	if m.status.Detail != "" {
		b.WriteString(" " + m.status.Detail)
	}
	b.WriteString("\n")

	if failed := len(m.engine.FailedRecords()); failed > 0 {
		b.WriteString(fmt.Sprintf("Retry queue: %d record(s)\n", failed))
	}
	if m.notice != "" {
		b.WriteString(noticeStyle.Render(m.notice) + "\n")
	}
	if m.errMsg != "" {
		b.WriteString(errorStyle.Render("Error: "+m.errMsg) + "\n")
	}
	b.WriteString("\n")

	switch {
	case m.loading:
		b.WriteString("Loading contracts...\n")
	case len(m.items) == 0:
		b.WriteString("No contracts\n")
	default:
		b.WriteString("#    │ Title                          │ Status     │ Updated\n")
		b.WriteString("─────┼────────────────────────────────┼────────────┼─────────────────\n")
		for i, item := range m.items {
			cursor := " "
			if i == m.idx {
				cursor = ">"
			}
			b.WriteString(fmt.Sprintf("%s %-3d│ %-30s │ %-10s │ %s\n",
				cursor,
				i+1,
				fitText(item.Title, 30),
				fitText(valueOrDash(item.Status), 10),
				item.UpdatedAt.Local().Format("2006-01-02 15:04"),
			))
		}
	}

	return renderPage("CONTRACTS", strings.TrimRight(b.String(), "\n"), mainHotKeys)
}

func (m mainLoopModel) current() (models.Contract, bool) {
	if len(m.items) == 0 || m.idx < 0 || m.idx >= len(m.items) {
		return models.Contract{}, false
	}
	return m.items[m.idx], true
}

func (m mainLoopModel) cmdLoadContracts() tea.Cmd {
	ctx := m.ctx
	svc := m.contracts

	return func() tea.Msg {
		items, err := svc.List(ctx)
		return contractsLoadedMsg{items: items, err: err}
	}
}

func (m mainLoopModel) cmdSync(force bool) tea.Cmd {
	ctx := m.ctx
	engine := m.engine

	return func() tea.Msg {
		return syncDoneMsg{result: engine.RequestSync(ctx, models.SyncOptions{Force: force})}
	}
}

func (m mainLoopModel) cmdRetry() tea.Cmd {
	ctx := m.ctx
	engine := m.engine

	return func() tea.Msg {
		return syncDoneMsg{result: engine.RetryFailed(ctx)}
	}
}

func (m mainLoopModel) cmdClearQueue() tea.Cmd {
	ctx := m.ctx
	engine := m.engine

	return func() tea.Msg {
		return queueClearedMsg{err: engine.ClearRetryQueue(ctx)}
	}
}

func (m mainLoopModel) cmdToggleMode() tea.Cmd {
	ctx := m.ctx
	settings := m.settings

	return func() tea.Msg {
		next := models.SyncWithServer
		if settings.Get().StorageMode == models.SyncWithServer {
			next = models.LocalOnly
		}
		if err := settings.SetStorageMode(ctx, next); err != nil {
			return settingsChangedMsg{err: err}
		}
		return settingsChangedMsg{notice: "Storage mode: " + string(next)}
	}
}

func (m mainLoopModel) cmdToggleSyncOnSave() tea.Cmd {
	ctx := m.ctx
	settings := m.settings

	return func() tea.Msg {
		enabled := !settings.Get().SyncOnSave
		if err := settings.SetSyncOnSave(ctx, enabled); err != nil {
			return settingsChangedMsg{err: err}
		}
		return settingsChangedMsg{notice: "Sync on save: " + onOff(enabled)}
	}
}

func (m mainLoopModel) cmdCreate(contract models.Contract) tea.Cmd {
	ctx := m.ctx
	svc := m.contracts

	return func() tea.Msg {
		created, err := svc.Create(ctx, contract)
		return contractSavedMsg{contract: created, err: err}
	}
}

func (m mainLoopModel) cmdUpdate(contract models.Contract) tea.Cmd {
	ctx := m.ctx
	svc := m.contracts

	return func() tea.Msg {
		updated, err := svc.Update(ctx, contract)
		return contractSavedMsg{contract: updated, err: err}
	}
}

func resultNotice(result models.SyncResult) string {
	if result.Detail != "" {
		return result.Detail
	}
	return string(result.Status)
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func lastSyncLabel(at *time.Time) string {
	if at == nil {
		return "never"
	}
	return at.Local().Format("2006-01-02 15:04:05")
}
