package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/agtMorpheus/cautious-potato-sub004/models"
)

// NavigateTo switches the active page of the [RootModel]. Payload, when set,
// is delivered to the new page instead of its Init command.
type NavigateTo struct {
	Page    string
	Payload tea.Msg
}

// LoginResult finishes the login flow on success.
type LoginResult struct {
	User models.User
	Err  error
}

// RegisterResult reports a failed registration.
type RegisterResult struct {
	Err error
}

type statusChangedMsg struct {
	event models.StatusEvent
}

type contractsLoadedMsg struct {
	items []models.Contract
	err   error
}

type syncDoneMsg struct {
	result models.SyncResult
}

type contractSavedMsg struct {
	contract models.Contract
	err      error
}

type settingsChangedMsg struct {
	notice string
	err    error
}

type queueClearedMsg struct {
	err error
}
