// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agtMorpheus/cautious-potato-sub004/models"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	helpStyle   = lipgloss.NewStyle().Faint(true)
	errorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

var statusStyles = map[models.SyncStatus]lipgloss.Style{
	models.StatusIdle:    lipgloss.NewStyle().Faint(true),
	models.StatusSyncing: lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	models.StatusSynced:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	models.StatusWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	models.StatusError:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
	models.StatusOffline: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
}

func statusStyle(status models.SyncStatus) lipgloss.Style {
	if s, ok := statusStyles[status]; ok {
		return s
	}
	return lipgloss.NewStyle()
}
