// Package ui defines the contract the stockroom panes share: the catalog
// list, the product record form, the order-line list, the footer, and the
// confirm overlay all plug into the host through Component.
package ui

import tea "github.com/charmbracelet/bubbletea/v2"

// Component is one pane of the stockroom UI. The host model owns focus and
// layout; panes render their body only and receive their area via SetSize.
type Component interface {
	Init() tea.Cmd
	Update(tea.Msg) (Component, tea.Cmd)
	View() string
	SetSize(width, height int)
}
