// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the whitemirror TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// APPLICATION CONTAINER STYLES
	// ==========================================================================

	App       lipgloss.Style
	Container lipgloss.Style

	// ==========================================================================
	// HEADER STYLES
	// ==========================================================================

	Header         lipgloss.Style
	HeaderTitle    lipgloss.Style
	HeaderSubtitle lipgloss.Style

	// ==========================================================================
	// SIDEBAR (CONTACT LIST) STYLES
	// ==========================================================================

	Sidebar          lipgloss.Style
	SidebarTitle     lipgloss.Style
	ContactItem      lipgloss.Style
	ContactSelected  lipgloss.Style
	ContactAssistant lipgloss.Style
	ContactMeta      lipgloss.Style

	// ==========================================================================
	// MESSAGE STYLES
	// ==========================================================================

	OutgoingMessage  lipgloss.Style
	IncomingMessage  lipgloss.Style
	AssistantMessage lipgloss.Style
	FlaggedMessage   lipgloss.Style
	FlaggedNote      lipgloss.Style
	FlaggedTags      lipgloss.Style
	MessageSender    lipgloss.Style
	MessageTime      lipgloss.Style
	PendingMark      lipgloss.Style
	FailedMark       lipgloss.Style
	SystemNotice     lipgloss.Style
	CommandOutput    lipgloss.Style

	// ==========================================================================
	// INPUT AREA STYLES
	// ==========================================================================

	InputContainer   lipgloss.Style
	InputPrompt      lipgloss.Style
	InputText        lipgloss.Style
	InputPlaceholder lipgloss.Style

	// ==========================================================================
	// STATUS BAR STYLES
	// ==========================================================================

	StatusBar       lipgloss.Style
	ConnConnected   lipgloss.Style
	ConnConnecting  lipgloss.Style
	ConnReconnect   lipgloss.Style
	ConnOffline     lipgloss.Style
	ShortcutKey     lipgloss.Style
	ShortcutDesc    lipgloss.Style

	// ==========================================================================
	// SUGGESTION POPUP STYLES
	// ==========================================================================

	SuggestPopup    lipgloss.Style
	SuggestItem     lipgloss.Style
	SuggestSelected lipgloss.Style
	SuggestDesc     lipgloss.Style

	// ==========================================================================
	// SPINNER AND ERROR STYLES
	// ==========================================================================

	Spinner      lipgloss.Style
	ThinkingText lipgloss.Style
	ErrorBox     lipgloss.Style
	ErrorTitle   lipgloss.Style
	ErrorMessage lipgloss.Style
}

// NewTheme creates a new theme, detecting terminal capabilities.
func NewTheme() *Theme {
	return NewThemeWithMode("auto")
}

// NewThemeWithMode creates a theme honoring the configured mode: "dark" and
// "light" force the background assumption, "auto" asks the terminal.
func NewThemeWithMode(mode string) *Theme {
	colorProfile := termenv.ColorProfile()

	var isDark bool
	switch mode {
	case "dark":
		isDark = true
	case "light":
		isDark = false
	default:
		isDark = termenv.HasDarkBackground()
	}

	t := &Theme{
		IsDark:       isDark,
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
	}

	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	// App container
	t.App = lipgloss.NewStyle()
	t.Container = lipgloss.NewStyle().Padding(0, 1)

	// Header
	t.Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan).
		Background(SurfaceDim).
		Padding(0, 2)

	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Purple)

	t.HeaderSubtitle = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)

	// Sidebar
	t.Sidebar = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderRight(true).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.SidebarTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextSecondary)

	t.ContactItem = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Padding(0, 1)

	t.ContactSelected = lipgloss.NewStyle().
		Background(SelectionBg).
		Foreground(TextPrimary).
		Bold(true).
		Padding(0, 1)

	t.ContactAssistant = lipgloss.NewStyle().
		Foreground(Purple).
		Padding(0, 1)

	t.ContactMeta = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Messages
	t.OutgoingMessage = lipgloss.NewStyle().
		Foreground(OutgoingFg).
		BorderStyle(lipgloss.NormalBorder()).
		BorderLeft(true).
		BorderForeground(OutgoingBorder).
		PaddingLeft(1)

	t.IncomingMessage = lipgloss.NewStyle().
		Foreground(IncomingFg).
		BorderStyle(lipgloss.NormalBorder()).
		BorderLeft(true).
		BorderForeground(IncomingBorder).
		PaddingLeft(1)

	t.AssistantMessage = lipgloss.NewStyle().
		Foreground(AssistantFg).
		BorderStyle(lipgloss.NormalBorder()).
		BorderLeft(true).
		BorderForeground(AssistantBorder).
		PaddingLeft(1)

	t.FlaggedMessage = lipgloss.NewStyle().
		Foreground(IncomingFg).
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderForeground(FlaggedBorder).
		PaddingLeft(1)

	t.FlaggedNote = lipgloss.NewStyle().
		Foreground(FlaggedNoteFg).
		Bold(true)

	t.FlaggedTags = lipgloss.NewStyle().
		Foreground(FlaggedTagFg).
		Italic(true)

	t.MessageSender = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextSecondary)

	t.MessageTime = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.PendingMark = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	t.FailedMark = lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true)

	t.SystemNotice = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true).
		Align(lipgloss.Center)

	t.CommandOutput = lipgloss.NewStyle().
		Foreground(TextPrimary).
		BorderStyle(lipgloss.NormalBorder()).
		BorderLeft(true).
		BorderForeground(Cyan).
		PaddingLeft(1)

	// Input area
	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.InputPrompt = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.InputText = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.InputPlaceholder = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	// Status bar
	t.StatusBar = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextSecondary).
		Padding(0, 1)

	t.ConnConnected = lipgloss.NewStyle().
		Foreground(Emerald).
		Bold(true)

	t.ConnConnecting = lipgloss.NewStyle().
		Foreground(Cyan)

	t.ConnReconnect = lipgloss.NewStyle().
		Foreground(Amber).
		Bold(true)

	t.ConnOffline = lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true)

	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Suggestion popup
	t.SuggestPopup = lipgloss.NewStyle().
		Background(Surface).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.SuggestItem = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.SuggestSelected = lipgloss.NewStyle().
		Background(Purple).
		Foreground(TextInverse).
		Bold(true)

	t.SuggestDesc = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Spinner and errors
	t.Spinner = lipgloss.NewStyle().
		Foreground(Purple)

	t.ThinkingText = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.ErrorBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(Rose).
		Padding(0, 2)

	t.ErrorTitle = lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true)

	t.ErrorMessage = lipgloss.NewStyle().
		Foreground(TextPrimary)
}

// SetSize updates the theme dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// GetLayoutMode returns the current layout mode based on width.
func (t *Theme) GetLayoutMode() LayoutMode {
	if t.Width < 60 {
		return LayoutNarrow
	}
	if t.Width < 100 {
		return LayoutMedium
	}
	return LayoutWide
}

// LayoutMode represents the current responsive layout mode.
type LayoutMode int

const (
	LayoutNarrow LayoutMode = iota // < 60 columns: sidebar hidden
	LayoutMedium                   // 60-100 columns: compact sidebar
	LayoutWide                     // > 100 columns: full sidebar
)
