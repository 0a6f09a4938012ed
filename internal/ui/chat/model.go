// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the Bubble Tea model for the whitemirror client.
package chat

import (
	"context"
	"log"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/whitemirror-tui/internal/api"
	"github.com/jeranaias/whitemirror-tui/internal/commands"
	"github.com/jeranaias/whitemirror-tui/internal/directory"
	"github.com/jeranaias/whitemirror-tui/internal/model"
	"github.com/jeranaias/whitemirror-tui/internal/session"
	"github.com/jeranaias/whitemirror-tui/internal/store"
	"github.com/jeranaias/whitemirror-tui/internal/ui/styles"
)

// sidebarWidth is the contact list width in the wide and medium layouts.
const sidebarWidth = 28

// eventBuffer sizes the session-to-UI event channel. Delivery must never
// block the session read loop; overflow events are dropped and logged.
const eventBuffer = 64

// requestTimeout bounds the REST calls issued from the update loop.
const requestTimeout = 30 * time.Second

// =============================================================================
// DEPENDENCY SURFACES
// =============================================================================

// Backend is the REST surface the chat view uses directly. *api.Client
// satisfies it.
type Backend interface {
	Contacts(ctx context.Context) ([]model.Contact, error)
	History(ctx context.Context, contactID string, limit int) ([]store.HistoryRecord, error)
	SimpleChat(ctx context.Context, message string) (*api.AgentReply, error)
}

// Transport is the live-session surface the chat view uses.
// *session.Manager satisfies it.
type Transport interface {
	Connect(identity model.Identity)
	Send(targetContactID, content string) error
	State() (session.State, int)
	Subscribe(h session.EventHandler)
}

// Deps carries everything the chat model needs. All fields are required
// except Logger.
type Deps struct {
	Theme      *styles.Theme
	Identity   model.Identity
	Store      *store.Store
	Directory  *directory.Directory
	Session    Transport
	Backend    Backend
	Dispatcher *commands.Dispatcher
	Logger     *log.Logger
}

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat view.
type Model struct {
	theme *styles.Theme

	// Dimensions
	width  int
	height int
	ready  bool

	// Domain state
	identity   model.Identity
	store      *store.Store
	directory  *directory.Directory
	session    Transport
	backend    Backend
	dispatcher *commands.Dispatcher

	// Contacts; selected indexes into contacts
	contacts []model.Contact
	selected int

	// Inbound session events, bridged from the manager's subscriber
	events chan session.Event

	// Connection state mirrored for the status bar
	connState   session.State
	connAttempt int

	// Command completion
	completer *commands.Completer
	suggest   *commands.SuggestState

	// Transient state
	commandOut string // last slash-command output, shown in the transcript
	notice     string // last error notice
	agentBusy  bool   // a SimpleChat request is in flight

	// UI Components
	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model
	keyMap   KeyMap

	logger *log.Logger
}

// New creates a chat model and bridges the session's event stream into it.
func New(deps Deps) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Message, or / for commands..."
	ti.CharLimit = 4096
	ti.Focus()

	vp := viewport.New(80, 20)

	sp := spinner.New()
	sp.Spinner = spinner.Spinner{
		Frames: []string{"|", "/", "-", "\\"},
		FPS:    time.Second / 10,
	}

	events := make(chan session.Event, eventBuffer)
	logger := deps.Logger
	deps.Session.Subscribe(func(ev session.Event) {
		select {
		case events <- ev:
		default:
			// Never block the session read loop.
			if logger != nil {
				logger.Printf("chat: event buffer full, dropping inbound event")
			}
		}
	})

	m := Model{
		theme:      deps.Theme,
		identity:   deps.Identity,
		store:      deps.Store,
		directory:  deps.Directory,
		session:    deps.Session,
		backend:    deps.Backend,
		dispatcher: deps.Dispatcher,
		contacts:   deps.Directory.Contacts(),
		events:     events,
		completer:  commands.NewCompleter(deps.Dispatcher.Registry()),
		suggest:    commands.NewSuggestState(),
		viewport:   vp,
		input:      ti,
		spinner:    sp,
		keyMap:     DefaultKeyMap(),
		logger:     logger,
	}
	m.connState, m.connAttempt = deps.Session.State()
	return m
}

// Init starts the background work: contact load, the session event pump,
// the connection-state ticker, and input blinking.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.loadContactsCmd(),
		m.waitForEventCmd(),
		connTickCmd(),
		textinput.Blink,
	)
}

// SelectedContact returns the contact the transcript is showing.
func (m Model) SelectedContact() (model.Contact, bool) {
	if m.selected < 0 || m.selected >= len(m.contacts) {
		return model.Contact{}, false
	}
	return m.contacts[m.selected], true
}

func (m Model) logf(format string, args ...any) {
	if m.logger != nil {
		m.logger.Printf("chat: "+format, args...)
	}
}
