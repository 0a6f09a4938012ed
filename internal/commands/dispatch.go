// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the slash command system for the TUI.
package commands

import (
	"context"
	"log"

	"github.com/jeranaias/whitemirror-tui/internal/api"
	"github.com/jeranaias/whitemirror-tui/internal/model"
	"github.com/jeranaias/whitemirror-tui/internal/vocab"
)

// =============================================================================
// COLLABORATORS
// =============================================================================

// Provider is the statistics backend surface the dispatcher queries. The
// production implementation is the api.Client; tests inject fakes.
type Provider interface {
	AllStatistics(ctx context.Context) ([]api.ContactStats, error)
	SingleStatistics(ctx context.Context, selectedUserID string) (*api.ContactStats, error)
	MessagesByTopic(ctx context.Context, kind vocab.Kind, topic, selectedUserID string, limit int) ([]api.TopicMessage, error)
}

// Resolver maps user-typed fragments to contacts.
type Resolver interface {
	Resolve(query string) (model.Contact, bool)
}

// =============================================================================
// DISPATCHER
// =============================================================================

// Dispatcher parses slash commands and executes them against the statistics
// provider. It owns no persistent state; every failure mode is rendered as
// conversation text, never propagated as an error to the UI loop.
type Dispatcher struct {
	registry  *Registry
	parser    *Parser
	provider  Provider
	directory Resolver
	logger    *log.Logger
}

// NewDispatcher creates a dispatcher over the given collaborators.
func NewDispatcher(registry *Registry, provider Provider, directory Resolver) *Dispatcher {
	return &Dispatcher{
		registry:  registry,
		parser:    NewParser(registry),
		provider:  provider,
		directory: directory,
	}
}

// WithLogger sets the dispatch logger.
func (d *Dispatcher) WithLogger(logger *log.Logger) *Dispatcher {
	d.logger = logger
	return d
}

// Registry returns the command registry, for help rendering and completion.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// Dispatch interprets one line of input. The second return is false when the
// input is not a slash command and should go to the free-form collaborator
// instead. For commands, the returned string is always displayable text:
// results, usage, or an inline error message.
func (d *Dispatcher) Dispatch(ctx context.Context, input string) (string, bool) {
	parsed := d.parser.Parse(input)
	if !parsed.IsCommand {
		return "", false
	}

	if parsed.Command == nil {
		err := &UnknownCommandError{Name: parsed.CommandName}
		d.logf("dispatch: %v", err)
		return err.Error() + "\n\n" + FormatHelp(d.registry), true
	}

	result, err := parsed.Command.Handler(ctx, d, parsed.RawArgs)
	if err != nil {
		d.logf("dispatch %s: %v", parsed.CommandName, err)
		return err.Error(), true
	}
	return result, true
}

// resolveTarget maps an optional target-user fragment to a contact id. An
// empty fragment scopes the query to all contacts.
func (d *Dispatcher) resolveTarget(fragment string) (model.Contact, error) {
	if fragment == "" {
		return model.Contact{}, nil
	}
	contact, ok := d.directory.Resolve(fragment)
	if !ok {
		return model.Contact{}, &UnknownUserError{Query: fragment}
	}
	return contact, nil
}

func (d *Dispatcher) logf(format string, args ...any) {
	if d.logger != nil {
		d.logger.Printf("commands: "+format, args...)
	}
}

// =============================================================================
// HANDLERS
// =============================================================================

func handleHelp(ctx context.Context, d *Dispatcher, rawArgs string) (string, error) {
	return FormatHelp(d.registry), nil
}

func handleAll(ctx context.Context, d *Dispatcher, rawArgs string) (string, error) {
	stats, err := d.provider.AllStatistics(ctx)
	if err != nil {
		return "", &queryError{err}
	}
	return FormatAllStats(stats), nil
}

func handleUser(ctx context.Context, d *Dispatcher, rawArgs string) (string, error) {
	if rawArgs == "" {
		return "", &ValidationError{
			Command: "/user",
			Message: "missing target user",
			Usage:   "/user <name or id>",
		}
	}

	contact, err := d.resolveTarget(rawArgs)
	if err != nil {
		return "", err
	}

	stats, err := d.provider.SingleStatistics(ctx, contact.ID)
	if err != nil {
		return "", &queryError{err}
	}
	return FormatContactStats(stats), nil
}

func handleTechnique(ctx context.Context, d *Dispatcher, rawArgs string) (string, error) {
	return topicQuery(ctx, d, vocab.KindTechnique, rawArgs)
}

func handleVulnerability(ctx context.Context, d *Dispatcher, rawArgs string) (string, error) {
	return topicQuery(ctx, d, vocab.KindVulnerability, rawArgs)
}

// topicQuery runs the shared technique/vulnerability flow: split the topic
// from the optional trailing user, resolve the user, query, format.
func topicQuery(ctx context.Context, d *Dispatcher, kind vocab.Kind, rawArgs string) (string, error) {
	topic, fragment, err := SplitTopicTarget(kind, rawArgs)
	if err != nil {
		return "", err
	}

	target, err := d.resolveTarget(fragment)
	if err != nil {
		return "", err
	}

	messages, err := d.provider.MessagesByTopic(ctx, kind, topic, target.ID, 0)
	if err != nil {
		return "", &queryError{err}
	}
	return FormatTopicMessages(kind, topic, target, messages), nil
}

// queryError wraps a provider failure for inline rendering.
type queryError struct {
	cause error
}

func (e *queryError) Error() string {
	return "query failed: " + e.cause.Error()
}

func (e *queryError) Unwrap() error {
	return e.cause
}
