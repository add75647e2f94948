// Copyright 2024 AgentFlow Authors. All rights reserved.
// Use of this source code is governed by a MIT license that can be
// found in the LICENSE file.

/*
Package agent provides the persona agent used by every roundtable scenario.

# Overview

An [Agent] is a named [Persona] with a private [Transcript] and an injected
[llm.Provider]. There is no process-wide client: the provider is handed to
[AgentBuilder.WithProvider] and every call goes through it.

	┌──────────────────────────────────────────────┐
	│                   Agent                      │
	│  Respond / Act / Ask / Hear / Messages       │
	├──────────────────────────────────────────────┤
	│  Persona (immutable)   Transcript (append)   │
	├──────────────────────────────────────────────┤
	│  ContextManager (optional request window)    │
	├──────────────────────────────────────────────┤
	│  llm.Provider (+ middleware chain)           │
	└──────────────────────────────────────────────┘

# Turn Kinds

  - Respond: user entry, completion over the whole transcript, assistant entry.
    A failed call leaves the transcript as it was.
  - Act: self-driven turn without a user entry; an echoed "<Name>:" prefix is removed.
  - Ask: one-shot [system, user] request; the transcript is not touched.
  - Hear: records another speaker's line as "<speaker>: <text>".

# Transcript Growth

The stored transcript is append-only. A [ContextManager] (see agent/context)
bounds only what is sent upstream, so long shared-history runs stay within
the model's context window without rewriting history.

# Usage

	a, err := agent.NewAgentBuilder(agent.ComedianPersona("George Carlin", "observational humor")).
		WithProvider(provider).
		WithSampling(agent.Sampling{Model: "gpt-4o", Temperature: 0.8, MaxTokens: 60}).
		WithLogger(logger).
		Build()
	joke, err := a.Ask(ctx, "Tell a one-liner joke.")
*/
package agent
