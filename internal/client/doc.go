// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the notes command-line client.
//
// [App] builds a cobra command tree (register, login, logout, whoami,
// version and the notes subcommands) on top of an [adapter.ServerAdapter].
// The token pair is kept in a JSON session file between invocations, and
// note listings are rendered as tables.
package client
