// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package pipeline builds WebGPU descriptor values from a compiled
// shader. It stops at descriptor construction: nothing here opens a
// device, enumerates an adapter, or submits work — the descriptors it
// returns are handed to a real device by the caller.
package pipeline
