// Copyright (c) 2026 Pollbox Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package memory provides the in-process store implementation used by tests
// and local development. Data does not survive a restart.
package memory
