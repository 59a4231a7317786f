//go:build tools
// +build tools

// Package tools pins the code generators run through `go generate`,
// mockgen for the contract mocks, so go.mod keeps tracking them.
package world_sync

import (
	_ "go.uber.org/mock/mockgen"
)
