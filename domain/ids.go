// Package domain contains core concepts of the trading and messenger layers.
// Types here are plain values: once published in a snapshot they are never mutated.
// No runtime, network, or UI logic should be added here.
package domain

type UserID int

type ItemID int

type ThreadID int

type GroupID string
