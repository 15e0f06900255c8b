// Package faults defines the error taxonomy shared by the vault components.
//
// Every fallible operation returns an error chained to one of the exported
// sentinels so callers can classify failures with errors.Is without parsing
// messages. Wrap is the standard constructor; it prepends component and
// operation context and keeps the underlying cause in the chain.
package faults
