// Package sink renders decoder events for humans and machines.
//
// Every sink here satisfies decoder.Sink. Rendering is display-only and is
// not part of the PRT-7 wire contract.
package sink
