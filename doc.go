// Package terminal is a unified terminal-control layer: one Backend for
// cursor movement, colors, text attributes, screen control and input
// retrieval, with the concrete mechanism behind a swappable Driver.
//
// The bundled driver talks to the controlling terminal on Unix systems.
// Everything else is portable logic over the Driver contract.
package terminal
