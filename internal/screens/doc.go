// Package screens models campaign screens and resolves their raw capability
// fields into normalized technical constraint records.
package screens
