// Package sensors wraps the environmental sensor endpoints of the Verkada
// Command API: time-series readings and alert events.
package sensors
