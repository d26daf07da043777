// Package access wraps the access control endpoints of the Verkada Command
// API: doors, remote unlocks, access groups, and the access event stream.
package access
