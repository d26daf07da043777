// Package testutil provides fakes shared by the pykada test suites: scripted
// HTTP transports that record every request, a fake token endpoint, and a
// movable clock.
package testutil
