// Package cameras wraps the camera endpoints of the Verkada Command API:
// device listing, alerts, footage and thumbnail links, persons and license
// plates of interest, occupancy analytics, and cloud backup settings.
//
// All methods are thin translations of "parameters in, JSON out" on top of
// requests.Client; they hold no state of their own.
package cameras
