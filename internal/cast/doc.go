// Package cast switches a Chromecast to the tournament display page.
//
// The Agent polls the persisted display record. When a tournament becomes
// displayable it stops whatever the device is showing and casts the display
// site; when the tournament is no longer displayable it clears its own state so
// the next tournament triggers a fresh cast. Its progress is kept in a small
// JSON file (cast_state.json) so a restart does not recast needlessly.
package cast
