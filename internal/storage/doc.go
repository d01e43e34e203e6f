// Package storage persists the display record and reads it back.
//
// The display page and the casting agent both poll a small JSON document. A
// Writer fans each new record out to every configured sink (one or more files,
// optionally a Redis key) and a Reader recovers the previous record from the
// first sink that still holds a valid one. The default file locations are
// /home/pi/tournament_data.json and /var/www/html/tournament_data.json.
package storage
