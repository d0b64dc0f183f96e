// Package services defines the [Service] interface for music streaming providers and implements it for Deezer.
//
// # Service Interface
//
// Providers expose the operations the deduplicator needs: session validation, playlist listing, ordered track
// fetches and batch track removal.
//
// # Deezer Implementation
//
// [DeezerService] talks to the gw-light endpoint of deezer.com, the same API the web player uses.
//
//   - Requests carry the "sid" session cookie copied from a logged-in browser
//   - deezer.getUserData validates the session and returns the api token (checkForm) used by later calls
//   - deezer.userMenu lists playlists; the favourites playlist is moved to index 0
//   - playlist.getSongs fetches up to 2000 songs
//   - playlist.deleteSongs removes a batch of songs in one request
//
// gw-light answers HTTP 200 even on failure; a non-empty "error" field marks a failed call.
// Requests are paced with a shared [rate.Limiter].
//
// # Error Handling
//
// Services use typed errors from shared package:
//   - [shared.ErrNotAuthenticated] : Authenticate() not called or the session has expired
//   - [shared.ErrAuthFailed] : the session check itself failed
//   - [shared.ErrAPIRequest] : HTTP request failed or gw-light reported an error
//   - [shared.ErrInvalidArgument] : ids that gw-light cannot accept
package services
