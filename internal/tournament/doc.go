// Package tournament implements the leaderboard's controllers: the session gate,
// the participant registry, the fish submission pipeline and the fish table.
//
// Every controller receives its collaborators at construction. Nothing here holds
// global state, so each HTTP request (or test) builds its own set.
package tournament
