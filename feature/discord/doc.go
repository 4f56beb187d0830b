// Package discord implements the raid ports on top of discordgo: channel
// lookup, announcement messages, guild scheduled events, member display
// names and the signup component interactions.
//
// Every Discord "unknown resource" answer is translated into
// reconcile.ErrNotFound so the reconciler can recreate the artifact.
package discord
