// Package signup implements the raid signup conversation driven by Discord
// buttons and select menus.
//
// The conversation state is never stored. Each component carries a Token in
// its custom id, so any instance of the service can continue a conversation
// started by another one:
//
//	role button      -> class select (first signup only)
//	class select     -> spec select
//	spec select      -> profile and signup saved
//
// Every committed signup queues a debounced refresh of the raid announcement.
package signup
