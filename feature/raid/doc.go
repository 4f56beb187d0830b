// Package raid owns the raid domain: payloads decoded from exports, the
// persisted records, signups and player profiles, and the reconciler that
// keeps every raid's announcement and scheduled event in step with its
// record.
//
// # Reconciliation
//
// Reconciler.Reconcile runs one payload through a fixed sequence: route
// the difficulty to a channel, normalize times, upsert the record, render
// the roster, sync the announcement, sync the scheduled event, persist the
// artifact ids. The record write always comes first, so a failed artifact
// call leaves enough state behind for the next cycle to repair it.
//
// # Refreshing
//
// Signup changes call RefreshQueue.Queue. Bursts for the same raid collapse
// into one Reconciler.Refresh after the debounce delay.
package raid
