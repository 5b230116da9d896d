// Package models defines the persistent entities of the watchlist manager
// and the generic repository contract they are stored through.
//
// Three entities exist:
//
//   - [User]: identity records keyed by a generated id, unique by email.
//     Users are never deleted.
//   - [Movie]: catalog records with required descriptive fields. Movies are
//     created, updated in place (all fields except id and creation time),
//     and removed.
//   - [Watchlist]: an ordered, duplicate-free list of movie ids owned by
//     exactly one user, created alongside that user.
//
// Models expose their fields through accessors so stored records are never
// mutated behind a shared reference; updates reconstruct a fresh value.
package models
