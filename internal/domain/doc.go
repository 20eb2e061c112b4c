// Package domain contains the core entities of the vocabulary study
// service: flashcards, review ratings, and the study history record.
// Domain types carry their own validation; persistence and scheduling
// live in the store and srs packages respectively.
package domain
