// Package models defines the Socrates domain records exchanged with the API:
// users, projects, sessions, messages and settings.
//
// Decoding is tolerant of the two field-naming schemes the backend has used
// (title/name, role/type) and of numeric or string identifiers. Encoding
// always emits the canonical names.
package models
