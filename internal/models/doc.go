// Package models defines domain entities and persistence interfaces for dzdedup.
//
// The package contains two categories of types:
//
// 1. Data Transfer Objects (DTOs): Lightweight structs representing remote service data
//   - [Playlist] : Basic playlist metadata listed from the user's library
//   - [Track] : Song metadata with ISRC and artist id used for duplicate detection
//
// 2. Persistent Entities: Database-backed models with full lifecycle management
//   - [Session] : A validated Deezer session credential and the user it belongs to
//
// All persistent entities implement the [Model] interface providing ID generation, timestamps, validation, and soft delete support.
// The [Repository] interface defines standard CRUD operations for database access.
package models
