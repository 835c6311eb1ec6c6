// Package repository handles all interactions with the database.
//
// A generic Repository[T] covers plain CRUD, paging and the transactional
// variants; the venue, artist and show repositories add the joined and
// aggregate queries the pages need, written with bun's query builders.
package repository
