// Package unfurl builds link previews ("URL unfurling") for chat messages.
// It fetches a linked page, extracts a best-effort summary (title,
// description and a representative image) and caches the result.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, rod/).
package unfurl
