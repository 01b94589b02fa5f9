// Package relic reconstructs a file-based archive of a defunct discussion
// forum from raw page captures. It extracts posts from captured HTML,
// converts their content to Markdown, normalizes their metadata into front
// matter, reconstructs missing creation dates from neighbouring posts, and
// writes one record per post to its canonical corpus path.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, yaml/).
package relic
