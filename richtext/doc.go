// Package richtext defines the formatting command catalog, the Backend
// capability interface the commands run against, and a Backend that edits
// HTML source held by a surface.Surface.
//
// It also carries the HTML helpers used around insertion: fragment builders
// for links, tables and media, paste sanitization and markdown shortcut
// detection.
package richtext
