// Package record defines the canonical resume Record edited by a session: the
// personal block, free-text sections, the three repeatable list sections and
// the presentation preferences (active template, section order). Array index is
// display order for every list section; entries with every field empty are
// placeholders that stay in the Record and are only dropped by the preview.
package record
