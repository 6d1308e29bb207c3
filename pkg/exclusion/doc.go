// Package exclusion finds regions of a Markdown document that must never
// anchor a reported issue, and provides the snippet-level heuristics used to
// recognise common false positives (English runs, URLs, shortcut keys, ...).
//
// Zones are computed over UTF-16 code-unit offsets, matching the offsets the
// external corrector reports. A Set is always sorted by start and merged so
// that no two spans overlap or touch.
package exclusion
