// Package locale loads the embedded message catalogs (Croatian and English)
// used for validation messages, notifications, and prompt labels. Callers
// depend on the Translator interface so tests can swap in a map-backed
// implementation.
package locale
