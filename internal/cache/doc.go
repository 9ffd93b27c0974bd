// Package cache keeps recently read verses in memory so the navigator's
// look-ahead and sentence merging do not hit the content source twice.
package cache
