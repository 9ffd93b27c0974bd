// Package osis loads Bible texts in OSIS XML and serves their verses,
// headings and book names to the speech navigator.
package osis
