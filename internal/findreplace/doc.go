// Package findreplace implements incremental search and replace over
// open documents. A Finder drives text search with live highlighting
// and wrap-around navigation; a Replacer adds single, move-along and
// replace-all substitution. Per-document search state lives in a
// Registry keyed by document ID, so switching documents and coming
// back resumes where the search left off.
package findreplace
