// Package unibot crawls a single institutional website into a local
// knowledge store and answers free-text questions about it by lexical
// ranking and templated replies.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, http/).
package unibot
