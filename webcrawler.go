// Package webcrawler provides a URL content retrieval capability for LLM agents.
// It fetches a single URL, strips the HTML markup from the response body, and
// returns the plain text together with the response status metadata.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., http/, goquery/, gemini/).
package webcrawler
