// Package scrapedown provides a two-stage, frontier-driven crawl-and-assemble
// pipeline. Given a seed (a URL or a listing-search query) it discovers a
// bounded, filtered set of pages, extracts structured content from each page
// independently, and merges the survivors into a single ordered artifact with
// a generated table of contents. The same engine backs deep web scraping,
// multi-page document export, and lead enrichment/scoring.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, rod/, sqlite/).
package scrapedown
