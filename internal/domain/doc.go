// Package domain models earthquake records published by the Kandilli
// Observatory and Earthquake Research Institute (KOERI).
//
// # Data Source
//
// KOERI publishes the most recent events as a single HTML page,
// http://www.koeri.boun.edu.tr/scripts/lst0.asp, with the table rendered as
// preformatted text inside a <pre> element. The first seven lines of that
// block are a fixed header (title, legend, column names, separator rule);
// every following line is one event.
//
// # Row Format
//
// Rows are whitespace-aligned columns, mapped positionally:
//
//	token[0]   date       "DD.MM.YY" (the live feed uses "YYYY.MM.DD")
//	token[1]   time       "HH:MM:SS", local time in Turkey
//	token[2]   latitude   decimal degrees
//	token[3]   longitude  decimal degrees
//	token[4]   depth      kilometers
//	token[5]   magnitude
//	token[6:]  location   free text, re-joined with single spaces
//
// A line with fewer than six tokens (blank lines, footer text) is dropped.
// A line whose numeric columns do not parse as finite numbers is dropped as
// well, so every Earthquake carries real values and always encodes to JSON.
//
// Location text is usually "<PLACE>-<DISTRICT> (<PROVINCE>)" or a sea name.
// The "region" used for grouping is the last hyphen-delimited segment,
// trimmed. It is a heuristic over free text, not a structured field.
//
// # Dates
//
// Two-digit years are always read as 2000+YY. Dates are compared as calendar
// days, not as strings. Event timestamps are interpreted in the source
// timezone (Europe/Istanbul by default) when evaluating time windows.
//
// # Query Engine
//
// Filters, alerts, and aggregations are pure functions over a []Earthquake
// snapshot. Filters preserve the source order (newest first as published)
// and never return nil, so empty results encode as [] rather than null.
package domain
