/*
Package feature classifies OSM elements with a catalog of named features.

A Catalog is loaded from YAML records (see package feature/config). Each
ordinary feature requires a set of tags and optionally restricts the element
types it applies to. Features can list categories. A category matches an
element if any of its member features match. Built-in magic features match
by fixed rules (untagged, closed way, has key) and make sure that every
element matches at least one feature.

Matches are ranked by precision. Without an explicit precision, ordinary
features rank by the number of required tags (10 + n), categories and magic
features rank below them.

The Matcher returns the single best feature or the full ranked list of
matches for an element. The catalog indexes features by element type, so
that only applicable features are checked.
*/
package feature
