/*
Package rql implements the parser, schema validator, and query tree for
RQL, a compact single-line query syntax for search/filter bars.

A query targets one entity and optionally carries a limit, an order-by
list, a set of relations to include, and a where expression:

	entity:users limit:10 where:(status=active OR role=admin)

Fields can be compared with: =, !=, >, <, >=, <=. Double quotes delimit
strings that contain whitespace or punctuation. Comparisons combine with
"and"/"or" and group with parentheses; "and" binds tighter than "or", and
adjacency between two comparisons is an implicit "and".

Parse converts query text into a QueryTree, optionally validating it
against a schema.Schema. IsValid is a non-throwing probe built on Parse.
The sibling autocomplete package classifies a cursor position within
possibly-invalid query text and produces ranked, prefix-filtered
suggestions; it never fails, even on unterminated strings or mismatched
parentheses.
*/
package rql
