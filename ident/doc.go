/*
Package ident interns the vocabulary of style sheets and scene graphs.

Overview

Tag names, class names, ids, pseudo-state names and property names are compared
very often during selector matching and cascading. Package ident maps each of
these strings to a small integer handle (type ID). Equal strings always yield
equal handles, and handles are never freed or re-used for the lifetime of a
table. The vocabulary of an application is small and closed, therefore the table
only ever grows.

A process-wide table is used by the package level functions Intern and Lookup.
Clients in need of isolation (e.g., tests) may create their own Table.

Identifier tables are the one structure of this module which may be touched
concurrently; they serialize writers, while readers of already interned strings
do not block each other.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package ident
