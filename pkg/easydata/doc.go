// Package easydata fills data into text templates of any format.
//
// A template is plain text with embedded tags. A tag starts with an opening
// character followed by a marker character and ends with a closing character,
// "[@" and "]" by default. Text outside of tags is copied unchanged, so the
// same engine serves LaTeX, XML, Markdown or source code.
//
// # Quick Start
//
//	data := easydata.ObjectOf(
//	    "Name", "Horst",
//	    "Hobbys", []interface{}{"Tanzen", "Schlafen"},
//	)
//	out, err := easydata.ExpandString(data,
//	    "[@=Name] mag [@FOR h:Hobbys][@=h][@DELIM] und [@END].")
//	// out == "Horst mag Tanzen und Schlafen.\n"
//
// # Tags
//
// Values:
//
//	[@=path]                     insert the value of path
//	[@SET name = path]           bind name to the current value of path
//
// Paths are dotted, "Address.City" or "Hobbys.0". Inner references are
// resolved first: "friends.${name}.city" and its short form "friends[name].city".
// Literals are "text", 'text', #text#, NULL, true, false and unsigned integers.
// SIZE(path) counts the elements of a collection.
//
// Control:
//
//	[@FOR x: coll]...[@DELIM]...[@END]
//	[@FOR x: coll.keys SELECT path UNIQUE DESCENDING path]...[@/FOR]
//	[@IF path == "value"]...[@ELSE]...[@END]
//	[@IF path]...[@=_]...[@/IF]
//
// Conditions compare with ==, !=, < and >. Numbers and numeric strings are
// compared numerically.
//
// Macros:
//
//	[@DEFINE greet(who)]Hello [@=who][@COMMENT]documentation[@/DEFINE]
//	[@greet Name]
//	[@USE kindOfGreeting Name]   call the macro named by a value
//
// Layout:
//
//	[@INDENT]...[@VALUE]  [@/INDENT]      indent every output line of the body
//	[@MARKUP_ONLY]...[@/MARKUP_ONLY]      drop the plain text between tags
//	[@REPLACEMENT key]text[@/REPLACEMENT] replace key in all later values
//	[@SKIP]                               drop the next token, e.g. a line break
//
// # Data
//
// Data graphs consist of *Object (ordered mappings), other string keyed maps,
// slices, scalars and values implementing PropertySource. Package datasource
// reads JSON and YAML documents keeping the key order.
//
// # Errors
//
// By default paths that cannot be resolved expand to "null" and are recorded,
// see Data.Misses and the VALUE_READ_MISSES path. In strict mode they fail.
// Errors raised while resolving are LocatedErrors listing the enclosing tags,
// innermost first.
package easydata
