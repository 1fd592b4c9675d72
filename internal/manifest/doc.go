// Package manifest reads tool configuration embedded in an npm package.json
// and validates option documents against the embedded JSON Schema. The schema
// is shared by every config source, so an rc file and a package.json key
// accept exactly the same keys and types.
package manifest
