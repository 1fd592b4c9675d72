// Package scaffold renders a component template into a new directory. It
// powers the generator's materialization step: placeholders such as
// {{component}} and {{componentClassName}} are substituted in file contents
// and file names, and submodule markers left in the template are stripped
// from the output. A default LitElement template is embedded in the binary.
package scaffold
