// Package runtime runs the package manager inside a freshly generated
// component. Install streams the package manager's output, or hides it behind
// a spinner in silent mode, and reports the exit code instead of failing on
// it. CheckVersion compares the installed package manager against the minimum
// version the generated project expects.
package runtime
