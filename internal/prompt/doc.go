// Package prompt fills the option keys that no configuration source supplied.
//
// Questions are asked in a fixed order. Each question may carry a When
// predicate evaluated against the configuration and the answers given so far,
// so later questions can depend on earlier ones (the scope question is only
// asked when the user chose to publish under a scope). A Prompter performs the
// actual interaction; TerminalPrompter reads answers line by line from an
// io.Reader and honours context cancellation.
//
// Cancellation at any point returns ErrCancelled. Callers treat it as a clean
// exit and write nothing.
package prompt
