// Package options defines the option set that drives a generation run and the
// ordered merge that builds it. Precedence is expressed as an explicit list of
// sources (defaults, config file, environment, flags) folded low to high.
package options
