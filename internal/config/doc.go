// Package config locates project-level configuration for the generator. It
// walks from the working directory towards the filesystem root and returns the
// first rc file (.create-lit-componentrc, .create-lit-componentrc.json, ...)
// or package.json key it finds, validated against the options schema. It also
// exposes the CREATE_LIT_COMPONENT_* environment layer.
package config
