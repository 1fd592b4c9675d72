// Package platform wraps permission handling that differs between Unix and
// Windows.
package platform
