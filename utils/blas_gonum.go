//go:build !(cgo && netlib)
// +build !cgo !netlib

package utils

var BLASBackend = "gonum"
