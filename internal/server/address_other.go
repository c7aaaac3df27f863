//go:build !unix

package server

const unixSupported = false
