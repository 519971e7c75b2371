//go:build !splaydebug

package splay

const debugChecks = false
