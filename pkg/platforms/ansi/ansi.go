// Package ansi provides the generic ANSI SQL platform.
//
// It carries the documented defaults without customization and serves as
// the fallback for products without a dedicated platform package.
package ansi

import "github.com/leapstack-labs/ddlplatform/pkg/platform"

func init() {
	platform.Register(ANSI)
}

// ANSI is the generic ANSI SQL platform.
var ANSI = platform.NewBuilder("ansi").Build()
