// Package textutil holds small string helpers shared by the artifact naming
// code.
package textutil
