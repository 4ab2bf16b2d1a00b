// Package main provides the safecfg CLI for validating safety-source
// configuration documents.
package main

func main() {
	Execute()
}
