// Package btest is a test framework for browser contract tests. It provides a test
// scope type T which is similar to Go's testing.T, a data-driven test helper
// (WithData) that expands one test body into a named group per dataset entry,
// test filtering, and console and JUnit test output.
//
// It is in a separate package from the domain-specific test logic in browsertests,
// and does not know anything about how the test service works.
package btest
