// Package browsertests contains the domain-specific test suite that the test harness runs
// against a browser test service.
//
// Tests in this package use the general-purpose components in framework/btest and
// framework/harness, the fixture documents in mockdom, and the dataset files in data.
package browsertests
