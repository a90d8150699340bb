// Package serviceinfo provides a data model for information provided by a browser test
// service under test.
package serviceinfo

import "github.com/Trieg/browser-test-harness/framework"

// TestServiceInfo is status information returned by the test service from the initial status query.
type TestServiceInfo struct {
	TestServiceInfoBase

	// FullData is the entire response received from the test service, which might contain additional
	// properties beyond TestServiceInfoBase.
	FullData []byte
}

// TestServiceInfoBase is the basic set of properties that all test services must provide.
type TestServiceInfoBase struct {
	// Name identifies the browser or automation shim that the test service drives, such
	// as "firefox" or "chromium-headless".
	Name string `json:"name"`

	// Capabilities is a list of strings representing optional features of the test service.
	Capabilities framework.Capabilities `json:"capabilities"`
}

func Empty() TestServiceInfo {
	return TestServiceInfo{}
}
