// Package testutil provides fixtures and fakes shared by tests
package testutil

// TestWorkers is the number of goroutines used by concurrency tests
const TestWorkers = 8

// Names used by the sample Person/Division model
const (
	TestProjectName = "testProject"
	TestMapName     = "testMap"
	TestNamespace   = "quick.model"
	TestNodeName    = "testerbest"
)

// TestPeople are the Person names stored by the demo
var TestPeople = []string{"Hugi Þórðarson", "Ósk Gunnlaugsdóttir"}
