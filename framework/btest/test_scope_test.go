package btest

import (
	"testing"

	"github.com/Trieg/browser-test-harness/framework"

	"github.com/stretchr/testify/assert"
)

func TestTestScopeInheritsConfiguration(t *testing.T) {
	myContextValue := "hi"
	myCapabilities := framework.Capabilities{"popups", "iframes"}
	config := TestConfiguration{
		Context:      myContextValue,
		Capabilities: myCapabilities,
	}
	_ = Run(config, func(bt *T) {
		assert.Equal(t, myContextValue, bt.Context())
		assert.Equal(t, myCapabilities, bt.Capabilities())

		bt.Run("subtest", func(bt1 *T) {
			assert.Equal(t, myContextValue, bt1.Context())
			assert.Equal(t, myCapabilities, bt1.Capabilities())
		})
	})
}

func TestTestScopeExitsImmediatelyOnFailNow(t *testing.T) {
	executed1 := false
	executed2 := false
	executed3 := false
	_ = Run(TestConfiguration{}, func(bt *T) {
		bt.Run("", func(bt *T) {
			executed1 = true
			bt.FailNow()
			executed2 = true
		})
		executed3 = true
	})
	assert.True(t, executed1)
	assert.False(t, executed2)
	assert.True(t, executed3)
}

func TestTestScopeExitsImmediatelyOnSkip(t *testing.T) {
	executed1 := false
	executed2 := false
	executed3 := false
	_ = Run(TestConfiguration{}, func(bt *T) {
		bt.Run("", func(bt *T) {
			executed1 = true
			bt.Skip()
			executed2 = true
		})
		executed3 = true
	})
	assert.True(t, executed1)
	assert.False(t, executed2)
	assert.True(t, executed3)
}

func TestTestScopePassedResult(t *testing.T) {
	result := Run(TestConfiguration{}, func(bt *T) {
		bt.Run("parent", func(bt0 *T) {
			bt0.Run("subtest1", func(bt1 *T) {
				// this test passes
			})
			bt0.Run("subtest2", func(bt2 *T) {
				// this test passes
			})
		})
	})

	assert.True(t, result.OK())
	assert.Len(t, result.Tests, 4)
	assert.Len(t, result.Failures, 0)

	assert.Equal(t, TestID{"parent", "subtest1"}, result.Tests[0].TestID)
	assert.Len(t, result.Tests[0].Errors, 0)

	assert.Equal(t, TestID{"parent", "subtest2"}, result.Tests[1].TestID)
	assert.Len(t, result.Tests[1].Errors, 0)

	assert.Equal(t, TestID{"parent"}, result.Tests[2].TestID)
	assert.Len(t, result.Tests[2].Errors, 0)

	assert.Nil(t, result.Tests[3].TestID)
	assert.Len(t, result.Tests[3].Errors, 0)
}

func TestTestScopeFailedResult(t *testing.T) {
	result := Run(TestConfiguration{}, func(bt *T) {
		bt.Run("parent", func(bt0 *T) {
			bt0.Run("subtest1", func(bt1 *T) {
				// this test passes
			})
			bt0.Run("subtest2", func(bt2 *T) {
				bt2.Errorf("failed because %s", "reasons")
				bt2.Errorf("and failed some more")
			})
			bt0.Errorf("and parent failed")
		})
	})

	assert.False(t, result.OK())
	assert.Len(t, result.Tests, 4)
	assert.Len(t, result.Failures, 2)

	assert.Equal(t, TestID{"parent", "subtest1"}, result.Tests[0].TestID)
	assert.Len(t, result.Tests[0].Errors, 0)

	assert.Equal(t, TestID{"parent", "subtest2"}, result.Tests[1].TestID)
	assert.Len(t, result.Tests[1].Errors, 2)
	assert.Equal(t, "failed because reasons", result.Tests[1].Errors[0].Error())
	assert.Equal(t, "and failed some more", result.Tests[1].Errors[1].Error())

	assert.Equal(t, TestID{"parent"}, result.Tests[2].TestID)
	assert.Len(t, result.Tests[2].Errors, 1)
	assert.Equal(t, "and parent failed", result.Tests[2].Errors[0].Error())

	assert.Nil(t, result.Tests[3].TestID)
	assert.Len(t, result.Tests[3].Errors, 0)
}

func TestTestScopeSkippedResult(t *testing.T) {
	result := Run(TestConfiguration{}, func(bt *T) {
		bt.Run("parent", func(bt0 *T) {
			bt0.Run("subtest1", func(bt1 *T) {
				bt1.Skip()
			})
			bt0.Run("subtest2", func(bt2 *T) {
				bt2.SkipWithReason("why not")
			})
		})
	})

	assert.True(t, result.OK())
	assert.Len(t, result.Tests, 2)
	assert.Len(t, result.Failures, 0)

	assert.Equal(t, TestID{"parent"}, result.Tests[0].TestID)
	assert.Len(t, result.Tests[0].Errors, 0)

	assert.Nil(t, result.Tests[1].TestID)
	assert.Len(t, result.Tests[1].Errors, 0)
}

func TestTestScopeNonCriticalFailure(t *testing.T) {
	result := Run(TestConfiguration{}, func(bt *T) {
		bt.Run("flaky geometry", func(bt0 *T) {
			bt0.NonCritical("fractional pixel rounding differs between engines")
			bt0.Errorf("off by one")
		})
	})

	assert.True(t, result.OK())
	assert.Len(t, result.Failures, 0)
	assert.Len(t, result.NonCriticalFailures, 1)
	assert.Equal(t, TestID{"flaky geometry"}, result.NonCriticalFailures[0].TestID)
	assert.Equal(t, "fractional pixel rounding differs between engines",
		result.NonCriticalFailures[0].Explanation)
}

func TestTestScopeFilter(t *testing.T) {
	filter := FilterFunc(func(id TestID) bool {
		return len(id) == 0 || id[0] == "b"
	})

	result := Run(TestConfiguration{Filter: filter}, func(bt *T) {
		bt.Run("a", func(bt0 *T) {
			bt0.Run("sub1a", func(bt1 *T) {})
			bt0.Run("sub2a", func(bt1 *T) {})
		})
		bt.Run("b", func(bt0 *T) {
			bt0.Run("sub1b", func(bt1 *T) {})
			bt0.Run("sub2b", func(bt1 *T) {})
		})
	})

	assert.True(t, result.OK())
	assert.Len(t, result.Tests, 4)
	assert.Len(t, result.Failures, 0)

	assert.Equal(t, TestID{"b", "sub1b"}, result.Tests[0].TestID)
	assert.Equal(t, TestID{"b", "sub2b"}, result.Tests[1].TestID)
	assert.Equal(t, TestID{"b"}, result.Tests[2].TestID)
	assert.Equal(t, TestID(nil), result.Tests[3].TestID)
}

func TestTestScopeDeferRunsCleanupsInReverseOrder(t *testing.T) {
	var order []string
	_ = Run(TestConfiguration{}, func(bt *T) {
		bt.Run("scope", func(bt0 *T) {
			bt0.Defer(func() { order = append(order, "first") })
			bt0.Defer(func() { order = append(order, "second") })
		})
	})
	assert.Equal(t, []string{"second", "first"}, order)
}

func TestTestScopeRequireCapability(t *testing.T) {
	result := Run(TestConfiguration{Capabilities: framework.Capabilities{"iframes"}}, func(bt *T) {
		bt.Run("needs iframes", func(bt0 *T) {
			bt0.RequireCapability("iframes")
		})
		bt.Run("needs popups", func(bt0 *T) {
			bt0.RequireCapability("popups")
			bt0.Errorf("should not get here")
		})
	})
	assert.True(t, result.OK())
	// the skipped test does not appear in Tests
	assert.Len(t, result.Tests, 2)
}
