package testutils

import (
	"github.com/itbasis/go-clock"
)

// TestController bundles the fake external services a controller under test
// talks to.
type TestController struct {
	Clock       *clock.Mock
	fakeSleeper *FakeSleeperServer
	fakeKTC     *FakeKTCServer
}

func NewTestController() *TestController {
	return &TestController{
		Clock:       clock.NewMock(),
		fakeSleeper: NewFakeSleeperServer(),
		fakeKTC:     NewFakeKTCServer(),
	}
}

func (c *TestController) Close() {
	c.fakeSleeper.Close()
	c.fakeKTC.Close()
}

func (c *TestController) SleeperURL() string {
	return c.fakeSleeper.URL()
}

func (c *TestController) KTCURL() string {
	return c.fakeKTC.URL()
}
