package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	check "gopkg.in/check.v1"
)

var _ = check.Suite(new(GroupTestSuite))

func Test(t *testing.T) {
	check.TestingT(t)
}

type GroupTestSuite struct{}

func (s *GroupTestSuite) TestGroupTerminatesAfterSingleError(c *check.C) {
	grp := Group{
		testService{id: "builder"},
		testService{id: "frontend", err: fmt.Errorf("listen address in use")},
	}

	err := grp.Execute(context.TODO())
	c.Assert(err, check.Not(check.IsNil))
	c.Assert(err, check.ErrorMatches, "(?ms).*frontend: listen address in use.*")
}

func (s *GroupTestSuite) TestGroupAccumulatesErrors(c *check.C) {
	grp := Group{
		testService{id: "a", err: fmt.Errorf("boom")},
		testService{id: "b", err: fmt.Errorf("bang")},
	}

	err := grp.Execute(context.TODO())
	c.Assert(err, check.Not(check.IsNil))
	c.Assert(err, check.ErrorMatches, "(?ms).*a: boom.*")
	c.Assert(err, check.ErrorMatches, "(?ms).*b: bang.*")
}

func (s *GroupTestSuite) TestGroupTerminatesFromContext(c *check.C) {
	grp := Group{
		testService{id: "builder"},
		testService{id: "frontend"},
	}

	ctx, cancelFn := context.WithTimeout(context.TODO(), 200*time.Millisecond)
	defer cancelFn()

	c.Assert(grp.Execute(ctx), check.IsNil)
}

type testService struct {
	id  string
	err error
}

func (s testService) Name() string { return s.id }

func (s testService) Run(ctx context.Context) error {
	if s.err != nil {
		return s.err
	}

	<-ctx.Done()

	return nil
}
