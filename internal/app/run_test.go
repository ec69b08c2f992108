package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/okian/iplstats/internal/analytics"
	"github.com/okian/iplstats/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRun(t *testing.T) {
	Convey("Given a started service", t, func() {
		ctx := context.Background()
		svc := New(WithLogger(logger.Nop()))
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		Convey("When a pipeline panics", func() {
			out, err := run(ctx, svc, "boom", analytics.Filter{}, func(*analytics.Dataset) ([]int, error) {
				panic("index out of range")
			})

			Convey("Then the caller gets an internal error and no partial result", func() {
				So(out, ShouldBeNil)
				So(errors.Is(err, ErrInternal), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "service.boom")
			})
		})

		Convey("When a pipeline fails", func() {
			calls := 0
			fail := func(*analytics.Dataset) (int, error) {
				calls++
				return 0, fmt.Errorf("%w: team %q", analytics.ErrNotFound, "X")
			}
			_, first := run(ctx, svc, "failing", analytics.Filter{Team: "X"}, fail)
			_, second := run(ctx, svc, "failing", analytics.Filter{Team: "X"}, fail)

			Convey("Then the failure is classified and never cached", func() {
				So(errors.Is(first, ErrNotFound), ShouldBeTrue)
				So(errors.Is(second, ErrNotFound), ShouldBeTrue)
				So(calls, ShouldEqual, 2)
			})
		})

		Convey("When filters differ only in spelling", func() {
			calls := 0
			count := func(*analytics.Dataset) (int, error) {
				calls++
				return calls, nil
			}
			a, _ := run(ctx, svc, "spelling", analytics.Filter{Team: "Mumbai Indians"}, count)
			b, _ := run(ctx, svc, "spelling", analytics.Filter{Team: "  mumbai   indians "}, count)

			Convey("Then they share one cache entry", func() {
				So(a, ShouldEqual, 1)
				So(b, ShouldEqual, 1)
				So(calls, ShouldEqual, 1)
			})
		})
	})
}

func TestWrap(t *testing.T) {
	Convey("Given errors from different layers", t, func() {
		Convey("Then analytics sentinels map to kinds", func() {
			So(Code(Wrap("op", analytics.ErrInvalidFilter)), ShouldEqual, CodeBadRequest)
			So(Code(Wrap("op", analytics.ErrNotFound)), ShouldEqual, CodeNotFound)
			So(Code(Wrap("op", errors.New("disk on fire"))), ShouldEqual, CodeInternal)
			So(Wrap("op", nil), ShouldBeNil)
		})

		Convey("Then an already classified error is kept", func() {
			inner := NewKind("inner", ErrBadRequest, "team is required")
			So(Wrap("outer", inner), ShouldEqual, inner)
			So(inner.Error(), ShouldEqual, "inner: team is required")
		})
	})
}
