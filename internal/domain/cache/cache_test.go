package cache_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/okian/iplstats/internal/domain/cache"
	. "github.com/smartystreets/goconvey/convey"
)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func TestCache(t *testing.T) {
	ctx := context.Background()

	Convey("Given a cache with a 30s TTL", t, func() {
		clk := &clock{now: time.Date(2019, 5, 12, 0, 0, 0, 0, time.UTC)}
		c := cache.New(cache.WithTTL(30*time.Second), cache.WithClock(clk.Now))

		Convey("When a value is stored", func() {
			c.Set(ctx, "phase|team=mumbai indians", 42)

			Convey("Then it is returned while fresh", func() {
				v, ok := c.Get(ctx, "phase", "phase|team=mumbai indians")
				So(ok, ShouldBeTrue)
				So(v, ShouldEqual, 42)
				So(c.Size(), ShouldEqual, 1)
			})

			Convey("Then it expires after the TTL", func() {
				clk.advance(31 * time.Second)
				_, ok := c.Get(ctx, "phase", "phase|team=mumbai indians")
				So(ok, ShouldBeFalse)
				So(c.Size(), ShouldEqual, 0)
			})

			Convey("Then storing it again replaces the value", func() {
				c.Set(ctx, "phase|team=mumbai indians", 43)
				v, _ := c.Get(ctx, "phase", "phase|team=mumbai indians")
				So(v, ShouldEqual, 43)
				So(c.Size(), ShouldEqual, 1)
			})
		})

		Convey("When the cache is purged", func() {
			c.Set(ctx, "a", 1)
			c.Set(ctx, "b", 2)
			c.Purge(ctx)

			Convey("Then it is empty", func() {
				So(c.Size(), ShouldEqual, 0)
				_, ok := c.Get(ctx, "milestones", "a")
				So(ok, ShouldBeFalse)
			})
		})
	})

	Convey("Given a cache bounded to three entries", t, func() {
		c := cache.New(cache.WithMaxSize(3))
		for i := 1; i <= 4; i++ {
			c.Set(ctx, fmt.Sprintf("k%d", i), i)
		}

		Convey("Then the oldest entry is evicted", func() {
			So(c.Size(), ShouldEqual, 3)
			_, ok := c.Get(ctx, "test", "k1")
			So(ok, ShouldBeFalse)
			v, ok := c.Get(ctx, "test", "k4")
			So(ok, ShouldBeTrue)
			So(v, ShouldEqual, 4)
		})
	})

	Convey("Given a cache with caching disabled", t, func() {
		c := cache.New(cache.WithTTL(0))
		c.Set(ctx, "k", 1)

		Convey("Then nothing is stored", func() {
			_, ok := c.Get(ctx, "test", "k")
			So(ok, ShouldBeFalse)
			So(c.Size(), ShouldEqual, 0)
		})
	})

	Convey("Given concurrent readers and writers", t, func() {
		c := cache.New(cache.WithMaxSize(50))
		var wg sync.WaitGroup
		for g := 0; g < 8; g++ {
			wg.Add(1)
			go func(g int) {
				defer wg.Done()
				for i := 0; i < 100; i++ {
					key := fmt.Sprintf("k%d", (g*100+i)%80)
					c.Set(ctx, key, i)
					c.Get(ctx, "test", key)
				}
			}(g)
		}
		wg.Wait()

		Convey("Then the bound holds", func() {
			So(c.Size(), ShouldBeLessThanOrEqualTo, 50)
		})
	})
}
