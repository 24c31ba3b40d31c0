package repository_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/okian/laborconnect/internal/adapters/repository"
	"github.com/okian/laborconnect/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestInMemoryRegistry_Insert(t *testing.T) {
	Convey("Given an empty registry", t, func() {
		ctx := context.Background()
		reg := repository.NewInMemoryRegistry(ctx)

		Convey("Then it should be empty", func() {
			So(reg.Len(ctx), ShouldEqual, 0)
			So(reg.CountAvailable(ctx), ShouldEqual, 0)
			So(reg.FilterBySkillAndAvailability(ctx, "plumbing"), ShouldBeEmpty)
		})

		Convey("When inserting a worker", func() {
			stored := reg.Insert(ctx, model.Worker{Name: "Alice", Skill: "plumbing", Available: true})

			Convey("Then it should be assigned an ID", func() {
				So(stored.ID, ShouldNotBeEmpty)
				So(stored.Name, ShouldEqual, "Alice")
			})

			Convey("And it should be returned by a skill filter with its ID", func() {
				got := reg.FilterBySkillAndAvailability(ctx, "plumbing")
				So(got, ShouldHaveLength, 1)
				So(got[0], ShouldResemble, stored)
			})

			Convey("And the counters should reflect it", func() {
				So(reg.Len(ctx), ShouldEqual, 1)
				So(reg.CountAvailable(ctx), ShouldEqual, 1)
			})
		})

		Convey("When inserting two workers with the same name", func() {
			a := reg.Insert(ctx, model.Worker{Name: "Bob", Skill: "painting", Available: true})
			b := reg.Insert(ctx, model.Worker{Name: "Bob", Skill: "painting", Available: true})

			Convey("Then both should be stored with distinct IDs", func() {
				So(reg.Len(ctx), ShouldEqual, 2)
				So(a.ID, ShouldNotEqual, b.ID)
				So(reg.FilterBySkillAndAvailability(ctx, "painting"), ShouldHaveLength, 2)
			})
		})
	})
}

func TestInMemoryRegistry_Filter(t *testing.T) {
	Convey("Given a registry with mixed workers", t, func() {
		ctx := context.Background()
		reg := repository.NewInMemoryRegistry(ctx)
		reg.Insert(ctx, model.Worker{Name: "w1", Skill: "plumbing", Available: true})
		reg.Insert(ctx, model.Worker{Name: "w2", Skill: "Plumbing", Available: true})
		reg.Insert(ctx, model.Worker{Name: "w3", Skill: "plumbing", Available: false})
		reg.Insert(ctx, model.Worker{Name: "w4", Skill: "electrical", Available: true})
		reg.Insert(ctx, model.Worker{Name: "w5", Skill: "plumbing", Available: true})

		Convey("When filtering by skill", func() {
			got := reg.FilterBySkillAndAvailability(ctx, "plumbing")

			Convey("Then only exact, available matches are returned in insertion order", func() {
				So(got, ShouldHaveLength, 2)
				So(got[0].Name, ShouldEqual, "w1")
				So(got[1].Name, ShouldEqual, "w5")
			})
		})

		Convey("When filtering with a different case", func() {
			got := reg.FilterBySkillAndAvailability(ctx, "Plumbing")

			Convey("Then matching is case-sensitive", func() {
				So(got, ShouldHaveLength, 1)
				So(got[0].Name, ShouldEqual, "w2")
			})
		})

		Convey("When filtering with an empty skill", func() {
			Convey("Then the result is empty", func() {
				So(reg.FilterBySkillAndAvailability(ctx, ""), ShouldBeEmpty)
			})
		})

		Convey("When the caller mutates the returned slice", func() {
			got := reg.FilterBySkillAndAvailability(ctx, "plumbing")
			got[0].Name = "changed"

			Convey("Then the registry is unaffected", func() {
				again := reg.FilterBySkillAndAvailability(ctx, "plumbing")
				So(again[0].Name, ShouldEqual, "w1")
			})
		})

		Convey("When counting skills", func() {
			skills := reg.Skills(ctx)

			Convey("Then only available workers are counted", func() {
				So(skills["plumbing"], ShouldEqual, 2)
				So(skills["Plumbing"], ShouldEqual, 1)
				So(skills["electrical"], ShouldEqual, 1)
				So(reg.CountAvailable(ctx), ShouldEqual, 4)
			})
		})
	})
}

func TestInMemoryRegistry_Concurrency(t *testing.T) {
	Convey("Given a registry under concurrent inserts and filters", t, func() {
		ctx := context.Background()
		reg := repository.NewInMemoryRegistry(ctx)

		const writers = 16
		const perWriter = 200

		var wg sync.WaitGroup
		for i := 0; i < writers; i++ {
			wg.Add(1)
			go func(id int) {
				defer wg.Done()
				for j := 0; j < perWriter; j++ {
					reg.Insert(ctx, model.Worker{
						Name:      fmt.Sprintf("w-%d-%d", id, j),
						Skill:     "carpentry",
						Available: true,
					})
				}
			}(i)
		}

		snapshots := make(chan []model.Worker, writers)
		for i := 0; i < writers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				snapshots <- reg.FilterBySkillAndAvailability(ctx, "carpentry")
			}()
		}
		wg.Wait()
		close(snapshots)

		Convey("Then every insert is stored exactly once", func() {
			all := reg.FilterBySkillAndAvailability(ctx, "carpentry")
			So(all, ShouldHaveLength, writers*perWriter)

			seen := make(map[string]bool, len(all))
			for _, w := range all {
				So(seen[w.ID], ShouldBeFalse)
				seen[w.ID] = true
			}
		})

		Convey("And no snapshot holds a duplicated or empty entry", func() {
			for snap := range snapshots {
				seen := make(map[string]bool, len(snap))
				for _, w := range snap {
					So(w.ID, ShouldNotBeEmpty)
					So(w.Name, ShouldNotBeEmpty)
					So(seen[w.ID], ShouldBeFalse)
					seen[w.ID] = true
				}
			}
		})
	})
}
