package repository_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	repository "github.com/samprox/tally/internal/adapters/repository"
	"github.com/samprox/tally/internal/domain/model"
)

func TestMemStore(t *testing.T) {
	Convey("Given an in-memory record store", t, func() {
		ctx := context.Background()
		store := repository.NewMemStore()

		rec := model.Record{
			ID:        "rec-1",
			Title:     "Daily standup",
			CreatedAt: time.Date(2024, time.March, 15, 9, 0, 0, 0, time.UTC),
		}

		Convey("When putting and getting a record", func() {
			So(store.Put(ctx, rec), ShouldBeNil)
			got, err := store.Get(ctx, "rec-1")

			Convey("Then the record should round-trip", func() {
				So(err, ShouldBeNil)
				So(got.Title, ShouldEqual, "Daily standup")
				So(store.Count(ctx), ShouldEqual, 1)
			})
		})

		Convey("When putting a record without an ID", func() {
			err := store.Put(ctx, model.Record{Title: "no id"})

			Convey("Then it should be rejected", func() {
				So(err, ShouldWrap, repository.ErrMissingID)
			})
		})

		Convey("When replacing a record", func() {
			So(store.Put(ctx, rec), ShouldBeNil)
			updated := rec
			updated.Title = "Weekly standup"
			So(store.Put(ctx, updated), ShouldBeNil)

			Convey("Then the latest version wins without growing the store", func() {
				got, err := store.Get(ctx, "rec-1")
				So(err, ShouldBeNil)
				So(got.Title, ShouldEqual, "Weekly standup")
				So(store.Count(ctx), ShouldEqual, 1)
			})
		})

		Convey("When getting an unknown ID", func() {
			_, err := store.Get(ctx, "missing")

			Convey("Then it should report not found", func() {
				So(err, ShouldWrap, repository.ErrNotFound)
			})
		})

		Convey("When deleting a record", func() {
			So(store.Put(ctx, rec), ShouldBeNil)
			So(store.Delete(ctx, "rec-1"), ShouldBeNil)

			Convey("Then it should be gone", func() {
				_, err := store.Get(ctx, "rec-1")
				So(err, ShouldWrap, repository.ErrNotFound)
				So(store.Count(ctx), ShouldEqual, 0)
			})

			Convey("And deleting it again should report not found", func() {
				So(store.Delete(ctx, "rec-1"), ShouldWrap, repository.ErrNotFound)
			})
		})

		Convey("When listing records", func() {
			base := time.Date(2024, time.March, 15, 9, 0, 0, 0, time.UTC)
			for i := 0; i < 5; i++ {
				So(store.Put(ctx, model.Record{
					ID:        fmt.Sprintf("rec-%d", 5-i),
					CreatedAt: base.Add(time.Duration(5-i) * time.Minute),
				}), ShouldBeNil)
			}
			records, err := store.List(ctx)

			Convey("Then they should come back ordered by creation time", func() {
				So(err, ShouldBeNil)
				So(len(records), ShouldEqual, 5)
				for i := 1; i < len(records); i++ {
					So(records[i-1].CreatedAt.After(records[i].CreatedAt), ShouldBeFalse)
				}
			})
		})

		Convey("When created with a custom shard count", func() {
			sharded := repository.NewMemStore(repository.WithShardCount(32))
			for i := 0; i < 100; i++ {
				So(sharded.Put(ctx, model.Record{ID: fmt.Sprintf("rec-%d", i)}), ShouldBeNil)
			}

			Convey("Then all records should remain reachable", func() {
				So(sharded.Count(ctx), ShouldEqual, 100)
				_, err := sharded.Get(ctx, "rec-42")
				So(err, ShouldBeNil)
			})
		})
	})
}
