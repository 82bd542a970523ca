package store

import (
	"context"
	"fmt"
	"reflect"
	"sync"
	"testing"

	"github.com/shandysiswandi/gocsv/internal/dataset/entity"
	"github.com/shandysiswandi/gocsv/internal/dataset/usecase"
)

func TestInMemoryStore_Append_IsCumulative(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewInMemoryStore()

	first := []entity.Row{{"a": "1", "b": "x"}}
	second := []entity.Row{{"a": "2", "b": "y"}, {"a": "3", "b": "z"}}

	if err := store.Append(ctx, entity.Batch{ID: 1, Filename: "one.csv", Rows: 1}, first); err != nil {
		t.Fatalf("Append() err = %v", err)
	}
	if err := store.Append(ctx, entity.Batch{ID: 2, Filename: "two.csv", Rows: 2}, second); err != nil {
		t.Fatalf("Append() err = %v", err)
	}

	rows, err := store.Rows(ctx)
	if err != nil {
		t.Fatalf("Rows() err = %v", err)
	}
	want := append(append([]entity.Row{}, first...), second...)
	if !reflect.DeepEqual(rows, want) {
		t.Fatalf("Rows() = %v, want %v", rows, want)
	}

	batches, err := store.Batches(ctx)
	if err != nil {
		t.Fatalf("Batches() err = %v", err)
	}
	if len(batches) != 2 || batches[0].ID != 1 || batches[1].ID != 2 {
		t.Fatalf("Batches() = %+v, want ids 1,2", batches)
	}

	if got := store.Len(); got != 3 {
		t.Fatalf("Len() = %d, want 3", got)
	}
}

func TestInMemoryStore_Rows_ReturnsSnapshot(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewInMemoryStore()
	if err := store.Append(ctx, entity.Batch{ID: 1}, []entity.Row{{"a": "1"}}); err != nil {
		t.Fatalf("Append() err = %v", err)
	}

	snapshot, err := store.Rows(ctx)
	if err != nil {
		t.Fatalf("Rows() err = %v", err)
	}
	snapshot[0] = entity.Row{"a": "changed"}

	rows, _ := store.Rows(ctx)
	if rows[0]["a"] != "1" {
		t.Fatalf("store mutated through snapshot: %v", rows)
	}
}

func TestInMemoryStore_Find(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewInMemoryStore()
	rows := []entity.Row{
		{"a": "1", "b": "x"},
		{"a": "2", "b": "y"},
		{"a": "1", "b": "z"},
		{"b": "1"},
	}
	if err := store.Append(ctx, entity.Batch{ID: 1}, rows); err != nil {
		t.Fatalf("Append() err = %v", err)
	}

	got, err := store.Find(ctx, usecase.RowFilter{Column: "a", Value: "1"})
	if err != nil {
		t.Fatalf("Find() err = %v", err)
	}
	if !reflect.DeepEqual(got, []entity.Row{rows[0], rows[2]}) {
		t.Fatalf("Find() = %v", got)
	}

	t.Run("NoMatchIsEmptyNotNil", func(t *testing.T) {
		got, err := store.Find(ctx, usecase.RowFilter{Column: "a", Value: "9"})
		if err != nil {
			t.Fatalf("Find() err = %v", err)
		}
		if got == nil || len(got) != 0 {
			t.Fatalf("Find() = %#v, want empty slice", got)
		}
	})

	t.Run("ExactMatchOnly", func(t *testing.T) {
		for _, value := range []string{"01", "1.0", " 1", "X"} {
			got, _ := store.Find(ctx, usecase.RowFilter{Column: "a", Value: value})
			if len(got) != 0 {
				t.Fatalf("Find(%q) = %v, want no rows", value, got)
			}
		}
	})
}

func TestInMemoryStore_ConcurrentAppendIsAtomic(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewInMemoryStore()

	const writers = 8
	const perBatch = 50

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			batch := make([]entity.Row, perBatch)
			for i := range batch {
				batch[i] = entity.Row{"writer": fmt.Sprint(w)}
			}
			_ = store.Append(ctx, entity.Batch{ID: int64(w), Rows: perBatch}, batch)
		}(w)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	for {
		rows, _ := store.Rows(ctx)
		if len(rows)%perBatch != 0 {
			t.Fatalf("observed partial batch: %d rows", len(rows))
		}
		select {
		case <-done:
			if got := store.Len(); got != writers*perBatch {
				t.Fatalf("Len() = %d, want %d", got, writers*perBatch)
			}
			return
		default:
		}
	}
}
