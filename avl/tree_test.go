// Copyright 2025 Naren Yellavula
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package avl_test

import (
	"math"
	"math/rand/v2"
	"slices"
	"strings"
	"testing"

	"github.com/cybrota/avlmap/avl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type AVLTestCase struct {
	Name          string
	InitialKeys   []string
	KeysToInsert  []string
	KeysToDelete  []string
	ExpectedOrder []string // In-order traversal expectation after operations
}

func TestAVLTreeOperations(t *testing.T) {
	testCases := []AVLTestCase{
		{
			Name:          "Simple Insertion",
			KeysToInsert:  []string{"apple", "banana", "cherry"},
			ExpectedOrder: []string{"apple", "banana", "cherry"},
		},
		{
			Name:          "Insertion with Balancing (Right-Heavy)",
			InitialKeys:   []string{"apple"},
			KeysToInsert:  []string{"banana", "cherry"},
			ExpectedOrder: []string{"apple", "banana", "cherry"},
		},
		{
			Name:          "Deletion with Balancing (Left-Heavy)",
			InitialKeys:   []string{"cherry", "banana", "apple"},
			KeysToDelete:  []string{"cherry"},
			ExpectedOrder: []string{"apple", "banana"},
		},
		{
			Name:          "Mixed Operations",
			InitialKeys:   []string{"dog", "cat"},
			KeysToInsert:  []string{"elephant", "bird"},
			KeysToDelete:  []string{"cat"},
			ExpectedOrder: []string{"bird", "dog", "elephant"},
		},
		{
			Name:          "Delete Missing Key",
			InitialKeys:   []string{"dog", "cat"},
			KeysToDelete:  []string{"zebra"},
			ExpectedOrder: []string{"cat", "dog"},
		},
		{
			Name:          "Delete Everything",
			InitialKeys:   []string{"b", "a", "c", "d"},
			KeysToDelete:  []string{"a", "b", "c", "d"},
			ExpectedOrder: nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			tree := avl.New[string, int]()
			for _, key := range tc.InitialKeys {
				tree.Insert(key, 0)
			}
			for _, key := range tc.KeysToInsert {
				tree.Insert(key, 0)
			}
			for _, key := range tc.KeysToDelete {
				tree.Delete(key)
			}

			assert.Equal(t, tc.ExpectedOrder, slices.Collect(tree.Keys()))
			require.NoError(t, tree.Validate())
		})
	}
}

func TestRoundTrip(t *testing.T) {
	tree := avl.New[int, int]()
	for _, k := range []int{10, 5, 25, 15} {
		tree.Insert(k, k)
	}

	assert.Equal(t, []int{5, 10, 15, 25}, slices.Collect(tree.Keys()))
	assert.Equal(t, 4, tree.Len())

	h, err := tree.Height()
	require.NoError(t, err)
	assert.Equal(t, 2, h)
}

func TestIteratorWalk(t *testing.T) {
	tree := avl.New[int, string]()
	for _, k := range []int{10, 5, 25, 15} {
		tree.Insert(k, "v")
	}

	var got []int
	for it := tree.Begin(); !it.Equal(tree.End()); it.Next() {
		got = append(got, it.Key())
	}
	assert.Equal(t, []int{5, 10, 15, 25}, got)

	end := tree.End()
	end.Next()
	assert.False(t, end.Valid(), "Next at end stays at end")
}

func TestIteratorSetValue(t *testing.T) {
	tree := avl.New[string, int]()
	for _, k := range []string{"a", "b", "c"} {
		tree.Insert(k, 1)
	}

	for it := tree.Begin(); it.Valid(); it.Next() {
		it.SetValue(it.Value() + len(it.Key()) + 1)
	}

	for k, v := range tree.All() {
		assert.Equal(t, 3, v, "key %q", k)
	}
}

func TestDuplicateInsertKeepsFirstValue(t *testing.T) {
	tree := avl.New[string, string]()
	first := tree.Insert("k", "first")
	second := tree.Insert("k", "second")

	assert.Equal(t, 1, tree.Len())
	assert.Equal(t, "first", second.Value())
	assert.Equal(t, first, second)

	n, ok := tree.Find("k")
	require.True(t, ok)
	assert.Equal(t, "first", n.Value())
}

func TestFindAfterInsert(t *testing.T) {
	tree := avl.New[int, string]()
	for i := 0; i < 200; i++ {
		tree.Insert(i*7%200, strings.Repeat("x", i%5))
	}

	for i := 0; i < 200; i++ {
		n, ok := tree.Find(i * 7 % 200)
		require.True(t, ok)
		assert.Equal(t, strings.Repeat("x", i%5), n.Value())
	}

	_, ok := tree.Find(1000)
	assert.False(t, ok)
}

func TestEraseCases(t *testing.T) {
	build := func() *avl.Tree[int, int] {
		tree := avl.New[int, int]()
		for _, k := range []int{10, 5, 25, 15} {
			tree.Insert(k, k*10)
		}
		return tree
	}

	testCases := []struct {
		Name     string
		Erase    int
		Expected []int
	}{
		{Name: "leaf", Erase: 5, Expected: []int{10, 15, 25}},
		{Name: "one child", Erase: 25, Expected: []int{5, 10, 15}},
		{Name: "two children", Erase: 10, Expected: []int{5, 15, 25}},
		{Name: "leaf under one child", Erase: 15, Expected: []int{5, 10, 25}},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			tree := build()
			n, ok := tree.Find(tc.Erase)
			require.True(t, ok)
			require.NoError(t, tree.Erase(n))

			assert.Equal(t, tc.Expected, slices.Collect(tree.Keys()))
			require.NoError(t, tree.Validate())

			_, ok = tree.Find(tc.Erase)
			assert.False(t, ok)

			h, err := tree.Height()
			require.NoError(t, err)
			assert.LessOrEqual(t, h, 1)

			for k, v := range tree.All() {
				assert.Equal(t, k*10, v, "payload follows its key")
			}
		})
	}
}

func TestEraseLeafRebalancesToNewRoot(t *testing.T) {
	tree := avl.New[int, int]()
	for _, k := range []int{10, 5, 25, 15} {
		tree.Insert(k, k)
	}

	n, _ := tree.Find(5)
	require.NoError(t, tree.Erase(n))

	levels := tree.Levels()
	require.Len(t, levels, 2)
	assert.Equal(t, 15, levels[0][0].Key)
	assert.Equal(t, []avl.Entry[int, int]{{Key: 10, Value: 10}, {Key: 25, Value: 25}}, levels[1])
}

func TestEraseRejectsInvalidNodes(t *testing.T) {
	tree := avl.New[int, int]()
	other := avl.New[int, int]()
	for _, k := range []int{10, 5, 25, 15} {
		tree.Insert(k, k)
		other.Insert(k, k)
	}

	assert.ErrorIs(t, tree.Erase(avl.Node[int, int]{}), avl.ErrInvalidNode)

	foreign, _ := other.Find(10)
	assert.ErrorIs(t, tree.Erase(foreign), avl.ErrInvalidNode)

	n, _ := tree.Find(5)
	require.NoError(t, tree.Erase(n))
	assert.False(t, n.Valid())
	assert.ErrorIs(t, tree.Erase(n), avl.ErrInvalidNode)

	assert.Equal(t, 3, tree.Len())
	assert.Equal(t, 4, other.Len())
	require.NoError(t, tree.Validate())
}

func TestTwoChildEraseInvalidatesBothHandles(t *testing.T) {
	tree := avl.New[int, string]()
	for _, k := range []int{10, 5, 25, 15} {
		tree.Insert(k, "v")
	}

	target, _ := tree.Find(10)
	succ, _ := tree.Find(15)
	require.NoError(t, tree.Erase(target))

	assert.False(t, target.Valid())
	assert.False(t, succ.Valid())
	assert.ErrorIs(t, tree.Erase(target), avl.ErrInvalidNode)
	assert.Panics(t, func() { _ = succ.Key() })

	moved, ok := tree.Find(15)
	require.True(t, ok)
	assert.Equal(t, 15, moved.Key())
}

func TestDelete(t *testing.T) {
	tree := avl.New[string, string]()
	tree.Insert("a", "data:a")
	tree.Insert("b", "data:b")

	v, ok := tree.Delete("a")
	assert.True(t, ok)
	assert.Equal(t, "data:a", v)

	v, ok = tree.Delete("a")
	assert.False(t, ok)
	assert.Empty(t, v)
}

func TestEmptyTree(t *testing.T) {
	tree := avl.New[int, int]()

	assert.True(t, tree.IsEmpty())
	assert.False(t, tree.Begin().Valid())
	assert.True(t, tree.Begin().Equal(tree.End()))
	assert.Nil(t, tree.Levels())

	_, err := tree.Height()
	assert.ErrorIs(t, err, avl.ErrEmptyTree)
	_, err = tree.Min()
	assert.ErrorIs(t, err, avl.ErrEmptyTree)
	_, err = tree.Max()
	assert.ErrorIs(t, err, avl.ErrEmptyTree)

	assert.Panics(t, func() { _ = tree.Begin().Key() })
}

func TestMinMax(t *testing.T) {
	tree := avl.New[int, int]()
	for _, k := range []int{40, 20, 60, 10, 30, 50, 70} {
		tree.Insert(k, k)
	}

	lo, err := tree.Min()
	require.NoError(t, err)
	hi, err := tree.Max()
	require.NoError(t, err)
	assert.Equal(t, 10, lo.Key())
	assert.Equal(t, 70, hi.Key())
	assert.Equal(t, 0, lo.Height())
}

func TestEraseAllThenReuse(t *testing.T) {
	tree := avl.New[int, int]()
	keys := []int{8, 3, 12, 1, 5, 10, 14, 4, 6}
	for _, k := range keys {
		tree.Insert(k, k)
	}
	for _, k := range keys {
		n, ok := tree.Find(k)
		require.True(t, ok)
		require.NoError(t, tree.Erase(n))
		require.NoError(t, tree.Validate())
	}

	assert.True(t, tree.IsEmpty())
	assert.Equal(t, 0, tree.Len())
	_, err := tree.Height()
	assert.ErrorIs(t, err, avl.ErrEmptyTree)

	tree.Insert(42, 1)
	h, err := tree.Height()
	require.NoError(t, err)
	assert.Equal(t, 0, h)
	assert.Equal(t, []int{42}, slices.Collect(tree.Keys()))
}

func TestClear(t *testing.T) {
	tree := avl.New[int, int]()
	n := tree.Insert(1, 1)
	tree.Insert(2, 2)

	tree.Clear()
	assert.True(t, tree.IsEmpty())
	assert.False(t, n.Valid())

	again := tree.Insert(1, 100)
	assert.False(t, n.Valid(), "old handle must not alias a reused slot")
	assert.Equal(t, 100, again.Value())
	require.NoError(t, tree.Validate())
}

func TestCeiling(t *testing.T) {
	tree := avl.New[int, int]()
	for _, k := range []int{10, 20, 30, 40} {
		tree.Insert(k, k)
	}

	testCases := []struct {
		Key   int
		Want  int
		Valid bool
	}{
		{Key: 5, Want: 10, Valid: true},
		{Key: 10, Want: 10, Valid: true},
		{Key: 11, Want: 20, Valid: true},
		{Key: 40, Want: 40, Valid: true},
		{Key: 41, Valid: false},
	}
	for _, tc := range testCases {
		it := tree.Ceiling(tc.Key)
		require.Equal(t, tc.Valid, it.Valid(), "ceiling(%d)", tc.Key)
		if tc.Valid {
			assert.Equal(t, tc.Want, it.Key(), "ceiling(%d)", tc.Key)
		}
	}
}

func TestCustomComparator(t *testing.T) {
	// case-insensitive, descending
	tree := avl.NewFunc[string, int](func(a, b string) int {
		return strings.Compare(strings.ToLower(b), strings.ToLower(a))
	})
	tree.Insert("alpha", 1)
	tree.Insert("Charlie", 2)
	tree.Insert("bravo", 3)
	tree.Insert("ALPHA", 4)

	assert.Equal(t, []string{"Charlie", "bravo", "alpha"}, slices.Collect(tree.Keys()))
	assert.Panics(t, func() { avl.NewFunc[string, int](nil) })
}

func TestAllStopsEarly(t *testing.T) {
	tree := avl.New[int, int]()
	for i := range 10 {
		tree.Insert(i, i)
	}

	var seen []int
	for k := range tree.All() {
		if k == 3 {
			break
		}
		seen = append(seen, k)
	}
	assert.Equal(t, []int{0, 1, 2}, seen)
}

type rebalance struct {
	Case avl.Imbalance
	At   int
}

type recorder struct {
	inserted   []int
	erased     []int
	rebalanced []rebalance
}

func (r *recorder) Inserted(key int) { r.inserted = append(r.inserted, key) }
func (r *recorder) Erased(key int)   { r.erased = append(r.erased, key) }
func (r *recorder) Rebalanced(c avl.Imbalance, at int) {
	r.rebalanced = append(r.rebalanced, rebalance{Case: c, At: at})
}

func TestRotationCases(t *testing.T) {
	testCases := []struct {
		Name  string
		Keys  []int
		Want  avl.Imbalance
		Label string
	}{
		{Name: "left-left", Keys: []int{3, 2, 1}, Want: avl.LL, Label: "LL"},
		{Name: "left-right", Keys: []int{3, 1, 2}, Want: avl.LR, Label: "LR"},
		{Name: "right-right", Keys: []int{1, 2, 3}, Want: avl.RR, Label: "RR"},
		{Name: "right-left", Keys: []int{1, 3, 2}, Want: avl.RL, Label: "RL"},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			rec := &recorder{}
			tree := avl.New[int, int]()
			tree.SetObserver(rec)
			for _, k := range tc.Keys {
				tree.Insert(k, k)
			}

			assert.Equal(t, tc.Keys, rec.inserted)
			require.Equal(t, []rebalance{{Case: tc.Want, At: tc.Keys[0]}}, rec.rebalanced)
			assert.Equal(t, tc.Label, tc.Want.String())

			levels := tree.Levels()
			require.Len(t, levels, 2)
			assert.Equal(t, 2, levels[0][0].Key)
			require.NoError(t, tree.Validate())
		})
	}
}

func TestEraseUsesChildBalanceSign(t *testing.T) {
	// after erasing 5 the root is right-heavy with an evenly balanced right
	// child; only a single left rotation keeps the tree valid
	rec := &recorder{}
	tree := avl.New[int, int]()
	for _, k := range []int{10, 5, 20, 15, 25} {
		tree.Insert(k, k)
	}
	tree.SetObserver(rec)

	_, ok := tree.Delete(5)
	require.True(t, ok)
	assert.Equal(t, []rebalance{{Case: avl.RR, At: 10}}, rec.rebalanced)
	assert.Equal(t, []int{5}, rec.erased)
	require.NoError(t, tree.Validate())

	h, _ := tree.Height()
	assert.Equal(t, 2, h)
}

func heightBound(n int) float64 {
	return 1.44*math.Log2(float64(n+2)) - 0.328
}

func assertHealthy(t *testing.T, tree *avl.Tree[int, int]) {
	t.Helper()
	require.NoError(t, tree.Validate())
	if tree.IsEmpty() {
		return
	}
	h, err := tree.Height()
	require.NoError(t, err)
	require.LessOrEqual(t, float64(h), heightBound(tree.Len()), "height %d for %d nodes", h, tree.Len())
}

func TestRandomOperations(t *testing.T) {
	rng := rand.New(rand.NewPCG(2014, 2019))

	for round := 0; round < 5; round++ {
		tree := avl.New[int, int]()
		shadow := map[int]int{}

		for i := 0; i < 1500; i++ {
			k := rng.IntN(2000)
			if rng.IntN(3) == 0 {
				n, ok := tree.Find(k)
				_, want := shadow[k]
				require.Equal(t, want, ok)
				if ok {
					require.NoError(t, tree.Erase(n))
					delete(shadow, k)
				}
			} else {
				tree.Insert(k, i)
				if _, ok := shadow[k]; !ok {
					shadow[k] = i
				}
			}
			assertHealthy(t, tree)
		}

		require.Equal(t, len(shadow), tree.Len())
		for k, v := range shadow {
			n, ok := tree.Find(k)
			require.True(t, ok, "key %d", k)
			require.Equal(t, v, n.Value(), "key %d", k)
		}

		expected := make([]int, 0, len(shadow))
		for k := range shadow {
			expected = append(expected, k)
		}
		slices.Sort(expected)
		require.Equal(t, expected, slices.Collect(tree.Keys()))

		for _, k := range rng.Perm(2000) {
			if _, ok := tree.Delete(k); ok {
				assertHealthy(t, tree)
			}
		}
		require.True(t, tree.IsEmpty())
	}
}

func TestSequentialInsertHeight(t *testing.T) {
	tree := avl.New[int, int]()
	for i := 0; i < 1<<12; i++ {
		tree.Insert(i, i)
	}
	assertHealthy(t, tree)

	h, err := tree.Height()
	require.NoError(t, err)
	assert.Equal(t, 12, h, "ascending inserts fill a perfect tree")
}
