package services

import (
	"testing"

	"insist-app/models"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func menuNode(id uint, children ...models.Menu) models.Menu {
	return models.Menu{
		Model:    gorm.Model{ID: id},
		Children: children,
	}
}

// Tree: A{B{D,E}, C}
func sampleTree() []models.Menu {
	return []models.Menu{
		menuNode(1, // A
			menuNode(2, // B
				menuNode(4), // D
				menuNode(5), // E
			),
			menuNode(3), // C
		),
	}
}

func TestToggleGrantsWholeSubtree(t *testing.T) {
	tree := sampleTree()

	granted := Toggle(tree, 2, map[uint]bool{})

	assert.Equal(t, map[uint]bool{2: true, 4: true, 5: true}, granted)
}

func TestToggleLeafBehavesLikeInternalNode(t *testing.T) {
	tree := sampleTree()

	granted := Toggle(tree, 4, map[uint]bool{})
	assert.Equal(t, map[uint]bool{4: true}, granted)
}

func TestToggleRootGrantsEverything(t *testing.T) {
	tree := sampleTree()

	granted := Toggle(tree, 1, map[uint]bool{})
	assert.Equal(t, map[uint]bool{1: true, 2: true, 3: true, 4: true, 5: true}, granted)
}

func TestToggleCheckedNodeRevokesSubtree(t *testing.T) {
	tree := sampleTree()

	granted := Toggle(tree, 2, map[uint]bool{})
	granted = Toggle(tree, 2, granted)

	assert.Empty(t, granted)
}

func TestToggleIsIdempotentPair(t *testing.T) {
	tree := sampleTree()
	initial := map[uint]bool{3: true}

	granted := Toggle(tree, 2, initial)
	granted = Toggle(tree, 2, granted)

	assert.Equal(t, initial, granted)
	// input tidak boleh dimutasi
	assert.Equal(t, map[uint]bool{3: true}, initial)
}

func TestToggleIndeterminateAncestorGrantsWholeTree(t *testing.T) {
	tree := sampleTree()

	// centang B dulu: A jadi indeterminate
	granted := Toggle(tree, 2, map[uint]bool{})
	states := CheckStates(tree, granted)
	assert.Equal(t, StateIndeterminate, states[1])
	assert.Equal(t, StateChecked, states[2])
	assert.Equal(t, StateUnchecked, states[3])

	// toggle A yang indeterminate harus men-grant seluruh tree
	granted = Toggle(tree, 1, granted)
	assert.Equal(t, map[uint]bool{1: true, 2: true, 3: true, 4: true, 5: true}, granted)
}

func TestToggleToleratesRedundantEntries(t *testing.T) {
	tree := sampleTree()

	// B dan D dua-duanya eksplisit di granted (redundan)
	granted := map[uint]bool{2: true, 4: true, 5: true}

	granted = Toggle(tree, 2, granted)
	assert.Empty(t, granted)
}

func TestToggleUnknownNodeIsNoop(t *testing.T) {
	tree := sampleTree()
	initial := map[uint]bool{3: true}

	granted := Toggle(tree, 99, initial)
	assert.Equal(t, initial, granted)
}

func TestCheckStatesDerivation(t *testing.T) {
	tree := sampleTree()

	tests := []struct {
		name    string
		granted map[uint]bool
		want    map[uint]string
	}{
		{
			name:    "kosong semua unchecked",
			granted: map[uint]bool{},
			want: map[uint]string{
				1: StateUnchecked, 2: StateUnchecked, 3: StateUnchecked,
				4: StateUnchecked, 5: StateUnchecked,
			},
		},
		{
			name:    "leaf granted membuat semua ancestor indeterminate",
			granted: map[uint]bool{4: true},
			want: map[uint]string{
				1: StateIndeterminate, 2: StateIndeterminate, 3: StateUnchecked,
				4: StateChecked, 5: StateUnchecked,
			},
		},
		{
			name:    "seluruh tree granted",
			granted: map[uint]bool{1: true, 2: true, 3: true, 4: true, 5: true},
			want: map[uint]string{
				1: StateChecked, 2: StateChecked, 3: StateChecked,
				4: StateChecked, 5: StateChecked,
			},
		},
		{
			name:    "node granted tanpa descendant tetap checked",
			granted: map[uint]bool{2: true},
			want: map[uint]string{
				1: StateIndeterminate, 2: StateChecked, 3: StateUnchecked,
				4: StateUnchecked, 5: StateUnchecked,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CheckStates(tree, tt.granted))
		})
	}
}

func TestSubtreeCompleteness(t *testing.T) {
	tree := sampleTree()
	subtrees := map[uint][]uint{
		1: {1, 2, 3, 4, 5},
		2: {2, 4, 5},
		3: {3},
		4: {4},
		5: {5},
	}

	for nodeID, wantIDs := range subtrees {
		granted := Toggle(tree, nodeID, map[uint]bool{})
		assert.Len(t, granted, len(wantIDs))
		for _, id := range wantIDs {
			assert.True(t, granted[id], "node %d harus ter-grant setelah toggle %d", id, nodeID)
		}
	}
}

func TestBuildGrantedSetDeduplicates(t *testing.T) {
	granted := BuildGrantedSet([]uint{1, 2, 2, 3, 1})
	assert.Equal(t, map[uint]bool{1: true, 2: true, 3: true}, granted)
}

func TestMultiRootForest(t *testing.T) {
	forest := []models.Menu{
		menuNode(1, menuNode(2)),
		menuNode(10, menuNode(11), menuNode(12)),
	}

	granted := Toggle(forest, 10, map[uint]bool{})
	assert.Equal(t, map[uint]bool{10: true, 11: true, 12: true}, granted)

	states := CheckStates(forest, granted)
	assert.Equal(t, StateUnchecked, states[1])
	assert.Equal(t, StateUnchecked, states[2])
	assert.Equal(t, StateChecked, states[10])
	assert.Equal(t, StateChecked, states[11])
	assert.Equal(t, StateChecked, states[12])
}
