package repositories

import (
	"testing"

	"insist-app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func flatMenu(id uint, name string, order int, parentID *uint) models.Menu {
	return models.Menu{
		Model:     gorm.Model{ID: id},
		Name:      name,
		Path:      "/" + name,
		MenuOrder: order,
		ParentID:  parentID,
	}
}

func uintPtr(v uint) *uint { return &v }

func TestBuildMenuTreeNestsAndKeepsOrder(t *testing.T) {
	// rows sudah terurut by menu_order, sebagaimana hasil query GetTree
	flat := []models.Menu{
		flatMenu(1, "master", 1, nil),
		flatMenu(4, "admin", 2, nil),
		flatMenu(2, "warehouse", 1, uintPtr(1)),
		flatMenu(3, "currency", 2, uintPtr(1)),
		flatMenu(5, "approval", 1, uintPtr(4)),
	}

	tree := BuildMenuTree(flat)

	require.Len(t, tree.Roots, 2)
	assert.Empty(t, tree.Orphans)
	assert.Empty(t, tree.Cycles)

	assert.Equal(t, uint(1), tree.Roots[0].ID)
	assert.Equal(t, uint(4), tree.Roots[1].ID)

	require.Len(t, tree.Roots[0].Children, 2)
	assert.Equal(t, "warehouse", tree.Roots[0].Children[0].Name)
	assert.Equal(t, "currency", tree.Roots[0].Children[1].Name)

	require.Len(t, tree.Roots[1].Children, 1)
	assert.Equal(t, "approval", tree.Roots[1].Children[0].Name)
}

func TestBuildMenuTreePromotesOrphans(t *testing.T) {
	flat := []models.Menu{
		flatMenu(1, "master", 1, nil),
		flatMenu(2, "orphan", 1, uintPtr(99)), // parent tidak ada
	}

	tree := BuildMenuTree(flat)

	require.Len(t, tree.Roots, 2)
	assert.Equal(t, []uint{2}, tree.Orphans)
}

func TestBuildMenuTreeReportsCycles(t *testing.T) {
	// 1 -> 2 -> 1
	flat := []models.Menu{
		flatMenu(1, "a", 1, uintPtr(2)),
		flatMenu(2, "b", 1, uintPtr(1)),
		flatMenu(3, "root", 2, nil),
	}

	tree := BuildMenuTree(flat)

	// node dalam cycle dipromosikan jadi root, load tidak gagal
	assert.Len(t, tree.Roots, 3)
	assert.ElementsMatch(t, []uint{1, 2}, tree.Cycles)
}

func TestGetTreeOrdersSiblings(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMenuRepository(db)

	parent := models.Menu{Name: "Master", Path: "#", MenuOrder: 1}
	require.NoError(t, db.Create(&parent).Error)

	// insert dengan urutan acak
	for _, m := range []models.Menu{
		{Name: "Third", Path: "/c", MenuOrder: 3, ParentID: &parent.ID},
		{Name: "First", Path: "/a", MenuOrder: 1, ParentID: &parent.ID},
		{Name: "Second", Path: "/b", MenuOrder: 2, ParentID: &parent.ID},
	} {
		menu := m
		require.NoError(t, db.Create(&menu).Error)
	}

	tree, err := repo.GetTree()
	require.NoError(t, err)
	require.Len(t, tree.Roots, 1)
	require.Len(t, tree.Roots[0].Children, 3)

	assert.Equal(t, "First", tree.Roots[0].Children[0].Name)
	assert.Equal(t, "Second", tree.Roots[0].Children[1].Name)
	assert.Equal(t, "Third", tree.Roots[0].Children[2].Name)
}

func TestFindPathReturnsRootToNode(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMenuRepository(db)

	root := models.Menu{Name: "Root", Path: "#", MenuOrder: 1}
	require.NoError(t, db.Create(&root).Error)
	mid := models.Menu{Name: "Mid", Path: "/mid", MenuOrder: 1, ParentID: &root.ID}
	require.NoError(t, db.Create(&mid).Error)
	leaf := models.Menu{Name: "Leaf", Path: "/leaf", MenuOrder: 1, ParentID: &mid.ID}
	require.NoError(t, db.Create(&leaf).Error)

	path, err := repo.FindPath(leaf.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{root.ID, mid.ID, leaf.ID}, path)
}

func TestFindPathUnknownNode(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMenuRepository(db)

	_, err := repo.FindPath(42)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestWouldCycle(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMenuRepository(db)

	root := models.Menu{Name: "Root", Path: "#", MenuOrder: 1}
	require.NoError(t, db.Create(&root).Error)
	mid := models.Menu{Name: "Mid", Path: "/mid", MenuOrder: 1, ParentID: &root.ID}
	require.NoError(t, db.Create(&mid).Error)
	leaf := models.Menu{Name: "Leaf", Path: "/leaf", MenuOrder: 1, ParentID: &mid.ID}
	require.NoError(t, db.Create(&leaf).Error)

	// root ke bawah leaf = loop
	cycle, err := repo.WouldCycle(root.ID, leaf.ID)
	require.NoError(t, err)
	assert.True(t, cycle)

	// parent = dirinya sendiri juga loop
	cycle, err = repo.WouldCycle(mid.ID, mid.ID)
	require.NoError(t, err)
	assert.True(t, cycle)

	// leaf pindah ke bawah root aman
	cycle, err = repo.WouldCycle(leaf.ID, root.ID)
	require.NoError(t, err)
	assert.False(t, cycle)
}

func TestHasChildrenAndIsReferenced(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMenuRepository(db)

	parent := models.Menu{Name: "Parent", Path: "#", MenuOrder: 1}
	require.NoError(t, db.Create(&parent).Error)
	child := models.Menu{Name: "Child", Path: "/c", MenuOrder: 1, ParentID: &parent.ID}
	require.NoError(t, db.Create(&child).Error)

	hasChildren, err := repo.HasChildren(parent.ID)
	require.NoError(t, err)
	assert.True(t, hasChildren)

	hasChildren, err = repo.HasChildren(child.ID)
	require.NoError(t, err)
	assert.False(t, hasChildren)

	referenced, err := repo.IsReferenced(child.ID)
	require.NoError(t, err)
	assert.False(t, referenced)

	approval := models.Approval{IDMenu: child.ID, Status: "Pending", Action: "Approve", Level: 1, Count: 1}
	require.NoError(t, db.Create(&approval).Error)

	referenced, err = repo.IsReferenced(child.ID)
	require.NoError(t, err)
	assert.True(t, referenced)
}
