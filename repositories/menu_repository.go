package repositories

import (
	"log"

	"insist-app/models"

	"gorm.io/gorm"
)

type MenuRepository struct {
	DB *gorm.DB
}

func NewMenuRepository(DB *gorm.DB) *MenuRepository {
	return &MenuRepository{DB: DB}
}

// MenuTree hasil load katalog menu. Orphans dan Cycles diisi kalau ada
// data yang tidak konsisten; node bermasalah tetap dirender sebagai root
// supaya load tidak gagal total.
type MenuTree struct {
	Roots   []models.Menu `json:"data"`
	Orphans []uint        `json:"orphans,omitempty"`
	Cycles  []uint        `json:"cycles,omitempty"`
}

// GetTree mengambil seluruh menu dalam satu query lalu merakit forest
// di memory, sudah terurut menu_order per sibling group.
func (r *MenuRepository) GetTree() (*MenuTree, error) {
	var menus []models.Menu
	if err := r.DB.Order("menu_order asc, id asc").Find(&menus).Error; err != nil {
		return nil, err
	}
	tree := BuildMenuTree(menus)
	if len(tree.Orphans) > 0 {
		log.Println("Warning: menu dengan parent_id tidak valid:", tree.Orphans)
	}
	if len(tree.Cycles) > 0 {
		log.Println("Warning: menu dengan parent chain berputar:", tree.Cycles)
	}
	return tree, nil
}

// BuildMenuTree merakit forest dari rows flat. Urutan rows dipertahankan,
// jadi kalau rows sudah di-order by menu_order, sibling group ikut terurut.
func BuildMenuTree(flat []models.Menu) *MenuTree {
	byID := make(map[uint]int, len(flat))
	for i := range flat {
		byID[flat[i].ID] = i
	}

	tree := &MenuTree{}
	isRoot := make(map[uint]bool)

	for i := range flat {
		pid := flat[i].ParentID
		if pid == nil {
			isRoot[flat[i].ID] = true
			continue
		}
		if _, exists := byID[*pid]; !exists {
			// parent hilang: promosikan jadi root, laporkan
			isRoot[flat[i].ID] = true
			tree.Orphans = append(tree.Orphans, flat[i].ID)
			continue
		}
		if inParentCycle(flat, byID, flat[i].ID) {
			isRoot[flat[i].ID] = true
			tree.Cycles = append(tree.Cycles, flat[i].ID)
		}
	}

	childrenOf := make(map[uint][]int)
	for i := range flat {
		if isRoot[flat[i].ID] {
			continue
		}
		childrenOf[*flat[i].ParentID] = append(childrenOf[*flat[i].ParentID], i)
	}

	var build func(i int) models.Menu
	build = func(i int) models.Menu {
		node := flat[i]
		node.Children = nil
		for _, ci := range childrenOf[node.ID] {
			node.Children = append(node.Children, build(ci))
		}
		return node
	}

	for i := range flat {
		if isRoot[flat[i].ID] {
			tree.Roots = append(tree.Roots, build(i))
		}
	}

	return tree
}

// inParentCycle menelusuri parent chain; kalau balik lagi ke node awal
// atau lebih panjang dari jumlah node, berarti chain-nya berputar.
func inParentCycle(flat []models.Menu, byID map[uint]int, start uint) bool {
	current := start
	for steps := 0; steps <= len(flat); steps++ {
		idx, ok := byID[current]
		if !ok {
			return false
		}
		pid := flat[idx].ParentID
		if pid == nil {
			return false
		}
		if _, ok := byID[*pid]; !ok {
			return false
		}
		if *pid == start {
			return true
		}
		current = *pid
	}
	return true
}

// FindPath mengembalikan ID ancestor dari root sampai node itu sendiri.
func (r *MenuRepository) FindPath(nodeID uint) ([]uint, error) {
	var menus []models.Menu
	if err := r.DB.Find(&menus).Error; err != nil {
		return nil, err
	}

	byID := make(map[uint]models.Menu, len(menus))
	for _, m := range menus {
		byID[m.ID] = m
	}

	if _, ok := byID[nodeID]; !ok {
		return nil, gorm.ErrRecordNotFound
	}

	var path []uint
	visited := make(map[uint]bool)
	current := nodeID
	for {
		if visited[current] {
			// chain berputar, berhenti di sini
			break
		}
		visited[current] = true
		path = append(path, current)

		node := byID[current]
		if node.ParentID == nil {
			break
		}
		parent, ok := byID[*node.ParentID]
		if !ok {
			break
		}
		current = parent.ID
	}

	// balik urutan: root duluan
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, nil
}

// WouldCycle cek apakah memindahkan nodeID ke bawah parentID membuat
// loop: parent baru tidak boleh node itu sendiri atau keturunannya.
func (r *MenuRepository) WouldCycle(nodeID, parentID uint) (bool, error) {
	path, err := r.FindPath(parentID)
	if err != nil {
		return false, err
	}
	for _, id := range path {
		if id == nodeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *MenuRepository) GetByID(id uint) (*models.Menu, error) {
	var menu models.Menu
	err := r.DB.First(&menu, id).Error
	return &menu, err
}

func (r *MenuRepository) Create(menu *models.Menu) error {
	return r.DB.Create(menu).Error
}

func (r *MenuRepository) Update(menu *models.Menu) error {
	return r.DB.Save(menu).Error
}

func (r *MenuRepository) Delete(id uint) error {
	return r.DB.Delete(&models.Menu{}, id).Error
}

// HasChildren cek apakah node masih punya anak
func (r *MenuRepository) HasChildren(id uint) (bool, error) {
	var count int64
	err := r.DB.Model(&models.Menu{}).Where("parent_id = ?", id).Count(&count).Error
	return count > 0, err
}

// IsReferenced cek apakah node masih dipakai approval atau role permission
func (r *MenuRepository) IsReferenced(id uint) (bool, error) {
	var count int64
	if err := r.DB.Model(&models.Approval{}).Where("id_menu = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return true, nil
	}
	if err := r.DB.Model(&models.RolePermission{}).Where("menu_id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
