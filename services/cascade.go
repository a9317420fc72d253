package services

import (
	"insist-app/models"
)

// State centang sebuah node menu di tree permission.
// Indeterminate = node tidak di-grant tapi ada keturunannya yang di-grant.
const (
	StateChecked       = "checked"
	StateUnchecked     = "unchecked"
	StateIndeterminate = "indeterminate"
)

// BuildGrantedSet mengubah list ID menjadi set, sekaligus membuang duplikat.
func BuildGrantedSet(ids []uint) map[uint]bool {
	granted := make(map[uint]bool, len(ids))
	for _, id := range ids {
		granted[id] = true
	}
	return granted
}

// CheckStates menghitung state centang semua node dalam satu pass post-order.
// State ancestor selalu diturunkan dari descendant, tidak pernah disimpan.
func CheckStates(menus []models.Menu, granted map[uint]bool) map[uint]string {
	states := make(map[uint]string)
	for i := range menus {
		walkStates(&menus[i], granted, states)
	}
	return states
}

// walkStates mengembalikan true jika ada node di subtree yang masuk granted
func walkStates(menu *models.Menu, granted map[uint]bool, states map[uint]string) bool {
	anyGranted := granted[menu.ID]

	for i := range menu.Children {
		if walkStates(&menu.Children[i], granted, states) {
			anyGranted = true
		}
	}

	switch {
	case granted[menu.ID]:
		states[menu.ID] = StateChecked
	case anyGranted:
		states[menu.ID] = StateIndeterminate
	default:
		states[menu.ID] = StateUnchecked
	}

	return anyGranted
}

// Toggle menghitung granted set baru setelah sebuah node dicentang/di-uncheck.
// Centang = grant node beserta seluruh subtree-nya; uncheck = cabut semuanya.
// Node indeterminate dihitung sebagai belum dicentang, jadi toggle-nya
// men-grant seluruh subtree. Ancestor tidak pernah disentuh.
func Toggle(menus []models.Menu, nodeID uint, granted map[uint]bool) map[uint]bool {
	result := make(map[uint]bool, len(granted))
	for id := range granted {
		result[id] = true
	}

	node := findMenu(menus, nodeID)
	if node == nil {
		return result
	}

	subtree := collectSubtreeIDs(node, nil)
	if granted[nodeID] {
		for _, id := range subtree {
			delete(result, id)
		}
	} else {
		for _, id := range subtree {
			result[id] = true
		}
	}

	return result
}

// GrantedIDs mengubah set kembali menjadi list ID (untuk persist / response)
func GrantedIDs(granted map[uint]bool) []uint {
	ids := make([]uint, 0, len(granted))
	for id := range granted {
		ids = append(ids, id)
	}
	return ids
}

func findMenu(menus []models.Menu, id uint) *models.Menu {
	for i := range menus {
		if menus[i].ID == id {
			return &menus[i]
		}
		if found := findMenu(menus[i].Children, id); found != nil {
			return found
		}
	}
	return nil
}

func collectSubtreeIDs(menu *models.Menu, ids []uint) []uint {
	ids = append(ids, menu.ID)
	for i := range menu.Children {
		ids = collectSubtreeIDs(&menu.Children[i], ids)
	}
	return ids
}
