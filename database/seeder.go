package database

import (
	"errors"
	"log"

	"insist-app/models"
	"insist-app/utils"

	"gorm.io/gorm"
)

func RunSeeders(db *gorm.DB) {
	SeedMenus(db)
	SeedRoles(db)
	SeedUserMaster(db)
}

type menuSeed struct {
	Name      string
	Path      string
	Icon      string
	MenuOrder int
	Parent    string
}

func SeedMenus(db *gorm.DB) error {
	// Parent harus muncul lebih dulu: ParentID di-resolve per baris saat
	// insert, bukan saat slice dibangun, supaya anak dapat ID parent
	// yang baru saja di-insert.
	seeds := []menuSeed{
		{Name: "Master Data", Path: "#", Icon: "Database", MenuOrder: 1},
		{Name: "Warehouse", Path: "/master/warehouse", Icon: "Building", MenuOrder: 1, Parent: "Master Data"},
		{Name: "Currency", Path: "/master/currency", Icon: "Coins", MenuOrder: 2, Parent: "Master Data"},
		{Name: "Employee", Path: "/master/employee", Icon: "Users", MenuOrder: 3, Parent: "Master Data"},
		{Name: "Admin", Path: "#", Icon: "Settings", MenuOrder: 2},
		{Name: "Role Permission", Path: "/admin/role-permission", Icon: "Shield", MenuOrder: 1, Parent: "Admin"},
		{Name: "Approval Structure", Path: "/admin/approval", Icon: "CheckSquare", MenuOrder: 2, Parent: "Admin"},
	}

	for _, seed := range seeds {
		var parentID *uint
		if seed.Parent != "" {
			parentID = getMenuIDByName(db, seed.Parent)
			if parentID == nil {
				log.Println("Parent menu belum ada, skip:", seed.Name)
				continue
			}
		}

		var existing models.Menu
		err := db.Where("name = ? AND path = ?", seed.Name, seed.Path).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			menu := models.Menu{
				Name:      seed.Name,
				Path:      seed.Path,
				Icon:      seed.Icon,
				MenuOrder: seed.MenuOrder,
				ParentID:  parentID,
			}
			if err := db.Create(&menu).Error; err != nil {
				log.Println("Gagal insert menu:", menu.Name, err)
			} else {
				log.Println("Insert menu:", menu.Name)
			}
			continue
		}
		if err != nil {
			log.Println("Gagal cek menu:", seed.Name, err)
			continue
		}

		// Backfill: baris lama yang sempat ter-seed flat diberi parent
		if existing.ParentID == nil && parentID != nil {
			existing.ParentID = parentID
			if err := db.Save(&existing).Error; err != nil {
				log.Println("Gagal update parent menu:", existing.Name, err)
			}
		}
	}

	return nil
}

func SeedRoles(db *gorm.DB) {
	roles := []models.Role{
		{Name: "admin", Description: "Administrator"},
		{Name: "supervisor", Description: "Supervisor"},
		{Name: "staff", Description: "Staff"},
	}

	for _, role := range roles {
		var existing models.Role
		if err := db.Where("name = ?", role.Name).First(&existing).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				db.Create(&role)
			}
		}
	}
}

func SeedUserMaster(db *gorm.DB) {
	hashed, err := utils.HashPassword("admin")
	if err != nil {
		log.Println("Gagal hash password admin:", err)
		return
	}

	users := []models.User{
		{
			Username:  "admin",
			Password:  hashed,
			Name:      "Admin",
			Email:     "admin@example.com",
			BaseRoute: "/dashboard",
		},
	}

	for _, user := range users {
		var existing models.User
		err := db.Where("email = ?", user.Email).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := db.Create(&user).Error; err != nil {
				log.Println("Gagal insert user:", user.Username, err)
			} else {
				log.Println("Insert user:", user.Username)
			}
		}
	}
}

func getMenuIDByName(db *gorm.DB, name string) *uint {
	var parent models.Menu
	err := db.Where("name = ?", name).First(&parent).Error
	if err == nil {
		id := parent.ID
		return &id
	}
	return nil
}
