package services

import (
	"fmt"
	"testing"

	"insist-app/migration"
	"insist-app/models"
	"insist-app/repositories"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupService(t *testing.T) (*ApprovalService, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, migration.Migrate(db))

	service := NewApprovalService(
		repositories.NewApprovalRepository(db),
		repositories.NewApprovalUserRepository(db),
		repositories.NewMenuRepository(db),
	)
	return service, db
}

func seedMenu(t *testing.T, db *gorm.DB) uint {
	t.Helper()
	menu := models.Menu{Name: "Warehouse", Path: "/wh", MenuOrder: 1}
	require.NoError(t, db.Create(&menu).Error)
	return menu.ID
}

func TestCreateApproval(t *testing.T) {
	service, db := setupService(t)
	menuID := seedMenu(t, db)

	approval, err := service.Create(ApprovalInput{
		IDMenu: menuID,
		Status: "Pending Manager",
		Action: "Approve",
		Level:  1,
		Count:  2,
	}, 9)

	require.NoError(t, err)
	assert.NotZero(t, approval.ID)
	assert.Equal(t, menuID, approval.IDMenu)
	assert.Equal(t, 1, approval.Level)
	assert.Equal(t, 2, approval.Count)
}

func TestCreateApprovalUnknownMenu(t *testing.T) {
	service, _ := setupService(t)

	_, err := service.Create(ApprovalInput{
		IDMenu: 99,
		Status: "Pending",
		Action: "Approve",
		Level:  1,
		Count:  1,
	}, 9)

	appErr, ok := AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.Code)
}

func TestCreateApprovalDuplicateLevelConflict(t *testing.T) {
	service, db := setupService(t)
	menuID := seedMenu(t, db)

	_, err := service.Create(ApprovalInput{
		IDMenu: menuID, Status: "Pending", Action: "Approve", Level: 1, Count: 1,
	}, 9)
	require.NoError(t, err)

	_, err = service.Create(ApprovalInput{
		IDMenu: menuID, Status: "Pending Director", Action: "Approve", Level: 1, Count: 1,
	}, 9)

	appErr, ok := AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 409, appErr.Code)
}

func TestCreateApprovalSameLevelDifferentMenu(t *testing.T) {
	service, db := setupService(t)
	menuA := seedMenu(t, db)
	menuB := models.Menu{Name: "Currency", Path: "/cur", MenuOrder: 2}
	require.NoError(t, db.Create(&menuB).Error)

	_, err := service.Create(ApprovalInput{
		IDMenu: menuA, Status: "Pending", Action: "Approve", Level: 1, Count: 1,
	}, 9)
	require.NoError(t, err)

	// level sama di menu berbeda bukan konflik
	_, err = service.Create(ApprovalInput{
		IDMenu: menuB.ID, Status: "Pending", Action: "Approve", Level: 1, Count: 1,
	}, 9)
	assert.NoError(t, err)
}

func TestUpdateApprovalNotFound(t *testing.T) {
	service, _ := setupService(t)

	level := 2
	_, err := service.Update(12345, ApprovalUpdateInput{Level: &level}, 9)

	appErr, ok := AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.Code)
}

func TestUpdateApprovalLevelConflict(t *testing.T) {
	service, db := setupService(t)
	menuID := seedMenu(t, db)

	first, err := service.Create(ApprovalInput{
		IDMenu: menuID, Status: "Pending", Action: "Approve", Level: 1, Count: 1,
	}, 9)
	require.NoError(t, err)
	second, err := service.Create(ApprovalInput{
		IDMenu: menuID, Status: "Pending Director", Action: "Approve", Level: 2, Count: 1,
	}, 9)
	require.NoError(t, err)

	level := 1
	_, err = service.Update(second.ID, ApprovalUpdateInput{Level: &level}, 9)
	appErr, ok := AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 409, appErr.Code)

	// update yang tidak mengubah level tidak bentrok dengan dirinya sendiri
	status := "Pending VP"
	updated, err := service.Update(first.ID, ApprovalUpdateInput{Status: &status}, 9)
	require.NoError(t, err)
	assert.Equal(t, "Pending VP", updated.Status)
}

func TestUpdateApprovalRejectsNonPositive(t *testing.T) {
	service, db := setupService(t)
	menuID := seedMenu(t, db)

	approval, err := service.Create(ApprovalInput{
		IDMenu: menuID, Status: "Pending", Action: "Approve", Level: 1, Count: 1,
	}, 9)
	require.NoError(t, err)

	zero := 0
	_, err = service.Update(approval.ID, ApprovalUpdateInput{Level: &zero}, 9)
	appErr, ok := AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.Code)

	_, err = service.Update(approval.ID, ApprovalUpdateInput{Count: &zero}, 9)
	appErr, ok = AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.Code)
}

func TestUpdateCountLimitedByAssignedUsers(t *testing.T) {
	service, db := setupService(t)
	menuID := seedMenu(t, db)

	approval, err := service.Create(ApprovalInput{
		IDMenu: menuID, Status: "Pending", Action: "Approve", Level: 1, Count: 1,
	}, 9)
	require.NoError(t, err)

	require.NoError(t, service.ReplaceUsers(approval.ID, []uint{10, 20}, 9))

	// count 3 > 2 user yang ditugaskan
	three := 3
	_, err = service.Update(approval.ID, ApprovalUpdateInput{Count: &three}, 9)
	appErr, ok := AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.Code)

	two := 2
	updated, err := service.Update(approval.ID, ApprovalUpdateInput{Count: &two}, 9)
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Count)
}

func TestReplaceUsersRejectsTooFewApprovers(t *testing.T) {
	service, db := setupService(t)
	menuID := seedMenu(t, db)

	approval, err := service.Create(ApprovalInput{
		IDMenu: menuID, Status: "Pending", Action: "Approve", Level: 1, Count: 2,
	}, 9)
	require.NoError(t, err)

	err = service.ReplaceUsers(approval.ID, []uint{10}, 9)
	appErr, ok := AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.Code)

	// list kosong boleh: membersihkan assignment
	require.NoError(t, service.ReplaceUsers(approval.ID, nil, 9))
}

func TestReplaceUsersDeduplicates(t *testing.T) {
	service, db := setupService(t)
	menuID := seedMenu(t, db)

	approval, err := service.Create(ApprovalInput{
		IDMenu: menuID, Status: "Pending", Action: "Approve", Level: 1, Count: 2,
	}, 9)
	require.NoError(t, err)

	require.NoError(t, service.ReplaceUsers(approval.ID, []uint{10, 10, 20}, 9))

	users, err := service.ListUsers(approval.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{10, 20}, users)
}

func TestDeleteApprovalRemovesAssignments(t *testing.T) {
	service, db := setupService(t)
	menuID := seedMenu(t, db)

	approval, err := service.Create(ApprovalInput{
		IDMenu: menuID, Status: "Pending", Action: "Approve", Level: 1, Count: 1,
	}, 9)
	require.NoError(t, err)
	require.NoError(t, service.ReplaceUsers(approval.ID, []uint{10}, 9))

	require.NoError(t, service.Delete(approval.ID))

	err = service.Delete(approval.ID)
	appErr, ok := AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.Code)

	var count int64
	require.NoError(t, db.Model(&models.ApprovalUser{}).
		Where("approval_id = ?", int64(approval.ID)).Count(&count).Error)
	assert.Zero(t, count)
}
