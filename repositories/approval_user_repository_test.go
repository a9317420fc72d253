package repositories

import (
	"testing"

	"insist-app/models"
	"insist-app/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplaceSetReconciliation(t *testing.T) {
	db := setupTestDB(t)
	repo := NewApprovalUserRepository(db)
	approvalID := types.SnowflakeID(1001)

	require.NoError(t, repo.Replace(approvalID, []uint{1, 2, 3}, 1))

	// catat ID row user 2 dan 3 sebelum replace
	var before []models.ApprovalUser
	require.NoError(t, db.Where("approval_id = ? AND user_id IN ?", int64(approvalID), []uint{2, 3}).
		Order("user_id asc").Find(&before).Error)
	require.Len(t, before, 2)

	require.NoError(t, repo.Replace(approvalID, []uint{2, 3, 4}, 1))

	users, err := repo.ListByApproval(approvalID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{2, 3, 4}, users)

	// user 2 dan 3 tidak boleh dihapus lalu di-insert ulang
	var after []models.ApprovalUser
	require.NoError(t, db.Where("approval_id = ? AND user_id IN ?", int64(approvalID), []uint{2, 3}).
		Order("user_id asc").Find(&after).Error)
	require.Len(t, after, 2)
	assert.Equal(t, before[0].ID, after[0].ID)
	assert.Equal(t, before[1].ID, after[1].ID)
	assert.Equal(t, before[0].CreatedAt, after[0].CreatedAt)
	assert.Equal(t, before[1].CreatedAt, after[1].CreatedAt)
}

func TestReplaceWithEmptyListClearsAssignment(t *testing.T) {
	db := setupTestDB(t)
	repo := NewApprovalUserRepository(db)
	approvalID := types.SnowflakeID(1002)

	require.NoError(t, repo.Replace(approvalID, []uint{1, 2}, 1))
	require.NoError(t, repo.Replace(approvalID, nil, 1))

	users, err := repo.ListByApproval(approvalID)
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestReplaceIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewApprovalUserRepository(db)
	approvalID := types.SnowflakeID(1003)

	require.NoError(t, repo.Replace(approvalID, []uint{5, 6}, 1))
	require.NoError(t, repo.Replace(approvalID, []uint{5, 6}, 1))

	users, err := repo.ListByApproval(approvalID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{5, 6}, users)

	count, err := repo.CountByApproval(approvalID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestListByApprovalScopedToApproval(t *testing.T) {
	db := setupTestDB(t)
	repo := NewApprovalUserRepository(db)

	require.NoError(t, repo.Replace(types.SnowflakeID(1), []uint{1}, 1))
	require.NoError(t, repo.Replace(types.SnowflakeID(2), []uint{2, 3}, 1))

	users, err := repo.ListByApproval(types.SnowflakeID(2))
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{2, 3}, users)
}
