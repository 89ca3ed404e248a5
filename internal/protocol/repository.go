package protocol

import (
	"errors"

	"github.com/Gabrielsb1/destalhe/internal/platform/database"
	"github.com/Gabrielsb1/destalhe/pkg/apperror"
	"github.com/Gabrielsb1/destalhe/pkg/dateutil"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FindByID 按主键查找记录。不存在时返回(nil, nil)。
func FindByID(id uuid.UUID) (*Protocol, error) {
	var p Protocol
	err := database.DB.First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperror.NewStoreUnavailable("protocol.FindByID", err)
	}
	return &p, nil
}

// FindByNumber 按协议序号查找记录。不存在时返回(nil, nil)。
func FindByNumber(number string) (*Protocol, error) {
	var p Protocol
	err := database.DB.First(&p, "number = ?", number).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperror.NewStoreUnavailable("protocol.FindByNumber", err)
	}
	return &p, nil
}

// AvailableFor 返回一个协作者可以处理的记录：
// 所有pending的，加上该协作者自己手里in_progress的。
// in_progress排在前面，其余按序号升序。
func AvailableFor(ownerID uuid.UUID) ([]Protocol, error) {
	var protocols []Protocol
	err := database.DB.
		Where("status = ? OR (status = ? AND owner_id = ?)",
			StatusPending, StatusInProgress, ownerID).
		Order("status asc").
		Order("CAST(number AS INTEGER) asc").
		Find(&protocols).Error
	if err != nil {
		return nil, apperror.NewStoreUnavailable("protocol.AvailableFor", err)
	}
	return protocols, nil
}

// CountByStatus 返回全库按状态分组的记录数（不限日期的全量计数）。
func CountByStatus() (map[string]int64, error) {
	type row struct {
		Status string
		Count  int64
	}
	var rows []row
	err := database.DB.Model(&Protocol{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, apperror.NewStoreUnavailable("protocol.CountByStatus", err)
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}

// CountFinalizedInWindow 统计在时间窗口内完结的记录总数。
// 完结时间以UpdatedAt为准：一条几天前创建、今天才完结的记录算今天的产出。
func CountFinalizedInWindow(w dateutil.Window) (int64, error) {
	var count int64
	err := database.DB.Model(&Protocol{}).
		Where("status IN ?", FinalizedStatuses).
		Where("updated_at >= ? AND updated_at < ?", w.Start, w.End).
		Count(&count).Error
	if err != nil {
		return 0, apperror.NewStoreUnavailable("protocol.CountFinalizedInWindow", err)
	}
	return count, nil
}

// FinalizedCountsByOwner 统计窗口内每个协作者完结的记录数。
// 只包含窗口内有产出的协作者；零产出的补全由报表层负责。
func FinalizedCountsByOwner(w dateutil.Window) (map[uuid.UUID]int64, error) {
	type row struct {
		OwnerID uuid.UUID
		Count   int64
	}
	var rows []row
	err := database.DB.Model(&Protocol{}).
		Select("owner_id, COUNT(*) as count").
		Where("status IN ?", FinalizedStatuses).
		Where("owner_id IS NOT NULL").
		Where("updated_at >= ? AND updated_at < ?", w.Start, w.End).
		Group("owner_id").
		Scan(&rows).Error
	if err != nil {
		return nil, apperror.NewStoreUnavailable("protocol.FinalizedCountsByOwner", err)
	}

	counts := make(map[uuid.UUID]int64, len(rows))
	for _, r := range rows {
		counts[r.OwnerID] = r.Count
	}
	return counts, nil
}

// CountFinalizedByOwnerInWindow 统计一个协作者在窗口内完结的记录数。
func CountFinalizedByOwnerInWindow(ownerID uuid.UUID, w dateutil.Window) (int64, error) {
	var count int64
	err := database.DB.Model(&Protocol{}).
		Where("status IN ?", FinalizedStatuses).
		Where("owner_id = ?", ownerID).
		Where("updated_at >= ? AND updated_at < ?", w.Start, w.End).
		Count(&count).Error
	if err != nil {
		return 0, apperror.NewStoreUnavailable("protocol.CountFinalizedByOwnerInWindow", err)
	}
	return count, nil
}
