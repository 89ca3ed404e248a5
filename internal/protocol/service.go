package protocol

import (
	"errors"
	"fmt"
	"time"

	"github.com/Gabrielsb1/destalhe/internal/platform/database"
	"github.com/Gabrielsb1/destalhe/internal/user"
	"github.com/Gabrielsb1/destalhe/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotFound 表示目标协议记录不存在。
var ErrNotFound = errors.New("找不到该协议记录")

// Claim 把一条pending的记录认领给一个协作者。
//
// 原实现先查状态、再无条件更新，两步之间没有任何原子性保证，
// 两个并发的认领者可能同时成功。这里改为单条条件更新
// (UPDATE ... WHERE id = ? AND status = 'pending')，
// 由存储保证"检查前提并变更"是一个原子操作：并发认领同一条记录时
// 恰好一人成功，其余得到冲突错误。
func Claim(id uuid.UUID, actor *user.User) (*Protocol, error) {
	if actor == nil || !actor.IsCollaborator() {
		return nil, &apperror.ValidationError{Field: "actor", Reason: "只有在职协作者才能认领协议记录"}
	}

	var claimed Protocol
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		// 先拿到序号用于生成系统备注；记录不存在时直接失败
		var current Protocol
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&current, "id = ?", id).Error; err != nil {
			return err
		}

		now := time.Now()
		result := tx.Model(&Protocol{}).
			Where("id = ? AND status = ?", id, StatusPending).
			Updates(map[string]interface{}{
				"status":     StatusInProgress,
				"owner_id":   actor.ID,
				"notes":      fmt.Sprintf("协议 %s 的核查已开始", current.Number),
				"updated_at": now,
			})
		if result.Error != nil {
			return result.Error
		}

		// 没有命中任何行说明前提不成立：别人抢先认领了，或记录已完结
		if result.RowsAffected == 0 {
			if current.IsFinalized() {
				return &apperror.InvalidStateError{CurrentStatus: current.Status}
			}
			return &apperror.ConflictError{CurrentStatus: current.Status}
		}

		return tx.First(&claimed, "id = ?", id).Error
	})

	if err != nil {
		return nil, classifyError("protocol.Claim", err)
	}
	return &claimed, nil
}

// enforceOwnerMatch 开启时，Finalize要求调用者必须是记录的当前持有人。
// 原实现不做这个检查（任何知道记录ID的人都能完结别人手里的记录），
// 通过配置可以还原旧行为。
var enforceOwnerMatch = true

// SetEnforceOwnerMatch 配置完结时是否校验持有人，由setup在启动时调用。
func SetEnforceOwnerMatch(enabled bool) {
	enforceOwnerMatch = enabled
}

// Finalize 把一条记录移入给定的终态。
// 持有人保持不变（即使关闭持有人校验也是如此），备注被整体替换，
// UpdatedAt刷新为当前时刻——统计报表据此把这条产出记到今天。
func Finalize(id uuid.UUID, actor *user.User, terminalStatus string, notes string) (*Protocol, error) {
	if !IsFinalizedStatus(terminalStatus) {
		return nil, &apperror.ValidationError{
			Field:  "status",
			Reason: fmt.Sprintf("%q 不是有效的终态", terminalStatus),
		}
	}

	var finalized Protocol
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var current Protocol
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&current, "id = ?", id).Error; err != nil {
			return err
		}

		// 终态不可再变更
		if current.IsFinalized() {
			return &apperror.InvalidStateError{CurrentStatus: current.Status}
		}

		if enforceOwnerMatch && current.Status == StatusInProgress {
			if actor == nil || current.OwnerID == nil || *current.OwnerID != actor.ID {
				return &apperror.ConflictError{CurrentStatus: current.Status}
			}
		}

		return tx.Model(&current).
			Updates(map[string]interface{}{
				"status":     terminalStatus,
				"notes":      notes,
				"updated_at": time.Now(),
			}).Error
	})

	if err != nil {
		return nil, classifyError("protocol.Finalize", err)
	}

	if err := database.DB.First(&finalized, "id = ?", id).Error; err != nil {
		return nil, apperror.NewStoreUnavailable("protocol.Finalize", err)
	}
	return &finalized, nil
}

// classifyError 把事务内部冒出的错误归类：
// 业务错误原样上抛，找不到记录映射为ErrNotFound，其余都算存储故障。
func classifyError(op string, err error) error {
	if apperror.IsConflict(err) || apperror.IsInvalidState(err) || apperror.IsValidation(err) {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return apperror.NewStoreUnavailable(op, err)
}
