package service

import (
	"Orion_Tube/internal/model"
	"Orion_Tube/pkg/errno"
)

// IsOwner 只有实体的作者才能修改/删除它，匿名用户永远不是作者
func IsOwner(entity model.Owned, actorID uint64) bool {
	return actorID != 0 && entity.GetOwnerID() == actorID
}

// authorize 调用方必须先确认实体存在，这样不存在的资源返回404而不是403
func authorize(entity model.Owned, actorID uint64, action string) error {
	if err := requireViewer(actorID); err != nil {
		return err
	}
	if !IsOwner(entity, actorID) {
		return errno.NewForbidden("无权" + action)
	}
	return nil
}
