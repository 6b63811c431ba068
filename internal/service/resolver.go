package service

import (
	"context"

	"CineSync/internal/model"
	"CineSync/internal/repository"

	"github.com/sirupsen/logrus"
)

// RegionResolver 用户所在州的统一解析器，Recorder 与查询服务共用同一条兜底链：
// 用户档案 → 配置的默认州 → ID最小的州 → 无。
type RegionResolver struct {
	states       repository.StateRepository
	profiles     repository.ProfileRepository
	defaultState string
	logger       *logrus.Logger
}

// NewRegionResolver 创建 RegionResolver。defaultState 为空表示不启用默认州兜底
func NewRegionResolver(states repository.StateRepository, profiles repository.ProfileRepository, defaultState string, logger *logrus.Logger) *RegionResolver {
	return &RegionResolver{
		states:       states,
		profiles:     profiles,
		defaultState: defaultState,
		logger:       logger,
	}
}

// Resolve 解析用户所在州，返回 nil 表示链走完仍无州可用（如州表为空）。
// 解析中的查询失败按缺档处理继续走下一级，不向调用方抛错——热度统计缺失
// 不应阻断购买/浏览主流程
func (r *RegionResolver) Resolve(ctx context.Context, userID uint64) *model.State {
	if userID != 0 {
		profile, err := r.profiles.GetProfileByUserID(ctx, userID)
		if err != nil {
			r.logger.WithError(err).WithField("user_id", userID).Warn("查询用户档案失败，继续走默认州兜底")
		} else if profile != nil && profile.StateID != nil {
			state, err := r.states.GetStateByID(ctx, *profile.StateID)
			if err == nil {
				return state
			}
			r.logger.WithError(err).WithField("state_id", *profile.StateID).Warn("档案引用的州不存在")
		}
	}

	if r.defaultState != "" {
		state, err := r.states.GetStateByName(ctx, r.defaultState)
		if err == nil {
			return state
		}
	}

	state, err := r.states.FirstState(ctx)
	if err != nil {
		r.logger.WithError(err).Warn("查询兜底州失败")
		return nil
	}
	return state // 州表为空时为 nil
}
