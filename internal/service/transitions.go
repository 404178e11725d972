package service

import "skillswap/internal/domain"

// TransitionPolicy 决定 session 状态能否从 from 变到 to
type TransitionPolicy interface {
	Allow(from, to string) bool
}

// Permissive 任意非空状态都接受（状态视为自由文本）
type Permissive struct{}

func (Permissive) Allow(_, to string) bool { return to != "" }

// StrictTable 封闭状态机
type StrictTable map[string][]string

func DefaultTransitions() StrictTable {
	return StrictTable{
		domain.StatusPending:   {domain.StatusConfirmed, domain.StatusDeclined, domain.StatusCancelled},
		domain.StatusConfirmed: {domain.StatusCompleted, domain.StatusCancelled},
	}
}

func (t StrictTable) Allow(from, to string) bool {
	for _, s := range t[from] {
		if s == to {
			return true
		}
	}
	return false
}
