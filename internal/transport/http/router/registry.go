package router

import (
	"slices"

	"skillswap/internal/transport/http/ez"
)

// APIModule 业务模块：在公共/鉴权分组上挂自己的接口
type APIModule interface{ MountAPI(ez.Routes) }

// 实现 Priority 的模块按数值升序挂载，未实现的排在 defaultPriority
type prioritizer interface{ Priority() int }

const defaultPriority = 100

type entry struct {
	mod APIModule
	pri int
}

// Registry 由 main 组装后交给 NewAPIEngine；零值可用
type Registry struct {
	entries []entry
}

func (r *Registry) Register(mods ...APIModule) {
	for _, m := range mods {
		pri := defaultPriority
		if p, ok := m.(prioritizer); ok {
			pri = p.Priority()
		}
		r.entries = append(r.entries, entry{mod: m, pri: pri})
	}
}

func (r *Registry) Len() int { return len(r.entries) }

// MountAll 同优先级按注册顺序
func (r *Registry) MountAll(rt ez.Routes) {
	sorted := slices.Clone(r.entries)
	slices.SortStableFunc(sorted, func(a, b entry) int { return a.pri - b.pri })
	for _, e := range sorted {
		e.mod.MountAPI(rt)
	}
}
