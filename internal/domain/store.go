package domain

// Store 聚合四个集合；内存实现与 gorm 实现均满足
type Store interface {
	Users() UserRepository
	Skills() SkillRepository
	Sessions() SessionRepository
	Reviews() ReviewRepository
}
