package repo

import (
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"skillswap/internal/domain"
)

// GormStore 基于 gorm 的持久化实现（postgres / mysql / sqlite）
type GormStore struct{ db *gorm.DB }

func NewGormStore(db *gorm.DB) *GormStore { return &GormStore{db: db} }

func (s *GormStore) Migrate() error {
	return s.db.AutoMigrate(&domain.User{}, &domain.Skill{}, &domain.Session{}, &domain.Review{})
}

func (s *GormStore) Users() domain.UserRepository       { return NewUserRepo(s.db) }
func (s *GormStore) Skills() domain.SkillRepository     { return NewSkillRepo(s.db) }
func (s *GormStore) Sessions() domain.SessionRepository { return NewSessionRepo(s.db) }
func (s *GormStore) Reviews() domain.ReviewRepository   { return NewReviewRepo(s.db) }

// forUpdate sqlite 不支持 FOR UPDATE，整库写锁已足够
func forUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

func isDupKey(err error) bool {
	// 不依赖 gorm.ErrDuplicatedKey，各驱动文案不同
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation")
}
