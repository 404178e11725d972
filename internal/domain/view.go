package domain

import "time"

// 读模型：join 缺失时字段为 null，不报错

type TeacherRef struct {
	ID       *int64  `json:"id"`
	FullName *string `json:"full_name"`
	Location *string `json:"location"`
}

type SkillView struct {
	ID              int64      `json:"id"`
	SkillName       string     `json:"skill_name"`
	Category        string     `json:"category"`
	Description     string     `json:"description"`
	HourlyRate      *float64   `json:"hourly_rate"`
	AcceptsExchange bool       `json:"accepts_exchange"`
	Teacher         TeacherRef `json:"teacher"`
}

type SessionView struct {
	ID            int64   `json:"id"`
	SkillName     *string `json:"skill_name"`
	TeacherID     int64   `json:"teacher_id"`
	LearnerID     int64   `json:"learner_id"`
	SessionDate   string  `json:"session_date"`
	DurationHours float64 `json:"duration_hours"`
	Status        string  `json:"status"`
}

type ReviewView struct {
	ID        int64     `json:"id"`
	Reviewer  *string   `json:"reviewer"`
	Rating    float64   `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

type RatingSummary struct {
	UserID  int64   `json:"user_id"`
	Count   int     `json:"count"`
	Average float64 `json:"average"`
}
