package service

// 只缓存公开的技能列表；其余视图按请求实时 join
const keySkillList = "views:skills"
