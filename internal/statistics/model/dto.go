// Package model provides data transfer objects for statistics module.
package model

// AgeAggregate holds aggregate functions over every member's age.
type AgeAggregate struct {
	Count   int64   `gorm:"column:member_count" json:"count"`
	Sum     int64   `gorm:"column:age_sum"      json:"sum"`
	Average float64 `gorm:"column:age_avg"      json:"average"`
	Max     int     `gorm:"column:age_max"      json:"max"`
	Min     int     `gorm:"column:age_min"      json:"min"`
}

// TeamAgeAverage is the average member age of one team.
type TeamAgeAverage struct {
	TeamName    string  `gorm:"column:team_name"    json:"team_name"`
	MemberCount int64   `gorm:"column:member_count" json:"member_count"`
	AverageAge  float64 `gorm:"column:average_age"  json:"average_age"`
}

// AgeStatisticsResponse represents response for member age statistics.
type AgeStatisticsResponse struct {
	Statistics AgeAggregate `json:"statistics"`
}

// TeamStatisticsResponse represents response for per-team statistics.
type TeamStatisticsResponse struct {
	Teams []TeamAgeAverage `json:"teams"`
	Total int              `json:"total"`
}
