package models

import "time"

// DailyPalette is the featured palette of the day
type DailyPalette struct {
	Date         string       `json:"date"`
	BaseColor    string       `json:"baseColor"`
	BaseName     string       `json:"baseName"`
	RelationType RelationType `json:"relationType"`
	Count        int          `json:"count"`
	Palette      []string     `json:"palette"`
	CreatedAt    time.Time    `json:"createdAt"`
}
