package model

import "gorm.io/datatypes"

type InsightModel struct {
	ID            int64          `gorm:"column:id;primaryKey"`
	Symbol        string         `gorm:"column:symbol;uniqueIndex:idx_insight_symbol_date,priority:1"`
	Date          string         `gorm:"column:date;uniqueIndex:idx_insight_symbol_date,priority:2"`
	Score         int            `gorm:"column:score"`
	Insight       string         `gorm:"column:insight;type:TEXT"`
	MetricsJSON   datatypes.JSON `gorm:"column:metrics_json;type:TEXT"`
	CreatedAtUnix int64          `gorm:"column:created_at"`
}

func (InsightModel) TableName() string { return "insights" }
