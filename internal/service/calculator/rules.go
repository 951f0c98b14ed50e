package calculator

import (
	"strings"

	"kpidash/internal/model"
)

// ValidateRecord 校验手工录入的记录，返回面向用户的错误信息
func ValidateRecord(r model.KPIRecord) []string {
	errs := make([]string, 0, 2)

	if strings.TrimSpace(r.KPIName) == "" {
		errs = append(errs, "Please enter a KPI name")
	}
	if strings.TrimSpace(r.CampaignType) == "" {
		errs = append(errs, "Please choose a campaign type")
	}

	return errs
}
