package preset

import (
	"github.com/amirhossein-jamali/calendar-duration/internal/domain/entity"
	"github.com/amirhossein-jamali/calendar-duration/internal/domain/port/usecase"
)

// DefaultPresets are seeded when configuration does not list its own
func DefaultPresets() []usecase.PresetDefinition {
	return []usecase.PresetDefinition{
		{Name: "minutely", Duration: entity.MustParse("1m"), Description: "Every minute"},
		{Name: "hourly", Duration: entity.MustParse("1h"), Description: "Every hour"},
		{Name: "daily", Duration: entity.MustParse("1d"), Description: "Every UTC day"},
		{Name: "weekly", Duration: entity.MustParse("1w"), Description: "Every ISO week, starting Monday"},
		{Name: "monthly", Duration: entity.MustParse("1M"), Description: "Every calendar month"},
		{Name: "yearly", Duration: entity.MustParse("1y"), Description: "Every calendar year"},
	}
}
